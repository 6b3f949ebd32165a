package buffer

// Buffer accumulates a single byte sequence streamingly, e.g. a header line arriving in
// arbitrary pieces, refusing to grow past the limit.
type Buffer struct {
	memory  []byte
	maxSize int
}

func New(initialSize, maxSize int) Buffer {
	return Buffer{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Append writes data, checking whether the new amount of elements (bytes) doesn't exceed the
// limit, otherwise discarding the data and returning false.
func (b *Buffer) Append(elements []byte) (ok bool) {
	if len(b.memory)+len(elements) > b.maxSize {
		return false
	}

	b.memory = append(b.memory, elements...)
	return true
}

// Len returns the number of bytes accumulated so far.
func (b *Buffer) Len() int {
	return len(b.memory)
}

// Trunc truncates the last n bytes.
func (b *Buffer) Trunc(n int) {
	if n > len(b.memory) {
		n = len(b.memory)
	}

	b.memory = b.memory[:len(b.memory)-n]
}

// Preview returns the accumulated data. It stays valid until the next Append or Clear.
func (b *Buffer) Preview() []byte {
	return b.memory
}

// Clear just resets the pointers, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.memory = b.memory[:0]
}
