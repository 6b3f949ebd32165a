package multipart

// window is a fixed-capacity buffer file bytes are collected into before being passed to
// the upload callback. Its capacity never changes, regardless of the file size.
type window struct {
	memory []byte
}

func newWindow(size int) window {
	return window{memory: make([]byte, 0, size)}
}

// Fill copies as many bytes as fit into the window and returns the rest.
func (w *window) Fill(data []byte) (rest []byte) {
	n := copy(w.memory[len(w.memory):cap(w.memory)], data)
	w.memory = w.memory[:len(w.memory)+n]

	return data[n:]
}

func (w *window) Full() bool {
	return len(w.memory) == cap(w.memory)
}

// Flush empties the window, returning its content. The returned slice stays valid until
// the next Fill.
func (w *window) Flush() []byte {
	data := w.memory
	w.memory = w.memory[:0]

	return data
}
