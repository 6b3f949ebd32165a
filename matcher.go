package multipart

type verdict uint8

const (
	noMatch verdict = iota
	partial
	continuation
	final
)

// matcher recognizes the delimiter CRLF "--" boundary followed either by "--" (the body is
// complete) or by CRLF (another part follows). It is fed byte by byte, so a delimiter spread
// over any number of chunks is recognized as well.
//
// Withheld bytes are always a prefix of one of the two sequences below, therefore they are
// never copied anywhere: on mismatch, Flush returns them right from the sequence. At most
// len(delimiter)+1 bytes are withheld at once.
type matcher struct {
	closing, next []byte
	seq           []byte
	pos           int
	continued     bool
}

func newMatcher(boundary string) matcher {
	delimiter := "\r\n--" + boundary
	m := matcher{
		closing: []byte(delimiter + "--"),
		next:    []byte(delimiter + "\r\n"),
	}
	m.seq = m.closing

	return m
}

// Prime pretends that the leading CRLF was already seen. The very first delimiter of the body
// has none.
func (m *matcher) Prime() {
	m.pos = len("\r\n")
}

// Idle tells whether no bytes are withheld.
func (m *matcher) Idle() bool {
	return m.pos == 0
}

// Feed advances the matcher by a single byte. On noMatch the matcher isn't reset, Flush must
// be called to obtain the withheld bytes; the byte itself must be fed again afterwards.
func (m *matcher) Feed(c byte) verdict {
	if c != m.seq[m.pos] {
		// both sequences share everything but the last 2 bytes.
		if m.pos != len(m.closing)-2 || c != '\r' {
			return noMatch
		}

		m.seq, m.continued = m.next, true
	}

	if m.pos++; m.pos < len(m.seq) {
		return partial
	}

	v := final
	if m.continued {
		v = continuation
	}

	m.reset()
	return v
}

// Flush returns the withheld bytes in their original order and resets the matcher.
func (m *matcher) Flush() []byte {
	withheld := m.seq[:m.pos]
	m.reset()

	return withheld
}

func (m *matcher) reset() {
	m.pos = 0
	m.seq, m.continued = m.closing, false
}
