// Package body provides byte sources a multipart parser might be fed from. They enforce the
// body size limit, which is a property of the transport and not of the multipart format.
package body

import (
	"fmt"
	"io"
	"math"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/multipart/status"
	"github.com/indigo-web/utils/unreader"
)

type Retriever interface {
	// Retrieve returns the next piece of the body. io.EOF is returned along with the last
	// piece, which might be empty.
	Retrieve() ([]byte, error)
}

// Plain is a body, which length is known in advance (Content-Length.)
type Plain struct {
	reader    io.Reader
	buff      []byte
	maxSize   uint64
	bytesLeft uint64
}

func NewPlain(r io.Reader, buff []byte, contentLength, maxSize uint64) *Plain {
	return &Plain{
		reader:    r,
		buff:      buff,
		maxSize:   maxSize,
		bytesLeft: contentLength,
	}
}

func (p *Plain) Retrieve() ([]byte, error) {
	if p.bytesLeft == 0 {
		return nil, io.EOF
	}

	if p.bytesLeft > p.maxSize {
		return nil, status.ErrBodyTooLarge
	}

	n, err := p.reader.Read(p.buff[:min(uint64(len(p.buff)), p.bytesLeft)])
	p.bytesLeft -= uint64(n)

	switch {
	case p.bytesLeft == 0:
		return p.buff[:n], io.EOF
	case err == io.EOF:
		return nil, io.ErrUnexpectedEOF
	case err != nil:
		return nil, err
	}

	return p.buff[:n], nil
}

// Chunked is a body, encoded with the chunked transfer coding. Data read past the body's
// end is kept and available via Rest.
type Chunked struct {
	reader   io.Reader
	buff     []byte
	unreader *unreader.Unreader
	parser   *chunkedbody.Parser
	trailer  bool
	maxSize  uint64
	received uint64
	done     bool
}

// NewChunked returns a chunked body reader. Trailer must be set if the request announced
// trailer fields.
func NewChunked(r io.Reader, buff []byte, maxSize uint64, parser *chunkedbody.Parser, trailer bool) *Chunked {
	return &Chunked{
		reader:   r,
		buff:     buff,
		unreader: new(unreader.Unreader),
		parser:   parser,
		trailer:  trailer,
		maxSize:  maxSize,
	}
}

func (c *Chunked) Retrieve() ([]byte, error) {
	if c.done {
		return nil, io.EOF
	}

	data, err := c.unreader.PendingOr(c.read)
	if err != nil {
		return nil, err
	}

	chunk, extra, err := c.parser.Parse(data, c.trailer)
	switch err {
	case nil, io.EOF:
	default:
		return nil, fmt.Errorf("%w: %w", status.ErrBadChunk, err)
	}

	received, overflows := adduint(c.received, uint64(len(chunk)))
	if overflows || received > c.maxSize {
		return nil, status.ErrBodyTooLarge
	}

	c.received = received
	c.unreader.Unread(extra)
	c.done = err == io.EOF

	return chunk, err
}

// Rest returns data read past the end of the body. Valid only once the body is exhausted.
func (c *Chunked) Rest() []byte {
	rest, _ := c.unreader.PendingOr(func() ([]byte, error) {
		return nil, nil
	})

	return rest
}

func (c *Chunked) read() ([]byte, error) {
	for {
		n, err := c.reader.Read(c.buff)
		if n > 0 {
			return c.buff[:n], nil
		}

		switch err {
		case nil:
		case io.EOF:
			return nil, io.ErrUnexpectedEOF
		default:
			return nil, err
		}
	}
}

func adduint(x, y uint64) (uint64, bool) {
	return x + y, math.MaxUint64-x < y
}
