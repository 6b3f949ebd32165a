package multipart

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/indigo-web/multipart/internal/buffer"
	"github.com/indigo-web/multipart/internal/strutil"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

// headersParser consumes the header block of a part, line by line, until the blank line.
type headersParser struct {
	line        buffer.Buffer
	maxLineSize int
	lines       int
	maxLines    int
	item        part
	hasName     bool
}

// newHeadersParser returns a parser limiting header lines to maxLineSize bytes, not counting
// the line terminator.
func newHeadersParser(lineSize, maxLineSize, maxLines int) headersParser {
	return headersParser{
		// one extra byte for the CR, which is stripped afterwards
		line:        buffer.New(lineSize, maxLineSize+1),
		maxLineSize: maxLineSize,
		maxLines:    maxLines,
	}
}

// Reset prepares the parser for the next header block.
func (h *headersParser) Reset() {
	h.line.Clear()
	h.lines = 0
	h.item = part{}
	h.hasName = false
}

// Feed consumes header lines. Once the blank line is met, done is set and rest holds the
// data following it, which is already the body of the part.
func (h *headersParser) Feed(data []byte) (rest []byte, done bool, err error) {
	for len(data) > 0 {
		lf := bytes.IndexByte(data, '\n')
		if lf == -1 {
			if !h.line.Append(data) {
				return nil, false, h.tooLong()
			}

			return nil, false, nil
		}

		if !h.line.Append(data[:lf]) {
			return nil, false, h.tooLong()
		}

		data = data[lf+1:]

		if line := h.line.Preview(); len(line) > 0 && line[len(line)-1] == '\r' {
			h.line.Trunc(1)
		}

		if h.line.Len() > h.maxLineSize {
			return nil, false, h.tooLong()
		}

		if h.line.Len() == 0 {
			if !h.hasName {
				return nil, false, fmt.Errorf("%w: no name in Content-Disposition", ErrMalformedPart)
			}

			return data, true, nil
		}

		if h.lines++; h.lines > h.maxLines {
			return nil, false, fmt.Errorf("%w: more than %d header lines", ErrMalformedPart, h.maxLines)
		}

		if err = h.parseLine(uf.B2S(h.line.Preview())); err != nil {
			return nil, false, err
		}

		h.line.Clear()
	}

	return nil, false, nil
}

// Item returns the part described by the header block.
func (h *headersParser) Item() part {
	return h.item
}

func (h *headersParser) tooLong() error {
	return fmt.Errorf("%w: header line is too long", ErrMalformedPart)
}

// parseLine processes a single header line. The line is backed by the reusable buffer,
// so everything stored must be cloned.
func (h *headersParser) parseLine(line string) error {
	key, value, found := strings.Cut(line, ":")
	if !found {
		return fmt.Errorf("%w: header line without a colon", ErrMalformedPart)
	}

	value = strutil.RStripWS(strutil.LStripWS(value))

	switch key = strutil.RStripWS(key); {
	case strcomp.EqualFold(key, "content-disposition"):
		return h.parseContentDisposition(value)
	case strcomp.EqualFold(key, "content-type"):
		return h.parseContentType(value)
	default:
		// must ignore
		return nil
	}
}

func (h *headersParser) parseContentDisposition(value string) error {
	// the disposition type is implied to be form-data and therefore isn't checked.
	_, params := strutil.CutHeader(value)

	for key, val := range strutil.WalkParams(params) {
		switch {
		case len(key) == 0:
			return fmt.Errorf("%w: bad Content-Disposition parameters", ErrMalformedPart)
		case strcomp.EqualFold(key, "name"):
			h.item.name = strings.Clone(val)
			h.hasName = len(val) > 0
		case strcomp.EqualFold(key, "filename"):
			h.item.filename = strings.Clone(val)
			h.item.isFile = true
		}
	}

	return nil
}

func (h *headersParser) parseContentType(value string) error {
	contentType, params := strutil.CutHeader(value)
	h.item.contentType = strings.Clone(strutil.RStripWS(contentType))

	for key, val := range strutil.WalkParams(params) {
		switch {
		case len(key) == 0:
			return fmt.Errorf("%w: bad Content-Type parameters", ErrMalformedPart)
		case strcomp.EqualFold(key, "charset"):
			h.item.charset = strings.Clone(val)
		}
	}

	return nil
}
