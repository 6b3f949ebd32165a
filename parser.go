package multipart

import (
	"bytes"
	"io"

	"github.com/indigo-web/multipart/config"
	"github.com/indigo-web/multipart/form"
)

// Logger is satisfied by *log.Logger, as well as by most of the logging libraries' std adapters.
type Logger interface {
	Printf(format string, v ...any)
}

// Parser is a single multipart/form-data parsing session. It is fed the body piece by piece,
// in the order the pieces arrive, and doesn't care about how the body is split. The parser
// never blocks and must not be used concurrently.
type Parser struct {
	cfg      *config.Config
	state    State
	matcher  matcher
	headers  headersParser
	sink     sink
	form     form.Form
	charset  string
	consumed uint64
	err      error
	logger   Logger
}

// NewParser returns a parser for a body with the given boundary, as specified in the
// Content-Type. Upload receives contents of files; if it's nil, the contents are discarded,
// but the form entries are kept.
func NewParser(cfg *config.Config, boundary string, upload UploadCallback) (*Parser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Parser{
		cfg: cfg,
		headers: newHeadersParser(
			cfg.Multipart.HeaderLineSize.Default,
			cfg.Multipart.HeaderLineSize.Maximal,
			cfg.Multipart.HeadersNumber,
		),
		sink: newSink(upload, cfg.Multipart.StreamChunkSize, cfg.Multipart.ValuePrealloc),
	}

	if err := p.Reset(boundary, upload); err != nil {
		return nil, err
	}

	return p, nil
}

// Reset prepares the parser for a new body, so the buffers can be reused. The form returned
// by the previous session stays intact.
func (p *Parser) Reset(boundary string, upload UploadCallback) error {
	if !validBoundary(boundary) {
		return ErrBadBoundary
	}

	p.state = Start
	p.matcher = newMatcher(boundary)
	p.headers.Reset()
	p.sink.Abort()
	p.sink.upload = upload
	p.form = make(form.Form, 0, p.cfg.Body.Form.EntriesPrealloc)
	p.charset = p.cfg.Body.Form.DefaultCoding
	p.consumed = 0
	p.err = nil

	return nil
}

// SetLogger makes the parser report failed sessions.
func (p *Parser) SetLogger(logger Logger) {
	p.logger = logger
}

// Parse consumes the next piece of the body. Final must be set on the last piece; an empty
// piece is permitted. Parse returns nil if more data is needed, io.EOF when the closing
// boundary was reached, otherwise an error. Both io.EOF and errors are sticky. Data
// following the closing boundary is ignored.
//
// Entries committed before a failure are still available via Form.
func (p *Parser) Parse(data []byte, final bool) error {
	switch p.state {
	case Done:
		return io.EOF
	case Failed:
		return p.err
	}

	p.consumed += uint64(len(data))

	if err := p.parse(data); err != nil {
		return err
	}

	if final {
		return p.fail(ErrTruncatedBody)
	}

	return nil
}

// Form returns entries parsed so far.
func (p *Parser) Form() form.Form {
	return p.form
}

// State returns the current state of the session.
func (p *Parser) State() State {
	return p.state
}

// Consumed returns the number of bytes fed to the parser in the current session.
func (p *Parser) Consumed() uint64 {
	return p.consumed
}

func (p *Parser) parse(data []byte) (err error) {
	var v verdict

	for len(data) > 0 {
		switch p.state {
		case Start:
			p.matcher.Prime()
			p.state = SeekingBoundary
		case SeekingBoundary:
			data, v = p.seek(data)
			switch v {
			case continuation:
				p.beginHeaders()
			case final:
				p.state = Done
				return io.EOF
			}
		case ParsingHeaders:
			var done bool
			data, done, err = p.headers.Feed(data)
			if err != nil {
				return p.fail(err)
			}

			if done {
				p.beginBody()
			}
		case ParsingBody:
			data, v, err = p.passBody(data)
			if err != nil {
				return p.fail(err)
			}

			switch v {
			case continuation:
				if err = p.commit(); err != nil {
					return p.fail(err)
				}

				p.beginHeaders()
			case final:
				if err = p.commit(); err != nil {
					return p.fail(err)
				}

				p.state = Done
				return io.EOF
			}
		default:
			panic("unreachable code")
		}
	}

	return nil
}

// seek discards everything until the first delimiter, which is the preamble.
func (p *Parser) seek(data []byte) (rest []byte, v verdict) {
	for i := 0; i < len(data); i++ {
		if p.matcher.Idle() {
			cr := bytes.IndexByte(data[i:], '\r')
			if cr == -1 {
				return nil, partial
			}

			i += cr
		}

		switch v = p.matcher.Feed(data[i]); v {
		case noMatch:
			if len(p.matcher.Flush()) > 0 {
				// the byte might begin a delimiter itself
				i--
			}
		case partial:
		default:
			return data[i+1:], v
		}
	}

	return nil, partial
}

// passBody passes everything up to the delimiter to the sink. Bytes that might be the
// beginning of a delimiter are withheld until the matcher decides on them.
func (p *Parser) passBody(data []byte) (rest []byte, v verdict, err error) {
	for len(data) > 0 {
		if p.matcher.Idle() {
			cr := bytes.IndexByte(data, '\r')
			if cr == -1 {
				return nil, partial, p.sink.Write(data)
			}

			if err = p.sink.Write(data[:cr]); err != nil {
				return nil, noMatch, err
			}

			data = data[cr:]
		}

		switch v = p.matcher.Feed(data[0]); v {
		case noMatch:
			withheld := p.matcher.Flush()
			if len(withheld) == 0 {
				withheld, data = data[:1], data[1:]
			}

			// the current byte isn't consumed, as it might begin a delimiter itself
			if err = p.sink.Write(withheld); err != nil {
				return nil, noMatch, err
			}
		case partial:
			data = data[1:]
		default:
			return data[1:], v, nil
		}
	}

	return nil, partial, nil
}

func (p *Parser) beginHeaders() {
	p.headers.Reset()
	p.state = ParsingHeaders
}

func (p *Parser) beginBody() {
	item := p.headers.Item()
	if item.isFile {
		if len(item.contentType) == 0 {
			item.contentType = p.cfg.Body.Form.DefaultContentType
		}
	} else {
		item.contentType = ""
	}

	if len(item.charset) == 0 {
		item.charset = p.charset
	}

	p.sink.Begin(item)
	p.state = ParsingBody
}

func (p *Parser) commit() error {
	data, err := p.sink.Finish()
	if err != nil {
		return err
	}

	if !data.IsFile && data.Name == "_charset_" && len(data.Value) > 0 {
		// RFC 7578, 4.6
		p.charset = data.Value
	}

	p.form = append(p.form, data)
	return nil
}

func (p *Parser) fail(err error) error {
	p.sink.Abort()

	if p.logger != nil {
		p.logger.Printf(
			"multipart: session failed in %s after %d bytes with %d entries committed: %s",
			p.state, p.consumed, len(p.form), err,
		)
	}

	p.state, p.err = Failed, err

	return err
}
