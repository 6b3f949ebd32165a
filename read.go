package multipart

import (
	"io"

	"github.com/indigo-web/multipart/body"
	"github.com/indigo-web/multipart/config"
	"github.com/indigo-web/multipart/form"
)

// Read feeds the parser from the retriever until the closing boundary is met or either of them
// fails. A retriever's error abandons the session without notifying the upload callback, so
// it's up to the caller to release the resources associated with unfinished uploads.
//
// Entries committed before a failure are returned along with the error.
func Read(p *Parser, r body.Retriever) (form.Form, error) {
	for {
		data, err := r.Retrieve()
		last := err == io.EOF
		if err != nil && !last {
			return p.Form(), err
		}

		switch err = p.Parse(data, last); err {
		case nil:
		case io.EOF:
			return p.Form(), nil
		default:
			return p.Form(), err
		}
	}
}

// ParseBytes parses an already fully buffered body.
func ParseBytes(cfg *config.Config, boundary string, data []byte, upload UploadCallback) (form.Form, error) {
	p, err := NewParser(cfg, boundary, upload)
	if err != nil {
		return nil, err
	}

	if err = p.Parse(data, true); err != io.EOF {
		return p.Form(), err
	}

	return p.Form(), nil
}
