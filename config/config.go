package config

import (
	"github.com/indigo-web/multipart/mime"
)

type (
	BodyForm struct {
		// EntriesPrealloc is the number of preallocated seats for form.Form.
		EntriesPrealloc int `yaml:"entries_prealloc"`
		// DefaultCoding sets the default charset of form fields unless one is explicitly set,
		// either via the Content-Type of a part or via the _charset_ field.
		DefaultCoding mime.Charset `yaml:"default_coding"`
		// DefaultContentType sets the MIME of uploaded files unless one is explicitly set.
		DefaultContentType mime.MIME `yaml:"default_content_type"`
	}

	MultipartHeaderLineSize struct {
		Default int `yaml:"default"`
		Maximal int `yaml:"maximal"`
	}
)

type (
	Body struct {
		// MaxSize describes the maximal size of a body, that can be processed. It is enforced by
		// the body retrievers and never by the multipart parser itself.
		MaxSize uint64 `yaml:"max_size"`
		// Form holds the defaults applied to parsed form entries.
		Form BodyForm `yaml:"form"`
	}

	Multipart struct {
		// HeaderLineSize limits a single header line of a part, not counting the CRLF. Default is
		// the initial capacity of the line buffer, exceeding Maximal fails the whole body.
		HeaderLineSize MultipartHeaderLineSize `yaml:"header_line_size"`
		// HeadersNumber is the maximal number of header lines in a single part.
		HeadersNumber int `yaml:"headers_number"`
		// StreamChunkSize is the size of a window file bytes are collected into before being
		// passed to the upload callback. Memory consumption per upload doesn't depend on its size.
		StreamChunkSize int `yaml:"stream_chunk_size"`
		// ValuePrealloc is the initial capacity of a buffer collecting a value of a non-file field.
		ValuePrealloc int `yaml:"value_prealloc"`
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// the body source
		ReadBufferSize int `yaml:"read_buffer_size"`
	}
)

// Config holds limitations and pre-allocations used by the multipart parser and body retrievers.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Body      Body      `yaml:"body"`
	Multipart Multipart `yaml:"multipart"`
	NET       NET       `yaml:"net"`
}

// Default returns default config. Those are initially well-balanced, however maximal defaults
// are pretty permitting.
func Default() *Config {
	return &Config{
		Body: Body{
			MaxSize: 16 * 1024 * 1024, // 16 megabytes
			Form: BodyForm{
				EntriesPrealloc:    8,
				DefaultCoding:      mime.UTF8,
				DefaultContentType: mime.Plain,
			},
		},
		Multipart: Multipart{
			HeaderLineSize: MultipartHeaderLineSize{
				Default: 256,
				// long filenames are the only legitimate reason for a header line to grow.
				Maximal: 4 * 1024,
			},
			HeadersNumber:   16,
			StreamChunkSize: 1024,
			ValuePrealloc:   64,
		},
		NET: NET{
			ReadBufferSize: 4 * 1024,
		},
	}
}
