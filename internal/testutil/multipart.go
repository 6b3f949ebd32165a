package testutil

import (
	"strconv"
	"strings"

	"github.com/dchest/uniuri"
)

// Part describes a single part of a multipart body to be built.
type Part struct {
	Name string
	// File makes the part carry the filename parameter, even if Filename is empty.
	File        bool
	Filename    string
	ContentType string
	// Headers are appended to the header block as-is.
	Headers []string
	Body    string
}

// Boundary returns a random boundary in the manner browsers do it.
func Boundary() string {
	return "----IndigoFormBoundary" + uniuri.NewLen(16)
}

// Multipart serializes the parts into a multipart/form-data body.
func Multipart(boundary string, parts ...Part) []byte {
	var b strings.Builder

	for _, part := range parts {
		b.WriteString("--")
		b.WriteString(boundary)
		b.WriteString("\r\nContent-Disposition: form-data; name=\"")
		b.WriteString(part.Name)
		b.WriteString("\"")

		if part.File {
			b.WriteString("; filename=\"")
			b.WriteString(part.Filename)
			b.WriteString("\"")
		}

		b.WriteString("\r\n")

		if len(part.ContentType) > 0 {
			b.WriteString("Content-Type: ")
			b.WriteString(part.ContentType)
			b.WriteString("\r\n")
		}

		for _, header := range part.Headers {
			b.WriteString(header)
			b.WriteString("\r\n")
		}

		b.WriteString("\r\n")
		b.WriteString(part.Body)
		b.WriteString("\r\n")
	}

	b.WriteString("--")
	b.WriteString(boundary)
	b.WriteString("--\r\n")

	return []byte(b.String())
}

// Split cuts data into pieces of at most n bytes.
func Split(data []byte, n int) (pieces [][]byte) {
	for len(data) > n {
		pieces = append(pieces, data[:n])
		data = data[n:]
	}

	return append(pieces, data)
}

// Chunked encodes data with the chunked transfer coding, using chunks of at most n bytes.
func Chunked(data []byte, n int) []byte {
	var b strings.Builder

	for _, piece := range Split(data, n) {
		if len(piece) == 0 {
			continue
		}

		b.WriteString(strconv.FormatInt(int64(len(piece)), 16))
		b.WriteString("\r\n")
		b.Write(piece)
		b.WriteString("\r\n")
	}

	b.WriteString("0\r\n\r\n")
	return []byte(b.String())
}
