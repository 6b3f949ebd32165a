package multipart

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/multipart/body"
	"github.com/indigo-web/multipart/config"
	"github.com/indigo-web/multipart/form"
	"github.com/indigo-web/multipart/internal/testutil"
	"github.com/indigo-web/multipart/mime"
	"github.com/indigo-web/multipart/status"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	boundary := testutil.Boundary()
	data := testutil.Multipart(boundary,
		testutil.Part{Name: "title", Body: "Holidays"},
		testutil.Part{Name: "photo", File: true, Filename: "beach.jpg", ContentType: mime.JPEG, Body: "JFIF\r\n--not really a jpeg"},
	)
	wantForm := form.Form{
		{Name: "title", Charset: mime.UTF8, Value: "Holidays", Size: 8},
		{Name: "photo", IsFile: true, Filename: "beach.jpg", Type: mime.JPEG, Charset: mime.UTF8, Size: 25},
	}

	getParser := func(t *testing.T) (*Parser, *recorder) {
		rec := new(recorder)
		p, err := NewParser(getConfig(8), boundary, rec.Upload)
		require.NoError(t, err)

		return p, rec
	}

	t.Run("plain", func(t *testing.T) {
		p, rec := getParser(t)
		r := body.NewPlain(bytes.NewReader(data), make([]byte, 16), uint64(len(data)), 1<<20)
		f, err := Read(p, r)
		require.NoError(t, err)
		require.Equal(t, wantForm, f)
		require.Equal(t, "JFIF\r\n--not really a jpeg", rec.File("photo"))
	})

	t.Run("plain one byte at a time", func(t *testing.T) {
		p, rec := getParser(t)
		r := body.NewPlain(iotest.OneByteReader(bytes.NewReader(data)), make([]byte, 16), uint64(len(data)), 1<<20)
		f, err := Read(p, r)
		require.NoError(t, err)
		require.Equal(t, wantForm, f)
		require.Equal(t, "JFIF\r\n--not really a jpeg", rec.File("photo"))
	})

	t.Run("chunked", func(t *testing.T) {
		for _, chunkSize := range []int{1, 7, 64, len(data)} {
			p, rec := getParser(t)
			encoded := testutil.Chunked(data, chunkSize)
			parser := chunkedbody.NewParser(chunkedbody.DefaultSettings())
			r := body.NewChunked(iotest.HalfReader(bytes.NewReader(encoded)), make([]byte, 32), 1<<20, parser, false)
			f, err := Read(p, r)
			require.NoError(t, err, chunkSize)
			require.Equal(t, wantForm, f, chunkSize)
			require.Equal(t, "JFIF\r\n--not really a jpeg", rec.File("photo"), chunkSize)
		}
	})

	t.Run("body too large", func(t *testing.T) {
		p, _ := getParser(t)
		r := body.NewPlain(bytes.NewReader(data), make([]byte, 16), uint64(len(data)), 64)
		_, err := Read(p, r)
		require.True(t, errors.Is(err, status.ErrBodyTooLarge))
	})

	t.Run("truncated body", func(t *testing.T) {
		p, _ := getParser(t)
		truncated := data[:len(data)-10]
		r := body.NewPlain(bytes.NewReader(truncated), make([]byte, 16), uint64(len(truncated)), 1<<20)
		f, err := Read(p, r)
		require.True(t, errors.Is(err, ErrTruncatedBody))
		require.Equal(t, wantForm[:1], f)
	})

	t.Run("retriever error", func(t *testing.T) {
		p, _ := getParser(t)
		r := body.NewPlain(iotest.TimeoutReader(bytes.NewReader(data)), make([]byte, 16), uint64(len(data)), 1<<20)
		_, err := Read(p, r)
		require.ErrorIs(t, err, iotest.ErrTimeout)
	})
}

func TestParseBytes(t *testing.T) {
	t.Run("bad boundary", func(t *testing.T) {
		f, err := ParseBytes(config.Default(), "", []byte(scenario), nil)
		require.Equal(t, ErrBadBoundary, err)
		require.Nil(t, f)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseBytes(config.Default(), "XYZ", []byte("--XYZ\r\nContent-Disposition form-data\r\n\r\n"), nil)
		require.True(t, errors.Is(err, ErrMalformedPart))
		require.Equal(t, status.BadRequest, status.CodeOf(err))
	})
}
