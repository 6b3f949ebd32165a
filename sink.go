package multipart

import (
	"fmt"

	"github.com/indigo-web/multipart/form"
)

// Upload is a piece of an uploaded file.
type Upload struct {
	// Name is the name of the form field the file was sent under.
	Name        string
	Filename    string
	ContentType string
	// Offset is the number of bytes of this file delivered by previous calls.
	Offset uint64
	// Data is valid only until the callback returns.
	Data []byte
	// Final is set exactly once per file, on its last piece. The last piece might be empty.
	Final bool
}

// UploadCallback receives file contents piece by piece. Returning an error aborts the whole
// parsing session with ErrSinkRejected. Pieces already delivered before a failure are left
// for the callback to reconcile.
type UploadCallback func(Upload) error

// part is the entry whose body is being parsed at the moment.
type part struct {
	name, filename string
	contentType    string
	charset        string
	isFile         bool
	// size is the number of body bytes consumed, written is the number of them already
	// passed to the upload callback.
	size, written uint64
}

// sink consumes bodies of parts. Values of ordinary fields are collected in memory, files
// are passed to the upload callback via a fixed-size window instead.
type sink struct {
	upload UploadCallback
	window window
	size   int
	value  []byte
	item   part
}

func newSink(upload UploadCallback, windowSize, valuePrealloc int) sink {
	return sink{
		upload: upload,
		size:   windowSize,
		value:  make([]byte, 0, valuePrealloc),
	}
}

// Begin starts collecting the body of a new part.
func (s *sink) Begin(item part) {
	s.item = item
	s.value = s.value[:0]

	if item.isFile && cap(s.window.memory) != s.size {
		// allocated lazily, as most of the forms don't carry any files at all
		s.window = newWindow(s.size)
	}
}

func (s *sink) Write(data []byte) error {
	s.item.size += uint64(len(data))

	if !s.item.isFile {
		s.value = append(s.value, data...)
		return nil
	}

	for len(data) > 0 {
		data = s.window.Fill(data)
		if s.window.Full() {
			if err := s.flush(false); err != nil {
				return err
			}
		}
	}

	return nil
}

// Finish terminates the current part and returns the completed entry. For files, the
// upload callback is notified with the final piece, even when it's empty.
func (s *sink) Finish() (form.Data, error) {
	var err error
	if s.item.isFile {
		err = s.flush(true)
	}

	item := s.item
	s.item = part{}
	if err != nil {
		return form.Data{}, err
	}

	if item.isFile {
		return form.Data{
			Name:     item.name,
			IsFile:   true,
			Filename: item.filename,
			Type:     item.contentType,
			Charset:  item.charset,
			Size:     item.size,
		}, nil
	}

	return form.Data{
		Name:    item.name,
		Charset: item.charset,
		Value:   string(s.value),
		Size:    item.size,
	}, nil
}

// Abort drops the current part without notifying anyone.
func (s *sink) Abort() {
	s.item = part{}
	s.value = s.value[:0]
	s.window.Flush()
}

func (s *sink) flush(final bool) error {
	data := s.window.Flush()
	offset := s.item.written
	s.item.written += uint64(len(data))

	if s.upload == nil {
		return nil
	}

	err := s.upload(Upload{
		Name:        s.item.name,
		Filename:    s.item.filename,
		ContentType: s.item.contentType,
		Offset:      offset,
		Data:        data,
		Final:       final,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSinkRejected, s.item.name, err)
	}

	return nil
}
