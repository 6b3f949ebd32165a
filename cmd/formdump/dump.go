package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/multipart"
	"github.com/indigo-web/multipart/body"
	"github.com/indigo-web/multipart/config"
	"github.com/indigo-web/multipart/form"
	"github.com/indigo-web/multipart/status"
	json "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

type entry struct {
	Name     string `json:"name"`
	IsFile   bool   `json:"is_file"`
	Filename string `json:"filename,omitempty"`
	Type     string `json:"type,omitempty"`
	Charset  string `json:"charset,omitempty"`
	Value    string `json:"value,omitempty"`
	Size     uint64 `json:"size"`
}

// upload accounts pieces of a single file delivered to the upload callback.
type upload struct {
	Name        string `json:"name"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Pieces      int    `json:"pieces"`
	Size        uint64 `json:"size"`
	Complete    bool   `json:"complete"`
}

type report struct {
	Consumed uint64    `json:"consumed"`
	Entries  []entry   `json:"entries"`
	Uploads  []*upload `json:"uploads"`
	Error    string    `json:"error,omitempty"`
	Code     int       `json:"code,omitempty"`
	Status   string    `json:"status,omitempty"`
}

type tracker struct {
	logger  *zap.Logger
	uploads []*upload
}

func (t *tracker) Upload(u multipart.Upload) error {
	if u.Offset == 0 {
		t.uploads = append(t.uploads, &upload{
			Name:        u.Name,
			Filename:    u.Filename,
			ContentType: u.ContentType,
		})
	}

	current := t.uploads[len(t.uploads)-1]
	current.Pieces++
	current.Size += uint64(len(u.Data))
	current.Complete = u.Final

	t.logger.Debug("upload piece",
		zap.String("name", u.Name),
		zap.Uint64("offset", u.Offset),
		zap.Int("length", len(u.Data)),
		zap.Bool("final", u.Final),
	)

	return nil
}

type options struct {
	cfg      *config.Config
	boundary string
	chunked  bool
	logger   *zap.Logger
}

// dump parses the body from in and writes the report to out. The report is written even if
// the parsing failed, in which case the error is returned as well.
func dump(in io.Reader, length uint64, out io.Writer, opts options) error {
	t := &tracker{logger: opts.logger}
	p, err := multipart.NewParser(opts.cfg, opts.boundary, t.Upload)
	if err != nil {
		return err
	}

	p.SetLogger(zap.NewStdLog(opts.logger))

	buff := make([]byte, opts.cfg.NET.ReadBufferSize)
	var r body.Retriever
	if opts.chunked {
		parser := chunkedbody.NewParser(chunkedbody.DefaultSettings())
		r = body.NewChunked(in, buff, opts.cfg.Body.MaxSize, parser, false)
	} else {
		r = body.NewPlain(in, buff, length, opts.cfg.Body.MaxSize)
	}

	f, parseErr := multipart.Read(p, r)
	rep := newReport(p.Consumed(), f, t.uploads)
	if parseErr != nil {
		rep.Error = parseErr.Error()
		code := status.CodeOf(parseErr)
		rep.Code, rep.Status = int(code), string(status.Text(code))
	} else {
		opts.logger.Info("form parsed",
			zap.Int("entries", len(f)),
			zap.Int("uploads", len(t.uploads)),
			zap.Uint64("consumed", p.Consumed()),
		)
	}

	stream := json.ConfigDefault.BorrowStream(out)
	stream.WriteVal(rep)
	stream.WriteRaw("\n")
	err = stream.Flush()
	json.ConfigDefault.ReturnStream(stream)

	if parseErr != nil {
		return parseErr
	}

	return err
}

func newReport(consumed uint64, f form.Form, uploads []*upload) report {
	entries := make([]entry, 0, len(f))
	for _, data := range f {
		entries = append(entries, entry{
			Name:     data.Name,
			IsFile:   data.IsFile,
			Filename: data.Filename,
			Type:     data.Type,
			Charset:  data.Charset,
			Value:    data.Value,
			Size:     data.Size,
		})
	}

	if uploads == nil {
		uploads = []*upload{}
	}

	return report{
		Consumed: consumed,
		Entries:  entries,
		Uploads:  uploads,
	}
}

func dumpAction(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String(ConfigFlag.Name); len(path) > 0 {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cli.Exit(err.Error(), exitUsage)
		}
	}

	if size := c.Int(ReadBufferFlag.Name); size > 0 {
		cfg.NET.ReadBufferSize = size
	}

	boundary, err := resolveBoundary(c.String(BoundaryFlag.Name), c.String(ContentTypeFlag.Name))
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	in, length, err := openInput(c.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	defer in.Close()

	logger := newLogger(os.Stderr, c.Bool(VerboseFlag.Name))
	defer func() {
		_ = logger.Sync()
	}()

	err = dump(in, length, os.Stdout, options{
		cfg:      cfg,
		boundary: boundary,
		chunked:  c.Bool(ChunkedFlag.Name),
		logger:   logger,
	})
	if err != nil {
		return cli.Exit(err.Error(), exitRejected)
	}

	return nil
}

// resolveBoundary picks the boundary either set explicitly or extracted from the content type,
// the latter taking precedence.
func resolveBoundary(boundary, contentType string) (string, error) {
	if len(contentType) > 0 {
		var ok bool
		if boundary, ok = multipart.Boundary(contentType); !ok {
			return "", fmt.Errorf("%w: %q carries no valid multipart/form-data boundary",
				status.ErrUnsupportedMediaType, contentType)
		}
	}

	if len(boundary) == 0 {
		return "", errors.New("either --boundary or --content-type must be set")
	}

	return boundary, nil
}

// openInput opens the named file, or reads the whole stdin if the name is empty or a dash.
// The length is the size of the input in bytes.
func openInput(name string) (io.ReadCloser, uint64, error) {
	if len(name) == 0 || name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, 0, fmt.Errorf("cannot read stdin: %w", err)
		}

		return io.NopCloser(bytes.NewReader(data)), uint64(len(data)), nil
	}

	file, err := os.Open(name)
	if err != nil {
		return nil, 0, err
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, 0, err
	}

	return file, uint64(stat.Size()), nil
}
