package mime

import (
	"github.com/indigo-web/multipart/internal/strutil"
	"github.com/indigo-web/utils/strcomp"
)

type MIME = string

const (
	OctetStream MIME = "application/octet-stream"
	Plain       MIME = "text/plain"
	PDF         MIME = "application/pdf"
	Multipart   MIME = "multipart/form-data"
	JPEG        MIME = "image/jpeg"
	PNG         MIME = "image/png"
)

// Complies returns whether two MIMEs are compatible. Empty MIME is
// considered compatible with any other MIME
func Complies(mime MIME, with string) bool {
	// get rid of parameters if any
	with, _ = strutil.CutHeader(with)
	with = strutil.RStripWS(with)
	return len(with) == 0 || strcomp.EqualFold(with, mime)
}
