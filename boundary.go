package multipart

import (
	"github.com/indigo-web/multipart/internal/strutil"
	"github.com/indigo-web/multipart/mime"
	"github.com/indigo-web/utils/strcomp"
)

// maxBoundaryLength is defined by RFC 2046, 5.1.1.
const maxBoundaryLength = 70

// bchars as defined by RFC 2046, 5.1.1: a-z A-Z 0-9 '()+_,-./:=? and space (but not as the last
// character). Notably, it includes neither CR nor LF, which the matcher relies on.
var bchars = [256]bool{
	' ': true, '\'': true, '(': true, ')': true, '+': true, '_': true, ',': true, '-': true,
	'.': true, '/': true, ':': true, '=': true, '?': true,
	'0': true, '1': true, '2': true, '3': true, '4': true, '5': true, '6': true, '7': true,
	'8': true, '9': true,
	'a': true, 'b': true, 'c': true, 'd': true, 'e': true, 'f': true, 'g': true, 'h': true,
	'i': true, 'j': true, 'k': true, 'l': true, 'm': true, 'n': true, 'o': true, 'p': true,
	'q': true, 'r': true, 's': true, 't': true, 'u': true, 'v': true, 'w': true, 'x': true,
	'y': true, 'z': true,
	'A': true, 'B': true, 'C': true, 'D': true, 'E': true, 'F': true, 'G': true, 'H': true,
	'I': true, 'J': true, 'K': true, 'L': true, 'M': true, 'N': true, 'O': true, 'P': true,
	'Q': true, 'R': true, 'S': true, 'T': true, 'U': true, 'V': true, 'W': true, 'X': true,
	'Y': true, 'Z': true,
}

func validBoundary(boundary string) bool {
	if len(boundary) == 0 || len(boundary) > maxBoundaryLength || boundary[len(boundary)-1] == ' ' {
		return false
	}

	for i := 0; i < len(boundary); i++ {
		if !bchars[boundary[i]] {
			return false
		}
	}

	return true
}

// Boundary extracts the boundary parameter from a multipart/form-data Content-Type value.
// False is returned if the value isn't multipart/form-data, has no or more than a single
// boundary parameter, or the boundary itself isn't valid.
func Boundary(contentType string) (boundary string, ok bool) {
	if len(contentType) == 0 || !mime.Complies(mime.Multipart, contentType) {
		return "", false
	}

	_, params := strutil.CutHeader(contentType)
	for key, value := range strutil.WalkParams(params) {
		switch {
		case len(key) == 0:
			return "", false
		case strcomp.EqualFold(key, "boundary"):
			if len(boundary) != 0 {
				return "", false
			}

			boundary = value
		}
	}

	return boundary, validBoundary(boundary)
}
