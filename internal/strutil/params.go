package strutil

import (
	"iter"
	"strings"
)

// WalkParams iterates over the parameters of a header value, e.g. `name="a"; filename=b.txt`.
// Values might be either tokens or quoted strings. Inside quoted strings, only \" and \\ are
// treated as escape sequences, as browsers send raw backslashes in filenames. Parameters without
// a value are yielded with an empty one. Malformed input yields an empty key and stops the walk.
func WalkParams(data string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for {
			data = LStripWS(data)
			if len(data) == 0 {
				return
			}

			sep := strings.IndexAny(data, "=;")
			if sep == -1 {
				yield(RStripWS(data), "")
				return
			}

			key := RStripWS(data[:sep])
			if data[sep] == ';' {
				data = data[sep+1:]
				if len(key) == 0 {
					continue
				}

				if !yield(key, "") {
					return
				}

				continue
			}

			if len(key) == 0 {
				yield("", "")
				return
			}

			var value string
			data = LStripWS(data[sep+1:])

			if len(data) > 0 && data[0] == '"' {
				var ok bool
				value, data, ok = cutQuoted(data)
				if !ok {
					yield("", "")
					return
				}

				data = LStripWS(data)
				if len(data) > 0 {
					if data[0] != ';' {
						yield("", "")
						return
					}

					data = data[1:]
				}
			} else {
				semicolon := strings.IndexByte(data, ';')
				if semicolon == -1 {
					value, data = RStripWS(data), ""
				} else {
					value, data = RStripWS(data[:semicolon]), data[semicolon+1:]
				}
			}

			if !yield(key, value) {
				return
			}
		}
	}
}

// cutQuoted consumes a quoted string at the beginning of str.
func cutQuoted(str string) (value, rest string, ok bool) {
	escaped := false

	for i := 1; i < len(str); i++ {
		switch str[i] {
		case '\\':
			if i+1 < len(str) && (str[i+1] == '"' || str[i+1] == '\\') {
				escaped = true
				i++
			}
		case '"':
			value = str[1:i]
			if escaped {
				value = unescape(value)
			}

			return value, str[i+1:], true
		}
	}

	return "", str, false
}

func unescape(str string) string {
	var b strings.Builder
	b.Grow(len(str))

	for i := 0; i < len(str); i++ {
		if str[i] == '\\' && i+1 < len(str) && (str[i+1] == '"' || str[i+1] == '\\') {
			i++
		}

		b.WriteByte(str[i])
	}

	return b.String()
}
