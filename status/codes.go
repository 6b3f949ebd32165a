package status

type (
	Code   uint16
	Status string
)

// Codes a request body consumer may answer with. The surrounding transport maps
// them onto the response; the rest of the registry lives there.
const (
	BadRequest            Code = 400 // RFC 9110, 15.5.1
	RequestEntityTooLarge Code = 413 // RFC 9110, 15.5.14
	UnsupportedMediaType  Code = 415 // RFC 9110, 15.5.16
	InternalServerError   Code = 500 // RFC 9110, 15.6.1
)

// Text returns a text for the HTTP status code. It returns the empty
// string if the code is unknown.
func Text(code Code) Status {
	switch code {
	case BadRequest:
		return "Bad Request"
	case RequestEntityTooLarge:
		return "Request Entity Too Large"
	case UnsupportedMediaType:
		return "Unsupported Media Type"
	case InternalServerError:
		return "Internal Server Error"
	default:
		return ""
	}
}
