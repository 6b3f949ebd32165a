package multipart

// State of a parsing session. Start is the initial one, Done and Failed are terminal.
type State uint8

const (
	Start State = iota
	SeekingBoundary
	ParsingHeaders
	ParsingBody
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Start:
		return "Start"
	case SeekingBoundary:
		return "SeekingBoundary"
	case ParsingHeaders:
		return "ParsingHeaders"
	case ParsingBody:
		return "ParsingBody"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}
