package scheduler

import "fmt"

// Response is the user's self-assessment of recall for a presented card.
// It is a closed set: the scheduler switches over it exhaustively.
type Response int

const (
	// DontKnow means the card was not recalled at all.
	DontKnow Response = iota
	// Partial means the card was only partly recalled.
	Partial
	// Know means the card was recalled correctly.
	Know
)

func (r Response) String() string {
	switch r {
	case DontKnow:
		return "dont_know"
	case Partial:
		return "partial"
	case Know:
		return "know"
	default:
		return fmt.Sprintf("Response(%d)", int(r))
	}
}

// ParseResponse parses the wire form of a response.
func ParseResponse(s string) (Response, error) {
	switch s {
	case "dont_know":
		return DontKnow, nil
	case "partial":
		return Partial, nil
	case "know":
		return Know, nil
	default:
		return 0, fmt.Errorf("unknown response %q", s)
	}
}
