package session

// Phase is the lifecycle state of a modal or an async view region,
// modeled explicitly instead of as DOM visibility flags.
type Phase int

const (
	Closed Phase = iota
	Loading
	Ready
	Submitting
	Done
	Failed
)

func (p Phase) String() string {
	switch p {
	case Closed:
		return "closed"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Submitting:
		return "submitting"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return ""
	}
}

// Modal is the state of one modal instance: its phase and, when failed,
// the error text shown as its body. Visibility is the only state that
// outlives a single fetch.
type Modal struct {
	Phase Phase
	Err   string
}

// Open reports whether the modal is visible in any phase.
func (m Modal) Open() bool {
	return m.Phase != Closed
}
