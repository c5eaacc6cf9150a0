package pipeline

// Outcome classifies the result of processing one directory entry.
// Exactly one outcome is recorded per entry.
type Outcome int

const (
	OutcomeMoved         Outcome = iota // Entry now lives at its derived path.
	OutcomeNotFound                     // Source entry vanished between listing and move.
	OutcomeAlreadyExists                // Destination path already occupied; nothing touched.
	OutcomeUnexpected                   // Derive failure, permission error, EXDEV, anything else.
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeNotFound:
		return "not found"
	case OutcomeAlreadyExists:
		return "already exists"
	case OutcomeUnexpected:
		return "unexpected error"
	}
	return "unknown"
}

// EntryResult is the per-entry record in a Report. NewName is empty when
// derivation failed; Err is nil only for OutcomeMoved.
type EntryResult struct {
	OldName string
	NewName string
	Outcome Outcome
	Err     error
}

// Report is the ordered sequence of per-entry outcomes for one run, in
// listing order.
type Report []EntryResult

// Count returns the number of entries with the given outcome.
func (r Report) Count(o Outcome) int {
	n := 0
	for _, e := range r {
		if e.Outcome == o {
			n++
		}
	}
	return n
}
