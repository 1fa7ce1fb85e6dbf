package booking

import "fmt"

// allowedTransitions maps each booking status to the statuses reachable from
// it. cancelled is terminal.
var allowedTransitions = map[Status]map[Status]bool{
	StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed: {StatusCancelled: true},
}

// CanTransitionTo reports whether a booking in status s may move to next
func (s Status) CanTransitionTo(next Status) bool {
	return allowedTransitions[s][next]
}

// ErrInvalidTransition indicates a forbidden booking status change
type ErrInvalidTransition struct {
	From Status
	To   Status
}

func (e ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid booking transition from %s to %s", e.From, e.To)
}

// Is implements the errors.Is interface for ErrInvalidTransition
func (e ErrInvalidTransition) Is(target error) bool {
	t, ok := target.(ErrInvalidTransition)
	if !ok {
		return false
	}
	if t.From == "" && t.To == "" {
		return true
	}
	return e.From == t.From && e.To == t.To
}
