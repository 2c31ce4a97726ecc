package application

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("application not found")
	ErrInvalidTransition = errors.New("invalid application transition")
	ErrNotSubmitter      = errors.New("only the submitting employee may cancel an application")
	ErrNotAuthorized     = errors.New("actor is not authorized for this approval stage")
)

// InvalidTransitionError reports an attempted transition the table does not
// enumerate, including any transition out of a terminal state.
type InvalidTransitionError struct {
	ApplicationID string
	From          Status
	To            Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("application %s: cannot transition from %s to %s", e.ApplicationID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
