package application

type Status string

const (
	StatusPendingSupervisor Status = "pending_supervisor"
	StatusPendingHR         Status = "pending_hr"
	StatusApproved          Status = "approved"
	StatusRejected          Status = "rejected"
	StatusCancelled         Status = "cancelled"
)

// transitions is the complete transition table. Anything not enumerated here
// is invalid; there is no other way to change status.
//
// Approved -> Cancelled is the one edge out of an otherwise terminal state:
// the submitting employee may cancel an approved-but-not-yet-taken leave,
// which reverses the credit debit.
var transitions = map[Status][]Status{
	StatusPendingSupervisor: {StatusPendingHR, StatusApproved, StatusRejected, StatusCancelled},
	StatusPendingHR:         {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:          {StatusCancelled},
	StatusRejected:          {},
	StatusCancelled:         {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no approval-flow transition leaves s. Approved is
// terminal for the approval flow even though Cancel may still reach it.
func (s Status) Terminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether from -> to is in the transition table.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
