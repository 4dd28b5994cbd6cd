package enum

// ReturnStatus represents the state of a sales return
type ReturnStatus string

const (
	ReturnStatusPending   ReturnStatus = "PENDING"
	ReturnStatusApproved  ReturnStatus = "APPROVED"
	ReturnStatusCompleted ReturnStatus = "COMPLETED"
	ReturnStatusRejected  ReturnStatus = "REJECTED"
)

// IsTerminal reports whether the return can no longer change state.
func (s ReturnStatus) IsTerminal() bool {
	return s == ReturnStatusCompleted || s == ReturnStatusRejected
}

func (s ReturnStatus) String() string {
	return string(s)
}
