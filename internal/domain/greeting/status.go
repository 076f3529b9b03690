package greeting

// Status is the delivery lifecycle state of a greeting.
// Transitions are forward-only:
//
//	SCHEDULED -> SENDING -> SENT -> DELIVERED
//	SENDING   -> FAILED
//	SCHEDULED -> CANCELLED
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusSending   Status = "SENDING"
	StatusSent      Status = "SENT"
	StatusDelivered Status = "DELIVERED"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
)

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusDelivered, StatusFailed, StatusCancelled:
		return true
	}
	return false
}
