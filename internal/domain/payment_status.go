package domain

type PaymentStatus string

const (
	PaymentStatusIdle         PaymentStatus = "IDLE"
	PaymentStatusPreparing    PaymentStatus = "PREPARING"
	PaymentStatusAwaitingUser PaymentStatus = "AWAITING_USER"
	PaymentStatusVerifying    PaymentStatus = "VERIFYING"
	PaymentStatusCommitted    PaymentStatus = "COMMITTED"
	PaymentStatusCancelled    PaymentStatus = "CANCELLED"
	PaymentStatusFailed       PaymentStatus = "FAILED"
)

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusCommitted || s == PaymentStatusCancelled || s == PaymentStatusFailed
}

// String representation (for logging)
func (s PaymentStatus) String() string {
	return string(s)
}

// validTransitions holds the only legal moves of one payment attempt. The COD
// path commits straight from IDLE; cancellation exists only while the payment
// UI is open.
var validTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusIdle:         {PaymentStatusPreparing, PaymentStatusCommitted, PaymentStatusFailed},
	PaymentStatusPreparing:    {PaymentStatusAwaitingUser, PaymentStatusFailed},
	PaymentStatusAwaitingUser: {PaymentStatusVerifying, PaymentStatusCancelled, PaymentStatusFailed},
	PaymentStatusVerifying:    {PaymentStatusCommitted, PaymentStatusFailed},
}

// CanTransitionTo reports whether moving from current to next is legal.
func CanTransitionTo(current, next PaymentStatus) bool {
	for _, allowed := range validTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}
