package domain

// PaymentIntent is the in-memory handle for one online payment attempt. It is
// never persisted and is discarded once a terminal status is reached.
type PaymentIntent struct {
	AttemptID      string
	GatewayOrderID string
	// Amount is in minor units (cents, paise).
	Amount   int64
	Currency string
	Status   PaymentStatus
}

// Transition moves the intent to next if that move is legal.
func (p *PaymentIntent) Transition(next PaymentStatus) bool {
	if !CanTransitionTo(p.Status, next) {
		return false
	}
	p.Status = next
	return true
}
