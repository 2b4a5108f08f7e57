package payment

import "errors"

var (
	ErrAttemptInProgress   = errors.New("a payment attempt is already in progress")
	ErrGatewayUnavailable  = errors.New("online payment is not available")
	IllegalTransitionError = errors.New("illegal transition of payment status")

	// ErrPostPaymentCommit marks the one failure mode where money has moved
	// but the order does not exist. Nothing is cleaned up so the evidence
	// survives for support.
	ErrPostPaymentCommit = errors.New("payment verified but order creation failed")
)
