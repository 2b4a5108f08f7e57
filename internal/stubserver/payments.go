package stubserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

type gatewayOrder struct {
	RazorpayOrderID string `json:"razorpayOrderId"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type verifyRequest struct {
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

type gatewayConfigPayload struct {
	Enabled bool   `json:"enabled"`
	KeyID   string `json:"keyId"`
}

// paymentState remembers prepared gateway orders and signs payments the way
// Razorpay does: hex HMAC-SHA256 over "orderId|paymentId".
type paymentState struct {
	mu     sync.Mutex
	secret []byte
	orders map[string]gatewayOrder
}

func newPaymentState(secret string) *paymentState {
	return &paymentState{
		secret: []byte(secret),
		orders: make(map[string]gatewayOrder),
	}
}

func (p *paymentState) create(amount int64, currency string) gatewayOrder {
	order := gatewayOrder{
		RazorpayOrderID: "order_" + uuid.New().String(),
		Amount:          amount,
		Currency:        currency,
	}
	p.mu.Lock()
	p.orders[order.RazorpayOrderID] = order
	p.mu.Unlock()
	return order
}

func (p *paymentState) known(orderID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.orders[orderID]
	return ok
}

func (p *paymentState) sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, p.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (p *paymentState) verify(req verifyRequest) bool {
	expected := p.sign(req.RazorpayOrderID, req.RazorpayPaymentID)
	return hmac.Equal([]byte(expected), []byte(req.RazorpaySignature))
}

// Sign produces a valid signature for a prepared order, for tests and demo
// payment widgets standing in for the real gateway.
func (s *Server) Sign(orderID, paymentID string) string {
	return s.payments.sign(orderID, paymentID)
}

func (s *Server) gatewayEnabled(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, gatewayConfigPayload{
		Enabled: s.cfg.GatewayEnabled,
		KeyID:   s.cfg.GatewayKeyID,
	})
}

func (s *Server) createGatewayOrder(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.GatewayEnabled {
		respondError(w, http.StatusBadRequest, "online payment is disabled")
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Amount <= 0 {
		respondError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if req.Currency == "" {
		respondError(w, http.StatusBadRequest, "currency is required")
		return
	}

	respondJSON(w, http.StatusOK, s.payments.create(req.Amount, req.Currency))
}

func (s *Server) verifySignature(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if !s.payments.known(req.RazorpayOrderID) {
		respondError(w, http.StatusBadRequest, "unknown razorpay order")
		return
	}
	if !s.payments.verify(req) {
		s.logger.Warn("rejected payment signature", "razorpay_order_id", req.RazorpayOrderID)
		respondError(w, http.StatusBadRequest, "invalid payment signature")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"verified": true})
}
