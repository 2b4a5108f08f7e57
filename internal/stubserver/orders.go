package stubserver

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type placedOrder struct {
	ID            string
	User          string
	PaymentMethod string
	Items         []cartItem
	Total         decimal.Decimal
}

type orderMemoryStore struct {
	mu     sync.RWMutex
	orders map[string]placedOrder
}

func newOrderMemoryStore() *orderMemoryStore {
	return &orderMemoryStore{orders: make(map[string]placedOrder)}
}

func (s *orderMemoryStore) put(o placedOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
}

func (s *orderMemoryStore) get(id string) (placedOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return o, ok
}

// placeOrder accepts the classic checkout form and answers the way the
// server-rendered storefront does: a redirect to the order page on success,
// a redirect back to checkout with the reason on rejection.
func (s *Server) placeOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.rejectOrder(w, r, "invalid order form")
		return
	}

	method := r.PostForm.Get("paymentMethod")
	if method != "COD" && method != "ONLINE" {
		s.rejectOrder(w, r, "unsupported payment method")
		return
	}

	selected := r.PostForm["selectedProductIds"]
	if len(selected) == 0 {
		s.rejectOrder(w, r, "no products selected for the order")
		return
	}

	user := userKey(r)
	inCart := make(map[int64]cartItem)
	for _, item := range s.carts.get(user) {
		inCart[item.ProductID] = item
	}

	var items []cartItem
	total := decimal.Zero
	for _, raw := range selected {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.rejectOrder(w, r, fmt.Sprintf("invalid product id %q", raw))
			return
		}
		item, ok := inCart[id]
		if !ok {
			s.rejectOrder(w, r, fmt.Sprintf("product %d is not in the cart", id))
			return
		}
		items = append(items, item)
		total = total.Add(item.PriceAmount.Mul(decimal.NewFromInt32(item.Quantity)))
	}

	order := placedOrder{
		ID:            uuid.New().String(),
		User:          user,
		PaymentMethod: method,
		Items:         items,
		Total:         total,
	}
	s.orders.put(order)
	s.logger.Info("order placed", "order_id", order.ID, "payment_method", method, "items", len(items))

	http.Redirect(w, r, "/orders/"+order.ID, http.StatusSeeOther)
}

func (s *Server) rejectOrder(w http.ResponseWriter, r *http.Request, reason string) {
	s.logger.Warn("order rejected", "reason", reason)
	http.Redirect(w, r, "/checkout?error="+url.QueryEscape(reason), http.StatusSeeOther)
}

// checkoutPage and orderPage exist so redirect-following clients land on a
// real 200.
func (s *Server) checkoutPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if msg := r.URL.Query().Get("error"); msg != "" {
		fmt.Fprintf(w, `<html><body><div class="alert-danger">%s</div></body></html>`, msg)
		return
	}
	fmt.Fprint(w, "<html><body>checkout</body></html>")
}

func (s *Server) orderPage(w http.ResponseWriter, r *http.Request) {
	order, ok := s.orders.get(chi.URLParam(r, "orderID"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<html><body>order %s placed with %s</body></html>", order.ID, order.PaymentMethod)
}
