package stubserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type cartItem struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	PriceAmount decimal.Decimal `json:"priceAmount"`
	Quantity    int32           `json:"quantity"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

type cartPayload struct {
	Items []cartItem `json:"items"`
}

// cartMemoryStore keeps one cart per user key.
type cartMemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]cartItem
}

func newCartMemoryStore() *cartMemoryStore {
	return &cartMemoryStore{carts: make(map[string][]cartItem)}
}

func (s *cartMemoryStore) get(user string) []cartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]cartItem, len(s.carts[user]))
	copy(items, s.carts[user])
	return items
}

func (s *cartMemoryStore) add(user string, item cartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.carts[user] {
		if existing.ProductID == item.ProductID {
			s.carts[user][i].Quantity += item.Quantity
			return
		}
	}
	s.carts[user] = append(s.carts[user], item)
}

func (s *cartMemoryStore) setQuantity(user string, productID int64, quantity int32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.carts[user] {
		if existing.ProductID == productID {
			s.carts[user][i].Quantity = quantity
			return true
		}
	}
	return false
}

func (s *cartMemoryStore) remove(user string, productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[user]
	for i, existing := range items {
		if existing.ProductID == productID {
			s.carts[user] = append(items[:i], items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *cartMemoryStore) clear(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, user)
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int32 `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int32 `json:"quantity"`
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, cartPayload{Items: s.carts.get(userKey(r))})
}

func (s *Server) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "quantity must be between 1 and 99")
		return
	}

	product, ok := s.catalog[req.ProductID]
	if !ok {
		respondError(w, http.StatusBadRequest, "product not found")
		return
	}

	user := userKey(r)
	s.carts.add(user, cartItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		PriceAmount: product.Price,
		Quantity:    req.Quantity,
		ImageURL:    product.ImageURL,
	})
	respondJSON(w, http.StatusCreated, cartPayload{Items: s.carts.get(user)})
}

func (s *Server) updateCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "quantity must be between 1 and 99")
		return
	}

	user := userKey(r)
	if !s.carts.setQuantity(user, productID, req.Quantity) {
		respondError(w, http.StatusNotFound, "item not in cart")
		return
	}
	respondJSON(w, http.StatusOK, cartPayload{Items: s.carts.get(user)})
}

func (s *Server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	user := userKey(r)
	if !s.carts.remove(user, productID) {
		respondError(w, http.StatusNotFound, "item not in cart")
		return
	}
	respondJSON(w, http.StatusOK, cartPayload{Items: s.carts.get(user)})
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	s.carts.clear(userKey(r))
	respondJSON(w, http.StatusOK, cartPayload{Items: []cartItem{}})
}
