// Package stubserver is an in-memory stand-in for the storefront backend.
// It serves the cart API, the payment gateway endpoints and the order form
// so the checkout flow can be driven end to end in development and tests.
package stubserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
)

// Product is one catalog entry the stub can put in a cart.
type Product struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	ImageURL string
}

// Config controls the stub's payment gateway behaviour.
type Config struct {
	GatewayEnabled bool
	GatewayKeyID   string
	GatewaySecret  string
	Catalog        []Product
}

type Server struct {
	cfg      Config
	catalog  map[int64]Product
	carts    *cartMemoryStore
	payments *paymentState
	orders   *orderMemoryStore
	router   chi.Router
	logger   *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Server {
	if len(cfg.Catalog) == 0 {
		cfg.Catalog = defaultCatalog()
	}

	catalog := make(map[int64]Product, len(cfg.Catalog))
	for _, p := range cfg.Catalog {
		catalog[p.ID] = p
	}

	s := &Server{
		cfg:      cfg,
		catalog:  catalog,
		carts:    newCartMemoryStore(),
		payments: newPaymentState(cfg.GatewaySecret),
		orders:   newOrderMemoryStore(),
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.getCart)
			r.Post("/", s.addCartItem)
			r.Delete("/", s.clearCart)
			r.Put("/products/{productID}", s.updateCartItem)
			r.Delete("/products/{productID}", s.removeCartItem)
		})

		r.Route("/payments/razorpay", func(r chi.Router) {
			r.Get("/enabled", s.gatewayEnabled)
			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/create-order-only", s.createGatewayOrder)
				r.Post("/verify-signature", s.verifySignature)
			})
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/checkout/place-order", s.placeOrder)
	})
	r.Get("/checkout", s.checkoutPage)
	r.Get("/orders/{orderID}", s.orderPage)

	return r
}

// Handler exposes the stub as a plain http.Handler for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requireAuth treats any non-empty bearer token as a valid session and uses
// the token itself as the user key.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userKey(r) == "" {
			respondError(w, http.StatusUnauthorized, "missing user authentication")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func userKey(r *http.Request) string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}

func defaultCatalog() []Product {
	return []Product{
		{ID: 1, Name: "Wireless Mouse", Price: decimal.NewFromFloat(799.00), ImageURL: "/images/mouse.jpg"},
		{ID: 2, Name: "Mechanical Keyboard", Price: decimal.NewFromFloat(3499.00), ImageURL: "/images/keyboard.jpg"},
		{ID: 3, Name: "USB-C Hub", Price: decimal.NewFromFloat(1299.50), ImageURL: "/images/hub.jpg"},
		{ID: 4, Name: "Laptop Stand", Price: decimal.NewFromFloat(999.99), ImageURL: "/images/stand.jpg"},
	}
}
