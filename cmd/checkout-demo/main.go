// Command checkout-demo drives the full cart-to-order flow against a running
// backend (the devserver by default): fill a cart, select lines, build the
// checkout view, pay through the stub gateway and place the order.
package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/api"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/cartstore"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/checkout"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/domain"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/notify"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/order"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/payment"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/selection"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/storage"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/stubserver"
	"github.com/theabhishek-hub/ecommerce-storefront/pkg/logger"
)

// addOnlyItem carries just what the server cart needs to add a product; the
// backend fills in name and price from its catalog.
func addOnlyItem(productID int64, quantity int32) domain.LineItem {
	return domain.LineItem{ProductID: productID, Quantity: quantity}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// signingUI stands in for the gateway's payment widget: it "pays" instantly
// and signs the payment the way the gateway would.
type signingUI struct {
	secret string
}

func (u *signingUI) Present(_ context.Context, gwOrder api.GatewayOrder, _ string) (payment.UIResult, error) {
	paymentID := "pay_" + uuid.New().String()
	mac := hmac.New(sha256.New, []byte(u.secret))
	mac.Write([]byte(gwOrder.GatewayOrderID + "|" + paymentID))

	return payment.UIResult{
		Outcome: payment.UICompleted,
		Reference: api.PaymentReference{
			GatewayOrderID: gwOrder.GatewayOrderID,
			PaymentID:      paymentID,
			Signature:      hex.EncodeToString(mac.Sum(nil)),
		},
	}, nil
}

func main() {
	secret := getEnv("GATEWAY_SECRET", "stub-secret")
	token := getEnv("AUTH_TOKEN", "demo-user")
	taxRate, err := decimal.NewFromString(getEnv("CHECKOUT_TAX_RATE", "0.05"))
	if err != nil {
		log.Fatalf("invalid CHECKOUT_TAX_RATE: %v", err)
	}

	slogger, err := logger.New(logger.Config{Level: getEnv("LOG_LEVEL", "info"), Format: "text"})
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		// No backend given, run the stub in-process.
		stub := stubserver.New(stubserver.Config{
			GatewayEnabled: true,
			GatewayKeyID:   "rzp_test_stub",
			GatewaySecret:  secret,
		}, slogger)

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.Fatalf("failed to listen: %v", err)
		}
		go func() {
			if err := http.Serve(listener, stub.Handler()); err != nil {
				slogger.Error("stub server stopped", "error", err)
			}
		}()
		baseURL = "http://" + listener.Addr().String()
		slogger.Info("started in-process backend", "base_url", baseURL)
	}

	stateDir, err := os.MkdirTemp("", "checkout-demo")
	if err != nil {
		log.Fatalf("failed to create state dir: %v", err)
	}
	defer os.RemoveAll(stateDir)

	db, err := storage.Open(filepath.Join(stateDir, "storefront.db"))
	if err != nil {
		log.Fatalf("failed to open state database: %v", err)
	}
	defer db.Close()
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	client := api.NewClient(api.Config{BaseURL: baseURL, Token: token, Timeout: 10 * time.Second}, slogger)
	remote := cartstore.NewRemote(client, slogger)
	local := cartstore.NewLocal(db)
	cart := cartstore.ForSession(token != "", remote, local)

	tracker := selection.NewTracker(db)
	aggregator := checkout.NewAggregator(cart, tracker, taxRate, slogger)
	submitter := order.NewSubmitter(order.Config{BaseURL: baseURL, Token: token}, slogger)
	notifier := notify.NewLogNotifier(slogger)

	orchestrator := payment.NewOrchestrator(
		payment.OrchestratorConfig{Currency: "INR"},
		client, submitter, cart, tracker, &signingUI{secret: secret}, notifier, slogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Fill the cart.
	for _, add := range []struct {
		productID int64
		quantity  int32
	}{{1, 2}, {2, 1}, {3, 1}} {
		if _, err := cart.Add(ctx, addOnlyItem(add.productID, add.quantity)); err != nil {
			log.Fatalf("failed to add product %d: %v", add.productID, err)
		}
	}

	snapshot, err := cart.Read(ctx)
	if err != nil {
		log.Fatalf("failed to read cart: %v", err)
	}
	slogger.Info("cart filled", "lines", len(snapshot.Items))

	// Check out only the first two lines.
	if err := tracker.Capture(ctx, snapshot.ProductKeys()[:2]); err != nil {
		log.Fatalf("failed to capture selection: %v", err)
	}

	view, err := aggregator.BuildView(ctx)
	if err != nil {
		log.Fatalf("failed to build checkout view: %v", err)
	}
	slogger.Info("checkout view ready",
		"items", len(view.Items),
		"subtotal", view.Totals.Subtotal.String(),
		"tax", view.Totals.Tax.String(),
		"total", view.Totals.Total.String(),
	)

	result, err := orchestrator.PayOnline(ctx, view)
	if err != nil {
		log.Fatalf("online payment failed: %v", err)
	}
	slogger.Info("online order placed",
		"attempt_id", result.AttemptID,
		"status", result.Status.String(),
		"redirect", result.RedirectPath,
	)

	// Round two: cash on delivery for a fresh cart.
	if _, err := cart.Add(ctx, addOnlyItem(4, 1)); err != nil {
		log.Fatalf("failed to add product for COD run: %v", err)
	}
	view, err = aggregator.BuildView(ctx)
	if err != nil {
		log.Fatalf("failed to build COD checkout view: %v", err)
	}
	result, err = orchestrator.PayCashOnDelivery(ctx, view)
	if err != nil {
		log.Fatalf("COD order failed: %v", err)
	}
	slogger.Info("cash-on-delivery order placed",
		"attempt_id", result.AttemptID,
		"status", result.Status.String(),
		"redirect", result.RedirectPath,
	)
}
