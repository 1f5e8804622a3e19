package router

import (
	"net/http"

	"strikex/internal/handler"
	"strikex/internal/middleware"
	"strikex/internal/repository"
	"strikex/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers bundles the HTTP handlers the router mounts.
type Handlers struct {
	Cart     *handler.CartHandler
	Coupon   *handler.CouponHandler
	Checkout *handler.CheckoutHandler
	Webhook  *handler.WebhookHandler
	Auth     *handler.AuthHandler
	Account  *handler.AccountHandler
	Admin    *handler.AdminHandler
	Catalog  *handler.CatalogHandler
	Contact  *handler.ContactHandler
}

// New creates the HTTP router with all routes and middleware configured.
func New(
	h Handlers,
	sessions *session.Manager,
	apiKey string,
	keys repository.APIKeyRepository,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware order: Recovery -> Logging -> CORS -> sessions.
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(sessions.Middleware())

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Key-gated API surface.
	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.APIKeyAuth(apiKey, keys, logger))

		api.Post("/cart/create", h.Cart.Create)
		api.Post("/cart/add", h.Cart.Add)
		api.Post("/cart/remove", h.Cart.Remove)
		api.Get("/cart/view", h.Cart.View)
		api.Get("/cart/summary", h.Cart.Summary)

		api.Post("/coupon/apply", h.Coupon.Apply)
		api.Post("/coupon/remove", h.Coupon.Remove)

		api.Get("/search", h.Catalog.Search)
		api.Get("/products/{category}", h.Catalog.ByCategory)
		api.Get("/product/{id}", h.Catalog.GetProduct)

		api.Post("/contact", h.Contact.Submit)
	})

	// Session-scoped pages.
	r.Get("/checkout/{cartId}", h.Checkout.Preview)
	r.Post("/checkout/create-payment-intent", h.Checkout.CreatePaymentIntent)
	r.Post("/checkout/complete", h.Checkout.Complete)

	r.Get("/auth/login", h.Auth.Status)
	r.Get("/auth/register", h.Auth.Status)
	r.Post("/auth/login", h.Auth.Login)
	r.Post("/auth/register", h.Auth.Register)

	r.Get("/account/orders", h.Account.ListOrders)
	r.Get("/account/orders/{orderId}", h.Account.GetOrder)
	r.Get("/addresses/all", h.Account.ListAddresses)
	r.Post("/addresses/add", h.Account.AddAddress)

	r.Get("/staff/admin", h.Admin.Dashboard)

	// Processor callbacks authenticate by signature, not session.
	r.Post("/webhooks/stripe", h.Webhook.HandleStripe)

	return r
}
