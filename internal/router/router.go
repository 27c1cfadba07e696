package router

import (
	"net/http"
	"strings"

	"shop-checkout/internal/handler"
	"shop-checkout/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	refDataHandler *handler.RefDataHandler,
	checkoutHandler *handler.CheckoutHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Reference data routes
	mux.HandleFunc("/api/refdata/months", refDataHandler.Months)
	mux.HandleFunc("/api/refdata/years", refDataHandler.Years)
	mux.HandleFunc("/api/refdata/countries", refDataHandler.Countries)
	mux.HandleFunc("/api/refdata/states/", refDataHandler.States)

	// Checkout session handler function
	sessionRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Session creation has no ID segment
		if r.URL.Path == "/api/checkout/sessions" || r.URL.Path == "/api/checkout/sessions/" {
			checkoutHandler.Create(w, r)
			return
		}

		if strings.HasPrefix(r.URL.Path, "/api/checkout/sessions/") {
			checkoutHandler.ServeSession(w, r)
			return
		}

		http.Error(w, "not found", http.StatusNotFound)
	}

	// Register session routes (both with and without trailing slash)
	mux.HandleFunc("/api/checkout/sessions", sessionRouteHandler)
	mux.HandleFunc("/api/checkout/sessions/", sessionRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
