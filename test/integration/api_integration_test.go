package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shop-checkout/internal/cart"
	"shop-checkout/internal/checkout"
	"shop-checkout/internal/handler"
	"shop-checkout/internal/model"
	"shop-checkout/internal/orderapi"
	"shop-checkout/internal/refdata"
	"shop-checkout/internal/router"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, testDB *TestDB, orderBackend string) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	provider := refdata.NewPostgresProvider(testDB.Pool, logger)
	orderClient := orderapi.NewClient(orderBackend, 5*time.Second, logger)

	sessions := checkout.NewManager(func() *checkout.Orchestrator {
		return checkout.New(checkout.Deps{
			RefData:      provider,
			Cart:         cart.NewStore(logger),
			Orders:       orderClient,
			Nav:          &checkout.RouteRecorder{},
			CatalogRoute: "/products",
			Logger:       logger,
		})
	}, logger)

	refDataHandler := handler.NewRefDataHandler(provider, logger)
	checkoutHandler := handler.NewCheckoutHandler(sessions, logger)

	return router.New(refDataHandler, checkoutHandler, "test-api-key", logger)
}

// stubOrderBackend imitates the backend order API, accepting every
// purchase and handing back a fixed tracking number.
func stubOrderBackend(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var purchase model.Purchase
		if err := json.NewDecoder(r.Body).Decode(&purchase); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.PurchaseConfirmation{OrderTrackingNumber: "INT-100"})
	}))
	t.Cleanup(server.Close)

	return server
}

func doJSON(t *testing.T, server http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "test-api-key")
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)
	return w
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) handler.SessionResponse {
	t.Helper()

	var resp handler.SessionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestCheckoutAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	backend := stubOrderBackend(t)
	server := setupTestServer(t, testDB, backend.URL)

	t.Run("session create populates reference data", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPost, "/api/checkout/sessions", nil)
		require.Equal(t, http.StatusCreated, w.Code)

		resp := decodeSession(t, w)
		assert.NotEmpty(t, resp.SessionID)
		assert.Len(t, resp.Countries, 4)
		assert.Equal(t, "Brazil", resp.Countries[0].Name)
		assert.Len(t, resp.Years, 11)
		assert.NotEmpty(t, resp.Months)
		assert.Empty(t, resp.ShippingStates)
	})

	t.Run("country selection loads states and picks the first", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPost, "/api/checkout/sessions", nil)
		require.Equal(t, http.StatusCreated, w.Code)
		session := decodeSession(t, w)

		w = doJSON(t, server, http.MethodPost, "/api/checkout/sessions/"+session.SessionID+"/country",
			map[string]string{"section": "shippingAddress", "code": "IN", "name": "India"})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeSession(t, w)
		require.Len(t, resp.ShippingStates, 3)
		assert.Equal(t, "Goa", resp.ShippingStates[0].Name)
		assert.Equal(t, "Goa", resp.Form.ShippingAddress.State)
		assert.Equal(t, "India", resp.Form.ShippingAddress.Country)
	})

	t.Run("country without states clears the selection", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPost, "/api/checkout/sessions", nil)
		session := decodeSession(t, w)

		w = doJSON(t, server, http.MethodPost, "/api/checkout/sessions/"+session.SessionID+"/country",
			map[string]string{"section": "shippingAddress", "code": "BR", "name": "Brazil"})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeSession(t, w)
		assert.Empty(t, resp.ShippingStates)
		assert.Empty(t, resp.Form.ShippingAddress.State)
	})

	t.Run("full checkout flow succeeds", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPost, "/api/checkout/sessions", nil)
		require.Equal(t, http.StatusCreated, w.Code)
		session := decodeSession(t, w)
		base := "/api/checkout/sessions/" + session.SessionID

		// Cart contents
		w = doJSON(t, server, http.MethodPut, base+"/cart", map[string]any{
			"items": []model.CartItem{
				{ProductID: "P100", Name: "Keyboard", UnitPrice: 45.00, Quantity: 1},
				{ProductID: "P200", Name: "Mouse", UnitPrice: 15.00, Quantity: 2},
			},
		})
		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeSession(t, w)
		assert.Equal(t, 75.00, resp.TotalPrice)
		assert.Equal(t, 3, resp.TotalQuantity)

		// Address countries
		for _, section := range []string{"shippingAddress", "billingAddress"} {
			w = doJSON(t, server, http.MethodPost, base+"/country",
				map[string]string{"section": section, "code": "IN", "name": "India"})
			require.Equal(t, http.StatusOK, w.Code)
		}

		// Expiration year cascade
		year := time.Now().Year() + 1
		w = doJSON(t, server, http.MethodPost, base+"/expiration-year", map[string]int{"year": year})
		require.Equal(t, http.StatusOK, w.Code)
		resp = decodeSession(t, w)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, resp.Months)

		// Form fields
		w = doJSON(t, server, http.MethodPut, base+"/form", map[string]any{
			"customer": map[string]string{
				"firstName": "Asha",
				"lastName":  "Rao",
				"email":     "asha.rao@example.com",
			},
			"shippingAddress": map[string]string{
				"street":  "12 MG Road",
				"city":    "Bengaluru",
				"zipCode": "560001",
			},
			"billingAddress": map[string]string{
				"street":  "12 MG Road",
				"city":    "Bengaluru",
				"zipCode": "560001",
			},
			"creditCard": map[string]string{
				"cardType":        "Visa",
				"nameOnCard":      "Asha Rao",
				"cardNumber":      "4111111111111111",
				"securityCode":    "123",
				"expirationMonth": "6",
			},
		})
		require.Equal(t, http.StatusOK, w.Code)
		resp = decodeSession(t, w)
		require.True(t, resp.Form.Valid, "form should be valid: %v", resp.Form.Errors)

		// Submit
		w = doJSON(t, server, http.MethodPost, base+"/submit", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var result checkout.SubmitResult
		require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
		assert.Equal(t, checkout.StatusSucceeded, result.Status)
		assert.Equal(t, "INT-100", result.OrderTrackingNumber)
		assert.Equal(t, "/products", result.Route)

		// Cart and form were reset
		w = doJSON(t, server, http.MethodGet, base, nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp = decodeSession(t, w)
		assert.Zero(t, resp.TotalPrice)
		assert.Zero(t, resp.TotalQuantity)
		assert.Empty(t, resp.Items)
		assert.Empty(t, resp.Form.Customer.FirstName)
	})

	t.Run("submitting an empty form is rejected", func(t *testing.T) {
		w := doJSON(t, server, http.MethodPost, "/api/checkout/sessions", nil)
		session := decodeSession(t, w)

		w = doJSON(t, server, http.MethodPost, "/api/checkout/sessions/"+session.SessionID+"/submit", nil)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var result checkout.SubmitResult
		require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
		assert.Equal(t, checkout.StatusInvalid, result.Status)
		assert.NotEmpty(t, result.FieldErrors)
	})

	t.Run("requests without API key are rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/checkout/sessions", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("health endpoint needs no API key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRefDataAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	backend := stubOrderBackend(t)
	server := setupTestServer(t, testDB, backend.URL)

	t.Run("GET /api/refdata/countries", func(t *testing.T) {
		w := doJSON(t, server, http.MethodGet, "/api/refdata/countries", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var countries []model.Country
		require.NoError(t, json.NewDecoder(w.Body).Decode(&countries))
		require.Len(t, countries, 4)
		assert.Equal(t, "Brazil", countries[0].Name)
	})

	t.Run("GET /api/refdata/states/{code}", func(t *testing.T) {
		w := doJSON(t, server, http.MethodGet, "/api/refdata/states/US", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var states []model.State
		require.NoError(t, json.NewDecoder(w.Body).Decode(&states))
		require.Len(t, states, 3)
		assert.Equal(t, "California", states[0].Name)
	})
}
