package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"shop-checkout/internal/checkout"
	"shop-checkout/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CheckoutHandler exposes checkout sessions over HTTP. Each session
// backs one browser checkout screen.
type CheckoutHandler struct {
	sessions *checkout.Manager
	logger   zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(sessions *checkout.Manager, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		sessions: sessions,
		logger:   logger.With().Str("handler", "checkout").Logger(),
	}
}

// SessionResponse is the session envelope returned by every session
// endpoint.
type SessionResponse struct {
	SessionID string `json:"sessionId"`
	checkout.View
}

// countryRequest selects a country for an address section.
type countryRequest struct {
	Section checkout.Section `json:"section"`
	Code    string           `json:"code"`
	Name    string           `json:"name"`
}

// expirationYearRequest selects a credit card expiration year.
type expirationYearRequest struct {
	Year int `json:"year"`
}

// billingSameRequest toggles the copy-shipping-to-billing box.
type billingSameRequest struct {
	Enabled bool `json:"enabled"`
}

// cartItemsRequest replaces the cart contents.
type cartItemsRequest struct {
	Items []model.CartItem `json:"items"`
}

// Create handles POST /api/checkout/sessions requests.
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	id, session := h.sessions.Create(r.Context())
	writeJSON(w, http.StatusCreated, SessionResponse{SessionID: id.String(), View: session.View()})
}

// ServeSession handles /api/checkout/sessions/{id} and its
// sub-resources.
func (h *CheckoutHandler) ServeSession(w http.ResponseWriter, r *http.Request) {
	// Expecting path: /api/checkout/sessions/{id}[/{action}]
	rest := strings.TrimPrefix(r.URL.Path, "/api/checkout/sessions/")
	idStr, action, _ := strings.Cut(rest, "/")

	if idStr == "" {
		writeError(w, http.StatusBadRequest, "session ID is required", h.logger)
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session ID format", h.logger)
		return
	}

	session, err := h.sessions.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "checkout session not found", h.logger)
		return
	}

	switch action {
	case "":
		h.serveRoot(w, r, id, session)
	case "form":
		h.updateForm(w, r, id, session)
	case "country":
		h.selectCountry(w, r, id, session)
	case "expiration-year":
		h.selectExpirationYear(w, r, id, session)
	case "billing-same":
		h.setBillingSame(w, r, id, session)
	case "cart":
		h.setCartItems(w, r, id, session)
	case "cart/items":
		h.addCartItem(w, r, id, session)
	case "submit":
		h.submit(w, r, session)
	default:
		writeError(w, http.StatusNotFound, "not found", h.logger)
	}
}

func (h *CheckoutHandler) serveRoot(w http.ResponseWriter, r *http.Request, id uuid.UUID, session *checkout.Orchestrator) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, SessionResponse{SessionID: id.String(), View: session.View()})
	case http.MethodDelete:
		h.sessions.Delete(id)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *CheckoutHandler) updateForm(w http.ResponseWriter, r *http.Request, id uuid.UUID, session *checkout.Orchestrator) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var update checkout.FormUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	session.ApplyForm(update)
	writeJSON(w, http.StatusOK, SessionResponse{SessionID: id.String(), View: session.View()})
}

func (h *CheckoutHandler) selectCountry(w http.ResponseWriter, r *http.Request, id uuid.UUID, session *checkout.Orchestrator) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req countryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := session.SelectCountry(r.Context(), req.Section, req.Code, req.Name); err != nil {
		if errors.Is(err, model.ErrReferenceData) {
			writeError(w, http.StatusBadGateway, "failed to retrieve states", h.logger)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{SessionID: id.String(), View: session.View()})
}

func (h *CheckoutHandler) selectExpirationYear(w http.ResponseWriter, r *http.Request, id uuid.UUID, session *checkout.Orchestrator) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req expirationYearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := session.SelectExpirationYear(r.Context(), req.Year); err != nil {
		writeError(w, http.StatusBadGateway, "failed to retrieve months", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{SessionID: id.String(), View: session.View()})
}

func (h *CheckoutHandler) setBillingSame(w http.ResponseWriter, r *http.Request, id uuid.UUID, session *checkout.Orchestrator) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req billingSameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	session.SetBillingSameAsShipping(req.Enabled)
	writeJSON(w, http.StatusOK, SessionResponse{SessionID: id.String(), View: session.View()})
}

func (h *CheckoutHandler) setCartItems(w http.ResponseWriter, r *http.Request, id uuid.UUID, session *checkout.Orchestrator) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req cartItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	session.SetCartItems(req.Items)
	writeJSON(w, http.StatusOK, SessionResponse{SessionID: id.String(), View: session.View()})
}

func (h *CheckoutHandler) addCartItem(w http.ResponseWriter, r *http.Request, id uuid.UUID, session *checkout.Orchestrator) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var item model.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if item.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}
	if item.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "quantity must be greater than zero", h.logger)
		return
	}

	session.AddCartItem(item)
	writeJSON(w, http.StatusOK, SessionResponse{SessionID: id.String(), View: session.View()})
}

func (h *CheckoutHandler) submit(w http.ResponseWriter, r *http.Request, session *checkout.Orchestrator) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	result, err := session.Submit(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to submit checkout", h.logger)
		return
	}

	status := http.StatusOK
	switch result.Status {
	case checkout.StatusInvalid:
		status = http.StatusUnprocessableEntity
	case checkout.StatusFailed:
		status = http.StatusBadGateway
	}

	writeJSON(w, status, result)
}
