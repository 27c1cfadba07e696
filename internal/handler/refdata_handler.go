package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"shop-checkout/internal/refdata"

	"github.com/rs/zerolog"
)

// RefDataHandler serves the selectable reference options for the
// checkout dropdowns.
type RefDataHandler struct {
	provider refdata.Provider
	logger   zerolog.Logger
}

// NewRefDataHandler creates a new reference data handler.
func NewRefDataHandler(provider refdata.Provider, logger zerolog.Logger) *RefDataHandler {
	return &RefDataHandler{
		provider: provider,
		logger:   logger.With().Str("handler", "refdata").Logger(),
	}
}

// Months handles GET /api/refdata/months requests. The optional
// startMonth query parameter defaults to the current month.
func (h *RefDataHandler) Months(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	startMonth := int(time.Now().Month())
	if raw := r.URL.Query().Get("startMonth"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			writeError(w, http.StatusBadRequest, "invalid startMonth parameter", h.logger)
			return
		}
		startMonth = parsed
	}

	months, err := h.provider.Months(r.Context(), startMonth)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to retrieve months", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, months)
}

// Years handles GET /api/refdata/years requests.
func (h *RefDataHandler) Years(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	years, err := h.provider.Years(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to retrieve years", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, years)
}

// Countries handles GET /api/refdata/countries requests.
func (h *RefDataHandler) Countries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	countries, err := h.provider.Countries(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to retrieve countries", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, countries)
}

// States handles GET /api/refdata/states/{countryCode} requests.
func (h *RefDataHandler) States(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	// Expecting path: /api/refdata/states/{countryCode}
	countryCode := strings.TrimPrefix(r.URL.Path, "/api/refdata/states/")
	if countryCode == "" || strings.Contains(countryCode, "/") {
		writeError(w, http.StatusBadRequest, "country code is required", h.logger)
		return
	}

	states, err := h.provider.States(r.Context(), countryCode)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to retrieve states", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, states)
}
