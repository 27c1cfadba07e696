package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shop-checkout/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRefDataHandler_Months(t *testing.T) {
	provider := new(MockRefDataProvider)
	provider.On("Months", mock.Anything, 6).Return([]int{6, 7, 8, 9, 10, 11, 12}, nil)

	h := NewRefDataHandler(provider, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/refdata/months?startMonth=6", nil)
	rec := httptest.NewRecorder()
	h.Months(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var months []int
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&months))
	assert.Equal(t, []int{6, 7, 8, 9, 10, 11, 12}, months)
}

func TestRefDataHandler_MonthsInvalidParameter(t *testing.T) {
	h := NewRefDataHandler(new(MockRefDataProvider), zerolog.Nop())

	tests := []string{"invalid", "0", "13"}
	for _, raw := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/refdata/months?startMonth="+raw, nil)
		rec := httptest.NewRecorder()
		h.Months(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "startMonth %q", raw)
	}
}

func TestRefDataHandler_Years(t *testing.T) {
	provider := new(MockRefDataProvider)
	provider.On("Years", mock.Anything).Return([]int{2024, 2025, 2026}, nil)

	h := NewRefDataHandler(provider, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/refdata/years", nil)
	rec := httptest.NewRecorder()
	h.Years(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var years []int
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&years))
	assert.Len(t, years, 3)
}

func TestRefDataHandler_Countries(t *testing.T) {
	provider := new(MockRefDataProvider)
	provider.On("Countries", mock.Anything).Return([]model.Country{
		{Code: "IN", Name: "India"},
		{Code: "US", Name: "United States"},
	}, nil)

	h := NewRefDataHandler(provider, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/refdata/countries", nil)
	rec := httptest.NewRecorder()
	h.Countries(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var countries []model.Country
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&countries))
	assert.Len(t, countries, 2)
}

func TestRefDataHandler_States(t *testing.T) {
	provider := new(MockRefDataProvider)
	provider.On("States", mock.Anything, "IN").Return([]model.State{
		{Name: "Karnataka", CountryCode: "IN"},
	}, nil)

	h := NewRefDataHandler(provider, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/refdata/states/IN", nil)
	rec := httptest.NewRecorder()
	h.States(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var states []model.State
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&states))
	require.Len(t, states, 1)
	assert.Equal(t, "Karnataka", states[0].Name)
}

func TestRefDataHandler_StatesMissingCode(t *testing.T) {
	h := NewRefDataHandler(new(MockRefDataProvider), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/refdata/states/", nil)
	rec := httptest.NewRecorder()
	h.States(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefDataHandler_ProviderError(t *testing.T) {
	provider := new(MockRefDataProvider)
	provider.On("Countries", mock.Anything).Return(nil, errors.New("connection refused"))

	h := NewRefDataHandler(provider, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/refdata/countries", nil)
	rec := httptest.NewRecorder()
	h.Countries(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRefDataHandler_MethodNotAllowed(t *testing.T) {
	h := NewRefDataHandler(new(MockRefDataProvider), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/refdata/years", nil)
	rec := httptest.NewRecorder()
	h.Years(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
