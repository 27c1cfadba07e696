// Package orderapi is the HTTP client for the backend order-processing
// API the checkout screen submits purchases to.
package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shop-checkout/internal/model"

	"github.com/rs/zerolog"
)

// Client defines the order API operations consumed by the checkout core.
type Client interface {
	// PlaceOrder dispatches a purchase and returns the tracking number
	// assigned by the order API.
	PlaceOrder(ctx context.Context, purchase *model.Purchase) (*model.PurchaseConfirmation, error)
}

// httpClient implements Client over HTTP JSON.
type httpClient struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewClient creates an order API client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) Client {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "order-api-client").Logger(),
	}
}

// PlaceOrder POSTs the purchase payload and decodes the confirmation.
// Transport failures and non-2xx responses come back as domain errors
// carrying a human-readable message; the caller leaves all checkout
// state untouched on failure so the user may retry.
func (c *httpClient) PlaceOrder(ctx context.Context, purchase *model.Purchase) (*model.PurchaseConfirmation, error) {
	body, err := json.Marshal(purchase)
	if err != nil {
		return nil, fmt.Errorf("failed to encode purchase: %w", err)
	}

	url := c.baseURL + "/api/checkout/purchase"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build purchase request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", url).Msg("order API request failed")
		return nil, model.NewDomainError(model.ErrCodeOrderUnreachable, "The order service could not be reached")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := fmt.Sprintf("The order service rejected the purchase (status %d)", resp.StatusCode)

		var apiErr model.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			message = apiErr.Error
		}

		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("message", message).
			Msg("order API rejected purchase")
		return nil, model.NewDomainError(model.ErrCodeOrderRejected, message)
	}

	var confirmation model.PurchaseConfirmation
	if err := json.NewDecoder(resp.Body).Decode(&confirmation); err != nil {
		c.logger.Error().Err(err).Msg("failed to decode order API response")
		return nil, model.NewDomainError(model.ErrCodeOrderRejected, "The order service returned an unreadable response")
	}

	c.logger.Info().
		Str("tracking_number", confirmation.OrderTrackingNumber).
		Int("item_count", len(purchase.OrderItems)).
		Msg("purchase placed successfully")

	return &confirmation, nil
}
