// Package checkout orchestrates the storefront checkout screen: the
// multi-section form, its reference data lists, the cart snapshot, and
// the submission pipeline against the backend order API.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"shop-checkout/internal/cart"
	"shop-checkout/internal/form"
	"shop-checkout/internal/model"
	"shop-checkout/internal/orderapi"
	"shop-checkout/internal/refdata"

	"github.com/rs/zerolog"
)

// Section names an address group of the checkout form.
type Section string

const (
	SectionShipping Section = "shippingAddress"
	SectionBilling  Section = "billingAddress"
)

// Status is the submission pipeline state.
type Status string

const (
	StatusIdle       Status = "IDLE"
	StatusValidating Status = "VALIDATING"
	StatusInvalid    Status = "INVALID"
	StatusSubmitting Status = "SUBMITTING"
	StatusSucceeded  Status = "SUCCEEDED"
	StatusFailed     Status = "FAILED"
)

// Navigator is the routing collaborator invoked after a successful
// submission. Fire-and-forget.
type Navigator interface {
	GoTo(route string)
}

// RouteRecorder is a Navigator that remembers the last route, letting
// the HTTP facade surface the navigation target to the browser.
type RouteRecorder struct {
	mu    sync.Mutex
	route string
}

// GoTo records the route.
func (r *RouteRecorder) GoTo(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.route = route
}

// Route returns the last recorded route.
func (r *RouteRecorder) Route() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.route
}

// Deps are the collaborators an orchestrator is wired with.
type Deps struct {
	RefData      refdata.Provider
	Cart         *cart.Store
	Orders       orderapi.Client
	Nav          Navigator
	CatalogRoute string
	Logger       zerolog.Logger

	// Now overrides the clock; nil means time.Now. Used by the
	// month/year cascade.
	Now func() time.Time
}

// Orchestrator owns the state of one checkout screen. Every public
// method serialises on the orchestrator mutex, the service-side stand-in
// for the single UI thread the original screen ran on. Cart mutations
// flow exclusively through orchestrator methods, so the totals
// subscriptions fire while the mutex is already held.
type Orchestrator struct {
	mu sync.Mutex

	form         *form.Checkout
	refData      refdata.Provider
	cart         *cart.Store
	orders       orderapi.Client
	nav          Navigator
	catalogRoute string
	now          func() time.Time
	logger       zerolog.Logger

	status        Status
	totalPrice    float64
	totalQuantity int

	months         []int
	years          []int
	countries      []model.Country
	shippingStates []model.State
	billingStates  []model.State
}

// New creates an orchestrator with a fresh checkout form.
func New(deps Deps) *Orchestrator {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &Orchestrator{
		form:         form.New(),
		refData:      deps.RefData,
		cart:         deps.Cart,
		orders:       deps.Orders,
		nav:          deps.Nav,
		catalogRoute: deps.CatalogRoute,
		now:          now,
		logger:       deps.Logger.With().Str("component", "checkout").Logger(),
		status:       StatusIdle,
	}
}

// Init populates the month, year, and country lists concurrently,
// subscribes to the cart totals, and triggers one totals recompute so
// the first snapshot is consistent with the current items. Reference
// data failures are logged and leave the affected list empty; they
// never take the screen down.
func (o *Orchestrator) Init(ctx context.Context) {
	o.cart.SubscribeTotalPrice(func(price float64) {
		o.totalPrice = price
	})
	o.cart.SubscribeTotalQuantity(func(quantity int) {
		o.totalQuantity = quantity
	})

	startMonth := int(o.now().Month())

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		months, err := o.refData.Months(ctx, startMonth)
		if err != nil {
			o.logger.Error().Err(err).Msg("failed to load expiration months")
			return
		}
		o.mu.Lock()
		o.months = months
		o.mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		years, err := o.refData.Years(ctx)
		if err != nil {
			o.logger.Error().Err(err).Msg("failed to load expiration years")
			return
		}
		o.mu.Lock()
		o.years = years
		o.mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		countries, err := o.refData.Countries(ctx)
		if err != nil {
			o.logger.Error().Err(err).Msg("failed to load countries")
			return
		}
		o.mu.Lock()
		o.countries = countries
		o.mu.Unlock()
	}()

	wg.Wait()

	o.mu.Lock()
	defer o.mu.Unlock()
	o.cart.RecomputeTotals()

	o.logger.Debug().
		Int("months", len(o.months)).
		Int("years", len(o.years)).
		Int("countries", len(o.countries)).
		Msg("checkout initialised")
}

// Status returns the current submission pipeline state.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// SelectCountry records the country selection for an address section,
// re-fetches that section's state list, replaces it wholesale, and
// auto-selects the first returned state. The fetch runs outside the
// mutex; a response from a superseded selection simply overwrites the
// list — last write wins, no cancellation.
func (o *Orchestrator) SelectCountry(ctx context.Context, section Section, code, name string) error {
	o.mu.Lock()
	addr, err := o.address(section)
	if err != nil {
		o.mu.Unlock()
		return err
	}
	addr.Country.Select(code, name)
	o.mu.Unlock()

	states, err := o.refData.States(ctx, code)

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		o.logger.Error().
			Err(err).
			Str("country_code", code).
			Str("section", string(section)).
			Msg("failed to load states")
		o.setStates(section, nil)
		return model.ErrReferenceData
	}

	o.setStates(section, states)

	// Re-resolve: the form may have been reset while the fetch was in
	// flight; the stale list above still wins, matching the original
	// screen's behaviour.
	addr, err = o.address(section)
	if err != nil {
		return err
	}
	if len(states) > 0 {
		addr.State.Select(states[0].Name, states[0].Name)
	} else {
		addr.State.Clear()
	}

	return nil
}

// SelectExpirationYear records the expiration year and re-fetches the
// month list: starting at the current month when the selected year is
// the current year, else at January. Prevents picking an already-past
// month.
func (o *Orchestrator) SelectExpirationYear(ctx context.Context, year int) error {
	o.mu.Lock()
	o.form.CreditCard.ExpirationYear.Set(strconv.Itoa(year))

	startMonth := 1
	if year == o.now().Year() {
		startMonth = int(o.now().Month())
	}
	o.mu.Unlock()

	months, err := o.refData.Months(ctx, startMonth)

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		o.logger.Error().Err(err).Int("year", year).Msg("failed to load expiration months")
		o.months = nil
		return model.ErrReferenceData
	}

	o.months = months
	return nil
}

// SetBillingSameAsShipping toggles the copy-shipping-to-billing box.
// Enabled overwrites the whole billing group with the shipping values
// and copies the shipping state list into the billing list, so the
// copied state selection has its options available. Disabled clears the
// billing group and its state list.
func (o *Orchestrator) SetBillingSameAsShipping(enabled bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if enabled {
		o.form.CopyShippingToBilling()
		o.billingStates = append([]model.State(nil), o.shippingStates...)
	} else {
		o.form.ClearBilling()
		o.billingStates = nil
	}
}

// ApplyForm applies a partial form update; nil fields are untouched.
func (o *Orchestrator) ApplyForm(update FormUpdate) {
	o.mu.Lock()
	defer o.mu.Unlock()

	update.apply(o.form)
}

// AddCartItem adds an item to the cart and recomputes the totals.
func (o *Orchestrator) AddCartItem(item model.CartItem) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.cart.AddItem(item)
	o.cart.RecomputeTotals()
}

// SetCartItems replaces the cart contents and recomputes the totals.
func (o *Orchestrator) SetCartItems(items []model.CartItem) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.cart.SetItems(items)
	o.cart.RecomputeTotals()
}

// SubmitResult is the outcome of one pass through the submission
// pipeline. All three outcomes are ordinary results, not errors: the
// user corrects an invalid form or retries a failed submission.
type SubmitResult struct {
	Status              Status              `json:"status"`
	OrderTrackingNumber string              `json:"orderTrackingNumber,omitempty"`
	Message             string              `json:"message,omitempty"`
	FieldErrors         map[string][]string `json:"fieldErrors,omitempty"`
	Route               string              `json:"route,omitempty"`
}

// Submit runs the submission pipeline: validate, build the purchase,
// dispatch it, and on success reset the cart and form and navigate to
// the product catalog. On validation failure every field is marked
// touched and nothing is sent; on API failure cart and form are left
// untouched so the user may retry.
func (o *Orchestrator) Submit(ctx context.Context) (*SubmitResult, error) {
	o.mu.Lock()
	o.status = StatusValidating

	if !o.form.Valid() {
		o.form.MarkAllTouched()
		fieldErrors := o.form.Errors()
		o.status = StatusIdle
		o.mu.Unlock()

		o.logger.Warn().Int("invalid_fields", len(fieldErrors)).Msg("checkout submission blocked by validation")
		return &SubmitResult{
			Status:      StatusInvalid,
			Message:     model.ErrCheckoutInvalid.Message,
			FieldErrors: fieldErrors,
		}, nil
	}

	o.status = StatusSubmitting
	purchase := o.buildPurchaseLocked()
	o.mu.Unlock()

	confirmation, err := o.orders.PlaceOrder(ctx, purchase)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.status = StatusIdle

	if err != nil {
		message := err.Error()
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			message = domainErr.Message
		}

		o.logger.Warn().Err(err).Msg("purchase submission failed")
		return &SubmitResult{
			Status:  StatusFailed,
			Message: message,
		}, nil
	}

	o.logger.Info().
		Str("tracking_number", confirmation.OrderTrackingNumber).
		Int("item_count", len(purchase.OrderItems)).
		Msg("purchase accepted, resetting checkout")

	o.cart.Reset()
	o.form.Reset()
	o.nav.GoTo(o.catalogRoute)

	return &SubmitResult{
		Status:              StatusSucceeded,
		OrderTrackingNumber: confirmation.OrderTrackingNumber,
		Route:               o.catalogRoute,
	}, nil
}

// buildPurchaseLocked assembles the purchase payload: customer verbatim,
// addresses with state and country resolved to display names, the
// current totals, and an order-preserving 1:1 mapping of the cart items.
func (o *Orchestrator) buildPurchaseLocked() *model.Purchase {
	snapshot := o.cart.Snapshot()

	orderItems := make([]model.OrderItem, len(snapshot.Items))
	for i, item := range snapshot.Items {
		orderItems[i] = model.OrderItem{
			ProductID: item.ProductID,
			ImageURL:  item.ImageURL,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}

	return &model.Purchase{
		Customer:        o.form.CustomerValue(),
		ShippingAddress: o.form.ShippingAddress.AddressValue(),
		BillingAddress:  o.form.BillingAddress.AddressValue(),
		Order: model.Order{
			TotalPrice:    o.totalPrice,
			TotalQuantity: o.totalQuantity,
		},
		OrderItems: orderItems,
	}
}

// address returns the form group for a section. Caller holds the mutex.
func (o *Orchestrator) address(section Section) (*form.Address, error) {
	switch section {
	case SectionShipping:
		return &o.form.ShippingAddress, nil
	case SectionBilling:
		return &o.form.BillingAddress, nil
	default:
		return nil, fmt.Errorf("unknown address section %q", section)
	}
}

// setStates replaces a section's state list wholesale. Caller holds the
// mutex.
func (o *Orchestrator) setStates(section Section, states []model.State) {
	if section == SectionShipping {
		o.shippingStates = states
	} else {
		o.billingStates = states
	}
}
