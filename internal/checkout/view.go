package checkout

import "shop-checkout/internal/model"

// CreditCardView exposes the payment field values of the form.
type CreditCardView struct {
	CardType        string `json:"cardType"`
	NameOnCard      string `json:"nameOnCard"`
	CardNumber      string `json:"cardNumber"`
	SecurityCode    string `json:"securityCode"`
	ExpirationMonth string `json:"expirationMonth"`
	ExpirationYear  string `json:"expirationYear"`
}

// FormView exposes the current form values with per-field validation
// messages. Errors cover every invalid field; the UI shows a message
// only once its field appears in Touched.
type FormView struct {
	Customer        model.Customer      `json:"customer"`
	ShippingAddress model.Address       `json:"shippingAddress"`
	BillingAddress  model.Address       `json:"billingAddress"`
	CreditCard      CreditCardView      `json:"creditCard"`
	Valid           bool                `json:"valid"`
	Errors          map[string][]string `json:"errors,omitempty"`
	Touched         []string            `json:"touched,omitempty"`
}

// View is a point-in-time rendering of the whole checkout screen state.
type View struct {
	Status         Status           `json:"status"`
	Months         []int            `json:"months"`
	Years          []int            `json:"years"`
	Countries      []model.Country  `json:"countries"`
	ShippingStates []model.State    `json:"shippingStates"`
	BillingStates  []model.State    `json:"billingStates"`
	TotalPrice     float64          `json:"totalPrice"`
	TotalQuantity  int              `json:"totalQuantity"`
	Items          []model.CartItem `json:"items"`
	Form           FormView         `json:"form"`
}

// View renders the current screen state.
func (o *Orchestrator) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()

	snapshot := o.cart.Snapshot()

	return View{
		Status:         o.status,
		Months:         append([]int(nil), o.months...),
		Years:          append([]int(nil), o.years...),
		Countries:      append([]model.Country(nil), o.countries...),
		ShippingStates: append([]model.State(nil), o.shippingStates...),
		BillingStates:  append([]model.State(nil), o.billingStates...),
		TotalPrice:     snapshot.TotalPrice,
		TotalQuantity:  snapshot.TotalQuantity,
		Items:          snapshot.Items,
		Form: FormView{
			Customer:        o.form.CustomerValue(),
			ShippingAddress: o.form.ShippingAddress.AddressValue(),
			BillingAddress:  o.form.BillingAddress.AddressValue(),
			CreditCard: CreditCardView{
				CardType:        o.form.CreditCard.CardType.Value,
				NameOnCard:      o.form.CreditCard.NameOnCard.Value,
				CardNumber:      o.form.CreditCard.CardNumber.Value,
				SecurityCode:    o.form.CreditCard.SecurityCode.Value,
				ExpirationMonth: o.form.CreditCard.ExpirationMonth.Value,
				ExpirationYear:  o.form.CreditCard.ExpirationYear.Value,
			},
			Valid:   o.form.Valid(),
			Errors:  o.form.Errors(),
			Touched: o.form.TouchedPaths(),
		},
	}
}
