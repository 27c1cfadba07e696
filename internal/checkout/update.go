package checkout

import "shop-checkout/internal/form"

// CustomerUpdate is a partial update of the customer group.
type CustomerUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// AddressUpdate is a partial update of an address group's text fields.
// State and country selections go through SelectCountry instead, since
// they drive the dependent state list.
type AddressUpdate struct {
	Street  *string `json:"street,omitempty"`
	City    *string `json:"city,omitempty"`
	ZipCode *string `json:"zipCode,omitempty"`
}

// CreditCardUpdate is a partial update of the payment group. The
// expiration month is a plain dropdown pick; the year goes through
// SelectExpirationYear because it drives the month list.
type CreditCardUpdate struct {
	CardType        *string `json:"cardType,omitempty"`
	NameOnCard      *string `json:"nameOnCard,omitempty"`
	CardNumber      *string `json:"cardNumber,omitempty"`
	SecurityCode    *string `json:"securityCode,omitempty"`
	ExpirationMonth *string `json:"expirationMonth,omitempty"`
}

// FormUpdate is a partial update of the checkout form; nil groups and
// nil fields are left untouched.
type FormUpdate struct {
	Customer        *CustomerUpdate   `json:"customer,omitempty"`
	ShippingAddress *AddressUpdate    `json:"shippingAddress,omitempty"`
	BillingAddress  *AddressUpdate    `json:"billingAddress,omitempty"`
	CreditCard      *CreditCardUpdate `json:"creditCard,omitempty"`
}

func (u FormUpdate) apply(c *form.Checkout) {
	if u.Customer != nil {
		setField(&c.Customer.FirstName, u.Customer.FirstName)
		setField(&c.Customer.LastName, u.Customer.LastName)
		setField(&c.Customer.Email, u.Customer.Email)
	}
	if u.ShippingAddress != nil {
		applyAddress(&c.ShippingAddress, u.ShippingAddress)
	}
	if u.BillingAddress != nil {
		applyAddress(&c.BillingAddress, u.BillingAddress)
	}
	if u.CreditCard != nil {
		setField(&c.CreditCard.CardType, u.CreditCard.CardType)
		setField(&c.CreditCard.NameOnCard, u.CreditCard.NameOnCard)
		setField(&c.CreditCard.CardNumber, u.CreditCard.CardNumber)
		setField(&c.CreditCard.SecurityCode, u.CreditCard.SecurityCode)
		setField(&c.CreditCard.ExpirationMonth, u.CreditCard.ExpirationMonth)
	}
}

func applyAddress(a *form.Address, u *AddressUpdate) {
	setField(&a.Street, u.Street)
	setField(&a.City, u.City)
	setField(&a.ZipCode, u.ZipCode)
}

func setField(f *form.Field, value *string) {
	if value != nil {
		f.Set(*value)
	}
}
