package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillValid sets every field to a value that passes its rules.
func fillValid(c *Checkout) {
	c.Customer.FirstName.Set("Jane")
	c.Customer.LastName.Set("Doe")
	c.Customer.Email.Set("jane.doe@example.com")

	for _, addr := range []*Address{&c.ShippingAddress, &c.BillingAddress} {
		addr.Street.Set("21 Jump Street")
		addr.City.Set("Springfield")
		addr.State.Select("KA", "Karnataka")
		addr.Country.Select("IN", "India")
		addr.ZipCode.Set("560001")
	}

	c.CreditCard.CardType.Set("Visa")
	c.CreditCard.NameOnCard.Set("Jane Doe")
	c.CreditCard.CardNumber.Set("1234567890123456")
	c.CreditCard.SecurityCode.Set("123")
	c.CreditCard.ExpirationMonth.Set("12")
	c.CreditCard.ExpirationYear.Set("2030")
}

func TestNew_DefaultFormIsInvalid(t *testing.T) {
	c := New()

	assert.False(t, c.Valid())

	errs := c.Errors()
	assert.Contains(t, errs, "customer.firstName")
	assert.Contains(t, errs, "shippingAddress.state")
	assert.Contains(t, errs, "creditCard.cardNumber")

	// Expiration fields carry no rules.
	assert.NotContains(t, errs, "creditCard.expirationMonth")
	assert.NotContains(t, errs, "creditCard.expirationYear")
}

func TestCheckout_ValidWhenAllFieldsValid(t *testing.T) {
	c := New()
	fillValid(c)

	require.True(t, c.Valid())
	assert.Empty(t, c.Errors())
}

func TestCheckout_SingleInvalidFieldFlipsValidity(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Checkout)
		errPath string
	}{
		{
			name:    "first name too short",
			mutate:  func(c *Checkout) { c.Customer.FirstName.Set("J") },
			errPath: "customer.firstName",
		},
		{
			name:    "email pattern",
			mutate:  func(c *Checkout) { c.Customer.Email.Set("not-an-email") },
			errPath: "customer.email",
		},
		{
			name:    "email uppercase rejected",
			mutate:  func(c *Checkout) { c.Customer.Email.Set("Jane@example.com") },
			errPath: "customer.email",
		},
		{
			name:    "zip code too short",
			mutate:  func(c *Checkout) { c.ShippingAddress.ZipCode.Set("12345") },
			errPath: "shippingAddress.zipCode",
		},
		{
			name:    "billing state cleared",
			mutate:  func(c *Checkout) { c.BillingAddress.State.Clear() },
			errPath: "billingAddress.state",
		},
		{
			name:    "card type cleared",
			mutate:  func(c *Checkout) { c.CreditCard.CardType.Set("") },
			errPath: "creditCard.cardType",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			fillValid(c)
			require.True(t, c.Valid())

			tt.mutate(c)

			assert.False(t, c.Valid())
			errs := c.Errors()
			assert.Contains(t, errs, tt.errPath)
			// No other field's status changes.
			delete(errs, tt.errPath)
			assert.Empty(t, errs)
		})
	}
}

func TestNotOnlyWhitespaceRule(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		valid    bool
		messages []string
	}{
		{
			name:     "spaces only is rejected by the whitespace rule",
			value:    "   ",
			valid:    false,
			messages: []string{"must not be only whitespace"},
		},
		{
			name:  "padded value passes",
			value: " a ",
			valid: true,
		},
		{
			name:     "empty value fails required, not the whitespace rule",
			value:    "",
			valid:    false,
			messages: []string{"is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newField(Required(), MinLength(2), NotOnlyWhitespace())
			f.Set(tt.value)

			assert.Equal(t, tt.valid, f.Valid())
			if len(tt.messages) > 0 {
				assert.Equal(t, tt.messages, f.Errors())
			}
		})
	}
}

func TestCardNumberRule(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"1234567890123456", true},
		{"123456789012345", false},
		{"12345678901234567", false},
		{"12345678901234ab", false},
		{"", false},
	}

	for _, tt := range tests {
		c := New()
		c.CreditCard.CardNumber.Set(tt.value)
		assert.Equal(t, tt.valid, c.CreditCard.CardNumber.Valid(), "card number %q", tt.value)
	}
}

func TestSecurityCodeRule(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"123", true},
		{"12", false},
		{"1234", false},
		{"12a", false},
	}

	for _, tt := range tests {
		c := New()
		c.CreditCard.SecurityCode.Set(tt.value)
		assert.Equal(t, tt.valid, c.CreditCard.SecurityCode.Valid(), "security code %q", tt.value)
	}
}

func TestMarkAllTouched(t *testing.T) {
	c := New()
	c.MarkAllTouched()

	assert.True(t, c.Customer.FirstName.Touched)
	assert.True(t, c.ShippingAddress.Country.Touched)
	assert.True(t, c.BillingAddress.ZipCode.Touched)
	assert.True(t, c.CreditCard.SecurityCode.Touched)
}

func TestReset(t *testing.T) {
	c := New()
	fillValid(c)
	c.MarkAllTouched()

	c.Reset()

	assert.Equal(t, "", c.Customer.FirstName.Value)
	assert.False(t, c.Customer.FirstName.Touched)
	assert.Equal(t, "", c.ShippingAddress.State.Name)
	assert.False(t, c.Valid())
}

func TestCopyShippingToBilling(t *testing.T) {
	c := New()
	c.ShippingAddress.Street.Set("A")
	c.ShippingAddress.City.Set("B")
	c.ShippingAddress.State.Select("S1", "State One")
	c.ShippingAddress.Country.Select("C1", "Country One")
	c.ShippingAddress.ZipCode.Set("999999")

	c.CopyShippingToBilling()

	assert.Equal(t, c.ShippingAddress, c.BillingAddress)
	assert.Equal(t, "State One", c.BillingAddress.State.Name)
	assert.Equal(t, "C1", c.BillingAddress.Country.Code)

	c.ClearBilling()

	assert.Equal(t, "", c.BillingAddress.Street.Value)
	assert.Equal(t, "", c.BillingAddress.State.Name)
	assert.Equal(t, "", c.BillingAddress.Country.Code)
	// Shipping side stays untouched.
	assert.Equal(t, "A", c.ShippingAddress.Street.Value)
}

func TestAddressValue_ResolvesDisplayNames(t *testing.T) {
	c := New()
	c.ShippingAddress.Street.Set("21 Jump Street")
	c.ShippingAddress.City.Set("Bengaluru")
	c.ShippingAddress.State.Select("KA", "Karnataka")
	c.ShippingAddress.Country.Select("IN", "India")
	c.ShippingAddress.ZipCode.Set("560001")

	addr := c.ShippingAddress.AddressValue()

	assert.Equal(t, "Karnataka", addr.State)
	assert.Equal(t, "India", addr.Country)
	assert.Equal(t, "21 Jump Street", addr.Street)
}
