// Package form holds the checkout form state: strongly typed nested
// groups of fields, each carrying its value, touched flag, and
// validation rules. The form as a whole is valid iff every field is.
package form

import "shop-checkout/internal/model"

// Field is a text input with its validation rules.
type Field struct {
	Value   string
	Touched bool
	rules   []Rule
}

func newField(rules ...Rule) Field {
	return Field{rules: rules}
}

// Set updates the value and marks the field as interacted-with.
func (f *Field) Set(value string) {
	f.Value = value
	f.Touched = true
}

// MarkTouched flags the field as interacted-with so validation messages
// become visible.
func (f *Field) MarkTouched() {
	f.Touched = true
}

// IsTouched reports whether the field has been interacted with.
func (f *Field) IsTouched() bool {
	return f.Touched
}

// Errors returns the messages of every failing rule.
func (f *Field) Errors() []string {
	var errs []string
	for _, rule := range f.rules {
		if err := rule(f.Value); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

// Valid reports whether every rule passes.
func (f *Field) Valid() bool {
	for _, rule := range f.rules {
		if rule(f.Value) != nil {
			return false
		}
	}
	return true
}

// OptionField is a dropdown selection holding a full reference option,
// a code plus its display name. State and country fields keep the whole
// option so the submission pipeline can resolve display names without a
// second lookup.
type OptionField struct {
	Code     string
	Name     string
	Touched  bool
	required bool
}

func newOptionField(required bool) OptionField {
	return OptionField{required: required}
}

// Select replaces the current selection.
func (f *OptionField) Select(code, name string) {
	f.Code = code
	f.Name = name
	f.Touched = true
}

// Clear removes the current selection.
func (f *OptionField) Clear() {
	f.Code = ""
	f.Name = ""
}

// MarkTouched flags the field as interacted-with.
func (f *OptionField) MarkTouched() {
	f.Touched = true
}

// IsTouched reports whether the field has been interacted with.
func (f *OptionField) IsTouched() bool {
	return f.Touched
}

// Errors returns the validation messages for the selection.
func (f *OptionField) Errors() []string {
	if !f.Valid() {
		return []string{"is required"}
	}
	return nil
}

// Valid reports whether a required selection has been made.
func (f *OptionField) Valid() bool {
	return !f.required || f.Name != ""
}

// Customer groups the customer detail fields.
type Customer struct {
	FirstName Field
	LastName  Field
	Email     Field
}

// Address groups the fields of a shipping or billing address.
type Address struct {
	Street  Field
	City    Field
	State   OptionField
	Country OptionField
	ZipCode Field
}

// CreditCard groups the payment detail fields. Expiration month and year
// carry no rules; their lists are populated programmatically.
type CreditCard struct {
	CardType        Field
	NameOnCard      Field
	CardNumber      Field
	SecurityCode    Field
	ExpirationMonth Field
	ExpirationYear  Field
}

// Checkout is the complete checkout form.
type Checkout struct {
	Customer        Customer
	ShippingAddress Address
	BillingAddress  Address
	CreditCard      CreditCard
}

// New builds a checkout form with default empty values and the full
// validation rule set attached.
func New() *Checkout {
	return &Checkout{
		Customer: Customer{
			FirstName: newField(Required(), MinLength(2), NotOnlyWhitespace()),
			LastName:  newField(Required(), MinLength(2), NotOnlyWhitespace()),
			Email:     newField(Required(), Pattern(emailPattern, "must be a valid email address")),
		},
		ShippingAddress: newAddress(),
		BillingAddress:  newAddress(),
		CreditCard: CreditCard{
			CardType:        newField(Required()),
			NameOnCard:      newField(Required(), MinLength(2), NotOnlyWhitespace()),
			CardNumber:      newField(Required(), Pattern(cardNumberPattern, "must be exactly 16 digits")),
			SecurityCode:    newField(Required(), Pattern(securityCodePattern, "must be exactly 3 digits")),
			ExpirationMonth: newField(),
			ExpirationYear:  newField(),
		},
	}
}

func newAddress() Address {
	return Address{
		Street:  newField(Required(), MinLength(2), NotOnlyWhitespace()),
		City:    newField(Required(), MinLength(2), NotOnlyWhitespace()),
		State:   newOptionField(true),
		Country: newOptionField(true),
		ZipCode: newField(Required(), MinLength(6), NotOnlyWhitespace()),
	}
}

// fieldRef is the common surface of Field and OptionField used when
// walking the form.
type fieldRef interface {
	Valid() bool
	Errors() []string
	MarkTouched()
	IsTouched() bool
}

// walk visits every leaf field with its dotted path.
func (c *Checkout) walk(visit func(path string, f fieldRef)) {
	visit("customer.firstName", &c.Customer.FirstName)
	visit("customer.lastName", &c.Customer.LastName)
	visit("customer.email", &c.Customer.Email)
	walkAddress("shippingAddress", &c.ShippingAddress, visit)
	walkAddress("billingAddress", &c.BillingAddress, visit)
	visit("creditCard.cardType", &c.CreditCard.CardType)
	visit("creditCard.nameOnCard", &c.CreditCard.NameOnCard)
	visit("creditCard.cardNumber", &c.CreditCard.CardNumber)
	visit("creditCard.securityCode", &c.CreditCard.SecurityCode)
	visit("creditCard.expirationMonth", &c.CreditCard.ExpirationMonth)
	visit("creditCard.expirationYear", &c.CreditCard.ExpirationYear)
}

func walkAddress(prefix string, a *Address, visit func(path string, f fieldRef)) {
	visit(prefix+".street", &a.Street)
	visit(prefix+".city", &a.City)
	visit(prefix+".state", &a.State)
	visit(prefix+".country", &a.Country)
	visit(prefix+".zipCode", &a.ZipCode)
}

// Valid reports whether every field in the form is valid.
func (c *Checkout) Valid() bool {
	valid := true
	c.walk(func(_ string, f fieldRef) {
		if !f.Valid() {
			valid = false
		}
	})
	return valid
}

// Errors returns the validation messages of every invalid field, keyed
// by dotted field path.
func (c *Checkout) Errors() map[string][]string {
	errs := make(map[string][]string)
	c.walk(func(path string, f fieldRef) {
		if messages := f.Errors(); len(messages) > 0 {
			errs[path] = messages
		}
	})
	return errs
}

// TouchedPaths returns the dotted paths of every interacted-with field.
func (c *Checkout) TouchedPaths() []string {
	var paths []string
	c.walk(func(path string, f fieldRef) {
		if f.IsTouched() {
			paths = append(paths, path)
		}
	})
	return paths
}

// MarkAllTouched flags every field as interacted-with.
func (c *Checkout) MarkAllTouched() {
	c.walk(func(_ string, f fieldRef) {
		f.MarkTouched()
	})
}

// Reset restores the form to its default empty state.
func (c *Checkout) Reset() {
	*c = *New()
}

// CopyShippingToBilling overwrites the entire billing address group with
// the current shipping values, selections included.
func (c *Checkout) CopyShippingToBilling() {
	c.BillingAddress = c.ShippingAddress
}

// ClearBilling resets the billing address group to its default state.
func (c *Checkout) ClearBilling() {
	c.BillingAddress = newAddress()
}

// CustomerValue returns the customer fields as a submission-shaped record.
func (c *Checkout) CustomerValue() model.Customer {
	return model.Customer{
		FirstName: c.Customer.FirstName.Value,
		LastName:  c.Customer.LastName.Value,
		Email:     c.Customer.Email.Value,
	}
}

// AddressValue returns an address group with state and country resolved
// down to their display names.
func (a *Address) AddressValue() model.Address {
	return model.Address{
		Street:  a.Street.Value,
		City:    a.City.Value,
		State:   a.State.Name,
		Country: a.Country.Name,
		ZipCode: a.ZipCode.Value,
	}
}
