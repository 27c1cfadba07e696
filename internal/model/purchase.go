package model

// Customer holds the customer details submitted with a purchase.
type Customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Address holds a shipping or billing address with state and country
// resolved to their display names.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

// Order carries the cart totals for a purchase.
type Order struct {
	TotalPrice    float64 `json:"totalPrice"`
	TotalQuantity int     `json:"totalQuantity"`
}

// OrderItem is a purchase line item, derived 1:1 from a cart item.
type OrderItem struct {
	ProductID string  `json:"productId"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// Purchase is the complete payload dispatched to the order API.
// It is constructed fresh per submission and never mutated afterwards.
type Purchase struct {
	Customer        Customer    `json:"customer"`
	ShippingAddress Address     `json:"shippingAddress"`
	BillingAddress  Address     `json:"billingAddress"`
	Order           Order       `json:"order"`
	OrderItems      []OrderItem `json:"orderItems"`
}

// PurchaseConfirmation is the order API response for an accepted purchase.
type PurchaseConfirmation struct {
	OrderTrackingNumber string `json:"orderTrackingNumber"`
}
