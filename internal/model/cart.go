package model

// CartItem is a single line in the shopping cart.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// CartSnapshot is a point-in-time copy of the cart contents and totals.
type CartSnapshot struct {
	TotalPrice    float64    `json:"totalPrice"`
	TotalQuantity int        `json:"totalQuantity"`
	Items         []CartItem `json:"items"`
}
