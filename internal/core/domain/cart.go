package domain

// CartItem is one line of the cart: a distinct product and how many units.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is price × quantity for the line.
func (i CartItem) Subtotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}
