package models

// CartItem is one product/quantity pairing within a cart. The quantity is
// always within [1, product stock]; a cart holds at most one item per
// product id.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is a read-side snapshot of a user's cart: the items in insertion
// order plus the derived count and total.
type Cart struct {
	Items      []CartItem `json:"items"`
	ItemCount  int        `json:"item_count"`
	TotalPrice float64    `json:"total_price"`
}
