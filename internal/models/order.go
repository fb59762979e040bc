package models

import "time"

// OrderItem represents a single item within an order.
type OrderItem struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // Price at the time of order
}

// Order represents a placed order. Subtotal is the cart total at
// submission; TotalAmount = Subtotal + ShippingCost.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	Items         []OrderItem `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	ShippingCost  float64     `json:"shipping_cost"`
	TotalAmount   float64     `json:"total_amount"`
	PaymentMethod string      `json:"payment_method"`
	Installments  int         `json:"installments,omitempty"`
	Address       Address     `json:"address"`
	Status        string      `json:"status"` // "pending", "processing", "shipped", "delivered", "cancelled"
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
