package models

// CheckoutAddress is the delivery form collected by the first checkout
// step.
type CheckoutAddress struct {
	Name    string  `json:"name" validate:"required,min=1,max=100"`
	Email   string  `json:"email" validate:"required,email"`
	CPF     string  `json:"cpf" validate:"required"`
	Phone   string  `json:"phone" validate:"required"`
	Address Address `json:"address" validate:"required"`
}

// CheckoutPayment is the payment form collected by the second checkout
// step. Card fields are only meaningful for the "credit" method; "pix"
// carries none. No payment authorization happens, the data is echoed into
// the mocked order.
type CheckoutPayment struct {
	Method       string `json:"method" validate:"required,oneof=credit pix"`
	CardNumber   string `json:"card_number,omitempty"`
	CardName     string `json:"card_name,omitempty"`
	Expiry       string `json:"expiry,omitempty"`
	CVV          string `json:"cvv,omitempty"`
	Installments int    `json:"installments,omitempty" validate:"omitempty,min=1,max=12"`
}
