package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"loja/internal/models"
	"loja/internal/repositories"
	"loja/pkg/money"

	"github.com/google/uuid"
)

// Checkout wizard steps. The flow is linear: Address, then Payment, then
// Confirmation. Payment may step back to Address; Confirmation is
// terminal.
type CheckoutStep int

const (
	StepAddress CheckoutStep = iota + 1
	StepPayment
	StepConfirmation
)

func (s CheckoutStep) String() string {
	switch s {
	case StepAddress:
		return "address"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Checkout errors callers are expected to branch on.
var (
	ErrCheckoutNotStarted = fmt.Errorf("checkout has not been started")
	ErrEmptyCart          = fmt.Errorf("cart is empty")
	ErrWrongStep          = fmt.Errorf("operation not allowed at current checkout step")
	ErrInvalidPayment     = fmt.Errorf("invalid payment method")
)

// Publisher is the messaging surface the checkout flow needs; satisfied by
// pkg/rabbitmq.Client.
type Publisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// CheckoutDraft is the transient state of one user's checkout flow. It
// exists from Start until Cancel or a new Start; after submission it keeps
// the placed order so the confirmation summary can be re-read.
type CheckoutDraft struct {
	Step        CheckoutStep           `json:"step"`
	Address     models.CheckoutAddress `json:"address"`
	Payment     models.CheckoutPayment `json:"payment"`
	SaveAddress bool                   `json:"save_address"`
	Order       *models.Order          `json:"order,omitempty"`
}

// CheckoutService drives the three-step checkout wizard over the cart and
// auth state. Entry requires an authenticated user (enforced by the
// transport layer) and a non-empty cart (enforced here before every
// step).
type CheckoutService struct {
	cart       *CartService
	auth       *AuthService
	orderRepo  repositories.OrderRepository
	mq         Publisher
	clearDelay time.Duration

	mu     sync.Mutex
	drafts map[string]*CheckoutDraft
}

// NewCheckoutService creates a new CheckoutService. clearDelay is how long
// after a successful submission the cart clear is deferred so the
// confirmation summary can still show the pre-clear cart.
func NewCheckoutService(cart *CartService, auth *AuthService, orderRepo repositories.OrderRepository, mq Publisher, clearDelay time.Duration) *CheckoutService {
	return &CheckoutService{
		cart:       cart,
		auth:       auth,
		orderRepo:  orderRepo,
		mq:         mq,
		clearDelay: clearDelay,
		drafts:     make(map[string]*CheckoutDraft),
	}
}

// Start begins a checkout for the user, discarding any previous draft. The
// address form is prefilled from the current session identity when it
// belongs to the same user.
func (s *CheckoutService) Start(userID string) (*CheckoutDraft, error) {
	if s.cart.ItemCount(userID) == 0 {
		return nil, ErrEmptyCart
	}

	draft := &CheckoutDraft{Step: StepAddress}
	if current, err := s.auth.Current(); err == nil && current != nil && current.ID == userID {
		draft.Address.Name = current.Name
		draft.Address.Email = current.Email
		if current.Address != nil {
			draft.Address.Address = *current.Address
		}
	}

	s.mu.Lock()
	s.drafts[userID] = draft
	s.mu.Unlock()
	return s.snapshot(draft), nil
}

// Current returns the user's draft, or ErrCheckoutNotStarted.
func (s *CheckoutService) Current(userID string) (*CheckoutDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[userID]
	if !ok {
		return nil, ErrCheckoutNotStarted
	}
	return s.snapshot(draft), nil
}

// SubmitAddress records the delivery form and advances Address -> Payment.
func (s *CheckoutService) SubmitAddress(userID string, address models.CheckoutAddress) (*CheckoutDraft, error) {
	if s.cart.ItemCount(userID) == 0 {
		return nil, ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[userID]
	if !ok {
		return nil, ErrCheckoutNotStarted
	}
	if draft.Step != StepAddress {
		return nil, fmt.Errorf("%w: expected %s, at %s", ErrWrongStep, StepAddress, draft.Step)
	}
	draft.Address = address
	draft.Step = StepPayment
	return s.snapshot(draft), nil
}

// Back steps from Payment to Address. No other backward transition
// exists; in particular there is no way out of Confirmation.
func (s *CheckoutService) Back(userID string) (*CheckoutDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[userID]
	if !ok {
		return nil, ErrCheckoutNotStarted
	}
	if draft.Step != StepPayment {
		return nil, fmt.Errorf("%w: cannot go back from %s", ErrWrongStep, draft.Step)
	}
	draft.Step = StepAddress
	return s.snapshot(draft), nil
}

// Submit places the order from the Payment step: shipping is computed
// (free at or above the free-shipping threshold), the order is persisted
// with status "pending", an order.created event is published, the address
// is optionally saved to the profile, and the wizard moves to
// Confirmation. The cart is cleared after clearDelay so the confirmation
// summary still reflects it.
func (s *CheckoutService) Submit(userID string, payment models.CheckoutPayment, saveAddress bool) (*CheckoutDraft, error) {
	if payment.Method != "credit" && payment.Method != "pix" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPayment, payment.Method)
	}

	cart := s.cart.Cart(userID)
	if cart.ItemCount == 0 {
		return nil, ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[userID]
	if !ok {
		return nil, ErrCheckoutNotStarted
	}
	if draft.Step != StepPayment {
		return nil, fmt.Errorf("%w: expected %s, at %s", ErrWrongStep, StepPayment, draft.Step)
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Quantity:  line.Quantity,
			Price:     line.Product.Price, // Price at the time of order
		})
	}

	shipping := money.Shipping(cart.TotalPrice)
	order := &models.Order{
		ID:            uuid.New().String(),
		UserID:        userID,
		Items:         items,
		Subtotal:      cart.TotalPrice,
		ShippingCost:  shipping,
		TotalAmount:   money.Add(cart.TotalPrice, shipping),
		PaymentMethod: payment.Method,
		Installments:  payment.Installments,
		Address:       draft.Address.Address,
		Status:        "pending",
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if saveAddress {
		if err := s.auth.SaveAddress(userID, draft.Address.Address); err != nil {
			log.Printf("Warning: failed to save address for user %s: %v", userID, err)
		}
	}

	s.publishOrderCreated(order)

	draft.Payment = payment
	draft.SaveAddress = saveAddress
	draft.Order = order
	draft.Step = StepConfirmation

	// Deferred so the confirmation view can still render the pre-clear
	// cart summary.
	time.AfterFunc(s.clearDelay, func() { s.cart.Clear(userID) })

	return s.snapshot(draft), nil
}

// Cancel discards the user's draft. Cancelling without a draft is a
// no-op.
func (s *CheckoutService) Cancel(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
}

func (s *CheckoutService) publishOrderCreated(order *models.Order) {
	if s.mq == nil {
		log.Println("Messaging client is not initialized. Skipping order event publication.")
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderID":        order.ID,
		"userID":         order.UserID,
		"status":         order.Status,
		"total":          order.TotalAmount,
		"totalFormatted": money.Format(order.TotalAmount),
	})
	if err != nil {
		log.Printf("Failed to marshal order event: %v", err)
		return
	}
	if err := s.mq.Publish("order", "order.created", body); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
	}
}

// snapshot copies a draft so callers cannot mutate wizard state behind the
// lock.
func (s *CheckoutService) snapshot(draft *CheckoutDraft) *CheckoutDraft {
	out := *draft
	if draft.Order != nil {
		order := *draft.Order
		out.Order = &order
	}
	return &out
}
