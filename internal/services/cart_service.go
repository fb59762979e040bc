package services

import (
	"fmt"
	"sync"

	"loja/internal/models"
	"loja/internal/repositories"
	"loja/pkg/money"
)

// MutationResult reports what a cart mutation actually did. Quantity is
// the line's quantity after the call (0 when the line no longer exists);
// Honored is false when the requested quantity had to be clamped to stock.
type MutationResult struct {
	Quantity int  `json:"quantity"`
	Honored  bool `json:"honored"`
}

// CartService holds one cart per user. All operations are total: out of
// range quantities clamp to [1, stock] and removals of absent lines are
// no-ops. Lines keep insertion order and there is at most one line per
// product.
type CartService struct {
	productRepo repositories.ProductRepository
	mu          sync.RWMutex
	carts       map[string][]models.CartItem
}

// NewCartService creates a new CartService.
func NewCartService(productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		productRepo: productRepo,
		carts:       make(map[string][]models.CartItem),
	}
}

// AddItem adds quantity units of a product to the user's cart, merging
// into an existing line when one exists. The resulting line quantity is
// clamped to the product's stock. Requests below one unit count as one.
func (s *CartService) AddItem(userID string, productID int, quantity int) (MutationResult, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return MutationResult{}, fmt.Errorf("cannot add to cart: %w", err)
	}

	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].Product.ID == productID {
			requested := lines[i].Quantity + quantity
			applied := clampToStock(requested, product.Stock)
			lines[i].Quantity = applied
			return MutationResult{Quantity: applied, Honored: applied == requested}, nil
		}
	}

	applied := clampToStock(quantity, product.Stock)
	if applied == 0 {
		// Nothing in stock, no line to hold.
		return MutationResult{Quantity: 0, Honored: false}, nil
	}
	s.carts[userID] = append(lines, models.CartItem{Product: *product, Quantity: applied})
	return MutationResult{Quantity: applied, Honored: applied == quantity}, nil
}

// UpdateQuantity sets the quantity of an existing line, clamped to stock.
// A quantity below one removes the line. Updating an absent line is a
// no-op.
func (s *CartService) UpdateQuantity(userID string, productID int, quantity int) (MutationResult, error) {
	if quantity < 1 {
		s.RemoveItem(userID, productID)
		return MutationResult{Quantity: 0, Honored: true}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].Product.ID == productID {
			applied := clampToStock(quantity, lines[i].Product.Stock)
			lines[i].Quantity = applied
			return MutationResult{Quantity: applied, Honored: applied == quantity}, nil
		}
	}
	return MutationResult{Quantity: 0, Honored: false}, nil
}

// RemoveItem deletes the line for a product. Removing an absent line is a
// no-op.
func (s *CartService) RemoveItem(userID string, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].Product.ID == productID {
			s.carts[userID] = append(lines[:i], lines[i+1:]...)
			return
		}
	}
}

// Clear empties the user's cart.
func (s *CartService) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// Cart returns a snapshot of the user's cart with the derived item count
// and total, both recomputed on every call.
func (s *CartService) Cart(userID string) models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := s.carts[userID]
	cart := models.Cart{Items: make([]models.CartItem, len(lines))}
	copy(cart.Items, lines)
	for _, item := range lines {
		cart.ItemCount += item.Quantity
		cart.TotalPrice = money.Add(cart.TotalPrice, money.Mul(item.Product.Price, item.Quantity))
	}
	return cart
}

// ItemCount returns the total number of units in the user's cart.
func (s *CartService) ItemCount(userID string) int {
	return s.Cart(userID).ItemCount
}

// TotalPrice returns the sum of quantity × price over the user's lines.
func (s *CartService) TotalPrice(userID string) float64 {
	return s.Cart(userID).TotalPrice
}

func clampToStock(quantity, stock int) int {
	if quantity > stock {
		return stock
	}
	return quantity
}
