package services_test

import (
	"testing"

	"loja/internal/catalog"
	"loja/internal/models"
	"loja/internal/repositories"
	"loja/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUser = "user-1"

func newCartService(t *testing.T) *services.CartService {
	t.Helper()
	repo := repositories.NewMockProductRepository()
	for _, p := range catalog.Products() {
		product := p
		require.NoError(t, repo.Create(&product))
	}
	return services.NewCartService(repo)
}

// sumLines recomputes the expected total from the raw lines, so the
// derived TotalPrice can be checked against first principles after every
// mutation.
func sumLines(cart models.Cart) float64 {
	var total float64
	for _, item := range cart.Items {
		total += float64(item.Quantity) * item.Product.Price
	}
	return total
}

func TestCartService_AddItemClampsToStock(t *testing.T) {
	cart := newCartService(t)

	// Product 5 has stock 8; requesting 20 clamps.
	result, err := cart.AddItem(testUser, 5, 20)
	require.NoError(t, err)
	assert.Equal(t, 8, result.Quantity)
	assert.False(t, result.Honored)

	snapshot := cart.Cart(testUser)
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 8, snapshot.Items[0].Quantity)
}

func TestCartService_AddItemAccumulates(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	require.NoError(t, repo.Create(&models.Product{ID: 1, Name: "Produto Teste", Price: 10, Category: "Moda", Stock: 4}))
	cart := services.NewCartService(repo)

	result, err := cart.AddItem(testUser, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Quantity)
	assert.True(t, result.Honored)

	// 2 + 3 exceeds stock 4: final quantity is 4, not 5.
	result, err = cart.AddItem(testUser, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Quantity)
	assert.False(t, result.Honored)

	snapshot := cart.Cart(testUser)
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 4, snapshot.Items[0].Quantity)
	assert.Equal(t, 4, snapshot.ItemCount)
}

func TestCartService_AddItemUnknownProduct(t *testing.T) {
	cart := newCartService(t)

	_, err := cart.AddItem(testUser, 99, 1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Empty(t, cart.Cart(testUser).Items)
}

func TestCartService_AddItemKeepsInsertionOrder(t *testing.T) {
	cart := newCartService(t)

	for _, id := range []int{6, 1, 4} {
		_, err := cart.AddItem(testUser, id, 1)
		require.NoError(t, err)
	}
	// Re-adding an existing product merges instead of reordering.
	_, err := cart.AddItem(testUser, 1, 1)
	require.NoError(t, err)

	snapshot := cart.Cart(testUser)
	require.Len(t, snapshot.Items, 3)
	assert.Equal(t, 6, snapshot.Items[0].Product.ID)
	assert.Equal(t, 1, snapshot.Items[1].Product.ID)
	assert.Equal(t, 4, snapshot.Items[2].Product.ID)
	assert.Equal(t, 2, snapshot.Items[1].Quantity)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	cart := newCartService(t)

	_, err := cart.AddItem(testUser, 7, 1) // stock 15
	require.NoError(t, err)

	result, err := cart.UpdateQuantity(testUser, 7, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Quantity)
	assert.True(t, result.Honored)

	// Above stock: clamped.
	result, err = cart.UpdateQuantity(testUser, 7, 100)
	require.NoError(t, err)
	assert.Equal(t, 15, result.Quantity)
	assert.False(t, result.Honored)

	// Absent line: no-op.
	result, err = cart.UpdateQuantity(testUser, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Quantity)
	assert.False(t, result.Honored)
	assert.Len(t, cart.Cart(testUser).Items, 1)
}

func TestCartService_UpdateQuantityBelowOneRemovesLine(t *testing.T) {
	cart := newCartService(t)

	_, err := cart.AddItem(testUser, 3, 2)
	require.NoError(t, err)

	result, err := cart.UpdateQuantity(testUser, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Quantity)
	assert.True(t, result.Honored)
	assert.Empty(t, cart.Cart(testUser).Items)
}

func TestCartService_RemoveItem(t *testing.T) {
	cart := newCartService(t)

	_, err := cart.AddItem(testUser, 1, 2)
	require.NoError(t, err)
	_, err = cart.AddItem(testUser, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.ItemCount(testUser))

	cart.RemoveItem(testUser, 1)
	assert.Equal(t, 1, cart.ItemCount(testUser))

	// Removing an absent product leaves the cart unchanged.
	before := cart.Cart(testUser)
	cart.RemoveItem(testUser, 1)
	cart.RemoveItem(testUser, 99)
	assert.Equal(t, before, cart.Cart(testUser))
}

func TestCartService_TotalPriceInvariant(t *testing.T) {
	cart := newCartService(t)

	steps := []func(){
		func() { cart.AddItem(testUser, 1, 2) },
		func() { cart.AddItem(testUser, 6, 1) },
		func() { cart.AddItem(testUser, 1, 50) }, // clamps to stock 25
		func() { cart.UpdateQuantity(testUser, 6, 3) },
		func() { cart.RemoveItem(testUser, 1) },
		func() { cart.UpdateQuantity(testUser, 6, 0) },
		func() { cart.AddItem(testUser, 4, 1) },
		func() { cart.Clear(testUser) },
	}
	for i, step := range steps {
		step()
		snapshot := cart.Cart(testUser)
		assert.InDelta(t, sumLines(snapshot), snapshot.TotalPrice, 0.005, "after mutation %d", i)
	}

	assert.Zero(t, cart.TotalPrice(testUser))
	assert.Zero(t, cart.ItemCount(testUser))
}

func TestCartService_TotalPriceSumsLines(t *testing.T) {
	cart := newCartService(t)

	_, err := cart.AddItem(testUser, 6, 2) // 2 × 299.90
	require.NoError(t, err)
	_, err = cart.AddItem(testUser, 4, 1) // 1 × 89.90
	require.NoError(t, err)

	assert.Equal(t, 689.70, cart.TotalPrice(testUser))
	assert.Equal(t, 3, cart.ItemCount(testUser))
}

func TestCartService_CartsAreIsolatedPerUser(t *testing.T) {
	cart := newCartService(t)

	_, err := cart.AddItem("user-a", 1, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, cart.ItemCount("user-a"))
	assert.Zero(t, cart.ItemCount("user-b"))

	cart.Clear("user-b")
	assert.Equal(t, 1, cart.ItemCount("user-a"))
}

func TestCartService_SnapshotIsACopy(t *testing.T) {
	cart := newCartService(t)

	_, err := cart.AddItem(testUser, 8, 1)
	require.NoError(t, err)

	snapshot := cart.Cart(testUser)
	snapshot.Items[0].Quantity = 99

	assert.Equal(t, 1, cart.Cart(testUser).Items[0].Quantity)
}
