package services_test

import (
	"testing"

	"loja/internal/models"
	"loja/internal/repositories"
	"loja/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_GetOrdersByUserMostRecentFirst(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo)

	first := &models.Order{UserID: "u1", Status: "pending", TotalAmount: 100}
	require.NoError(t, repo.Create(first))
	second := &models.Order{UserID: "u1", Status: "pending", TotalAmount: 200}
	require.NoError(t, repo.Create(second))
	other := &models.Order{UserID: "u2", Status: "pending", TotalAmount: 50}
	require.NoError(t, repo.Create(other))

	orders, err := service.GetOrdersByUser("u1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, "u1", o.UserID)
	}
	assert.False(t, orders[0].CreatedAt.Before(orders[1].CreatedAt))
}

func TestOrderService_GetOrderByID(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo)

	order := &models.Order{UserID: "u1", Status: "pending"}
	require.NoError(t, repo.Create(order))

	found, err := service.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = service.GetOrderByID("missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo)

	order := &models.Order{UserID: "u1", Status: "pending"}
	require.NoError(t, repo.Create(order))

	require.NoError(t, service.UpdateOrderStatus(order.ID, "shipped"))
	updated, err := repo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "shipped", updated.Status)

	err = service.UpdateOrderStatus(order.ID, "lost-in-transit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status")

	err = service.UpdateOrderStatus("missing", "shipped")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
