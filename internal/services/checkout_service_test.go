package services_test

import (
	"encoding/json"
	"testing"
	"time"

	"loja/internal/catalog"
	"loja/internal/models"
	"loja/internal/repositories"
	"loja/internal/services"
	"loja/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPublisher is a mock implementation of services.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

type checkoutFixture struct {
	cart     *services.CartService
	auth     *services.AuthService
	checkout *services.CheckoutService
	orders   *repositories.MockOrderRepository
	mq       *MockPublisher
	userID   string
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	productRepo := repositories.NewMockProductRepository()
	for _, p := range catalog.Products() {
		product := p
		require.NoError(t, productRepo.Create(&product))
	}

	cart := services.NewCartService(productRepo)
	auth := services.NewAuthService(repositories.NewMockUserRepository(), session.NewMemoryStore(), testJWTSecret)
	orders := repositories.NewMockOrderRepository()
	mq := new(MockPublisher)

	user, _, err := auth.Register("Ana", "ana@x.com", "pw")
	require.NoError(t, err)

	return &checkoutFixture{
		cart:     cart,
		auth:     auth,
		checkout: services.NewCheckoutService(cart, auth, orders, mq, 50*time.Millisecond),
		orders:   orders,
		mq:       mq,
		userID:   user.ID,
	}
}

func testAddress() models.CheckoutAddress {
	return models.CheckoutAddress{
		Name:  "Ana",
		Email: "ana@x.com",
		CPF:   "123.456.789-00",
		Phone: "11 99999-0000",
		Address: models.Address{
			Street:       "Rua das Flores",
			Number:       "123",
			Neighborhood: "Centro",
			City:         "São Paulo",
			State:        "SP",
			ZipCode:      "01234-567",
		},
	}
}

func TestCheckoutService_StartRequiresNonEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.checkout.Start(f.userID)
	assert.ErrorIs(t, err, services.ErrEmptyCart)

	_, err = f.cart.AddItem(f.userID, 1, 1)
	require.NoError(t, err)

	draft, err := f.checkout.Start(f.userID)
	require.NoError(t, err)
	assert.Equal(t, services.StepAddress, draft.Step)
}

func TestCheckoutService_StartPrefillsFromSession(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.cart.AddItem(f.userID, 1, 1)
	require.NoError(t, err)

	addr := models.Address{Street: "Rua A", Number: "1", City: "Campinas", State: "SP", ZipCode: "13000-000"}
	_, err = f.auth.UpdateProfile(services.ProfileUpdate{Address: &addr})
	require.NoError(t, err)

	draft, err := f.checkout.Start(f.userID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", draft.Address.Name)
	assert.Equal(t, "ana@x.com", draft.Address.Email)
	assert.Equal(t, "Campinas", draft.Address.Address.City)
}

func TestCheckoutService_LinearStepFlow(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.cart.AddItem(f.userID, 1, 1)
	require.NoError(t, err)

	_, err = f.checkout.Current(f.userID)
	assert.ErrorIs(t, err, services.ErrCheckoutNotStarted)

	_, err = f.checkout.Start(f.userID)
	require.NoError(t, err)

	// Cannot go back or submit from the address step.
	_, err = f.checkout.Back(f.userID)
	assert.ErrorIs(t, err, services.ErrWrongStep)
	_, err = f.checkout.Submit(f.userID, models.CheckoutPayment{Method: "pix"}, false)
	assert.ErrorIs(t, err, services.ErrWrongStep)

	draft, err := f.checkout.SubmitAddress(f.userID, testAddress())
	require.NoError(t, err)
	assert.Equal(t, services.StepPayment, draft.Step)

	// Submitting the address again at the payment step is out of order.
	_, err = f.checkout.SubmitAddress(f.userID, testAddress())
	assert.ErrorIs(t, err, services.ErrWrongStep)

	// Payment -> Address back navigation is allowed.
	draft, err = f.checkout.Back(f.userID)
	require.NoError(t, err)
	assert.Equal(t, services.StepAddress, draft.Step)

	_, err = f.checkout.SubmitAddress(f.userID, testAddress())
	require.NoError(t, err)
	f.mq.On("Publish", "order", "order.created", mock.Anything).Return(nil).Once()

	draft, err = f.checkout.Submit(f.userID, models.CheckoutPayment{Method: "pix"}, false)
	require.NoError(t, err)
	assert.Equal(t, services.StepConfirmation, draft.Step)

	// No transition leaves the confirmation step.
	_, err = f.checkout.Back(f.userID)
	assert.ErrorIs(t, err, services.ErrWrongStep)
	_, err = f.checkout.Submit(f.userID, models.CheckoutPayment{Method: "pix"}, false)
	assert.ErrorIs(t, err, services.ErrWrongStep)
}

func TestCheckoutService_SubmitComputesShipping(t *testing.T) {
	f := newCheckoutFixture(t)

	// 1 × 89.90 + 1 × 299.90 = 389.80: above the free-shipping threshold.
	_, err := f.cart.AddItem(f.userID, 4, 1)
	require.NoError(t, err)
	_, err = f.cart.AddItem(f.userID, 6, 1)
	require.NoError(t, err)

	_, err = f.checkout.Start(f.userID)
	require.NoError(t, err)
	_, err = f.checkout.SubmitAddress(f.userID, testAddress())
	require.NoError(t, err)
	f.mq.On("Publish", "order", "order.created", mock.Anything).Return(nil).Once()

	draft, err := f.checkout.Submit(f.userID, models.CheckoutPayment{Method: "credit", CardNumber: "4111 1111 1111 1111", CardName: "ANA", Expiry: "12/30", CVV: "123", Installments: 3}, false)
	require.NoError(t, err)

	order := draft.Order
	require.NotNil(t, order)
	assert.Equal(t, 389.80, order.Subtotal)
	assert.Equal(t, 0.0, order.ShippingCost)
	assert.Equal(t, 389.80, order.TotalAmount)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, "credit", order.PaymentMethod)
	assert.Equal(t, 3, order.Installments)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 89.90, order.Items[0].Price)

	f.mq.AssertExpectations(t)
}

func TestCheckoutService_SubmitChargesFlatShippingBelowThreshold(t *testing.T) {
	f := newCheckoutFixture(t)

	// 1 × 89.90: below 200, flat 15.90 shipping applies.
	_, err := f.cart.AddItem(f.userID, 4, 1)
	require.NoError(t, err)

	_, err = f.checkout.Start(f.userID)
	require.NoError(t, err)
	_, err = f.checkout.SubmitAddress(f.userID, testAddress())
	require.NoError(t, err)
	f.mq.On("Publish", "order", "order.created", mock.Anything).Return(nil).Once()

	draft, err := f.checkout.Submit(f.userID, models.CheckoutPayment{Method: "pix"}, false)
	require.NoError(t, err)

	require.NotNil(t, draft.Order)
	assert.Equal(t, 89.90, draft.Order.Subtotal)
	assert.Equal(t, 15.90, draft.Order.ShippingCost)
	assert.Equal(t, 105.80, draft.Order.TotalAmount)
}

func TestCheckoutService_SubmitPersistsOrderAndPublishes(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.cart.AddItem(f.userID, 1, 1)
	require.NoError(t, err)

	_, err = f.checkout.Start(f.userID)
	require.NoError(t, err)
	_, err = f.checkout.SubmitAddress(f.userID, testAddress())
	require.NoError(t, err)

	var published []byte
	f.mq.On("Publish", "order", "order.created", mock.Anything).Run(func(args mock.Arguments) {
		published = args.Get(2).([]byte)
	}).Return(nil).Once()

	draft, err := f.checkout.Submit(f.userID, models.CheckoutPayment{Method: "pix"}, false)
	require.NoError(t, err)

	stored, err := f.orders.GetByID(draft.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, f.userID, stored.UserID)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(published, &event))
	assert.Equal(t, draft.Order.ID, event["orderID"])
	assert.Equal(t, "pending", event["status"])
	assert.Equal(t, "R$ 2.499,90", event["totalFormatted"])

	f.mq.AssertExpectations(t)
}

func TestCheckoutService_SubmitClearsCartAfterDelay(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.cart.AddItem(f.userID, 1, 2)
	require.NoError(t, err)

	_, err = f.checkout.Start(f.userID)
	require.NoError(t, err)
	_, err = f.checkout.SubmitAddress(f.userID, testAddress())
	require.NoError(t, err)
	f.mq.On("Publish", "order", "order.created", mock.Anything).Return(nil).Once()

	_, err = f.checkout.Submit(f.userID, models.CheckoutPayment{Method: "pix"}, false)
	require.NoError(t, err)

	// The cart survives the submission itself so the confirmation summary
	// can still show it, then empties.
	assert.Equal(t, 2, f.cart.ItemCount(f.userID))
	assert.Eventually(t, func() bool {
		return f.cart.ItemCount(f.userID) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestCheckoutService_SubmitSavesAddressWhenOptedIn(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.cart.AddItem(f.userID, 1, 1)
	require.NoError(t, err)

	_, err = f.checkout.Start(f.userID)
	require.NoError(t, err)
	_, err = f.checkout.SubmitAddress(f.userID, testAddress())
	require.NoError(t, err)
	f.mq.On("Publish", "order", "order.created", mock.Anything).Return(nil).Once()

	_, err = f.checkout.Submit(f.userID, models.CheckoutPayment{Method: "pix"}, true)
	require.NoError(t, err)

	current, err := f.auth.Current()
	require.NoError(t, err)
	require.NotNil(t, current.Address)
	assert.Equal(t, "Rua das Flores", current.Address.Street)
	assert.Equal(t, "01234-567", current.Address.ZipCode)
}

func TestCheckoutService_SubmitWithoutOptInLeavesProfileAlone(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.cart.AddItem(f.userID, 1, 1)
	require.NoError(t, err)

	_, err = f.checkout.Start(f.userID)
	require.NoError(t, err)
	_, err = f.checkout.SubmitAddress(f.userID, testAddress())
	require.NoError(t, err)
	f.mq.On("Publish", "order", "order.created", mock.Anything).Return(nil).Once()

	_, err = f.checkout.Submit(f.userID, models.CheckoutPayment{Method: "pix"}, false)
	require.NoError(t, err)

	current, err := f.auth.Current()
	require.NoError(t, err)
	assert.Nil(t, current.Address)
}

func TestCheckoutService_SubmitRejectsUnknownPaymentMethod(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.cart.AddItem(f.userID, 1, 1)
	require.NoError(t, err)

	_, err = f.checkout.Start(f.userID)
	require.NoError(t, err)
	_, err = f.checkout.SubmitAddress(f.userID, testAddress())
	require.NoError(t, err)

	_, err = f.checkout.Submit(f.userID, models.CheckoutPayment{Method: "boleto"}, false)
	assert.ErrorIs(t, err, services.ErrInvalidPayment)

	// The wizard stays at the payment step for a retry.
	draft, err := f.checkout.Current(f.userID)
	require.NoError(t, err)
	assert.Equal(t, services.StepPayment, draft.Step)
}

func TestCheckoutService_Cancel(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.cart.AddItem(f.userID, 1, 1)
	require.NoError(t, err)

	_, err = f.checkout.Start(f.userID)
	require.NoError(t, err)

	f.checkout.Cancel(f.userID)
	_, err = f.checkout.Current(f.userID)
	assert.ErrorIs(t, err, services.ErrCheckoutNotStarted)

	// Cancelling again is a no-op.
	f.checkout.Cancel(f.userID)
}

func TestCheckoutService_PublishFailureDoesNotFailSubmission(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.cart.AddItem(f.userID, 1, 1)
	require.NoError(t, err)

	_, err = f.checkout.Start(f.userID)
	require.NoError(t, err)
	_, err = f.checkout.SubmitAddress(f.userID, testAddress())
	require.NoError(t, err)
	f.mq.On("Publish", "order", "order.created", mock.Anything).Return(assert.AnError).Once()

	draft, err := f.checkout.Submit(f.userID, models.CheckoutPayment{Method: "pix"}, false)
	require.NoError(t, err)
	assert.Equal(t, services.StepConfirmation, draft.Step)
}
