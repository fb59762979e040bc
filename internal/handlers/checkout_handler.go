package handlers

import (
	"errors"
	"fmt"
	"log"

	"loja/internal/models"
	"loja/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler drives the checkout wizard over HTTP. Every route
// requires an authenticated session; the empty-cart precondition is
// enforced by the service and surfaces as a conflict pointing the client
// back to the cart.
type CheckoutHandler struct {
	service  *services.CheckoutService
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the checkout routes.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Post("/", h.HandleStart)
	checkoutRoutes.Get("/", h.HandleCurrent)
	checkoutRoutes.Put("/address", h.HandleSubmitAddress)
	checkoutRoutes.Post("/back", h.HandleBack)
	checkoutRoutes.Post("/submit", h.HandleSubmit)
	checkoutRoutes.Delete("/", h.HandleCancel)
}

func (h *CheckoutHandler) checkoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Cart is empty",
		})
	case errors.Is(err, services.ErrCheckoutNotStarted):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Checkout has not been started",
		})
	case errors.Is(err, services.ErrWrongStep):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrInvalidPayment):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Checkout failed",
			"error":   err.Error(),
		})
	}
}

// HandleStart begins (or restarts) the wizard at the address step.
func (h *CheckoutHandler) HandleStart(c *fiber.Ctx) error {
	draft, err := h.service.Start(currentUserID(c))
	if err != nil {
		log.Printf("Error starting checkout: %v", err)
		return h.checkoutError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

// HandleCurrent returns the wizard state.
func (h *CheckoutHandler) HandleCurrent(c *fiber.Ctx) error {
	draft, err := h.service.Current(currentUserID(c))
	if err != nil {
		return h.checkoutError(c, err)
	}
	return c.JSON(draft)
}

// HandleSubmitAddress records the delivery form and advances to payment.
func (h *CheckoutHandler) HandleSubmitAddress(c *fiber.Ctx) error {
	var address models.CheckoutAddress
	if err := c.BodyParser(&address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(address); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	draft, err := h.service.SubmitAddress(currentUserID(c), address)
	if err != nil {
		log.Printf("Error submitting checkout address: %v", err)
		return h.checkoutError(c, err)
	}
	return c.JSON(draft)
}

// HandleBack returns from the payment step to the address step.
func (h *CheckoutHandler) HandleBack(c *fiber.Ctx) error {
	draft, err := h.service.Back(currentUserID(c))
	if err != nil {
		return h.checkoutError(c, err)
	}
	return c.JSON(draft)
}

// SubmitRequest represents the request body for placing the order.
type SubmitRequest struct {
	Payment     models.CheckoutPayment `json:"payment" validate:"required"`
	SaveAddress bool                   `json:"save_address"`
}

// HandleSubmit places the mocked order and advances to confirmation.
func (h *CheckoutHandler) HandleSubmit(c *fiber.Ctx) error {
	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	draft, err := h.service.Submit(currentUserID(c), req.Payment, req.SaveAddress)
	if err != nil {
		log.Printf("Error submitting checkout: %v", err)
		return h.checkoutError(c, err)
	}
	return c.JSON(draft)
}

// HandleCancel discards the wizard state.
func (h *CheckoutHandler) HandleCancel(c *fiber.Ctx) error {
	h.service.Cancel(currentUserID(c))
	return c.JSON(fiber.Map{
		"message": "Checkout discarded",
	})
}
