// Package payments exposes the settlement and order-lifecycle endpoints.
package payments

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Alice-Yoon/Katachii-Back--sample/models"
	"github.com/Alice-Yoon/Katachii-Back--sample/responses"
	"github.com/Alice-Yoon/Katachii-Back--sample/services"
	"github.com/Alice-Yoon/Katachii-Back--sample/store"
)

const requestTimeout = 10 * time.Second

// Settlement is the checkout workflow contract the controller depends on.
type Settlement interface {
	PlaceOrder(ctx context.Context, userID string, req services.CheckoutRequest) (*services.CheckoutResult, error)
}

// Lifecycle is the admin order-transition contract the controller depends on.
type Lifecycle interface {
	MarkPaid(ctx context.Context, orderID, userID string) (*services.TransitionResult, error)
	AttachTracking(ctx context.Context, orderID, userID, deliveryNumber string) (*services.TransitionResult, error)
	Cancel(ctx context.Context, orderID, userID string, productIDs []string) (*services.TransitionResult, error)
	DeleteOrderRecord(ctx context.Context, orderID string) error
	ManageOrders(ctx context.Context, page int64) ([]models.Payment, int64, error)
}

type Controller struct {
	settlement Settlement
	lifecycle  Lifecycle
	logger     *zap.Logger
}

func NewController(settlement Settlement, lifecycle Lifecycle, logger *zap.Logger) *Controller {
	return &Controller{
		settlement: settlement,
		lifecycle:  lifecycle,
		logger:     logger,
	}
}

// PaymentToBank saves a bank-deposit order.
// POST /api/payments/paymentToBank
func (ct *Controller) PaymentToBank(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	userID, ok := c.Locals("userId").(string)
	if !ok || userID == "" {
		return responses.Unauthorized(c, "User ID not found in token")
	}

	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, "Invalid request body")
	}
	if len(req.Items) == 0 {
		return responses.Fail(c, "No items to order")
	}

	res, err := ct.settlement.PlaceOrder(ctx, userID, req)
	if err != nil {
		return ct.failPlaceOrder(c, err)
	}

	return responses.OK(c, fiber.Map{
		"savedNewPayment": res.Payment,
		"updatedUserInfo": res.User,
		"updatedProductInfo": fiber.Map{
			"modifiedCount": res.ProductsUpdated,
		},
	})
}

func (ct *Controller) failPlaceOrder(c *fiber.Ctx, err error) error {
	var conflict *services.ConflictError
	if errors.As(err, &conflict) {
		return responses.Fail(c, conflict.Error())
	}

	var partial *services.PartialFailureError
	if errors.As(err, &partial) {
		switch partial.Step {
		case services.StepAccountUpdate:
			return responses.Fail(c, "Failed to update the new order on the user account")
		case services.StepProductUpdate:
			return responses.Fail(c, "Failed to update the ordered products")
		}
	}

	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
		return responses.Fail(c, "User or product not found")
	}

	ct.logger.Error("paymentToBank failed", zap.Error(err))
	return responses.FailErr(c, err)
}

// ManageOrders returns one page of the full order list for the admin board.
// GET /api/payments/manageOrders?pageNumber=N
func (ct *Controller) ManageOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	page := int64(c.QueryInt("pageNumber", 1))

	orders, totalPages, err := ct.lifecycle.ManageOrders(ctx, page)
	if err != nil {
		ct.logger.Error("manageOrders failed", zap.Error(err))
		return responses.Fail(c, "Failed to load orders")
	}

	return responses.OK(c, fiber.Map{
		"ordersInfo": orders,
		"totalPages": totalPages,
	})
}

type orderStatusRequest struct {
	OrderID string `json:"orderId"`
	UserID  string `json:"userId"`
}

// UpdateOrderStatus marks an order as paid after the deposit arrived.
// POST /api/payments/updateOrderStatus
func (ct *Controller) UpdateOrderStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	var req orderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, "Invalid request body")
	}

	res, err := ct.lifecycle.MarkPaid(ctx, req.OrderID, req.UserID)
	if err != nil {
		return ct.failTransition(c, err)
	}

	return responses.OK(c, fiber.Map{
		"updatedPaymentInfo": res.Payment,
		"updatedUserInfo":    res.User,
	})
}

type deliveryNumberRequest struct {
	OrderID        string `json:"orderId"`
	UserID         string `json:"userId"`
	DeliveryNumber string `json:"deliveryNumber"`
}

// UpdateDeliveryNumber attaches the parcel tracking number to an order.
// POST /api/payments/updateDeliveryNumber
func (ct *Controller) UpdateDeliveryNumber(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	var req deliveryNumberRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, "Invalid request body")
	}

	res, err := ct.lifecycle.AttachTracking(ctx, req.OrderID, req.UserID, req.DeliveryNumber)
	if err != nil {
		return ct.failTransition(c, err)
	}

	return responses.OK(c, fiber.Map{
		"updatedPaymentInfo": res.Payment,
		"updatedUserInfo":    res.User,
	})
}

type cancelOrderRequest struct {
	OrderID    string   `json:"orderId"`
	UserID     string   `json:"userId"`
	ProductIDs []string `json:"productsIds"`
}

// CancelThisOrder cancels an unpaid order and puts its products back on
// sale.
// POST /api/payments/cancelThisOrder
func (ct *Controller) CancelThisOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	var req cancelOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, "Invalid request body")
	}

	res, err := ct.lifecycle.Cancel(ctx, req.OrderID, req.UserID, req.ProductIDs)
	if err != nil {
		return ct.failTransition(c, err)
	}

	return responses.OK(c, fiber.Map{
		"updatedPaymentInfo": res.Payment,
		"updatedUserInfo":    res.User,
		"updatedProductInfo": fiber.Map{
			"modifiedCount": res.ProductsUpdated,
		},
	})
}

// RemoveOrderRecord hard-deletes an order record. The user's history keeps
// its (now stale) mirrored entry.
// DELETE /api/payments/removeOrderRecord?orderId=ID
func (ct *Controller) RemoveOrderRecord(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	orderID := c.Query("orderId")
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false})
	}

	if err := ct.lifecycle.DeleteOrderRecord(ctx, orderID); err != nil {
		ct.logger.Error("removeOrderRecord failed", zap.String("orderId", orderID), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false})
	}

	return responses.OK(c, fiber.Map{})
}

func (ct *Controller) failTransition(c *fiber.Ctx, err error) error {
	var partial *services.PartialFailureError
	if errors.As(err, &partial) {
		switch partial.Step {
		case services.StepAccountUpdate:
			return responses.Fail(c, "Failed to update the user record")
		case services.StepProductUpdate:
			return responses.Fail(c, "Failed to update the product record")
		}
	}

	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
		return responses.Fail(c, "Failed to update the payment record")
	}

	ct.logger.Error("order transition failed", zap.Error(err))
	return responses.FailErr(c, err)
}
