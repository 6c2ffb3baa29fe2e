// Package cart exposes the account endpoints: cart upkeep, checkout-page
// lookups, and the order history view.
package cart

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

// Account is the account-service contract the controller depends on.
type Account interface {
	Info(ctx context.Context, userID string) (*models.User, error)
	History(ctx context.Context, userID string) ([]models.HistoryEntry, error)
	CartItems(ctx context.Context, userID string) ([]models.Product, error)
	AddToCart(ctx context.Context, userID, productID string) (*models.User, error)
	RemoveCartItem(ctx context.Context, userID, productID string) (*models.User, error)
	ProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error)
}

type Controller struct {
	account Account
	logger  *zap.Logger
}

func NewController(account Account, logger *zap.Logger) *Controller {
	return &Controller{account: account, logger: logger}
}

// GetCartItems returns the product documents referenced by the cart,
// pruning references to products that no longer exist.
// GET /api/users/getCartItems
func (ct *Controller) GetCartItems(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	userID, ok := c.Locals("userId").(string)
	if !ok || userID == "" {
		return responses.Unauthorized(c, "User ID not found in token")
	}

	products, err := ct.account.CartItems(ctx, userID)
	if err != nil {
		return ct.fail(c, err, "Failed to load cart items")
	}

	return responses.OK(c, fiber.Map{"cartItems": products})
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
}

// AddToCart stages a product for checkout.
// POST /api/users/addToCart
func (ct *Controller) AddToCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	userID, ok := c.Locals("userId").(string)
	if !ok || userID == "" {
		return responses.Unauthorized(c, "User ID not found in token")
	}

	var req addToCartRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
		return responses.Fail(c, "Invalid request body")
	}

	user, err := ct.account.AddToCart(ctx, userID, req.ProductID)
	if err != nil {
		if errors.Is(err, services.ErrCartFull) || errors.Is(err, services.ErrAlreadyInCart) {
			return responses.Fail(c, err.Error())
		}
		return ct.fail(c, err, "Failed to add the product to the cart")
	}

	return responses.OK(c, fiber.Map{"cart": user.Cart})
}

// DeleteCartItem drops a product reference from the cart.
// DELETE /api/users/deleteCartItem?productId=ID
func (ct *Controller) DeleteCartItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	userID, ok := c.Locals("userId").(string)
	if !ok || userID == "" {
		return responses.Unauthorized(c, "User ID not found in token")
	}

	productID := c.Query("productId")
	if productID == "" {
		return responses.Fail(c, "productId is required")
	}

	user, err := ct.account.RemoveCartItem(ctx, userID, productID)
	if err != nil {
		return ct.fail(c, err, "Failed to remove the product from the cart")
	}

	return responses.OK(c, fiber.Map{"userInfo": user})
}

// GetUsersInfo returns the buyer profile shown on the checkout page.
// GET /api/users/getUsersInfo
func (ct *Controller) GetUsersInfo(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	userID, ok := c.Locals("userId").(string)
	if !ok || userID == "" {
		return responses.Unauthorized(c, "User ID not found in token")
	}

	user, err := ct.account.Info(ctx, userID)
	if err != nil {
		return ct.fail(c, err, "Failed to load user info")
	}

	return responses.OK(c, fiber.Map{"userInfo": user})
}

// GetItemsByID returns the product documents for the ids in the request
// body; the checkout page uses it to render the items being purchased.
// POST /api/users/getItemsById
func (ct *Controller) GetItemsByID(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	var ids []string
	if err := c.BodyParser(&ids); err != nil {
		return responses.Fail(c, "Invalid request body")
	}

	products, err := ct.account.ProductsByIDs(ctx, ids)
	if err != nil {
		return ct.fail(c, err, "Failed to load products")
	}

	return c.Status(fiber.StatusOK).JSON(products)
}

// GetHistoryItems returns the user's mirrored order history.
// GET /api/users/getHistoryItems
func (ct *Controller) GetHistoryItems(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	userID, ok := c.Locals("userId").(string)
	if !ok || userID == "" {
		return responses.Unauthorized(c, "User ID not found in token")
	}

	history, err := ct.account.History(ctx, userID)
	if err != nil {
		return ct.fail(c, err, "Failed to load order history")
	}

	return responses.OK(c, fiber.Map{"historyInfo": history})
}

func (ct *Controller) fail(c *fiber.Ctx, err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
		return responses.Fail(c, msg)
	}
	ct.logger.Error(msg, zap.Error(err))
	return responses.FailErr(c, err)
}
