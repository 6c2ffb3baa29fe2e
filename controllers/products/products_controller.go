// Package products exposes the admin catalog endpoints.
package products

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Alice-Yoon/Katachii-Back--sample/models"
	"github.com/Alice-Yoon/Katachii-Back--sample/responses"
	"github.com/Alice-Yoon/Katachii-Back--sample/store"
)

const requestTimeout = 10 * time.Second

// Catalog is the product persistence contract the controller depends on.
type Catalog interface {
	Insert(ctx context.Context, product models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) (*models.Product, error)
}

type Controller struct {
	catalog Catalog
	logger  *zap.Logger
}

func NewController(catalog Catalog, logger *zap.Logger) *Controller {
	return &Controller{catalog: catalog, logger: logger}
}

// UploadProduct registers a new catalog item.
// POST /api/products/uploadProduct
func (ct *Controller) UploadProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return responses.Fail(c, "Invalid product data")
	}
	if product.Title == "" {
		return responses.Fail(c, "Product title is required")
	}

	saved, err := ct.catalog.Insert(ctx, product)
	if err != nil {
		ct.logger.Error("uploadProduct failed", zap.Error(err))
		return responses.FailErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"product": saved,
	})
}

// DeleteProduct removes a catalog item. Products referenced by a
// non-cancelled order should not be deleted; that invariant is the admin's
// to keep, the store does not enforce it.
// DELETE /api/products/deleteProduct?productId=ID
func (ct *Controller) DeleteProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	productID := c.Query("productId")
	if productID == "" {
		return responses.Fail(c, "productId is required")
	}

	removed, err := ct.catalog.Delete(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
			return responses.Fail(c, "Product not found")
		}
		ct.logger.Error("deleteProduct failed", zap.Error(err))
		return responses.FailErr(c, err)
	}

	return responses.OK(c, fiber.Map{"removedProduct": removed})
}
