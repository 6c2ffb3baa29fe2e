// Package services implements the business workflows of the shop: the
// settlement of a checkout into an order, the admin-driven order lifecycle,
// and account/cart upkeep. Workflows compose single-document store writes in
// a fixed order; a failure mid-sequence is reported, never compensated.
package services

import (
	"context"

	"github.com/Alice-Yoon/Katachii-Back--sample/models"
	"github.com/Alice-Yoon/Katachii-Back--sample/store"
)

// CatalogStore is the product persistence contract the workflows depend on.
type CatalogStore interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	Insert(ctx context.Context, product models.Product) (*models.Product, error)
	MarkSold(ctx context.Context, ids []string) (int64, error)
	MarkUnsold(ctx context.Context, ids []string) (int64, error)
	Delete(ctx context.Context, id string) (*models.Product, error)
}

// AccountStore is the user persistence contract the workflows depend on.
type AccountStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	AppendHistoryAndClearCart(ctx context.Context, userID string, entry models.HistoryEntry, productIDs []string) (*models.User, error)
	UpdateHistoryEntry(ctx context.Context, userID, orderID string, patch store.HistoryPatch) (*models.User, error)
	PushCartItem(ctx context.Context, userID string, item models.CartItem) (*models.User, error)
	PullCartItems(ctx context.Context, userID string, productIDs []string) (*models.User, error)
}

// OrderStore is the payment-record persistence contract the workflows depend
// on.
type OrderStore interface {
	Insert(ctx context.Context, payment models.Payment) (*models.Payment, error)
	FindByID(ctx context.Context, id string) (*models.Payment, error)
	FindPage(ctx context.Context, page int64) ([]models.Payment, int64, error)
	UpdateByID(ctx context.Context, id string, patch store.PaymentPatch) (*models.Payment, error)
	Delete(ctx context.Context, id string) (bool, error)
}
