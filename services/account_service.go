package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Alice-Yoon/Katachii-Back--sample/models"
)

// AccountService covers the user-facing account reads and cart upkeep around
// the settlement workflow.
type AccountService struct {
	catalog  CatalogStore
	accounts AccountStore
	logger   *zap.Logger
}

func NewAccountService(catalog CatalogStore, accounts AccountStore, logger *zap.Logger) *AccountService {
	return &AccountService{
		catalog:  catalog,
		accounts: accounts,
		logger:   logger,
	}
}

// Info returns the user document.
func (s *AccountService) Info(ctx context.Context, userID string) (*models.User, error) {
	return s.accounts.FindByID(ctx, userID)
}

// History returns the user's mirrored order history.
func (s *AccountService) History(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	user, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.History, nil
}

// CartItems resolves the cart references to product documents. References to
// products that no longer exist are lazily pruned from the cart while here.
func (s *AccountService) CartItems(ctx context.Context, userID string) ([]models.Product, error) {
	user, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(user.Cart) == 0 {
		return []models.Product{}, nil
	}

	cartIDs := make([]string, 0, len(user.Cart))
	for _, item := range user.Cart {
		cartIDs = append(cartIDs, item.ProductID)
	}

	products, err := s.catalog.FindByIDs(ctx, cartIDs)
	if err != nil {
		return nil, fmt.Errorf("load cart products: %w", err)
	}

	existing := make(map[string]bool, len(products))
	for _, p := range products {
		existing[p.ID.Hex()] = true
	}

	var dangling []string
	for _, id := range cartIDs {
		if !existing[id] {
			dangling = append(dangling, id)
		}
	}

	if len(dangling) > 0 {
		if _, err := s.accounts.PullCartItems(ctx, userID, dangling); err != nil {
			s.logger.Warn("failed to prune dangling cart items",
				zap.String("userId", userID),
				zap.Error(err))
		}
	}

	return products, nil
}

// AddToCart stages a product for checkout. The cart is bounded and holds
// each product at most once.
func (s *AccountService) AddToCart(ctx context.Context, userID, productID string) (*models.User, error) {
	user, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(user.Cart) >= models.MaxCartItems {
		return nil, ErrCartFull
	}
	for _, item := range user.Cart {
		if item.ProductID == productID {
			return nil, ErrAlreadyInCart
		}
	}

	return s.accounts.PushCartItem(ctx, userID, models.CartItem{
		ProductID: productID,
		Quantity:  1,
		AddedAt:   time.Now(),
	})
}

// RemoveCartItem drops one product reference from the cart.
func (s *AccountService) RemoveCartItem(ctx context.Context, userID, productID string) (*models.User, error) {
	return s.accounts.PullCartItems(ctx, userID, []string{productID})
}

// ProductsByIDs returns the product documents for the given ids; used by the
// checkout page to display the items being purchased.
func (s *AccountService) ProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	return s.catalog.FindByIDs(ctx, ids)
}
