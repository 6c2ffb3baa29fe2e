package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Alice-Yoon/Katachii-Back--sample/models"
)

// CheckoutItem is one product line of a checkout request.
type CheckoutItem struct {
	ProductID string `json:"unique"`
	Name      string `json:"item_name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"qty"`
}

// CheckoutRequest carries everything the client supplies with a bank-deposit
// checkout.
type CheckoutRequest struct {
	Items         []CheckoutItem      `json:"items"`
	TotalPrice    int                 `json:"totalPrice"`
	DeliveryInfo  models.DeliveryInfo `json:"deliveryInfo"`
	Depositor     string              `json:"depositor"`
	IsDeliveryFar bool                `json:"isDeliveryFar"`
	NecklaceType  int                 `json:"necklaceType"`
}

// CheckoutResult bundles the three documents a settled checkout touched.
type CheckoutResult struct {
	Payment         *models.Payment
	User            *models.User
	ProductsUpdated int64
}

// SettlementService converts a checkout request into a persisted order and
// consistent side effects across the three stores.
type SettlementService struct {
	catalog  CatalogStore
	accounts AccountStore
	orders   OrderStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewSettlementService(catalog CatalogStore, accounts AccountStore, orders OrderStore, logger *zap.Logger) *SettlementService {
	return &SettlementService{
		catalog:  catalog,
		accounts: accounts,
		orders:   orders,
		logger:   logger,
		now:      time.Now,
	}
}

// PlaceOrder settles a checkout. The side effects are strictly ordered:
// order insert happens-before the account update happens-before the product
// flip, so a failure at any step leaves exactly the earlier effects in
// place. The availability re-check aborts before any write; after the order
// is persisted, failures surface as PartialFailureError and nothing is
// rolled back.
func (s *SettlementService) PlaceOrder(ctx context.Context, userID string, req CheckoutRequest) (*CheckoutResult, error) {
	user, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	payment := s.buildPayment(user, req)

	productIDs := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	// Availability re-check. Cart membership was validated at add time, but
	// another buyer may have settled first; this is the last point where the
	// whole order can abort without side effects.
	products, err := s.catalog.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	var soldTitles []string
	for _, p := range products {
		if p.Sold {
			soldTitles = append(soldTitles, p.Title)
		}
	}
	if len(soldTitles) > 0 {
		return nil, &ConflictError{Titles: soldTitles}
	}

	saved, err := s.orders.Insert(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("save new payment: %w", err)
	}

	entry, removeIDs := historyFrom(saved)

	updatedUser, err := s.accounts.AppendHistoryAndClearCart(ctx, userID, entry, removeIDs)
	if err != nil {
		s.logger.Error("order saved but user history update failed",
			zap.String("orderId", saved.ID.Hex()),
			zap.String("userId", userID),
			zap.Error(err))
		return nil, &PartialFailureError{Step: StepAccountUpdate, Err: err}
	}

	// Conditional flip: only products still unsold match. If another
	// checkout claimed one of them between the re-check and here, the
	// matched count comes up short and the order is reported failed.
	matched, err := s.catalog.MarkSold(ctx, removeIDs)
	if err != nil {
		s.logger.Error("order saved but product update failed",
			zap.String("orderId", saved.ID.Hex()),
			zap.Error(err))
		return nil, &PartialFailureError{Step: StepProductUpdate, Err: err}
	}
	if matched != int64(len(removeIDs)) {
		s.logger.Warn("checkout lost availability race",
			zap.String("orderId", saved.ID.Hex()),
			zap.Int64("matched", matched),
			zap.Int("expected", len(removeIDs)))
		return nil, &PartialFailureError{
			Step: StepProductUpdate,
			Err:  fmt.Errorf("%w: %d of %d updated", ErrAlreadySold, matched, len(removeIDs)),
		}
	}

	return &CheckoutResult{
		Payment:         saved,
		User:            updatedUser,
		ProductsUpdated: matched,
	}, nil
}

// buildPayment is the pure transformation from the buyer and the checkout
// payload to an unsaved order record. The tracking number is always
// server-assigned.
func (s *SettlementService) buildPayment(user *models.User, req CheckoutRequest) models.Payment {
	items := make([]models.OrderedItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderedItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return models.Payment{
		User: models.PaymentUser{
			ID:      user.ID.Hex(),
			Name:    user.Name,
			Email:   user.Email,
			Contact: user.Contact,
		},
		Data:           []models.PaymentMethod{{MethodName: models.MethodBankTransfer}},
		Products:       items,
		TotalPrice:     req.TotalPrice,
		DateOfPurchase: s.now(),
		ProductOrderID: uuid.NewString(),
		PaymentStatus:  models.StatusAwaitingDeposit,
		DeliveryInfo:   req.DeliveryInfo,
		Depositor:      req.Depositor,
		IsDeliveryFar:  req.IsDeliveryFar,
		NecklaceType:   req.NecklaceType,
	}
}

// historyFrom derives the history mirror entry and the product ids to clear
// from the cart out of the persisted order. Pure.
func historyFrom(payment *models.Payment) (models.HistoryEntry, []string) {
	orderID := payment.ID.Hex()

	products := make([]models.HistoryProduct, 0, len(payment.Products))
	removeIDs := make([]string, 0, len(payment.Products))
	for _, item := range payment.Products {
		products = append(products, models.HistoryProduct{
			ProductID:      item.ProductID,
			Name:           item.Name,
			Price:          item.Price,
			Quantity:       item.Quantity,
			DateOfPurchase: payment.DateOfPurchase,
			OrderID:        orderID,
		})
		removeIDs = append(removeIDs, item.ProductID)
	}

	entry := models.HistoryEntry{
		OrderID:        orderID,
		Products:       products,
		TotalPrice:     payment.TotalPrice,
		PaymentStatus:  payment.PaymentStatus,
		DateOfPurchase: payment.DateOfPurchase,
		PaymentMethod:  payment.Data[0].MethodName,
		DeliveryInfo:   payment.DeliveryInfo,
		NecklaceType:   payment.NecklaceType,
		IsDeliveryFar:  payment.IsDeliveryFar,
		Depositor:      payment.Depositor,
	}

	return entry, removeIDs
}
