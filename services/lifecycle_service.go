package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Alice-Yoon/Katachii-Back--sample/models"
	"github.com/Alice-Yoon/Katachii-Back--sample/store"
)

// TransitionResult bundles the documents a lifecycle transition touched.
type TransitionResult struct {
	Payment         *models.Payment
	User            *models.User
	ProductsUpdated int64
}

// LifecycleService drives admin transitions on existing orders. Every
// transition writes the order record first and the user's mirrored history
// entry second; Cancel additionally restores product availability third.
// When a later write fails the stores disagree until an admin re-runs the
// transition. Failures are reported, never retried or rolled back.
type LifecycleService struct {
	catalog  CatalogStore
	accounts AccountStore
	orders   OrderStore
	logger   *zap.Logger
}

func NewLifecycleService(catalog CatalogStore, accounts AccountStore, orders OrderStore, logger *zap.Logger) *LifecycleService {
	return &LifecycleService{
		catalog:  catalog,
		accounts: accounts,
		orders:   orders,
		logger:   logger,
	}
}

// MarkPaid records a confirmed bank deposit on the order and its mirror.
func (s *LifecycleService) MarkPaid(ctx context.Context, orderID, userID string) (*TransitionResult, error) {
	status := models.StatusPaid
	return s.transition(ctx, orderID, userID,
		store.PaymentPatch{PaymentStatus: &status},
		store.HistoryPatch{PaymentStatus: &status},
	)
}

// AttachTracking records the parcel tracking number on the order and its
// mirror. The payment status is left untouched.
func (s *LifecycleService) AttachTracking(ctx context.Context, orderID, userID, deliveryNumber string) (*TransitionResult, error) {
	return s.transition(ctx, orderID, userID,
		store.PaymentPatch{DeliveryNumber: &deliveryNumber},
		store.HistoryPatch{DeliveryNumber: &deliveryNumber},
	)
}

// Cancel marks an unpaid order cancelled, mirrors the status, and puts the
// listed products back on sale. The order record itself is kept: this is a
// status change, not a deletion. Cancelling an already-cancelled order is
// idempotent.
func (s *LifecycleService) Cancel(ctx context.Context, orderID, userID string, productIDs []string) (*TransitionResult, error) {
	status := models.StatusCancelledUnpaid

	res, err := s.transition(ctx, orderID, userID,
		store.PaymentPatch{PaymentStatus: &status},
		store.HistoryPatch{PaymentStatus: &status},
	)
	if err != nil {
		return nil, err
	}

	matched, err := s.catalog.MarkUnsold(ctx, productIDs)
	if err != nil {
		s.logger.Error("order cancelled but product restore failed",
			zap.String("orderId", orderID),
			zap.Error(err))
		return nil, &PartialFailureError{Step: StepProductUpdate, Err: err}
	}

	res.ProductsUpdated = matched
	return res, nil
}

// DeleteOrderRecord hard-deletes the order record only. The user's mirrored
// history entry and the product flags are left alone and go stale.
func (s *LifecycleService) DeleteOrderRecord(ctx context.Context, orderID string) error {
	deleted, err := s.orders.Delete(ctx, orderID)
	if err != nil {
		return fmt.Errorf("remove order record: %w", err)
	}
	if !deleted {
		return store.ErrNotFound
	}
	return nil
}

// ManageOrders returns one fixed-size page of orders, newest first, with the
// total page count.
func (s *LifecycleService) ManageOrders(ctx context.Context, page int64) ([]models.Payment, int64, error) {
	return s.orders.FindPage(ctx, page)
}

// transition applies the two ordered writes shared by every status
// transition: order record first, mirrored history entry second. A missing
// history entry is a failure even though the order-side write already
// succeeded.
func (s *LifecycleService) transition(ctx context.Context, orderID, userID string, paymentPatch store.PaymentPatch, historyPatch store.HistoryPatch) (*TransitionResult, error) {
	payment, err := s.orders.UpdateByID(ctx, orderID, paymentPatch)
	if err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	user, err := s.accounts.UpdateHistoryEntry(ctx, userID, orderID, historyPatch)
	if err != nil {
		s.logger.Error("order updated but user history update failed",
			zap.String("orderId", orderID),
			zap.String("userId", userID),
			zap.Error(err))
		return nil, &PartialFailureError{Step: StepAccountUpdate, Err: err}
	}

	return &TransitionResult{Payment: payment, User: user}, nil
}
