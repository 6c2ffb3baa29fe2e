package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Alice-Yoon/Katachii-Back--sample/models"
	"github.com/Alice-Yoon/Katachii-Back--sample/store"
)

func checkoutFor(catalog *memCatalog, productIDs ...string) CheckoutRequest {
	req := CheckoutRequest{
		DeliveryInfo: models.DeliveryInfo{
			Recipient: "Jiyeon Kim",
			Address:   "12 Mapo-daero, Seoul",
			ZipCode:   "04100",
			Contact:   "010-1234-5678",
		},
		Depositor:    "Jiyeon Kim",
		NecklaceType: 1,
	}
	for _, id := range productIDs {
		p := catalog.products[id]
		req.Items = append(req.Items, CheckoutItem{
			ProductID: id,
			Name:      p.Title,
			Price:     p.Price,
			Quantity:  1,
		})
		req.TotalPrice += p.Price
	}
	return req
}

func TestPlaceOrderHappyPath(t *testing.T) {
	catalog := newMemCatalog()
	accounts := newMemAccounts()
	orders := newMemOrders()
	svc := NewSettlementService(catalog, accounts, orders, zap.NewNop())

	p1 := catalog.add("moon pendant", false)
	userID := accounts.add("jiyeon", p1)

	res, err := svc.PlaceOrder(context.Background(), userID, checkoutFor(catalog, p1))
	require.NoError(t, err)

	// order record persisted with initial status and a server-assigned
	// tracking number
	require.Len(t, orders.payments, 1)
	assert.Equal(t, models.StatusAwaitingDeposit, res.Payment.PaymentStatus)
	assert.False(t, res.Payment.DateOfPurchase.IsZero())
	_, err = uuid.Parse(res.Payment.ProductOrderID)
	assert.NoError(t, err, "tracking number must be a server-generated uuid")
	assert.Equal(t, models.MethodBankTransfer, res.Payment.Data[0].MethodName)

	// product flipped
	assert.True(t, catalog.products[p1].Sold)
	assert.Equal(t, int64(1), res.ProductsUpdated)

	// cart cleared, history mirrors the order
	assert.Empty(t, res.User.Cart)
	require.Len(t, res.User.History, 1)
	entry := res.User.History[0]
	assert.Equal(t, res.Payment.ID.Hex(), entry.OrderID)
	assert.Equal(t, res.Payment.PaymentStatus, entry.PaymentStatus)
	assert.Equal(t, res.Payment.TotalPrice, entry.TotalPrice)
	require.Len(t, entry.Products, 1)
	assert.Equal(t, p1, entry.Products[0].ProductID)
	assert.Equal(t, "moon pendant", entry.Products[0].Name)
}

func TestPlaceOrderConflictAbortsWithoutWrites(t *testing.T) {
	catalog := newMemCatalog()
	accounts := newMemAccounts()
	orders := newMemOrders()
	svc := NewSettlementService(catalog, accounts, orders, zap.NewNop())

	p1 := catalog.add("moon pendant", true)
	userID := accounts.add("jiyeon", p1)

	_, err := svc.PlaceOrder(context.Background(), userID, checkoutFor(catalog, p1))

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"moon pendant"}, conflict.Titles)
	assert.Contains(t, conflict.Error(), "moon pendant")

	// nothing was written
	assert.Empty(t, orders.payments)
	user, _ := accounts.FindByID(context.Background(), userID)
	assert.Len(t, user.Cart, 1)
	assert.Empty(t, user.History)
	assert.True(t, catalog.products[p1].Sold)
}

func TestPlaceOrderConflictNamesEverySoldItem(t *testing.T) {
	catalog := newMemCatalog()
	accounts := newMemAccounts()
	orders := newMemOrders()
	svc := NewSettlementService(catalog, accounts, orders, zap.NewNop())

	p1 := catalog.add("moon pendant", true)
	p2 := catalog.add("star ring", true)
	p3 := catalog.add("sun brooch", false)
	userID := accounts.add("jiyeon", p1, p2, p3)

	_, err := svc.PlaceOrder(context.Background(), userID, checkoutFor(catalog, p1, p2, p3))

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.ElementsMatch(t, []string{"moon pendant", "star ring"}, conflict.Titles)
}

// The availability re-check and the sold flip are separated by two writes,
// so a concurrent checkout can claim a product in between. The conditional
// flip must then fail this order instead of double-selling.
func TestPlaceOrderLosesRaceToConcurrentCheckout(t *testing.T) {
	catalog := newMemCatalog()
	accounts := newMemAccounts()
	orders := newMemOrders()
	svc := NewSettlementService(catalog, accounts, orders, zap.NewNop())

	p1 := catalog.add("moon pendant", false)
	firstUser := accounts.add("jiyeon", p1)
	secondUser := accounts.add("minji", p1)

	// first checkout settles normally
	_, err := svc.PlaceOrder(context.Background(), firstUser, checkoutFor(catalog, p1))
	require.NoError(t, err)

	// the second checkout re-checks against a stale read that predates the
	// first flip
	catalog.staleReads = true
	_, err = svc.PlaceOrder(context.Background(), secondUser, checkoutFor(catalog, p1))

	var partial *PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, StepProductUpdate, partial.Step)
	assert.ErrorIs(t, err, ErrAlreadySold)

	// exactly one checkout flipped the product
	assert.True(t, catalog.products[p1].Sold)
}

func TestPlaceOrderInsertFailureStopsBeforeAccountWrite(t *testing.T) {
	catalog := newMemCatalog()
	accounts := newMemAccounts()
	orders := newMemOrders()
	orders.insertErr = errors.New("connection reset")
	svc := NewSettlementService(catalog, accounts, orders, zap.NewNop())

	p1 := catalog.add("moon pendant", false)
	userID := accounts.add("jiyeon", p1)

	_, err := svc.PlaceOrder(context.Background(), userID, checkoutFor(catalog, p1))
	require.Error(t, err)

	var partial *PartialFailureError
	assert.False(t, errors.As(err, &partial), "insert failure is not a partial failure")

	user, _ := accounts.FindByID(context.Background(), userID)
	assert.Empty(t, user.History)
	assert.Len(t, user.Cart, 1)
	assert.False(t, catalog.products[p1].Sold)
}

func TestPlaceOrderAccountUpdateFailureIsPartial(t *testing.T) {
	catalog := newMemCatalog()
	accounts := newMemAccounts()
	orders := newMemOrders()
	accounts.appendErr = errors.New("connection reset")
	svc := NewSettlementService(catalog, accounts, orders, zap.NewNop())

	p1 := catalog.add("moon pendant", false)
	userID := accounts.add("jiyeon", p1)

	_, err := svc.PlaceOrder(context.Background(), userID, checkoutFor(catalog, p1))

	var partial *PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, StepAccountUpdate, partial.Step)

	// the order record survives: prior effects are reported, not rolled back
	assert.Len(t, orders.payments, 1)
	// the flip never ran
	assert.False(t, catalog.products[p1].Sold)
}

func TestPlaceOrderUnknownUser(t *testing.T) {
	catalog := newMemCatalog()
	accounts := newMemAccounts()
	orders := newMemOrders()
	svc := NewSettlementService(catalog, accounts, orders, zap.NewNop())

	p1 := catalog.add("moon pendant", false)

	_, err := svc.PlaceOrder(context.Background(), "000000000000000000000000", checkoutFor(catalog, p1))
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, orders.payments)
}
