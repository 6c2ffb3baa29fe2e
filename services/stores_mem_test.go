package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Alice-Yoon/Katachii-Back--sample/models"
	"github.com/Alice-Yoon/Katachii-Back--sample/store"
)

// In-memory store fakes. They honor the same contracts as the mongo-backed
// stores: single-document atomicity, conditional MarkSold, positional
// history updates, newest-first fixed-size paging.

type memCatalog struct {
	products map[string]*models.Product

	// staleReads makes FindByIDs report every product as unsold, simulating
	// the window between another checkout's sold flip and this one's
	// availability re-check.
	staleReads bool

	findErr     error
	markSoldErr error
}

func newMemCatalog() *memCatalog {
	return &memCatalog{products: map[string]*models.Product{}}
}

func (m *memCatalog) add(title string, sold bool) string {
	p := &models.Product{
		ID:    primitive.NewObjectID(),
		Title: title,
		Price: 10000,
		Sold:  sold,
	}
	m.products[p.ID.Hex()] = p
	return p.ID.Hex()
}

func (m *memCatalog) FindByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memCatalog) FindByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []models.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			cp := *p
			if m.staleReads {
				cp.Sold = false
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

func (m *memCatalog) Insert(ctx context.Context, product models.Product) (*models.Product, error) {
	product.ID = primitive.NewObjectID()
	m.products[product.ID.Hex()] = &product
	cp := product
	return &cp, nil
}

func (m *memCatalog) MarkSold(ctx context.Context, ids []string) (int64, error) {
	if m.markSoldErr != nil {
		return 0, m.markSoldErr
	}
	var matched int64
	for _, id := range ids {
		if p, ok := m.products[id]; ok && !p.Sold {
			p.Sold = true
			matched++
		}
	}
	return matched, nil
}

func (m *memCatalog) MarkUnsold(ctx context.Context, ids []string) (int64, error) {
	var matched int64
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			p.Sold = false
			matched++
		}
	}
	return matched, nil
}

func (m *memCatalog) Delete(ctx context.Context, id string) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(m.products, id)
	return p, nil
}

type memAccounts struct {
	users map[string]*models.User

	appendErr error
	updateErr error
}

func newMemAccounts() *memAccounts {
	return &memAccounts{users: map[string]*models.User{}}
}

func (m *memAccounts) add(name string, cartProductIDs ...string) string {
	u := &models.User{
		ID:      primitive.NewObjectID(),
		Name:    name,
		Email:   name + "@example.com",
		Contact: "010-0000-0000",
	}
	for _, id := range cartProductIDs {
		u.Cart = append(u.Cart, models.CartItem{ProductID: id, Quantity: 1, AddedAt: time.Now()})
	}
	m.users[u.ID.Hex()] = u
	return u.ID.Hex()
}

func (m *memAccounts) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memAccounts) AppendHistoryAndClearCart(ctx context.Context, userID string, entry models.HistoryEntry, productIDs []string) (*models.User, error) {
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, store.ErrNotFound
	}

	u.History = append(u.History, entry)

	remove := map[string]bool{}
	for _, id := range productIDs {
		remove[id] = true
	}
	var kept []models.CartItem
	for _, item := range u.Cart {
		if !remove[item.ProductID] {
			kept = append(kept, item)
		}
	}
	u.Cart = kept

	cp := *u
	return &cp, nil
}

func (m *memAccounts) UpdateHistoryEntry(ctx context.Context, userID, orderID string, patch store.HistoryPatch) (*models.User, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, store.ErrNotFound
	}

	for i := range u.History {
		if u.History[i].OrderID != orderID {
			continue
		}
		if patch.PaymentStatus != nil {
			u.History[i].PaymentStatus = *patch.PaymentStatus
		}
		if patch.DeliveryNumber != nil {
			u.History[i].DeliveryNumber = *patch.DeliveryNumber
		}
		cp := *u
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (m *memAccounts) PushCartItem(ctx context.Context, userID string, item models.CartItem) (*models.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	u.Cart = append(u.Cart, item)
	cp := *u
	return &cp, nil
}

func (m *memAccounts) PullCartItems(ctx context.Context, userID string, productIDs []string) (*models.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	remove := map[string]bool{}
	for _, id := range productIDs {
		remove[id] = true
	}
	var kept []models.CartItem
	for _, item := range u.Cart {
		if !remove[item.ProductID] {
			kept = append(kept, item)
		}
	}
	u.Cart = kept
	cp := *u
	return &cp, nil
}

type memOrders struct {
	payments map[string]*models.Payment
	inserted []string // insertion order, oldest first

	insertErr error
	updateErr error
}

func newMemOrders() *memOrders {
	return &memOrders{payments: map[string]*models.Payment{}}
}

func (m *memOrders) Insert(ctx context.Context, payment models.Payment) (*models.Payment, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = payment.CreatedAt
	m.payments[payment.ID.Hex()] = &payment
	m.inserted = append(m.inserted, payment.ID.Hex())
	cp := payment
	return &cp, nil
}

func (m *memOrders) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memOrders) FindPage(ctx context.Context, page int64) ([]models.Payment, int64, error) {
	if page < 1 {
		page = 1
	}

	// newest first
	var all []models.Payment
	for i := len(m.inserted) - 1; i >= 0; i-- {
		if p, ok := m.payments[m.inserted[i]]; ok {
			all = append(all, *p)
		}
	}

	totalPages := store.TotalPages(int64(len(all)))

	start := store.OrdersPageSize * (page - 1)
	if start >= int64(len(all)) {
		return nil, totalPages, nil
	}
	end := start + store.OrdersPageSize
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[start:end], totalPages, nil
}

func (m *memOrders) UpdateByID(ctx context.Context, id string, patch store.PaymentPatch) (*models.Payment, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	p, ok := m.payments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if patch.PaymentStatus != nil {
		p.PaymentStatus = *patch.PaymentStatus
	}
	if patch.DeliveryNumber != nil {
		p.DeliveryNumber = *patch.DeliveryNumber
	}
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (m *memOrders) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.payments[id]; !ok {
		return false, nil
	}
	delete(m.payments, id)
	for i, v := range m.inserted {
		if v == id {
			m.inserted = append(m.inserted[:i], m.inserted[i+1:]...)
			break
		}
	}
	return true, nil
}
