package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Alice-Yoon/Katachii-Back--sample/models"
)

// OrdersPageSize is the fixed page size of the admin order scan.
const OrdersPageSize = 2

// TotalPages returns how many fixed-size pages are needed for count orders.
func TotalPages(count int64) int64 {
	return (count + OrdersPageSize - 1) / OrdersPageSize
}

// PaymentStore persists order records in the payments collection. This is
// the system of record for settlement state.
type PaymentStore struct {
	coll *mongo.Collection
}

func NewPaymentStore(coll *mongo.Collection) *PaymentStore {
	return &PaymentStore{coll: coll}
}

// PaymentPatch names the order fields the lifecycle manager may change.
// Nil fields are left untouched.
type PaymentPatch struct {
	PaymentStatus  *models.PaymentStatus
	DeliveryNumber *string
}

// Insert persists the payment and returns it with its generated identity.
func (s *PaymentStore) Insert(ctx context.Context, payment models.Payment) (*models.Payment, error) {
	now := time.Now()
	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, payment); err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return &payment, nil
}

func (s *PaymentStore) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var payment models.Payment
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&payment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return &payment, nil
}

// FindPage returns one fixed-size page of orders, newest first by creation
// time, along with the total page count.
func (s *PaymentStore) FindPage(ctx context.Context, page int64) ([]models.Payment, int64, error) {
	if page < 1 {
		page = 1
	}

	count, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}
	totalPages := TotalPages(count)

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(OrdersPageSize).
		SetSkip(OrdersPageSize * (page - 1))

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find payments: %w", err)
	}

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, 0, fmt.Errorf("decode payments: %w", err)
	}
	return payments, totalPages, nil
}

// UpdateByID applies the patch and returns the post-update payment.
func (s *PaymentStore) UpdateByID(ctx context.Context, id string, patch PaymentPatch) (*models.Payment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{"updatedAt": time.Now()}
	if patch.PaymentStatus != nil {
		set["paymentStatus"] = *patch.PaymentStatus
	}
	if patch.DeliveryNumber != nil {
		set["deliveryNumber"] = *patch.DeliveryNumber
	}

	var payment models.Payment
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update payment: %w", err)
	}
	return &payment, nil
}

// Delete hard-deletes the order record and reports whether a document was
// removed. It deliberately leaves the user's mirrored history entry and the
// product flags alone.
func (s *PaymentStore) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrInvalidID
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete payment: %w", err)
	}
	return res.DeletedCount > 0, nil
}
