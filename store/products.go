package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Alice-Yoon/Katachii-Back--sample/models"
)

// ProductStore persists catalog items in the products collection.
type ProductStore struct {
	coll *mongo.Collection
}

func NewProductStore(coll *mongo.Collection) *ProductStore {
	return &ProductStore{coll: coll}
}

func (s *ProductStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var product models.Product
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &product, nil
}

// FindByIDs returns the products matching the given ids. Ids that resolve to
// no document are silently absent from the result; the caller decides what a
// missing product means.
func (s *ProductStore) FindByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	oids, err := objectIDs(ids)
	if err != nil {
		return nil, err
	}

	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (s *ProductStore) Insert(ctx context.Context, product models.Product) (*models.Product, error) {
	now := time.Now()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, product); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &product, nil
}

// MarkSold conditionally flips sold=false to sold=true on the given products
// and reports how many documents matched. A matched count lower than
// len(ids) means another checkout already claimed some of the products; the
// caller must treat the order as failed.
func (s *ProductStore) MarkSold(ctx context.Context, ids []string) (int64, error) {
	oids, err := objectIDs(ids)
	if err != nil {
		return 0, err
	}

	res, err := s.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": oids}, "sold": false},
		bson.M{"$set": bson.M{"sold": true, "updatedAt": time.Now()}},
	)
	if err != nil {
		return 0, fmt.Errorf("mark products sold: %w", err)
	}
	return res.MatchedCount, nil
}

// MarkUnsold puts the given products back on sale. Unlike MarkSold this is
// unconditional, so cancelling an already-cancelled order is a no-op rather
// than an error.
func (s *ProductStore) MarkUnsold(ctx context.Context, ids []string) (int64, error) {
	oids, err := objectIDs(ids)
	if err != nil {
		return 0, err
	}

	res, err := s.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": oids}},
		bson.M{"$set": bson.M{"sold": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		return 0, fmt.Errorf("mark products unsold: %w", err)
	}
	return res.MatchedCount, nil
}

func (s *ProductStore) Delete(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var product models.Product
	err = s.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete product: %w", err)
	}
	return &product, nil
}

func objectIDs(ids []string) ([]primitive.ObjectID, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, ErrInvalidID
		}
		oids = append(oids, oid)
	}
	return oids, nil
}
