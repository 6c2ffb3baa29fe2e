package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Alice-Yoon/Katachii-Back--sample/models"
)

// UserStore persists accounts in the users collection. The embedded cart and
// history live on the user document, so every mutation here is a single
// atomic document update.
type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(coll *mongo.Collection) *UserStore {
	return &UserStore{coll: coll}
}

// HistoryPatch names the only two history fields that may change after an
// entry is appended. Nil fields are left untouched.
type HistoryPatch struct {
	PaymentStatus  *models.PaymentStatus
	DeliveryNumber *string
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var user models.User
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// AppendHistoryAndClearCart appends the history entry and removes the
// checked-out products from the cart in one document update, so the mirror
// and the cart can never disagree with each other. Returns the post-update
// user.
func (s *UserStore) AppendHistoryAndClearCart(ctx context.Context, userID string, entry models.HistoryEntry, productIDs []string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	update := bson.M{
		"$push": bson.M{"history": entry},
		"$pull": bson.M{"cart": bson.M{"productId": bson.M{"$in": productIDs}}},
	}

	var user models.User
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("append history: %w", err)
	}
	return &user, nil
}

// UpdateHistoryEntry patches the single history entry matching orderID via
// the positional operator. ErrNotFound is returned when the user has no
// matching entry, which callers must surface even if the order-side write
// already succeeded.
func (s *UserStore) UpdateHistoryEntry(ctx context.Context, userID, orderID string, patch HistoryPatch) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{}
	if patch.PaymentStatus != nil {
		set["history.$.paymentStatus"] = *patch.PaymentStatus
	}
	if patch.DeliveryNumber != nil {
		set["history.$.deliveryNumber"] = *patch.DeliveryNumber
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("update history entry: empty patch")
	}

	filter := bson.M{"_id": oid, "history.orderId": orderID}

	var user models.User
	err = s.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update history entry: %w", err)
	}
	return &user, nil
}

// PushCartItem appends a cart entry and returns the post-update user. The
// max-size and duplicate rules are enforced by the account service, not here.
func (s *UserStore) PushCartItem(ctx context.Context, userID string, item models.CartItem) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	var user models.User
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"cart": item}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("push cart item: %w", err)
	}
	return &user, nil
}

// PullCartItems removes the cart entries referencing any of the given
// products and returns the post-update user.
func (s *UserStore) PullCartItems(ctx context.Context, userID string, productIDs []string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	var user models.User
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"cart": bson.M{"productId": bson.M{"$in": productIDs}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("pull cart items: %w", err)
	}
	return &user, nil
}
