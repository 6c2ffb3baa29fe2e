package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog item. Every piece is one-of-a-kind, so availability
// is a single boolean rather than a stock count: Sold flips to true when an
// order settles and back to false only when that order is cancelled.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Writer      primitive.ObjectID `bson:"writer,omitempty" json:"writer,omitempty"`
	Title       string             `bson:"title" json:"title" validate:"required,max=50"`
	Description string             `bson:"description" json:"description"`
	Price       int                `bson:"price" json:"price" validate:"gte=0"`
	Images      []string           `bson:"images" json:"images"`
	Category    int                `bson:"categories" json:"categories"`
	Sold        bool               `bson:"sold" json:"sold"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
