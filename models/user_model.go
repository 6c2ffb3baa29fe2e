package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Regular users carry role 0; any other value marks an admin.
const RoleUser = 0

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name" validate:"required,max=50"`
	Lastname string             `bson:"lastname,omitempty" json:"lastname,omitempty"`
	Email    string             `bson:"email" json:"email" validate:"required,email"`
	Contact  string             `bson:"contact,omitempty" json:"contact,omitempty"`
	Role     int                `bson:"role" json:"role"`
	Image    string             `bson:"image,omitempty" json:"image,omitempty"`
	Cart     []CartItem         `bson:"cart" json:"cart"`
	History  []HistoryEntry     `bson:"history" json:"history"`
}

// CartItem is a reference to a product pending checkout. The cart holds at
// most MaxCartItems entries; entries are removed when an order is placed for
// them, or lazily when the referenced product no longer exists.
type CartItem struct {
	ProductID string    `bson:"productId" json:"productId"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	AddedAt   time.Time `bson:"addedAt" json:"addedAt"`
}

// MaxCartItems bounds the number of products a user can stage for checkout.
const MaxCartItems = 5

// HistoryEntry is the denormalized projection of a settled order kept on the
// user document for read locality. PaymentStatus and DeliveryNumber are
// caches of the order record and are kept in sync by the lifecycle writes;
// every other field is immutable once appended.
type HistoryEntry struct {
	OrderID        string           `bson:"orderId" json:"orderId"`
	Products       []HistoryProduct `bson:"products" json:"products"`
	TotalPrice     int              `bson:"totalPrice" json:"totalPrice"`
	PaymentStatus  PaymentStatus    `bson:"paymentStatus" json:"paymentStatus"`
	DateOfPurchase time.Time        `bson:"dateOfPurchase" json:"dateOfPurchase"`
	PaymentMethod  string           `bson:"paymentMethod" json:"paymentMethod"`
	DeliveryInfo   DeliveryInfo     `bson:"deliveryInfo" json:"deliveryInfo"`
	NecklaceType   int              `bson:"necklaceType" json:"necklaceType"`
	IsDeliveryFar  bool             `bson:"isDeliveryFar" json:"isDeliveryFar"`
	Depositor      string           `bson:"depositor" json:"depositor"`
	DeliveryNumber string           `bson:"deliveryNumber,omitempty" json:"deliveryNumber,omitempty"`
}

type HistoryProduct struct {
	ProductID      string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Price          int       `bson:"price" json:"price"`
	Quantity       int       `bson:"quantity" json:"quantity"`
	DateOfPurchase time.Time `bson:"dateOfPurchase" json:"dateOfPurchase"`
	OrderID        string    `bson:"order_id" json:"order_id"`
}
