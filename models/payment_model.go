package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus is the authoritative lifecycle state of an order. The copy
// on the user's history entry is a cache of this value.
type PaymentStatus string

const (
	// StatusAwaitingDeposit is the initial state: the order is saved and the
	// shop is waiting for the bank transfer to arrive.
	StatusAwaitingDeposit PaymentStatus = "awaiting deposit"
	// StatusPaid means an admin confirmed the deposit.
	StatusPaid PaymentStatus = "paid"
	// StatusCancelledUnpaid means the order was cancelled before payment and
	// its products were put back on sale. Delivery completion is not a
	// status; it is tracked through DeliveryNumber.
	StatusCancelledUnpaid PaymentStatus = "cancelled_unpaid"
)

// MethodBankTransfer is the only payment method the shop accepts.
const MethodBankTransfer = "bank transfer"

// Payment is the system of record for a settled order.
type Payment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User           PaymentUser        `bson:"user" json:"user"`
	Data           []PaymentMethod    `bson:"data" json:"data"`
	Products       []OrderedItem      `bson:"products" json:"products"`
	TotalPrice     int                `bson:"totalPrice" json:"totalPrice"`
	DateOfPurchase time.Time          `bson:"dateOfPurchase" json:"dateOfPurchase"`
	DeliveryNumber string             `bson:"deliveryNumber" json:"deliveryNumber"`
	ProductOrderID string             `bson:"productOrderId" json:"productOrderId"`
	PaymentStatus  PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	DeliveryInfo   DeliveryInfo       `bson:"deliveryInfo" json:"deliveryInfo"`
	Depositor      string             `bson:"depositor" json:"depositor"`
	IsDeliveryFar  bool               `bson:"isDeliveryFar" json:"isDeliveryFar"`
	NecklaceType   int                `bson:"necklaceType" json:"necklaceType"`
	CreatedAt      time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt      time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// PaymentUser is the snapshot of the buyer taken at checkout time.
type PaymentUser struct {
	ID      string `bson:"id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Contact string `bson:"contact" json:"contact"`
}

type PaymentMethod struct {
	MethodName string `bson:"method_name" json:"method_name"`
}

// OrderedItem is one product line of an order.
type OrderedItem struct {
	ProductID string `bson:"unique" json:"unique"`
	Name      string `bson:"item_name" json:"item_name"`
	Price     int    `bson:"price" json:"price"`
	Quantity  int    `bson:"qty" json:"qty"`
}

// DeliveryInfo is the shipping destination supplied with the checkout.
type DeliveryInfo struct {
	Recipient string `bson:"recipient" json:"recipient"`
	Address   string `bson:"address" json:"address"`
	ZipCode   string `bson:"zipCode" json:"zipCode"`
	Contact   string `bson:"contact" json:"contact"`
	Message   string `bson:"message,omitempty" json:"message,omitempty"`
}
