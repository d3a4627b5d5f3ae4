package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is a per-user inventory record. The same shape backs both the kitchen
// and the shopping list collections.
type Item struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name"          json:"name"`
	Quantity  float64            `bson:"quantity"      json:"quantity"`
	Category  string             `bson:"category"      json:"category"`
	Unit      string             `bson:"unit"          json:"unit"`
	UserID    primitive.ObjectID `bson:"userId"        json:"userId"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"     json:"updatedAt"`
}

func (i Item) OwnerID() string {
	return i.UserID.Hex()
}
