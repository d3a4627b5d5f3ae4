package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Ingredient struct {
	Name     string  `bson:"name"     json:"name"`
	Quantity float64 `bson:"quantity" json:"quantity"`
	Category string  `bson:"category" json:"category"`
	Unit     string  `bson:"unit"     json:"unit"`
}

type Recipe struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"         json:"id"`
	Name        string             `bson:"name"                  json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Instruction string             `bson:"instruction,omitempty" json:"instruction,omitempty"`
	ImageURL    string             `bson:"imageURL,omitempty"    json:"imageURL,omitempty"`
	VideoURL    string             `bson:"videoURL,omitempty"    json:"videoURL,omitempty"`
	Cuisine     string             `bson:"cuisine,omitempty"     json:"cuisine,omitempty"`
	Category    string             `bson:"category"              json:"category"`
	Ingredients []Ingredient       `bson:"ingredients"           json:"ingredients"`
	CreatedAt   time.Time          `bson:"createdAt"             json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"             json:"updatedAt"`
}
