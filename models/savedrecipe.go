package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SavedRecipe struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"    json:"id"`
	Name      string             `bson:"name"             json:"name"`
	RecipeID  primitive.ObjectID `bson:"recipeId"         json:"recipeId"`
	UserID    primitive.ObjectID `bson:"userId"           json:"userId"`
	SavedDate time.Time          `bson:"savedDate"        json:"savedDate"`
	Recipe    *Recipe            `bson:"recipe,omitempty" json:"recipe,omitempty"`
}

func (s SavedRecipe) OwnerID() string {
	return s.UserID.Hex()
}
