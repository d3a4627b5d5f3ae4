// Package saved implements the per-user recipe bookmarks.
package saved

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"platemate/db"
	"platemate/models"
	"platemate/mq"
	"platemate/permissions"
	"platemate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func ownerID(r *http.Request) (primitive.ObjectID, bool) {
	userID := utils.GetUserIDFromContext(r.Context())
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// List returns the user's bookmarks with the referenced recipe document
// joined in.
func List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	owner, ok := ownerID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": owner}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "recipes",
			"localField":   "recipeId",
			"foreignField": "_id",
			"as":           "recipe",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$recipe",
			"preserveNullAndEmptyArrays": true,
		}}},
	}

	cursor, err := db.SavedRecipeCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondServerError(w, "Failed to fetch saved recipes", err)
		return
	}
	defer cursor.Close(ctx)

	var recipes []models.SavedRecipe
	if err := cursor.All(ctx, &recipes); err != nil {
		utils.RespondServerError(w, "Failed to fetch saved recipes", err)
		return
	}
	if recipes == nil {
		recipes = []models.SavedRecipe{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "allRecipes": recipes})
}

func GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	owner, ok := ownerID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}

	savedID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	var recipe models.SavedRecipe
	err = db.SavedRecipeCollection.FindOne(ctx, bson.M{"_id": savedID, "userId": owner}).Decode(&recipe)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "recipe": recipe})
}

type saveRequest struct {
	Name     string `json:"name"`
	RecipeID string `json:"recipeId"`
}

// Create bookmarks a recipe. A recipe can be saved at most once per user; a
// duplicate attempt is rejected, never merged.
func Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	owner, ok := ownerID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}

	var req saveRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	recipeID, err := primitive.ObjectIDFromHex(req.RecipeID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	if err := db.RecipeCollection.FindOne(ctx, bson.M{"_id": recipeID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	err = db.SavedRecipeCollection.FindOne(ctx, bson.M{"userId": owner, "recipeId": recipeID}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Recipe is already saved in your collection")
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.RespondServerError(w, "Failed to save recipe", err)
		return
	}

	item := models.SavedRecipe{
		Name:      req.Name,
		RecipeID:  recipeID,
		UserID:    owner,
		SavedDate: time.Now(),
	}

	result, err := db.SavedRecipeCollection.InsertOne(ctx, item)
	if err != nil {
		// Unique (userId, recipeId) index: a concurrent save loses cleanly.
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Recipe is already saved in your collection")
			return
		}
		utils.RespondServerError(w, "Failed to save recipe", err)
		return
	}
	item.ID = result.InsertedID.(primitive.ObjectID)

	mq.Emit("saved-recipe-created", mq.Index{
		EntityType: "savedrecipe",
		Method:     "POST",
		EntityId:   item.ID.Hex(),
		UserId:     owner.Hex(),
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "item": item})
}

func Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	savedID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	var item models.SavedRecipe
	if err := db.SavedRecipeCollection.FindOne(ctx, bson.M{"_id": savedID}).Decode(&item); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	if err := permissions.Authorize(item, utils.GetUserIDFromContext(r.Context())); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	if _, err := db.SavedRecipeCollection.DeleteOne(ctx, bson.M{"_id": savedID}); err != nil {
		utils.RespondServerError(w, "Failed to delete saved recipe", err)
		return
	}

	mq.Emit("saved-recipe-deleted", mq.Index{
		EntityType: "savedrecipe",
		Method:     "DELETE",
		EntityId:   savedID.Hex(),
		UserId:     item.UserID.Hex(),
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Recipe deleted successfully"})
}
