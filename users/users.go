// Package users implements the profile endpoints. A profile is only ever
// visible and mutable to its own user; the ownership check applies to the
// identity record like any other owned resource.
package users

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"platemate/db"
	"platemate/models"
	"platemate/permissions"
	"platemate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func loadUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	// The guard already resolved the requesting identity; reuse it when the
	// request targets that same user instead of fetching it again.
	if u := utils.GetUserFromContext(ctx); u != nil && u.ID == oid {
		return u, nil
	}

	var user models.User
	err = db.UserCollection.FindOne(ctx, bson.M{"_id": oid},
		options.FindOne().SetProjection(bson.M{"password": 0})).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := loadUser(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := permissions.Authorize(user, utils.GetUserIDFromContext(r.Context())); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "user": user})
}

type updateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req updateRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Please fill the name field")
		return
	}
	if req.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Please fill the email field")
		return
	}

	user, err := loadUser(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := permissions.Authorize(user, utils.GetUserIDFromContext(r.Context())); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	update := bson.M{"$set": bson.M{
		"name":      req.Name,
		"email":     req.Email,
		"updatedAt": time.Now(),
	}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password": 0})

	var updated models.User
	err = db.UserCollection.FindOneAndUpdate(ctx, bson.M{"_id": user.ID}, update, opts).Decode(&updated)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Email already in use")
			return
		}
		utils.RespondServerError(w, "Failed to update user", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "updatedUser": updated})
}

// cascadeFilter scopes the dependent collections to a single owner.
func cascadeFilter(owner primitive.ObjectID) bson.M {
	return bson.M{"userId": owner}
}

// cascadeCollections lists every collection holding per-user records that
// must go when the account goes.
func cascadeCollections() []*mongo.Collection {
	return []*mongo.Collection{
		db.KitchenCollection,
		db.ShoppingListCollection,
		db.SavedRecipeCollection,
	}
}

// DeleteUser removes the account and cascades to every per-user collection,
// so no orphaned kitchen, shopping list or bookmark records remain. The
// dependent records go first; a failure there leaves the account intact and
// the request retryable.
func DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := loadUser(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := permissions.Authorize(user, utils.GetUserIDFromContext(r.Context())); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	filter := cascadeFilter(user.ID)
	for _, coll := range cascadeCollections() {
		if _, err := coll.DeleteMany(ctx, filter); err != nil {
			utils.RespondServerError(w, "Failed to delete user data", err)
			return
		}
	}

	if _, err := db.UserCollection.DeleteOne(ctx, bson.M{"_id": user.ID}); err != nil {
		utils.RespondServerError(w, "Failed to delete user", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
