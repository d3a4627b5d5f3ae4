// Package inventory implements the owner-scoped item collections. The same
// handlers back both the kitchen and the shopping list; only the collection
// differs.
package inventory

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"platemate/models"
	"platemate/permissions"
	"platemate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Handler struct {
	coll *mongo.Collection
}

func NewHandler(coll *mongo.Collection) *Handler {
	return &Handler{coll: coll}
}

type itemRequest struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Category string   `json:"category"`
	Unit     string   `json:"unit"`
}

func (req *itemRequest) validate() string {
	switch {
	case req.Name == "":
		return "Please fill the name field"
	case req.Quantity == nil:
		return "Please fill the quantity field"
	case *req.Quantity <= 0:
		return "Quantity must be a positive number"
	case req.Category == "":
		return "Please select one of the categories"
	case req.Unit == "":
		return "Please select one of the units"
	}
	return ""
}

func decodeItem(r *http.Request) (*itemRequest, error) {
	var req itemRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func ownerID(r *http.Request) (primitive.ObjectID, bool) {
	userID := utils.GetUserIDFromContext(r.Context())
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// caseInsensitive matches the collation of the unique
// (userId, name, category) index.
var caseInsensitive = options.Collation{Locale: "en", Strength: 2}

func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	owner, ok := ownerID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}

	cursor, err := h.coll.Find(ctx, bson.M{"userId": owner})
	if err != nil {
		utils.RespondServerError(w, "Failed to fetch items", err)
		return
	}
	defer cursor.Close(ctx)

	var items []models.Item
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondServerError(w, "Failed to fetch items", err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "allItems": items})
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	owner, ok := ownerID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}

	itemID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Item not found")
		return
	}

	// Owner scoping at the query level; someone else's item id simply
	// does not match.
	var item models.Item
	err = h.coll.FindOne(ctx, bson.M{"_id": itemID, "userId": owner}).Decode(&item)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Item not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "item": item})
}

// Create adds an item, merging into an existing record when the owner
// already has one with the same name (case-insensitive) and category: the
// quantity is incremented and the unit replaced.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	owner, ok := ownerID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}

	req, err := decodeItem(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	merged, err := h.merge(ctx, owner, req)
	if err == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"success": true,
			"message": "Item quantity updated",
			"item":    merged,
		})
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.RespondServerError(w, "Failed to add item", err)
		return
	}

	now := time.Now()
	item := models.Item{
		Name:      req.Name,
		Quantity:  *req.Quantity,
		Category:  req.Category,
		Unit:      req.Unit,
		UserID:    owner,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := h.coll.InsertOne(ctx, item)
	if err != nil {
		// The unique index caught a concurrent duplicate; merge instead.
		if mongo.IsDuplicateKeyError(err) {
			if merged, mergeErr := h.merge(ctx, owner, req); mergeErr == nil {
				utils.RespondWithJSON(w, http.StatusOK, utils.M{
					"success": true,
					"message": "Item quantity updated",
					"item":    merged,
				})
				return
			}
		}
		utils.RespondServerError(w, "Failed to add item", err)
		return
	}
	item.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "item": item})
}

func (h *Handler) merge(ctx context.Context, owner primitive.ObjectID, req *itemRequest) (*models.Item, error) {
	filter := bson.M{
		"userId":   owner,
		"name":     req.Name,
		"category": req.Category,
	}
	update := bson.M{
		"$inc": bson.M{"quantity": *req.Quantity},
		"$set": bson.M{"unit": req.Unit, "updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().
		SetCollation(&caseInsensitive).
		SetReturnDocument(options.After)

	var item models.Item
	if err := h.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	itemID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Item not found")
		return
	}

	req, err := decodeItem(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	var item models.Item
	if err := h.coll.FindOne(ctx, bson.M{"_id": itemID}).Decode(&item); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Item not found")
		return
	}

	if err := permissions.Authorize(item, utils.GetUserIDFromContext(r.Context())); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	update := bson.M{"$set": bson.M{
		"name":      req.Name,
		"quantity":  *req.Quantity,
		"category":  req.Category,
		"unit":      req.Unit,
		"updatedAt": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Item
	if err := h.coll.FindOneAndUpdate(ctx, bson.M{"_id": itemID}, update, opts).Decode(&updated); err != nil {
		respondUpdateError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "updatedItem": updated})
}

// respondUpdateError maps a rename that lands on an existing
// (owner, name, category) tuple to a client error; the unique collated index
// rejects the write.
func respondUpdateError(w http.ResponseWriter, err error) {
	if mongo.IsDuplicateKeyError(err) {
		utils.RespondWithError(w, http.StatusBadRequest, "An item with that name already exists in this category")
		return
	}
	utils.RespondServerError(w, "Failed to update item", err)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	itemID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Item not found")
		return
	}

	var item models.Item
	if err := h.coll.FindOne(ctx, bson.M{"_id": itemID}).Decode(&item); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Item not found")
		return
	}

	if err := permissions.Authorize(item, utils.GetUserIDFromContext(r.Context())); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	if _, err := h.coll.DeleteOne(ctx, bson.M{"_id": itemID}); err != nil {
		utils.RespondServerError(w, "Failed to delete item", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "deletedItem": item})
}

func (h *Handler) DeleteAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	owner, ok := ownerID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}

	result, err := h.coll.DeleteMany(ctx, bson.M{"userId": owner})
	if err != nil {
		utils.RespondServerError(w, "Failed to delete items", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "deletedCount": result.DeletedCount})
}
