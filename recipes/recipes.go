package recipes

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"platemate/db"
	"platemate/models"
	"platemate/mq"
	"platemate/rdx"
	"platemate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	cacheKeyFirstPage  = "recipes:page1"
	cacheKeyCategories = "recipes:categories"
	cacheTTL           = 2 * time.Hour
)

type cachedPage struct {
	Recipes []models.Recipe `json:"recipes"`
	Total   int64           `json:"total"`
}

func fetchPage(ctx context.Context, query bson.M, p pageParams) ([]models.Recipe, int64, error) {
	total, err := db.RecipeCollection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: p.SortBy, Value: p.SortOrder}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))

	cursor, err := db.RecipeCollection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, 0, err
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	return recipes, total, nil
}

func paginationInfo(total int64, p pageParams) utils.M {
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return utils.M{"total": total, "page": p.Page, "pages": pages, "limit": p.Limit}
}

// GetRecipes lists the catalogue with pagination and sorting. The default
// first page is served from the Redis cache when available.
func GetRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	p := parsePageParams(r.URL.Query())
	cacheable := p.Page == 1 && p.Limit == 10 && p.SortBy == "createdAt" && p.SortOrder == 1

	if cacheable {
		if val, ok := rdx.Get(ctx, cacheKeyFirstPage); ok {
			var cached cachedPage
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				utils.RespondWithJSON(w, http.StatusOK, utils.M{
					"success":    true,
					"recipes":    cached.Recipes,
					"pagination": paginationInfo(cached.Total, p),
				})
				return
			}
		}
	}

	recipes, total, err := fetchPage(ctx, bson.M{}, p)
	if err != nil {
		utils.RespondServerError(w, "Failed to fetch recipes", err)
		return
	}

	if cacheable {
		if raw, err := json.Marshal(cachedPage{Recipes: recipes, Total: total}); err == nil {
			rdx.Set(ctx, cacheKeyFirstPage, string(raw), cacheTTL)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":    true,
		"recipes":    recipes,
		"pagination": paginationInfo(total, p),
	})
}

// GetRecipeResource serves everything under /recipes/:id. httprouter cannot
// mount /recipes/search next to /recipes/:id, so the static sub-routes are
// dispatched here on the parameter value.
func GetRecipeResource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	switch ps.ByName("id") {
	case "search":
		SearchRecipes(w, r, ps)
	case "categories":
		GetCategories(w, r, ps)
	case "byIngredient":
		GetRecipesByIngredient(w, r, ps)
	case "byName":
		GetRecipesByName(w, r, ps)
	default:
		GetRecipe(w, r, ps)
	}
}

func GetRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	var recipe models.Recipe
	if err := db.RecipeCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "recipe": recipe})
}

// SearchRecipes combines the optional filters with AND semantics and
// paginates like the plain listing.
func SearchRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	q := r.URL.Query()
	p := parsePageParams(q)
	query := buildSearchQuery(q)

	recipes, total, err := fetchPage(ctx, query, p)
	if err != nil {
		utils.RespondServerError(w, "Failed to search recipes", err)
		return
	}

	payload := utils.M{
		"success":    true,
		"recipes":    recipes,
		"pagination": paginationInfo(total, p),
	}
	if len(recipes) == 0 {
		payload["message"] = "No recipes found matching your criteria"
	}
	utils.RespondWithJSON(w, http.StatusOK, payload)
}

func GetRecipesByIngredient(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ingredient := r.URL.Query().Get("ingredient")
	if ingredient == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Ingredient name is required")
		return
	}

	recipes, err := findRecipes(ctx, bson.M{
		"ingredients.name": bson.M{"$regex": ingredient, "$options": "i"},
	})
	if err != nil {
		utils.RespondServerError(w, "Failed to fetch recipes", err)
		return
	}
	if len(recipes) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No recipes found with that ingredient")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "recipes": recipes})
}

func GetRecipesByName(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	name := r.URL.Query().Get("name")
	if name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Recipe name is required")
		return
	}

	recipes, err := findRecipes(ctx, bson.M{"name": bson.M{"$regex": name, "$options": "i"}})
	if err != nil {
		utils.RespondServerError(w, "Failed to fetch recipes", err)
		return
	}
	if len(recipes) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No recipes found with that name")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "recipes": recipes})
}

func findRecipes(ctx context.Context, query bson.M) ([]models.Recipe, error) {
	cursor, err := db.RecipeCollection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetCategories returns the distinct categories present in the catalogue.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if val, ok := rdx.Get(ctx, cacheKeyCategories); ok {
		var categories []string
		if err := json.Unmarshal([]byte(val), &categories); err == nil {
			utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "categories": categories})
			return
		}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"categories": bson.M{"$addToSet": "$category"},
		}}},
	}

	cursor, err := db.RecipeCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondServerError(w, "Failed to fetch categories", err)
		return
	}
	defer cursor.Close(ctx)

	var result []struct {
		Categories []string `bson:"categories"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		utils.RespondServerError(w, "Failed to fetch categories", err)
		return
	}

	categories := []string{}
	if len(result) > 0 {
		categories = result[0].Categories
	}

	if raw, err := json.Marshal(categories); err == nil {
		rdx.Set(ctx, cacheKeyCategories, string(raw), cacheTTL)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "categories": categories})
}

type createRecipeRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Instruction string              `json:"instruction"`
	ImageURL    string              `json:"imageURL"`
	VideoURL    string              `json:"videoURL"`
	Cuisine     string              `json:"cuisine"`
	Category    string              `json:"category"`
	Ingredients []models.Ingredient `json:"ingredients"`
}

func CreateRecipe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req createRecipeRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Category == "" || len(req.Ingredients) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Name, category, and at least one ingredient are required")
		return
	}

	now := time.Now()
	recipe := models.Recipe{
		Name:        req.Name,
		Description: req.Description,
		Instruction: req.Instruction,
		ImageURL:    req.ImageURL,
		VideoURL:    NormalizeVideoURL(req.VideoURL),
		Cuisine:     req.Cuisine,
		Category:    req.Category,
		Ingredients: req.Ingredients,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := db.RecipeCollection.InsertOne(ctx, recipe)
	if err != nil {
		utils.RespondServerError(w, "Failed to create recipe", err)
		return
	}
	recipe.ID = result.InsertedID.(primitive.ObjectID)

	rdx.Del(ctx, cacheKeyFirstPage, cacheKeyCategories)
	mq.Emit("recipe-created", mq.Index{
		EntityType: "recipe",
		Method:     "POST",
		EntityId:   recipe.ID.Hex(),
		UserId:     utils.GetUserIDFromContext(r.Context()),
	})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"message": "Recipe created successfully",
		"recipe":  recipe,
	})
}
