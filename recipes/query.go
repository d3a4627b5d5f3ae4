package recipes

import (
	"net/url"
	"strings"

	"platemate/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var sortableFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"name":      true,
	"category":  true,
	"cuisine":   true,
}

type pageParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder int
}

func (p pageParams) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

func parsePageParams(q url.Values) pageParams {
	p := pageParams{
		Page:      utils.ParseInt(q.Get("page")),
		Limit:     utils.ParseInt(q.Get("limit")),
		SortBy:    q.Get("sortBy"),
		SortOrder: 1,
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if !sortableFields[p.SortBy] {
		p.SortBy = "createdAt"
	}
	if q.Get("sortOrder") == "desc" {
		p.SortOrder = -1
	}
	return p
}

// buildSearchQuery translates the catalogue search parameters into a Mongo
// filter. Every supplied parameter narrows the result (AND semantics); the
// comma-separated ingredient list alone is an OR across substrings.
func buildSearchQuery(q url.Values) bson.M {
	query := bson.M{}

	if name := q.Get("name"); name != "" {
		query["name"] = bson.M{"$regex": name, "$options": "i"}
	}

	if ingredients := q.Get("ingredients"); ingredients != "" {
		var patterns []primitive.Regex
		for _, ing := range strings.Split(ingredients, ",") {
			ing = strings.TrimSpace(ing)
			if ing != "" {
				patterns = append(patterns, primitive.Regex{Pattern: ing, Options: "i"})
			}
		}
		if len(patterns) > 0 {
			query["ingredients.name"] = bson.M{"$in": patterns}
		}
	}

	if category := q.Get("category"); category != "" {
		query["category"] = category
	}

	if cuisine := q.Get("cuisine"); cuisine != "" {
		query["cuisine"] = bson.M{"$regex": cuisine, "$options": "i"}
	}

	var bounds []bson.M
	if min := q.Get("minIngredients"); min != "" {
		bounds = append(bounds, bson.M{"$gte": bson.A{bson.M{"$size": "$ingredients"}, utils.ParseInt(min)}})
	}
	if max := q.Get("maxIngredients"); max != "" {
		bounds = append(bounds, bson.M{"$lte": bson.A{bson.M{"$size": "$ingredients"}, utils.ParseInt(max)}})
	}
	switch len(bounds) {
	case 1:
		query["$expr"] = bounds[0]
	case 2:
		query["$expr"] = bson.M{"$and": bounds}
	}

	return query
}
