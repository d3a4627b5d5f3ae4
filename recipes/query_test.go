package recipes

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParsePageParamsDefaults(t *testing.T) {
	p := parsePageParams(url.Values{})

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "createdAt", p.SortBy)
	assert.Equal(t, 1, p.SortOrder)
	assert.Equal(t, int64(0), p.Skip())
}

func TestParsePageParams(t *testing.T) {
	p := parsePageParams(url.Values{
		"page":      {"3"},
		"limit":     {"25"},
		"sortBy":    {"name"},
		"sortOrder": {"desc"},
	})

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, "name", p.SortBy)
	assert.Equal(t, -1, p.SortOrder)
	assert.Equal(t, int64(50), p.Skip())
}

func TestParsePageParamsRejectsGarbage(t *testing.T) {
	p := parsePageParams(url.Values{
		"page":   {"-2"},
		"limit":  {"nope"},
		"sortBy": {"password"},
	})

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "createdAt", p.SortBy)
}

func TestBuildSearchQueryEmpty(t *testing.T) {
	assert.Empty(t, buildSearchQuery(url.Values{}))
}

func TestBuildSearchQueryName(t *testing.T) {
	query := buildSearchQuery(url.Values{"name": {"pasta"}})

	assert.Equal(t, bson.M{"name": bson.M{"$regex": "pasta", "$options": "i"}}, query)
}

func TestBuildSearchQueryIngredientsOrList(t *testing.T) {
	query := buildSearchQuery(url.Values{"ingredients": {"rice, beans , "}})

	clause, ok := query["ingredients.name"].(bson.M)
	require.True(t, ok)
	patterns, ok := clause["$in"].([]primitive.Regex)
	require.True(t, ok)
	require.Len(t, patterns, 2)
	assert.Equal(t, primitive.Regex{Pattern: "rice", Options: "i"}, patterns[0])
	assert.Equal(t, primitive.Regex{Pattern: "beans", Options: "i"}, patterns[1])
}

func TestBuildSearchQueryIngredientBounds(t *testing.T) {
	query := buildSearchQuery(url.Values{"minIngredients": {"2"}, "maxIngredients": {"4"}})

	expr, ok := query["$expr"].(bson.M)
	require.True(t, ok)
	bounds, ok := expr["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, bounds, 2)
	assert.Equal(t, bson.M{"$gte": bson.A{bson.M{"$size": "$ingredients"}, 2}}, bounds[0])
	assert.Equal(t, bson.M{"$lte": bson.A{bson.M{"$size": "$ingredients"}, 4}}, bounds[1])
}

func TestBuildSearchQueryMinOnly(t *testing.T) {
	query := buildSearchQuery(url.Values{"minIngredients": {"3"}})

	assert.Equal(t, bson.M{"$gte": bson.A{bson.M{"$size": "$ingredients"}, 3}}, query["$expr"])
}

func TestBuildSearchQueryCombinesWithAnd(t *testing.T) {
	query := buildSearchQuery(url.Values{
		"name":           {"soup"},
		"ingredients":    {"leek,potato"},
		"category":       {"Dinner"},
		"cuisine":        {"french"},
		"minIngredients": {"2"},
	})

	// Every supplied filter lands in the same document, so Mongo applies
	// them conjunctively.
	assert.Len(t, query, 5)
	assert.Equal(t, "Dinner", query["category"])
	assert.Equal(t, bson.M{"$regex": "french", "$options": "i"}, query["cuisine"])
}
