package inventory

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func floatPtr(f float64) *float64 { return &f }

func TestItemRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  itemRequest
		want string
	}{
		{
			name: "valid",
			req:  itemRequest{Name: "Rice", Quantity: floatPtr(2), Category: "Grain", Unit: "kg"},
			want: "",
		},
		{
			name: "missing name",
			req:  itemRequest{Quantity: floatPtr(2), Category: "Grain", Unit: "kg"},
			want: "Please fill the name field",
		},
		{
			name: "missing quantity",
			req:  itemRequest{Name: "Rice", Category: "Grain", Unit: "kg"},
			want: "Please fill the quantity field",
		},
		{
			name: "zero quantity",
			req:  itemRequest{Name: "Rice", Quantity: floatPtr(0), Category: "Grain", Unit: "kg"},
			want: "Quantity must be a positive number",
		},
		{
			name: "negative quantity",
			req:  itemRequest{Name: "Rice", Quantity: floatPtr(-1), Category: "Grain", Unit: "kg"},
			want: "Quantity must be a positive number",
		},
		{
			name: "missing category",
			req:  itemRequest{Name: "Rice", Quantity: floatPtr(2), Unit: "kg"},
			want: "Please select one of the categories",
		},
		{
			name: "missing unit",
			req:  itemRequest{Name: "Rice", Quantity: floatPtr(2), Category: "Grain"},
			want: "Please select one of the units",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.validate())
		})
	}
}

func TestDecodeItem(t *testing.T) {
	r := httptest.NewRequest("POST", "/myKitchen",
		strings.NewReader(`{"name":"Rice","quantity":2,"category":"Grain","unit":"kg"}`))

	req, err := decodeItem(r)
	require.NoError(t, err)
	assert.Equal(t, "Rice", req.Name)
	require.NotNil(t, req.Quantity)
	assert.Equal(t, 2.0, *req.Quantity)
	assert.Equal(t, "Grain", req.Category)
	assert.Equal(t, "kg", req.Unit)
}

func TestDecodeItemRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/myKitchen",
		strings.NewReader(`{"name":"Rice","quantity":2,"category":"Grain","unit":"kg","admin":true}`))

	_, err := decodeItem(r)
	assert.Error(t, err)
}

func TestDecodeItemMissingQuantityStaysNil(t *testing.T) {
	r := httptest.NewRequest("POST", "/myKitchen",
		strings.NewReader(`{"name":"Rice","category":"Grain","unit":"kg"}`))

	req, err := decodeItem(r)
	require.NoError(t, err)
	assert.Nil(t, req.Quantity)
}

func TestRespondUpdateErrorDuplicateKeyIsClientError(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}

	w := httptest.NewRecorder()
	respondUpdateError(w, dup)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists in this category")
}

func TestRespondUpdateErrorOtherErrorsAreServerErrors(t *testing.T) {
	w := httptest.NewRecorder()
	respondUpdateError(w, errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to update item")
}
