package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithJSON(w, http.StatusCreated, M{"success": true, "name": "Rice"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Rice", body["name"])
}

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithError(w, http.StatusBadRequest, "Please fill the name field")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Please fill the name field", body["message"])
}

func TestRespondServerErrorHidesDetailInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	w := httptest.NewRecorder()
	RespondServerError(w, "Failed to fetch items", assert.AnError)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch items", body["message"])
	assert.NotContains(t, body, "error")
}

func TestRespondServerErrorShowsDetailInDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	w := httptest.NewRecorder()
	RespondServerError(w, "Failed to fetch items", assert.AnError)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 42, ParseInt("42"))
	assert.Equal(t, 0, ParseInt("nope"))
	assert.Equal(t, 2.5, ParseFloat("2.5"))
	assert.Equal(t, 0.0, ParseFloat(""))
}
