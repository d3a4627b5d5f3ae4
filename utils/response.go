package utils

import (
	"encoding/json"
	"net/http"
	"os"
)

type M map[string]interface{}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"success": false, "message": msg})
}

// RespondServerError hides storage-level detail unless running in
// development mode.
func RespondServerError(w http.ResponseWriter, msg string, err error) {
	payload := M{"success": false, "message": msg}
	if IsDevelopment() && err != nil {
		payload["error"] = err.Error()
	}
	RespondWithJSON(w, http.StatusInternalServerError, payload)
}

func IsDevelopment() bool {
	return os.Getenv("APP_ENV") == "development"
}
