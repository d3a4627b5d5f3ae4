package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"platemate/auth"
	"platemate/db"
	"platemate/globals"
	"platemate/models"
	"platemate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func tokenFromHeader(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func resolveUser(r *http.Request) (*models.User, error) {
	token, ok := tokenFromHeader(r)
	if !ok {
		return nil, errTokenMissing
	}

	userID, err := auth.VerifyToken(token)
	if err != nil {
		return nil, errTokenInvalid
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errTokenInvalid
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err = db.UserCollection.FindOne(ctx, bson.M{"_id": oid},
		options.FindOne().SetProjection(bson.M{"password": 0})).Decode(&user)
	if err != nil {
		return nil, errUserGone
	}
	return &user, nil
}

// Authenticate rejects the request unless a valid bearer token resolves to an
// existing user. The resolved identity is attached to the request context.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		user, err := resolveUser(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), globals.UserIDKey, user.ID.Hex())
		ctx = context.WithValue(ctx, globals.UserKey, user)
		next(w, r.WithContext(ctx), ps)
	}
}

// OptionalAuth attaches the identity when a valid token is present but never
// rejects the request.
func OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if user, err := resolveUser(r); err == nil {
			ctx := context.WithValue(r.Context(), globals.UserIDKey, user.ID.Hex())
			ctx = context.WithValue(ctx, globals.UserKey, user)
			r = r.WithContext(ctx)
		}
		next(w, r, ps)
	}
}
