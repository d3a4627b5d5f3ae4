package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"platemate/db"
	"platemate/models"
	"platemate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch {
	case req.Name == "":
		utils.RespondWithError(w, http.StatusBadRequest, "Please fill the name field")
		return
	case req.Email == "":
		utils.RespondWithError(w, http.StatusBadRequest, "Please fill the email field")
		return
	case req.Password == "":
		utils.RespondWithError(w, http.StatusBadRequest, "Please fill the password field")
		return
	}

	err := db.UserCollection.FindOne(ctx, bson.M{"email": req.Email}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "User already exists")
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.RespondServerError(w, "Failed to register", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondServerError(w, "Failed to register", err)
		return
	}

	now := time.Now()
	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := db.UserCollection.InsertOne(ctx, user)
	if err != nil {
		// Unique index on email: a concurrent register can still lose the race.
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "User already exists")
			return
		}
		utils.RespondServerError(w, "Failed to register", err)
		return
	}

	userID := result.InsertedID.(primitive.ObjectID).Hex()
	token, err := GenerateToken(userID)
	if err != nil {
		utils.RespondServerError(w, "Failed to issue token", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"_id":     userID,
		"name":    user.Name,
		"email":   user.Email,
		"token":   token,
	})
}

func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	// A missing user and a wrong password get the same answer, so login
	// never reveals whether an email is registered.
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		log.Printf("login lookup failed: %v", err)
		utils.RespondServerError(w, "Failed to log in", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := GenerateToken(user.ID.Hex())
	if err != nil {
		utils.RespondServerError(w, "Failed to issue token", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"_id":     user.ID.Hex(),
		"name":    user.Name,
		"email":   user.Email,
		"token":   token,
	})
}
