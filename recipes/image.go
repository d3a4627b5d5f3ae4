package recipes

import (
	"context"
	"net/http"
	"time"

	"platemate/db"
	"platemate/rdx"
	"platemate/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const uploadDir = "./static/uploads/recipes"

// UploadRecipeImage stores an image for an existing recipe and points its
// imageURL at the stored file.
func UploadRecipeImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	filename, err := utils.SaveImage(file, header, uploadDir)
	if err != nil {
		utils.RespondServerError(w, "Failed to save image", err)
		return
	}
	imageURL := "/static/uploads/recipes/" + filename

	result, err := db.RecipeCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"imageURL": imageURL, "updatedAt": time.Now()}})
	if err != nil {
		utils.RespondServerError(w, "Failed to update recipe", err)
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	rdx.Del(ctx, cacheKeyFirstPage)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "imageURL": imageURL})
}
