package routes

import (
	"net/http"

	"platemate/auth"
	"platemate/db"
	"platemate/inventory"
	"platemate/middleware"
	"platemate/ratelim"
	"platemate/recipes"
	"platemate/saved"
	"platemate/users"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/users/register", ratelim.RateLimit(auth.Register))
	router.POST("/users/login", ratelim.RateLimit(auth.Login))
}

func AddUserRoutes(router *httprouter.Router) {
	router.GET("/users/:id", middleware.Authenticate(users.GetUser))
	router.PUT("/users/update/:id", middleware.Authenticate(users.UpdateUser))
	router.DELETE("/users/delete/:id", middleware.Authenticate(users.DeleteUser))
}

func AddRecipeRoutes(router *httprouter.Router) {
	router.GET("/recipes", middleware.OptionalAuth(recipes.GetRecipes))
	router.GET("/recipes/:id", middleware.OptionalAuth(recipes.GetRecipeResource))
	router.POST("/recipes", middleware.Authenticate(recipes.CreateRecipe))
	router.POST("/recipes/:id/image", middleware.Authenticate(recipes.UploadRecipeImage))
}

func AddKitchenRoutes(router *httprouter.Router) {
	h := inventory.NewHandler(db.KitchenCollection)
	router.GET("/myKitchen", middleware.Authenticate(h.List))
	router.GET("/myKitchen/:id", middleware.Authenticate(h.GetByID))
	router.POST("/myKitchen", middleware.Authenticate(h.Create))
	router.PUT("/myKitchen/:id", middleware.Authenticate(h.Update))
	router.DELETE("/myKitchen/:id", middleware.Authenticate(h.Delete))
	router.DELETE("/myKitchen", middleware.Authenticate(h.DeleteAll))
}

func AddShoppingListRoutes(router *httprouter.Router) {
	h := inventory.NewHandler(db.ShoppingListCollection)
	router.GET("/shoppingList", middleware.Authenticate(h.List))
	router.GET("/shoppingList/:id", middleware.Authenticate(h.GetByID))
	router.POST("/shoppingList", middleware.Authenticate(h.Create))
	router.PUT("/shoppingList/:id", middleware.Authenticate(h.Update))
	router.DELETE("/shoppingList/:id", middleware.Authenticate(h.Delete))
	router.DELETE("/shoppingList", middleware.Authenticate(h.DeleteAll))
}

func AddSavedRecipeRoutes(router *httprouter.Router) {
	router.GET("/savedRecipe", middleware.Authenticate(saved.List))
	router.GET("/savedRecipe/:id", middleware.Authenticate(saved.GetByID))
	router.POST("/savedRecipe", middleware.Authenticate(saved.Create))
	router.DELETE("/savedRecipe/:id", middleware.Authenticate(saved.Delete))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}
