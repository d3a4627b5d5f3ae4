package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection         *mongo.Collection
	RecipeCollection       *mongo.Collection
	KitchenCollection      *mongo.Collection
	ShoppingListCollection *mongo.Collection
	SavedRecipeCollection  *mongo.Collection

	Client *mongo.Client
)

// Connect establishes the MongoDB connection and wires up the collection
// handles the rest of the app uses.
func Connect(ctx context.Context, uri string) error {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}

	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return err
	}

	Client = client
	database := client.Database("platemate")
	UserCollection = database.Collection("users")
	RecipeCollection = database.Collection("recipes")
	KitchenCollection = database.Collection("mykitchen")
	ShoppingListCollection = database.Collection("shoppinglist")
	SavedRecipeCollection = database.Collection("savedrecipes")

	return nil
}

// CreateIndexes enforces the uniqueness rules at the storage layer, so
// concurrent duplicate requests cannot slip past the lookup-then-create
// checks in the handlers.
func CreateIndexes(ctx context.Context) error {
	caseInsensitive := options.Collation{Locale: "en", Strength: 2}

	_, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = SavedRecipeCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "recipeId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	for _, coll := range []*mongo.Collection{KitchenCollection, ShoppingListCollection} {
		_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "name", Value: 1},
				{Key: "category", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetCollation(&caseInsensitive),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
