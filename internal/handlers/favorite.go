package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lrstore/internal/models"
)

type favoriteAddRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// ListFavorites returns the caller's favorites with the referenced products
// resolved. Favorites whose product was deleted are skipped.
func ListFavorites(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/favorites"
		defer handlePanic(c, route)

		userID, ok := requireUserID(c, route)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		opts := options.Find().SetSort(bson.M{"created_at": -1})
		cursor, err := db.Collection("favorites").Find(ctx, bson.M{"user_id": userID}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		favorites := make([]models.Favorite, 0)
		if err := cursor.All(ctx, &favorites); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		products := make([]models.Product, 0, len(favorites))
		for _, fav := range favorites {
			var product models.Product
			err := db.Collection("products").FindOne(ctx, bson.M{"id": fav.ProductID}).Decode(&product)
			if err == mongo.ErrNoDocuments {
				continue
			}
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			products = append(products, product)
		}

		c.JSON(http.StatusOK, gin.H{"favorites": products})
	}
}

// AddFavorite is idempotent: re-adding a favorited product returns the
// existing entry.
func AddFavorite(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/favorites"
		defer handlePanic(c, route)

		userID, ok := requireUserID(c, route)
		if !ok {
			return
		}

		var req favoriteAddRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		count, err := db.Collection("products").CountDocuments(ctx, bson.M{"id": req.ProductID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if count == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		favorite := models.Favorite{
			ID:        uuid.NewString(),
			UserID:    userID,
			ProductID: req.ProductID,
			CreatedAt: time.Now().UTC(),
		}

		if _, err := db.Collection("favorites").InsertOne(ctx, favorite); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusOK, gin.H{"message": "already in favorites"})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] product %s favorited by user %s", route, req.ProductID, userID)
		c.JSON(http.StatusOK, gin.H{"favorite": favorite})
	}
}

func RemoveFavorite(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/favorites/:product_id"
		defer handlePanic(c, route)

		userID, ok := requireUserID(c, route)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		result, err := db.Collection("favorites").DeleteOne(ctx, bson.M{
			"user_id":    userID,
			"product_id": c.Param("product_id"),
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "favorite not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "favorite removed"})
	}
}
