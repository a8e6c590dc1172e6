package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lrstore/internal/models"
)

type addressRequest struct {
	ContactName  string `json:"contact_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Province     string `json:"province" binding:"required"`
	Municipality string `json:"municipality" binding:"required"`
	Neighborhood string `json:"neighborhood"`
	Street       string `json:"street" binding:"required"`
}

// requireUserID reads the caller identity header shared by the account routes.
func requireUserID(c *gin.Context, route string) (string, bool) {
	userID := strings.TrimSpace(c.GetHeader("X-User-Id"))
	if userID == "" {
		respondWithError(c, http.StatusUnauthorized, route, "missing X-User-Id header")
		return "", false
	}
	return userID, true
}

func ListAddresses(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/users/me/addresses"
		defer handlePanic(c, route)

		userID, ok := requireUserID(c, route)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		opts := options.Find().SetSort(bson.M{"created_at": -1})
		cursor, err := db.Collection("addresses").Find(ctx, bson.M{"user_id": userID}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		addresses := make([]models.Address, 0)
		if err := cursor.All(ctx, &addresses); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"addresses": addresses})
	}
}

func CreateAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/users/me/addresses"
		defer handlePanic(c, route)

		userID, ok := requireUserID(c, route)
		if !ok {
			return
		}

		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		now := time.Now().UTC()
		address := models.Address{
			ID:           uuid.NewString(),
			UserID:       userID,
			ContactName:  strings.TrimSpace(req.ContactName),
			Phone:        strings.TrimSpace(req.Phone),
			Province:     strings.TrimSpace(req.Province),
			Municipality: strings.TrimSpace(req.Municipality),
			Neighborhood: strings.TrimSpace(req.Neighborhood),
			Street:       strings.TrimSpace(req.Street),
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		if _, err := db.Collection("addresses").InsertOne(ctx, address); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] address %s created for user %s", route, address.ID, userID)
		c.JSON(http.StatusOK, gin.H{"address": address})
	}
}

func UpdateAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/users/me/addresses/:id"
		defer handlePanic(c, route)

		userID, ok := requireUserID(c, route)
		if !ok {
			return
		}

		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		filter := bson.M{"id": c.Param("id"), "user_id": userID}
		update := bson.M{"$set": bson.M{
			"contact_name": strings.TrimSpace(req.ContactName),
			"phone":        strings.TrimSpace(req.Phone),
			"province":     strings.TrimSpace(req.Province),
			"municipality": strings.TrimSpace(req.Municipality),
			"neighborhood": strings.TrimSpace(req.Neighborhood),
			"street":       strings.TrimSpace(req.Street),
			"updated_at":   time.Now().UTC(),
		}}

		result, err := db.Collection("addresses").UpdateOne(ctx, filter, update)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "address not found")
			return
		}

		var address models.Address
		if err := db.Collection("addresses").FindOne(ctx, filter).Decode(&address); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"address": address})
	}
}

func DeleteAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/users/me/addresses/:id"
		defer handlePanic(c, route)

		userID, ok := requireUserID(c, route)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		result, err := db.Collection("addresses").DeleteOne(ctx, bson.M{"id": c.Param("id"), "user_id": userID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "address not found")
			return
		}

		log.Printf("[%s] address %s deleted for user %s", route, c.Param("id"), userID)
		c.JSON(http.StatusOK, gin.H{"message": "address deleted"})
	}
}
