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

	"lrstore/internal/models"
)

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// normalizeSlug derives a URL slug from the category name when none is given.
func normalizeSlug(slug, name string) string {
	s := strings.TrimSpace(slug)
	if s == "" {
		s = name
	}
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "-")
}

func AdminCreateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/categories"
		defer handlePanic(c, route)

		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		category := models.Category{
			ID:          uuid.NewString(),
			Name:        strings.TrimSpace(req.Name),
			Slug:        normalizeSlug(req.Slug, req.Name),
			Image:       strings.TrimSpace(req.Image),
			Description: strings.TrimSpace(req.Description),
			CreatedAt:   time.Now().UTC(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		if _, err := db.Collection("categories").InsertOne(ctx, category); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusConflict, route, "category slug already exists")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] category created: %s (%s)", route, category.Name, category.Slug)
		c.JSON(http.StatusOK, gin.H{"category": category})
	}
}

func AdminUpdateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/categories/:id"
		defer handlePanic(c, route)

		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		update := bson.M{"$set": bson.M{
			"name":        strings.TrimSpace(req.Name),
			"slug":        normalizeSlug(req.Slug, req.Name),
			"image":       strings.TrimSpace(req.Image),
			"description": strings.TrimSpace(req.Description),
		}}

		result, err := db.Collection("categories").UpdateOne(ctx, bson.M{"id": c.Param("id")}, update)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusConflict, route, "category slug already exists")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "category not found")
			return
		}

		var category models.Category
		if err := db.Collection("categories").FindOne(ctx, bson.M{"id": c.Param("id")}).Decode(&category); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"category": category})
	}
}

func AdminDeleteCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/categories/:id"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		result, err := db.Collection("categories").DeleteOne(ctx, bson.M{"id": c.Param("id")})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "category not found")
			return
		}

		log.Printf("[%s] category %s deleted", route, c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
	}
}
