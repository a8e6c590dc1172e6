package handlers

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lrstore/internal/models"
)

type productCreateRequest struct {
	Name          string   `json:"name" binding:"required"`
	Category      string   `json:"category" binding:"required"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	OriginalPrice *float64 `json:"original_price"`
	Image         string   `json:"image"`
	Description   string   `json:"description"`
	Stock         int      `json:"stock" binding:"gte=0"`
	Colors        []string `json:"colors"`
	Featured      bool     `json:"featured"`
	IsNew         bool     `json:"is_new"`
	IsPromo       bool     `json:"is_promo"`
}

type productUpdateRequest struct {
	Name          *string  `json:"name"`
	Category      *string  `json:"category"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	Image         *string  `json:"image"`
	Description   *string  `json:"description"`
	Stock         *int     `json:"stock"`
	Colors        []string `json:"colors"`
	Featured      *bool    `json:"featured"`
	IsNew         *bool    `json:"is_new"`
	IsPromo       *bool    `json:"is_promo"`
}

// AdminListProducts paginates the catalog with optional category filter and
// case-insensitive name search.
func AdminListProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/products"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"), 20)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		filter := bson.M{}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["name"] = bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		total, err := db.Collection("products").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		opts := options.Find().
			SetSort(bson.M{"created_at": -1}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := db.Collection("products").Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products":   products,
			"pagination": buildPagination(total, page, limit),
		})
	}
}

func AdminGetProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/products/:id"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var product models.Product
		err := db.Collection("products").FindOne(ctx, bson.M{"id": c.Param("id")}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

func AdminCreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/products"
		defer handlePanic(c, route)

		var req productCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		colors := req.Colors
		if colors == nil {
			colors = []string{}
		}

		now := time.Now().UTC()
		product := models.Product{
			ID:            uuid.NewString(),
			Name:          strings.TrimSpace(req.Name),
			Category:      strings.TrimSpace(req.Category),
			Price:         req.Price,
			OriginalPrice: req.OriginalPrice,
			Image:         strings.TrimSpace(req.Image),
			Description:   strings.TrimSpace(req.Description),
			Stock:         req.Stock,
			Colors:        colors,
			Featured:      req.Featured,
			IsNew:         req.IsNew,
			IsPromo:       req.IsPromo,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		if _, err := db.Collection("products").InsertOne(ctx, product); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] product created: %s (%s)", route, product.Name, product.ID)
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

func AdminUpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/products/:id"
		defer handlePanic(c, route)

		var req productUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		update := bson.M{"updated_at": time.Now().UTC()}
		if req.Name != nil {
			update["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Category != nil {
			update["category"] = strings.TrimSpace(*req.Category)
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				respondWithError(c, http.StatusBadRequest, route, "price must be positive")
				return
			}
			update["price"] = *req.Price
		}
		if req.OriginalPrice != nil {
			update["original_price"] = *req.OriginalPrice
		}
		if req.Image != nil {
			update["image"] = strings.TrimSpace(*req.Image)
		}
		if req.Description != nil {
			update["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				respondWithError(c, http.StatusBadRequest, route, "stock cannot be negative")
				return
			}
			update["stock"] = *req.Stock
		}
		if req.Colors != nil {
			update["colors"] = req.Colors
		}
		if req.Featured != nil {
			update["featured"] = *req.Featured
		}
		if req.IsNew != nil {
			update["is_new"] = *req.IsNew
		}
		if req.IsPromo != nil {
			update["is_promo"] = *req.IsPromo
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		result, err := db.Collection("products").UpdateOne(ctx, bson.M{"id": c.Param("id")}, bson.M{"$set": update})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"id": c.Param("id")}).Decode(&product); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

func AdminDeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/products/:id"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		result, err := db.Collection("products").DeleteOne(ctx, bson.M{"id": c.Param("id")})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		log.Printf("[%s] product %s deleted", route, c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
