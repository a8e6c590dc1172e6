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

	"lrstore/internal/models"
)

type cartAddRequest struct {
	ProductID     string  `json:"product_id" binding:"required"`
	Quantity      int     `json:"quantity" binding:"required,gt=0"`
	SelectedColor *string `json:"selected_color"`
}

type cartUpdateRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// getOrCreateCart loads the single per-user cart, creating an empty one on
// first access.
func getOrCreateCart(ctx context.Context, db *mongo.Database, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Collection("carts").FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err == nil {
		return &cart, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	cart = models.Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		Items:     []models.CartItem{},
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := db.Collection("carts").InsertOne(ctx, cart); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost a race against another request for the same user.
			if err := db.Collection("carts").FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
				return nil, err
			}
			return &cart, nil
		}
		return nil, err
	}
	return &cart, nil
}

func saveCartItems(ctx context.Context, db *mongo.Database, cart *models.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	_, err := db.Collection("carts").UpdateOne(ctx, bson.M{"id": cart.ID}, bson.M{"$set": bson.M{
		"items":      cart.Items,
		"updated_at": cart.UpdatedAt,
	}})
	return err
}

func sameColor(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func GetCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/cart"
		defer handlePanic(c, route)

		userID, ok := requireUserID(c, route)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		cart, err := getOrCreateCart(ctx, db, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

// AddCartItem merges quantity into an existing line when the product and
// selected color match, otherwise appends a new line snapshotting the
// product's display fields.
func AddCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/cart/items"
		defer handlePanic(c, route)

		userID, ok := requireUserID(c, route)
		if !ok {
			return
		}

		var req cartAddRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var product models.Product
		err := db.Collection("products").FindOne(ctx, bson.M{"id": req.ProductID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		cart, err := getOrCreateCart(ctx, db, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		merged := false
		for i := range cart.Items {
			if cart.Items[i].ProductID == req.ProductID && sameColor(cart.Items[i].SelectedColor, req.SelectedColor) {
				cart.Items[i].Quantity += req.Quantity
				merged = true
				break
			}
		}
		if !merged {
			cart.Items = append(cart.Items, models.CartItem{
				ProductID:     product.ID,
				Name:          product.Name,
				Price:         product.Price,
				Image:         product.Image,
				Quantity:      req.Quantity,
				SelectedColor: req.SelectedColor,
			})
		}

		if err := saveCartItems(ctx, db, cart); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] product %s added to cart of user %s", route, req.ProductID, userID)
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

func UpdateCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/cart/items/:product_id"
		defer handlePanic(c, route)

		userID, ok := requireUserID(c, route)
		if !ok {
			return
		}

		var req cartUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		cart, err := getOrCreateCart(ctx, db, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		productID := c.Param("product_id")
		found := false
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				cart.Items[i].Quantity = req.Quantity
				found = true
				break
			}
		}
		if !found {
			respondWithError(c, http.StatusNotFound, route, "item not in cart")
			return
		}

		if err := saveCartItems(ctx, db, cart); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

func RemoveCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/cart/items/:product_id"
		defer handlePanic(c, route)

		userID, ok := requireUserID(c, route)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		cart, err := getOrCreateCart(ctx, db, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		productID := c.Param("product_id")
		kept := cart.Items[:0]
		removed := false
		for _, item := range cart.Items {
			if item.ProductID == productID {
				removed = true
				continue
			}
			kept = append(kept, item)
		}
		if !removed {
			respondWithError(c, http.StatusNotFound, route, "item not in cart")
			return
		}
		cart.Items = kept

		if err := saveCartItems(ctx, db, cart); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] product %s removed from cart of user %s", route, productID, userID)
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

func ClearCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/cart"
		defer handlePanic(c, route)

		userID, ok := requireUserID(c, route)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		cart, err := getOrCreateCart(ctx, db, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		cart.Items = []models.CartItem{}
		if err := saveCartItems(ctx, db, cart); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}
