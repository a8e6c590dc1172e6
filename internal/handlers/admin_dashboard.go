package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"lrstore/internal/models"
)

// AdminDashboard aggregates the back-office landing numbers: collection
// totals, revenue over paid orders, last-7-days order volume and the five
// best-selling products.
func AdminDashboard(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/dashboard"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		totalOrders, err := db.Collection("orders").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		totalProducts, err := db.Collection("products").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		totalUsers, err := db.Collection("users").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		pendingOrders, err := db.Collection("orders").CountDocuments(ctx, bson.M{"status": models.OrderStatusPending})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		revenue, err := sumPaidRevenue(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		weekAgo := time.Now().UTC().AddDate(0, 0, -7)
		recentOrders, err := db.Collection("orders").CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": weekAgo}})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		topProducts, err := aggregateTopProducts(ctx, db, 5)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"totals": gin.H{
				"orders":         totalOrders,
				"products":       totalProducts,
				"users":          totalUsers,
				"pending_orders": pendingOrders,
			},
			"revenue":            revenue,
			"orders_last_7_days": recentOrders,
			"top_products":       topProducts,
		})
	}
}

func sumPaidRevenue(ctx context.Context, db *mongo.Database) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"payment_status": "paid"}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total"}}}},
	}

	cursor, err := db.Collection("orders").Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

type topProduct struct {
	ProductID string  `bson:"_id" json:"product_id"`
	Name      string  `bson:"name" json:"name"`
	Sold      int64   `bson:"sold" json:"sold"`
	Revenue   float64 `bson:"revenue" json:"revenue"`
}

func aggregateTopProducts(ctx context.Context, db *mongo.Database, limit int64) ([]topProduct, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$items.product_id",
			"name":    bson.M{"$first": "$items.name"},
			"sold":    bson.M{"$sum": "$items.quantity"},
			"revenue": bson.M{"$sum": bson.M{"$multiply": []interface{}{"$items.price", "$items.quantity"}}},
		}}},
		{{Key: "$sort", Value: bson.M{"sold": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := db.Collection("orders").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]topProduct, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
