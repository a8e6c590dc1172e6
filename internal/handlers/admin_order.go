package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"lrstore/internal/middleware"
	"lrstore/internal/models"
	"lrstore/internal/orders"
	"lrstore/internal/store"
)

type adminOrderUpdateRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"payment_status"`
}

func parseISODate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// AdminListOrders pages through orders filtered by status, payment status and
// creation date range (inclusive days, YYYY-MM-DD).
func AdminListOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/orders"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"), 20)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		from, err := parseISODate(c.Query("date_from"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "date_from must be YYYY-MM-DD")
			return
		}
		to, err := parseISODate(c.Query("date_to"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "date_to must be YYYY-MM-DD")
			return
		}

		list, total, err := svc.List(c.Request.Context(), store.OrderListFilter{
			Status:        strings.TrimSpace(c.Query("status")),
			PaymentStatus: strings.TrimSpace(c.Query("payment_status")),
			From:          from,
			To:            to,
			Page:          page,
			Limit:         limit,
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders":     list,
			"pagination": buildPagination(total, page, limit),
		})
	}
}

func AdminGetOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/orders/:order_number"
		defer handlePanic(c, route)

		order, err := svc.GetByNumber(c.Request.Context(), c.Param("order_number"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// AdminUpdateOrder patches the fulfillment and payment statuses and records
// the change in the activity log. The log write is best-effort.
func AdminUpdateOrder(svc *orders.Service, db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/orders/:order_number"
		defer handlePanic(c, route)

		var req adminOrderUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		orderNumber := c.Param("order_number")
		order, err := svc.UpdateStatus(c.Request.Context(), orderNumber, orders.StatusUpdate{
			Status:        req.Status,
			PaymentStatus: req.PaymentStatus,
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		if admin, ok := middleware.AdminUserFrom(c); ok {
			logEntry := models.ActivityLog{
				ID:        uuid.NewString(),
				UserID:    admin.ID,
				Action:    "order_status_update",
				Detail:    fmt.Sprintf("order %s set to status=%s payment_status=%s", orderNumber, order.Status, order.PaymentStatus),
				CreatedAt: time.Now().UTC(),
			}
			ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
			if _, err := db.Collection("activity_logs").InsertOne(ctx, logEntry); err != nil {
				log.Printf("[%s] activity log write failed: %v", route, err)
			}
			cancel()
		}

		log.Printf("[%s] order %s updated", route, orderNumber)
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}
