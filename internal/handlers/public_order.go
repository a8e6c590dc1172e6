package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"lrstore/internal/models"
	"lrstore/internal/orders"
)

/* =========================
   REQUEST DTOs
========================= */

type createOrderCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
}

type createOrderItemRequest struct {
	ProductID     string  `json:"product_id" binding:"required"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity" binding:"required,gt=0"`
	SelectedColor *string `json:"selected_color"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
}

type createOrderRequest struct {
	UserID        *string                    `json:"user_id"`
	Customer      createOrderCustomerRequest `json:"customer" binding:"required"`
	Items         []createOrderItemRequest   `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string                     `json:"payment_method" binding:"required"`
	Total         float64                    `json:"total" binding:"required"`
}

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, models.OrderItem{
				ProductID:     item.ProductID,
				Name:          strings.TrimSpace(item.Name),
				Quantity:      item.Quantity,
				SelectedColor: item.SelectedColor,
				Price:         item.Price,
				Image:         item.Image,
			})
		}

		order, err := svc.Create(c.Request.Context(), orders.CreateInput{
			UserID: req.UserID,
			Customer: models.OrderCustomer{
				Name:    strings.TrimSpace(req.Customer.Name),
				Email:   req.Customer.Email,
				Phone:   strings.TrimSpace(req.Customer.Phone),
				Address: strings.TrimSpace(req.Customer.Address),
				City:    strings.TrimSpace(req.Customer.City),
			},
			Items:         items,
			PaymentMethod: req.PaymentMethod,
			Total:         req.Total,
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Printf("[%s] order created: %s", route, order.OrderNumber)
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

/* =========================
   GET ORDER
========================= */

func GetOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/:order_number"
		defer handlePanic(c, route)

		order, err := svc.GetByNumber(c.Request.Context(), c.Param("order_number"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

/* =========================
   MY ORDERS
========================= */

func GetMyOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/my"
		defer handlePanic(c, route)

		limit := int64(0)
		if limitStr := strings.TrimSpace(c.Query("limit")); limitStr != "" {
			parsed, err := strconv.ParseInt(limitStr, 10, 64)
			if err != nil || parsed < 1 || parsed > 100 {
				respondWithError(c, http.StatusBadRequest, route, "limit must be between 1 and 100")
				return
			}
			limit = parsed
		}

		list, err := svc.ListForCustomer(
			c.Request.Context(),
			c.Query("user_id"),
			c.Query("email"),
			limit,
		)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}
