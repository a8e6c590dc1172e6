package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lrstore/internal/payments"
)

type paymentReferenceRequest struct {
	OrderNumber string  `json:"order_number" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
}

type paymentExpressRequest struct {
	OrderNumber string  `json:"order_number" binding:"required"`
	Phone       string  `json:"phone" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
}

// GeneratePaymentReference issues a mocked Multicaixa reference for an order.
func GeneratePaymentReference(svc *payments.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/payments/multicaixa/reference"
		defer handlePanic(c, route)

		var req paymentReferenceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		result, err := svc.IssueReference(c.Request.Context(), req.OrderNumber, req.Amount)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Printf("[%s] reference %s issued for order %s", route, result.Reference, req.OrderNumber)
		c.JSON(http.StatusOK, result)
	}
}

// ProcessExpressPayment initiates a mocked Multicaixa Express payment.
func ProcessExpressPayment(svc *payments.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/payments/multicaixa/express"
		defer handlePanic(c, route)

		var req paymentExpressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		result, err := svc.IssueExpress(c.Request.Context(), req.OrderNumber, req.Phone, req.Amount)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Printf("[%s] express payment %s initiated for order %s", route, result.TransactionID, req.OrderNumber)
		c.JSON(http.StatusOK, result)
	}
}

// MockPayTransaction is the development-only stand-in for a gateway webhook.
func MockPayTransaction(svc *payments.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/payments/mock/pay/:transaction_id"
		defer handlePanic(c, route)

		result, err := svc.CompleteMock(c.Request.Context(), c.Param("transaction_id"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Printf("[%s] transaction %s marked paid", route, result.TransactionID)
		c.JSON(http.StatusOK, result)
	}
}

func GetPaymentStatus(svc *payments.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/payments/status/:transaction_id"
		defer handlePanic(c, route)

		result, err := svc.GetStatus(c.Request.Context(), c.Param("transaction_id"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
