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

type supportMessageRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

type supportStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func CreateSupportMessage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/support/messages"
		defer handlePanic(c, route)

		var req supportMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		now := time.Now().UTC()
		message := models.SupportMessage{
			ID:        uuid.NewString(),
			Name:      strings.TrimSpace(req.Name),
			Email:     normalizeEmail(req.Email),
			Subject:   strings.TrimSpace(req.Subject),
			Message:   strings.TrimSpace(req.Message),
			Status:    models.SupportMessageStatusOpen,
			CreatedAt: now,
			UpdatedAt: now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		if _, err := db.Collection("support_messages").InsertOne(ctx, message); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] support message %s received from %s", route, message.ID, message.Email)
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}

func AdminListSupportMessages(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/support/messages"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"), 20)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			if status != models.SupportMessageStatusOpen && status != models.SupportMessageStatusClosed {
				respondWithError(c, http.StatusBadRequest, route, "invalid status filter")
				return
			}
			filter["status"] = status
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		total, err := db.Collection("support_messages").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		opts := options.Find().
			SetSort(bson.M{"created_at": -1}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := db.Collection("support_messages").Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		messages := make([]models.SupportMessage, 0)
		if err := cursor.All(ctx, &messages); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"messages":   messages,
			"pagination": buildPagination(total, page, limit),
		})
	}
}

func AdminUpdateSupportMessage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/support/messages/:id"
		defer handlePanic(c, route)

		var req supportStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if req.Status != models.SupportMessageStatusOpen && req.Status != models.SupportMessageStatusClosed {
			respondWithError(c, http.StatusBadRequest, route, "invalid status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		result, err := db.Collection("support_messages").UpdateOne(ctx,
			bson.M{"id": c.Param("id")},
			bson.M{"$set": bson.M{"status": req.Status, "updated_at": time.Now().UTC()}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "message not found")
			return
		}

		var message models.SupportMessage
		if err := db.Collection("support_messages").FindOne(ctx, bson.M{"id": c.Param("id")}).Decode(&message); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] support message %s set to %s", route, message.ID, message.Status)
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}
