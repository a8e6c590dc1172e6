package handlers

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lrstore/internal/config"
)

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// UploadImage stores a product or category image under the uploads dir and
// returns the public URL path.
func UploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/uploads"
		defer handlePanic(c, route)

		file, err := c.FormFile("file")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "missing file field")
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExtensions[ext] {
			respondWithError(c, http.StatusBadRequest, route, "unsupported file type")
			return
		}

		filename := uuid.NewString() + ext
		dest := filepath.Join(config.AppEnv.UploadsDir, filename)

		if err := c.SaveUploadedFile(file, dest); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not store file")
			return
		}

		log.Printf("[%s] stored %s (%d bytes)", route, filename, file.Size)
		c.JSON(http.StatusOK, gin.H{"url": "/uploads/" + filename})
	}
}
