package handlers

import (
	"database/sql"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"storefront-backend/internal/database"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxImageSize = 10 * 1024 * 1024

type ImageHandler struct {
	imageQueries *database.ImageQueries
	uploadDir    string
}

func NewImageHandler(db *sql.DB, uploadDir string) *ImageHandler {
	return &ImageHandler{
		imageQueries: database.NewImageQueries(db),
		uploadDir:    uploadDir,
	}
}

func (h *ImageHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if !isValidImageType(header.Header.Get("Content-Type")) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only JPEG, PNG, WebP and GIF are allowed"})
		return
	}

	if header.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size too large. Maximum 10MB allowed"})
		return
	}

	ext := filepath.Ext(header.Filename)
	filename := uuid.NewString() + ext

	if err := os.MkdirAll(h.uploadDir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload directory"})
		return
	}

	filePath := filepath.Join(h.uploadDir, filename)
	out, err := os.Create(filePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create file"})
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	userID, _ := middleware.UserID(c)
	image := &models.Image{
		Filename:     filename,
		OriginalName: header.Filename,
		Path:         filePath,
		SizeBytes:    header.Size,
		MimeType:     header.Header.Get("Content-Type"),
		UploadedBy:   userID,
	}

	if err := h.imageQueries.CreateImage(image); err != nil {
		// Clean up file if database save fails
		os.Remove(filePath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image metadata"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"image": image})
}

func (h *ImageHandler) ListImages(c *gin.Context) {
	page, limit := pagination(c, 20)
	images, total, err := h.imageQueries.ListImages(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list images"})
		return
	}

	c.JSON(http.StatusOK, models.ImageListResponse{
		Images: images,
		Total:  total,
		Page:   page,
		Limit:  limit,
	})
}

func (h *ImageHandler) DeleteImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image ID"})
		return
	}

	image, err := h.imageQueries.DeleteImage(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	// Remove the file from disk; the metadata row is already gone.
	os.Remove(image.Path)

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}

func isValidImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}
