package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"storefront-backend/internal/database"
	"storefront-backend/internal/models"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productQueries  *database.ProductQueries
	categoryQueries *database.CategoryQueries
	brandQueries    *database.BrandQueries
}

func NewProductHandler(db *sql.DB) *ProductHandler {
	return &ProductHandler{
		productQueries:  database.NewProductQueries(db),
		categoryQueries: database.NewCategoryQueries(db),
		brandQueries:    database.NewBrandQueries(db),
	}
}

// ListProducts is the public catalog listing. Filtering happens in SQL
// only; the accepted parameters are search, category, brand, minPrice,
// maxPrice, page and limit.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 12
	}

	filter := &models.ProductFilter{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	if slug := c.Query("category"); slug != "" {
		category, err := h.categoryQueries.GetCategoryBySlug(slug)
		if err == nil {
			filter.CategoryID = &category.ID
		}
	}
	if slug := c.Query("brand"); slug != "" {
		brand, err := h.brandQueries.GetBrandBySlug(slug)
		if err == nil {
			filter.BrandID = &brand.ID
		}
	}
	if raw := c.Query("minPrice"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil && price >= 0 {
			filter.MinPrice = &price
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil && price >= 0 {
			filter.MaxPrice = &price
		}
	}

	products, total, err := h.productQueries.ListProducts(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, models.ProductListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		Limit:    limit,
	})
}

// GetProduct returns one product; the identifier arrives as the `_id`
// query parameter.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Query("_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.productQueries.GetProduct(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.productQueries.CreateProduct(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.productQueries.UpdateProduct(id, &req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// RemoveProduct deletes by the `_id` carried in the request body, matching
// the storefront's remove call.
func (h *ProductHandler) RemoveProduct(c *gin.Context) {
	var req models.ProductRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.productQueries.DeleteProduct(req.ID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product removed"})
}
