package handlers

import (
	"database/sql"
	"net/http"

	"storefront-backend/internal/database"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	orderQueries *database.OrderQueries
}

func NewDashboardHandler(db *sql.DB) *DashboardHandler {
	return &DashboardHandler{orderQueries: database.NewOrderQueries(db)}
}

// Stats returns the aggregate counters for the admin home page.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.orderQueries.DashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
