package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"

	"storefront-backend/internal/database"
	"storefront-backend/internal/models"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactQueries      *database.ContactQueries
	notificationQueries *database.NotificationQueries
}

func NewContactHandler(db *sql.DB) *ContactHandler {
	return &ContactHandler{
		contactQueries:      database.NewContactQueries(db),
		notificationQueries: database.NewNotificationQueries(db),
	}
}

// Create captures a support ticket from the public contact form.
func (h *ContactHandler) Create(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.contactQueries.CreateContact(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit message"})
		return
	}

	_, _ = h.notificationQueries.CreateNotification(nil, models.NotificationContact,
		fmt.Sprintf("New support message from %s: %s", contact.Name, contact.Subject))

	c.JSON(http.StatusCreated, gin.H{"message": "Message received", "contact": contact})
}

func (h *ContactHandler) List(c *gin.Context) {
	page, limit := pagination(c, 20)
	contacts, total, err := h.contactQueries.ListContacts(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, models.ContactListResponse{
		Contacts: contacts,
		Total:    total,
		Page:     page,
		Limit:    limit,
	})
}

func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	var req models.ContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.contactQueries.UpdateContactStatus(id, req.Status); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	if err := h.contactQueries.DeleteContact(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
