package handlers

import (
	"database/sql"
	"fmt"
	"net/http"

	"storefront-backend/internal/database"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/models"
	"storefront-backend/internal/payments"
	"storefront-backend/internal/state"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	orderQueries        *database.OrderQueries
	notificationQueries *database.NotificationQueries
	stripe              *payments.StripeService
	states              *state.Store
}

func NewPaymentHandler(db *sql.DB, stripe *payments.StripeService, states *state.Store) *PaymentHandler {
	return &PaymentHandler{
		orderQueries:        database.NewOrderQueries(db),
		notificationQueries: database.NewNotificationQueries(db),
		stripe:              stripe,
		states:              states,
	}
}

// CreatePaymentIntent opens a Stripe intent for a pending order and hands
// the client secret back for browser-side confirmation.
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	if !h.stripe.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Card payments are not available"})
		return
	}

	var req models.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderQueries.GetOrderByID(req.OrderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
		return
	}
	if order.Status != models.OrderStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order is not awaiting payment"})
		return
	}

	intent, err := h.stripe.CreateIntent(order.ID, order.TotalAmount, order.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}

	if err := h.orderQueries.SetPaymentIntent(order.ID, intent.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment intent"})
		return
	}

	c.JSON(http.StatusOK, models.PaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	})
}

// ConfirmPayment verifies the intent with Stripe after the browser
// redirect, marks the order paid and empties the cart slot.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	if !h.stripe.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Card payments are not available"})
		return
	}

	var req models.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderQueries.GetOrderByID(req.OrderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
		return
	}

	succeeded, err := h.stripe.VerifyIntent(req.PaymentIntentID, order.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to verify payment", "details": err.Error()})
		return
	}
	if !succeeded {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment has not succeeded"})
		return
	}

	if order.Status != models.OrderStatusPaid {
		if err := h.orderQueries.MarkOrderPaid(order.ID, req.PaymentIntentID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		_, _ = h.notificationQueries.CreateNotification(&userID, models.NotificationOrder,
			fmt.Sprintf("Payment received for order #%d", order.ID))
	}

	// Checkout is complete, reset the cart slot.
	ctx := c.Request.Context()
	h.states.Load(ctx, userStateKey(userID)).ResetCart(ctx)

	c.JSON(http.StatusOK, gin.H{"message": "Payment confirmed", "order_id": order.ID})
}
