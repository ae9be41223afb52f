package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"

	"storefront-backend/internal/database"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/models"
	"storefront-backend/internal/state"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderQueries        *database.OrderQueries
	productQueries      *database.ProductQueries
	notificationQueries *database.NotificationQueries
	states              *state.Store
}

func NewOrderHandler(db *sql.DB, states *state.Store) *OrderHandler {
	return &OrderHandler{
		orderQueries:        database.NewOrderQueries(db),
		productQueries:      database.NewProductQueries(db),
		notificationQueries: database.NewNotificationQueries(db),
		states:              states,
	}
}

// CreateOrder prices the submitted line items from the live catalog,
// reserves stock and records the order as pending.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, _ := c.Get("user_email")
	emailStr, _ := email.(string)

	var subtotal float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		product, err := h.productQueries.GetProduct(line.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Product %d not found", line.ProductID)})
			return
		}
		if product.Stock < line.Quantity {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":           "Insufficient stock available",
				"product_id":      product.ID,
				"available_stock": product.Stock,
			})
			return
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			UnitPrice: product.Price,
			Quantity:  line.Quantity,
		})
		subtotal += product.Price * float64(line.Quantity)
	}

	shippingCost := 0.0 // flat free shipping
	order := &models.Order{
		UserID:          userID,
		Email:           emailStr,
		Status:          models.OrderStatusPending,
		PaymentMethod:   req.PaymentMethod,
		Subtotal:        subtotal,
		ShippingCost:    shippingCost,
		TotalAmount:     subtotal + shippingCost,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	}

	created, err := h.orderQueries.CreateOrder(order, items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order", "details": err.Error()})
		return
	}

	// Admin-wide feed entry; user_id nil means admins only.
	_, _ = h.notificationQueries.CreateNotification(nil, models.NotificationOrder,
		fmt.Sprintf("New order #%d for %.2f", created.ID, created.TotalAmount))

	// Refresh the cached badge count in the user's state slot.
	ctx := c.Request.Context()
	container := h.states.Load(ctx, userStateKey(userID))
	if count, err := h.orderQueries.CountOrdersByUser(userID); err == nil {
		container.SetOrderCount(ctx, count)
	}
	// Cash orders complete here; card orders reset the cart after payment
	// confirmation instead.
	if req.PaymentMethod == models.PaymentMethodCashOnDelivery {
		container.ResetCart(ctx)
	}

	c.JSON(http.StatusCreated, gin.H{"order": created})
}

func (h *OrderHandler) MyOrders(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	page, limit := pagination(c, 20)
	orders, total, err := h.orderQueries.ListOrdersByUser(userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, models.OrderListResponse{Orders: orders, Total: total, Page: page, Limit: limit})
}

func (h *OrderHandler) AllOrders(c *gin.Context) {
	page, limit := pagination(c, 20)
	orders, total, err := h.orderQueries.ListAllOrders(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, models.OrderListResponse{Orders: orders, Total: total, Page: page, Limit: limit})
}

// GetOrder returns one order. Customers can only read their own; admins
// can read any.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := h.orderQueries.GetOrderByID(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	userID, _ := middleware.UserID(c)
	role, _ := c.Get("user_role")
	if order.UserID != userID && role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req models.OrderStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.orderQueries.UpdateOrderStatus(req.OrderID, req.Status); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	order, err := h.orderQueries.GetOrderByID(req.OrderID)
	if err == nil {
		_, _ = h.notificationQueries.CreateNotification(&order.UserID, models.NotificationOrder,
			fmt.Sprintf("Order #%d is now %s", order.ID, req.Status))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	var req models.OrderDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.orderQueries.DeleteOrder(req.OrderID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

func pagination(c *gin.Context, defaultLimit int) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}
