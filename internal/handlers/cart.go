package handlers

import (
	"fmt"
	"net/http"

	"storefront-backend/internal/middleware"
	"storefront-backend/internal/state"

	"github.com/gin-gonic/gin"
)

// CartHandler exposes the state container over REST. Every request loads
// the caller's slot, applies one transition and returns the new tree.
type CartHandler struct {
	states *state.Store
}

func NewCartHandler(states *state.Store) *CartHandler {
	return &CartHandler{states: states}
}

func userStateKey(userID int) string {
	return fmt.Sprintf("user:%d", userID)
}

func guestStateKey(sessionID string) string {
	return "guest:" + sessionID
}

// stateKey picks the slot: authenticated users are keyed by user ID so the
// cart follows them across devices, guests by the session cookie.
func stateKey(c *gin.Context) string {
	if userID, ok := middleware.UserID(c); ok {
		return userStateKey(userID)
	}
	return guestStateKey(middleware.GetSessionID(c))
}

func (h *CartHandler) load(c *gin.Context) *state.Container {
	return h.states.Load(c.Request.Context(), stateKey(c))
}

type cartItemRequest struct {
	Product  state.ProductSnapshot `json:"product" binding:"required"`
	Quantity int                   `json:"quantity"`
}

type wishlistRequest struct {
	Product state.ProductSnapshot `json:"product" binding:"required"`
}

func cartResponse(container *state.Container) gin.H {
	snapshot := container.Snapshot()
	return gin.H{
		"cart":        snapshot.Cart,
		"total_items": snapshot.TotalItems(),
		"subtotal":    snapshot.Subtotal(),
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartResponse(h.load(c)))
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Product.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	container := h.load(c)
	container.AddToCart(c.Request.Context(), req.Product, req.Quantity)
	c.JSON(http.StatusOK, cartResponse(container))
}

func (h *CartHandler) IncrementQuantity(c *gin.Context) {
	container := h.load(c)
	container.IncrementQuantity(c.Request.Context(), c.Param("productId"))
	c.JSON(http.StatusOK, cartResponse(container))
}

func (h *CartHandler) DecrementQuantity(c *gin.Context) {
	container := h.load(c)
	container.DecrementQuantity(c.Request.Context(), c.Param("productId"))
	c.JSON(http.StatusOK, cartResponse(container))
}

func (h *CartHandler) RemoveLineItem(c *gin.Context) {
	container := h.load(c)
	container.RemoveLineItem(c.Request.Context(), c.Param("productId"))
	c.JSON(http.StatusOK, cartResponse(container))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	container := h.load(c)
	container.ResetCart(c.Request.Context())
	c.JSON(http.StatusOK, cartResponse(container))
}

func (h *CartHandler) GetWishlist(c *gin.Context) {
	snapshot := h.load(c).Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"wishlist": snapshot.Wishlist,
		"total":    len(snapshot.Wishlist),
	})
}

func (h *CartHandler) ToggleWishlist(c *gin.Context) {
	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Product.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	container := h.load(c)
	container.ToggleWishlist(c.Request.Context(), req.Product)

	snapshot := container.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"wishlist":   snapshot.Wishlist,
		"total":      len(snapshot.Wishlist),
		"wishlisted": container.InWishlist(req.Product.ProductID),
	})
}
