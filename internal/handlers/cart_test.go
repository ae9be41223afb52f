package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-backend/internal/state"

	"github.com/gin-gonic/gin"
)

func newCartRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	states := state.NewStore(state.NewMemoryPersister(), nil)
	handler := NewCartHandler(states)

	r := gin.New()
	// Pin the guest slot so every request in a test hits the same state.
	r.Use(func(c *gin.Context) {
		c.Set("session_id", "test-session")
		c.Next()
	})

	cart := r.Group("/api/cart")
	{
		cart.GET("", handler.GetCart)
		cart.POST("/add", handler.AddToCart)
		cart.PUT("/increment/:productId", handler.IncrementQuantity)
		cart.PUT("/decrement/:productId", handler.DecrementQuantity)
		cart.DELETE("/remove/:productId", handler.RemoveLineItem)
		cart.POST("/clear", handler.ClearCart)
	}
	wishlist := r.Group("/api/wishlist")
	{
		wishlist.GET("", handler.GetWishlist)
		wishlist.POST("/toggle", handler.ToggleWishlist)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return out
}

func TestCartAddMergesAcrossRequests(t *testing.T) {
	r := newCartRouter(t)

	product := state.ProductSnapshot{ProductID: "p1", Name: "Mug", Price: 12.5}

	w := doJSON(t, r, http.MethodPost, "/api/cart/add", gin.H{"product": product, "quantity": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	// Adding the same product again merges into the existing line item.
	w = doJSON(t, r, http.MethodPost, "/api/cart/add", gin.H{"product": product, "quantity": 3})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if got := body["total_items"].(float64); got != 5 {
		t.Errorf("Expected 5 total items after merge, got %v", got)
	}
	cart := body["cart"].([]interface{})
	if len(cart) != 1 {
		t.Errorf("Expected a single merged line item, got %d", len(cart))
	}
}

func TestCartAddRequiresProductID(t *testing.T) {
	r := newCartRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/cart/add", gin.H{
		"product":  state.ProductSnapshot{Name: "No ID"},
		"quantity": 1,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestCartQuantityEndpoints(t *testing.T) {
	r := newCartRouter(t)

	product := state.ProductSnapshot{ProductID: "p1", Name: "Mug", Price: 10}
	doJSON(t, r, http.MethodPost, "/api/cart/add", gin.H{"product": product, "quantity": 1})

	w := doJSON(t, r, http.MethodPut, "/api/cart/increment/p1", nil)
	body := decodeBody(t, w)
	if got := body["total_items"].(float64); got != 2 {
		t.Errorf("Expected 2 items after increment, got %v", got)
	}

	// Decrement stops at one instead of removing the item.
	doJSON(t, r, http.MethodPut, "/api/cart/decrement/p1", nil)
	w = doJSON(t, r, http.MethodPut, "/api/cart/decrement/p1", nil)
	body = decodeBody(t, w)
	if got := body["total_items"].(float64); got != 1 {
		t.Errorf("Expected decrement to floor at 1, got %v", got)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/cart/remove/p1", nil)
	body = decodeBody(t, w)
	if got := body["total_items"].(float64); got != 0 {
		t.Errorf("Expected empty cart after remove, got %v", got)
	}
}

func TestCartClear(t *testing.T) {
	r := newCartRouter(t)

	doJSON(t, r, http.MethodPost, "/api/cart/add", gin.H{
		"product": state.ProductSnapshot{ProductID: "p1", Name: "Mug", Price: 10}, "quantity": 2,
	})
	doJSON(t, r, http.MethodPost, "/api/cart/add", gin.H{
		"product": state.ProductSnapshot{ProductID: "p2", Name: "Shirt", Price: 25}, "quantity": 1,
	})

	w := doJSON(t, r, http.MethodPost, "/api/cart/clear", nil)
	body := decodeBody(t, w)
	if got := body["total_items"].(float64); got != 0 {
		t.Errorf("Expected empty cart after clear, got %v", got)
	}
}

func TestWishlistToggleEndpoint(t *testing.T) {
	r := newCartRouter(t)

	product := state.ProductSnapshot{ProductID: "p9", Name: "Poster", Price: 5}

	w := doJSON(t, r, http.MethodPost, "/api/wishlist/toggle", gin.H{"product": product})
	body := decodeBody(t, w)
	if got := body["wishlisted"].(bool); !got {
		t.Error("Expected product to be wishlisted after first toggle")
	}

	w = doJSON(t, r, http.MethodPost, "/api/wishlist/toggle", gin.H{"product": product})
	body = decodeBody(t, w)
	if got := body["wishlisted"].(bool); got {
		t.Error("Expected second toggle to remove the product")
	}

	w = doJSON(t, r, http.MethodGet, "/api/wishlist", nil)
	body = decodeBody(t, w)
	if got := body["total"].(float64); got != 0 {
		t.Errorf("Expected empty wishlist, got %v entries", got)
	}
}
