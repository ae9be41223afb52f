package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"

	PaymentMethodStripe         = "stripe"
	PaymentMethodCashOnDelivery = "cod"
)

type Order struct {
	ID              int        `json:"id"`
	UserID          int        `json:"user_id"`
	Email           string     `json:"email"`
	Status          string     `json:"status"`
	PaymentMethod   string     `json:"payment_method"`
	PaymentIntentID *string    `json:"payment_intent_id,omitempty"`
	Subtotal        float64    `json:"subtotal"`
	ShippingCost    float64    `json:"shipping_cost"`
	TotalAmount     float64    `json:"total_amount"`
	ShippingAddress string     `json:"shipping_address"`
	Notes           string     `json:"notes"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type OrderItem struct {
	ID        int     `json:"id"`
	OrderID   int     `json:"order_id"`
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type OrderWithItems struct {
	Order
	Items []OrderItem `json:"items"`
}

type OrderItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}

type OrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod   string             `json:"payment_method" binding:"required,oneof=stripe cod"`
	ShippingAddress string             `json:"shipping_address" binding:"required,min=1"`
	Notes           string             `json:"notes"`
}

type OrderStatusUpdateRequest struct {
	OrderID int    `json:"order_id" binding:"required"`
	Status  string `json:"status" binding:"required,oneof=pending paid shipped delivered cancelled"`
}

type OrderDeleteRequest struct {
	OrderID int `json:"order_id" binding:"required"`
}

type OrderListResponse struct {
	Orders []OrderWithItems `json:"orders"`
	Total  int              `json:"total"`
	Page   int              `json:"page"`
	Limit  int              `json:"limit"`
}

type PaymentIntentRequest struct {
	OrderID int `json:"order_id" binding:"required"`
}

type PaymentIntentResponse struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
}

type ConfirmPaymentRequest struct {
	OrderID         int    `json:"order_id" binding:"required"`
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

type DashboardStats struct {
	Users         int     `json:"users"`
	Products      int     `json:"products"`
	Orders        int     `json:"orders"`
	PendingOrders int     `json:"pending_orders"`
	Revenue       float64 `json:"revenue"`
	Contacts      int     `json:"contacts"`
}
