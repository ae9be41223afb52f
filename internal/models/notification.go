package models

import "time"

const (
	NotificationWishlist = "wishlist"
	NotificationOrder    = "order"
	NotificationContact  = "contact"
	NotificationSystem   = "system"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    *int      `json:"user_id,omitempty"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	Unread        int            `json:"unread"`
}

type ContactMessage struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	ContactStatusOpen     = "open"
	ContactStatusResolved = "resolved"
)

type ContactRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=256"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,min=1,max=256"`
	Message string `json:"message" binding:"required,min=1"`
}

type ContactStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open resolved"`
}

type ContactListResponse struct {
	Contacts []ContactMessage `json:"contacts"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

type ChatRequest struct {
	Message string        `json:"message" binding:"required,min=1"`
	History []ChatMessage `json:"history" binding:"dive"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
