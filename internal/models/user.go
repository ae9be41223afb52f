package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=256"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ProfileUpdateRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=256"`
	Email string `json:"email" binding:"required,email"`
}

type Address struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	Label        string    `json:"label"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2"`
	City         string    `json:"city"`
	PostalCode   string    `json:"postal_code"`
	Country      string    `json:"country"`
	Phone        string    `json:"phone"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type AddressRequest struct {
	Label        string `json:"label" binding:"max=64"`
	AddressLine1 string `json:"address_line1" binding:"required,min=1,max=256"`
	AddressLine2 string `json:"address_line2" binding:"max=256"`
	City         string `json:"city" binding:"required,min=1,max=128"`
	PostalCode   string `json:"postal_code" binding:"required,min=1,max=32"`
	Country      string `json:"country" binding:"required,min=1,max=128"`
	Phone        string `json:"phone" binding:"max=32"`
	IsDefault    bool   `json:"is_default"`
}

type UserListResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}
