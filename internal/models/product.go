package models

import "time"

type Product struct {
	ID          int       `json:"_id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CategoryID  *int      `json:"category_id"`
	BrandID     *int      `json:"brand_id"`
	Badge       bool      `json:"badge"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductWithRelations struct {
	Product
	Category *Category `json:"category,omitempty"`
	Brand    *Brand    `json:"brand,omitempty"`
}

type ProductRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=256"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Description string  `json:"description" binding:"required,min=1"`
	Image       string  `json:"image"`
	CategoryID  *int    `json:"category_id"`
	BrandID     *int    `json:"brand_id"`
	Badge       bool    `json:"badge"`
	Stock       int     `json:"stock" binding:"min=0"`
}

type ProductRemoveRequest struct {
	ID int `json:"_id" binding:"required"`
}

// ProductFilter carries the single explicit listing contract: one name per
// parameter, price bounds applied server-side only.
type ProductFilter struct {
	Search     string
	CategoryID *int
	BrandID    *int
	MinPrice   *float64
	MaxPrice   *float64
	Page       int
	Limit      int
}

type ProductListResponse struct {
	Products []ProductWithRelations `json:"products"`
	Total    int                    `json:"total"`
	Page     int                    `json:"page"`
	Limit    int                    `json:"limit"`
}

type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=256"`
	Slug string `json:"slug" binding:"required,min=1,max=256"`
}

type Brand struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BrandRequest struct {
	Name string `json:"name" binding:"required,min=1,max=256"`
	Slug string `json:"slug" binding:"required,min=1,max=256"`
}

type Image struct {
	ID           int       `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	Path         string    `json:"path"`
	SizeBytes    int64     `json:"size_bytes"`
	MimeType     string    `json:"mime_type"`
	UploadedBy   int       `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
}

type ImageListResponse struct {
	Images []Image `json:"images"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}
