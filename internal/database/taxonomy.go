package database

import (
	"database/sql"
	"fmt"

	"storefront-backend/internal/models"
)

type CategoryQueries struct {
	db *sql.DB
}

func NewCategoryQueries(db *sql.DB) *CategoryQueries {
	return &CategoryQueries{db: db}
}

func (q *CategoryQueries) CreateCategory(req *models.CategoryRequest) (*models.Category, error) {
	category := &models.Category{Name: req.Name, Slug: req.Slug}
	query := `
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	err := q.db.QueryRow(query, category.Name, category.Slug).Scan(
		&category.ID, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (q *CategoryQueries) ListCategories() ([]models.Category, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM categories ORDER BY name`
	rows, err := q.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (q *CategoryQueries) GetCategoryBySlug(slug string) (*models.Category, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM categories WHERE slug = $1`
	category := &models.Category{}
	err := q.db.QueryRow(query, slug).Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("category not found")
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (q *CategoryQueries) UpdateCategory(id int, req *models.CategoryRequest) (*models.Category, error) {
	category := &models.Category{ID: id, Name: req.Name, Slug: req.Slug}
	query := `
		UPDATE categories
		SET name = $1, slug = $2
		WHERE id = $3
		RETURNING created_at, updated_at
	`
	err := q.db.QueryRow(query, category.Name, category.Slug, id).Scan(&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("category not found")
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (q *CategoryQueries) DeleteCategory(id int) error {
	result, err := q.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("category not found")
	}
	return nil
}

type BrandQueries struct {
	db *sql.DB
}

func NewBrandQueries(db *sql.DB) *BrandQueries {
	return &BrandQueries{db: db}
}

func (q *BrandQueries) CreateBrand(req *models.BrandRequest) (*models.Brand, error) {
	brand := &models.Brand{Name: req.Name, Slug: req.Slug}
	query := `
		INSERT INTO brands (name, slug)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	err := q.db.QueryRow(query, brand.Name, brand.Slug).Scan(&brand.ID, &brand.CreatedAt, &brand.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}
	return brand, nil
}

func (q *BrandQueries) ListBrands() ([]models.Brand, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM brands ORDER BY name`
	rows, err := q.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	brands := []models.Brand{}
	for rows.Next() {
		var brand models.Brand
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.Slug, &brand.CreatedAt, &brand.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, brand)
	}
	return brands, rows.Err()
}

func (q *BrandQueries) GetBrandBySlug(slug string) (*models.Brand, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM brands WHERE slug = $1`
	brand := &models.Brand{}
	err := q.db.QueryRow(query, slug).Scan(&brand.ID, &brand.Name, &brand.Slug, &brand.CreatedAt, &brand.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("brand not found")
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	return brand, nil
}

func (q *BrandQueries) UpdateBrand(id int, req *models.BrandRequest) (*models.Brand, error) {
	brand := &models.Brand{ID: id, Name: req.Name, Slug: req.Slug}
	query := `
		UPDATE brands
		SET name = $1, slug = $2
		WHERE id = $3
		RETURNING created_at, updated_at
	`
	err := q.db.QueryRow(query, brand.Name, brand.Slug, id).Scan(&brand.CreatedAt, &brand.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("brand not found")
		}
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}
	return brand, nil
}

func (q *BrandQueries) DeleteBrand(id int) error {
	result, err := q.db.Exec(`DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("brand not found")
	}
	return nil
}
