package database

import (
	"database/sql"
	"fmt"
	"strings"

	"storefront-backend/internal/models"
)

type ProductQueries struct {
	db *sql.DB
}

func NewProductQueries(db *sql.DB) *ProductQueries {
	return &ProductQueries{db: db}
}

func (q *ProductQueries) CreateProduct(req *models.ProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		Badge:       req.Badge,
		Stock:       req.Stock,
	}

	query := `
		INSERT INTO products (name, price, description, image, category_id, brand_id, badge, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := q.db.QueryRow(query,
		product.Name, product.Price, product.Description, product.Image,
		product.CategoryID, product.BrandID, product.Badge, product.Stock,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (q *ProductQueries) GetProduct(id int) (*models.ProductWithRelations, error) {
	query := `
		SELECT p.id, p.name, p.price, p.description, p.image, p.category_id, p.brand_id,
			p.badge, p.stock, p.created_at, p.updated_at,
			c.id, c.name, c.slug, c.created_at, c.updated_at,
			b.id, b.name, b.slug, b.created_at, b.updated_at
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		LEFT JOIN brands b ON p.brand_id = b.id
		WHERE p.id = $1
	`
	product := &models.ProductWithRelations{}
	var (
		catID, brandID         sql.NullInt64
		catName, catSlug       sql.NullString
		brandName, brandSlug   sql.NullString
		catCreated, catUpdated sql.NullTime
		brCreated, brUpdated   sql.NullTime
	)
	err := q.db.QueryRow(query, id).Scan(
		&product.ID, &product.Name, &product.Price, &product.Description, &product.Image,
		&product.CategoryID, &product.BrandID, &product.Badge, &product.Stock,
		&product.CreatedAt, &product.UpdatedAt,
		&catID, &catName, &catSlug, &catCreated, &catUpdated,
		&brandID, &brandName, &brandSlug, &brCreated, &brUpdated,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if catID.Valid {
		product.Category = &models.Category{
			ID:        int(catID.Int64),
			Name:      catName.String,
			Slug:      catSlug.String,
			CreatedAt: catCreated.Time,
			UpdatedAt: catUpdated.Time,
		}
	}
	if brandID.Valid {
		product.Brand = &models.Brand{
			ID:        int(brandID.Int64),
			Name:      brandName.String,
			Slug:      brandSlug.String,
			CreatedAt: brCreated.Time,
			UpdatedAt: brUpdated.Time,
		}
	}
	return product, nil
}

// ListProducts applies the filter in SQL; price bounds are never re-checked
// by callers.
func (q *ProductQueries) ListProducts(filter *models.ProductFilter) ([]models.ProductWithRelations, int, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	addCondition := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argPos))
		args = append(args, value)
		argPos++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}
	if filter.CategoryID != nil {
		addCondition("p.category_id = $%d", *filter.CategoryID)
	}
	if filter.BrandID != nil {
		addCondition("p.brand_id = $%d", *filter.BrandID)
	}
	if filter.MinPrice != nil {
		addCondition("p.price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		addCondition("p.price <= $%d", *filter.MaxPrice)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM products p %s`, where)
	var total int
	if err := q.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.price, p.description, p.image, p.category_id, p.brand_id,
			p.badge, p.stock, p.created_at, p.updated_at,
			c.id, c.name, c.slug, c.created_at, c.updated_at,
			b.id, b.name, b.slug, b.created_at, b.updated_at
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		LEFT JOIN brands b ON p.brand_id = b.id
		%s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.ProductWithRelations{}
	for rows.Next() {
		var product models.ProductWithRelations
		var (
			catID, brandID         sql.NullInt64
			catName, catSlug       sql.NullString
			brandName, brandSlug   sql.NullString
			catCreated, catUpdated sql.NullTime
			brCreated, brUpdated   sql.NullTime
		)
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Price, &product.Description, &product.Image,
			&product.CategoryID, &product.BrandID, &product.Badge, &product.Stock,
			&product.CreatedAt, &product.UpdatedAt,
			&catID, &catName, &catSlug, &catCreated, &catUpdated,
			&brandID, &brandName, &brandSlug, &brCreated, &brUpdated,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		if catID.Valid {
			product.Category = &models.Category{
				ID:        int(catID.Int64),
				Name:      catName.String,
				Slug:      catSlug.String,
				CreatedAt: catCreated.Time,
				UpdatedAt: catUpdated.Time,
			}
		}
		if brandID.Valid {
			product.Brand = &models.Brand{
				ID:        int(brandID.Int64),
				Name:      brandName.String,
				Slug:      brandSlug.String,
				CreatedAt: brCreated.Time,
				UpdatedAt: brUpdated.Time,
			}
		}
		products = append(products, product)
	}
	return products, total, rows.Err()
}

func (q *ProductQueries) UpdateProduct(id int, req *models.ProductRequest) (*models.Product, error) {
	product := &models.Product{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		Badge:       req.Badge,
		Stock:       req.Stock,
	}

	query := `
		UPDATE products
		SET name = $1, price = $2, description = $3, image = $4, category_id = $5, brand_id = $6, badge = $7, stock = $8
		WHERE id = $9
		RETURNING created_at, updated_at
	`
	err := q.db.QueryRow(query,
		product.Name, product.Price, product.Description, product.Image,
		product.CategoryID, product.BrandID, product.Badge, product.Stock, id,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (q *ProductQueries) DeleteProduct(id int) error {
	result, err := q.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}
