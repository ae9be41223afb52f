package database

import (
	"database/sql"
	"fmt"

	"storefront-backend/internal/models"
)

type ImageQueries struct {
	db *sql.DB
}

func NewImageQueries(db *sql.DB) *ImageQueries {
	return &ImageQueries{db: db}
}

func (q *ImageQueries) CreateImage(image *models.Image) error {
	query := `
		INSERT INTO images (filename, original_name, path, size_bytes, mime_type, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := q.db.QueryRow(query,
		image.Filename, image.OriginalName, image.Path,
		image.SizeBytes, image.MimeType, image.UploadedBy,
	).Scan(&image.ID, &image.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	return nil
}

func (q *ImageQueries) GetImageByID(id int) (*models.Image, error) {
	query := `
		SELECT id, filename, original_name, path, size_bytes, mime_type, uploaded_by, created_at
		FROM images
		WHERE id = $1
	`
	image := &models.Image{}
	err := q.db.QueryRow(query, id).Scan(
		&image.ID, &image.Filename, &image.OriginalName, &image.Path,
		&image.SizeBytes, &image.MimeType, &image.UploadedBy, &image.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("image not found")
		}
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return image, nil
}

func (q *ImageQueries) ListImages(page, limit int) ([]models.Image, int, error) {
	var total int
	if err := q.db.QueryRow(`SELECT COUNT(*) FROM images`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count images: %w", err)
	}

	query := `
		SELECT id, filename, original_name, path, size_bytes, mime_type, uploaded_by, created_at
		FROM images
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := q.db.Query(query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	images := []models.Image{}
	for rows.Next() {
		var image models.Image
		if err := rows.Scan(
			&image.ID, &image.Filename, &image.OriginalName, &image.Path,
			&image.SizeBytes, &image.MimeType, &image.UploadedBy, &image.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, image)
	}
	return images, total, rows.Err()
}

func (q *ImageQueries) DeleteImage(id int) (*models.Image, error) {
	image, err := q.GetImageByID(id)
	if err != nil {
		return nil, err
	}
	if _, err := q.db.Exec(`DELETE FROM images WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to delete image: %w", err)
	}
	return image, nil
}
