package database

import (
	"database/sql"
	"fmt"

	"storefront-backend/internal/models"
)

type AddressQueries struct {
	db *sql.DB
}

func NewAddressQueries(db *sql.DB) *AddressQueries {
	return &AddressQueries{db: db}
}

func (q *AddressQueries) CreateAddress(userID int, req *models.AddressRequest) (*models.Address, error) {
	if req.IsDefault {
		if err := q.clearDefault(userID); err != nil {
			return nil, err
		}
	}

	addr := &models.Address{
		UserID:       userID,
		Label:        req.Label,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		Phone:        req.Phone,
		IsDefault:    req.IsDefault,
	}

	query := `
		INSERT INTO addresses (user_id, label, address_line1, address_line2, city, postal_code, country, phone, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := q.db.QueryRow(query,
		addr.UserID, addr.Label, addr.AddressLine1, addr.AddressLine2,
		addr.City, addr.PostalCode, addr.Country, addr.Phone, addr.IsDefault,
	).Scan(&addr.ID, &addr.CreatedAt, &addr.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return addr, nil
}

func (q *AddressQueries) ListAddresses(userID int) ([]models.Address, error) {
	query := `
		SELECT id, user_id, label, address_line1, address_line2, city, postal_code, country, phone, is_default, created_at, updated_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC
	`
	rows, err := q.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer rows.Close()

	addresses := []models.Address{}
	for rows.Next() {
		var addr models.Address
		if err := rows.Scan(
			&addr.ID, &addr.UserID, &addr.Label, &addr.AddressLine1, &addr.AddressLine2,
			&addr.City, &addr.PostalCode, &addr.Country, &addr.Phone, &addr.IsDefault,
			&addr.CreatedAt, &addr.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, addr)
	}
	return addresses, rows.Err()
}

func (q *AddressQueries) DeleteAddress(userID, addressID int) error {
	result, err := q.db.Exec(`DELETE FROM addresses WHERE id = $1 AND user_id = $2`, addressID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("address not found")
	}
	return nil
}

func (q *AddressQueries) clearDefault(userID int) error {
	_, err := q.db.Exec(`UPDATE addresses SET is_default = false WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear default address: %w", err)
	}
	return nil
}
