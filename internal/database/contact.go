package database

import (
	"database/sql"
	"fmt"

	"storefront-backend/internal/models"
)

type ContactQueries struct {
	db *sql.DB
}

func NewContactQueries(db *sql.DB) *ContactQueries {
	return &ContactQueries{db: db}
}

func (q *ContactQueries) CreateContact(req *models.ContactRequest) (*models.ContactMessage, error) {
	contact := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.ContactStatusOpen,
	}

	query := `
		INSERT INTO contact_messages (name, email, subject, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := q.db.QueryRow(query, contact.Name, contact.Email, contact.Subject, contact.Message, contact.Status).Scan(
		&contact.ID, &contact.CreatedAt, &contact.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}
	return contact, nil
}

func (q *ContactQueries) ListContacts(page, limit int) ([]models.ContactMessage, int, error) {
	var total int
	if err := q.db.QueryRow(`SELECT COUNT(*) FROM contact_messages`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contact messages: %w", err)
	}

	query := `
		SELECT id, name, email, subject, message, status, created_at, updated_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := q.db.Query(query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	contacts := []models.ContactMessage{}
	for rows.Next() {
		var contact models.ContactMessage
		if err := rows.Scan(
			&contact.ID, &contact.Name, &contact.Email, &contact.Subject,
			&contact.Message, &contact.Status, &contact.CreatedAt, &contact.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact message: %w", err)
		}
		contacts = append(contacts, contact)
	}
	return contacts, total, rows.Err()
}

func (q *ContactQueries) UpdateContactStatus(id int, status string) error {
	result, err := q.db.Exec(`UPDATE contact_messages SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update contact message: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("contact message not found")
	}
	return nil
}

func (q *ContactQueries) DeleteContact(id int) error {
	result, err := q.db.Exec(`DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("contact message not found")
	}
	return nil
}
