package database

import (
	"database/sql"
	"fmt"

	"storefront-backend/internal/models"

	"github.com/google/uuid"
)

type NotificationQueries struct {
	db *sql.DB
}

func NewNotificationQueries(db *sql.DB) *NotificationQueries {
	return &NotificationQueries{db: db}
}

// CreateNotification appends an entry to the feed. A nil userID makes the
// entry visible to admins only.
func (q *NotificationQueries) CreateNotification(userID *int, kind, message string) (*models.Notification, error) {
	notification := &models.Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		Kind:    kind,
		Message: message,
	}

	query := `
		INSERT INTO notifications (id, user_id, kind, message)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := q.db.QueryRow(query, notification.ID, notification.UserID, notification.Kind, notification.Message).Scan(&notification.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return notification, nil
}

// ListNotifications returns the newest entries for the user, plus the
// admin-wide entries when forAdmin is set.
func (q *NotificationQueries) ListNotifications(userID int, forAdmin bool, limit int) ([]models.Notification, int, error) {
	where := `WHERE user_id = $1`
	if forAdmin {
		where = `WHERE user_id = $1 OR user_id IS NULL`
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, kind, message, read, created_at
		FROM notifications
		%s
		ORDER BY created_at DESC
		LIMIT $2
	`, where)

	rows, err := q.db.Query(query, userID, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	unread := 0
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		if !n.Read {
			unread++
		}
		notifications = append(notifications, n)
	}
	return notifications, unread, rows.Err()
}

func (q *NotificationQueries) MarkRead(id string, userID int) error {
	result, err := q.db.Exec(
		`UPDATE notifications SET read = true WHERE id = $1 AND (user_id = $2 OR user_id IS NULL)`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

func (q *NotificationQueries) MarkAllRead(userID int, forAdmin bool) error {
	query := `UPDATE notifications SET read = true WHERE user_id = $1`
	if forAdmin {
		query = `UPDATE notifications SET read = true WHERE user_id = $1 OR user_id IS NULL`
	}
	if _, err := q.db.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
