package database

import (
	"database/sql"
	"fmt"
	"time"

	"storefront-backend/internal/models"
)

type OrderQueries struct {
	db *sql.DB
}

func NewOrderQueries(db *sql.DB) *OrderQueries {
	return &OrderQueries{db: db}
}

// CreateOrder inserts the order and its line items in one transaction and
// decrements product stock.
func (q *OrderQueries) CreateOrder(order *models.Order, items []models.OrderItem) (*models.OrderWithItems, error) {
	tx, err := q.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (user_id, email, status, payment_method, payment_intent_id, subtotal, shipping_cost, total_amount, shipping_address, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(query,
		order.UserID, order.Email, order.Status, order.PaymentMethod, order.PaymentIntentID,
		order.Subtotal, order.ShippingCost, order.TotalAmount, order.ShippingAddress, order.Notes,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range items {
		item := &items[i]
		item.OrderID = order.ID

		result, err := tx.Exec(
			`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
			item.Quantity, item.ProductID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve stock for product %d: %w", item.ProductID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to check stock update: %w", err)
		}
		if affected == 0 {
			return nil, fmt.Errorf("insufficient stock for product %d", item.ProductID)
		}

		err = tx.QueryRow(
			`INSERT INTO order_items (order_id, product_id, name, image, unit_price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			item.OrderID, item.ProductID, item.Name, item.Image, item.UnitPrice, item.Quantity,
		).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return &models.OrderWithItems{Order: *order, Items: items}, nil
}

func (q *OrderQueries) GetOrderByID(id int) (*models.OrderWithItems, error) {
	query := `
		SELECT id, user_id, email, status, payment_method, payment_intent_id, subtotal, shipping_cost, total_amount, shipping_address, notes, paid_at, created_at, updated_at
		FROM orders
		WHERE id = $1
	`
	order := models.Order{}
	err := q.db.QueryRow(query, id).Scan(
		&order.ID, &order.UserID, &order.Email, &order.Status, &order.PaymentMethod,
		&order.PaymentIntentID, &order.Subtotal, &order.ShippingCost, &order.TotalAmount,
		&order.ShippingAddress, &order.Notes, &order.PaidAt, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := q.getOrderItems(order.ID)
	if err != nil {
		return nil, err
	}
	return &models.OrderWithItems{Order: order, Items: items}, nil
}

func (q *OrderQueries) ListOrdersByUser(userID, page, limit int) ([]models.OrderWithItems, int, error) {
	var total int
	if err := q.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}
	orders, err := q.listOrders(`WHERE user_id = $1`, []interface{}{userID}, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (q *OrderQueries) ListAllOrders(page, limit int) ([]models.OrderWithItems, int, error) {
	var total int
	if err := q.db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}
	orders, err := q.listOrders("", nil, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (q *OrderQueries) listOrders(where string, args []interface{}, page, limit int) ([]models.OrderWithItems, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, email, status, payment_method, payment_intent_id, subtotal, shipping_cost, total_amount, shipping_address, notes, paid_at, created_at, updated_at
		FROM orders
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.OrderWithItems{}
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(
			&order.ID, &order.UserID, &order.Email, &order.Status, &order.PaymentMethod,
			&order.PaymentIntentID, &order.Subtotal, &order.ShippingCost, &order.TotalAmount,
			&order.ShippingAddress, &order.Notes, &order.PaidAt, &order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		items, err := q.getOrderItems(order.ID)
		if err != nil {
			return nil, err
		}
		orders = append(orders, models.OrderWithItems{Order: order, Items: items})
	}
	return orders, rows.Err()
}

func (q *OrderQueries) getOrderItems(orderID int) ([]models.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, name, image, unit_price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := q.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Image, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (q *OrderQueries) UpdateOrderStatus(orderID int, status string) error {
	result, err := q.db.Exec(`UPDATE orders SET status = $1 WHERE id = $2`, status, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("order not found")
	}
	return nil
}

// MarkOrderPaid records the payment intent and flips the order to paid.
func (q *OrderQueries) MarkOrderPaid(orderID int, paymentIntentID string) error {
	now := time.Now()
	result, err := q.db.Exec(
		`UPDATE orders SET status = $1, payment_intent_id = $2, paid_at = $3 WHERE id = $4`,
		models.OrderStatusPaid, paymentIntentID, now, orderID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("order not found")
	}
	return nil
}

func (q *OrderQueries) SetPaymentIntent(orderID int, paymentIntentID string) error {
	_, err := q.db.Exec(`UPDATE orders SET payment_intent_id = $1 WHERE id = $2`, paymentIntentID, orderID)
	if err != nil {
		return fmt.Errorf("failed to set payment intent: %w", err)
	}
	return nil
}

func (q *OrderQueries) DeleteOrder(orderID int) error {
	result, err := q.db.Exec(`DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("order not found")
	}
	return nil
}

func (q *OrderQueries) CountOrdersByUser(userID int) (int, error) {
	var count int
	if err := q.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// DashboardStats aggregates the counters shown on the admin home page.
func (q *OrderQueries) DashboardStats() (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM orders WHERE status = 'pending'),
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status NOT IN ('pending', 'cancelled')),
			(SELECT COUNT(*) FROM contact_messages WHERE status = 'open')
	`
	err := q.db.QueryRow(query).Scan(
		&stats.Users, &stats.Products, &stats.Orders,
		&stats.PendingOrders, &stats.Revenue, &stats.Contacts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	return stats, nil
}
