package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"cinemax/internal/logger"
	"cinemax/internal/models"
)

// ErrUserNotFound is returned when a lookup matches no user row.
var ErrUserNotFound = errors.New("user not found")

type DB struct {
	Bun    *bun.DB
	Logger *logger.Logger
}

// ---------------- USERS ----------------

// SaveUser upserts the account row. Purchase history is stored per order in
// the orders table, not on the user row.
func (d *DB) SaveUser(user models.User) error {
	row := &UserRow{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}

	_, err := d.Bun.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("email = EXCLUDED.email").
		Set("last_login = EXCLUDED.last_login").
		Exec(context.Background())
	if err == nil && d.Logger != nil {
		d.Logger.LogDatabase("UPSERT", "users", user.Email)
	}
	return err
}

// GetUserByEmail loads an account and its purchase history.
func (d *DB) GetUserByEmail(email string) (*models.User, error) {
	var row UserRow
	err := d.Bun.NewSelect().
		Model(&row).
		Where("email = ?", email).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
		LastLogin: row.LastLogin,
	}

	purchases, err := d.GetOrdersByUser(user.ID)
	if err != nil {
		return nil, err
	}
	user.Purchases = purchases

	return &user, nil
}

// ---------------- ORDERS ----------------

// SaveOrder inserts one completed order snapshot.
func (d *DB) SaveOrder(order models.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", order.ID, err)
	}

	row := &OrderRow{
		ID:             order.ID,
		UserID:         order.User.ID,
		Subtotal:       order.Subtotal,
		Discount:       order.Discount,
		ConvenienceFee: order.ConvenienceFee,
		Taxes:          order.Taxes,
		Total:          order.Total,
		Status:         string(order.Status),
		CreatedAt:      order.CreatedAt,
		Payload:        payload,
	}

	_, err = d.Bun.NewInsert().Model(row).Exec(context.Background())
	if err == nil && d.Logger != nil {
		d.Logger.LogDatabase("INSERT", "orders", order.ID)
	}
	return err
}

// GetOrdersByUser returns the purchase history, most-recent first.
func (d *DB) GetOrdersByUser(userID string) ([]models.Order, error) {
	var rows []OrderRow
	err := d.Bun.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		var order models.Order
		if err := json.Unmarshal(row.Payload, &order); err != nil {
			return nil, fmt.Errorf("unmarshal order %s: %w", row.ID, err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// GetOrderByID fetches one order snapshot.
func (d *DB) GetOrderByID(id string) (*models.Order, error) {
	var row OrderRow
	err := d.Bun.NewSelect().
		Model(&row).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := json.Unmarshal(row.Payload, &order); err != nil {
		return nil, fmt.Errorf("unmarshal order %s: %w", row.ID, err)
	}
	return &order, nil
}
