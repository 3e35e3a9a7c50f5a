package db

import (
	"time"

	"github.com/uptrace/bun"
)

type UserRow struct {
	bun.BaseModel `bun:"table:users"`

	ID        string    `bun:"id,pk"`
	Name      string    `bun:"name,notnull"`
	Email     string    `bun:"email,unique,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	LastLogin time.Time `bun:"last_login,nullzero"`
}

// OrderRow flattens the monetary figures into columns for queries and keeps
// the full order snapshot (items, coupons, payment data) as a JSON payload.
type OrderRow struct {
	bun.BaseModel `bun:"table:orders"`

	ID             string    `bun:"id,pk"`
	UserID         string    `bun:"user_id,notnull"`
	Subtotal       float64   `bun:"subtotal,notnull"`
	Discount       float64   `bun:"discount,notnull"`
	ConvenienceFee float64   `bun:"convenience_fee,notnull"`
	Taxes          float64   `bun:"taxes,notnull"`
	Total          float64   `bun:"total,notnull"`
	Status         string    `bun:"status,notnull"`
	CreatedAt      time.Time `bun:"created_at,notnull"`
	Payload        []byte    `bun:"payload"`
}
