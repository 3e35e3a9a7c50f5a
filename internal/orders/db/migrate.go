package db

import (
	"context"
	"log"

	"github.com/uptrace/bun"
)

func Migrate(db *bun.DB) {
	ctx := context.Background()

	_, err := db.NewCreateTable().Model((*UserRow)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		log.Fatalf("create users table failed: %v", err)
	}

	_, err = db.NewCreateTable().Model((*OrderRow)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		log.Fatalf("create orders table failed: %v", err)
	}
}
