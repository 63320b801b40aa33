package database

import (
	"refundly/internal/cancellations"
	"refundly/internal/products"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&products.Product{},
		&cancellations.Cancellation{},
	)
}
