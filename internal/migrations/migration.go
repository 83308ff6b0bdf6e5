package migrations

import (
	"log"

	"table_order/internal/models"

	"gorm.io/gorm"
)

// RunMigrations creates or updates the schema. Existing rows are kept.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migrations completed successfully!")
	return nil
}
