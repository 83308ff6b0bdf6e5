package migrations

import (
	"testing"

	"table_order/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise get its own empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestRunMigrations(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, RunMigrations(db))
	// Running twice must not drop or fail.
	require.NoError(t, RunMigrations(db))

	for _, model := range []any{&models.Restaurant{}, &models.MenuItem{}, &models.Table{}, &models.Order{}, &models.OrderItem{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
	assert.True(t, db.Migrator().HasIndex(&models.Table{}, "idx_restaurant_table_number"))
}

func TestTableNumberUniquePerRestaurant(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, RunMigrations(db))

	require.NoError(t, db.Create(&models.Table{TableNumber: "5", RestaurantID: 1}).Error)
	require.NoError(t, db.Create(&models.Table{TableNumber: "5", RestaurantID: 2}).Error)
	assert.Error(t, db.Create(&models.Table{TableNumber: "5", RestaurantID: 1}).Error)
}
