// Package testutil builds throwaway datastores for tests.
package testutil

import (
	"testing"

	"table_order/internal/migrations"
	"table_order/internal/models"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, migrations.RunMigrations(db))
	return db
}

// NewRedis starts a miniredis server and returns a client for it.
func NewRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return srv, rdb
}

// Fixture is a small restaurant graph used across tests.
type Fixture struct {
	Restaurant *models.Restaurant
	Table      *models.Table
	Item       *models.MenuItem
}

// Seed creates a restaurant with one table and one menu item.
func Seed(t *testing.T, db *gorm.DB, email, tableNumber string, price float64) Fixture {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	r := &models.Restaurant{Name: "Restaurant " + email, Email: email, Password: string(hash)}
	require.NoError(t, db.Create(r).Error)

	table := &models.Table{TableNumber: tableNumber, Capacity: 4, RestaurantID: r.ID}
	require.NoError(t, db.Create(table).Error)

	item := &models.MenuItem{Name: "Paneer Tikka", Price: price, Category: "Starters", IsAvailable: true, RestaurantID: r.ID}
	require.NoError(t, db.Create(item).Error)

	return Fixture{Restaurant: r, Table: table, Item: item}
}
