package repository

import (
	"table_order/internal/models"

	"gorm.io/gorm"
)

type TableRepository interface {
	CreateWithLink(table *models.Table, link func(*models.Table) string) error
	GetByID(id uint) (*models.Table, error)
	ListByRestaurant(restaurantID uint) ([]models.Table, error)
	NumberTaken(restaurantID uint, tableNumber string, excludeID uint) (bool, error)
	HasOrders(id uint) (bool, error)
	Update(table *models.Table) error
	Delete(id uint) error
}

type tableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

// CreateWithLink inserts the table and stores the link derived from its id
// in one transaction.
func (r *tableRepository) CreateWithLink(table *models.Table, link func(*models.Table) string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(table).Error; err != nil {
			return err
		}
		table.QRCodeURL = link(table)
		return tx.Model(table).Update("qr_code_url", table.QRCodeURL).Error
	})
	if err != nil {
		table.ID = 0
		table.QRCodeURL = ""
	}
	return err
}

func (r *tableRepository) GetByID(id uint) (*models.Table, error) {
	var table models.Table
	if err := r.db.First(&table, id).Error; err != nil {
		return nil, translate(err)
	}
	return &table, nil
}

func (r *tableRepository) ListByRestaurant(restaurantID uint) ([]models.Table, error) {
	var tables []models.Table
	err := r.db.Where("restaurant_id = ?", restaurantID).Order("id").Find(&tables).Error
	return tables, err
}

// NumberTaken reports whether another table of the restaurant already uses
// tableNumber. excludeID skips the table being renamed; pass 0 on create.
func (r *tableRepository) NumberTaken(restaurantID uint, tableNumber string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.Table{}).Where("restaurant_id = ? AND table_number = ?", restaurantID, tableNumber)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *tableRepository) HasOrders(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("table_id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *tableRepository) Update(table *models.Table) error {
	return r.db.Save(table).Error
}

func (r *tableRepository) Delete(id uint) error {
	return r.db.Delete(&models.Table{}, id).Error
}
