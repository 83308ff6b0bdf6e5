package repository

import (
	"table_order/internal/models"

	"gorm.io/gorm"
)

type OrderItemRepository interface {
	CountByMenuItem(menuItemID uint) (int64, error)
}

type orderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) CountByMenuItem(menuItemID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrderItem{}).Where("menu_item_id = ?", menuItemID).Count(&count).Error
	return count, err
}
