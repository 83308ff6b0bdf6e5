package repository

import (
	"table_order/internal/models"

	"gorm.io/gorm"
)

type MenuItemRepository interface {
	Create(item *models.MenuItem) error
	GetByID(id uint) (*models.MenuItem, error)
	GetByIDs(restaurantID uint, ids []uint) (map[uint]models.MenuItem, error)
	ListByRestaurant(restaurantID uint) ([]models.MenuItem, error)
	Update(item *models.MenuItem) error
	SetAvailability(id uint, available bool) error
	Delete(id uint) error
}

type menuItemRepository struct {
	db *gorm.DB
}

func NewMenuItemRepository(db *gorm.DB) MenuItemRepository {
	return &menuItemRepository{db: db}
}

func (r *menuItemRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

func (r *menuItemRepository) GetByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// GetByIDs returns the items among ids that belong to restaurantID, keyed by id.
func (r *menuItemRepository) GetByIDs(restaurantID uint, ids []uint) (map[uint]models.MenuItem, error) {
	var items []models.MenuItem
	if len(ids) == 0 {
		return map[uint]models.MenuItem{}, nil
	}
	err := r.db.Where("restaurant_id = ? AND id IN ?", restaurantID, ids).Find(&items).Error
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return byID, nil
}

func (r *menuItemRepository) ListByRestaurant(restaurantID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.Where("restaurant_id = ?", restaurantID).Order("category, name, id").Find(&items).Error
	return items, err
}

func (r *menuItemRepository) Update(item *models.MenuItem) error {
	return r.db.Save(item).Error
}

func (r *menuItemRepository) SetAvailability(id uint, available bool) error {
	return r.db.Model(&models.MenuItem{}).Where("id = ?", id).Update("is_available", available).Error
}

func (r *menuItemRepository) Delete(id uint) error {
	return r.db.Delete(&models.MenuItem{}, id).Error
}
