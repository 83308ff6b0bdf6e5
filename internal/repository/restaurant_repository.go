package repository

import (
	"table_order/internal/models"

	"gorm.io/gorm"
)

type RestaurantRepository interface {
	Create(restaurant *models.Restaurant) error
	GetByID(id uint) (*models.Restaurant, error)
	GetByEmail(email string) (*models.Restaurant, error)
	EmailExists(email string) (bool, error)
	List(limit int) ([]models.Restaurant, error)
}

type restaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(restaurant *models.Restaurant) error {
	return r.db.Create(restaurant).Error
}

func (r *restaurantRepository) GetByID(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.First(&restaurant, id).Error; err != nil {
		return nil, translate(err)
	}
	return &restaurant, nil
}

func (r *restaurantRepository) GetByEmail(email string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.Where("email = ?", email).First(&restaurant).Error; err != nil {
		return nil, translate(err)
	}
	return &restaurant, nil
}

func (r *restaurantRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Restaurant{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *restaurantRepository) List(limit int) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	query := r.db.Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&restaurants).Error
	return restaurants, err
}
