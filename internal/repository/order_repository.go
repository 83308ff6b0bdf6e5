package repository

import (
	"table_order/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	CreateWithItems(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	ListByRestaurant(restaurantID uint, status *models.OrderStatus) ([]models.Order, error)
	UpdateStatus(id uint, status models.OrderStatus) error
	PaymentUsed(paymentID string) (bool, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithItems writes the order and its items in one transaction.
func (r *orderRepository) CreateWithItems(order *models.Order) error {
	items := order.Items
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Omit(clause.Associations).Create(&items[i]).Error; err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.withDetails(r.db).First(&order, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepository) ListByRestaurant(restaurantID uint, status *models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	query := r.withDetails(r.db).Where("restaurant_id = ?", restaurantID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Order("created_at DESC, id DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(id uint, status models.OrderStatus) error {
	result := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PaymentUsed reports whether an order already carries paymentID.
func (r *orderRepository) PaymentUsed(paymentID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("payment_id = ?", paymentID).Count(&count).Error
	return count > 0, err
}

func (r *orderRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Table").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.MenuItem")
}
