package models

type MenuItem struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"size:100;not null"`
	Description  string  `json:"description" gorm:"type:text"`
	Price        float64 `json:"price" gorm:"not null"`
	ImageURL     string  `json:"image_url" gorm:"size:255"`
	Category     string  `json:"category" gorm:"size:50"`
	IsAvailable  bool    `json:"is_available" gorm:"not null"`
	RestaurantID uint    `json:"restaurant_id" gorm:"not null;index"`
}

func (m *MenuItem) OwnerID() uint { return m.RestaurantID }
