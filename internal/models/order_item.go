package models

// OrderItem is one cart line. Price is the unit price when the order was
// placed and never follows later menu changes.
type OrderItem struct {
	ID                  uint     `json:"id" gorm:"primaryKey"`
	Quantity            int      `json:"quantity" gorm:"not null"`
	Price               float64  `json:"price" gorm:"not null"`
	SpecialInstructions string   `json:"special_instructions" gorm:"type:text"`
	OrderID             uint     `json:"order_id" gorm:"not null;index"`
	MenuItemID          uint     `json:"menu_item_id" gorm:"not null;index"`
	MenuItem            MenuItem `json:"-"`
}
