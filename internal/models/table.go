package models

// Table is a dining table; customers reach the menu through its QR link.
type Table struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	TableNumber  string `json:"table_number" gorm:"size:20;not null;uniqueIndex:idx_restaurant_table_number"`
	Capacity     int    `json:"capacity" gorm:"default:0"`
	Location     string `json:"location" gorm:"size:100"`
	QRCodeURL    string `json:"qr_code_url" gorm:"size:255"`
	RestaurantID uint   `json:"restaurant_id" gorm:"not null;uniqueIndex:idx_restaurant_table_number"`
}

func (Table) TableName() string { return "dining_tables" }

func (t *Table) OwnerID() uint { return t.RestaurantID }
