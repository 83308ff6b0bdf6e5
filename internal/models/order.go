package models

import (
	"fmt"
	"time"
)

type Order struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Status        OrderStatus   `json:"status" gorm:"size:20;not null;default:'pending';index"`
	TotalAmount   float64       `json:"total_amount" gorm:"not null"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"size:20;not null;default:'pending'"`
	PaymentID     string        `json:"payment_id" gorm:"size:100;index"`
	CreatedAt     time.Time     `json:"created_at" gorm:"index"`
	TableID       uint          `json:"table_id" gorm:"not null;index"`
	RestaurantID  uint          `json:"restaurant_id" gorm:"not null;index"`
	Table         Table         `json:"-"`
	Items         []OrderItem   `json:"items"`
}

func (o *Order) OwnerID() uint { return o.RestaurantID }

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every status in kitchen order.
var OrderStatuses = []OrderStatus{OrderPending, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return status, nil
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)
