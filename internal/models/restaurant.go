package models

import "time"

type Restaurant struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"size:100;not null"`
	Description string     `json:"description" gorm:"type:text"`
	LogoURL     string     `json:"logo_url" gorm:"size:255"`
	Email       string     `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Password    string     `json:"-" gorm:"size:255;not null"`
	CreatedAt   time.Time  `json:"created_at"`
	MenuItems   []MenuItem `json:"-"`
	Tables      []Table    `json:"-"`
}
