package models

import "time"

type Tour struct {
	ID          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Price       int       `json:"price" gorm:"not null"`
	Duration    string    `json:"duration"`
	Difficulty  string    `json:"difficulty"`
	Region      string    `json:"region"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Tour) TableName() string {
	return "tours"
}
