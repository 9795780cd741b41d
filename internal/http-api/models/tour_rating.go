package models

import "time"

// TourRating records one customer's score and comment for a tour.
// A (tour_id, customer_id) pair is treated as unique by the service layer's
// lookups, but the schema does not enforce it.
type TourRating struct {
	ID         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	TourID     int       `json:"tour_id" gorm:"not null;index"`
	CustomerID int       `json:"customer_id" gorm:"not null;index"`
	Score      int       `json:"score" gorm:"not null"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Tour Tour `json:"tour,omitempty" gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE;"`
}

func (TourRating) TableName() string {
	return "tour_ratings"
}
