package dto

import (
	"time"

	"tourhub/internal/http-api/models"
)

// RatingDto carries a full rating payload for create and put-style updates
type RatingDto struct {
	CustomerID int    `json:"customer_id" binding:"required"`
	Score      int    `json:"score" binding:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

// RatingPatchDto carries a partial update; nil fields are left untouched
type RatingPatchDto struct {
	CustomerID int     `json:"customer_id" binding:"required"`
	Score      *int    `json:"score" binding:"omitempty,min=1,max=5"`
	Comment    *string `json:"comment"`
}

// RatingResponse for returning rating information
type RatingResponse struct {
	ID         int       `json:"id"`
	TourID     int       `json:"tour_id"`
	CustomerID int       `json:"customer_id"`
	Score      int       `json:"score"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FromModelToRatingResponse converts a TourRating model to RatingResponse DTO
func FromModelToRatingResponse(rating *models.TourRating) *RatingResponse {
	return &RatingResponse{
		ID:         rating.ID,
		TourID:     rating.TourID,
		CustomerID: rating.CustomerID,
		Score:      rating.Score,
		Comment:    rating.Comment,
		CreatedAt:  rating.CreatedAt,
		UpdatedAt:  rating.UpdatedAt,
	}
}

// PaginatedRatingResponse for returning paginated ratings
type PaginatedRatingResponse struct {
	Data       []RatingResponse `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// NewPaginatedRatingResponse creates a paginated rating response
func NewPaginatedRatingResponse(data []RatingResponse, total, page, pageSize int) *PaginatedRatingResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedRatingResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// AverageResponse for the tour-level aggregate; Average is null when the tour
// has no ratings yet
type AverageResponse struct {
	Average *float64 `json:"average"`
}
