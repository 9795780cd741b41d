package repository

import (
	"tourhub/internal/http-api/models"

	"gorm.io/gorm"
)

type TourRepository interface {
	Create(tour *models.Tour) error
	FindByID(id int) (*models.Tour, error)
	FindAll() ([]models.Tour, error)
}

type tourRepository struct {
	db *gorm.DB
}

func NewTourRepository(db *gorm.DB) TourRepository {
	return &tourRepository{db: db}
}

func (r *tourRepository) Create(tour *models.Tour) error {
	return r.db.Create(tour).Error
}

func (r *tourRepository) FindByID(id int) (*models.Tour, error) {
	var tour models.Tour
	if err := r.db.First(&tour, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *tourRepository) FindAll() ([]models.Tour, error) {
	var tours []models.Tour
	if err := r.db.Find(&tours).Error; err != nil {
		return nil, err
	}
	return tours, nil
}
