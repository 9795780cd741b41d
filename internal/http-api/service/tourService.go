package service

import (
	"errors"

	"tourhub/internal/http-api/models"
	"tourhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type TourService interface {
	LookupAll() ([]models.Tour, error)
	LookupByID(id int) (*models.Tour, error)
}

type tourService struct {
	tourRepo repository.TourRepository
}

func NewTourService(tourRepo repository.TourRepository) TourService {
	return &tourService{tourRepo: tourRepo}
}

func (s *tourService) LookupAll() ([]models.Tour, error) {
	return s.tourRepo.FindAll()
}

func (s *tourService) LookupByID(id int) (*models.Tour, error) {
	tour, err := s.tourRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	return tour, nil
}
