package service

import (
	"errors"
	"strconv"

	"tourhub/internal/http-api/models"
	"tourhub/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrTourNotFound   = errors.New("tour not found")
	ErrRatingNotFound = errors.New("rating not found")
)

type RatingService interface {
	CreateNew(tourID, customerID, score int, comment string) (*models.TourRating, error)
	LookupRatingByID(id int) (*models.TourRating, error)
	LookupAll() ([]models.TourRating, error)
	LookupRatings(tourID, page, pageSize int) ([]models.TourRating, int64, error)
	Update(tourID, customerID, score int, comment string) (*models.TourRating, error)
	UpdateSome(tourID, customerID int, score *int, comment *string) (*models.TourRating, error)
	Delete(tourID, customerID int) error
	AverageScore(tourID int) (*float64, error)
	RateMany(tourID, score int, customerIDs []int) error
}

type ratingService struct {
	ratingRepo repository.TourRatingRepository
	tourRepo   repository.TourRepository
}

func NewRatingService(ratingRepo repository.TourRatingRepository, tourRepo repository.TourRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		tourRepo:   tourRepo,
	}
}

// DefaultComment maps a score to its descriptive label. Scores outside 1-5
// fall back to the decimal string representation rather than failing.
func DefaultComment(score int) string {
	switch score {
	case 1:
		return "Terrible"
	case 2:
		return "Poor"
	case 3:
		return "Fair"
	case 4:
		return "Good"
	case 5:
		return "Great"
	default:
		return strconv.Itoa(score)
	}
}

// CreateNew persists a rating for an existing tour
func (s *ratingService) CreateNew(tourID, customerID, score int, comment string) (*models.TourRating, error) {
	if _, err := s.verifyTour(tourID); err != nil {
		return nil, err
	}

	rating := &models.TourRating{
		TourID:     tourID,
		CustomerID: customerID,
		Score:      score,
		Comment:    comment,
	}
	if err := s.ratingRepo.Create(rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// LookupRatingByID returns the rating if present, nil if not. Absence is not
// an error here.
func (s *ratingService) LookupRatingByID(id int) (*models.TourRating, error) {
	rating, err := s.ratingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rating, nil
}

// LookupAll returns every rating. Ordering is whatever the storage returns.
func (s *ratingService) LookupAll() ([]models.TourRating, error) {
	return s.ratingRepo.FindAll()
}

// LookupRatings returns one page of ratings for an existing tour plus the
// total count
func (s *ratingService) LookupRatings(tourID, page, pageSize int) ([]models.TourRating, int64, error) {
	if _, err := s.verifyTour(tourID); err != nil {
		return nil, 0, err
	}
	return s.ratingRepo.FindByTourIDPaged(tourID, page, pageSize)
}

// Update replaces both score and comment of an existing (tour, customer) rating
func (s *ratingService) Update(tourID, customerID, score int, comment string) (*models.TourRating, error) {
	rating, err := s.verifyTourRating(tourID, customerID)
	if err != nil {
		return nil, err
	}

	rating.Score = score
	rating.Comment = comment
	if err := s.ratingRepo.Update(rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// UpdateSome applies score and comment only when the argument is non-nil,
// leaving absent fields untouched
func (s *ratingService) UpdateSome(tourID, customerID int, score *int, comment *string) (*models.TourRating, error) {
	rating, err := s.verifyTourRating(tourID, customerID)
	if err != nil {
		return nil, err
	}

	if score != nil {
		rating.Score = *score
	}
	if comment != nil {
		rating.Comment = *comment
	}
	if err := s.ratingRepo.Update(rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// Delete removes an existing (tour, customer) rating
func (s *ratingService) Delete(tourID, customerID int) error {
	rating, err := s.verifyTourRating(tourID, customerID)
	if err != nil {
		return err
	}
	return s.ratingRepo.Delete(rating)
}

// AverageScore returns the arithmetic mean of all scores for an existing tour,
// or nil when the tour has no ratings. The mean is recomputed over the full
// unpaged rating set on every call.
func (s *ratingService) AverageScore(tourID int) (*float64, error) {
	if _, err := s.verifyTour(tourID); err != nil {
		return nil, err
	}

	ratings, err := s.ratingRepo.FindByTourID(tourID)
	if err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return nil, nil
	}

	sum := 0
	for _, rating := range ratings {
		sum += rating.Score
	}
	average := float64(sum) / float64(len(ratings))
	return &average, nil
}

// RateMany creates one rating per customer with the same score and the derived
// default comment. A missing tour is a silent no-op, not an error, and no
// uniqueness check is made, so a repeated customer id yields duplicate rows.
// Writes go out sequentially with no batch atomicity.
func (s *ratingService) RateMany(tourID, score int, customerIDs []int) error {
	if _, err := s.tourRepo.FindByID(tourID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	for _, customerID := range customerIDs {
		rating := &models.TourRating{
			TourID:     tourID,
			CustomerID: customerID,
			Score:      score,
			Comment:    DefaultComment(score),
		}
		if err := s.ratingRepo.Create(rating); err != nil {
			return err
		}
	}
	return nil
}

func (s *ratingService) verifyTour(tourID int) (*models.Tour, error) {
	tour, err := s.tourRepo.FindByID(tourID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	return tour, nil
}

func (s *ratingService) verifyTourRating(tourID, customerID int) (*models.TourRating, error) {
	rating, err := s.ratingRepo.FindByTourAndCustomer(tourID, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return rating, nil
}
