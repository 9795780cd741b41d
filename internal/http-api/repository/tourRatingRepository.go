package repository

import (
	"tourhub/internal/http-api/models"

	"gorm.io/gorm"
)

type TourRatingRepository interface {
	Create(rating *models.TourRating) error
	Update(rating *models.TourRating) error
	Delete(rating *models.TourRating) error
	FindByID(id int) (*models.TourRating, error)
	FindAll() ([]models.TourRating, error)
	FindByTourID(tourID int) ([]models.TourRating, error)
	FindByTourIDPaged(tourID int, page, pageSize int) ([]models.TourRating, int64, error)
	FindByTourAndCustomer(tourID, customerID int) (*models.TourRating, error)
}

type tourRatingRepository struct {
	db *gorm.DB
}

func NewTourRatingRepository(db *gorm.DB) TourRatingRepository {
	return &tourRatingRepository{db: db}
}

// Create a new rating
func (r *tourRatingRepository) Create(rating *models.TourRating) error {
	return r.db.Create(rating).Error
}

// Update an existing rating
func (r *tourRatingRepository) Update(rating *models.TourRating) error {
	return r.db.Save(rating).Error
}

// Delete removes the given rating row
func (r *tourRatingRepository) Delete(rating *models.TourRating) error {
	return r.db.Delete(rating).Error
}

func (r *tourRatingRepository) FindByID(id int) (*models.TourRating, error) {
	var rating models.TourRating
	if err := r.db.First(&rating, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *tourRatingRepository) FindAll() ([]models.TourRating, error) {
	var ratings []models.TourRating
	if err := r.db.Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

// FindByTourID retrieves every rating for a tour, unpaged
func (r *tourRatingRepository) FindByTourID(tourID int) ([]models.TourRating, error) {
	var ratings []models.TourRating
	if err := r.db.Where("tour_id = ?", tourID).Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

// FindByTourIDPaged retrieves one page of ratings for a tour plus the total count
func (r *tourRatingRepository) FindByTourIDPaged(tourID int, page, pageSize int) ([]models.TourRating, int64, error) {
	var ratings []models.TourRating
	var total int64

	if err := r.db.Model(&models.TourRating{}).Where("tour_id = ?", tourID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Where("tour_id = ?", tourID).
		Order("id").
		Limit(pageSize).
		Offset(offset).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}

	return ratings, total, nil
}

// FindByTourAndCustomer retrieves a customer's rating for a specific tour.
// If more than one row matches, the lowest id wins.
func (r *tourRatingRepository) FindByTourAndCustomer(tourID, customerID int) (*models.TourRating, error) {
	var rating models.TourRating
	err := r.db.Where("tour_id = ? AND customer_id = ?", tourID, customerID).
		Order("id").
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
