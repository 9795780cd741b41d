package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"tourhub/internal/http-api/dto"
	"tourhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// RegisterRoutes registers rating routes under the tours group. Reads are
// public; writes require an authenticated CSR.
func (h *RatingHandler) RegisterRoutes(tours *gin.RouterGroup, authn gin.HandlerFunc, csrOnly gin.HandlerFunc) {
	ratings := tours.Group("/:tourId/ratings")
	{
		ratings.GET("", h.List)
		ratings.GET("/average", h.GetAverage)

		protected := ratings.Group("", authn, csrOnly)
		protected.POST("", h.Create)
		protected.POST("/:score", h.CreateMany)
		protected.PUT("", h.UpdateWithPut)
		protected.PATCH("", h.UpdateWithPatch)
		protected.DELETE("/:customerId", h.Delete)
	}
}

// RegisterAdminRoutes exposes the cross-tour lookups used by CSR tooling
func (h *RatingHandler) RegisterAdminRoutes(ratings *gin.RouterGroup, authn gin.HandlerFunc, csrOnly gin.HandlerFunc) {
	ratings.GET("", authn, csrOnly, h.ListAll)
	ratings.GET("/:id", authn, csrOnly, h.GetByID)
}

// Create submits a rating for a tour
// POST /tours/:tourId/ratings
func (h *RatingHandler) Create(c *gin.Context) {
	tourID, err := strconv.Atoi(c.Param("tourId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tour ID"})
		return
	}

	var req dto.RatingDto
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.ratingService.CreateNew(tourID, req.CustomerID, req.Score, req.Comment)
	if err != nil {
		if errors.Is(err, service.ErrTourNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToRatingResponse(rating))
}

// CreateMany submits the same score for several customers at once
// POST /tours/:tourId/ratings/:score?customers=1,2,3
func (h *RatingHandler) CreateMany(c *gin.Context) {
	tourID, err := strconv.Atoi(c.Param("tourId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tour ID"})
		return
	}
	score, err := strconv.Atoi(c.Param("score"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid score"})
		return
	}

	customerIDs, err := parseCustomerIDs(c.QueryArray("customers"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A missing tour is a silent no-op here, so this still answers 201.
	if err := h.ratingService.RateMany(tourID, score, customerIDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusCreated)
}

// List retrieves all ratings for a tour with pagination
// GET /tours/:tourId/ratings?page=1&page_size=20
func (h *RatingHandler) List(c *gin.Context) {
	tourID, err := strconv.Atoi(c.Param("tourId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tour ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	ratings, total, err := h.ratingService.LookupRatings(tourID, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrTourNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		responses = append(responses, *dto.FromModelToRatingResponse(&rating))
	}

	c.JSON(http.StatusOK, dto.NewPaginatedRatingResponse(responses, int(total), page, pageSize))
}

// GetAverage retrieves the average score for a tour; null when unrated
// GET /tours/:tourId/ratings/average
func (h *RatingHandler) GetAverage(c *gin.Context) {
	tourID, err := strconv.Atoi(c.Param("tourId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tour ID"})
		return
	}

	average, err := h.ratingService.AverageScore(tourID)
	if err != nil {
		if errors.Is(err, service.ErrTourNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.AverageResponse{Average: average})
}

// UpdateWithPut replaces a customer's rating for a tour
// PUT /tours/:tourId/ratings
func (h *RatingHandler) UpdateWithPut(c *gin.Context) {
	tourID, err := strconv.Atoi(c.Param("tourId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tour ID"})
		return
	}

	var req dto.RatingDto
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.ratingService.Update(tourID, req.CustomerID, req.Score, req.Comment)
	if err != nil {
		if errors.Is(err, service.ErrRatingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToRatingResponse(rating))
}

// UpdateWithPatch updates only the fields present in the payload
// PATCH /tours/:tourId/ratings
func (h *RatingHandler) UpdateWithPatch(c *gin.Context) {
	tourID, err := strconv.Atoi(c.Param("tourId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tour ID"})
		return
	}

	var req dto.RatingPatchDto
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.ratingService.UpdateSome(tourID, req.CustomerID, req.Score, req.Comment)
	if err != nil {
		if errors.Is(err, service.ErrRatingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToRatingResponse(rating))
}

// Delete removes a customer's rating for a tour
// DELETE /tours/:tourId/ratings/:customerId
func (h *RatingHandler) Delete(c *gin.Context) {
	tourID, err := strconv.Atoi(c.Param("tourId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tour ID"})
		return
	}
	customerID, err := strconv.Atoi(c.Param("customerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
		return
	}

	if err := h.ratingService.Delete(tourID, customerID); err != nil {
		if errors.Is(err, service.ErrRatingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rating deleted successfully"})
}

// ListAll retrieves every rating across tours
// GET /ratings
func (h *RatingHandler) ListAll(c *gin.Context) {
	ratings, err := h.ratingService.LookupAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		responses = append(responses, *dto.FromModelToRatingResponse(&rating))
	}

	c.JSON(http.StatusOK, responses)
}

// GetByID retrieves one rating by its id
// GET /ratings/:id
func (h *RatingHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rating ID"})
		return
	}

	rating, err := h.ratingService.LookupRatingByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rating == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "rating not found"})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToRatingResponse(rating))
}

// parseCustomerIDs accepts repeated params and comma-separated lists
// (customers=1&customers=2 or customers=1,2)
func parseCustomerIDs(values []string) ([]int, error) {
	ids := make([]int, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				return nil, errors.New("invalid customer id: " + part)
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, errors.New("no customer ids supplied")
	}
	return ids, nil
}
