package handler

import (
	"errors"
	"net/http"
	"strconv"

	"tourhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type TourHandler struct {
	tourService service.TourService
}

func NewTourHandler(tourService service.TourService) *TourHandler {
	return &TourHandler{tourService: tourService}
}

// RegisterRoutes registers the public tour catalogue routes
func (h *TourHandler) RegisterRoutes(tours *gin.RouterGroup) {
	tours.GET("", h.List)
	tours.GET("/:tourId", h.GetByID)
}

// List returns the tour catalogue
// GET /tours
func (h *TourHandler) List(c *gin.Context) {
	tours, err := h.tourService.LookupAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tours)
}

// GetByID returns one tour
// GET /tours/:tourId
func (h *TourHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("tourId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tour ID"})
		return
	}

	tour, err := h.tourService.LookupByID(id)
	if err != nil {
		if errors.Is(err, service.ErrTourNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tour)
}
