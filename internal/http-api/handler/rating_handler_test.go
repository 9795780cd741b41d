package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tourhub/internal/http-api/dto"
	"tourhub/internal/http-api/models"
	"tourhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRatingService mocks the RatingService interface
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) CreateNew(tourID, customerID, score int, comment string) (*models.TourRating, error) {
	args := m.Called(tourID, customerID, score, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TourRating), args.Error(1)
}

func (m *MockRatingService) LookupRatingByID(id int) (*models.TourRating, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TourRating), args.Error(1)
}

func (m *MockRatingService) LookupAll() ([]models.TourRating, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TourRating), args.Error(1)
}

func (m *MockRatingService) LookupRatings(tourID, page, pageSize int) ([]models.TourRating, int64, error) {
	args := m.Called(tourID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.TourRating), args.Get(1).(int64), args.Error(2)
}

func (m *MockRatingService) Update(tourID, customerID, score int, comment string) (*models.TourRating, error) {
	args := m.Called(tourID, customerID, score, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TourRating), args.Error(1)
}

func (m *MockRatingService) UpdateSome(tourID, customerID int, score *int, comment *string) (*models.TourRating, error) {
	args := m.Called(tourID, customerID, score, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TourRating), args.Error(1)
}

func (m *MockRatingService) Delete(tourID, customerID int) error {
	args := m.Called(tourID, customerID)
	return args.Error(0)
}

func (m *MockRatingService) AverageScore(tourID int) (*float64, error) {
	args := m.Called(tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

func (m *MockRatingService) RateMany(tourID, score int, customerIDs []int) error {
	args := m.Called(tourID, score, customerIDs)
	return args.Error(0)
}

func passthrough() gin.HandlerFunc {
	return func(c *gin.Context) { c.Next() }
}

func setupRatingRouter(svc service.RatingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewRatingHandler(svc)
	h.RegisterRoutes(r.Group("/tours"), passthrough(), passthrough())
	h.RegisterAdminRoutes(r.Group("/ratings"), passthrough(), passthrough())
	return r
}

func TestCreateRating_Created(t *testing.T) {
	mockService := new(MockRatingService)
	router := setupRatingRouter(mockService)

	created := &models.TourRating{ID: 1, TourID: 5, CustomerID: 42, Score: 4, Comment: "Good"}
	mockService.On("CreateNew", 5, 42, 4, "Good").Return(created, nil)

	body, _ := json.Marshal(dto.RatingDto{CustomerID: 42, Score: 4, Comment: "Good"})
	req, _ := http.NewRequest("POST", "/tours/5/ratings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response dto.RatingResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, 42, response.CustomerID)
	assert.Equal(t, 4, response.Score)
	mockService.AssertExpectations(t)
}

func TestCreateRating_TourNotFound(t *testing.T) {
	mockService := new(MockRatingService)
	router := setupRatingRouter(mockService)

	mockService.On("CreateNew", 999, 42, 4, "Good").Return(nil, service.ErrTourNotFound)

	body, _ := json.Marshal(dto.RatingDto{CustomerID: 42, Score: 4, Comment: "Good"})
	req, _ := http.NewRequest("POST", "/tours/999/ratings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRating_ScoreOutOfRangeRejected(t *testing.T) {
	mockService := new(MockRatingService)
	router := setupRatingRouter(mockService)

	body, _ := json.Marshal(dto.RatingDto{CustomerID: 42, Score: 6, Comment: "off the chart"})
	req, _ := http.NewRequest("POST", "/tours/5/ratings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateNew", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateMany_ParsesCommaSeparatedCustomers(t *testing.T) {
	mockService := new(MockRatingService)
	router := setupRatingRouter(mockService)

	mockService.On("RateMany", 5, 3, []int{1, 2}).Return(nil)

	req, _ := http.NewRequest("POST", "/tours/5/ratings/3?customers=1,2", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestCreateMany_MissingTourStillAnswersCreated(t *testing.T) {
	mockService := new(MockRatingService)
	router := setupRatingRouter(mockService)

	// the service swallows the missing tour, so the handler sees no error
	mockService.On("RateMany", 999, 3, []int{1, 2}).Return(nil)

	req, _ := http.NewRequest("POST", "/tours/999/ratings/3?customers=1&customers=2", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateMany_NoCustomersRejected(t *testing.T) {
	mockService := new(MockRatingService)
	router := setupRatingRouter(mockService)

	req, _ := http.NewRequest("POST", "/tours/5/ratings/3", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "RateMany", mock.Anything, mock.Anything, mock.Anything)
}

func TestListRatings_Paginated(t *testing.T) {
	mockService := new(MockRatingService)
	router := setupRatingRouter(mockService)

	mockService.On("LookupRatings", 5, 2, 10).Return([]models.TourRating{
		{ID: 11, TourID: 5, CustomerID: 1, Score: 4},
		{ID: 12, TourID: 5, CustomerID: 2, Score: 5},
	}, int64(12), nil)

	req, _ := http.NewRequest("GET", "/tours/5/ratings?page=2&page_size=10", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response dto.PaginatedRatingResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Data, 2)
	assert.Equal(t, 12, response.Total)
	assert.Equal(t, 2, response.Page)
	assert.Equal(t, 2, response.TotalPages)
}

func TestGetAverage_ReturnsMean(t *testing.T) {
	mockService := new(MockRatingService)
	router := setupRatingRouter(mockService)

	average := 4.0
	mockService.On("AverageScore", 5).Return(&average, nil)

	req, _ := http.NewRequest("GET", "/tours/5/ratings/average", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"average": 4.0}`, w.Body.String())
}

func TestGetAverage_UnratedTourIsNull(t *testing.T) {
	mockService := new(MockRatingService)
	router := setupRatingRouter(mockService)

	mockService.On("AverageScore", 5).Return(nil, nil)

	req, _ := http.NewRequest("GET", "/tours/5/ratings/average", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"average": null}`, w.Body.String())
}

func TestGetAverage_TourNotFound(t *testing.T) {
	mockService := new(MockRatingService)
	router := setupRatingRouter(mockService)

	mockService.On("AverageScore", 999).Return(nil, service.ErrTourNotFound)

	req, _ := http.NewRequest("GET", "/tours/999/ratings/average", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateWithPatch_OmittedScoreStaysNil(t *testing.T) {
	mockService := new(MockRatingService)
	router := setupRatingRouter(mockService)

	updated := &models.TourRating{ID: 3, TourID: 5, CustomerID: 42, Score: 2, Comment: "new comment"}
	mockService.On("UpdateSome", 5, 42, (*int)(nil), mock.AnythingOfType("*string")).Return(updated, nil)

	req, _ := http.NewRequest("PATCH", "/tours/5/ratings", bytes.NewBufferString(`{"customer_id":42,"comment":"new comment"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestUpdateWithPut_RatingNotFound(t *testing.T) {
	mockService := new(MockRatingService)
	router := setupRatingRouter(mockService)

	mockService.On("Update", 5, 42, 4, "Good").Return(nil, service.ErrRatingNotFound)

	body, _ := json.Marshal(dto.RatingDto{CustomerID: 42, Score: 4, Comment: "Good"})
	req, _ := http.NewRequest("PUT", "/tours/5/ratings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRating_Success(t *testing.T) {
	mockService := new(MockRatingService)
	router := setupRatingRouter(mockService)

	mockService.On("Delete", 5, 42).Return(nil)

	req, _ := http.NewRequest("DELETE", "/tours/5/ratings/42", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestDeleteRating_NotFound(t *testing.T) {
	mockService := new(MockRatingService)
	router := setupRatingRouter(mockService)

	mockService.On("Delete", 5, 42).Return(service.ErrRatingNotFound)

	req, _ := http.NewRequest("DELETE", "/tours/5/ratings/42", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRatingByID_AbsentIs404(t *testing.T) {
	mockService := new(MockRatingService)
	router := setupRatingRouter(mockService)

	mockService.On("LookupRatingByID", 7).Return(nil, nil)

	req, _ := http.NewRequest("GET", "/ratings/7", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
