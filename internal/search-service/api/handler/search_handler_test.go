package handler

import (
	"Proximity_Search_Microservice/internal/search-service/cache"
	apperrors "Proximity_Search_Microservice/internal/search-service/errors"
	mockservice "Proximity_Search_Microservice/internal/search-service/mocks/service"
	"Proximity_Search_Microservice/internal/search-service/model"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func setupTestContext(t *testing.T, method, url string, body io.Reader) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	c.Request = req
	return w, c
}

func ptr[T any](v T) *T {
	return &v
}

func TestSearchHandler_Search(t *testing.T) {
	gin.SetMode(gin.TestMode)

	distanceResult := model.SearchResult{
		Result: model.RankedResult{
			Items: []model.RankedItem{
				{ID: 3, DistanceMeters: ptr(50.0)},
				{ID: 7, DistanceMeters: ptr(50.0)},
			},
			Total:      3,
			NextCursor: model.EncodeCursor(2),
		},
		SortApplied:  model.SortDistanceAsc,
		CacheOutcome: string(cache.OutcomeComputed),
	}
	fallbackResult := model.SearchResult{
		Result: model.RankedResult{
			Items: []model.RankedItem{{ID: 1}},
			Total: 1,
		},
		SortApplied:    model.SortDefault,
		FallbackReason: model.ReasonMissingCoordinates,
		CacheOutcome:   string(cache.OutcomeL1),
	}

	testCases := []struct {
		name           string
		url            string
		setupMocks     func(mockService *mockservice.MockSearchService)
		expectedStatus int
		expectedBody   []string
		expectedCache  string
	}{
		{
			name: "Success Distance ordering",
			url:  "/establishments/search?sort=distance_asc&lat=40.7128&lng=-74.0060&radius_m=5000&category=Food,bar&category=cafe&limit=2",
			setupMocks: func(mockService *mockservice.MockSearchService) {
				mockService.EXPECT().Search(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, q model.SearchQuery) (model.SearchResult, error) {
					assert.Equal(t, model.SortDistanceAsc, q.Sort)
					assert.Equal(t, "40.7128", *q.Lat)
					assert.Equal(t, "-74.0060", *q.Lng)
					assert.Equal(t, 5000, q.RadiusMeters)
					assert.Equal(t, []string{"Food", "bar", "cafe"}, q.Filters.Categories)
					assert.Equal(t, 2, q.Limit)
					assert.Equal(t, 0, q.Offset)
					return distanceResult, nil
				})
			},
			expectedStatus: http.StatusOK,
			expectedBody: []string{
				`"results":[{"id":3,"distance_m":50},{"id":7,"distance_m":50}]`,
				`"sort_applied":"distance_asc"`,
				fmt.Sprintf(`"next_cursor":"%s"`, model.EncodeCursor(2)),
			},
			expectedCache: "computed",
		},
		{
			name: "Success Fallback reported",
			url:  "/establishments/search?sort=distance_asc&cursor=" + model.EncodeCursor(20),
			setupMocks: func(mockService *mockservice.MockSearchService) {
				mockService.EXPECT().Search(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, q model.SearchQuery) (model.SearchResult, error) {
					assert.Nil(t, q.Lat)
					assert.Nil(t, q.Lng)
					assert.Equal(t, 20, q.Offset)
					return fallbackResult, nil
				})
			},
			expectedStatus: http.StatusOK,
			expectedBody: []string{
				`"distance_m":null`,
				`"sort_applied":"default"`,
				`"fallback_reason":"missing_coordinates"`,
			},
			expectedCache: "l1",
		},
		{
			name:           "Error Limit not an integer",
			url:            "/establishments/search?limit=abc",
			setupMocks:     func(mockService *mockservice.MockSearchService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   []string{`"message":"Invalid query parameters"`},
		},
		{
			name:           "Error Negative radius",
			url:            "/establishments/search?radius_m=-5",
			setupMocks:     func(mockService *mockservice.MockSearchService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   []string{`"message":"The RadiusMeters field must be greater than or equal to 0"`},
		},
		{
			name:           "Error Malformed cursor",
			url:            "/establishments/search?cursor=not-a-cursor",
			setupMocks:     func(mockService *mockservice.MockSearchService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   []string{`"message":"Invalid cursor"`},
		},
		{
			name: "Error Invalid query from service",
			url:  "/establishments/search?sort=nearest",
			setupMocks: func(mockService *mockservice.MockSearchService) {
				mockService.EXPECT().Search(gomock.Any(), gomock.Any()).Return(model.SearchResult{}, fmt.Errorf("SearchService.Search: %w", apperrors.NewInvalidQueryError("sort", "must be distance_asc or default")))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   []string{`"message":"Invalid sort: must be distance_asc or default"`},
		},
		{
			name: "Error Deadline exceeded",
			url:  "/establishments/search",
			setupMocks: func(mockService *mockservice.MockSearchService) {
				mockService.EXPECT().Search(gomock.Any(), gomock.Any()).Return(model.SearchResult{}, context.DeadlineExceeded)
			},
			expectedStatus: http.StatusGatewayTimeout,
			expectedBody:   []string{`"message":"Search timed out"`},
		},
		{
			name: "Error Internal server error",
			url:  "/establishments/search",
			setupMocks: func(mockService *mockservice.MockSearchService) {
				mockService.EXPECT().Search(gomock.Any(), gomock.Any()).Return(model.SearchResult{}, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   []string{`"message":"Internal server error"`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockService := mockservice.NewMockSearchService(ctrl)
			tc.setupMocks(mockService)

			handler := NewSearchHandler(zap.NewNop(), mockService)

			w, c := setupTestContext(t, http.MethodGet, tc.url, nil)
			handler.Search()(c)

			assert.Equal(t, tc.expectedStatus, w.Code)
			for _, body := range tc.expectedBody {
				assert.Contains(t, w.Body.String(), body)
			}
			if tc.expectedCache != "" {
				assert.Equal(t, tc.expectedCache, w.Header().Get("X-Cache"))
			}
		})
	}
}

func TestSearchHandler_InvalidateCache(t *testing.T) {
	gin.SetMode(gin.TestMode)

	nycEntry := model.CacheEntry{Sort: model.SortDistanceAsc, Cell: "dr5re"}
	laEntry := model.CacheEntry{Sort: model.SortDistanceAsc, Cell: "9q5ct", Categories: []string{"bar"}}

	testCases := []struct {
		name           string
		body           string
		setupMocks     func(mockService *mockservice.MockSearchService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success Invalidate all",
			body: `{"all": true}`,
			setupMocks: func(mockService *mockservice.MockSearchService) {
				mockService.EXPECT().Invalidate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, pred cache.Predicate) (int, error) {
					assert.True(t, pred(nycEntry))
					assert.True(t, pred(laEntry))
					return 5, nil
				})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"removed":5`,
		},
		{
			name: "Success Invalidate near point",
			body: `{"lat": 40.7128, "lng": -74.0060}`,
			setupMocks: func(mockService *mockservice.MockSearchService) {
				mockService.EXPECT().Invalidate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, pred cache.Predicate) (int, error) {
					assert.True(t, pred(nycEntry))
					assert.False(t, pred(laEntry))
					return 1, nil
				})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"removed":1`,
		},
		{
			name: "Success Invalidate by category",
			body: `{"categories": ["Bar"]}`,
			setupMocks: func(mockService *mockservice.MockSearchService) {
				mockService.EXPECT().Invalidate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, pred cache.Predicate) (int, error) {
					assert.True(t, pred(laEntry))
					assert.False(t, pred(model.CacheEntry{Categories: []string{"food"}}))
					return 2, nil
				})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"removed":2`,
		},
		{
			name:           "Error Invalid JSON body",
			body:           `{"all": tru`,
			setupMocks:     func(mockService *mockservice.MockSearchService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"Invalid request body"`,
		},
		{
			name:           "Error No selector",
			body:           `{}`,
			setupMocks:     func(mockService *mockservice.MockSearchService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"One of all, categories, agencies or lat/lng is required"`,
		},
		{
			name:           "Error Latitude out of range",
			body:           `{"lat": 91, "lng": 0}`,
			setupMocks:     func(mockService *mockservice.MockSearchService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"The Lat field must be less than or equal to 90"`,
		},
		{
			name:           "Error Latitude without longitude",
			body:           `{"lat": 40.7}`,
			setupMocks:     func(mockService *mockservice.MockSearchService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"Both lat and lng are required"`,
		},
		{
			name: "Error Cache unavailable",
			body: `{"all": true}`,
			setupMocks: func(mockService *mockservice.MockSearchService) {
				mockService.EXPECT().Invalidate(gomock.Any(), gomock.Any()).Return(0, fmt.Errorf("resultCache.Invalidate: %w", apperrors.ErrCacheUnavailable))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"message":"Cache unavailable"`,
		},
		{
			name: "Error Internal server error",
			body: `{"all": true}`,
			setupMocks: func(mockService *mockservice.MockSearchService) {
				mockService.EXPECT().Invalidate(gomock.Any(), gomock.Any()).Return(0, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"Internal server error"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockService := mockservice.NewMockSearchService(ctrl)
			tc.setupMocks(mockService)

			handler := NewSearchHandler(zap.NewNop(), mockService)

			w, c := setupTestContext(t, http.MethodPost, "/cache/invalidate", strings.NewReader(tc.body))
			c.Request.Header.Set("Content-Type", "application/json")

			handler.InvalidateCache()(c)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.expectedBody)
		})
	}
}
