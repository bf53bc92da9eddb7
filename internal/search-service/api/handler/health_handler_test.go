package handler

import (
	registrymodel "Proximity_Search_Microservice/internal/health-registry/model"
	mockhandler "Proximity_Search_Microservice/internal/search-service/mocks/api/handler"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHealthHandler_Healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		setupMocks     func(source *mockhandler.MockSnapshotSource)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Healthy instance",
			setupMocks: func(source *mockhandler.MockSnapshotSource) {
				source.EXPECT().Latest().Return(registrymodel.Heartbeat{
					InstanceID:  "search-1",
					Status:      registrymodel.StatusHealthy,
					Timestamp:   ts,
					Diagnostics: map[string]float64{registrymodel.DiagCacheHitRate: 0.5},
				}, true)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"diagnostics":{"cache_hit_rate":0.5}`,
		},
		{
			name: "Degraded instance still serves",
			setupMocks: func(source *mockhandler.MockSnapshotSource) {
				source.EXPECT().Latest().Return(registrymodel.Heartbeat{InstanceID: "search-1", Status: registrymodel.StatusDegraded, Timestamp: ts}, true)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"degraded"`,
		},
		{
			name: "Unhealthy instance",
			setupMocks: func(source *mockhandler.MockSnapshotSource) {
				source.EXPECT().Latest().Return(registrymodel.Heartbeat{InstanceID: "search-1", Status: registrymodel.StatusUnhealthy, Timestamp: ts}, true)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"status":"unhealthy"`,
		},
		{
			name: "Stale snapshot",
			setupMocks: func(source *mockhandler.MockSnapshotSource) {
				source.EXPECT().Latest().Return(registrymodel.Heartbeat{InstanceID: "search-1", Status: registrymodel.StatusHealthy, Timestamp: ts.Add(-5 * time.Second)}, true)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"status":"unhealthy"`,
		},
		{
			name: "No heartbeat yet",
			setupMocks: func(source *mockhandler.MockSnapshotSource) {
				source.EXPECT().Latest().Return(registrymodel.Heartbeat{}, false)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"status":"starting"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			source := mockhandler.NewMockSnapshotSource(ctrl)
			tc.setupMocks(source)

			w, c := setupTestContext(t, http.MethodGet, "/healthz", nil)
			now := func() time.Time { return ts.Add(time.Second) }
			newHealthHandler("search-1", source, 4*time.Second, now).Healthz()(c)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.expectedBody)
			assert.Contains(t, w.Body.String(), `"instance_id":"search-1"`)
		})
	}
}
