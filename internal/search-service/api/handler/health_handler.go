package handler

import (
	registrymodel "Proximity_Search_Microservice/internal/health-registry/model"
	"Proximity_Search_Microservice/internal/search-service/api/dto/response"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SnapshotSource exposes the latest heartbeat built by the emitter.
type SnapshotSource interface {
	Latest() (registrymodel.Heartbeat, bool)
}

//go:generate mockgen -source=health_handler.go -destination=../../mocks/api/handler/mock_health_handler.go -package=mockhandler
type HealthHandler interface {
	Healthz() gin.HandlerFunc
}

type healthHandler struct {
	instanceID string
	source     SnapshotSource
	maxAge     time.Duration
	now        func() time.Time
}

func (h *healthHandler) Healthz() gin.HandlerFunc {
	return func(c *gin.Context) {
		hb, ok := h.source.Latest()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, response.HealthResponse{
				InstanceID: h.instanceID,
				Status:     "starting",
			})
			return
		}
		// a snapshot the emitter stopped refreshing no longer vouches for the instance
		if h.maxAge > 0 && h.now().Sub(hb.Timestamp) > h.maxAge {
			hb.Status = registrymodel.StatusUnhealthy
		}
		code := http.StatusOK
		if hb.Status == registrymodel.StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, response.HealthResponse{
			InstanceID:  hb.InstanceID,
			Status:      string(hb.Status),
			Timestamp:   hb.Timestamp.Format(time.RFC3339Nano),
			Diagnostics: hb.Diagnostics,
		})
	}
}

// NewHealthHandler serves the emitter's latest snapshot. Snapshots older than maxAge are
// reported unhealthy; zero disables the check.
func NewHealthHandler(instanceID string, source SnapshotSource, maxAge time.Duration) HealthHandler {
	return newHealthHandler(instanceID, source, maxAge, time.Now)
}

func newHealthHandler(instanceID string, source SnapshotSource, maxAge time.Duration, now func() time.Time) *healthHandler {
	return &healthHandler{
		instanceID: instanceID,
		source:     source,
		maxAge:     maxAge,
		now:        now,
	}
}
