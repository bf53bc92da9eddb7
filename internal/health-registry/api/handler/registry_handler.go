package handler

import (
	"Proximity_Search_Microservice/internal/health-registry/api/dto/request"
	"Proximity_Search_Microservice/internal/health-registry/api/dto/response"
	apperrors "Proximity_Search_Microservice/internal/health-registry/errors"
	"Proximity_Search_Microservice/internal/health-registry/model"
	"Proximity_Search_Microservice/internal/health-registry/service"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//go:generate mockgen -source=registry_handler.go -destination=../../mocks/api/handler/mock_registry_handler.go -package=mockhandler
type RegistryHandler interface {
	ListInstances() gin.HandlerFunc
	ListHealthyInstances() gin.HandlerFunc
	GetInstance() gin.HandlerFunc
	ReportHeartbeat() gin.HandlerFunc
	GetInstanceUptimePercentage() gin.HandlerFunc
	GetAllInstancesUptime() gin.HandlerFunc
}

type registryHandler struct {
	logger        *zap.Logger
	healthService service.HealthService
}

func (*registryHandler) formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", err.Field())
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s", err.Field(), err.Param())
	default:
		return fmt.Sprintf("Validation failed for %s with tag %s.", err.Field(), err.Tag())
	}
}

func (r *registryHandler) ListInstances() gin.HandlerFunc {
	return func(c *gin.Context) {
		records := r.healthService.ListInstances()
		res := make([]response.InstanceResponse, 0, len(records))
		for _, record := range records {
			res = append(res, toInstanceResponse(record))
		}
		c.JSON(http.StatusOK, res)
	}
}

func (r *registryHandler) ListHealthyInstances() gin.HandlerFunc {
	return func(c *gin.Context) {
		ids := r.healthService.ListHealthy()
		c.JSON(http.StatusOK, response.HealthyInstancesResponse{
			Count:     len(ids),
			Instances: ids,
		})
	}
}

func (r *registryHandler) GetInstance() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		record, err := r.healthService.GetInstance(id)
		if err != nil {
			if errors.Is(err, apperrors.ErrInstanceNotFound) {
				c.JSON(http.StatusNotFound, response.Response{
					Message: "Instance not found",
				})
				return
			}
			err = fmt.Errorf("RegistryHandler.GetInstance: %w", err)
			r.loggingError(c, err, fmt.Sprintf("failed to get instance %s", id), zap.ErrorLevel)
			c.JSON(http.StatusInternalServerError, response.Response{
				Message: "Internal server error",
			})
			return
		}
		c.JSON(http.StatusOK, toInstanceResponse(record))
	}
}

func (r *registryHandler) ReportHeartbeat() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req request.HeartbeatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var validatorError validator.ValidationErrors
			if errors.As(err, &validatorError) {
				c.JSON(http.StatusBadRequest, response.Response{
					Message: r.formatValidationError(validatorError[0]),
				})
			} else {
				c.JSON(http.StatusBadRequest, response.Response{
					Message: "Invalid request body",
				})
			}
			return
		}
		hb := model.Heartbeat{
			InstanceID:  c.Param("id"),
			Address:     req.Address,
			Status:      model.Status(req.Status),
			Diagnostics: req.Diagnostics,
		}
		if req.Timestamp != nil {
			hb.Timestamp = *req.Timestamp
		}
		record, accepted, err := r.healthService.ReportHeartbeat(c.Request.Context(), hb, service.SourcePush)
		if err != nil {
			if errors.Is(err, apperrors.ErrInvalidHeartbeat) {
				c.JSON(http.StatusBadRequest, response.Response{
					Message: "Invalid heartbeat",
				})
				return
			}
			err = fmt.Errorf("RegistryHandler.ReportHeartbeat: %w", err)
			r.loggingError(c, err, fmt.Sprintf("failed to report heartbeat of instance %s", hb.InstanceID), zap.ErrorLevel)
			c.JSON(http.StatusInternalServerError, response.Response{
				Message: "Internal server error",
			})
			return
		}
		c.JSON(http.StatusOK, response.HeartbeatAcceptedResponse{
			Accepted: accepted,
			Instance: toInstanceResponse(record),
		})
	}
}

func (r *registryHandler) GetInstanceUptimePercentage() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		startTime, endTime, ok := parseDateRange(c)
		if !ok {
			return
		}
		res, err := r.healthService.GetInstanceUptimePercentage(c.Request.Context(), id, startTime, endTime)
		if err != nil {
			err = fmt.Errorf("RegistryHandler.GetInstanceUptimePercentage: %w", err)
			r.loggingError(c, err, fmt.Sprintf("failed to get uptime percentage of instance %s from %s to %s", id, startTime, endTime), zap.ErrorLevel)
			c.JSON(http.StatusInternalServerError, response.Response{
				Message: "Internal server error",
			})
			return
		}
		c.JSON(http.StatusOK, response.UptimeResponse{
			UptimePercentage: res,
		})
	}
}

func (r *registryHandler) GetAllInstancesUptime() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime, endTime, ok := parseDateRange(c)
		if !ok {
			return
		}
		uptimes, err := r.healthService.GetAllInstancesUptime(c.Request.Context(), startTime, endTime)
		if err != nil {
			err = fmt.Errorf("RegistryHandler.GetAllInstancesUptime: %w", err)
			r.loggingError(c, err, fmt.Sprintf("failed to get instances uptime from %s to %s", startTime, endTime), zap.ErrorLevel)
			c.JSON(http.StatusInternalServerError, response.Response{
				Message: "Internal server error",
			})
			return
		}
		res := make([]response.InstanceUptimeResponse, 0, len(uptimes))
		for _, u := range uptimes {
			res = append(res, response.InstanceUptimeResponse{
				InstanceID:       u.InstanceID,
				UptimePercentage: u.UptimePercentage,
				LastStatus:       string(u.LastStatus),
			})
		}
		c.JSON(http.StatusOK, res)
	}
}

// parseDateRange reads start_date and end_date (YYYY-MM-DD, end inclusive) and writes
// the 400 response itself when they are invalid.
func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	startTime, err := time.Parse(time.DateOnly, c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Response{
			Message: "Invalid start date",
		})
		return time.Time{}, time.Time{}, false
	}
	endTime, err := time.Parse(time.DateOnly, c.Query("end_date"))
	if err != nil || endTime.Before(startTime) {
		c.JSON(http.StatusBadRequest, response.Response{
			Message: "Invalid end date",
		})
		return time.Time{}, time.Time{}, false
	}
	return startTime, endTime.AddDate(0, 0, 1), true
}

func toInstanceResponse(record model.InstanceHealthRecord) response.InstanceResponse {
	return response.InstanceResponse{
		InstanceID:    record.InstanceID,
		Address:       record.Address,
		Status:        string(record.Status),
		Healthy:       record.Healthy,
		LastHeartbeat: record.LastHeartbeat,
		ReceivedAt:    record.ReceivedAt,
		Diagnostics:   record.Diagnostics,
	}
}

func (r *registryHandler) loggingError(c *gin.Context, err error, errDescription string, logLevel zapcore.Level) {
	var data []zapcore.Field
	data = append(data, zap.Error(err))
	data = append(data, zap.String("http_method", c.Request.Method))
	data = append(data, zap.String("http_path", c.Request.URL.Path))
	r.logger.Log(logLevel, errDescription, data...)
}

func NewRegistryHandler(logger *zap.Logger, healthService service.HealthService) RegistryHandler {
	return &registryHandler{
		logger:        logger,
		healthService: healthService,
	}
}
