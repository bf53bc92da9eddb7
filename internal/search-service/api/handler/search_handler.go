package handler

import (
	"Proximity_Search_Microservice/internal/search-service/api/dto/request"
	"Proximity_Search_Microservice/internal/search-service/api/dto/response"
	"Proximity_Search_Microservice/internal/search-service/cache"
	apperrors "Proximity_Search_Microservice/internal/search-service/errors"
	"Proximity_Search_Microservice/internal/search-service/model"
	"Proximity_Search_Microservice/internal/search-service/service"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//go:generate mockgen -source=search_handler.go -destination=../../mocks/api/handler/mock_search_handler.go -package=mockhandler
type SearchHandler interface {
	Search() gin.HandlerFunc
	InvalidateCache() gin.HandlerFunc
}

type searchHandler struct {
	logger        *zap.Logger
	searchService service.SearchService
	validator     *validator.Validate
}

func (*searchHandler) formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", err.Field())
	case "gte":
		return fmt.Sprintf("The %s field must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("The %s field must be less than or equal to %s", err.Field(), err.Param())
	default:
		return fmt.Sprintf("Validation failed for %s with tag %s.", err.Field(), err.Tag())
	}
}

func (s *searchHandler) Search() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req request.SearchRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			var validatorError validator.ValidationErrors
			if errors.As(err, &validatorError) {
				c.JSON(http.StatusBadRequest, response.Response{
					Message: s.formatValidationError(validatorError[0]),
				})
			} else {
				c.JSON(http.StatusBadRequest, response.Response{
					Message: "Invalid query parameters",
				})
			}
			return
		}
		offset, err := model.DecodeCursor(req.Cursor)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Response{
				Message: "Invalid cursor",
			})
			return
		}
		query := model.SearchQuery{
			Sort:         model.SortMode(strings.ToLower(strings.TrimSpace(req.Sort))),
			Lat:          req.Lat,
			Lng:          req.Lng,
			RadiusMeters: req.RadiusMeters,
			Filters: model.Filters{
				Categories: splitList(req.Categories),
				Agencies:   splitList(req.Agencies),
				OpenNow:    req.OpenNow,
			},
			Offset: offset,
			Limit:  req.Limit,
		}

		result, err := s.searchService.Search(c.Request.Context(), query)
		if err != nil {
			var invalid *apperrors.InvalidQueryError
			switch {
			case errors.As(err, &invalid):
				c.JSON(http.StatusBadRequest, response.Response{
					Message: fmt.Sprintf("Invalid %s: %s", invalid.Field, invalid.Reason),
				})
			case errors.Is(err, context.DeadlineExceeded):
				s.loggingError(c, fmt.Errorf("SearchHandler.Search: %w", err), "search timed out", zap.WarnLevel)
				c.JSON(http.StatusGatewayTimeout, response.Response{
					Message: "Search timed out",
				})
			default:
				s.loggingError(c, fmt.Errorf("SearchHandler.Search: %w", err), "failed to search establishments", zap.ErrorLevel)
				c.JSON(http.StatusInternalServerError, response.Response{
					Message: "Internal server error",
				})
			}
			return
		}

		results := make([]response.SearchItemResponse, 0, len(result.Result.Items))
		for _, item := range result.Result.Items {
			results = append(results, response.SearchItemResponse{
				ID:             item.ID,
				DistanceMeters: item.DistanceMeters,
			})
		}
		c.Header("X-Cache", result.CacheOutcome)
		c.JSON(http.StatusOK, response.SearchResponse{
			Results:        results,
			Total:          result.Result.Total,
			NextCursor:     result.Result.NextCursor,
			SortApplied:    string(result.SortApplied),
			FallbackReason: string(result.FallbackReason),
		})
	}
}

func (s *searchHandler) InvalidateCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req request.InvalidateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Response{
				Message: "Invalid request body",
			})
			return
		}
		if err := s.validator.Struct(req); err != nil {
			var validatorError validator.ValidationErrors
			if errors.As(err, &validatorError) {
				c.JSON(http.StatusBadRequest, response.Response{
					Message: s.formatValidationError(validatorError[0]),
				})
			} else {
				c.JSON(http.StatusBadRequest, response.Response{
					Message: "Invalid request body",
				})
			}
			return
		}
		if (req.Lat == nil) != (req.Lng == nil) {
			c.JSON(http.StatusBadRequest, response.Response{
				Message: "Both lat and lng are required",
			})
			return
		}

		var preds []cache.Predicate
		if req.All {
			preds = append(preds, cache.All())
		}
		if len(req.Categories) > 0 {
			preds = append(preds, cache.ByCategory(req.Categories...))
		}
		if len(req.Agencies) > 0 {
			preds = append(preds, cache.ByAgency(req.Agencies...))
		}
		if req.Lat != nil {
			preds = append(preds, cache.NearPoint(model.GeoPoint{Lat: *req.Lat, Lng: *req.Lng}))
		}
		if len(preds) == 0 {
			c.JSON(http.StatusBadRequest, response.Response{
				Message: "One of all, categories, agencies or lat/lng is required",
			})
			return
		}

		removed, err := s.searchService.Invalidate(c.Request.Context(), cache.Any(preds...))
		if err != nil {
			err = fmt.Errorf("SearchHandler.InvalidateCache: %w", err)
			if errors.Is(err, apperrors.ErrCacheUnavailable) {
				s.loggingError(c, err, "result store unavailable during invalidation", zap.WarnLevel)
				c.JSON(http.StatusServiceUnavailable, response.Response{
					Message: "Cache unavailable",
				})
				return
			}
			s.loggingError(c, err, "failed to invalidate cache", zap.ErrorLevel)
			c.JSON(http.StatusInternalServerError, response.Response{
				Message: "Internal server error",
			})
			return
		}
		c.JSON(http.StatusOK, response.InvalidateResponse{
			Removed: removed,
		})
	}
}

// splitList accepts both repeated parameters and comma separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (s *searchHandler) loggingError(c *gin.Context, err error, errDescription string, logLevel zapcore.Level) {
	var data []zapcore.Field
	data = append(data, zap.Error(err))
	data = append(data, zap.String("http_method", c.Request.Method))
	data = append(data, zap.String("http_path", c.Request.URL.Path))
	s.logger.Log(logLevel, errDescription, data...)
}

func NewSearchHandler(logger *zap.Logger, searchService service.SearchService) SearchHandler {
	return &searchHandler{
		logger:        logger,
		searchService: searchService,
		validator:     validator.New(),
	}
}
