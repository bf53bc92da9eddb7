package routes

import (
	"Proximity_Search_Microservice/internal/search-service/api/handler"

	"github.com/gin-gonic/gin"
)

func SetUpSearchRoutes(r *gin.Engine, searchHandler handler.SearchHandler, healthHandler handler.HealthHandler) {
	r.GET("/healthz", healthHandler.Healthz())

	r.GET("/establishments/search", searchHandler.Search())
	r.POST("/cache/invalidate", searchHandler.InvalidateCache())
}
