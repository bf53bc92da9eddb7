package routes

import (
	"Proximity_Search_Microservice/internal/health-registry/api/handler"

	"github.com/gin-gonic/gin"
)

func SetUpRegistryRoutes(r *gin.Engine, handler handler.RegistryHandler) {
	instanceRoutes := r.Group("/instances")
	instanceRoutes.GET("", handler.ListInstances())
	instanceRoutes.GET("/healthy", handler.ListHealthyInstances())
	instanceRoutes.GET("/uptime", handler.GetAllInstancesUptime())
	instanceRoutes.GET("/:id", handler.GetInstance())
	instanceRoutes.POST("/:id/heartbeat", handler.ReportHeartbeat())
	instanceRoutes.GET("/:id/uptime", handler.GetInstanceUptimePercentage())
}
