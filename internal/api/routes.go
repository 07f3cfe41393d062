package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gatewaysv/server/internal/store"
)

func SetupRoutes(router *gin.Engine, st *store.Store, logger *logrus.Logger) {
	handler := NewHandler(st, logger)

	router.GET("/health", handler.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/properties", handler.SearchProperties)
		api.GET("/properties/departments", handler.GetDepartments)
		api.GET("/properties/stats", handler.GetStats)
		api.GET("/properties/:id", handler.GetProperty)
	}
}
