package server

import (
	"github.com/Rezan-vm/tornado-cash-salary-proposals/internal/handler"
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/monitor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Rezan-vm/tornado-cash-salary-proposals/docs" // swagger spec
)

// NewHTTPRouter wires the serve-mode routes.
func NewHTTPRouter(proposals *handler.ProposalHandler) *gin.Engine {
	monitor.Init()

	r := gin.Default()
	r.Use(monitor.PrometheusMiddleware())

	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.POST("/proposals", proposals.Create)
		api.GET("/proposals", proposals.List)
	}

	return r
}
