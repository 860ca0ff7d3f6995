package setup

import (
	"github.com/enqur/qrstudio/internal/adapters/controller/http/handlers"
	"github.com/enqur/qrstudio/internal/adapters/controller/http/middlewares"
	"github.com/enqur/qrstudio/pkg/logger/types"
	"github.com/gin-gonic/gin"
)

// Router builds the gin engine with every API route.
func Router(h *handlers.Handler, logger *types.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.Recovery(logger))
	r.Use(middlewares.Identify())
	r.Use(middlewares.Logger(logger))

	r.GET("/healthz", h.Health)

	api := r.Group("/api/qr")
	{
		api.GET("/generate-preview", h.GeneratePreview)
		api.POST("/generate", h.Generate)
		api.GET("/history", h.History)
		api.DELETE("/:id", h.Delete)
		api.DELETE("", h.ClearAll)
	}

	return r
}
