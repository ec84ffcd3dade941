package routes

import (
	mediahttp "github.com/atelier-studio/portfolio-backend/internal/media/http"

	"github.com/gin-gonic/gin"
)

type V1Deps struct {
	Media *mediahttp.Handler
}

// RegisterV1 mounts the public gallery API and the media host webhook under /api/v1
func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")

	dep.Media.Register(api)
	dep.Media.RegisterWebhookRoutes(api)
}
