package bootstrap

import (
	"time"

	"github.com/andybalholm/brotli"
	httpapi "github.com/atelier-studio/portfolio-backend/internal/api/http"
	"github.com/atelier-studio/portfolio-backend/internal/api/http/middleware"
	"github.com/atelier-studio/portfolio-backend/internal/api/http/routes"
	"github.com/atelier-studio/portfolio-backend/internal/kvstore"
	mediahttp "github.com/atelier-studio/portfolio-backend/internal/media/http"
	"github.com/atelier-studio/portfolio-backend/internal/requestid"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	Projects    mediahttp.ProjectService
	Store       kvstore.Store
	Cache       httpapi.CacheInspector
	Media       mediahttp.Options
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))
	r.Use(middleware.Brotli(brotli.DefaultCompression))

	var store httpapi.Pinger
	if dep.Store != nil {
		store = dep.Store
	}
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Cache, store)
	healthHandler.RegisterRoutes(r)

	routes.RegisterV1(r, routes.V1Deps{
		Media: mediahttp.New(dep.Projects, dep.Store, dep.Media),
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestid.Header},
		ExposeHeaders: []string{requestid.Header, "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
