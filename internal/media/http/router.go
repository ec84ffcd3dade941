package http

import "github.com/gin-gonic/gin"

// Register registers the project routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/projects", h.ListProjects)
	rg.GET("/projects/:slug", h.GetProject)
}

// RegisterWebhookRoutes registers routes called by the media host, not end users
func (h *Handler) RegisterWebhookRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/media", h.MediaNotification)
}
