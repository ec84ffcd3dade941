package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
	"github.com/atelier-studio/portfolio-backend/internal/media/service"
	"github.com/gin-gonic/gin"
)

const regenerateHint = "the media cache could not be rebuilt; run `worker regenerate` on the server and check the media host credentials"

// ListProjects returns every project grouped by category
func (h *Handler) ListProjects(c *gin.Context) {
	force, ok := h.forceRefresh(c)
	if !ok {
		return
	}

	records, err := h.projects.AllProjects(c.Request.Context(), force)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, service.GroupByCategory(records, h.projects.Catalog()))
}

// GetProject returns a single project with all of its media
func (h *Handler) GetProject(c *gin.Context) {
	slug, err := domain.ParseSlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "project not found"})
		return
	}

	force, ok := h.forceRefresh(c)
	if !ok {
		return
	}

	rec, err := h.projects.Project(c.Request.Context(), slug, force)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// forceRefresh reads the refresh flag and applies the per-client limit.
// It writes the response and returns ok=false when the request must stop.
func (h *Handler) forceRefresh(c *gin.Context) (force bool, ok bool) {
	force, _ = strconv.ParseBool(c.Query("refresh"))
	if !force {
		return false, true
	}
	if err := h.allowRefresh(c); err != nil {
		c.Header("Retry-After", strconv.Itoa(int(h.opts.RefreshWindow.Seconds())))
		c.JSON(http.StatusTooManyRequests, errorResponse{Error: err.Error()})
		return false, false
	}
	return true, true
}

func (h *Handler) allowRefresh(c *gin.Context) error {
	if h.opts.RefreshLimit <= 0 || h.store == nil {
		return nil
	}

	key := "refresh:" + c.ClientIP()
	n, err := h.store.Incr(c.Request.Context(), key, h.opts.RefreshWindow)
	if err != nil {
		// fail open; the limit only protects the media host quota
		log.Printf("[warn] refresh limiter unavailable: %v", err)
		return nil
	}
	if n > int64(h.opts.RefreshLimit) {
		return domain.ErrRateLimited
	}
	return nil
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "project not found"})
	case errors.Is(err, domain.ErrProjectEmpty):
		c.JSON(http.StatusNotFound, errorResponse{Error: "project has no published media"})
	default:
		log.Printf("[error] request_id=%s path=%s error=%v", c.GetString("request_id"), c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "failed to load projects",
			Details: err.Error(),
			Hint:    regenerateHint,
		})
	}
}
