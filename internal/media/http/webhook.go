package http

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/atelier-studio/portfolio-backend/internal/media/cloudinary"
	"github.com/atelier-studio/portfolio-backend/internal/media/service"
	"github.com/gin-gonic/gin"
)

const (
	signatureHeader = "X-Cld-Signature"
	timestampHeader = "X-Cld-Timestamp"

	maxNotificationBytes = 1 << 20
	deliveryTokenTTL     = 24 * time.Hour
)

// MediaNotification handles change notifications from the media host. A
// notification touching the base folder schedules a full resync in the
// background; the response never waits for it.
func (h *Handler) MediaNotification(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxNotificationBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	signature := c.GetHeader(signatureHeader)
	if h.opts.WebhookSecret != "" {
		err := cloudinary.VerifySignature(body, c.GetHeader(timestampHeader), signature, h.opts.WebhookSecret, h.opts.WebhookMaxAge, h.now())
		if err != nil {
			log.Printf("[warn] media webhook rejected: %v", err)
			c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized: " + err.Error()})
			return
		}
	}

	var n cloudinary.Notification
	if err := json.Unmarshal(body, &n); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	if !n.WithinFolder(h.opts.BaseFolder) {
		c.JSON(http.StatusOK, gin.H{"message": "ignored: outside portfolio folder"})
		return
	}

	first, err := h.firstDelivery(c, signature, body)
	if err != nil {
		log.Printf("[warn] media webhook dedupe unavailable: %v", err)
	} else if !first {
		c.JSON(http.StatusOK, gin.H{"message": "duplicate delivery"})
		return
	}

	h.projects.TriggerResync(c.Request.Context())
	service.RecordWebhookTrigger()
	log.Printf("[info] request_id=%s media webhook type=%s scheduled resync", c.GetString("request_id"), n.NotificationType)

	c.JSON(http.StatusAccepted, gin.H{"message": "resync scheduled"})
}

// firstDelivery records a token per notification so retried deliveries do not resync twice
func (h *Handler) firstDelivery(c *gin.Context, signature string, body []byte) (bool, error) {
	if h.store == nil {
		return true, nil
	}
	token := signature
	if token == "" {
		sum := sha256.Sum256(body)
		token = hex.EncodeToString(sum[:])
	}
	return h.store.SetNX(c.Request.Context(), "webhook:"+token, "1", deliveryTokenTTL)
}
