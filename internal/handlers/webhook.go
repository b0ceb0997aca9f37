package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"storybloom-admin-backend/internal/models"
	"storybloom-admin-backend/internal/services"
)

// RenderWebhookPayload is what the render pipeline posts back when a job
// finishes.
type RenderWebhookPayload struct {
	Event     string `json:"event"`
	RequestID string `json:"request_id"`
	JobID     string `json:"job_id"`
	OutputURL string `json:"output_url,omitempty"`
	Error     string `json:"error,omitempty"`
}

type WebhookHandler struct {
	renderService *services.RenderService
	webhookToken  string
}

func NewWebhookHandler(renderService *services.RenderService, webhookToken string) *WebhookHandler {
	return &WebhookHandler{
		renderService: renderService,
		webhookToken:  webhookToken,
	}
}

// HandleRenderWebhook authenticates the pipeline callback and finalizes the
// job in the background so the pipeline gets an immediate acknowledgement.
func (h *WebhookHandler) HandleRenderWebhook(c *gin.Context) {
	if h.webhookToken == "" || c.GetHeader("x-webhook-token") != h.webhookToken {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid webhook token"})
		return
	}

	var payload RenderWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid webhook payload",
			Message: err.Error(),
		})
		return
	}

	if payload.RequestID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "request_id is required"})
		return
	}

	switch payload.Event {
	case "render_completed":
		if payload.OutputURL == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "output_url is required for render_completed"})
			return
		}
		go func(p RenderWebhookPayload) {
			if err := h.renderService.HandleRenderCompleted(context.Background(), p.RequestID, p.OutputURL); err != nil {
				log.Printf("render completion for request %s failed: %v", p.RequestID, err)
			}
		}(payload)
	case "render_failed":
		go func(p RenderWebhookPayload) {
			if err := h.renderService.HandleRenderFailed(p.RequestID, p.Error); err != nil {
				log.Printf("render failure handling for request %s failed: %v", p.RequestID, err)
			}
		}(payload)
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "unknown event",
			Message: payload.Event,
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}
