package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"storybloom-admin-backend/internal/models"
	"storybloom-admin-backend/internal/storage"
)

// VideosHandler manages the rendered-video bucket.
type VideosHandler struct {
	s3Client *storage.Client
}

func NewVideosHandler(s3Client *storage.Client) *VideosHandler {
	return &VideosHandler{s3Client: s3Client}
}

func (h *VideosHandler) ListVideos(c *gin.Context) {
	if h.s3Client == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "video storage not configured"})
		return
	}

	prefix := c.DefaultQuery("prefix", "videos/")
	objects, err := h.s3Client.List(c.Request.Context(), prefix)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list videos",
			Message: err.Error(),
		})
		return
	}

	videos := make([]models.VideoObjectResponse, len(objects))
	for i, obj := range objects {
		videos[i] = models.VideoObjectResponse{
			Key:          obj.Key,
			URL:          h.s3Client.FileURL(obj.Key),
			Size:         obj.Size,
			LastModified: obj.LastModified,
		}
	}

	c.JSON(http.StatusOK, models.VideoListResponse{Videos: videos})
}

func (h *VideosHandler) DeleteVideo(c *gin.Context) {
	if h.s3Client == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "video storage not configured"})
		return
	}

	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "key query parameter is required"})
		return
	}

	if err := h.s3Client.Delete(c.Request.Context(), key); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete video",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": key})
}

func (h *VideosHandler) PresignVideo(c *gin.Context) {
	if h.s3Client == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "video storage not configured"})
		return
	}

	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "key query parameter is required"})
		return
	}

	expiresIn := 3600
	if raw := c.Query("expires_in"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 86400 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid expires_in",
				Message: "expires_in must be between 1 and 86400 seconds",
			})
			return
		}
		expiresIn = parsed
	}

	url, err := h.s3Client.PresignedURL(c.Request.Context(), key, time.Duration(expiresIn)*time.Second)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to presign video url",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.PresignResponse{
		Key:       key,
		URL:       url,
		ExpiresIn: expiresIn,
	})
}
