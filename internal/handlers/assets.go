package handlers

import (
	"database/sql"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"storybloom-admin-backend/internal/middleware"
	"storybloom-admin-backend/internal/models"
	"storybloom-admin-backend/internal/supabase"
)

type AssetsHandler struct {
	dbClient      *supabase.DatabaseClient
	storageClient *supabase.StorageClient
}

func NewAssetsHandler(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient) *AssetsHandler {
	return &AssetsHandler{
		dbClient:      dbClient,
		storageClient: storageClient,
	}
}

func assetToResponse(a models.Asset) models.AssetResponse {
	resp := models.AssetResponse{
		ID:        a.ID.String(),
		Type:      a.Type,
		Status:    a.Status,
		Theme:     a.Theme,
		Tags:      a.Tags,
		Metadata:  a.Metadata,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.URL.Valid {
		resp.URL = a.URL.String
	}
	if a.Prompt.Valid {
		resp.Prompt = a.Prompt.String
	}
	return resp
}

func (h *AssetsHandler) ListAssets(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	filter := supabase.ListAssetsFilter{
		Status:   c.Query("status"),
		Type:     c.Query("type"),
		Template: c.Query("template"),
	}
	if limit := c.Query("limit"); limit != "" {
		filter.Limit, _ = strconv.Atoi(limit)
	}
	if offset := c.Query("offset"); offset != "" {
		filter.Offset, _ = strconv.Atoi(offset)
	}

	assets, err := h.dbClient.ListAssets(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list assets",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.AssetResponse, len(assets))
	for i, a := range assets {
		responses[i] = assetToResponse(a)
	}

	c.JSON(http.StatusOK, models.AssetListResponse{Assets: responses})
}

func (h *AssetsHandler) GetAsset(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid asset id"})
		return
	}

	asset, err := h.dbClient.GetAsset(assetID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "asset not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, assetToResponse(*asset))
}

// ReviewAsset records an approve/reject decision and stamps the review
// record (safe zones, notes, reviewer, timestamp) into the metadata bag.
func (h *AssetsHandler) ReviewAsset(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid asset id"})
		return
	}

	var req models.ReviewAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if req.Decision != models.AssetStatusApproved && req.Decision != models.AssetStatusRejected {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid decision",
			Message: "decision must be \"approved\" or \"rejected\"",
		})
		return
	}

	reviewer := ""
	if email, exists := c.Get(middleware.UserEmailKey); exists {
		reviewer, _ = email.(string)
	}
	if reviewer == "" {
		if userID, exists := c.Get(middleware.UserIDKey); exists {
			reviewer, _ = userID.(string)
		}
	}

	now := time.Now().UTC()
	review := models.ReviewRecord{
		SafeZones:  req.SafeZones,
		Notes:      req.Notes,
		ReviewedBy: reviewer,
		ReviewedAt: &now,
	}

	asset, err := h.dbClient.UpdateAssetReview(assetID, req.Decision, review)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update asset review",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, assetToResponse(*asset))
}

// UploadAsset accepts a multipart file, stores it in Supabase storage, and
// creates a pending asset row carrying the template metadata from the form.
func (h *AssetsHandler) UploadAsset(c *gin.Context) {
	if h.dbClient == nil || h.storageClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "storage not available"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no file uploaded",
			Message: "please provide a file in the \"file\" form field",
		})
		return
	}

	assetType := c.PostForm("type")
	switch assetType {
	case models.AssetTypeImage, models.AssetTypeAudio, models.AssetTypeVideo:
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid asset type",
			Message: "type must be one of image, audio, video",
		})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to open file",
			Message: err.Error(),
		})
		return
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read file",
			Message: err.Error(),
		})
		return
	}

	assetID := uuid.New()
	contentType := contentTypeForFilename(fileHeader.Filename, assetType)

	_, publicURL, err := h.storageClient.UploadAsset(assetType, assetID, fileHeader.Filename, contentType, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to upload file",
			Message: err.Error(),
		})
		return
	}

	asset := &models.Asset{
		ID:     assetID,
		Type:   assetType,
		Status: models.AssetStatusPending,
		URL:    sql.NullString{String: publicURL, Valid: true},
		Theme:  c.PostForm("theme"),
		Metadata: models.AssetMetadata{
			Template:     c.PostForm("template"),
			ChildName:    c.PostForm("child_name"),
			TargetLetter: c.PostForm("target_letter"),
			ImageType:    c.PostForm("image_type"),
			AssetPurpose: c.PostForm("asset_purpose"),
			VideoType:    c.PostForm("video_type"),
		},
	}
	if prompt := c.PostForm("prompt"); prompt != "" {
		asset.Prompt = sql.NullString{String: prompt, Valid: true}
	}

	if err := h.dbClient.CreateAsset(asset); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "upload succeeded but failed to save asset",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.UploadAssetResponse{
		ID:     assetID.String(),
		URL:    publicURL,
		Status: models.AssetStatusPending,
	})
}

func contentTypeForFilename(filename, assetType string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	}

	switch assetType {
	case models.AssetTypeAudio:
		return "audio/mpeg"
	case models.AssetTypeVideo:
		return "video/mp4"
	}
	return "image/jpeg"
}
