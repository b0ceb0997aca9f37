package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"storybloom-admin-backend/internal/generation"
	"storybloom-admin-backend/internal/letterhunt"
	"storybloom-admin-backend/internal/models"
	"storybloom-admin-backend/internal/render"
	"storybloom-admin-backend/internal/supabase"
)

// generateSpacing throttles sequential generation calls so the batch
// endpoint does not hammer the generation service.
const generateSpacing = 2 * time.Second

type LetterHuntHandler struct {
	dbClient     *supabase.DatabaseClient
	resolver     *letterhunt.Resolver
	genClient    *generation.Client
	renderClient *render.Client
	callbackURL  string
}

func NewLetterHuntHandler(
	dbClient *supabase.DatabaseClient,
	resolver *letterhunt.Resolver,
	genClient *generation.Client,
	renderClient *render.Client,
	callbackURL string,
) *LetterHuntHandler {
	return &LetterHuntHandler{
		dbClient:     dbClient,
		resolver:     resolver,
		genClient:    genClient,
		renderClient: renderClient,
		callbackURL:  callbackURL,
	}
}

func requestToResponse(req models.LetterHuntRequest) models.LetterHuntRequestResponse {
	resp := models.LetterHuntRequestResponse{
		ID:           req.ID.String(),
		ChildName:    req.ChildName,
		TargetLetter: req.TargetLetter,
		Theme:        req.Theme,
		Status:       req.Status,
		CreatedAt:    req.CreatedAt,
		UpdatedAt:    req.UpdatedAt,
	}
	if req.SubmittedVideoURL.Valid {
		resp.SubmittedVideoURL = req.SubmittedVideoURL.String
	}
	if req.ErrorMessage.Valid {
		resp.ErrorMessage = req.ErrorMessage.String
	}
	return resp
}

func (h *LetterHuntHandler) CreateRequest(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	var req models.CreateLetterHuntRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	req.ChildName = strings.TrimSpace(req.ChildName)
	if req.ChildName == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "child_name is required"})
		return
	}

	letter := strings.ToUpper(strings.TrimSpace(req.TargetLetter))
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid target letter",
			Message: "target_letter must be a single letter A-Z",
		})
		return
	}

	theme := strings.TrimSpace(req.Theme)
	if theme == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "theme is required"})
		return
	}

	created, err := h.dbClient.CreateLetterHuntRequest(req.ChildName, letter, theme)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create request",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, requestToResponse(*created))
}

func (h *LetterHuntHandler) ListRequests(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	requests, err := h.dbClient.ListLetterHuntRequests()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list requests",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.LetterHuntRequestResponse, len(requests))
	for i, req := range requests {
		responses[i] = requestToResponse(req)
	}

	c.JSON(http.StatusOK, models.LetterHuntRequestListResponse{Requests: responses})
}

func (h *LetterHuntHandler) GetRequest(c *gin.Context) {
	req, ok := h.loadRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, requestToResponse(*req))
}

// GetPayload resolves the current asset payload for a request and persists
// the snapshot so the request row always reflects the last resolution.
func (h *LetterHuntHandler) GetPayload(c *gin.Context) {
	req, ok := h.loadRequest(c)
	if !ok {
		return
	}

	payload := h.resolver.Resolve(c.Request.Context(), letterhunt.Request{
		ChildName:    req.ChildName,
		TargetLetter: req.TargetLetter,
		Theme:        req.Theme,
	})

	if snapshot, err := json.Marshal(payload); err == nil {
		if err := h.dbClient.UpdateLetterHuntRequestPayload(req.ID, snapshot); err != nil {
			log.Printf("failed to persist payload snapshot for request %s: %v", req.ID, err)
		}
	}

	c.JSON(http.StatusOK, payload)
}

// GenerateSlot generates one asset for a single slot and records it as a
// pending candidate for review.
func (h *LetterHuntHandler) GenerateSlot(c *gin.Context) {
	req, ok := h.loadRequest(c)
	if !ok {
		return
	}

	if h.genClient == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "generation service not configured"})
		return
	}

	var body models.GenerateSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	def, found := letterhunt.SlotByKey(letterhunt.SlotKey(body.Slot))
	if !found {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "unknown slot",
			Message: fmt.Sprintf("%q is not a letter hunt slot", body.Slot),
		})
		return
	}

	lhReq := letterhunt.Request{
		ChildName:    req.ChildName,
		TargetLetter: req.TargetLetter,
		Theme:        req.Theme,
	}

	asset, err := h.generateForSlot(def, lhReq)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "generation failed",
			Message: err.Error(),
		})
		return
	}

	if err := h.dbClient.CreateAsset(asset); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "generation succeeded but failed to save asset",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.GenerateSlotResponse{
		RequestID: req.ID.String(),
		Slot:      string(def.Key),
		AssetID:   asset.ID.String(),
		Status:    letterhunt.StatusGenerating,
	})
}

// GenerateMissing resolves the payload, then walks the missing slots in
// template order generating each one sequentially. Video slots are skipped:
// the generation service only produces images and audio.
func (h *LetterHuntHandler) GenerateMissing(c *gin.Context) {
	req, ok := h.loadRequest(c)
	if !ok {
		return
	}

	if h.genClient == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "generation service not configured"})
		return
	}

	lhReq := letterhunt.Request{
		ChildName:    req.ChildName,
		TargetLetter: req.TargetLetter,
		Theme:        req.Theme,
	}
	payload := h.resolver.Resolve(c.Request.Context(), lhReq)

	result := models.GenerateMissingResponse{RequestID: req.ID.String()}
	first := true
	for _, def := range letterhunt.Slots {
		desc, exists := payload.Slots[def.Key]
		if !exists || desc.Status != letterhunt.StatusMissing {
			continue
		}
		if def.Kind == models.AssetTypeVideo {
			result.Skipped = append(result.Skipped, string(def.Key))
			continue
		}

		if !first {
			time.Sleep(generateSpacing)
		}
		first = false

		asset, err := h.generateForSlot(def, lhReq)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", def.Key, err))
			continue
		}
		if err := h.dbClient.CreateAsset(asset); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", def.Key, err))
			continue
		}
		result.Generated = append(result.Generated, string(def.Key))
	}

	c.JSON(http.StatusOK, result)
}

func (h *LetterHuntHandler) generateForSlot(def letterhunt.SlotDef, req letterhunt.Request) (*models.Asset, error) {
	prompt := def.Describe(req)
	md := letterhunt.MetadataFor(def.Key, req)

	var generate func() (string, error)
	switch def.Kind {
	case models.AssetTypeImage:
		generate = func() (string, error) {
			return h.genClient.GenerateImage(generation.ImageRequest{
				Prompt:       prompt,
				Theme:        req.Theme,
				Template:     letterhunt.TemplateName,
				ChildName:    md.ChildName,
				TargetLetter: md.TargetLetter,
				ImageType:    md.ImageType,
			})
		}
	case models.AssetTypeAudio:
		generate = func() (string, error) {
			return h.genClient.GenerateAudio(generation.AudioRequest{
				Script:       prompt,
				Template:     letterhunt.TemplateName,
				ChildName:    md.ChildName,
				TargetLetter: md.TargetLetter,
				AssetPurpose: md.AssetPurpose,
			})
		}
	default:
		return nil, fmt.Errorf("slot %s requires a video, which must be uploaded manually", def.Key)
	}

	var assetURL string
	err := h.genClient.RetryWithBackoff(func() error {
		url, genErr := generate()
		if genErr != nil {
			return genErr
		}
		assetURL = url
		return nil
	}, 3)
	if err != nil {
		return nil, err
	}

	return &models.Asset{
		ID:       uuid.New(),
		Type:     def.Kind,
		Status:   models.AssetStatusPending,
		URL:      sql.NullString{String: assetURL, Valid: true},
		Theme:    req.Theme,
		Prompt:   sql.NullString{String: prompt, Valid: true},
		Metadata: md,
	}, nil
}

// SubmitRender resolves the payload one final time and hands it to the
// render pipeline. Generating slots are reported as missing; the pipeline
// substitutes placeholders for unfilled slots.
func (h *LetterHuntHandler) SubmitRender(c *gin.Context) {
	req, ok := h.loadRequest(c)
	if !ok {
		return
	}

	if h.renderClient == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "render service not configured"})
		return
	}

	lhReq := letterhunt.Request{
		ChildName:    req.ChildName,
		TargetLetter: req.TargetLetter,
		Theme:        req.Theme,
	}
	payload := h.resolver.Resolve(c.Request.Context(), lhReq)

	slots := make(map[string]render.SlotPayload, len(payload.Slots))
	for key, desc := range payload.Slots {
		status := desc.Status
		if status != letterhunt.StatusReady {
			status = letterhunt.StatusMissing
		}
		slots[string(key)] = render.SlotPayload{URL: desc.URL, Status: status}
	}

	renderReq := render.RenderRequest{
		Template:     letterhunt.TemplateName,
		ChildName:    req.ChildName,
		TargetLetter: req.TargetLetter,
		Theme:        req.Theme,
		Slots:        slots,
		CallbackURL:  h.callbackURL,
	}

	var jobID string
	err := h.renderClient.RetryWithBackoff(func() error {
		var submitErr error
		jobID, submitErr = h.renderClient.SubmitRender(renderReq)
		return submitErr
	}, 3)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "failed to submit render",
			Message: err.Error(),
		})
		return
	}

	if snapshot, marshalErr := json.Marshal(payload); marshalErr == nil {
		if err := h.dbClient.UpdateLetterHuntRequestPayload(req.ID, snapshot); err != nil {
			log.Printf("failed to persist payload snapshot for request %s: %v", req.ID, err)
		}
	}
	if err := h.dbClient.UpdateLetterHuntRequestStatus(req.ID, models.RequestStatusSubmitted); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "render submitted but failed to update request status",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SubmitRenderResponse{
		RequestID: req.ID.String(),
		JobID:     jobID,
		Status:    models.RequestStatusSubmitted,
	})
}

func (h *LetterHuntHandler) loadRequest(c *gin.Context) (*models.LetterHuntRequest, bool) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return nil, false
	}

	requestID, err := uuid.Parse(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request id"})
		return nil, false
	}

	req, err := h.dbClient.GetLetterHuntRequest(requestID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "request not found",
			Message: err.Error(),
		})
		return nil, false
	}

	return req, true
}
