package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	"storybloom-admin-backend/internal/letterhunt"
	"storybloom-admin-backend/internal/models"
	"storybloom-admin-backend/internal/render"
	"storybloom-admin-backend/internal/storage"
	"storybloom-admin-backend/internal/supabase"
)

// RenderService finalizes render jobs reported by the pipeline webhook:
// it archives completed outputs into the video bucket, records them as
// approved video assets, and updates the originating request row.
type RenderService struct {
	dbClient     *supabase.DatabaseClient
	renderClient *render.Client
	s3Client     *storage.Client
}

func NewRenderService(dbClient *supabase.DatabaseClient, renderClient *render.Client, s3Client *storage.Client) *RenderService {
	return &RenderService{
		dbClient:     dbClient,
		renderClient: renderClient,
		s3Client:     s3Client,
	}
}

// HandleRenderCompleted archives the rendered video and marks the request
// completed. When the video bucket is not configured the pipeline's own
// output URL is recorded instead.
func (s *RenderService) HandleRenderCompleted(ctx context.Context, requestID, outputURL string) error {
	reqID, err := uuid.Parse(requestID)
	if err != nil {
		return fmt.Errorf("invalid request id %q: %w", requestID, err)
	}

	req, err := s.dbClient.GetLetterHuntRequest(reqID)
	if err != nil {
		return fmt.Errorf("failed to load request %s: %w", reqID, err)
	}

	finalURL := outputURL
	if s.s3Client != nil {
		archivedURL, archiveErr := s.archiveVideo(ctx, reqID, outputURL)
		if archiveErr != nil {
			log.Printf("failed to archive render output for request %s, keeping pipeline url: %v", reqID, archiveErr)
		} else {
			finalURL = archivedURL
		}
	}

	asset := &models.Asset{
		ID:     uuid.New(),
		Type:   models.AssetTypeVideo,
		Status: models.AssetStatusApproved,
		URL:    sql.NullString{String: finalURL, Valid: true},
		Theme:  req.Theme,
		Metadata: models.AssetMetadata{
			Template:     letterhunt.TemplateName,
			ChildName:    req.ChildName,
			TargetLetter: req.TargetLetter,
			VideoType:    "renderedOutput",
		},
	}
	if err := s.dbClient.CreateAsset(asset); err != nil {
		log.Printf("failed to record rendered video asset for request %s: %v", reqID, err)
	}

	if err := s.dbClient.CompleteLetterHuntRequest(reqID, finalURL); err != nil {
		return fmt.Errorf("failed to complete request %s: %w", reqID, err)
	}

	log.Printf("render completed for request %s: %s", reqID, finalURL)
	return nil
}

func (s *RenderService) archiveVideo(ctx context.Context, reqID uuid.UUID, outputURL string) (string, error) {
	data, err := s.renderClient.DownloadFile(outputURL)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}

	key := fmt.Sprintf("videos/letter-hunt/%s.mp4", reqID)
	if err := s.s3Client.Upload(ctx, key, "video/mp4", bytes.NewReader(data), int64(len(data))); err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}

	return s.s3Client.FileURL(key), nil
}

// HandleRenderFailed records the failure message on the request row.
func (s *RenderService) HandleRenderFailed(requestID, errorMsg string) error {
	reqID, err := uuid.Parse(requestID)
	if err != nil {
		return fmt.Errorf("invalid request id %q: %w", requestID, err)
	}

	if errorMsg == "" {
		errorMsg = "render failed without error detail"
	}
	if err := s.dbClient.UpdateLetterHuntRequestError(reqID, errorMsg); err != nil {
		return fmt.Errorf("failed to mark request %s failed: %w", reqID, err)
	}

	log.Printf("render failed for request %s: %s", reqID, errorMsg)
	return nil
}
