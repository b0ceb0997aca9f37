package supabase

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
	"storybloom-admin-backend/internal/config"
	"storybloom-admin-backend/internal/models"
)

// Client wraps the Supabase PostgREST API. The read-only catalog tables are
// served through it, so the console can browse templates and projects even
// when no direct database connection is configured.
type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}

type videoTemplateRow struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	TemplateType string          `json:"template_type"`
	Structure    json.RawMessage `json:"structure"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (c *Client) ListVideoTemplates() ([]models.VideoTemplate, error) {
	var rows []videoTemplateRow
	_, err := c.Supabase.From("video_templates").Select("*", "", false).ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list video templates: %w", err)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	templates := make([]models.VideoTemplate, len(rows))
	for i, row := range rows {
		templates[i] = models.VideoTemplate{
			ID:           row.ID,
			Name:         row.Name,
			TemplateType: row.TemplateType,
			Structure:    row.Structure,
			CreatedAt:    row.CreatedAt,
		}
	}

	return templates, nil
}

type contentProjectRow struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Theme     string          `json:"theme"`
	TargetAge *string         `json:"target_age"`
	Duration  *int64          `json:"duration"`
	Status    string          `json:"status"`
	Metadata  json.RawMessage `json:"metadata"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (c *Client) ListContentProjects() ([]models.ContentProject, error) {
	var rows []contentProjectRow
	_, err := c.Supabase.From("content_projects").Select("*", "", false).ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list content projects: %w", err)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })

	projects := make([]models.ContentProject, len(rows))
	for i, row := range rows {
		p := models.ContentProject{
			ID:        row.ID,
			Title:     row.Title,
			Theme:     row.Theme,
			Status:    row.Status,
			Metadata:  row.Metadata,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
		if row.TargetAge != nil {
			p.TargetAge.String = *row.TargetAge
			p.TargetAge.Valid = true
		}
		if row.Duration != nil {
			p.Duration.Int64 = *row.Duration
			p.Duration.Valid = true
		}
		projects[i] = p
	}

	return projects, nil
}
