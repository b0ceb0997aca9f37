package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"storybloom-admin-backend/internal/models"
	"storybloom-admin-backend/internal/supabase"
)

// CatalogHandler serves the read-only template and project catalogs the
// admin console browses. It prefers the direct database connection and
// falls back to the Supabase PostgREST API when none is configured.
type CatalogHandler struct {
	dbClient  *supabase.DatabaseClient
	apiClient *supabase.Client
}

func NewCatalogHandler(dbClient *supabase.DatabaseClient, apiClient *supabase.Client) *CatalogHandler {
	return &CatalogHandler{
		dbClient:  dbClient,
		apiClient: apiClient,
	}
}

var errNoCatalogSource = errors.New("no database or supabase client available")

func (h *CatalogHandler) listTemplates() ([]models.VideoTemplate, error) {
	if h.dbClient != nil {
		return h.dbClient.ListVideoTemplates()
	}
	if h.apiClient != nil {
		return h.apiClient.ListVideoTemplates()
	}
	return nil, errNoCatalogSource
}

func (h *CatalogHandler) listProjects() ([]models.ContentProject, error) {
	if h.dbClient != nil {
		return h.dbClient.ListContentProjects()
	}
	if h.apiClient != nil {
		return h.apiClient.ListContentProjects()
	}
	return nil, errNoCatalogSource
}

func (h *CatalogHandler) ListTemplates(c *gin.Context) {
	templates, err := h.listTemplates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list templates",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.TemplateResponse, len(templates))
	for i, t := range templates {
		responses[i] = models.TemplateResponse{
			ID:           t.ID.String(),
			Name:         t.Name,
			TemplateType: t.TemplateType,
		}
	}

	c.JSON(http.StatusOK, models.TemplateListResponse{Templates: responses})
}

func (h *CatalogHandler) ListProjects(c *gin.Context) {
	projects, err := h.listProjects()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list projects",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.ProjectResponse, len(projects))
	for i, p := range projects {
		responses[i] = models.ProjectResponse{
			ID:        p.ID.String(),
			Title:     p.Title,
			Theme:     p.Theme,
			Status:    p.Status,
			CreatedAt: p.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, models.ProjectListResponse{Projects: responses})
}
