package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"storybloom-admin-backend/internal/models"
	"storybloom-admin-backend/internal/supabase"
)

type ChildrenHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewChildrenHandler(dbClient *supabase.DatabaseClient) *ChildrenHandler {
	return &ChildrenHandler{dbClient: dbClient}
}

func childToResponse(child models.Child) models.ChildResponse {
	resp := models.ChildResponse{
		ID:              child.ID.String(),
		Name:            child.Name,
		PrimaryInterest: child.PrimaryInterest,
	}
	if child.Age.Valid {
		resp.Age = child.Age.Int64
	}
	if child.Icon.Valid {
		resp.Icon = child.Icon.String
	}
	return resp
}

func (h *ChildrenHandler) ListChildren(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	children, err := h.dbClient.ListChildren()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list children",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.ChildResponse, len(children))
	for i, child := range children {
		responses[i] = childToResponse(child)
	}

	c.JSON(http.StatusOK, models.ChildListResponse{Children: responses})
}

func (h *ChildrenHandler) GetChild(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	childID, err := uuid.Parse(c.Param("child_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid child id"})
		return
	}

	child, err := h.dbClient.GetChild(childID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "child not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, childToResponse(*child))
}
