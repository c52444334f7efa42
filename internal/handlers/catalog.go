package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/dto"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/services"
)

// CatalogHandler serves teams, projects and tags.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

type namedRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func bindNamed(c *gin.Context) (services.NamedInput, bool) {
	var req namedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return services.NamedInput{}, false
	}
	return services.NamedInput{Name: req.Name, Description: req.Description}, true
}

// CreateTeam creates a team
func (h *CatalogHandler) CreateTeam(c *gin.Context) {
	input, ok := bindNamed(c)
	if !ok {
		return
	}

	team, err := h.catalogService.CreateTeam(input)
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Team created successfully",
		"team":    dto.ToTeamDTO(*team),
	})
}

// ListTeams returns all teams
func (h *CatalogHandler) ListTeams(c *gin.Context) {
	teams, err := h.catalogService.ListTeams()
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Teams fetched successfully.",
		"teams":   dto.ToTeamDTOs(teams),
	})
}

// CreateProject creates a project
func (h *CatalogHandler) CreateProject(c *gin.Context) {
	input, ok := bindNamed(c)
	if !ok {
		return
	}

	project, err := h.catalogService.CreateProject(input)
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully.",
		"project": dto.ToProjectDTO(*project),
	})
}

// ListProjects returns all projects
func (h *CatalogHandler) ListProjects(c *gin.Context) {
	projects, err := h.catalogService.ListProjects()
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Projects fetched successfully.",
		"projects": dto.ToProjectDTOs(projects),
	})
}

// CreateTag creates a tag
func (h *CatalogHandler) CreateTag(c *gin.Context) {
	input, ok := bindNamed(c)
	if !ok {
		return
	}

	tag, err := h.catalogService.CreateTag(input)
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tag created successfully.",
		"tag":     dto.ToTagDTO(*tag),
	})
}

// ListTags returns all tags
func (h *CatalogHandler) ListTags(c *gin.Context) {
	tags, err := h.catalogService.ListTags()
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tags fetched successfully.",
		"tags":    dto.ToTagDTOs(tags),
	})
}

func respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTeamNameTaken),
		errors.Is(err, services.ErrProjectNameTaken),
		errors.Is(err, services.ErrTagNameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNameRequired):
		apierrors.InvalidParameter(c, err.Error())
	default:
		respondInternalError(c, err)
	}
}
