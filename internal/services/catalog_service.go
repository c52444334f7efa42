package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTeamNameTaken    = errors.New("team already exists")
	ErrProjectNameTaken = errors.New("project already exists")
	ErrTagNameTaken     = errors.New("tag already exists")
)

// CatalogService manages teams, projects and tags: the named records a task
// can point at or be labelled with.
type CatalogService struct {
	teamRepo    repository.TeamRepository
	projectRepo repository.ProjectRepository
	tagRepo     repository.TagRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(teamRepo repository.TeamRepository, projectRepo repository.ProjectRepository, tagRepo repository.TagRepository) *CatalogService {
	return &CatalogService{
		teamRepo:    teamRepo,
		projectRepo: projectRepo,
		tagRepo:     tagRepo,
	}
}

// NamedInput is the body shared by team, project and tag creation.
type NamedInput struct {
	Name        string
	Description string
}

// CreateTeam creates a team with a unique name.
func (s *CatalogService) CreateTeam(input NamedInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if err := ensureNameFree(func() error {
		_, err := s.teamRepo.FindByName(name)
		return err
	}, ErrTeamNameTaken); err != nil {
		return nil, err
	}

	team := &models.Team{Name: name, Description: input.Description}
	if err := s.teamRepo.Create(team); err != nil {
		return nil, createError(err, ErrTeamNameTaken, "team")
	}
	return team, nil
}

// ListTeams returns every team.
func (s *CatalogService) ListTeams() ([]models.Team, error) {
	teams, err := s.teamRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// CreateProject creates a project with a unique name.
func (s *CatalogService) CreateProject(input NamedInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if err := ensureNameFree(func() error {
		_, err := s.projectRepo.FindByName(name)
		return err
	}, ErrProjectNameTaken); err != nil {
		return nil, err
	}

	project := &models.Project{Name: name, Description: input.Description}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, createError(err, ErrProjectNameTaken, "project")
	}
	return project, nil
}

// ListProjects returns every project.
func (s *CatalogService) ListProjects() ([]models.Project, error) {
	projects, err := s.projectRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// CreateTag creates a tag with a unique name.
func (s *CatalogService) CreateTag(input NamedInput) (*models.Tag, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if err := ensureNameFree(func() error {
		_, err := s.tagRepo.FindByName(name)
		return err
	}, ErrTagNameTaken); err != nil {
		return nil, err
	}

	tag := &models.Tag{Name: name, Description: input.Description}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, createError(err, ErrTagNameTaken, "tag")
	}
	return tag, nil
}

// ListTags returns every tag.
func (s *CatalogService) ListTags() ([]models.Tag, error) {
	tags, err := s.tagRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// ensureNameFree runs a lookup by name and reports taken when it finds a row.
func ensureNameFree(lookup func() error, taken error) error {
	err := lookup()
	if err == nil {
		return taken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check name: %w", err)
	}
	return nil
}

// createError maps a unique-index race to taken.
func createError(err, taken error, entity string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return taken
	}
	return fmt.Errorf("failed to create %s: %w", entity, err)
}
