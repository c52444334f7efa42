package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/taskboard-api/internal/constants"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound          = errors.New("task not found")
	ErrInvalidTeam           = errors.New("invalid team ID")
	ErrInvalidProject        = errors.New("invalid project ID")
	ErrInvalidOwners         = errors.New("one or more user IDs are invalid")
	ErrOwnersRequired        = errors.New("at least one owner is required")
	ErrInvalidStatus         = errors.New("status must be one of To Do, In Progress, Completed, Blocked")
	ErrInvalidTimeToComplete = errors.New("timeToComplete must be a positive number of days")
	ErrInvalidSort           = errors.New("sortBy must be dueDate and order must be asc or desc")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	teamRepo    repository.TeamRepository
	projectRepo repository.ProjectRepository
	now         func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, teamRepo repository.TeamRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		teamRepo:    teamRepo,
		projectRepo: projectRepo,
		now:         utcNow,
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name           string
	ProjectID      string
	TeamID         string
	OwnerIDs       []string
	Tags           []string
	Status         *string
	TimeToComplete *int
}

// UpdateTaskInput represents a partial update; nil fields are left unchanged
type UpdateTaskInput struct {
	Name           *string
	ProjectID      *string
	TeamID         *string
	OwnerIDs       *[]string
	Tags           *[]string
	Status         *string
	TimeToComplete *int
}

// TaskQuery is the set of optional filters and the sort accepted when
// listing tasks. Empty fields impose no constraint.
type TaskQuery struct {
	Tags    []string
	Status  string
	Owners  []string
	Project string
	Team    string
	SortBy  string
	Order   string
}

// Filter validates q and converts it into a repository filter.
func (q TaskQuery) Filter() (repository.TaskFilter, error) {
	filter := repository.TaskFilter{
		Tags:     nonEmpty(q.Tags),
		OwnerIDs: nonEmpty(q.Owners),
	}

	if q.Status != "" {
		status, err := parseStatus(q.Status)
		if err != nil {
			return repository.TaskFilter{}, err
		}
		filter.Status = &status
	}
	if q.Project != "" {
		project := q.Project
		filter.ProjectID = &project
	}
	if q.Team != "" {
		team := q.Team
		filter.TeamID = &team
	}

	switch q.SortBy {
	case "":
		if q.Order != "" {
			return repository.TaskFilter{}, ErrInvalidSort
		}
	case "dueDate":
		switch q.Order {
		case "", "asc":
			filter.Sort = &repository.TaskSort{}
		case "desc":
			filter.Sort = &repository.TaskSort{Descending: true}
		default:
			return repository.TaskFilter{}, ErrInvalidSort
		}
	default:
		return repository.TaskFilter{}, ErrInvalidSort
	}

	return filter, nil
}

// ListTasks returns tasks matching the query with references expanded
func (s *TaskService) ListTasks(query TaskQuery) ([]models.Task, error) {
	filter, err := query.Filter()
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task with references expanded
func (s *TaskService) GetTask(id string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask validates the task's references and stores it
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	status := models.TaskStatusToDo
	if input.Status != nil {
		parsed, err := parseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	days := constants.DefaultTimeToComplete
	if input.TimeToComplete != nil {
		if *input.TimeToComplete <= 0 {
			return nil, ErrInvalidTimeToComplete
		}
		days = *input.TimeToComplete
	}

	if err := s.ensureTeam(input.TeamID); err != nil {
		return nil, err
	}
	if err := s.ensureProject(input.ProjectID); err != nil {
		return nil, err
	}
	owners, err := s.resolveOwners(input.OwnerIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	task := &models.Task{
		Name:           name,
		ProjectID:      input.ProjectID,
		TeamID:         input.TeamID,
		Status:         status,
		TimeToComplete: days,
		DueDate:        models.DueDate(now, days),
		CreatedAt:      now,
		UpdatedAt:      now,
		Owners:         owners,
	}
	task.SetTagNames(input.Tags)

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.GetTask(task.ID)
}

// UpdateTask applies a partial update, re-deriving the due date when
// timeToComplete is supplied
func (s *TaskService) UpdateTask(id string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		task.Name = name
	}
	if input.Status != nil {
		status, err := parseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		task.Status = status
	}
	if input.TimeToComplete != nil {
		if *input.TimeToComplete <= 0 {
			return nil, ErrInvalidTimeToComplete
		}
		task.TimeToComplete = *input.TimeToComplete
		task.DueDate = models.DueDate(task.CreatedAt, task.TimeToComplete)
	}
	if input.TeamID != nil {
		if err := s.ensureTeam(*input.TeamID); err != nil {
			return nil, err
		}
		task.TeamID = *input.TeamID
	}
	if input.ProjectID != nil {
		if err := s.ensureProject(*input.ProjectID); err != nil {
			return nil, err
		}
		task.ProjectID = *input.ProjectID
	}
	if input.OwnerIDs != nil {
		owners, err := s.resolveOwners(*input.OwnerIDs)
		if err != nil {
			return nil, err
		}
		task.Owners = owners
	}
	if input.Tags != nil {
		task.SetTagNames(*input.Tags)
	}

	task.UpdatedAt = s.now()

	if err := s.taskRepo.Update(task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.GetTask(task.ID)
}

// DeleteTask removes a task and returns its state before deletion
func (s *TaskService) DeleteTask(id string) (*models.Task, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	return task, nil
}

func (s *TaskService) ensureTeam(id string) error {
	if id == "" {
		return ErrInvalidTeam
	}
	if _, err := s.teamRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidTeam
		}
		return fmt.Errorf("failed to verify team: %w", err)
	}
	return nil
}

func (s *TaskService) ensureProject(id string) error {
	if id == "" {
		return ErrInvalidProject
	}
	if _, err := s.projectRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidProject
		}
		return fmt.Errorf("failed to verify project: %w", err)
	}
	return nil
}

// resolveOwners loads the users behind ids, failing unless every id resolves
func (s *TaskService) resolveOwners(ids []string) ([]models.User, error) {
	ownerIDs := uniqueStrings(ids)
	if len(ownerIDs) == 0 {
		return nil, ErrOwnersRequired
	}

	users, err := s.userRepo.FindByIDs(ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to verify owners: %w", err)
	}
	if len(users) != len(ownerIDs) {
		return nil, ErrInvalidOwners
	}
	return users, nil
}

func parseStatus(value string) (models.TaskStatus, error) {
	status := models.TaskStatus(value)
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// uniqueStrings removes blanks and duplicates, keeping first occurrences
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		if v == "" {
			continue
		}
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}

func nonEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return uniqueStrings(values)
}
