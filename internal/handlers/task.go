package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/dto"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/services"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Name           string   `json:"name" binding:"required"`
	Project        string   `json:"project"`
	Team           string   `json:"team"`
	Owners         []string `json:"owners"`
	Tags           []string `json:"tags"`
	Status         *string  `json:"status"`
	TimeToComplete *int     `json:"timeToComplete"`
}

// UpdateTaskRequest represents the request body for updating a task.
// Omitted fields are left unchanged.
type UpdateTaskRequest struct {
	Name           *string   `json:"name"`
	Project        *string   `json:"project"`
	Team           *string   `json:"team"`
	Owners         *[]string `json:"owners"`
	Tags           *[]string `json:"tags"`
	Status         *string   `json:"status"`
	TimeToComplete *int      `json:"timeToComplete"`
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Name:           req.Name,
		ProjectID:      req.Project,
		TeamID:         req.Team,
		OwnerIDs:       req.Owners,
		Tags:           req.Tags,
		Status:         req.Status,
		TimeToComplete: req.TimeToComplete,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// ListTasks returns tasks matching the query string filters.
// Repeated tags and owners parameters are combined with AND.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(services.TaskQuery{
		Tags:    c.QueryArray("tags"),
		Status:  c.Query("status"),
		Owners:  c.QueryArray("owners"),
		Project: c.Query("project"),
		Team:    c.Query("team"),
		SortBy:  c.Query("sortBy"),
		Order:   c.Query("order"),
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tasks fetched successfully.",
		"tasks":   dto.ToTaskDTOs(tasks),
	})
}

// GetTask returns a single task
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Param("id"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task fetched successfully.",
		"task":    dto.ToTaskDTO(*task),
	})
}

// UpdateTask applies a partial update to a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.UpdateTask(c.Param("id"), services.UpdateTaskInput{
		Name:           req.Name,
		ProjectID:      req.Project,
		TeamID:         req.Team,
		OwnerIDs:       req.Owners,
		Tags:           req.Tags,
		Status:         req.Status,
		TimeToComplete: req.TimeToComplete,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// DeleteTask deletes a task and echoes its last state
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, err := h.taskService.DeleteTask(c.Param("id"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrInvalidTeam),
		errors.Is(err, services.ErrInvalidProject),
		errors.Is(err, services.ErrInvalidOwners):
		apierrors.InvalidReference(c, err.Error())
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrOwnersRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidTimeToComplete),
		errors.Is(err, services.ErrInvalidSort):
		apierrors.InvalidParameter(c, err.Error())
	default:
		respondInternalError(c, err)
	}
}
