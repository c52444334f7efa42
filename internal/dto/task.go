package dto

import (
	"time"

	"github.com/yukikurage/taskboard-api/internal/models"
)

// TaskDTO represents a task in API responses with its references expanded
type TaskDTO struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Project        *ProjectDTO       `json:"project"`
	Team           *TeamDTO          `json:"team"`
	Owners         []UserDTO         `json:"owners"`
	Tags           []string          `json:"tags"`
	Status         models.TaskStatus `json:"status"`
	TimeToComplete int               `json:"timeToComplete"`
	DueDate        time.Time         `json:"dueDate"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:             task.ID,
		Name:           task.Name,
		Owners:         ToUserDTOs(task.Owners),
		Tags:           task.TagNames(),
		Status:         task.Status,
		TimeToComplete: task.TimeToComplete,
		DueDate:        task.DueDate,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}

	// Include project if preloaded
	if task.Project.ID != "" {
		project := ToProjectDTO(task.Project)
		dto.Project = &project
	}

	// Include team if preloaded
	if task.Team.ID != "" {
		team := ToTeamDTO(task.Team)
		dto.Team = &team
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		out[i] = ToTaskDTO(task)
	}
	return out
}
