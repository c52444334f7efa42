package repository

import (
	"time"

	"github.com/yukikurage/taskboard-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByIDs returns the users matching ids; unknown ids are skipped
	FindByIDs(ids []string) ([]models.User, error)

	// List returns every user
	List() ([]models.User, error)
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	Create(team *models.Team) error
	FindByID(id string) (*models.Team, error)
	FindByName(name string) (*models.Team, error)
	FindByIDs(ids []string) ([]models.Team, error)
	List() ([]models.Team, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project) error
	FindByID(id string) (*models.Project, error)
	FindByName(name string) (*models.Project, error)
	FindByIDs(ids []string) ([]models.Project, error)
	List() ([]models.Project, error)
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	Create(tag *models.Tag) error
	FindByName(name string) (*models.Tag, error)
	List() ([]models.Tag, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a task together with its owners and tags
	Create(task *models.Task) error

	// FindByID finds a task by ID with its references loaded
	FindByID(id string) (*models.Task, error)

	// List retrieves tasks matching filter with references loaded
	List(filter TaskFilter) ([]models.Task, error)

	// Update saves task fields and replaces its owners and tags
	Update(task *models.Task) error

	// Delete removes a task and its owner and tag rows
	Delete(id string) error

	// ListCompletedSince returns completed tasks updated at or after since
	ListCompletedSince(since time.Time) ([]models.Task, error)

	// SumPendingTimeToComplete totals timeToComplete over tasks that are not completed
	SumPendingTimeToComplete() (int64, error)

	// CountCompletedBy counts completed tasks per value of the given column
	CountCompletedBy(dimension GroupDimension) ([]GroupCount, error)
}

// TaskFilter holds filtering options for listing tasks. Nil or empty fields
// impose no constraint.
type TaskFilter struct {
	Tags      []string
	Status    *models.TaskStatus
	OwnerIDs  []string
	ProjectID *string
	TeamID    *string
	Sort      *TaskSort
}

// TaskSort orders a task listing by due date.
type TaskSort struct {
	Descending bool
}

// GroupDimension names a task reference that completed tasks can be grouped by.
type GroupDimension string

const (
	GroupByTeam    GroupDimension = "team"
	GroupByOwners  GroupDimension = "owners"
	GroupByProject GroupDimension = "project"
)

// GroupCount is one bucket of a grouped count.
type GroupCount struct {
	GroupID string
	Total   int64
}
