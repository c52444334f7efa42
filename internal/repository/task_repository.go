package repository

import (
	"fmt"
	"time"

	"github.com/yukikurage/taskboard-api/internal/database"
	"github.com/yukikurage/taskboard-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// withReferences preloads everything a task response expands.
func withReferences(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Owners", func(db *gorm.DB) *gorm.DB {
			return db.Order("users.created_at ASC")
		}).
		Preload("Team").
		Preload("Project").
		Preload("Tags")
}

// Create creates a new task with its owner and tag rows in one transaction
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		return replaceReferences(tx, task)
	})
}

// FindByID finds a task by ID with owners, team, project and tags loaded
func (r *GormTaskRepository) FindByID(id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Scopes(withReferences).Where("tasks.id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks matching the filter
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}

	query := r.db.Model(&models.Task{})

	for _, tag := range filter.Tags {
		query = query.Scopes(database.HasTag(tag))
	}
	for _, ownerID := range filter.OwnerIDs {
		query = query.Scopes(database.HasOwner(ownerID))
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.TeamID != nil {
		query = query.Where("tasks.team_id = ?", *filter.TeamID)
	}

	if filter.Sort != nil {
		query = query.Scopes(database.OrderByDueDate(filter.Sort.Descending))
	} else {
		query = query.Order("tasks.created_at ASC")
	}

	if err := query.Scopes(withReferences).Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update writes the task's own columns and replaces its owner and tag rows.
// It never inserts: a task that no longer exists yields gorm.ErrRecordNotFound.
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Task{}).Where("id = ?", task.ID).Updates(map[string]interface{}{
			"name":             task.Name,
			"project_id":       task.ProjectID,
			"team_id":          task.TeamID,
			"status":           task.Status,
			"time_to_complete": task.TimeToComplete,
			"due_date":         task.DueDate,
			"updated_at":       task.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return replaceReferences(tx, task)
	})
}

// Delete removes a task together with its owner and tag rows
func (r *GormTaskRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskOwner{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListCompletedSince returns completed tasks updated at or after since
func (r *GormTaskRepository) ListCompletedSince(since time.Time) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.Scopes(withReferences).
		Where("tasks.status = ? AND tasks.updated_at >= ?", models.TaskStatusCompleted, since).
		Order("tasks.updated_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// SumPendingTimeToComplete totals timeToComplete over tasks that are not completed
func (r *GormTaskRepository) SumPendingTimeToComplete() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Task{}).
		Select("COALESCE(SUM(time_to_complete), 0)").
		Where("status <> ?", models.TaskStatusCompleted).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CountCompletedBy counts completed tasks per team, project or owner
func (r *GormTaskRepository) CountCompletedBy(dimension GroupDimension) ([]GroupCount, error) {
	counts := []GroupCount{}

	var query *gorm.DB
	switch dimension {
	case GroupByTeam:
		query = r.db.Model(&models.Task{}).
			Select("tasks.team_id AS group_id, COUNT(*) AS total").
			Group("tasks.team_id")
	case GroupByProject:
		query = r.db.Model(&models.Task{}).
			Select("tasks.project_id AS group_id, COUNT(*) AS total").
			Group("tasks.project_id")
	case GroupByOwners:
		query = r.db.Model(&models.Task{}).
			Select("task_owners.user_id AS group_id, COUNT(*) AS total").
			Joins("JOIN task_owners ON task_owners.task_id = tasks.id").
			Group("task_owners.user_id")
	default:
		return nil, fmt.Errorf("unsupported group dimension %q", dimension)
	}

	if err := query.
		Where("tasks.status = ?", models.TaskStatusCompleted).
		Order("group_id ASC").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// replaceReferences rewrites the task_owners and task_tags rows of task.
func replaceReferences(tx *gorm.DB, task *models.Task) error {
	if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskOwner{}).Error; err != nil {
		return err
	}
	if len(task.Owners) > 0 {
		owners := make([]models.TaskOwner, len(task.Owners))
		for i, owner := range task.Owners {
			owners[i] = models.TaskOwner{TaskID: task.ID, UserID: owner.ID}
		}
		if err := tx.Create(&owners).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskTag{}).Error; err != nil {
		return err
	}
	if len(task.Tags) > 0 {
		for i := range task.Tags {
			task.Tags[i].TaskID = task.ID
		}
		if err := tx.Create(&task.Tags).Error; err != nil {
			return err
		}
	}

	return nil
}
