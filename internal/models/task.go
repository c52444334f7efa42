package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusBlocked    TaskStatus = "Blocked"
)

// TaskStatuses lists every status a task may hold.
var TaskStatuses = []TaskStatus{
	TaskStatusToDo,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusBlocked,
}

// Valid reports whether s is one of TaskStatuses.
func (s TaskStatus) Valid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Task struct {
	ID             string     `gorm:"type:varchar(36);primarykey"`
	Name           string     `gorm:"type:varchar(255);not null"`
	ProjectID      string     `gorm:"type:varchar(36);not null"`
	TeamID         string     `gorm:"type:varchar(36);not null"`
	Status         TaskStatus `gorm:"type:varchar(20);not null;default:'To Do';check:status IN ('To Do','In Progress','Completed','Blocked')"`
	TimeToComplete int        `gorm:"not null;default:1"`
	DueDate        time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`

	// Relations
	Project Project   `gorm:"foreignKey:ProjectID"`
	Team    Team      `gorm:"foreignKey:TeamID"`
	Owners  []User    `gorm:"many2many:task_owners"`
	Tags    []TaskTag `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TagNames returns the task's labels in stored order.
func (t *Task) TagNames() []string {
	names := make([]string, len(t.Tags))
	for i, tag := range t.Tags {
		names[i] = tag.Name
	}
	return names
}

// SetTagNames replaces the task's labels, dropping blanks and duplicates.
func (t *Task) SetTagNames(names []string) {
	seen := make(map[string]struct{}, len(names))
	tags := make([]TaskTag, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		tags = append(tags, TaskTag{TaskID: t.ID, Name: name})
	}
	t.Tags = tags
}

// OwnerIDs returns the identifiers of the loaded owners.
func (t *Task) OwnerIDs() []string {
	ids := make([]string, len(t.Owners))
	for i, owner := range t.Owners {
		ids[i] = owner.ID
	}
	return ids
}

// TaskOwner is a row of the task_owners join table created for Task.Owners.
type TaskOwner struct {
	TaskID string `gorm:"type:varchar(36);primarykey"`
	UserID string `gorm:"type:varchar(36);primarykey"`
}

func (TaskOwner) TableName() string {
	return "task_owners"
}

// TaskTag is a single free-form label attached to a task.
type TaskTag struct {
	TaskID string `gorm:"type:varchar(36);primarykey"`
	Name   string `gorm:"type:varchar(255);primarykey;index"`
}

// DueDate derives a task's due date from its creation time and the number of
// days it should take. Days are calendar days in createdAt's location.
func DueDate(createdAt time.Time, timeToComplete int) time.Time {
	return createdAt.AddDate(0, 0, timeToComplete)
}
