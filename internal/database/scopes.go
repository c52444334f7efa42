package database

import (
	"gorm.io/gorm"
)

// HasTag restricts a task query to tasks labelled with tag.
func HasTag(tag string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("EXISTS (SELECT 1 FROM task_tags WHERE task_tags.task_id = tasks.id AND task_tags.name = ?)", tag)
	}
}

// HasOwner restricts a task query to tasks owned by userID.
func HasOwner(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("EXISTS (SELECT 1 FROM task_owners WHERE task_owners.task_id = tasks.id AND task_owners.user_id = ?)", userID)
	}
}

// OrderByDueDate sorts a task query by due date.
func OrderByDueDate(desc bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if desc {
			return db.Order("tasks.due_date DESC")
		}
		return db.Order("tasks.due_date ASC")
	}
}
