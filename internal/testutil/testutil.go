// Package testutil builds the in-memory stores and fixtures shared by the
// package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard-api/internal/database"
	"github.com/yukikurage/taskboard-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Secret is a fixed signing key.
type Secret string

func (s Secret) SigningKey() ([]byte, error) {
	return []byte(s), nil
}

// NewDB opens a migrated in-memory SQLite database that is closed when the
// test ends. The pool is pinned to one connection so every query sees the
// same database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser stores a user whose password is "password".
func CreateUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Name: name, Email: email, PasswordHash: string(hash)}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func CreateTeam(t *testing.T, db *gorm.DB, name string) models.Team {
	t.Helper()
	team := models.Team{Name: name}
	require.NoError(t, db.Create(&team).Error)
	return team
}

func CreateProject(t *testing.T, db *gorm.DB, name string) models.Project {
	t.Helper()
	project := models.Project{Name: name}
	require.NoError(t, db.Create(&project).Error)
	return project
}

// TaskFixture describes a task row written directly to the store.
type TaskFixture struct {
	Name           string
	Team           models.Team
	Project        models.Project
	Owners         []models.User
	Tags           []string
	Status         models.TaskStatus
	TimeToComplete int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateTask stores a task with its owner and tag rows. Zero fields fall back
// to a one-day "To Do" task created now.
func CreateTask(t *testing.T, db *gorm.DB, f TaskFixture) models.Task {
	t.Helper()

	if f.Status == "" {
		f.Status = models.TaskStatusToDo
	}
	if f.TimeToComplete == 0 {
		f.TimeToComplete = 1
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = f.CreatedAt
	}

	task := models.Task{
		Name:           f.Name,
		TeamID:         f.Team.ID,
		ProjectID:      f.Project.ID,
		Status:         f.Status,
		TimeToComplete: f.TimeToComplete,
		DueDate:        models.DueDate(f.CreatedAt, f.TimeToComplete),
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
	require.NoError(t, db.Omit("Owners", "Tags", "Team", "Project").Create(&task).Error)

	for _, owner := range f.Owners {
		require.NoError(t, db.Create(&models.TaskOwner{TaskID: task.ID, UserID: owner.ID}).Error)
	}
	for _, tag := range f.Tags {
		require.NoError(t, db.Create(&models.TaskTag{TaskID: task.ID, Name: tag}).Error)
	}

	task.Team = f.Team
	task.Project = f.Project
	task.Owners = f.Owners
	task.SetTagNames(f.Tags)
	return task
}
