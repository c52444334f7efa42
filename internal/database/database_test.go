package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard-api/internal/config"
	"github.com/yukikurage/taskboard-api/internal/database"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/testutil"
)

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := database.Connect(&config.Config{DBDriver: "mongodb"})
	require.Error(t, err)
}

func TestMigrate_CreatesTablesAndIndexes(t *testing.T) {
	db := testutil.NewDB(t)
	migrator := db.Migrator()

	for _, table := range []string{"users", "teams", "projects", "tags", "tasks", "task_owners", "task_tags"} {
		assert.True(t, migrator.HasTable(table), table)
	}
	for _, idx := range []string{"idx_tasks_status", "idx_tasks_due_date", "idx_tasks_updated_at", "idx_tasks_team_id", "idx_tasks_project_id"} {
		assert.True(t, migrator.HasIndex(&models.Task{}, idx), idx)
	}

	// Running again is a no-op.
	require.NoError(t, database.Migrate(db))
}

func TestTaskStatusConstraint(t *testing.T) {
	db := testutil.NewDB(t)
	team := testutil.CreateTeam(t, db, "Core")
	project := testutil.CreateProject(t, db, "Launch")

	task := models.Task{
		Name:           "bad status",
		TeamID:         team.ID,
		ProjectID:      project.ID,
		Status:         models.TaskStatus("Done"),
		TimeToComplete: 1,
	}
	err := db.Omit("Owners", "Tags", "Team", "Project").Create(&task).Error
	require.Error(t, err, "the store rejects statuses outside the enumeration")
}

func TestScopes(t *testing.T) {
	db := testutil.NewDB(t)
	team := testutil.CreateTeam(t, db, "Core")
	project := testutil.CreateProject(t, db, "Launch")
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")

	testutil.CreateTask(t, db, testutil.TaskFixture{Name: "a", Team: team, Project: project, Owners: []models.User{alice}, Tags: []string{"x"}, TimeToComplete: 5})
	testutil.CreateTask(t, db, testutil.TaskFixture{Name: "b", Team: team, Project: project, Owners: []models.User{alice, bob}, Tags: []string{"x", "y"}, TimeToComplete: 2})

	var names []string
	require.NoError(t, db.Model(&models.Task{}).Scopes(database.HasTag("y")).Pluck("name", &names).Error)
	assert.Equal(t, []string{"b"}, names)

	names = nil
	require.NoError(t, db.Model(&models.Task{}).Scopes(database.HasOwner(alice.ID), database.HasOwner(bob.ID)).Pluck("name", &names).Error)
	assert.Equal(t, []string{"b"}, names)

	names = nil
	require.NoError(t, db.Model(&models.Task{}).Scopes(database.OrderByDueDate(false)).Pluck("name", &names).Error)
	assert.Equal(t, []string{"b", "a"}, names)

	names = nil
	require.NoError(t, db.Model(&models.Task{}).Scopes(database.OrderByDueDate(true)).Pluck("name", &names).Error)
	assert.Equal(t, []string{"a", "b"}, names)
}
