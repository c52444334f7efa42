package database

import (
	"fmt"
	"log"

	"github.com/yukikurage/taskboard-api/internal/models"
	"gorm.io/gorm"
)

type taskIndex struct {
	name    string
	columns string
}

// taskIndexes back the task filters, the due-date sort and the reports.
var taskIndexes = []taskIndex{
	{"idx_tasks_status", "status"},
	{"idx_tasks_due_date", "due_date"},
	{"idx_tasks_updated_at", "updated_at"},
	{"idx_tasks_team_id", "team_id"},
	{"idx_tasks_project_id", "project_id"},
}

// AddIndexes adds the secondary indexes on tasks that are not declared on the
// model itself. Existing indexes are left alone.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range taskIndexes {
		if migrator.HasIndex(&models.Task{}, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON tasks (%s)", idx.name, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on tasks(%s)", idx.name, idx.columns)
	}

	return nil
}
