package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"github.com/yukikurage/taskboard-api/internal/services"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestStoreFailureIsHidden(t *testing.T) {
	storeErr := errors.New("connection reset by peer")

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		mount  func(r *gin.Engine, db *gorm.DB)
	}{
		{
			name:   "list teams",
			method: http.MethodGet,
			path:   "/teams",
			mount: func(r *gin.Engine, db *gorm.DB) {
				h := NewCatalogHandler(services.NewCatalogService(
					repository.NewTeamRepository(db), repository.NewProjectRepository(db), repository.NewTagRepository(db)))
				r.GET("/teams", h.ListTeams)
			},
		},
		{
			name:   "signup",
			method: http.MethodPost,
			path:   "/auth/signup",
			body:   map[string]string{"name": "A", "email": "a@example.com", "password": "p"},
			mount: func(r *gin.Engine, db *gorm.DB) {
				h := NewAuthHandler(services.NewAuthService(repository.NewUserRepository(db), nil))
				r.POST("/auth/signup", h.Signup)
			},
		},
		{
			name:   "list tasks",
			method: http.MethodGet,
			path:   "/tasks",
			mount: func(r *gin.Engine, db *gorm.DB) {
				h := NewTaskHandler(services.NewTaskService(
					repository.NewTaskRepository(db), repository.NewUserRepository(db),
					repository.NewTeamRepository(db), repository.NewProjectRepository(db)))
				r.GET("/tasks", h.ListTasks)
			},
		},
		{
			name:   "pending report",
			method: http.MethodGet,
			path:   "/report/pending",
			mount: func(r *gin.Engine, db *gorm.DB) {
				h := NewReportHandler(services.NewReportService(
					repository.NewTaskRepository(db), repository.NewUserRepository(db),
					repository.NewTeamRepository(db), repository.NewProjectRepository(db)))
				r.GET("/report/pending", h.PendingWork)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectQuery("SELECT").WillReturnError(storeErr)

			r := gin.New()
			tt.mount(r, db)

			w := performRequest(r, tt.method, tt.path, tt.body)
			apiErr := requireAPIError(t, w, http.StatusInternalServerError, apierrors.ErrCodeStoreFailure)
			assert.Equal(t, "Internal server error.", apiErr.Message)
			assert.NotContains(t, w.Body.String(), storeErr.Error())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
