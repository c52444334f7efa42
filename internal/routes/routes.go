package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/config"
	"github.com/yukikurage/taskboard-api/internal/handlers"
	"github.com/yukikurage/taskboard-api/internal/middleware"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"github.com/yukikurage/taskboard-api/internal/services"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers over db and returns
// the engine serving the whole API.
func NewRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	tagRepo := repository.NewTagRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := services.NewTokenService(cfg, cfg.TokenTTL)

	h := &handlers.Handlers{
		Auth:    handlers.NewAuthHandler(services.NewAuthService(userRepo, tokens)),
		Tasks:   handlers.NewTaskHandler(services.NewTaskService(taskRepo, userRepo, teamRepo, projectRepo)),
		Catalog: handlers.NewCatalogHandler(services.NewCatalogService(teamRepo, projectRepo, tagRepo)),
		Reports: handlers.NewReportHandler(services.NewReportService(taskRepo, userRepo, teamRepo, projectRepo)),
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	Setup(r, h, middleware.RequireAuth(tokens))
	return r
}

func corsConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// Setup registers every route. auth guards everything except health, signup
// and login.
func Setup(r *gin.Engine, h *handlers.Handlers, auth gin.HandlerFunc) {
	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Taskboard API is running",
		})
	})

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/signup", h.Auth.Signup)
		authRoutes.POST("/login", h.Auth.Login)
		authRoutes.GET("/me", auth, h.Auth.GetCurrentUser)
	}

	r.GET("/users", auth, h.Auth.ListUsers)

	tasks := r.Group("/tasks", auth)
	{
		tasks.GET("", h.Tasks.ListTasks)
		tasks.POST("", h.Tasks.CreateTask)
		tasks.GET("/:id", h.Tasks.GetTask)
		tasks.POST("/:id", h.Tasks.UpdateTask)
		tasks.DELETE("/:id", h.Tasks.DeleteTask)
	}

	teams := r.Group("/teams", auth)
	{
		teams.GET("", h.Catalog.ListTeams)
		teams.POST("", h.Catalog.CreateTeam)
	}

	projects := r.Group("/projects", auth)
	{
		projects.GET("", h.Catalog.ListProjects)
		projects.POST("", h.Catalog.CreateProject)
	}

	tags := r.Group("/tags", auth)
	{
		tags.GET("", h.Catalog.ListTags)
		tags.POST("", h.Catalog.CreateTag)
	}

	report := r.Group("/report", auth)
	{
		report.GET("/last-week", h.Reports.CompletedLastWeek)
		report.GET("/pending", h.Reports.PendingWork)
		report.GET("/closed-tasks", h.Reports.ClosedTasks)
	}
}
