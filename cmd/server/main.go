package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/teamhub/project-management-api/internal/config"
	"github.com/teamhub/project-management-api/internal/database"
	"github.com/teamhub/project-management-api/internal/handlers"
	"github.com/teamhub/project-management-api/internal/middleware"
	"github.com/teamhub/project-management-api/internal/repository"
	"github.com/teamhub/project-management-api/internal/services"
	"github.com/teamhub/project-management-api/internal/token"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode and logging format
	gin.SetMode(cfg.GinMode)
	if cfg.GinMode == "release" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	// Run migrations and seed the fixed role set
	if err := database.Migrate(); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logrus.WithError(err).Fatal("failed to add indexes")
	}

	// Token boundary
	tokens, err := token.NewManager(cfg.SecretKey, cfg.TokenExpiry)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create token manager")
	}

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, roleRepo)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, taskRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, tokens)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	commentHandler := handlers.NewCommentHandler(commentService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/token", authHandler.Login)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(tokens))
		{
			users.GET("/me", userHandler.Me)
			users.PATCH("/me", userHandler.UpdateMe)
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.Get)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(tokens))
		{
			projects.POST("", projectHandler.Create)
			projects.GET("", projectHandler.List)
			projects.GET("/progress", projectHandler.Progress)
			projects.GET("/user", projectHandler.UserProjects)
			projects.GET("/:id", projectHandler.Get)
			projects.PUT("/:id", projectHandler.Update)
			projects.PUT("/:id/archive", projectHandler.Archive)
			projects.DELETE("/:id", projectHandler.Delete)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(tokens))
		{
			tasks.POST("", taskHandler.Create)
			tasks.GET("", taskHandler.List)
			tasks.GET("/overdue", taskHandler.Overdue)
			tasks.GET("/:id", taskHandler.Get)
			tasks.PUT("/:id", taskHandler.Update)
			tasks.PUT("/:id/status", taskHandler.UpdateStatus)
			tasks.PUT("/:id/deadline", taskHandler.UpdateDeadline)
			tasks.DELETE("/:id", taskHandler.Delete)
			tasks.POST("/:id/comments", commentHandler.Create)
			tasks.GET("/:id/comments", commentHandler.List)
		}
	}

	// Start server
	logrus.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}
}
