package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/teamhub/project-management-api/internal/database"
	"github.com/teamhub/project-management-api/internal/middleware"
	"github.com/teamhub/project-management-api/internal/models"
	"github.com/teamhub/project-management-api/internal/repository"
	"github.com/teamhub/project-management-api/internal/services"
	"github.com/teamhub/project-management-api/internal/token"
)

const testPassword = "password123"

// testEnv wires the full HTTP surface against an in-memory database.
type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *token.Manager

	admin     *models.User
	manager   *models.User
	developer *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Comment{},
	))
	require.NoError(t, database.SeedRoles(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	tokens, err := token.NewManager("test-secret", 30*time.Minute)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authHandler := NewAuthHandler(services.NewAuthService(userRepo, roleRepo), tokens)
	userHandler := NewUserHandler(services.NewUserService(userRepo))
	projectHandler := NewProjectHandler(services.NewProjectService(projectRepo, userRepo))
	taskHandler := NewTaskHandler(services.NewTaskService(taskRepo, projectRepo, userRepo))
	commentHandler := NewCommentHandler(services.NewCommentService(commentRepo, taskRepo))

	r := gin.New()
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/token", authHandler.Login)

	users := api.Group("/users")
	users.Use(middleware.RequireAuth(tokens))
	users.GET("/me", userHandler.Me)
	users.PATCH("/me", userHandler.UpdateMe)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)

	projects := api.Group("/projects")
	projects.Use(middleware.RequireAuth(tokens))
	projects.POST("", projectHandler.Create)
	projects.GET("", projectHandler.List)
	projects.GET("/progress", projectHandler.Progress)
	projects.GET("/user", projectHandler.UserProjects)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update)
	projects.PUT("/:id/archive", projectHandler.Archive)
	projects.DELETE("/:id", projectHandler.Delete)

	tasks := api.Group("/tasks")
	tasks.Use(middleware.RequireAuth(tokens))
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

	env := &testEnv{db: db, router: r, tokens: tokens}
	env.admin = env.createUser(t, "admin", models.RoleAdmin)
	env.manager = env.createUser(t, "manager", models.RoleManager)
	env.developer = env.createUser(t, "developer", models.RoleDeveloper)

	return env
}

func (env *testEnv) createUser(t *testing.T, username string, role models.RoleName) *models.User {
	t.Helper()

	var r models.Role
	require.NoError(t, env.db.Where("name = ?", role).First(&r).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		RoleID:       r.ID,
		IsActive:     true,
		Role:         r,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

// tokenFor issues a bearer token for the given user.
func (env *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	signed, err := env.tokens.Issue(user)
	require.NoError(t, err)
	return signed
}

// request performs an HTTP request against the test router. A non-empty token
// is sent as a bearer Authorization header.
func (env *testEnv) request(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func roleID(t *testing.T, db *gorm.DB, name models.RoleName) uint64 {
	t.Helper()
	var r models.Role
	require.NoError(t, db.Where("name = ?", name).First(&r).Error)
	return r.ID
}
