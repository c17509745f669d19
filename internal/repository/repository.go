package repository

import (
	"time"

	"github.com/teamhub/project-management-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByUsernameOrEmail finds a user matching either value, for
	// uniqueness checks at registration
	FindByUsernameOrEmail(username, email string) (*models.User, error)

	// CountConflicts counts users other than excludeID holding the
	// username or email
	CountConflicts(username, email string, excludeID uint64) (int64, error)

	// FindByIDs returns the users whose ids are in the given set
	FindByIDs(ids []uint64) ([]models.User, error)

	// List returns all users
	List() ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete removes a user, clearing task-assignee and comment-author
	// references rather than cascading
	Delete(id uint64) error
}

// RoleRepository defines the interface for role reference data
type RoleRepository interface {
	// FindByID finds a role by ID
	FindByID(id uint64) (*models.Role, error)

	// FindByName finds a role by its unique name
	FindByName(name models.RoleName) (*models.Role, error)
}

// ProjectProgress is one row of the per-project task aggregation.
type ProjectProgress struct {
	ProjectID      uint64
	TotalTasks     int64
	CompletedTasks int64
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create persists a project together with its initial membership
	Create(project *models.Project, members []models.User) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List returns all projects with membership loaded
	List() ([]models.Project, error)

	// ListForUser returns the union of projects the user is a member of and
	// projects containing a task assigned to the user, de-duplicated
	ListForUser(userID uint64) ([]models.Project, error)

	// Update updates a project's own columns
	Update(project *models.Project) error

	// UpdateWithMembers updates a project's columns and fully replaces its
	// membership atomically
	UpdateWithMembers(project *models.Project, members []models.User) error

	// Delete removes a project and cascades its tasks and their comments
	Delete(id uint64) error

	// Progress aggregates task counts per project; projects without tasks
	// do not appear in the result
	Progress() ([]ProjectProgress, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID  *uint64
	AssigneeID *uint64
	Status     *models.TaskStatus
	Page       int
	PageSize   int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter
	List(filter TaskFilter) ([]models.Task, int64, error)

	// ListOverdue returns tasks due strictly before the given instant and
	// not yet done
	ListOverdue(now time.Time) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task and cascades its comments
	Delete(id uint64) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// ListByTask returns all comments on a task with authors loaded
	ListByTask(taskID uint64) ([]models.Comment, error)
}
