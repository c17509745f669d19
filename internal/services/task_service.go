package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/teamhub/project-management-api/internal/models"
	"github.com/teamhub/project-management-api/internal/policy"
	"github.com/teamhub/project-management-api/internal/repository"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskTitleRequired = errors.New("task title is required")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrAssigneeNotFound  = errors.New("assignee does not exist")
	ErrDueDateRequired   = errors.New("due date is required")
)

// TaskService handles task domain operations.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	ProjectID   uint64
	AssigneeID  *uint64
}

// CreateTask creates a task in an existing project. The assignee, when
// given, must resolve to an existing user.
func (s *TaskService) CreateTask(actor policy.Actor, input CreateTaskInput) (*models.Task, error) {
	if !policy.CanCreateTask(actor) {
		return nil, ErrForbidden
	}

	if input.Title == "" {
		return nil, ErrTaskTitleRequired
	}

	if _, err := s.projectRepo.FindByID(input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.validateAssignee(input.AssigneeID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TaskStatusTodo,
		DueDate:     input.DueDate,
		ProjectID:   input.ProjectID,
		AssigneeID:  input.AssigneeID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignee")
}

// ListTasksInput represents filters for listing tasks.
type ListTasksInput struct {
	ProjectID *uint64
	Status    *models.TaskStatus
	Page      int
	PageSize  int
}

// ListTasks returns tasks matching the optional project filter. Developers
// are additionally scoped to tasks assigned to them.
func (s *TaskService) ListTasks(actor policy.Actor, input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		ProjectID:  input.ProjectID,
		AssigneeID: policy.TaskListAssigneeScope(actor),
		Status:     input.Status,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns one task. Developers may only read their own tasks.
func (s *TaskService) GetTask(actor policy.Actor, id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !policy.CanViewTask(actor, task) {
		return nil, ErrForbidden
	}

	return task, nil
}

// UpdateTaskInput carries the optional patch fields. Nil means the field was
// omitted and stays unchanged; ClearDueDate removes the due date explicitly.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	AssigneeID   *uint64
}

// UpdateTask applies a partial update to a task's descriptive fields,
// due date and assignee.
func (s *TaskService) UpdateTask(actor policy.Actor, id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !policy.CanUpdateTask(actor) {
		return nil, ErrForbidden
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTaskTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.AssigneeID != nil {
		if err := s.validateAssignee(input.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = input.AssigneeID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignee")
}

// UpdateTaskStatus sets the task status. Any of the three statuses may be
// set directly; only the actor and the value are checked, not the source
// state, and no history is recorded.
func (s *TaskService) UpdateTaskStatus(actor policy.Actor, id uint64, status models.TaskStatus) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !policy.CanUpdateTaskStatus(actor, task) {
		return nil, ErrForbidden
	}

	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	task.Status = status
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return task, nil
}

// UpdateTaskDeadline sets the task due date. Permitted for admins, managers
// and the task's assignee.
func (s *TaskService) UpdateTaskDeadline(actor policy.Actor, id uint64, dueDate *time.Time) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !policy.CanUpdateTaskDeadline(actor, task) {
		return nil, ErrForbidden
	}

	if dueDate == nil {
		return nil, ErrDueDateRequired
	}

	task.DueDate = dueDate
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update deadline: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task and its comments. Admin or manager only.
func (s *TaskService) DeleteTask(actor policy.Actor, id uint64) error {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if !policy.CanDeleteTask(actor) {
		return ErrForbidden
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ListOverdueTasks returns tasks due before now and not yet done. The
// predicate is evaluated at call time; nothing is cached.
func (s *TaskService) ListOverdueTasks() ([]models.Task, error) {
	tasks, err := s.taskRepo.ListOverdue(time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue tasks: %w", err)
	}
	return tasks, nil
}

// validateAssignee rejects assignee ids that do not resolve to a user.
func (s *TaskService) validateAssignee(assigneeID *uint64) error {
	if assigneeID == nil {
		return nil
	}
	if _, err := s.userRepo.FindByID(*assigneeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to resolve assignee: %w", err)
	}
	return nil
}
