package dto

import (
	"time"

	"github.com/teamhub/project-management-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	DueDate     *time.Time        `json:"due_date"`
	ProjectID   uint64            `json:"project_id"`
	AssigneeID  *uint64           `json:"assignee_id"`
	CreatedAt   time.Time         `json:"created_at"`
	Assignee    *UserDTO          `json:"assignee,omitempty"`
}

// TaskListItemDTO represents a task in list responses (minimal data)
type TaskListItemDTO struct {
	ID         uint64            `json:"id"`
	Title      string            `json:"title"`
	Status     models.TaskStatus `json:"status"`
	DueDate    *time.Time        `json:"due_date"`
	ProjectID  uint64            `json:"project_id"`
	AssigneeID *uint64           `json:"assignee_id"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     task.DueDate,
		ProjectID:   task.ProjectID,
		AssigneeID:  task.AssigneeID,
		CreatedAt:   task.CreatedAt,
	}

	// Include assignee if preloaded
	if task.Assignee != nil && task.Assignee.ID != 0 {
		assignee := ToUserDTO(*task.Assignee)
		dto.Assignee = &assignee
	}

	return dto
}

// ToTaskListItemDTO converts a Task model to TaskListItemDTO
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	return TaskListItemDTO{
		ID:         task.ID,
		Title:      task.Title,
		Status:     task.Status,
		DueDate:    task.DueDate,
		ProjectID:  task.ProjectID,
		AssigneeID: task.AssigneeID,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToTaskDTO(t)
	}
	return dtos
}
