package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teamhub/project-management-api/internal/dto"
	apierrors "github.com/teamhub/project-management-api/internal/errors"
	"github.com/teamhub/project-management-api/internal/middleware"
	"github.com/teamhub/project-management-api/internal/models"
	"github.com/teamhub/project-management-api/internal/services"
	"github.com/teamhub/project-management-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create creates a new task in an existing project
func (h *TaskHandler) Create(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		DueDate     *time.Time `json:"due_date"`
		ProjectID   uint64     `json:"project_id" binding:"required"`
		AssigneeID  *uint64    `json:"assignee_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(actor, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// List returns tasks, optionally filtered by project. Developers only see
// tasks assigned to them.
func (h *TaskHandler) List(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var projectID *uint64
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id")
			return
		}
		projectID = &id
	}

	var status *models.TaskStatus
	if raw := c.Query("status"); raw != "" {
		s := models.TaskStatus(raw)
		if !s.Valid() {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		status = &s
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTasks(actor, services.ListTasksInput{
		ProjectID: projectID,
		Status:    status,
		Page:      params.Page,
		PageSize:  params.Limit,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Overdue returns tasks due before now whose status is not done
func (h *TaskHandler) Overdue(c *gin.Context) {
	tasks, err := h.taskService.ListOverdueTasks()
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// Get returns a single task
func (h *TaskHandler) Get(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(actor, taskID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Update applies a partial update to a task
func (h *TaskHandler) Update(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	// Parse raw JSON to tell an omitted due_date apart from an explicit null
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	// A present key of the wrong type is a client error, not an omission.
	var input services.UpdateTaskInput

	if raw, ok := rawReq["title"]; ok {
		title, ok := raw.(string)
		if !ok {
			apierrors.BadRequest(c, "Invalid title")
			return
		}
		input.Title = &title
	}
	if raw, ok := rawReq["description"]; ok {
		description, ok := raw.(string)
		if !ok {
			apierrors.BadRequest(c, "Invalid description")
			return
		}
		input.Description = &description
	}
	if raw, ok := rawReq["due_date"]; ok {
		if raw == nil {
			input.ClearDueDate = true
		} else {
			dueDateStr, ok := raw.(string)
			if !ok {
				apierrors.BadRequest(c, "Invalid due_date")
				return
			}
			parsed, err := time.Parse(time.RFC3339, dueDateStr)
			if err != nil {
				apierrors.BadRequest(c, "Invalid due_date")
				return
			}
			input.DueDate = &parsed
		}
	}
	if raw, ok := rawReq["assignee_id"]; ok && raw != nil {
		num, ok := raw.(float64)
		if !ok || num < 0 || num != math.Trunc(num) {
			apierrors.BadRequest(c, "Invalid assignee_id")
			return
		}
		id := uint64(num)
		input.AssigneeID = &id
	}

	task, err := h.taskService.UpdateTask(actor, taskID, input)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateStatus sets the task status to one of todo, in_progress or done
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTaskStatus(actor, taskID, models.TaskStatus(req.Status))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateDeadline sets the task due date
func (h *TaskHandler) UpdateDeadline(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateDeadlineRequest struct {
		DueDate *time.Time `json:"due_date" binding:"required"`
	}

	var req UpdateDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTaskDeadline(actor, taskID, req.DueDate)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Delete removes a task and its comments
func (h *TaskHandler) Delete(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(actor, taskID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
