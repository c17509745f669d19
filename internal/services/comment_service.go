package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/teamhub/project-management-api/internal/models"
	"github.com/teamhub/project-management-api/internal/policy"
	"github.com/teamhub/project-management-api/internal/repository"
)

var ErrContentRequired = errors.New("comment content is required")

// CommentService handles comments on tasks. Commenting follows task
// visibility: whoever may read a task may comment on it.
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
	}
}

// CreateComment adds a comment to a task, authored by the actor.
func (s *CommentService) CreateComment(actor policy.Actor, taskID uint64, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !policy.CanCommentOnTask(actor, task) {
		return nil, ErrForbidden
	}

	authorID := actor.UserID
	comment := &models.Comment{
		Content:  content,
		TaskID:   task.ID,
		AuthorID: &authorID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// ListComments returns all comments on a task, oldest first.
func (s *CommentService) ListComments(actor policy.Actor, taskID uint64) ([]models.Comment, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !policy.CanViewTask(actor, task) {
		return nil, ErrForbidden
	}

	comments, err := s.commentRepo.ListByTask(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
