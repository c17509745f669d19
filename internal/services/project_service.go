package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/teamhub/project-management-api/internal/models"
	"github.com/teamhub/project-management-api/internal/policy"
	"github.com/teamhub/project-management-api/internal/repository"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectTitleRequired = errors.New("project title is required")
)

// ProjectService handles project domain operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectInput represents input for creating a project.
type CreateProjectInput struct {
	Title       string
	Description string
	MemberIDs   []uint64
}

// CreateProject creates a project with the given members. Every member id
// must resolve to an existing user; otherwise the unresolvable ids are
// reported and nothing is persisted.
func (s *ProjectService) CreateProject(actor policy.Actor, input CreateProjectInput) (*models.Project, error) {
	if !policy.CanCreateProject(actor) {
		return nil, ErrForbidden
	}

	if input.Title == "" {
		return nil, ErrProjectTitleRequired
	}

	members, err := s.resolveMembers(input.MemberIDs)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
	}

	if err := s.projectRepo.Create(project, members); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.projectRepo.FindByID(project.ID, "Members")
}

// ListProjects returns all projects visible in the listing. Any
// authenticated actor may list.
func (s *ProjectService) ListProjects(actor policy.Actor) ([]models.Project, error) {
	if !policy.CanListProjects(actor) {
		return nil, ErrForbidden
	}

	projects, err := s.projectRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns one project with members and tasks loaded. Visibility
// follows the policy rule: elevated roles always, others only when they are
// a member or assigned to one of its tasks.
func (s *ProjectService) GetProject(actor policy.Actor, id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, "Members", "Members.Role", "Tasks")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !policy.CanViewProject(actor, project) {
		return nil, ErrForbidden
	}

	return project, nil
}

// UpdateProjectInput carries the optional patch fields. Nil means the field
// was omitted and stays unchanged. A non-nil MemberIDs fully replaces the
// membership, including the empty list.
type UpdateProjectInput struct {
	Title       *string
	Description *string
	MemberIDs   *[]uint64
}

// UpdateProject applies a partial update to a project.
func (s *ProjectService) UpdateProject(actor policy.Actor, id uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !policy.CanUpdateProject(actor) {
		return nil, ErrForbidden
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrProjectTitleRequired
		}
		project.Title = *input.Title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}

	// Validate the replacement membership before any write.
	var members []models.User
	if input.MemberIDs != nil {
		members, err = s.resolveMembers(*input.MemberIDs)
		if err != nil {
			return nil, err
		}
	}

	if input.MemberIDs != nil {
		if err := s.projectRepo.UpdateWithMembers(project, members); err != nil {
			return nil, fmt.Errorf("failed to update project: %w", err)
		}
	} else {
		if err := s.projectRepo.Update(project); err != nil {
			return nil, fmt.Errorf("failed to update project: %w", err)
		}
	}

	return s.projectRepo.FindByID(project.ID, "Members")
}

// SetArchived toggles the archived flag on a project.
func (s *ProjectService) SetArchived(actor policy.Actor, id uint64, archived bool) (*models.Project, error) {
	if !policy.CanArchiveProject(actor) {
		return nil, ErrForbidden
	}

	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	project.IsArchived = archived
	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.projectRepo.FindByID(project.ID, "Members")
}

// DeleteProject deletes a project and cascades its tasks and their comments.
// Admin only.
func (s *ProjectService) DeleteProject(actor policy.Actor, id uint64) error {
	if !policy.CanDeleteProject(actor) {
		return ErrForbidden
	}

	if _, err := s.projectRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// ProgressResult is the computed progress view for one project.
type ProgressResult struct {
	ProjectID         uint64  `json:"project_id"`
	TotalTasks        int64   `json:"total_tasks"`
	CompletedTasks    int64   `json:"completed_tasks"`
	CompletionPercent float64 `json:"completion_percent"`
}

// GetProgress returns task totals and completion percentage per project.
// Projects without tasks are omitted.
func (s *ProjectService) GetProgress() ([]ProgressResult, error) {
	rows, err := s.projectRepo.Progress()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate progress: %w", err)
	}

	results := make([]ProgressResult, 0, len(rows))
	for _, row := range rows {
		percent := 0.0
		if row.TotalTasks > 0 {
			percent = float64(row.CompletedTasks) / float64(row.TotalTasks) * 100
		}
		results = append(results, ProgressResult{
			ProjectID:         row.ProjectID,
			TotalTasks:        row.TotalTasks,
			CompletedTasks:    row.CompletedTasks,
			CompletionPercent: percent,
		})
	}

	return results, nil
}

// GetUserProjects returns the union of the actor's member projects and the
// projects containing a task assigned to the actor, de-duplicated.
func (s *ProjectService) GetUserProjects(actor policy.Actor) ([]models.Project, error) {
	projects, err := s.projectRepo.ListForUser(actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user projects: %w", err)
	}
	return projects, nil
}

// resolveMembers loads the users for the given ids and reports the ids that
// did not resolve. Duplicate ids are collapsed.
func (s *ProjectService) resolveMembers(memberIDs []uint64) ([]models.User, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}

	unique := uniqueUint64(memberIDs)

	members, err := s.userRepo.FindByIDs(unique)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve members: %w", err)
	}

	if len(members) != len(unique) {
		found := make(map[uint64]struct{}, len(members))
		for _, m := range members {
			found[m.ID] = struct{}{}
		}
		var missing []uint64
		for _, id := range unique {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, &InvalidMemberIDsError{IDs: missing}
	}

	return members, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
