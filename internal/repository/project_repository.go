package repository

import (
	"gorm.io/gorm"

	"github.com/teamhub/project-management-api/internal/models"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create persists a project and its initial membership atomically
func (r *GormProjectRepository) Create(project *models.Project, members []models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		if len(members) > 0 {
			if err := tx.Model(project).Association("Members").Append(&members); err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns all projects with membership loaded
func (r *GormProjectRepository) List() ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Preload("Members").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListForUser returns the union of the user's member projects and the
// projects containing a task assigned to the user, de-duplicated by id.
func (r *GormProjectRepository) ListForUser(userID uint64) ([]models.Project, error) {
	var memberProjects []models.Project
	if err := r.db.Preload("Members").
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Find(&memberProjects).Error; err != nil {
		return nil, err
	}

	var taskProjects []models.Project
	if err := r.db.Preload("Members").
		Joins("JOIN tasks ON tasks.project_id = projects.id").
		Where("tasks.assignee_id = ?", userID).
		Distinct("projects.*").
		Find(&taskProjects).Error; err != nil {
		return nil, err
	}

	seen := make(map[uint64]struct{}, len(memberProjects)+len(taskProjects))
	result := make([]models.Project, 0, len(memberProjects)+len(taskProjects))
	for _, p := range append(memberProjects, taskProjects...) {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		result = append(result, p)
	}

	return result, nil
}

// Update updates a project's own columns
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// UpdateWithMembers updates the project's columns and fully replaces its
// membership in one transaction, so a failed membership write rolls back the
// column update as well.
func (r *GormProjectRepository) UpdateWithMembers(project *models.Project, members []models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(project).Error; err != nil {
			return err
		}

		return tx.Model(project).Association("Members").Replace(&members)
	})
}

// Delete removes a project and all dependent rows in a transaction:
// comments on its tasks, the tasks, the membership links, then the project.
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id IN (?)",
			tx.Model(&models.Task{}).Select("id").Where("project_id = ?", id),
		).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM project_members WHERE project_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// Progress aggregates task counts per project. Projects with no tasks yield
// no row, so they are naturally omitted from the result.
func (r *GormProjectRepository) Progress() ([]ProjectProgress, error) {
	var rows []ProjectProgress
	err := r.db.Model(&models.Task{}).
		Select("project_id, COUNT(id) AS total_tasks, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS completed_tasks",
			models.TaskStatusDone).
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
