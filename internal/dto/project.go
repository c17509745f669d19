package dto

import (
	"time"

	"github.com/teamhub/project-management-api/internal/models"
)

// ProjectDTO represents a project in API responses. MemberIDs is computed
// from the loaded membership relation on every read.
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsArchived  bool      `json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	MemberIDs   []uint64  `json:"member_ids"`
}

// ProjectDetailDTO represents a project with members and tasks expanded
type ProjectDetailDTO struct {
	ProjectDTO
	Members []UserDTO         `json:"members"`
	Tasks   []TaskListItemDTO `json:"tasks"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		IsArchived:  project.IsArchived,
		CreatedAt:   project.CreatedAt,
		MemberIDs:   project.MemberIDs(),
	}
}

// ToProjectDetailDTO converts a project with loaded relations to a detail DTO
func ToProjectDetailDTO(project models.Project) ProjectDetailDTO {
	members := make([]UserDTO, len(project.Members))
	for i, m := range project.Members {
		members[i] = ToUserDTO(m)
	}

	tasks := make([]TaskListItemDTO, len(project.Tasks))
	for i, t := range project.Tasks {
		tasks[i] = ToTaskListItemDTO(t)
	}

	return ProjectDetailDTO{
		ProjectDTO: ToProjectDTO(project),
		Members:    members,
		Tasks:      tasks,
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}
