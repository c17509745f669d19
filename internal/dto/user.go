package dto

import (
	"github.com/teamhub/project-management-api/internal/models"
)

// RoleDTO represents a role in API responses
type RoleDTO struct {
	ID   uint64          `json:"id"`
	Name models.RoleName `json:"name"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	IsActive bool     `json:"is_active"`
	Role     *RoleDTO `json:"role,omitempty"`
}

// TokenResponse is the login response body
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ToRoleDTO converts a Role model to RoleDTO
func ToRoleDTO(role models.Role) RoleDTO {
	return RoleDTO{
		ID:   role.ID,
		Name: role.Name,
	}
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsActive: user.IsActive,
	}

	// Include role if preloaded
	if user.Role.ID != 0 {
		role := ToRoleDTO(user.Role)
		dto.Role = &role
	}

	return dto
}
