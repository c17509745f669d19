// Package policy contains the pure authorization rules of the system. Every
// function maps (actor, resource state) to an allow/deny decision and performs
// no I/O; callers load whatever state a rule needs before consulting it.
package policy

import (
	"github.com/teamhub/project-management-api/internal/models"
)

// Actor is the authenticated identity performing an operation. An actor with
// an empty or unknown role is denied every role-gated action.
type Actor struct {
	UserID   uint64
	Username string
	Role     models.RoleName
}

// isElevated reports whether the actor holds one of the two management roles.
func (a Actor) isElevated() bool {
	return a.Role == models.RoleAdmin || a.Role == models.RoleManager
}

// Project rules

func CanCreateProject(a Actor) bool {
	return a.isElevated()
}

// CanListProjects allows any authenticated actor to list projects.
func CanListProjects(a Actor) bool {
	return a.UserID != 0
}

// CanViewProject requires the project's Members and Tasks relations to be
// loaded. Admins and managers see every project; anyone else must be a member
// or the assignee of at least one task in it.
func CanViewProject(a Actor, project *models.Project) bool {
	if a.isElevated() {
		return true
	}
	for _, m := range project.Members {
		if m.ID == a.UserID {
			return true
		}
	}
	for _, t := range project.Tasks {
		if t.AssigneeID != nil && *t.AssigneeID == a.UserID {
			return true
		}
	}
	return false
}

func CanUpdateProject(a Actor) bool {
	return a.isElevated()
}

func CanArchiveProject(a Actor) bool {
	return a.isElevated()
}

func CanDeleteProject(a Actor) bool {
	return a.Role == models.RoleAdmin
}

// Task rules

func CanCreateTask(a Actor) bool {
	return a.isElevated()
}

// CanViewTask allows admins and managers unconditionally; a developer only
// sees tasks assigned to them.
func CanViewTask(a Actor, task *models.Task) bool {
	if a.isElevated() {
		return true
	}
	if a.Role != models.RoleDeveloper {
		return false
	}
	return task.AssigneeID != nil && *task.AssigneeID == a.UserID
}

func CanUpdateTask(a Actor) bool {
	return a.isElevated()
}

// CanUpdateTaskStatus allows admins and managers unconditionally; a developer
// may change status only on their own tasks.
func CanUpdateTaskStatus(a Actor, task *models.Task) bool {
	if a.isElevated() {
		return true
	}
	if a.Role != models.RoleDeveloper {
		return false
	}
	return task.AssigneeID != nil && *task.AssigneeID == a.UserID
}

// CanUpdateTaskDeadline allows admins and managers unconditionally; otherwise
// only the task's assignee.
func CanUpdateTaskDeadline(a Actor, task *models.Task) bool {
	if a.isElevated() {
		return true
	}
	return task.AssigneeID != nil && *task.AssigneeID == a.UserID
}

func CanDeleteTask(a Actor) bool {
	return a.isElevated()
}

// TaskListAssigneeScope returns the assignee filter applied to task listings.
// Developers are scoped to their own tasks; every other role sees the full
// listing (nil scope).
func TaskListAssigneeScope(a Actor) *uint64 {
	if a.Role == models.RoleDeveloper {
		id := a.UserID
		return &id
	}
	return nil
}

// Comment rules: commenting follows task visibility.

func CanCommentOnTask(a Actor, task *models.Task) bool {
	return CanViewTask(a, task)
}

// User rules

func CanListUsers(a Actor) bool {
	return a.Role == models.RoleAdmin
}

// CanViewUser allows admins to read any user, and every actor to read
// themselves.
func CanViewUser(a Actor, targetID uint64) bool {
	if a.Role == models.RoleAdmin {
		return true
	}
	return a.UserID == targetID
}

// CanUpdateUser allows a user to update only their own profile.
func CanUpdateUser(a Actor, targetID uint64) bool {
	return a.UserID == targetID
}
