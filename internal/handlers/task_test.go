package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/teamhub/project-management-api/internal/dto"
	"github.com/teamhub/project-management-api/internal/models"
)

type TaskHandlerTestSuite struct {
	suite.Suite
	env     *testEnv
	project *models.Project

	adminToken     string
	managerToken   string
	developerToken string
}

func (suite *TaskHandlerTestSuite) SetupTest() {
	suite.env = newTestEnv(suite.T())
	suite.adminToken = suite.env.tokenFor(suite.T(), suite.env.admin)
	suite.managerToken = suite.env.tokenFor(suite.T(), suite.env.manager)
	suite.developerToken = suite.env.tokenFor(suite.T(), suite.env.developer)

	suite.project = &models.Project{Title: "Workspace"}
	suite.Require().NoError(suite.env.db.Create(suite.project).Error)
}

func (suite *TaskHandlerTestSuite) createTask(title string, assigneeID *uint64) *models.Task {
	task := &models.Task{
		Title:      title,
		Status:     models.TaskStatusTodo,
		ProjectID:  suite.project.ID,
		AssigneeID: assigneeID,
	}
	suite.Require().NoError(suite.env.db.Create(task).Error)
	return task
}

func (suite *TaskHandlerTestSuite) TestCreateTask() {
	w := suite.env.request(suite.T(), http.MethodPost, "/api/tasks", suite.managerToken, map[string]any{
		"title":       "Write docs",
		"project_id":  suite.project.ID,
		"assignee_id": suite.env.developer.ID,
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var task dto.TaskDTO
	decodeJSON(suite.T(), w, &task)
	suite.Equal("Write docs", task.Title)
	suite.Equal(models.TaskStatusTodo, task.Status)
	suite.Require().NotNil(task.AssigneeID)
	suite.Equal(suite.env.developer.ID, *task.AssigneeID)
	suite.Require().NotNil(task.Assignee)
	suite.Equal("developer", task.Assignee.Username)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_UnknownAssignee() {
	w := suite.env.request(suite.T(), http.MethodPost, "/api/tasks", suite.managerToken, map[string]any{
		"title":       "Unassignable",
		"project_id":  suite.project.ID,
		"assignee_id": suite.env.developer.ID + 100,
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_UnknownProject() {
	w := suite.env.request(suite.T(), http.MethodPost, "/api/tasks", suite.managerToken, map[string]any{
		"title":      "Orphan",
		"project_id": suite.project.ID + 100,
	})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateStatus_ManagerSetsDone() {
	task := suite.createTask("Ship it", &suite.env.developer.ID)

	w := suite.env.request(suite.T(), http.MethodPut, fmt.Sprintf("/api/tasks/%d/status", task.ID), suite.managerToken, map[string]any{
		"status": "done",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var updated dto.TaskDTO
	decodeJSON(suite.T(), w, &updated)
	suite.Equal(models.TaskStatusDone, updated.Status)
}

func (suite *TaskHandlerTestSuite) TestUpdateStatus_DeveloperNotAssignee() {
	other := suite.env.createUser(suite.T(), "other_dev", models.RoleDeveloper)
	task := suite.createTask("Someone else's", &other.ID)

	w := suite.env.request(suite.T(), http.MethodPut, fmt.Sprintf("/api/tasks/%d/status", task.ID), suite.developerToken, map[string]any{
		"status": "done",
	})
	suite.Equal(http.StatusForbidden, w.Code)

	var stored models.Task
	suite.Require().NoError(suite.env.db.First(&stored, task.ID).Error)
	suite.Equal(models.TaskStatusTodo, stored.Status)
}

func (suite *TaskHandlerTestSuite) TestUpdateStatus_InvalidValue() {
	task := suite.createTask("Task", nil)

	w := suite.env.request(suite.T(), http.MethodPut, fmt.Sprintf("/api/tasks/%d/status", task.ID), suite.adminToken, map[string]any{
		"status": "blocked",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_DueDateSemantics() {
	due := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	task := suite.createTask("Scheduled", nil)
	task.DueDate = &due
	suite.Require().NoError(suite.env.db.Save(task).Error)

	path := fmt.Sprintf("/api/tasks/%d", task.ID)

	// Omitting due_date leaves it unchanged.
	w := suite.env.request(suite.T(), http.MethodPut, path, suite.adminToken, map[string]any{
		"title": "Renamed",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var updated dto.TaskDTO
	decodeJSON(suite.T(), w, &updated)
	suite.Equal("Renamed", updated.Title)
	suite.Require().NotNil(updated.DueDate)

	// An explicit null clears it.
	w = suite.env.request(suite.T(), http.MethodPut, path, suite.adminToken, map[string]any{
		"due_date": nil,
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	decodeJSON(suite.T(), w, &updated)
	suite.Nil(updated.DueDate)
}

func (suite *TaskHandlerTestSuite) TestUpdateDeadline() {
	task := suite.createTask("Deadline", &suite.env.developer.ID)
	due := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	path := fmt.Sprintf("/api/tasks/%d/deadline", task.ID)

	// The assignee may move their own deadline.
	w := suite.env.request(suite.T(), http.MethodPut, path, suite.developerToken, map[string]any{
		"due_date": due,
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var updated dto.TaskDTO
	decodeJSON(suite.T(), w, &updated)
	suite.NotNil(updated.DueDate)

	// Another developer may not.
	other := suite.env.createUser(suite.T(), "other_dev", models.RoleDeveloper)
	otherToken := suite.env.tokenFor(suite.T(), other)
	w = suite.env.request(suite.T(), http.MethodPut, path, otherToken, map[string]any{
		"due_date": due,
	})
	suite.Equal(http.StatusForbidden, w.Code)

	// A missing due date is rejected by binding.
	w = suite.env.request(suite.T(), http.MethodPut, path, suite.managerToken, map[string]any{})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListTasks_DeveloperScoped() {
	other := suite.env.createUser(suite.T(), "other_dev", models.RoleDeveloper)
	suite.createTask("Mine", &suite.env.developer.ID)
	suite.createTask("Theirs", &other.ID)
	suite.createTask("Unassigned", nil)

	w := suite.env.request(suite.T(), http.MethodGet, "/api/tasks", suite.developerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp struct {
		Tasks []dto.TaskDTO `json:"tasks"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	decodeJSON(suite.T(), w, &resp)
	suite.Equal(int64(1), resp.Pagination.Total)
	suite.Require().Len(resp.Tasks, 1)
	suite.Equal("Mine", resp.Tasks[0].Title)
}

func (suite *TaskHandlerTestSuite) TestListTasks_StatusFilter() {
	done := suite.createTask("Done", nil)
	done.Status = models.TaskStatusDone
	suite.Require().NoError(suite.env.db.Save(done).Error)
	suite.createTask("Open", nil)

	w := suite.env.request(suite.T(), http.MethodGet, "/api/tasks?status=done", suite.managerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp struct {
		Tasks []dto.TaskDTO `json:"tasks"`
	}
	decodeJSON(suite.T(), w, &resp)
	suite.Require().Len(resp.Tasks, 1)
	suite.Equal("Done", resp.Tasks[0].Title)

	w = suite.env.request(suite.T(), http.MethodGet, "/api/tasks?status=blocked", suite.managerToken, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_RejectsWrongTypes() {
	task := suite.createTask("Typed", nil)
	path := fmt.Sprintf("/api/tasks/%d", task.ID)

	w := suite.env.request(suite.T(), http.MethodPut, path, suite.adminToken, map[string]any{
		"title": 123,
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.env.request(suite.T(), http.MethodPut, path, suite.adminToken, map[string]any{
		"description": true,
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.env.request(suite.T(), http.MethodPut, path, suite.adminToken, map[string]any{
		"due_date": 1700000000,
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.env.request(suite.T(), http.MethodPut, path, suite.adminToken, map[string]any{
		"assignee_id": "seven",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.env.request(suite.T(), http.MethodPut, path, suite.adminToken, map[string]any{
		"assignee_id": 1.5,
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	// Nothing was changed by the rejected requests.
	var stored models.Task
	suite.Require().NoError(suite.env.db.First(&stored, task.ID).Error)
	suite.Equal("Typed", stored.Title)
}

func (suite *TaskHandlerTestSuite) TestOverdue() {
	justPassed := time.Now().Add(-time.Second)

	overdue := suite.createTask("Overdue", nil)
	overdue.Status = models.TaskStatusInProgress
	overdue.DueDate = &justPassed
	suite.Require().NoError(suite.env.db.Save(overdue).Error)

	done := suite.createTask("Done late", nil)
	done.Status = models.TaskStatusDone
	done.DueDate = &justPassed
	suite.Require().NoError(suite.env.db.Save(done).Error)

	w := suite.env.request(suite.T(), http.MethodGet, "/api/tasks/overdue", suite.managerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var tasks []dto.TaskDTO
	decodeJSON(suite.T(), w, &tasks)
	suite.Require().Len(tasks, 1)
	suite.Equal("Overdue", tasks[0].Title)
}

func (suite *TaskHandlerTestSuite) TestComments() {
	task := suite.createTask("Discussed", &suite.env.developer.ID)
	path := fmt.Sprintf("/api/tasks/%d/comments", task.ID)

	w := suite.env.request(suite.T(), http.MethodPost, path, suite.developerToken, map[string]any{
		"content": "Working on it",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var comment dto.CommentDTO
	decodeJSON(suite.T(), w, &comment)
	suite.Equal("Working on it", comment.Content)
	suite.Require().NotNil(comment.Author)
	suite.Equal("developer", comment.Author.Username)

	list := suite.env.request(suite.T(), http.MethodGet, path, suite.managerToken, nil)
	suite.Require().Equal(http.StatusOK, list.Code)

	var comments []dto.CommentDTO
	decodeJSON(suite.T(), list, &comments)
	suite.Len(comments, 1)

	// A developer who cannot see the task cannot comment on it.
	other := suite.env.createUser(suite.T(), "other_dev", models.RoleDeveloper)
	otherToken := suite.env.tokenFor(suite.T(), other)
	w = suite.env.request(suite.T(), http.MethodPost, path, otherToken, map[string]any{
		"content": "Drive-by",
	})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask() {
	task := suite.createTask("Doomed", nil)
	path := fmt.Sprintf("/api/tasks/%d", task.ID)

	w := suite.env.request(suite.T(), http.MethodDelete, path, suite.developerToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.env.request(suite.T(), http.MethodDelete, path, suite.managerToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.env.request(suite.T(), http.MethodGet, path, suite.managerToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
