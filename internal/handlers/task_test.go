package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/employee-management-api/internal/models"
	"github.com/yukikurage/employee-management-api/internal/testutil"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db       *gorm.DB
	router   *gin.Engine
	admin    *testClient
	worker   *testClient
	peer     *testClient
	workerID string
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	t := suite.T()
	suite.router, suite.db = newTestRouter(t)

	seedAdmin(t, suite.db)
	worker := testutil.CreateAccount(t, suite.db, "worker@example.com", "worker-password", models.RoleUser, models.AccountStatusApproved)
	testutil.CreateAccount(t, suite.db, "peer@example.com", "peer-password", models.RoleUser, models.AccountStatusApproved)
	suite.workerID = worker.ID

	suite.admin = newTestClient(t, suite.router)
	suite.admin.login("admin@example.com", "admin-password")
	suite.worker = newTestClient(t, suite.router)
	suite.worker.login("worker@example.com", "worker-password")
	suite.peer = newTestClient(t, suite.router)
	suite.peer.login("peer@example.com", "peer-password")
}

func (suite *TaskHandlerTestSuite) createTask(title, priority string) string {
	w := suite.admin.do(http.MethodPost, "/api/tasks", map[string]string{
		"title":       title,
		"description": "desc",
		"assignedTo":  suite.workerID,
		"priority":    priority,
		"dueDate":     "2026-11-30",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return decode(suite.T(), w)["task"].(map[string]any)["id"].(string)
}

func (suite *TaskHandlerTestSuite) TestCreateTask() {
	w := suite.admin.do(http.MethodPost, "/api/tasks", map[string]string{"title": "Onboard", "assignedTo": suite.workerID})
	suite.Require().Equal(http.StatusCreated, w.Code)

	task := decode(suite.T(), w)["task"].(map[string]any)
	suite.Equal("pending", task["status"])
	suite.Equal("medium", task["priority"])
	suite.Equal(0.0, task["progress"])
	suite.NotEmpty(task["createdById"])
	suite.Equal("worker@example.com", task["assignedTo"].(map[string]any)["email"])

	w = suite.admin.do(http.MethodPost, "/api/tasks", map[string]string{"title": "No one"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.worker.do(http.MethodPost, "/api/tasks", map[string]string{"title": "Mine", "assignedTo": suite.workerID})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateStatus_AssigneeOrAdmin() {
	id := suite.createTask("Report", "high")

	w := suite.worker.do(http.MethodPut, "/api/tasks/"+id+"/status", map[string]any{
		"status": "in-progress", "progress": "55", "comment": "halfway",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	task := decode(suite.T(), w)["task"].(map[string]any)
	suite.Equal("in-progress", task["status"])
	suite.Equal(55.0, task["progress"])

	w = suite.worker.do(http.MethodPut, "/api/tasks/"+id+"/status", map[string]any{"status": "pending", "progress": "lots"})
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(0.0, decode(suite.T(), w)["task"].(map[string]any)["progress"])

	w = suite.peer.do(http.MethodPut, "/api/tasks/"+id+"/status", map[string]any{"status": "completed"})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.admin.do(http.MethodPut, "/api/tasks/"+id+"/status", map[string]any{"status": "completed"})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.admin.do(http.MethodPut, "/api/tasks/"+id+"/status", map[string]any{"status": "finished"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.admin.do(http.MethodPut, "/api/tasks/"+id+"/status", map[string]any{})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Status is required", decode(suite.T(), w)["message"])

	w = suite.admin.do(http.MethodPut, "/api/tasks/1b4e28ba-2fa1-11d2-883f-0016d3cca427/status", map[string]any{"status": "completed"})
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Task not found", decode(suite.T(), w)["message"])

	w = suite.worker.do(http.MethodGet, "/api/tasks/"+id+"/events", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	events := decode(suite.T(), w)["events"].([]any)
	suite.Len(events, 3)
}

func (suite *TaskHandlerTestSuite) TestUpdateStatus_ReturnsStatusUpdateAndCoercesProgress() {
	id := suite.createTask("Coerce", "low")

	w := suite.worker.do(http.MethodPut, "/api/tasks/"+id+"/status", map[string]any{
		"status": "in-progress", "progress": true, "comment": "begun",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	body := decode(suite.T(), w)
	suite.Equal(1.0, body["task"].(map[string]any)["progress"])

	update := body["statusUpdate"].(map[string]any)
	suite.Equal(id, update["taskId"])
	suite.Equal(suite.workerID, update["userId"])
	suite.Equal("in-progress", update["status"])
	suite.Equal("begun", update["comment"])
	suite.NotEmpty(update["id"])

	w = suite.worker.do(http.MethodPut, "/api/tasks/"+id+"/status", map[string]any{"status": "on-hold"})
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(1.0, decode(suite.T(), w)["task"].(map[string]any)["progress"])

	w = suite.worker.do(http.MethodPut, "/api/tasks/"+id+"/status", map[string]any{"status": "pending", "progress": nil})
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(0.0, decode(suite.T(), w)["task"].(map[string]any)["progress"])
}

func (suite *TaskHandlerTestSuite) TestListingAndSort() {
	low := suite.createTask("b-low", "low")
	high := suite.createTask("a-high", "high")
	done := suite.createTask("c-done", "medium")

	suite.Require().Equal(http.StatusOK, suite.admin.do(http.MethodPut, "/api/tasks/"+done+"/status", map[string]any{"status": "completed"}).Code)

	w := suite.admin.do(http.MethodGet, "/api/tasks?state=active&sortBy=priority&sortOrder=desc", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	tasks := decode(suite.T(), w)["tasks"].([]any)
	suite.Require().Len(tasks, 2)
	suite.Equal(high, tasks[0].(map[string]any)["id"])
	suite.Equal(low, tasks[1].(map[string]any)["id"])

	w = suite.admin.do(http.MethodGet, "/api/tasks?state=completed", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Len(decode(suite.T(), w)["tasks"], 1)

	w = suite.admin.do(http.MethodGet, "/api/tasks?sortBy=secret", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.worker.do(http.MethodGet, "/api/tasks", nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.worker.do(http.MethodGet, "/api/tasks/assignee/"+suite.workerID+"?sortBy=title", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	mine := decode(suite.T(), w)["tasks"].([]any)
	suite.Require().Len(mine, 3)
	suite.Equal("a-high", mine[0].(map[string]any)["title"])

	w = suite.peer.do(http.MethodGet, "/api/tasks/assignee/"+suite.workerID, nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateDeleteRestore() {
	id := suite.createTask("Draft", "low")

	w := suite.admin.do(http.MethodPut, "/api/tasks/"+id, map[string]any{"title": "Final", "priority": "high"})
	suite.Require().Equal(http.StatusOK, w.Code)
	task := decode(suite.T(), w)["task"].(map[string]any)
	suite.Equal("Final", task["title"])
	suite.Equal("high", task["priority"])
	suite.Equal("desc", task["description"])

	w = suite.admin.do(http.MethodPut, "/api/tasks/"+id, map[string]any{"priority": "urgent"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.admin.do(http.MethodDelete, "/api/tasks/"+id, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(true, decode(suite.T(), w)["task"].(map[string]any)["isDeleted"])

	w = suite.admin.do(http.MethodGet, "/api/tasks?state=deleted", nil)
	suite.Len(decode(suite.T(), w)["tasks"], 1)

	w = suite.worker.do(http.MethodGet, "/api/tasks/assignee/"+suite.workerID, nil)
	suite.Empty(decode(suite.T(), w)["tasks"])

	w = suite.admin.do(http.MethodPut, "/api/tasks/"+id+"/restore", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	restored := decode(suite.T(), w)["task"].(map[string]any)
	suite.Equal(false, restored["isDeleted"])
	suite.Equal("Final", restored["title"])
	suite.Equal("high", restored["priority"])
	suite.Equal("pending", restored["status"])
	suite.Equal(suite.workerID, restored["assignedToId"])

	w = suite.admin.do(http.MethodGet, "/api/tasks?state=deleted", nil)
	suite.Empty(decode(suite.T(), w)["tasks"])
	w = suite.admin.do(http.MethodGet, "/api/tasks?state=active", nil)
	active := decode(suite.T(), w)["tasks"].([]any)
	suite.Require().Len(active, 1)
	suite.Equal(id, active[0].(map[string]any)["id"])

	suite.Equal(http.StatusNotFound, suite.admin.do(http.MethodDelete, "/api/tasks/1b4e28ba-2fa1-11d2-883f-0016d3cca427", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.admin.do(http.MethodGet, "/api/tasks/not-a-uuid", nil).Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
