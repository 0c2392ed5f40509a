package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/employee-management-api/internal/dto"
	apierrors "github.com/yukikurage/employee-management-api/internal/errors"
	"github.com/yukikurage/employee-management-api/internal/middleware"
	"github.com/yukikurage/employee-management-api/internal/models"
	"github.com/yukikurage/employee-management-api/internal/services"
	"github.com/yukikurage/employee-management-api/internal/utils"
)

// TaskHandler serves the task endpoints.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task. createdBy defaults to the calling admin.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title       string          `json:"title"`
		Description string          `json:"description"`
		AssignedTo  string          `json:"assignedTo"`
		CreatedBy   string          `json:"createdBy"`
		DueDate     string          `json:"dueDate"`
		Priority    models.Priority `json:"priority"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.CreatedBy == "" {
		req.CreatedBy, _ = middleware.GetUserID(c)
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: req.AssignedTo,
		CreatedByID:  req.CreatedBy,
		DueDate:      req.DueDate,
		Priority:     req.Priority,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// ListTasks returns one listing bucket. Supports ?state=active|completed|deleted
// and ?sortBy=&sortOrder=.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context(), c.Query("state"), utils.GetSortParams(c))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tasks retrieved successfully",
		"tasks":   dto.ToTaskDTOs(tasks),
	})
}

// ListAssigneeTasks returns the non-deleted tasks of one user.
func (h *TaskHandler) ListAssigneeTasks(c *gin.Context) {
	tasks, err := h.taskService.ListByAssignee(c.Request.Context(), c.Param("userId"), utils.GetSortParams(c))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tasks retrieved successfully",
		"tasks":   dto.ToTaskDTOs(tasks),
	})
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task retrieved successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// ListStatusEvents returns the status log of a task.
func (h *TaskHandler) ListStatusEvents(c *gin.Context) {
	events, err := h.taskService.ListStatusEvents(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updates retrieved successfully",
		"events":  dto.ToTaskStatusEventDTOs(events),
	})
}

// UpdateStatus sets a task's status and progress on behalf of the assignee
// or an admin.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status models.TaskStatus `json:"status"`
		// Raw so that an explicit null can be told apart from an absent field.
		Progress json.RawMessage `json:"progress"`
		Comment  string          `json:"comment"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actorID, _ := middleware.GetUserID(c)
	input := services.UpdateStatusInput{
		Status:  req.Status,
		ActorID: actorID,
		Comment: req.Comment,
	}
	if len(req.Progress) > 0 {
		if err := json.Unmarshal(req.Progress, &input.Progress); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}
		input.ProgressSet = true
	}

	task, event, err := h.taskService.UpdateStatus(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Task status updated successfully",
		"task":         dto.ToTaskDTO(*task),
		"statusUpdate": dto.ToTaskStatusEventDTO(*event),
	})
}

// UpdateTask overwrites the fields present in the body.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		Title       *string          `json:"title"`
		Description *string          `json:"description"`
		AssignedTo  *string          `json:"assignedTo"`
		DueDate     *string          `json:"dueDate"`
		Priority    *models.Priority `json:"priority"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateDetails(c.Request.Context(), c.Param("id"), services.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: req.AssignedTo,
		DueDate:      req.DueDate,
		Priority:     req.Priority,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// DeleteTask soft-deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, err := h.taskService.SoftDelete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// RestoreTask clears a task's deleted flag
func (h *TaskHandler) RestoreTask(c *gin.Context) {
	task, err := h.taskService.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task restored successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

func respondTaskError(c *gin.Context, err error) {
	if respondValidationError(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrStatusEventSave):
		slog.WarnContext(c.Request.Context(), "task saved without status event", "task_id", c.Param("id"), "error", err)
		apierrors.BadRequest(c, "Failed to save task status update")
	case errors.Is(err, services.ErrStatusRequired):
		apierrors.BadRequest(c, "Status is required")
	case errors.Is(err, services.ErrInvalidTaskStatus):
		apierrors.BadRequest(c, "Invalid status")
	case errors.Is(err, services.ErrInvalidTaskState):
		apierrors.BadRequest(c, "Invalid state")
	case errors.Is(err, services.ErrInvalidSortField):
		apierrors.BadRequest(c, "Invalid sortBy field")
	case errors.Is(err, services.ErrInvalidTaskID):
		apierrors.BadRequest(c, "Invalid task ID")
	case errors.Is(err, services.ErrInvalidAccountID):
		apierrors.BadRequest(c, "Invalid user ID")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrAccountNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.NotFound(c, "Assignee not found")
	case errors.Is(err, services.ErrTaskPermissionDenied):
		apierrors.Forbidden(c, "You are not allowed to update this task")
	default:
		respondInternalError(c, err)
	}
}
