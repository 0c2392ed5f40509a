package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/employee-management-api/internal/dto"
	apierrors "github.com/yukikurage/employee-management-api/internal/errors"
	"github.com/yukikurage/employee-management-api/internal/middleware"
	"github.com/yukikurage/employee-management-api/internal/models"
	"github.com/yukikurage/employee-management-api/internal/services"
	"github.com/yukikurage/employee-management-api/internal/utils"
)

// LeaveHandler serves the leave request endpoints.
type LeaveHandler struct {
	leaveService *services.LeaveService
}

// NewLeaveHandler creates a new LeaveHandler.
func NewLeaveHandler(leaveService *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{
		leaveService: leaveService,
	}
}

// CreateLeave files a leave request. Non-admins may only file for themselves.
func (h *LeaveHandler) CreateLeave(c *gin.Context) {
	type CreateLeaveRequest struct {
		UserID    string          `json:"userId"`
		Reason    string          `json:"reason"`
		StartDate string          `json:"startDate"`
		EndDate   string          `json:"endDate"`
		Priority  models.Priority `json:"priority"`
	}

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, ok := middleware.GetAccount(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	if utils.IsValidID(req.UserID) && !account.IsAdmin() && req.UserID != account.ID {
		apierrors.Forbidden(c, "You can only request leave for yourself")
		return
	}

	leave, err := h.leaveService.Create(c.Request.Context(), services.CreateLeaveInput{
		UserID:    req.UserID,
		Reason:    req.Reason,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Priority:  req.Priority,
	})
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Leave request submitted successfully",
		"leave":   dto.ToLeaveRequestDTO(*leave),
	})
}

// ListLeaves lists one bucket: ?state=pending|approved|denied.
func (h *LeaveHandler) ListLeaves(c *gin.Context) {
	leaves, err := h.leaveService.ListByBucket(c.Request.Context(), c.Query("state"))
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Leave requests retrieved successfully",
		"leaves":  dto.ToLeaveRequestDTOs(leaves),
	})
}

// ListRequesterLeaves lists every leave request filed by one account.
func (h *LeaveHandler) ListRequesterLeaves(c *gin.Context) {
	leaves, err := h.leaveService.ListByRequester(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Leave requests retrieved successfully",
		"leaves":  dto.ToLeaveRequestDTOs(leaves),
	})
}

// UpdateStatus approves or denies a leave request.
func (h *LeaveHandler) UpdateStatus(c *gin.Context) {
	type UpdateLeaveStatusRequest struct {
		Status       models.LeaveStatus `json:"status"`
		AdminComment string             `json:"adminComment"`
	}

	var req UpdateLeaveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	leave, err := h.leaveService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.AdminComment)
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Leave status updated successfully",
		"leave":   dto.ToLeaveRequestDTO(*leave),
	})
}

func respondLeaveError(c *gin.Context, err error) {
	if respondValidationError(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidAccountID):
		apierrors.BadRequest(c, "Invalid user ID")
	case errors.Is(err, services.ErrLeaveFieldsRequired):
		apierrors.BadRequest(c, "All fields are required")
	case errors.Is(err, services.ErrInvalidLeaveStatus):
		apierrors.BadRequest(c, "Invalid status")
	case errors.Is(err, services.ErrInvalidLeaveID):
		apierrors.BadRequest(c, "Invalid leave request ID")
	case errors.Is(err, services.ErrInvalidLeaveBucket):
		apierrors.BadRequest(c, "Invalid state")
	case errors.Is(err, services.ErrAccountNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrLeaveNotFound):
		apierrors.NotFound(c, "Leave request not found")
	default:
		respondInternalError(c, err)
	}
}
