package dto

import (
	"time"

	"github.com/yukikurage/employee-management-api/internal/models"
)

type LeaveRequestDTO struct {
	ID           string             `json:"id"`
	UserID       string             `json:"userId"`
	Reason       string             `json:"reason"`
	StartDate    time.Time          `json:"startDate"`
	EndDate      time.Time          `json:"endDate"`
	Priority     models.Priority    `json:"priority"`
	Status       models.LeaveStatus `json:"status"`
	AdminComment string             `json:"adminComment"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
	User         *AccountSummaryDTO `json:"user,omitempty"`
}

func ToLeaveRequestDTO(leave models.LeaveRequest) LeaveRequestDTO {
	return LeaveRequestDTO{
		ID:           leave.ID,
		UserID:       leave.UserID,
		Reason:       leave.Reason,
		StartDate:    leave.StartDate,
		EndDate:      leave.EndDate,
		Priority:     leave.Priority,
		Status:       leave.Status,
		AdminComment: leave.AdminComment,
		CreatedAt:    leave.CreatedAt,
		UpdatedAt:    leave.UpdatedAt,
		User:         toAccountSummary(leave.User),
	}
}

func ToLeaveRequestDTOs(leaves []models.LeaveRequest) []LeaveRequestDTO {
	items := make([]LeaveRequestDTO, len(leaves))
	for i, leave := range leaves {
		items[i] = ToLeaveRequestDTO(leave)
	}
	return items
}
