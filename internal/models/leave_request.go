package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveStatus string

const (
	LeaveStatusYetToBeChecked     LeaveStatus = "yet to be checked"
	LeaveStatusUnderConsideration LeaveStatus = "under consideration"
	LeaveStatusApproved           LeaveStatus = "approved"
	LeaveStatusDenied             LeaveStatus = "denied"
)

var LeaveStatuses = []LeaveStatus{
	LeaveStatusYetToBeChecked,
	LeaveStatusUnderConsideration,
	LeaveStatusApproved,
	LeaveStatusDenied,
}

func (s LeaveStatus) Valid() bool {
	for _, v := range LeaveStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// PendingLeaveStatuses make up the pending bucket shown to admins.
var PendingLeaveStatuses = []LeaveStatus{LeaveStatusYetToBeChecked, LeaveStatusUnderConsideration}

type LeaveRequest struct {
	ID           string      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       string      `gorm:"type:varchar(36);not null;index" json:"userId"`
	Reason       string      `gorm:"type:text;not null" json:"reason"`
	StartDate    time.Time   `gorm:"not null" json:"startDate"`
	EndDate      time.Time   `gorm:"not null" json:"endDate"`
	Priority     Priority    `gorm:"type:varchar(10);not null" json:"priority"`
	Status       LeaveStatus `gorm:"type:varchar(30);not null;default:'yet to be checked';index" json:"status"`
	AdminComment string      `gorm:"type:text" json:"adminComment"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`

	// Relations
	User Account `gorm:"foreignKey:UserID" json:"-"`
}

func (l *LeaveRequest) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = LeaveStatusYetToBeChecked
	}
	return nil
}
