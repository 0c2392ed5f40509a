package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/employee-management-api/internal/models"
	"github.com/yukikurage/employee-management-api/internal/repository"
	"github.com/yukikurage/employee-management-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrLeaveNotFound       = errors.New("leave request not found")
	ErrInvalidLeaveID      = errors.New("invalid leave request id")
	ErrInvalidLeaveStatus  = errors.New("invalid leave status")
	ErrInvalidLeaveBucket  = errors.New("invalid leave state")
	ErrLeaveFieldsRequired = errors.New("all fields are required")
)

// Leave listing buckets shown to admins.
const (
	LeaveBucketPending  = "pending"
	LeaveBucketApproved = "approved"
	LeaveBucketDenied   = "denied"
)

var leaveBuckets = map[string][]models.LeaveStatus{
	LeaveBucketPending:  models.PendingLeaveStatuses,
	LeaveBucketApproved: {models.LeaveStatusApproved},
	LeaveBucketDenied:   {models.LeaveStatusDenied},
}

// LeaveService manages leave requests.
type LeaveService struct {
	leaveRepo   repository.LeaveRequestRepository
	accountRepo repository.AccountRepository
}

func NewLeaveService(leaveRepo repository.LeaveRequestRepository, accountRepo repository.AccountRepository) *LeaveService {
	return &LeaveService{
		leaveRepo:   leaveRepo,
		accountRepo: accountRepo,
	}
}

// CreateLeaveInput is a leave application. Dates are YYYY-MM-DD or RFC 3339.
type CreateLeaveInput struct {
	UserID    string
	Reason    string
	StartDate string
	EndDate   string
	Priority  models.Priority
}

// Create files a new leave request for an existing account.
func (s *LeaveService) Create(ctx context.Context, input CreateLeaveInput) (*models.LeaveRequest, error) {
	if !utils.IsValidID(input.UserID) {
		return nil, ErrInvalidAccountID
	}
	input.Reason = strings.TrimSpace(input.Reason)
	if len(requireFields(
		"reason", input.Reason,
		"startDate", input.StartDate,
		"endDate", input.EndDate,
		"priority", string(input.Priority),
	)) > 0 {
		return nil, ErrLeaveFieldsRequired
	}

	var problems []string
	start, err := parseDate(input.StartDate)
	if err != nil {
		problems = append(problems, "Start date must be a valid date")
	}
	end, err := parseDate(input.EndDate)
	if err != nil {
		problems = append(problems, "End date must be a valid date")
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		problems = append(problems, "End date must be on or after start date")
	}
	if !input.Priority.Valid() {
		problems = append(problems, "Priority must be one of low, medium, high")
	}
	if len(problems) > 0 {
		return nil, newValidationError("Validation error", problems...)
	}

	account, err := s.accountRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	leave := &models.LeaveRequest{
		UserID:    account.ID,
		Reason:    input.Reason,
		StartDate: start,
		EndDate:   end,
		Priority:  input.Priority,
		Status:    models.LeaveStatusYetToBeChecked,
	}
	if err := s.leaveRepo.Create(ctx, leave); err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}
	leave.User = *account

	return leave, nil
}

// UpdateStatus sets a request's status, and its admin comment when one is
// given. Any status may follow any other.
func (s *LeaveService) UpdateStatus(ctx context.Context, id string, status models.LeaveStatus, adminComment string) (*models.LeaveRequest, error) {
	if !status.Valid() {
		return nil, ErrInvalidLeaveStatus
	}
	if !utils.IsValidID(id) {
		return nil, ErrInvalidLeaveID
	}

	leave, err := s.leaveRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, fmt.Errorf("failed to find leave request: %w", err)
	}

	leave.Status = status
	if comment := strings.TrimSpace(adminComment); comment != "" {
		leave.AdminComment = comment
	}

	if err := s.leaveRepo.Update(ctx, leave); err != nil {
		return nil, fmt.Errorf("failed to update leave request: %w", err)
	}
	return leave, nil
}

// ListByRequester returns one account's requests, newest first.
func (s *LeaveService) ListByRequester(ctx context.Context, userID string) ([]models.LeaveRequest, error) {
	if !utils.IsValidID(userID) {
		return nil, ErrInvalidAccountID
	}

	leaves, err := s.leaveRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leaves, nil
}

// ListByBucket returns the requests in the pending, approved or denied
// bucket. An empty bucket name means pending.
func (s *LeaveService) ListByBucket(ctx context.Context, bucket string) ([]models.LeaveRequest, error) {
	if bucket == "" {
		bucket = LeaveBucketPending
	}
	statuses, ok := leaveBuckets[bucket]
	if !ok {
		return nil, ErrInvalidLeaveBucket
	}

	leaves, err := s.leaveRepo.ListByStatuses(ctx, statuses)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leaves, nil
}
