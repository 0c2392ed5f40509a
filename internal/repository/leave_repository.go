package repository

import (
	"context"

	"github.com/yukikurage/employee-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLeaveRequestRepository is a GORM implementation of LeaveRequestRepository
type GormLeaveRequestRepository struct {
	db *gorm.DB
}

// NewLeaveRequestRepository creates a new LeaveRequestRepository
func NewLeaveRequestRepository(db *gorm.DB) LeaveRequestRepository {
	return &GormLeaveRequestRepository{db: db}
}

// Create creates a new leave request
func (r *GormLeaveRequestRepository) Create(ctx context.Context, leave *models.LeaveRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(leave).Error
}

// FindByID finds a leave request by ID
func (r *GormLeaveRequestRepository) FindByID(ctx context.Context, id string) (*models.LeaveRequest, error) {
	var leave models.LeaveRequest
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&leave).Error; err != nil {
		return nil, err
	}
	return &leave, nil
}

// Update saves every field of a leave request
func (r *GormLeaveRequestRepository) Update(ctx context.Context, leave *models.LeaveRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(leave).Error
}

// ListByUser returns the requests of one account, newest first
func (r *GormLeaveRequestRepository) ListByUser(ctx context.Context, userID string) ([]models.LeaveRequest, error) {
	leaves := []models.LeaveRequest{}
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

// ListByStatuses returns requests in any of the statuses, newest first
func (r *GormLeaveRequestRepository) ListByStatuses(ctx context.Context, statuses []models.LeaveStatus) ([]models.LeaveRequest, error) {
	leaves := []models.LeaveRequest{}
	if len(statuses) == 0 {
		return leaves, nil
	}
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}
