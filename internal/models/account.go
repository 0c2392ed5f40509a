package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type Provider string

const (
	ProviderCredentials Provider = "credentials"
	ProviderGoogle      Provider = "google"
	ProviderGithub      Provider = "github"
)

// External reports whether p is a federated sign-in provider.
func (p Provider) External() bool {
	return p == ProviderGoogle || p == ProviderGithub
}

type Account struct {
	ID         string        `gorm:"type:varchar(36);primarykey" json:"id"`
	FName      string        `gorm:"column:fname;type:varchar(100);not null" json:"fname"`
	LName      string        `gorm:"column:lname;type:varchar(100)" json:"lname"`
	Email      string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	OAuthEmail *string       `gorm:"column:oauth_email;type:varchar(255);index" json:"oauthEmail,omitempty"`
	Phone      string        `gorm:"type:varchar(50)" json:"phone"`
	Password   string        `gorm:"type:varchar(255);not null" json:"-"`
	Role       Role          `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Provider   Provider      `gorm:"type:varchar(20);not null;default:'credentials'" json:"provider"`
	Status     AccountStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	// RestoreStatus is the status a deleted account returns to on restore.
	RestoreStatus AccountStatus `gorm:"type:varchar(20)" json:"-"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = AccountStatusPending
	}
	return nil
}

// IsAdmin reports whether the account carries the admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Flags returns the legacy flag view of the account's status.
func (a *Account) Flags() AccountFlags {
	return FlagsFor(a.Status, a.RestoreStatus)
}
