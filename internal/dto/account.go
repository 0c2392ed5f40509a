package dto

import (
	"time"

	"github.com/yukikurage/employee-management-api/internal/models"
)

// AccountDTO represents an account in API responses. The password is never
// included.
type AccountDTO struct {
	ID         string               `json:"id"`
	FName      string               `json:"fname"`
	LName      string               `json:"lname"`
	Email      string               `json:"email"`
	OAuthEmail *string              `json:"oauthEmail,omitempty"`
	Phone      string               `json:"phone"`
	Role       models.Role          `json:"role"`
	Provider   models.Provider      `json:"provider"`
	Status     models.AccountStatus `json:"status"`
	models.AccountFlags
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AccountSummaryDTO is the short form embedded in tasks and leave requests.
type AccountSummaryDTO struct {
	ID    string `json:"id"`
	FName string `json:"fname"`
	LName string `json:"lname"`
	Email string `json:"email"`
}

// ToAccountDTO converts an Account model to AccountDTO
func ToAccountDTO(account models.Account) AccountDTO {
	return AccountDTO{
		ID:           account.ID,
		FName:        account.FName,
		LName:        account.LName,
		Email:        account.Email,
		OAuthEmail:   account.OAuthEmail,
		Phone:        account.Phone,
		Role:         account.Role,
		Provider:     account.Provider,
		Status:       account.Status,
		AccountFlags: account.Flags(),
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}
}

// ToAccountDTOs converts a slice of accounts
func ToAccountDTOs(accounts []models.Account) []AccountDTO {
	items := make([]AccountDTO, len(accounts))
	for i, account := range accounts {
		items[i] = ToAccountDTO(account)
	}
	return items
}

// toAccountSummary returns nil when the relation was not loaded.
func toAccountSummary(account models.Account) *AccountSummaryDTO {
	if account.ID == "" {
		return nil
	}
	return &AccountSummaryDTO{
		ID:    account.ID,
		FName: account.FName,
		LName: account.LName,
		Email: account.Email,
	}
}
