package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/employee-management-api/internal/constants"
	"github.com/yukikurage/employee-management-api/internal/models"
	"github.com/yukikurage/employee-management-api/internal/repository"
	"github.com/yukikurage/employee-management-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken              = errors.New("email already exists")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrAccountNotApproved      = errors.New("account is not approved")
	ErrAccountNotFound         = errors.New("account not found")
	ErrAccountAlreadyProcessed = models.ErrAlreadyProcessed
	ErrInvalidAccountID        = errors.New("invalid account id")
	ErrInvalidAccountState     = errors.New("invalid account state")
	ErrInvalidRole             = errors.New("invalid role")
	ErrInvalidProvider         = errors.New("invalid provider")
	ErrPasswordTooShort        = errors.New("password too short")
	ErrPasswordMismatch        = errors.New("new passwords do not match")
	ErrIncorrectOldPassword    = errors.New("incorrect old password")
	ErrEmailImmutable          = errors.New("email cannot be changed for oauth accounts")
	ErrFailedToHashPassword    = errors.New("failed to hash password")
)

// AccountService handles the account registry: registration, sign-in and the
// approval lifecycle.
type AccountService struct {
	accountRepo            repository.AccountRepository
	rejectOAuthPlaceholder bool
}

// AccountOption configures an AccountService.
type AccountOption func(*AccountService)

// WithOAuthPlaceholderRejected refuses password login for federated accounts
// whose stored credential is the OAuth placeholder.
func WithOAuthPlaceholderRejected(reject bool) AccountOption {
	return func(s *AccountService) {
		s.rejectOAuthPlaceholder = reject
	}
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo repository.AccountRepository, opts ...AccountOption) *AccountService {
	s := &AccountService{
		accountRepo: accountRepo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterInput represents the information needed to create an account.
type RegisterInput struct {
	FName    string
	LName    string
	Email    string
	Phone    string
	Password string
	Role     models.Role
}

// Register creates a pending account that waits for admin approval.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*models.Account, error) {
	return s.create(ctx, input, models.AccountStatusPending)
}

// CreateAdmin creates an approved admin account. Used to bootstrap a new
// deployment.
func (s *AccountService) CreateAdmin(ctx context.Context, input RegisterInput) (*models.Account, error) {
	input.Role = models.RoleAdmin
	return s.create(ctx, input, models.AccountStatusApproved)
}

func (s *AccountService) create(ctx context.Context, input RegisterInput, status models.AccountStatus) (*models.Account, error) {
	input.FName = strings.TrimSpace(input.FName)
	input.LName = strings.TrimSpace(input.LName)
	input.Email = strings.TrimSpace(input.Email)

	if missing := requireFields("fname", input.FName, "email", input.Email, "password", input.Password); len(missing) > 0 {
		return nil, newValidationError("Missing required fields", missing...)
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if input.Role == "" {
		input.Role = models.RoleUser
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.accountRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	account := &models.Account{
		FName:    input.FName,
		LName:    input.LName,
		Email:    input.Email,
		Phone:    strings.TrimSpace(input.Phone),
		Password: hashed,
		Role:     input.Role,
		Provider: models.ProviderCredentials,
		Status:   status,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the account if it is approved.
// A wrong password is always ErrInvalidCredentials, whatever the state.
func (s *AccountService) Login(ctx context.Context, input LoginInput) (*models.Account, error) {
	account, err := s.accountRepo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	if s.rejectOAuthPlaceholder && account.Password == constants.OAuthPlaceholderPassword && account.Provider.External() {
		return nil, ErrInvalidCredentials
	}
	if !VerifierFor(account.Password).Verify(account.Password, input.Password) {
		return nil, ErrInvalidCredentials
	}

	if account.Status != models.AccountStatusApproved {
		return nil, ErrAccountNotApproved
	}

	return account, nil
}

// OAuthLoginInput is the identity reported by a federated sign-in provider.
type OAuthLoginInput struct {
	Email    string
	Name     string
	Provider models.Provider
}

// OAuthLogin resolves a federated identity to an account. It matches a linked
// account first, then links a credentials account with the same email, and
// otherwise creates a new approved account.
func (s *AccountService) OAuthLogin(ctx context.Context, input OAuthLoginInput) (*models.Account, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, newValidationError("Missing required fields", "email is required")
	}
	if !input.Provider.External() {
		return nil, ErrInvalidProvider
	}

	account, err := s.accountRepo.FindByOAuthEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find linked account: %w", err)
	}

	if account == nil {
		account, err = s.accountRepo.FindByEmailAndProvider(ctx, email, models.ProviderCredentials)
		switch {
		case err == nil:
			account.OAuthEmail = &email
			account.Provider = input.Provider
			if err := s.accountRepo.Update(ctx, account); err != nil {
				return nil, fmt.Errorf("failed to link account: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			account, err = s.createFederated(ctx, email, input.Name, input.Provider)
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("failed to find account: %w", err)
		}
	}

	if account.Status != models.AccountStatusApproved {
		return nil, ErrAccountNotApproved
	}
	return account, nil
}

func (s *AccountService) createFederated(ctx context.Context, email, name string, provider models.Provider) (*models.Account, error) {
	fname, lname, _ := strings.Cut(strings.TrimSpace(name), " ")
	if fname == "" {
		fname, _, _ = strings.Cut(email, "@")
	}

	account := &models.Account{
		FName:      fname,
		LName:      strings.TrimSpace(lname),
		Email:      email,
		OAuthEmail: &email,
		Password:   constants.OAuthPlaceholderPassword,
		Role:       models.RoleUser,
		Provider:   provider,
		Status:     models.AccountStatusApproved,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return s.findAccount(ctx, id)
}

// ListAccounts returns the accounts in a state bucket, or every account when
// state is empty.
func (s *AccountService) ListAccounts(ctx context.Context, state string) ([]models.Account, error) {
	var filter *models.AccountStatus
	if state != "" {
		status := models.AccountStatus(state)
		if !status.Valid() {
			return nil, ErrInvalidAccountState
		}
		filter = &status
	}

	accounts, err := s.accountRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Approve approves a pending or denied account.
func (s *AccountService) Approve(ctx context.Context, id string) (*models.Account, error) {
	return s.transition(ctx, id, func(a *models.Account) error {
		a.Approve()
		return nil
	})
}

// Deny denies an account that is neither approved nor deleted. A missing
// account is reported as ErrAccountAlreadyProcessed as well.
func (s *AccountService) Deny(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.transition(ctx, id, (*models.Account).Deny)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, ErrAccountAlreadyProcessed
	}
	return account, err
}

// SoftDelete tombstones an account.
func (s *AccountService) SoftDelete(ctx context.Context, id string) (*models.Account, error) {
	return s.transition(ctx, id, func(a *models.Account) error {
		a.SoftDelete()
		return nil
	})
}

// Restore brings a deleted account back to the state it was deleted from.
func (s *AccountService) Restore(ctx context.Context, id string) (*models.Account, error) {
	return s.transition(ctx, id, func(a *models.Account) error {
		a.Restore()
		return nil
	})
}

func (s *AccountService) transition(ctx context.Context, id string, apply func(*models.Account) error) (*models.Account, error) {
	account, err := s.findAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(account); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// UpdateProfileInput holds the self-service profile fields.
type UpdateProfileInput struct {
	FName string
	LName string
	Email string
}

// UpdateProfile updates an account's names, and its email for credentials
// accounts.
func (s *AccountService) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*models.Account, error) {
	input.FName = strings.TrimSpace(input.FName)
	input.LName = strings.TrimSpace(input.LName)
	input.Email = strings.TrimSpace(input.Email)

	if missing := requireFields("fname", input.FName, "lname", input.LName); len(missing) > 0 {
		return nil, newValidationError("First name and last name are required", missing...)
	}

	account, err := s.findAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	changingEmail := input.Email != "" && input.Email != account.Email
	if changingEmail && account.Provider != models.ProviderCredentials {
		return nil, ErrEmailImmutable
	}
	if changingEmail {
		if _, err := s.accountRepo.FindByEmail(ctx, input.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		account.Email = input.Email
	}

	account.FName = input.FName
	account.LName = input.LName

	if err := s.accountRepo.Update(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// ChangePasswordInput holds the password change form.
type ChangePasswordInput struct {
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

// ChangePassword replaces the stored credential after checking the old one.
// Federated accounts become credentials accounts once a password is set.
func (s *AccountService) ChangePassword(ctx context.Context, id string, input ChangePasswordInput) error {
	if missing := requireFields(
		"oldPassword", input.OldPassword,
		"newPassword", input.NewPassword,
		"confirmPassword", input.ConfirmPassword,
	); len(missing) > 0 {
		return newValidationError("All password fields are required", missing...)
	}
	if input.NewPassword != input.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(input.NewPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	account, err := s.findAccount(ctx, id)
	if err != nil {
		return err
	}

	if !VerifierFor(account.Password).Verify(account.Password, input.OldPassword) {
		return ErrIncorrectOldPassword
	}

	hashed, err := hashPassword(input.NewPassword)
	if err != nil {
		return ErrFailedToHashPassword
	}
	account.Password = hashed
	account.Provider = models.ProviderCredentials

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *AccountService) findAccount(ctx context.Context, id string) (*models.Account, error) {
	if !utils.IsValidID(id) {
		return nil, ErrInvalidAccountID
	}

	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}
