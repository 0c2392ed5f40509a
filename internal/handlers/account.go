package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/employee-management-api/internal/constants"
	"github.com/yukikurage/employee-management-api/internal/dto"
	apierrors "github.com/yukikurage/employee-management-api/internal/errors"
	"github.com/yukikurage/employee-management-api/internal/middleware"
	"github.com/yukikurage/employee-management-api/internal/models"
	"github.com/yukikurage/employee-management-api/internal/services"
)

// AccountHandler coordinates registration, sign-in and account
// administration handlers.
type AccountHandler struct {
	accountService *services.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// Register creates an account that waits for admin approval.
func (h *AccountHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		FName    string      `json:"fname"`
		LName    string      `json:"lname"`
		Email    string      `json:"email"`
		Phone    string      `json:"phone"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.accountService.Register(c.Request.Context(), services.RegisterInput{
		FName:    req.FName,
		LName:    req.LName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully, awaiting admin approval",
		"user":    dto.ToAccountDTO(*account),
	})
}

// Login authenticates an approved account and initializes the session.
func (h *AccountHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email and password are required")
		return
	}

	account, err := h.accountService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAccountError(c, err)
		return
	}

	h.startSession(c, account, "Login successful")
}

// OAuthLogin signs in a federated identity, linking or creating the account.
func (h *AccountHandler) OAuthLogin(c *gin.Context) {
	type OAuthLoginRequest struct {
		Email    string          `json:"email" binding:"required"`
		Name     string          `json:"name"`
		Provider models.Provider `json:"provider" binding:"required"`
	}

	var req OAuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email and provider are required")
		return
	}

	account, err := h.accountService.OAuthLogin(c.Request.Context(), services.OAuthLoginInput{
		Email:    req.Email,
		Name:     req.Name,
		Provider: req.Provider,
	})
	if err != nil {
		respondAccountError(c, err)
		return
	}

	h.startSession(c, account, "OAuth login successful")
}

func (h *AccountHandler) startSession(c *gin.Context, account *models.Account, message string) {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, account.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"user":    dto.ToAccountDTO(*account),
	})
}

// Logout removes the authentication session.
func (h *AccountHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentAccount returns the authenticated account.
func (h *AccountHandler) GetCurrentAccount(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Current user",
		"user":    dto.ToAccountDTO(*account),
	})
}

// ListAccounts lists accounts, optionally filtered by ?state=.
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context(), c.Query("state"))
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Users retrieved successfully",
		"users":   dto.ToAccountDTOs(accounts),
	})
}

// GetAccount returns one account.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	account, err := h.accountService.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User retrieved successfully",
		"user":    dto.ToAccountDTO(*account),
	})
}

// Approve approves an account.
func (h *AccountHandler) Approve(c *gin.Context) {
	h.transition(c, h.accountService.Approve, "User approved successfully")
}

// Deny denies a pending account.
func (h *AccountHandler) Deny(c *gin.Context) {
	h.transition(c, h.accountService.Deny, "User denied successfully")
}

// Delete soft-deletes an account.
func (h *AccountHandler) Delete(c *gin.Context) {
	h.transition(c, h.accountService.SoftDelete, "User deleted successfully")
}

// Restore brings back a deleted account.
func (h *AccountHandler) Restore(c *gin.Context) {
	h.transition(c, h.accountService.Restore, "User restored successfully")
}

type accountTransition func(ctx context.Context, id string) (*models.Account, error)

func (h *AccountHandler) transition(c *gin.Context, apply accountTransition, message string) {
	account, err := apply(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"user":    dto.ToAccountDTO(*account),
	})
}

// UpdateProfile updates the caller's own names and email.
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	type UpdateProfileRequest struct {
		FName string `json:"fname"`
		LName string `json:"lname"`
		Email string `json:"email"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.accountService.UpdateProfile(c.Request.Context(), c.Param("id"), services.UpdateProfileInput{
		FName: req.FName,
		LName: req.LName,
		Email: req.Email,
	})
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    dto.ToAccountDTO(*account),
	})
}

// ChangePassword replaces the caller's password.
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	type ChangePasswordRequest struct {
		OldPassword     string `json:"oldPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.accountService.ChangePassword(c.Request.Context(), c.Param("id"), services.ChangePasswordInput{
		OldPassword:     req.OldPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated successfully",
	})
}

func respondAccountError(c *gin.Context, err error) {
	if respondValidationError(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrPasswordMismatch):
		apierrors.BadRequest(c, "New passwords do not match")
	case errors.Is(err, services.ErrIncorrectOldPassword):
		apierrors.BadRequest(c, "Incorrect old password")
	case errors.Is(err, services.ErrEmailImmutable):
		apierrors.BadRequest(c, "Email cannot be changed for OAuth users")
	case errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, "Role must be user or admin")
	case errors.Is(err, services.ErrInvalidProvider):
		apierrors.BadRequest(c, "Provider must be google or github")
	case errors.Is(err, services.ErrInvalidAccountState):
		apierrors.BadRequest(c, "Invalid state")
	case errors.Is(err, services.ErrInvalidAccountID):
		apierrors.BadRequest(c, "Invalid user ID")
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "User already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, services.ErrAccountNotApproved):
		apierrors.Forbidden(c, "Account is not approved")
	case errors.Is(err, services.ErrAccountAlreadyProcessed):
		apierrors.NotFound(c, "User not found or already processed")
	case errors.Is(err, services.ErrAccountNotFound):
		apierrors.NotFound(c, "User not found")
	default:
		respondInternalError(c, err)
	}
}
