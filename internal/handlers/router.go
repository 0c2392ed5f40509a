package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/employee-management-api/internal/constants"
	"github.com/yukikurage/employee-management-api/internal/database"
	apierrors "github.com/yukikurage/employee-management-api/internal/errors"
	"github.com/yukikurage/employee-management-api/internal/middleware"
	"github.com/yukikurage/employee-management-api/internal/ratelimit"
	"github.com/yukikurage/employee-management-api/internal/repository"
	"github.com/yukikurage/employee-management-api/internal/services"
	"gorm.io/gorm"
)

// RouterOptions carries everything the HTTP layer needs from the process.
type RouterOptions struct {
	DB           *gorm.DB
	SessionStore sessions.Store
	Logger       *slog.Logger
	// AuthLimiter guards the register and login endpoints. Nil disables it.
	AuthLimiter    ratelimit.Limiter
	CORSOrigins    []string
	VerifyAssignee bool
	// RejectOAuthPlaceholder refuses password login with the OAuth placeholder.
	RejectOAuthPlaceholder bool
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(logger))

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", constants.RequestIDHeader},
			ExposeHeaders:    []string{constants.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.Use(sessions.Sessions(constants.SessionCookieName, opts.SessionStore))

	accountRepo := repository.NewAccountRepository(opts.DB)
	taskRepo := repository.NewTaskRepository(opts.DB)
	eventRepo := repository.NewTaskStatusEventRepository(opts.DB)
	leaveRepo := repository.NewLeaveRequestRepository(opts.DB)

	accountHandler := NewAccountHandler(services.NewAccountService(accountRepo, services.WithOAuthPlaceholderRejected(opts.RejectOAuthPlaceholder)))
	taskHandler := NewTaskHandler(services.NewTaskService(taskRepo, eventRepo, accountRepo, opts.VerifyAssignee))
	leaveHandler := NewLeaveHandler(services.NewLeaveService(leaveRepo, accountRepo))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		if err := database.Ping(c.Request.Context(), opts.DB); err != nil {
			logger.WarnContext(c.Request.Context(), "health check failed", "error", err)
			apierrors.ServiceUnavailable(c, "Database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Employee Management API is running",
		})
	})

	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if opts.AuthLimiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{middleware.RateLimit(opts.AuthLimiter), h}
	}

	authed := []gin.HandlerFunc{middleware.RequireAuth(), middleware.LoadAccount(accountRepo)}
	admin := middleware.RequireAdmin()

	api := r.Group("/api")
	{
		// Account routes
		accounts := api.Group("/accounts")
		{
			accounts.POST("", limited(accountHandler.Register)...)
			accounts.POST("/login", limited(accountHandler.Login)...)
			accounts.POST("/oauth-login", limited(accountHandler.OAuthLogin)...)
			accounts.POST("/logout", accountHandler.Logout)

			protected := accounts.Group("", authed...)
			protected.GET("/me", accountHandler.GetCurrentAccount)
			protected.GET("", admin, accountHandler.ListAccounts)
			protected.GET("/:id", middleware.RequireSelfOrAdmin("id"), accountHandler.GetAccount)
			protected.PUT("/:id/approve", admin, accountHandler.Approve)
			protected.PUT("/:id/deny", admin, accountHandler.Deny)
			protected.PUT("/:id/restore", admin, accountHandler.Restore)
			protected.DELETE("/:id", admin, accountHandler.Delete)
			protected.PUT("/:id", middleware.RequireSelf("id"), accountHandler.UpdateProfile)
			protected.PUT("/:id/password", middleware.RequireSelf("id"), accountHandler.ChangePassword)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks", authed...)
		{
			tasks.POST("", admin, taskHandler.CreateTask)
			tasks.GET("", admin, taskHandler.ListTasks)
			tasks.GET("/assignee/:userId", middleware.RequireSelfOrAdmin("userId"), taskHandler.ListAssigneeTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.GET("/:id/events", taskHandler.ListStatusEvents)
			tasks.PUT("/:id/status", taskHandler.UpdateStatus)
			tasks.PUT("/:id", admin, taskHandler.UpdateTask)
			tasks.DELETE("/:id", admin, taskHandler.DeleteTask)
			tasks.PUT("/:id/restore", admin, taskHandler.RestoreTask)
		}

		// Leave routes (protected)
		leaves := api.Group("/leaves", authed...)
		{
			leaves.POST("", leaveHandler.CreateLeave)
			leaves.GET("", admin, leaveHandler.ListLeaves)
			leaves.GET("/requester/:userId", middleware.RequireSelfOrAdmin("userId"), leaveHandler.ListRequesterLeaves)
			leaves.PUT("/:id/status", admin, leaveHandler.UpdateStatus)
		}
	}

	return r
}
