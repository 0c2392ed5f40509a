package constants

const (
	// ContextKeyUserID is the session and gin context key holding the account ID.
	ContextKeyUserID = "user_id"
	// ContextKeyAccount holds the *models.Account loaded by the auth middleware.
	ContextKeyAccount = "account"
	// ContextKeyRequestID holds the request ID assigned by middleware.RequestID.
	ContextKeyRequestID = "request_id"

	SessionCookieName = "employee_session"
	SessionMaxAge     = 86400 * 7

	RequestIDHeader = "X-Request-ID"
)

const (
	MinPasswordLength = 8

	// OAuthPlaceholderPassword is stored for accounts created through federated sign-in.
	OAuthPlaceholderPassword = "oauth"
)

// Date layouts accepted for leave request dates.
const (
	DateLayout = "2006-01-02"
)
