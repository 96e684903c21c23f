package constants

const (
	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUser      = "user"
	ContextKeyAuthToken = "auth_token"
	ContextKeyLang      = "lang"
	ContextKeyRequestID = "request_id"
	ContextKeyResource  = "resource_id"

	// Headers
	HeaderRequestID = "X-Request-ID"

	// Authentication
	MinPasswordLength   = 8
	TokenKeyBytes       = 20
	TokenKeyLength      = TokenKeyBytes * 2
	AuthSchemeToken     = "Token"
	AuthSchemeBearer    = "Bearer"
	TokenCacheKeyPrefix = "auth_token:"

	// Guest account
	GuestEmail     = "guest@join.com"
	GuestUsername  = "guest"
	GuestFirstName = "Guest"
	GuestLastName  = "User"

	// Field limits
	MaxEmailLength       = 254
	MaxPersonNameLength  = 150
	MaxContactNameLength = 100
	MaxPhoneLength       = 50
	MaxTitleLength       = 255
	MaxCategoryLength    = 100
)
