package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/join-board-api/internal/constants"
	"github.com/yukikurage/join-board-api/internal/translator"
	"github.com/yukikurage/join-board-api/internal/validation"
)

// Message ids of request level errors
const (
	MsgInvalidCredentials     = "invalidCredentials"
	MsgInvalidStatus          = "invalidStatus"
	MsgSubtaskNotFound        = "subtaskNotFound"
	MsgNotFound               = "notFound"
	MsgNotAuthenticated       = "notAuthenticated"
	MsgInvalidToken           = "invalidToken"
	MsgLogoutNotAuthenticated = "logoutNotAuthenticated"
	MsgLoggedOut              = "loggedOut"
	MsgMalformedBody          = "malformedBody"
	MsgConflict               = "conflict"
	MsgInternalError          = "internalError"
)

// Body keys
const (
	KeyError  = "error"
	KeyDetail = "detail"
)

// Lang returns the request language set by the language middleware
func Lang(c *gin.Context) string {
	if lang := c.GetString(constants.ContextKeyLang); lang != "" {
		return lang
	}
	return translator.LanguageEn
}

// Translate localizes a message id for the request language
func Translate(c *gin.Context, messageID string) string {
	return translator.Localize(Lang(c), messageID, nil)
}

// RespondWithError sends {key: message} with the localized message
func RespondWithError(c *gin.Context, statusCode int, key, messageID string) {
	c.JSON(statusCode, gin.H{key: Translate(c, messageID)})
}

// Helper functions for common error responses

// Validation sends a 400 response with per-field messages
func Validation(c *gin.Context, verr *validation.Error) {
	c.JSON(http.StatusBadRequest, verr.Localize(Lang(c)))
}

// BadRequest sends a 400 {"error": ...} response
func BadRequest(c *gin.Context, messageID string) {
	RespondWithError(c, http.StatusBadRequest, KeyError, messageID)
}

// MalformedBody sends a 400 response for a body that is not a JSON object
func MalformedBody(c *gin.Context) {
	RespondWithError(c, http.StatusBadRequest, KeyDetail, MsgMalformedBody)
}

// InvalidCredentials sends a 401 {"error": "Invalid credentials"} response
func InvalidCredentials(c *gin.Context) {
	RespondWithError(c, http.StatusUnauthorized, KeyError, MsgInvalidCredentials)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, messageID string) {
	if messageID == "" {
		messageID = MsgNotAuthenticated
	}
	RespondWithError(c, http.StatusUnauthorized, KeyDetail, messageID)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context) {
	RespondWithError(c, http.StatusNotFound, KeyDetail, MsgNotFound)
}

// InternalError logs err and sends a 500 response
func InternalError(c *gin.Context, err error) {
	zap.L().Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString(constants.ContextKeyRequestID)),
		zap.Error(err),
	)
	_ = c.Error(err)
	RespondWithError(c, http.StatusInternalServerError, KeyDetail, MsgInternalError)
}
