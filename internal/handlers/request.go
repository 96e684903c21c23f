package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/join-board-api/internal/errors"
	"github.com/yukikurage/join-board-api/internal/services"
	"github.com/yukikurage/join-board-api/internal/validation"
	"gorm.io/gorm"
)

// readPayload reads the request body as a JSON object. On failure the response is already written.
func readPayload(c *gin.Context) (validation.Payload, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apierrors.MalformedBody(c)
		return nil, false
	}

	payload, err := validation.ParseObject(body)
	if err != nil {
		apierrors.MalformedBody(c)
		return nil, false
	}
	return payload, true
}

// bindJSON binds a fixed-schema body into req. On failure the response is already written.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	if verr, ok := validation.FromBinding(err, req); ok {
		apierrors.Validation(c, verr)
	} else {
		apierrors.MalformedBody(c)
	}
	return false
}

// queryFilter returns a pointer to the query value, or nil when the parameter is absent.
func queryFilter(c *gin.Context, key string) *string {
	value, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	return &value
}

// respondError maps service errors to HTTP responses.
func respondError(c *gin.Context, err error) {
	if verr, ok := validation.As(err); ok {
		apierrors.Validation(c, verr)
		return
	}

	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrContactNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c)
	case errors.Is(err, services.ErrSubtaskNotFound):
		apierrors.RespondWithError(c, http.StatusNotFound, apierrors.KeyError, apierrors.MsgSubtaskNotFound)
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, apierrors.MsgInvalidStatus)
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrInvalidToken):
		apierrors.Unauthorized(c, apierrors.MsgInvalidToken)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		apierrors.RespondWithError(c, http.StatusBadRequest, apierrors.KeyDetail, apierrors.MsgConflict)
	default:
		apierrors.InternalError(c, err)
	}
}

func stringChoices[T ~string](values []T) []string {
	choices := make([]string, len(values))
	for i, value := range values {
		choices[i] = string(value)
	}
	return choices
}
