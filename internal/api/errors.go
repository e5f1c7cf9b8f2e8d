package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/core"
	"github.com/bannerforge/bannerforge-backend/internal/db"
	"github.com/bannerforge/bannerforge-backend/internal/identity"
)

// mapErrorToStatus maps errors from the core, db and identity packages to HTTP status codes
// and an ErrorResponse.
func mapErrorToStatus(c *gin.Context, logger *zap.Logger, err error) {
	var statusCode int
	var errResponse ErrorResponse
	var authErr *identity.AuthError

	switch {
	case errors.As(err, &authErr):
		statusCode = authErrorStatus(authErr.Code)
		errResponse = ErrorResponse{Error: authErr.Message, Details: authErr.Code}
	case errors.Is(err, core.ErrWorkspaceNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrWorkspaceNotFound.Error()}
	case errors.Is(err, core.ErrWorkspaceClosed):
		statusCode = http.StatusGone
		errResponse = ErrorResponse{Error: core.ErrWorkspaceClosed.Error()}
	case errors.Is(err, core.ErrAuthRequired):
		statusCode = http.StatusUnauthorized
		errResponse = ErrorResponse{Error: core.ErrAuthRequired.Error()}
	case errors.Is(err, db.ErrNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: "Not found", Details: err.Error()}
	case errors.Is(err, core.ErrIdeaNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrIdeaNotFound.Error(), Details: err.Error()}
	case errors.Is(err, core.ErrPromptRequired),
		errors.Is(err, core.ErrAffiliateLinkRequired),
		errors.Is(err, core.ErrNothingToShare),
		errors.Is(err, core.ErrBannerIDRequired):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: err.Error()}
	case errors.Is(err, core.ErrUnknownField), errors.Is(err, core.ErrInvalidFieldValue):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: "Invalid field", Details: err.Error()}
	case errors.Is(err, core.ErrGenerationInProgress):
		statusCode = http.StatusConflict
		errResponse = ErrorResponse{Error: core.ErrGenerationInProgress.Error()}
	case errors.Is(err, core.ErrGeneration):
		logger.Error("Generation failed", zap.Error(err))
		statusCode = http.StatusBadGateway
		errResponse = ErrorResponse{Error: core.ErrGeneration.Error()}
	case errors.Is(err, core.ErrDatabase):
		logger.Error("Database error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: core.ErrDatabase.Error()}
	default:
		logger.Error("Internal Server Error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

func authErrorStatus(code string) int {
	switch code {
	case "EMAIL_EXISTS":
		return http.StatusConflict
	case "MISSING_EMAIL", "MISSING_PASSWORD", "INVALID_EMAIL", "WEAK_PASSWORD":
		return http.StatusBadRequest
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return http.StatusTooManyRequests
	}
	return http.StatusUnauthorized
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
}
