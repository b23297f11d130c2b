package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/SscSPs/banking_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidOperation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrGone):
		return http.StatusGone
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.As(err, &appErr) && appErr.Code >= 400:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError logs err and writes the matching problem response.
// Server-side failures never leak their cause to the caller.
func respondWithError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromContext(c)
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		detail := "failed to " + action
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && status == http.StatusServiceUnavailable {
			detail = appErr.Message
		}
		middleware.AbortWithProblem(c, status, detail)
		return
	}
	logger.Warn("Rejected request to "+action, slog.String("error", err.Error()), slog.Int("status", status))
	middleware.AbortWithProblem(c, status, err.Error())
}

// respondWithBindError renders binding and validation failures as 400 problems.
func respondWithBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromContext(c).Warn("Failed to bind request", slog.String("error", err.Error()))
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, len(fieldErrs))
		for i, fe := range fieldErrs {
			fields[i] = describeFieldError(fe)
		}
		middleware.AbortWithProblem(c, http.StatusBadRequest, "invalid fields: "+strings.Join(fields, "; "))
		return
	}
	middleware.AbortWithProblem(c, http.StatusBadRequest, "invalid request: "+err.Error())
}

func describeFieldError(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fmt.Sprintf("%s failed '%s'", fe.Field(), fe.Tag())
	}
	return fmt.Sprintf("%s failed '%s=%s'", fe.Field(), fe.Tag(), fe.Param())
}
