package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "finmentor/internal/errors"
	"finmentor/internal/logger"
	"finmentor/internal/middleware"
	"finmentor/internal/models"
)

const dateLayout = "2006-01-02"

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, message and details.
// Otherwise it logs the unexpected error and returns a generic internal
// server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		logger.Get().Errorw("app error",
			"code", appErr.Code,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
		)
	}

	body := ErrorDetail{Code: appErr.Code, Message: appErr.Message, Details: appErr.Details}
	c.JSON(appErr.StatusCode, ErrorResponse{Error: body})
}

// bindError turns a binding failure into a validation AppError with
// per-field details where the cause allows it.
func bindError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperrors.Field(fe.Field(), validationMessage(fe)))
		}
		return apperrors.Invalid(fields...)
	}

	var enumErr *models.EnumError
	if errors.As(err, &enumErr) {
		return apperrors.Invalid(apperrors.Field(enumErr.Field, "must be one of "+strings.Join(enumErr.Allowed, ", ")))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperrors.Invalid(apperrors.Field(typeErr.Field, "must be a "+typeErr.Type.String()))
	}

	return apperrors.WithMessage(apperrors.ErrInvalidInput, "Malformed request body")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "goal_category":
		return "must be a valid goal category"
	case "goal_priority":
		return "must be one of low, medium, high"
	case "goal_status":
		return "must be one of active, completed, cancelled"
	case "transaction_type":
		return "must be one of income, expense"
	default:
		return "is invalid"
	}
}

// parseIntParam parses an integer path or query value.
func parseIntParam(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Invalid(apperrors.Field(name, "must be an integer"))
	}
	return n, nil
}

// parseYearMonth reads the :year and :month path parameters.
func parseYearMonth(c *gin.Context) (year, month int, err error) {
	var fields []apperrors.FieldError
	year, yerr := strconv.Atoi(c.Param("year"))
	if yerr != nil {
		fields = append(fields, apperrors.Field("year", "must be an integer"))
	}
	month, merr := strconv.Atoi(c.Param("month"))
	if merr != nil {
		fields = append(fields, apperrors.Field("month", "must be an integer"))
	}
	if len(fields) > 0 {
		return 0, 0, apperrors.Invalid(fields...)
	}
	return year, month, nil
}

// parseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func parseDate(field, raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.Invalid(apperrors.Field(field, fmt.Sprintf("must be a date (%s) or RFC 3339 timestamp", dateLayout)))
}

// parseOptionalDate parses a query value, returning nil when it is empty.
func parseOptionalDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details []apperrors.FieldError `json:"details,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse is returned by endpoints that only confirm an action.
type MessageResponse struct {
	Message string `json:"message"`
}
