package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
	"github.com/mamadbah2/stoickegs/internal/validation"
)

const dateLayout = "2006-01-02"

type errorResponse struct {
	Message string              `json:"message"`
	Errors  []models.FieldError `json:"errors,omitempty"`
}

// respondError maps domain errors onto HTTP statuses. Anything unexpected is
// logged and reported as "Failed to <action>".
func respondError(c *gin.Context, logger *zap.Logger, err error, action string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, errorResponse{Message: verr.Message, Errors: verr.Errors})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Message: err.Error()})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse{Message: err.Error()})
	default:
		logger.Error("request failed",
			zap.String("action", action),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Message: "Failed to " + action})
	}
}

func respondNotFound(c *gin.Context, entity, id string) {
	c.JSON(http.StatusNotFound, errorResponse{Message: (&models.NotFoundError{Entity: entity, ID: id}).Error()})
}

// bindJSON decodes the request body into dst and validates it.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return models.NewFieldValidationError("body", "Invalid request body: "+err.Error())
	}
	return validation.Struct(dst)
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// dateQuery reads a required date query parameter.
func dateQuery(c *gin.Context, name string) (time.Time, error) {
	value := strings.TrimSpace(c.Query(name))
	if value == "" {
		return time.Time{}, models.NewFieldValidationError(name, fmt.Sprintf("%s is required", name))
	}
	t, err := parseDate(value)
	if err != nil {
		return time.Time{}, models.NewFieldValidationError(name, fmt.Sprintf("%s must be a date (YYYY-MM-DD) or RFC 3339 timestamp", name))
	}
	return t, nil
}

// dateRangeQuery reads startDate and endDate. A calendar end date covers the
// whole day.
func dateRangeQuery(c *gin.Context) (time.Time, time.Time, error) {
	start, err := dateQuery(c, "startDate")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := dateQuery(c, "endDate")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if _, perr := time.Parse(dateLayout, strings.TrimSpace(c.Query("endDate"))); perr == nil {
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, models.NewFieldValidationError("endDate", "endDate must not be before startDate")
	}
	return start, end, nil
}

// intQuery reads an optional integer query parameter, returning fallback when
// it is absent.
func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	value := strings.TrimSpace(c.Query(name))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, models.NewFieldValidationError(name, fmt.Sprintf("%s must be an integer", name))
	}
	return n, nil
}
