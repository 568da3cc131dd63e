package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

func TestRespondErrorStatuses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{name: "validation", err: models.NewFieldValidationError("size", "size is required"), wantCode: http.StatusBadRequest, wantMessage: "size is required"},
		{name: "wrapped not found", err: fmt.Errorf("update: %w", &models.NotFoundError{Entity: "Order", ID: "o1"}), wantCode: http.StatusNotFound, wantMessage: "update: Order not found"},
		{name: "conflict", err: &models.ConflictError{Entity: "Keg", Field: "id", Value: "K-12345678"}, wantCode: http.StatusConflict, wantMessage: `Keg with id "K-12345678" already exists`},
		{name: "internal", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantMessage: "Failed to create keg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/kegs", nil)

			respondError(c, zap.NewNop(), tt.err, "create keg")

			assert.Equal(t, tt.wantCode, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("2024-03-04T10:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 4, 8, 30, 0, 0, time.UTC), d.UTC())

	_, err = parseDate("04/03/2024")
	assert.Error(t, err)
}

func TestDateRangeQueryCoversWholeEndDay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?startDate=2024-01-01&endDate=2024-01-07", nil)

	start, end, err := dateRangeQuery(c)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 7, 23, 59, 59, 999999999, time.UTC), end)

	c.Request = httptest.NewRequest(http.MethodGet, "/?startDate=2024-01-01", nil)
	_, _, err = dateRangeQuery(c)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "endDate", verr.Errors[0].Path)
}
