package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelhub/backend/internal/domain/shared"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeSlotFull, http.StatusConflict},
		{ErrCodeLikeRateLimited, http.StatusTooManyRequests},
		{ErrCodeTooLarge, http.StatusRequestEntityTooLarge},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"INVALID_CREDENTIALS", ErrCodeUnauthorized},
		{"TOKEN_REVOKED", ErrCodeTokenInvalid},
		{"VERSION_CONFLICT", ErrCodeConcurrencyConflict},
		{"SLOT_FULL", ErrCodeSlotFull},
		{"LIKE_RATE_LIMITED", ErrCodeLikeRateLimited},
		{"REVIEW_EXISTS", "ERR_REVIEW_EXISTS"},
		{ErrCodeNotFound, ErrCodeNotFound},
		{"", ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestDomainStatus(t *testing.T) {
	tests := []struct {
		domainCode string
		expected   int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"TENANT_NOT_FOUND", http.StatusNotFound},
		{"INVALID_SLOT_TIME", http.StatusBadRequest},
		{"INVALID_STATE", http.StatusUnprocessableEntity},
		{"REVIEW_EXISTS", http.StatusConflict},
		{"SLUG_TAKEN", http.StatusConflict},
		{"AVAILABILITY_HAS_BOOKINGS", http.StatusConflict},
		{"STOP_SALE", http.StatusConflict},
		{"PROMO_CODE_INVALID", http.StatusUnprocessableEntity},
		{"LIKE_RATE_LIMITED", http.StatusTooManyRequests},
		{"OFFER_GROUP_SIZE", http.StatusUnprocessableEntity},
		{"INTERNAL_ERROR", http.StatusInternalServerError},
		{"TOKEN_EXPIRED", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.domainCode, func(t *testing.T) {
			assert.Equal(t, tt.expected, DomainStatus(NormalizeErrorCode(tt.domainCode)))
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	page := shared.NewPaginated([]string{"a", "b"}, 12, 2, 5)

	resp := NewPageResponse(&page)

	assert.True(t, resp.Success)
	assert.Equal(t, []string{"a", "b"}, resp.Data)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(12), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 5, resp.Meta.PageSize)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewPageResponse_EmptyItemsEncodeAsArray(t *testing.T) {
	page := shared.NewPaginated[int](nil, 0, 1, 20)

	body, err := json.Marshal(NewPageResponse(&page))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"data":[]`)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "email", Message: "email must be a valid email address", Tag: "email"},
	})

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 1)
}
