package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"TOKEN_EXPIRED", http.StatusUnauthorized},
		{"ACCOUNT_DISABLED", http.StatusForbidden},
		{"USER_NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"EMPTY_CART", http.StatusUnprocessableEntity},
		{"PRODUCT_UNAVAILABLE", http.StatusUnprocessableEntity},
		{"INVALID_VARIANT", http.StatusUnprocessableEntity},
		{"INVALID_INPUT", http.StatusBadRequest},
		{"INVALID_PRICE", http.StatusBadRequest},
		// Unmapped domain codes are treated as business rule violations
		{"SOME_NEW_RULE", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestResponseSerialization(t *testing.T) {
	t.Run("success response omits error and meta", func(t *testing.T) {
		data, err := json.Marshal(NewSuccessResponse(map[string]string{"name": "Classic Tee"}))
		require.NoError(t, err)

		assert.JSONEq(t, `{"success":true,"data":{"name":"Classic Tee"}}`, string(data))
	})

	t.Run("success response with meta computes total pages", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]string{"a"}, 21, 2, 10)

		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(21), resp.Meta.Total)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})

	t.Run("error response omits data", func(t *testing.T) {
		data, err := json.Marshal(NewErrorResponse(ErrCodeNotFound, "Product not found"))
		require.NoError(t, err)

		assert.JSONEq(t, `{"success":false,"error":{"code":"NOT_FOUND","message":"Product not found"}}`, string(data))
	})

	t.Run("validation response carries field details", func(t *testing.T) {
		resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
			{Field: "email", Message: "must be a valid email address"},
		})

		require.NotNil(t, resp.Error)
		assert.Equal(t, ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "req-1", resp.Error.RequestID)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "email", resp.Error.Details[0].Field)
	})
}
