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
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeRouteNotFound, http.StatusNotFound},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeDuplicateRequest, http.StatusConflict},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeTransientStorage, http.StatusServiceUnavailable},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestErrorCodesMatchDomainCodes(t *testing.T) {
	assert.Equal(t, "VALIDATION_ERROR", ErrCodeValidation)
	assert.Equal(t, "NOT_FOUND", ErrCodeNotFound)
	assert.Equal(t, "CONFLICT", ErrCodeConflict)
	assert.Equal(t, "TRANSIENT_STORAGE", ErrCodeTransientStorage)
}

func TestResponseJSON(t *testing.T) {
	t.Run("success omits error", func(t *testing.T) {
		raw, err := json.Marshal(NewSuccessResponse(map[string]int{"id": 1}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":true,"data":{"id":1}}`, string(raw))
	})

	t.Run("field error carries field and request id", func(t *testing.T) {
		raw, err := json.Marshal(NewFieldErrorResponse(ErrCodeValidation, "amount must be greater than 0", "amount", "req-1"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":false,"error":{"code":"VALIDATION_ERROR","message":"amount must be greater than 0","field":"amount","request_id":"req-1"}}`, string(raw))
	})

	t.Run("plain error omits empty field", func(t *testing.T) {
		raw, err := json.Marshal(NewErrorResponse(ErrCodeNotFound, "worker 9 not found"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":false,"error":{"code":"NOT_FOUND","message":"worker 9 not found"}}`, string(raw))
	})
}

func TestListRequestToFilter(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		f := ListRequest{}.ToFilter()
		assert.Equal(t, 1, f.Page)
		assert.Zero(t, f.PageSize)
		assert.Empty(t, f.OrderBy)
		assert.Zero(t, f.Offset())
	})

	t.Run("normalizes direction and search", func(t *testing.T) {
		f := ListRequest{Page: 3, PageSize: 10, OrderBy: "name", OrderDir: "ASC", Search: "  cement "}.ToFilter()
		assert.Equal(t, "asc", f.OrderDir)
		assert.Equal(t, "cement", f.Search)
		assert.Equal(t, 20, f.Offset())
	})
}
