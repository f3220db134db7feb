package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsMapToStatus(t *testing.T) {
	cases := []struct {
		err  *APIError
		code int
		typ  ErrorType
	}{
		{NewValidationError("bad", nil), http.StatusUnprocessableEntity, ErrorTypeValidation},
		{NewAuthFormatError(nil), http.StatusUnauthorized, ErrorTypeAuthFormat},
		{NewInvalidCredentialsError(nil), http.StatusUnauthorized, ErrorTypeAuth},
		{NewInvalidDeviceError(nil), http.StatusUnauthorized, ErrorTypeAuth},
		{NewNotFoundError("gone", nil), http.StatusNotFound, ErrorTypeNotFound},
		{NewAuthorizationError("no", nil), http.StatusForbidden, ErrorTypeAuthorize},
		{NewDatabaseError("db", nil), http.StatusInternalServerError, ErrorTypeDatabase},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code, tc.err.Message)
		assert.Equal(t, tc.typ, tc.err.Type)
	}
}

func TestDeviceMessageIsUniform(t *testing.T) {
	a := NewInvalidDeviceError(stderrors.New("unknown device"))
	b := NewInvalidDeviceError(stderrors.New("token mismatch"))
	assert.Equal(t, a.Message, b.Message)
	assert.Equal(t, MsgInvalidDevice, a.Message)
}

func TestPublicHidesServerDetail(t *testing.T) {
	err := NewDatabaseError("failed to get sensor", stderrors.New("pq: connection refused")).WithRequestID("req_1")
	pub := err.Public()

	assert.Equal(t, MsgInternal, pub.Message)
	assert.Equal(t, ErrorTypeInternal, pub.Type)
	assert.Equal(t, "req_1", pub.RequestID)
	assert.NotContains(t, pub.Error(), "connection refused")

	nf := NewNotFoundError("plant not found", nil).Public()
	assert.Equal(t, "plant not found", nf.Message)
}

func TestPredicatesSeeWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("loading plant: %w", NewNotFoundError("plant not found", nil))
	require.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.True(t, IsUnauthenticated(NewAuthFormatError(nil)))
	assert.False(t, IsNotFound(stderrors.New("plain")))
}
