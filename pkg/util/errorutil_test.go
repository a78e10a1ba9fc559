package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_PassesThrough(t *testing.T) {
	err := NewForbidden("staff role required")
	domainErr := ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	assert.Equal(t, http.StatusForbidden, domainErr.HTTPStatus)
}

func TestToDomainError_Wrapped(t *testing.T) {
	err := fmt.Errorf("advance case: %w", NewCaseDone("case-1"))
	domainErr := ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, "CASE_DONE", domainErr.Code)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Equal(t, "case-1", domainErr.Details["case_id"])
}

func TestToDomainError_NoRows(t *testing.T) {
	domainErr := ToDomainError(pgx.ErrNoRows)
	require.NotNil(t, domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainError_Generic(t *testing.T) {
	domainErr := ToDomainError(errors.New("connection refused"))
	require.NotNil(t, domainErr)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
}

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestNewConflict_RendersBadRequest(t *testing.T) {
	domainErr := ToDomainError(NewConflict("username already exists", nil))
	require.NotNil(t, domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
}
