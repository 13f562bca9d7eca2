package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomyCodesAndStatuses(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{NewAccountNotFound(), CodeAccountNotFound, http.StatusNotFound},
		{NewTaskNotFound(), CodeTaskNotFound, http.StatusNotFound},
		{NewDuplicateEmail(), CodeDuplicateEmail, http.StatusConflict},
		{NewInvalidCredentials(), CodeInvalidCredentials, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		domainErr := ToDomainError(tt.err)
		assert.Equal(t, tt.code, domainErr.Code)
		assert.Equal(t, tt.status, domainErr.HTTPStatus)
		assert.True(t, HasCode(tt.err, tt.code))
	}
}

func TestToDomainError_UnknownErrorBecomesInternal(t *testing.T) {
	cause := errors.New("connection refused")

	domainErr := ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.ErrorIs(t, domainErr, cause)
}

func TestToDomainError_UnwrapsWrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("while updating: %w", NewDuplicateEmail())

	domainErr := ToDomainError(wrapped)
	assert.Equal(t, CodeDuplicateEmail, domainErr.Code)
}

func TestHasCode(t *testing.T) {
	assert.False(t, HasCode(nil, CodeTaskNotFound))
	assert.False(t, HasCode(errors.New("plain"), CodeTaskNotFound))
	assert.False(t, HasCode(NewTaskNotFound(), CodeAccountNotFound))
}
