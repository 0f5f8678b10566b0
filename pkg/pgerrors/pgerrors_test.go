package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	wrapped := fmt.Errorf("appointment.repository: failed to execute query: Create: %w",
		&pq.Error{Code: CodeSerializationFailure})

	assert.True(t, IsTransient(wrapped))
	assert.True(t, IsTransient(&pq.Error{Code: CodeDeadlockDetected}))
	assert.False(t, IsTransient(&pq.Error{Code: CodeUniqueViolation}))
	assert.False(t, IsTransient(errors.New("plain")))
	assert.False(t, IsTransient(nil))
}

func TestIsExclusionViolation(t *testing.T) {
	assert.True(t, IsExclusionViolation(fmt.Errorf("insert: %w", &pq.Error{Code: CodeExclusionViolation})))
	assert.False(t, IsExclusionViolation(&pq.Error{Code: CodeSerializationFailure}))
	assert.True(t, IsUniqueViolation(&pq.Error{Code: CodeUniqueViolation}))
}
