package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsConstraintViolation(t *testing.T) {
	t.Run("Postgres error carries the constraint name", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23514", ConstraintName: SelfFollowConstraint}
		assert.True(t, IsConstraintViolation(err, SelfFollowConstraint))
		assert.False(t, IsConstraintViolation(err, "some_other_constraint"))
	})

	t.Run("Wrapped Postgres error", func(t *testing.T) {
		err := fmt.Errorf("create edge: %w",
			&pgconn.PgError{Code: "23514", ConstraintName: SelfFollowConstraint})
		assert.True(t, IsConstraintViolation(err, SelfFollowConstraint))
	})

	t.Run("Driver without structured errors falls back to the message", func(t *testing.T) {
		err := errors.New("CHECK constraint failed: user_cannot_follow_self")
		assert.True(t, IsConstraintViolation(err, SelfFollowConstraint))
		assert.False(t, IsConstraintViolation(err, "other"))
	})

	t.Run("Nil error", func(t *testing.T) {
		assert.False(t, IsConstraintViolation(nil, SelfFollowConstraint))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23514"}))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: users.username")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsCode(t *testing.T) {
	notFound := NewNotFoundError("Profile", "alice")
	assert.True(t, IsCode(notFound, "NOT_FOUND"))
	assert.False(t, IsCode(notFound, "FORBIDDEN"))

	wrapped := fmt.Errorf("lookup: %w", notFound)
	assert.True(t, IsCode(wrapped, "NOT_FOUND"))

	assert.False(t, IsCode(errors.New("plain"), "NOT_FOUND"))
}
