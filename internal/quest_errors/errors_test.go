package quest_errors

import (
	"errors"
	"net"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestHandleDBErrors(t *testing.T) {
	errMsgs := map[string]map[string]string{
		CodeForeignKeyConstraint: {
			"fk_user_progress_problem": "problem does not exist",
		},
	}

	t.Run("no rows becomes not found", func(t *testing.T) {
		err := HandleDBErrors(pgx.ErrNoRows, errMsgs, "cannot fetch problem 7")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrInternal)
	})

	t.Run("known foreign key violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: CodeForeignKeyConstraint, ConstraintName: "fk_user_progress_problem"}
		err := HandleDBErrors(pgErr, errMsgs, "cannot upsert progress")
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Contains(t, err.Error(), "problem does not exist")
	})

	t.Run("unique violation without message map", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: CodeUniqueConstraint, Detail: "Key (id)=(1) already exists."}
		err := HandleDBErrors(pgErr, errMsgs, "cannot insert")
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("invalid text representation", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: CodeInvalidTextRepr, Message: `invalid input syntax for type uuid: "abc"`}
		err := HandleDBErrors(pgErr, errMsgs, "cannot fetch user")
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.NotErrorIs(t, err, ErrInternal)
		assert.Contains(t, err.Error(), "invalid input syntax")
	})

	t.Run("unknown error is internal", func(t *testing.T) {
		err := HandleDBErrors(errors.New("conn reset"), errMsgs, "cannot fetch")
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestWrapIPCError(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	assert.ErrorIs(t, WrapIPCError(opErr), ErrInternal)
	assert.ErrorIs(t, WrapIPCError(errors.New("boom")), ErrInternal)
}
