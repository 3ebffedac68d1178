package quest_errors

import (
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

const (
	CodeUniqueConstraint     = "23505"
	CodeForeignKeyConstraint = "23503"
	CodeInvalidTextRepr      = "22P02"
)

var (
	ErrInternal         = errors.New("internal service error. please try again later")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnAuthorized     = errors.New("user not allowed to perform this action")
	ErrNotFound         = errors.New("entity not found")
	ErrPartialResult    = errors.New("unable to fetch complete list of requested entities")
	ErrMalformedProblem = errors.New("problem data is malformed")
)

// HandleDBErrors converts a query error into one of the sentinel errors.
// errMsgs maps a pg error code to a map of constraint name -> user message.
func HandleDBErrors(
	err error,
	errMsgs map[string]map[string]string,
	contextMessage string,
) error {
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("%s, %v", contextMessage, ErrNotFound)
		return fmt.Errorf("%w, %s", ErrNotFound, contextMessage)
	}

	// assume its an internal error first
	err = fmt.Errorf(
		"%w, %s, %w",
		ErrInternal,
		contextMessage,
		err,
	)

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		log.Error(err)
		return err
	}

	if errMsgs == nil {
		log.Warnf("got null errMsgs")
		log.Error(err)
		return err
	}

	switch pgErr.Code {
	case CodeForeignKeyConstraint:
		msgForeignKey, ok := errMsgs[CodeForeignKeyConstraint]
		if !ok {
			log.Warnf("no msg map found for foreign key constraint.")
			return fmt.Errorf("%w, %s", ErrInvalidRequest, pgErr.Detail)
		}
		return handleConstraintError(pgErr, msgForeignKey)
	case CodeUniqueConstraint:
		msgUniqueConstraint, ok := errMsgs[CodeUniqueConstraint]
		if !ok {
			log.Warnf("no msg map found for unique key constraint.")
			return fmt.Errorf("%w, %s", ErrInvalidRequest, pgErr.Detail)
		}
		return handleConstraintError(pgErr, msgUniqueConstraint)
	case CodeInvalidTextRepr:
		// a malformed literal reached a typed column (uuid, int)
		err = fmt.Errorf("%w, %s", ErrInvalidRequest, pgErr.Message)
		log.Debug(err)
		return err
	}

	// unknown error
	log.Error(err)
	return err
}

func handleConstraintError(pgErr *pgconn.PgError, msgs map[string]string) error {
	msg, ok := msgs[pgErr.ConstraintName]
	if !ok {
		log.Warnf("unknown constraint violation, %s", pgErr.ConstraintName)
		msg = pgErr.Detail
	}
	err := fmt.Errorf("%w, %s", ErrInvalidRequest, msg)
	log.Error(err)
	return err
}

// handles errors from network backed collaborators (redis, kafka)
func WrapIPCError(err error) error {
	var opError *net.OpError
	if errors.As(err, &opError) {
		return fmt.Errorf(
			"%w, \"%s\" error occurred during \"%s\" operation, network: %s, dest: %s",
			ErrInternal,
			opError.Error(),
			opError.Op,
			opError.Net,
			opError.Addr,
		)
	}

	// unknown error
	return fmt.Errorf("%w, %w", ErrInternal, err)
}
