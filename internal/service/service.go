package service

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/quest/internal/quest_errors"
)

type contextKey string

const (
	KeyCtxUserCredClaims contextKey = "UserCredClaims"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
	dbPool       *pgxpool.Pool
)

// pool may be nil when no db interactions are needed (tests)
func InitializeServices(pool *pgxpool.Pool) {
	dbPool = pool
	initValidatorOnce()
}

func initValidatorOnce() {
	validateOnce.Do(func() {
		validate = initValidator() // used for validating struct fields
	})
}

func GetNewTransaction(ctx context.Context) (pgx.Tx, error) {
	if dbPool == nil {
		err := fmt.Errorf("%w, database pool is not initialized", quest_errors.ErrInternal)
		log.Error(err)
		return nil, err
	}
	tx, err := dbPool.Begin(ctx)
	if err != nil {
		err = fmt.Errorf("%w, cannot begin transaction, %w", quest_errors.ErrInternal, err)
		log.Error(err)
		return nil, err
	}
	return tx, nil
}

func initValidator() *validator.Validate {
	log.Info("initializing validator")
	validate := validator.New(validator.WithRequiredStructEnabled())

	// This makes error.Field() return "first_name" instead of "FirstName"
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// GetClaimsFromContext returns the claims put in the context by the jwt middleware.
// ok is false for anonymous requests.
func GetClaimsFromContext(ctx context.Context) (claims UserCredentialClaims, ok bool) {
	claims, ok = ctx.Value(KeyCtxUserCredClaims).(UserCredentialClaims)
	return
}

// AuthorizeUser fails when a signed in user acts on behalf of another user.
// Anonymous requests are allowed.
func AuthorizeUser(ctx context.Context, userID uuid.UUID) error {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok || claims.UserID == userID {
		return nil
	}
	err := fmt.Errorf(
		"%w, user %v cannot act on behalf of %v",
		quest_errors.ErrUnAuthorized,
		claims.UserID,
		userID,
	)
	log.Warn(err)
	return err
}
