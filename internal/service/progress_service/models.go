package progress_service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/quest/internal/database"
	"github.com/tcp_snm/quest/internal/quest_errors"
	"github.com/tcp_snm/quest/internal/service/user_service"
)

var (
	// used for conversion of db error codes to user understandable messages
	errMsgs = map[string]map[string]string{
		quest_errors.CodeForeignKeyConstraint: {
			"fk_user_progress_user":    "user does not exist",
			"fk_user_progress_problem": "problem does not exist",
		},
	}
)

// TxStarter opens a transaction and returns queries bound to it
type TxStarter func(ctx context.Context) (pgx.Tx, database.Querier, error)

type StatsRecorder interface {
	RecordActivity(
		ctx context.Context,
		qtx database.Querier,
		activity user_service.Activity,
	) (user_service.UserStats, error)
}

type ProgressService struct {
	DB      database.Querier
	Stats   StatsRecorder
	// defaults to a redis-less no-op cache
	Cache   ProgressCache
	// defaults to a transaction from the shared db pool
	BeginTx TxStarter
	// returns the current time, time.Now if nil
	Now     func() time.Time

	logger *logrus.Entry
}

// Progress is the persisted state of one learner on one problem
type Progress struct {
	UserID          uuid.UUID  `json:"user_id"`
	ProblemID       int32      `json:"problem_id"`
	IsCompleted     bool       `json:"is_completed"`
	Attempts        int32      `json:"attempts"`
	BestTimeSeconds *int32     `json:"best_time_seconds"`
	CompletedAt     *time.Time `json:"completed_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ProgressUpdate is the slice of progress echoed back after a submission
type ProgressUpdate struct {
	ProblemID       int32  `json:"problem_id"`
	IsCompleted     bool   `json:"is_completed"`
	Attempts        int32  `json:"attempts"`
	BestTimeSeconds *int32 `json:"best_time_seconds"`
}

// Attempt is one graded submission
type Attempt struct {
	UserID      uuid.UUID
	ProblemID   int32
	Success     bool
	// seconds the learner spent, only meaningful when Success
	TimeSeconds int32
	// xp granted when this attempt completes the problem for the first time
	XPReward    int32
}

type AttemptOutcome struct {
	Progress ProgressUpdate
	// non-zero only on first completion
	XPEarned int32
	Stats    user_service.UserStats
}
