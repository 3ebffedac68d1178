package progress_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/quest/internal/database"
	"github.com/tcp_snm/quest/internal/quest_errors"
	"github.com/tcp_snm/quest/internal/service/user_service"
)

// RecordAttempt persists a graded submission. The progress row and the user
// stats are locked and updated in one transaction, so concurrent submissions
// of the same learner never lose an attempt.
func (p *ProgressService) RecordAttempt(
	ctx context.Context,
	attempt Attempt,
) (AttemptOutcome, error) {
	tx, qtx, err := p.BeginTx(ctx)
	if err != nil {
		return AttemptOutcome{}, err
	}
	defer tx.Rollback(ctx)

	// make sure a row exists to lock
	err = qtx.EnsureProgress(ctx, database.EnsureProgressParams{
		UserID:    attempt.UserID,
		ProblemID: attempt.ProblemID,
	})
	if err != nil {
		return AttemptOutcome{}, quest_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf(
				"cannot create progress of user %v on problem %d",
				attempt.UserID,
				attempt.ProblemID,
			),
		)
	}

	dbProgress, err := qtx.GetProgressForUpdate(ctx, database.GetProgressForUpdateParams{
		UserID:    attempt.UserID,
		ProblemID: attempt.ProblemID,
	})
	if err != nil {
		return AttemptOutcome{}, quest_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf(
				"cannot lock progress of user %v on problem %d",
				attempt.UserID,
				attempt.ProblemID,
			),
		)
	}

	now := p.Now()
	previous := dbProgressToProgress(dbProgress)
	next := ApplyAttempt(previous, attempt, now)

	dbUpdated, err := qtx.UpdateProgress(ctx, database.UpdateProgressParams{
		UserID:          attempt.UserID,
		ProblemID:       attempt.ProblemID,
		IsCompleted:     next.IsCompleted,
		Attempts:        next.Attempts,
		BestTimeSeconds: next.BestTimeSeconds,
		CompletedAt:     next.CompletedAt,
	})
	if err != nil {
		return AttemptOutcome{}, quest_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf(
				"cannot update progress of user %v on problem %d",
				attempt.UserID,
				attempt.ProblemID,
			),
		)
	}

	var xpEarned int32 = 0
	if next.IsCompleted && !previous.IsCompleted {
		xpEarned = attempt.XPReward
	}

	stats, err := p.Stats.RecordActivity(ctx, qtx, user_service.Activity{
		UserID:   attempt.UserID,
		XPEarned: xpEarned,
		At:       now,
	})
	if err != nil {
		return AttemptOutcome{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		err = fmt.Errorf(
			"%w, cannot commit progress of user %v on problem %d, %w",
			quest_errors.ErrInternal,
			attempt.UserID,
			attempt.ProblemID,
			err,
		)
		log.Error(err)
		return AttemptOutcome{}, err
	}

	p.invalidate(ctx, attempt.UserID)

	updated := dbProgressToProgress(dbUpdated)
	return AttemptOutcome{
		Progress: ProgressUpdate{
			ProblemID:       updated.ProblemID,
			IsCompleted:     updated.IsCompleted,
			Attempts:        updated.Attempts,
			BestTimeSeconds: updated.BestTimeSeconds,
		},
		XPEarned: xpEarned,
		Stats:    stats,
	}, nil
}

// ApplyAttempt derives the next progress state. Attempts always grow,
// completion is sticky and the best time is the time of the latest
// successful run.
func ApplyAttempt(previous Progress, attempt Attempt, now time.Time) Progress {
	next := previous
	next.UserID = attempt.UserID
	next.ProblemID = attempt.ProblemID
	next.Attempts = previous.Attempts + 1

	if attempt.Success {
		next.IsCompleted = true
		seconds := attempt.TimeSeconds
		next.BestTimeSeconds = &seconds
		if previous.CompletedAt == nil {
			completedAt := now
			next.CompletedAt = &completedAt
		}
	}

	return next
}

// GetProgress returns the progress of a user on a problem, a zero progress
// when the user never submitted it.
func (p *ProgressService) GetProgress(
	ctx context.Context,
	userID uuid.UUID,
	problemID int32,
) (Progress, error) {
	dbProgress, err := p.DB.GetProgress(ctx, database.GetProgressParams{
		UserID:    userID,
		ProblemID: problemID,
	})
	if err != nil {
		err = quest_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot fetch progress of user %v on problem %d", userID, problemID),
		)
		if errors.Is(err, quest_errors.ErrNotFound) {
			return Progress{UserID: userID, ProblemID: problemID}, nil
		}
		return Progress{}, err
	}
	return dbProgressToProgress(dbProgress), nil
}

// ListProgress returns every progress row of a user, served from the cache when possible
func (p *ProgressService) ListProgress(
	ctx context.Context,
	userID uuid.UUID,
) ([]Progress, error) {
	logger := p.logger.WithField("user_id", userID)

	cached, hit, err := p.Cache.GetUserProgress(ctx, userID)
	if err != nil {
		logger.Warnf("progress cache read failed, %v", err)
	} else if hit {
		logger.Debug("progress cache hit")
		return cached, nil
	}

	dbProgress, err := p.DB.ListProgressByUser(ctx, userID)
	if err != nil {
		return nil, quest_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot list progress of user %v", userID),
		)
	}

	progress := make([]Progress, 0, len(dbProgress))
	for _, row := range dbProgress {
		progress = append(progress, dbProgressToProgress(row))
	}

	if err := p.Cache.SetUserProgress(ctx, userID, progress); err != nil {
		logger.Warnf("progress cache write failed, %v", err)
	}

	return progress, nil
}

func (p *ProgressService) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := p.Cache.InvalidateUser(ctx, userID); err != nil {
		p.logger.WithField("user_id", userID).Warnf(
			"cannot invalidate progress cache, %v",
			err,
		)
	}
}

func dbProgressToProgress(dbProgress database.UserProgress) Progress {
	return Progress{
		UserID:          dbProgress.UserID,
		ProblemID:       dbProgress.ProblemID,
		IsCompleted:     dbProgress.IsCompleted,
		Attempts:        dbProgress.Attempts,
		BestTimeSeconds: dbProgress.BestTimeSeconds,
		CompletedAt:     dbProgress.CompletedAt,
		UpdatedAt:       dbProgress.UpdatedAt,
	}
}
