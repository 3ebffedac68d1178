package user_service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tcp_snm/quest/internal/database"
	"github.com/tcp_snm/quest/internal/quest_errors"
)

func (u *UserService) GetUserStats(
	ctx context.Context,
	userID uuid.UUID,
) (UserStats, error) {
	dbUser, err := u.DB.GetUserStats(ctx, userID)
	if err != nil {
		return UserStats{}, quest_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot fetch stats of user %v", userID),
		)
	}
	return dbUserToStats(dbUser), nil
}

// RecordActivity applies an activity to the user's stats. qtx must be bound to
// the caller's transaction so the stats change commits with the progress row.
func (u *UserService) RecordActivity(
	ctx context.Context,
	qtx database.Querier,
	activity Activity,
) (UserStats, error) {
	dbUser, err := qtx.GetUserStatsForUpdate(ctx, activity.UserID)
	if err != nil {
		return UserStats{}, quest_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("no user exist with id %v", activity.UserID),
		)
	}

	if activity.At.IsZero() {
		activity.At = u.Now()
	}
	next := ApplyActivity(dbUserToStats(dbUser), activity)

	updated, err := qtx.UpdateUserStats(ctx, database.UpdateUserStatsParams{
		ID:             activity.UserID,
		TotalXp:        next.TotalXP,
		CurrentStreak:  next.CurrentStreak,
		LongestStreak:  next.LongestStreak,
		LastActiveDate: next.LastActiveDate,
	})
	if err != nil {
		return UserStats{}, quest_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot update stats of user %v", activity.UserID),
		)
	}

	u.logger.WithField("user_id", activity.UserID).Debugf(
		"xp %d -> %d, streak %d -> %d",
		dbUser.TotalXp,
		updated.TotalXp,
		dbUser.CurrentStreak,
		updated.CurrentStreak,
	)
	return dbUserToStats(updated), nil
}

// ApplyActivity derives the next stats. Days are compared in UTC: activity on
// the day after the last active day extends the streak, activity on the same
// day keeps it and anything else restarts it at 1.
func ApplyActivity(stats UserStats, activity Activity) UserStats {
	today := truncateToDay(activity.At)

	switch {
	case stats.LastActiveDate == nil:
		stats.CurrentStreak = 1
	case truncateToDay(*stats.LastActiveDate).Equal(today):
		if stats.CurrentStreak < 1 {
			stats.CurrentStreak = 1
		}
	case truncateToDay(*stats.LastActiveDate).AddDate(0, 0, 1).Equal(today):
		stats.CurrentStreak++
	default:
		stats.CurrentStreak = 1
	}

	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	if activity.XPEarned > 0 {
		stats.TotalXP += activity.XPEarned
	}
	stats.LastActiveDate = &today

	return stats
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dbUserToStats(dbUser database.User) UserStats {
	return UserStats{
		UserID:         dbUser.ID,
		UserName:       dbUser.UserName,
		TotalXP:        dbUser.TotalXp,
		CurrentStreak:  dbUser.CurrentStreak,
		LongestStreak:  dbUser.LongestStreak,
		LastActiveDate: dbUser.LastActiveDate,
	}
}
