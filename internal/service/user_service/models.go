package user_service

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/quest/internal/database"
)

var (
	// used for conversion of db error codes to user understandable messages
	errMsgs = map[string]map[string]string{}
)

type UserService struct {
	DB database.Querier

	// returns the current time, time.Now if nil
	Now func() time.Time

	logger *logrus.Entry
}

// UserStats is the gamification state of a learner
type UserStats struct {
	UserID         uuid.UUID  `json:"user_id"`
	UserName       string     `json:"user_name"`
	TotalXP        int32      `json:"total_xp"`
	CurrentStreak  int32      `json:"current_streak"`
	LongestStreak  int32      `json:"longest_streak"`
	LastActiveDate *time.Time `json:"last_active_date"`
}

// Activity is a single submission as far as stats are concerned
type Activity struct {
	UserID   uuid.UUID
	// xp to award, zero unless a problem got completed for the first time
	XPEarned int32
	At       time.Time
}
