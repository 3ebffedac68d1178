package progress_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcp_snm/quest/internal/database"
	"github.com/tcp_snm/quest/internal/quest_errors"
	"github.com/tcp_snm/quest/internal/service/user_service"
)

type fakeTx struct {
	pgx.Tx

	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) Commit(ctx context.Context) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

// fakeQuerier keeps a single in-memory progress table
type fakeQuerier struct {
	database.Querier

	rows      map[int32]database.UserProgress
	ensureErr error
	listCalls int
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{rows: map[int32]database.UserProgress{}}
}

func (f *fakeQuerier) EnsureProgress(ctx context.Context, arg database.EnsureProgressParams) error {
	if f.ensureErr != nil {
		return f.ensureErr
	}
	if _, ok := f.rows[arg.ProblemID]; !ok {
		f.rows[arg.ProblemID] = database.UserProgress{UserID: arg.UserID, ProblemID: arg.ProblemID}
	}
	return nil
}

func (f *fakeQuerier) GetProgressForUpdate(ctx context.Context, arg database.GetProgressForUpdateParams) (database.UserProgress, error) {
	row, ok := f.rows[arg.ProblemID]
	if !ok {
		return database.UserProgress{}, pgx.ErrNoRows
	}
	return row, nil
}

func (f *fakeQuerier) GetProgress(ctx context.Context, arg database.GetProgressParams) (database.UserProgress, error) {
	row, ok := f.rows[arg.ProblemID]
	if !ok {
		return database.UserProgress{}, pgx.ErrNoRows
	}
	return row, nil
}

func (f *fakeQuerier) UpdateProgress(ctx context.Context, arg database.UpdateProgressParams) (database.UserProgress, error) {
	row := database.UserProgress{
		UserID:          arg.UserID,
		ProblemID:       arg.ProblemID,
		IsCompleted:     arg.IsCompleted,
		Attempts:        arg.Attempts,
		BestTimeSeconds: arg.BestTimeSeconds,
		CompletedAt:     arg.CompletedAt,
	}
	f.rows[arg.ProblemID] = row
	return row, nil
}

func (f *fakeQuerier) ListProgressByUser(ctx context.Context, userID uuid.UUID) ([]database.UserProgress, error) {
	f.listCalls++
	res := make([]database.UserProgress, 0, len(f.rows))
	for _, row := range f.rows {
		res = append(res, row)
	}
	return res, nil
}

type fakeStats struct {
	activities []user_service.Activity
	err        error
}

func (f *fakeStats) RecordActivity(
	ctx context.Context,
	qtx database.Querier,
	activity user_service.Activity,
) (user_service.UserStats, error) {
	if f.err != nil {
		return user_service.UserStats{}, f.err
	}
	f.activities = append(f.activities, activity)
	return user_service.UserStats{UserID: activity.UserID, TotalXP: activity.XPEarned}, nil
}

type fakeCache struct {
	entries     map[uuid.UUID][]Progress
	invalidated []uuid.UUID
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[uuid.UUID][]Progress{}}
}

func (f *fakeCache) GetUserProgress(ctx context.Context, userID uuid.UUID) ([]Progress, bool, error) {
	progress, ok := f.entries[userID]
	return progress, ok, nil
}

func (f *fakeCache) SetUserProgress(ctx context.Context, userID uuid.UUID, progress []Progress) error {
	f.entries[userID] = progress
	return nil
}

func (f *fakeCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	delete(f.entries, userID)
	f.invalidated = append(f.invalidated, userID)
	return nil
}

type fixture struct {
	service *ProgressService
	qtx     *fakeQuerier
	tx      *fakeTx
	stats   *fakeStats
	cache   *fakeCache
}

func newFixture() *fixture {
	f := &fixture{
		qtx:   newFakeQuerier(),
		tx:    &fakeTx{},
		stats: &fakeStats{},
		cache: newFakeCache(),
	}
	f.service = &ProgressService{
		DB:    f.qtx,
		Stats: f.stats,
		Cache: f.cache,
		BeginTx: func(ctx context.Context) (pgx.Tx, database.Querier, error) {
			return f.tx, f.qtx, nil
		},
		Now: func() time.Time { return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC) },
	}
	f.service.Start()
	return f
}

func TestApplyAttempt(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-time.Hour)
	five := int32(5)

	t.Run("failed first attempt", func(t *testing.T) {
		next := ApplyAttempt(Progress{}, Attempt{ProblemID: 1, Success: false}, now)
		assert.Equal(t, int32(1), next.Attempts)
		assert.False(t, next.IsCompleted)
		assert.Nil(t, next.BestTimeSeconds)
		assert.Nil(t, next.CompletedAt)
	})

	t.Run("success sets completion and time", func(t *testing.T) {
		next := ApplyAttempt(Progress{Attempts: 2}, Attempt{ProblemID: 1, Success: true, TimeSeconds: 9}, now)
		assert.Equal(t, int32(3), next.Attempts)
		assert.True(t, next.IsCompleted)
		require.NotNil(t, next.BestTimeSeconds)
		assert.Equal(t, int32(9), *next.BestTimeSeconds)
		require.NotNil(t, next.CompletedAt)
		assert.Equal(t, now, *next.CompletedAt)
	})

	t.Run("completion is sticky", func(t *testing.T) {
		previous := Progress{IsCompleted: true, Attempts: 3, BestTimeSeconds: &five, CompletedAt: &earlier}
		next := ApplyAttempt(previous, Attempt{ProblemID: 1, Success: false}, now)
		assert.True(t, next.IsCompleted)
		assert.Equal(t, int32(4), next.Attempts)
		assert.Equal(t, int32(5), *next.BestTimeSeconds)
		assert.Equal(t, earlier, *next.CompletedAt)
	})

	t.Run("latest successful time wins", func(t *testing.T) {
		previous := Progress{IsCompleted: true, Attempts: 1, BestTimeSeconds: &five, CompletedAt: &earlier}
		next := ApplyAttempt(previous, Attempt{ProblemID: 1, Success: true, TimeSeconds: 12}, now)
		assert.Equal(t, int32(12), *next.BestTimeSeconds)
		assert.Equal(t, earlier, *next.CompletedAt)
		// previous must not be mutated through the pointer
		assert.Equal(t, int32(5), five)
	})
}

func TestRecordAttempt(t *testing.T) {
	userID := uuid.New()

	t.Run("first completion earns xp", func(t *testing.T) {
		f := newFixture()
		outcome, err := f.service.RecordAttempt(context.Background(), Attempt{
			UserID:      userID,
			ProblemID:   7,
			Success:     true,
			TimeSeconds: 3,
			XPReward:    50,
		})
		require.NoError(t, err)

		assert.Equal(t, int32(7), outcome.Progress.ProblemID)
		assert.True(t, outcome.Progress.IsCompleted)
		assert.Equal(t, int32(1), outcome.Progress.Attempts)
		require.NotNil(t, outcome.Progress.BestTimeSeconds)
		assert.Equal(t, int32(3), *outcome.Progress.BestTimeSeconds)
		assert.Equal(t, int32(50), outcome.XPEarned)
		assert.True(t, f.tx.committed)
		assert.Equal(t, []uuid.UUID{userID}, f.cache.invalidated)
	})

	t.Run("repeat completion earns nothing", func(t *testing.T) {
		f := newFixture()
		attempt := Attempt{UserID: userID, ProblemID: 7, Success: true, TimeSeconds: 3, XPReward: 50}
		_, err := f.service.RecordAttempt(context.Background(), attempt)
		require.NoError(t, err)

		outcome, err := f.service.RecordAttempt(context.Background(), attempt)
		require.NoError(t, err)
		assert.Equal(t, int32(2), outcome.Progress.Attempts)
		assert.Equal(t, int32(0), outcome.XPEarned)
		require.Len(t, f.stats.activities, 2)
		assert.Equal(t, int32(0), f.stats.activities[1].XPEarned)
	})

	t.Run("failed attempt is still counted", func(t *testing.T) {
		f := newFixture()
		outcome, err := f.service.RecordAttempt(context.Background(), Attempt{
			UserID:    userID,
			ProblemID: 7,
			XPReward:  50,
		})
		require.NoError(t, err)
		assert.False(t, outcome.Progress.IsCompleted)
		assert.Equal(t, int32(1), outcome.Progress.Attempts)
		assert.Nil(t, outcome.Progress.BestTimeSeconds)
		assert.Equal(t, int32(0), outcome.XPEarned)
	})

	t.Run("stats failure rolls back", func(t *testing.T) {
		f := newFixture()
		f.stats.err = quest_errors.ErrNotFound
		_, err := f.service.RecordAttempt(context.Background(), Attempt{UserID: userID, ProblemID: 7})
		assert.ErrorIs(t, err, quest_errors.ErrNotFound)
		assert.False(t, f.tx.committed)
		assert.True(t, f.tx.rolledBack)
		assert.Empty(t, f.cache.invalidated)
	})

	t.Run("commit failure is internal", func(t *testing.T) {
		f := newFixture()
		f.tx.commitErr = errors.New("connection lost")
		_, err := f.service.RecordAttempt(context.Background(), Attempt{UserID: userID, ProblemID: 7})
		assert.ErrorIs(t, err, quest_errors.ErrInternal)
		assert.Empty(t, f.cache.invalidated)
	})

	t.Run("begin failure", func(t *testing.T) {
		f := newFixture()
		f.service.BeginTx = func(ctx context.Context) (pgx.Tx, database.Querier, error) {
			return nil, nil, quest_errors.ErrInternal
		}
		_, err := f.service.RecordAttempt(context.Background(), Attempt{UserID: userID, ProblemID: 7})
		assert.ErrorIs(t, err, quest_errors.ErrInternal)
	})
}

func TestGetProgress(t *testing.T) {
	f := newFixture()
	userID := uuid.New()

	progress, err := f.service.GetProgress(context.Background(), userID, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(0), progress.Attempts)
	assert.Equal(t, int32(3), progress.ProblemID)

	_, err = f.service.RecordAttempt(context.Background(), Attempt{UserID: userID, ProblemID: 3})
	require.NoError(t, err)

	progress, err = f.service.GetProgress(context.Background(), userID, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(1), progress.Attempts)
}

func TestListProgressUsesCache(t *testing.T) {
	f := newFixture()
	userID := uuid.New()

	_, err := f.service.RecordAttempt(context.Background(), Attempt{UserID: userID, ProblemID: 1})
	require.NoError(t, err)

	first, err := f.service.ListProgress(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := f.service.ListProgress(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.qtx.listCalls)

	// a new attempt drops the cached list
	_, err = f.service.RecordAttempt(context.Background(), Attempt{UserID: userID, ProblemID: 2})
	require.NoError(t, err)

	third, err := f.service.ListProgress(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, third, 2)
	assert.Equal(t, 2, f.qtx.listCalls)
}

func TestNoopCacheByDefault(t *testing.T) {
	p := &ProgressService{DB: newFakeQuerier(), Stats: &fakeStats{}}
	p.Start()

	_, hit, err := p.Cache.GetUserProgress(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NotNil(t, p.BeginTx)
}
