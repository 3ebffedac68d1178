package submission_service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/quest/internal/service/evaluation_service"
	"github.com/tcp_snm/quest/internal/service/problem_service"
	"github.com/tcp_snm/quest/internal/service/progress_service"
)

type ProblemGetter interface {
	GetProblemByID(ctx context.Context, id int32) (problem_service.Problem, error)
}

type AttemptRecorder interface {
	RecordAttempt(
		ctx context.Context,
		attempt progress_service.Attempt,
	) (progress_service.AttemptOutcome, error)
}

type EventPublisher interface {
	PublishSubmission(ctx context.Context, event SubmissionEvent) error
}

type SubmissionService struct {
	Problems  ProblemGetter
	Progress  AttemptRecorder
	Evaluator *evaluation_service.EvaluationService
	// defaults to a publisher that drops every event
	Events    EventPublisher

	logger *logrus.Entry
}

type SubmitRequest struct {
	ProblemID        int32     `json:"problem_id" validate:"required,gt=0"`
	Code             string    `json:"code" validate:"required"`
	UserID           uuid.UUID `json:"user_id" validate:"required"`
	// measured by the client, the simulated run time is used when absent
	TimeSpentSeconds *int32    `json:"time_spent_seconds" validate:"omitempty,gte=0"`
}

type ExecuteRequest struct {
	Code      string                        `json:"code" validate:"required"`
	TestCases []evaluation_service.TestCase `json:"test_cases" validate:"required"`
}

type SubmitResponse struct {
	evaluation_service.SubmissionResult
	Progress progress_service.ProgressUpdate `json:"progress"`
	XPEarned int32                           `json:"xp_earned"`
}

// SubmissionEvent is published after every graded submission
type SubmissionEvent struct {
	EventID         uuid.UUID `json:"event_id"`
	UserID          uuid.UUID `json:"user_id"`
	ProblemID       int32     `json:"problem_id"`
	Success         bool      `json:"success"`
	Attempts        int32     `json:"attempts"`
	IsCompleted     bool      `json:"is_completed"`
	XPEarned        int32     `json:"xp_earned"`
	ExecutionTimeMs int       `json:"execution_time_ms"`
	SubmittedAt     time.Time `json:"submitted_at"`
}
