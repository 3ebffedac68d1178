package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/tcp_snm/quest/internal/service/evaluation_service"
	"github.com/tcp_snm/quest/internal/service/problem_service"
	"github.com/tcp_snm/quest/internal/service/progress_service"
	"github.com/tcp_snm/quest/internal/service/submission_service"
	"github.com/tcp_snm/quest/internal/service/user_service"
)

type SubmissionService interface {
	Submit(
		ctx context.Context,
		request submission_service.SubmitRequest,
	) (submission_service.SubmitResponse, error)
	Execute(
		ctx context.Context,
		request submission_service.ExecuteRequest,
	) (evaluation_service.SubmissionResult, error)
}

type ProblemService interface {
	GetLearnerProblem(ctx context.Context, id int32) (problem_service.Problem, error)
	GetHints(ctx context.Context, id int32, count int) (problem_service.HintsResponse, error)
	ListLessonProblems(ctx context.Context, lessonID int32) ([]problem_service.Problem, error)
	GetCurriculum(ctx context.Context) ([]problem_service.Section, error)
}

type ProgressService interface {
	ListProgress(ctx context.Context, userID uuid.UUID) ([]progress_service.Progress, error)
}

type UserService interface {
	GetUserStats(ctx context.Context, userID uuid.UUID) (user_service.UserStats, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Api struct {
	SubmissionServiceConfig SubmissionService
	ProblemServiceConfig    ProblemService
	ProgressServiceConfig   ProgressService
	UserServiceConfig       UserService
	// optional, readiness also pings the db when set
	DB                      Pinger
}
