package submission_service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/quest/internal/quest_errors"
	"github.com/tcp_snm/quest/internal/service"
	"github.com/tcp_snm/quest/internal/service/evaluation_service"
	"github.com/tcp_snm/quest/internal/service/progress_service"
)

// Submit grades code against a problem and records the attempt
func (s *SubmissionService) Submit(
	ctx context.Context,
	request SubmitRequest,
) (SubmitResponse, error) {
	// validate
	if err := service.ValidateInput(request); err != nil {
		return SubmitResponse{}, err
	}

	// a signed in user can only submit as themselves
	if err := service.AuthorizeUser(ctx, request.UserID); err != nil {
		return SubmitResponse{}, err
	}

	logger := s.logger.WithFields(log.Fields{
		"user_id":    request.UserID,
		"problem_id": request.ProblemID,
	})

	problem, err := s.Problems.GetProblemByID(ctx, request.ProblemID)
	if err != nil {
		return SubmitResponse{}, err
	}

	result, err := s.Evaluator.Evaluate(request.Code, problem.ContentRule, problem.TestCases)
	if err != nil {
		err = fmt.Errorf(
			"%w, cannot evaluate submission on problem %d, %w",
			quest_errors.ErrInternal,
			request.ProblemID,
			err,
		)
		logger.Error(err)
		return SubmitResponse{}, err
	}

	outcome, err := s.Progress.RecordAttempt(ctx, progress_service.Attempt{
		UserID:      request.UserID,
		ProblemID:   request.ProblemID,
		Success:     result.Success,
		TimeSeconds: timeSpent(request, result),
		XPReward:    problem.XPReward,
	})
	if err != nil {
		return SubmitResponse{}, err
	}

	logger.WithFields(log.Fields{
		"success":  result.Success,
		"attempts": outcome.Progress.Attempts,
		"xp":       outcome.XPEarned,
	}).Info("graded submission")

	s.publish(ctx, SubmissionEvent{
		EventID:         uuid.New(),
		UserID:          request.UserID,
		ProblemID:       request.ProblemID,
		Success:         result.Success,
		Attempts:        outcome.Progress.Attempts,
		IsCompleted:     outcome.Progress.IsCompleted,
		XPEarned:        outcome.XPEarned,
		ExecutionTimeMs: result.ExecutionTimeMs,
		SubmittedAt:     time.Now().UTC(),
	})

	return SubmitResponse{
		SubmissionResult: result,
		Progress:         outcome.Progress,
		XPEarned:         outcome.XPEarned,
	}, nil
}

// Execute is a dry run, nothing is persisted or published
func (s *SubmissionService) Execute(
	ctx context.Context,
	request ExecuteRequest,
) (evaluation_service.SubmissionResult, error) {
	if err := service.ValidateInput(request); err != nil {
		return evaluation_service.SubmissionResult{}, err
	}

	result, err := s.Evaluator.DryRun(request.Code, request.TestCases)
	if err != nil {
		err = fmt.Errorf("%w, cannot execute code, %w", quest_errors.ErrInternal, err)
		s.logger.Error(err)
		return evaluation_service.SubmissionResult{}, err
	}
	return result, nil
}

// events are best effort, a graded submission is never failed because of them
func (s *SubmissionService) publish(ctx context.Context, event SubmissionEvent) {
	if err := s.Events.PublishSubmission(ctx, event); err != nil {
		s.logger.WithField("event_id", event.EventID).Warnf(
			"cannot publish submission event, %v",
			err,
		)
	}
}

func timeSpent(request SubmitRequest, result evaluation_service.SubmissionResult) int32 {
	if request.TimeSpentSeconds != nil {
		return *request.TimeSpentSeconds
	}
	// round the simulated run up to whole seconds
	return int32((result.ExecutionTimeMs + 999) / 1000)
}
