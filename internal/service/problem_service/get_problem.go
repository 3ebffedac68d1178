package problem_service

import (
	"context"
	"fmt"

	"github.com/tcp_snm/quest/internal/quest_errors"
)

// GetProblemByID returns the full problem definition including its
// reference solution. It is meant for the evaluator, not for learners.
func (p *ProblemService) GetProblemByID(
	ctx context.Context,
	id int32,
) (Problem, error) {
	if problem, ok := p.cache.Get(id); ok {
		return problem, nil
	}

	// get the problem from db
	dbProblem, err := p.DB.GetProblemById(ctx, id)
	if err != nil {
		return Problem{}, quest_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("no problem exist with id %d", id),
		)
	}

	problem, err := dbProblemToServiceProblem(dbProblem)
	if err != nil {
		return Problem{}, err
	}

	p.cache.Add(id, problem)
	return problem, nil
}

// GetLearnerProblem is GetProblemByID without the reference solution
func (p *ProblemService) GetLearnerProblem(
	ctx context.Context,
	id int32,
) (Problem, error) {
	problem, err := p.GetProblemByID(ctx, id)
	if err != nil {
		return Problem{}, err
	}
	problem.Solution = ""
	return problem, nil
}

// GetHints returns the first count hints of a problem in authoring order.
// count <= 0 returns all of them.
func (p *ProblemService) GetHints(
	ctx context.Context,
	id int32,
	count int,
) (HintsResponse, error) {
	problem, err := p.GetProblemByID(ctx, id)
	if err != nil {
		return HintsResponse{}, err
	}

	hints := problem.Hints
	if count > 0 && count < len(hints) {
		hints = hints[:count]
	}

	return HintsResponse{
		ProblemID:  problem.ID,
		Hints:      hints,
		TotalHints: len(problem.Hints),
	}, nil
}

// ListLessonProblems returns the problems of a lesson ordered by position,
// without solutions.
func (p *ProblemService) ListLessonProblems(
	ctx context.Context,
	lessonID int32,
) ([]Problem, error) {
	// make sure the lesson exists so an empty lesson is not mistaken for a missing one
	if _, err := p.DB.GetLessonById(ctx, lessonID); err != nil {
		return nil, quest_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("no lesson exist with id %d", lessonID),
		)
	}

	dbProblems, err := p.DB.ListProblemsByLesson(ctx, lessonID)
	if err != nil {
		return nil, quest_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot fetch problems of lesson %d", lessonID),
		)
	}

	problems, convErr := dbProblemsToServiceProblems(dbProblems)
	for i := range problems {
		problems[i].Solution = ""
	}
	return problems, convErr
}
