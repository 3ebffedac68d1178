package problem_service

import (
	"bytes"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/quest/internal/database"
	"github.com/tcp_snm/quest/internal/quest_errors"
	"github.com/tcp_snm/quest/internal/service/evaluation_service"
)

func dbProblemToServiceProblem(dbProblem database.Problem) (Problem, error) {
	testCases, err := decodeTestCases(dbProblem.TestCases)
	if err != nil {
		err = fmt.Errorf(
			"%w, %w, unable to unmarshal test cases of problem with id %d, %w",
			quest_errors.ErrInternal,
			quest_errors.ErrMalformedProblem,
			dbProblem.ID,
			err,
		)
		log.Error(err)
		return Problem{}, err
	}

	var research *ResearchMetadata
	if len(dbProblem.Research) > 0 {
		research = &ResearchMetadata{}
		if err := json.Unmarshal(dbProblem.Research, research); err != nil {
			// research metadata is informational only
			log.Warnf("ignoring malformed research metadata of problem %d, %v", dbProblem.ID, err)
			research = nil
		}
	}

	difficulty := Difficulty(dbProblem.Difficulty)
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		err = fmt.Errorf(
			"%w, %w, problem with id %d has unknown difficulty %q",
			quest_errors.ErrInternal,
			quest_errors.ErrMalformedProblem,
			dbProblem.ID,
			dbProblem.Difficulty,
		)
		log.Error(err)
		return Problem{}, err
	}

	rule := evaluation_service.RuleID(dbProblem.ContentRule)
	if rule == "" {
		rule = evaluation_service.RuleNone
	}

	hints := dbProblem.Hints
	if hints == nil {
		hints = []string{}
	}

	return Problem{
		ID:          dbProblem.ID,
		LessonID:    dbProblem.LessonID,
		Title:       dbProblem.Title,
		Description: dbProblem.Description,
		Difficulty:  difficulty,
		Position:    dbProblem.Position,
		StarterCode: dbProblem.StarterCode,
		Solution:    dbProblem.Solution,
		TestCases:   testCases,
		Hints:       hints,
		XPReward:    dbProblem.XpReward,
		ContentRule: rule,
		Research:    research,
		CreatedAt:   dbProblem.CreatedAt,
	}, nil
}

func dbProblemsToServiceProblems(dbProblems []database.Problem) ([]Problem, error) {
	problems := make([]Problem, 0, len(dbProblems))
	var convErr error = nil
	for _, dbProblem := range dbProblems {
		problem, e := dbProblemToServiceProblem(dbProblem)
		if e != nil {
			convErr = fmt.Errorf("%w, %w", quest_errors.ErrPartialResult, e)
			continue
		}
		problems = append(problems, problem)
	}
	return problems, convErr
}

// decodeTestCases keeps numbers as json.Number so they render exactly as authored
func decodeTestCases(raw []byte) ([]evaluation_service.TestCase, error) {
	testCases := make([]evaluation_service.TestCase, 0)
	if len(raw) == 0 {
		return testCases, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&testCases); err != nil {
		return nil, err
	}
	if testCases == nil {
		// json null
		testCases = make([]evaluation_service.TestCase, 0)
	}
	return testCases, nil
}
