package evaluation_service

import (
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	minExecutionTimeMs = 50
	maxExecutionTimeMs = 150 // exclusive
)

// RuleID is the stable tag stored on a problem that selects its content rule
type RuleID string

const (
	RuleNone         RuleID = "none"
	RuleBusinessCard RuleID = "business_card"
)

type EvaluationService struct {
	// ExecTimer reports the simulated execution time in ms.
	// nil uses a uniform value in [50, 150).
	ExecTimer func() (int, error)

	logger     *logrus.Entry
	loggerOnce sync.Once
}

type TestCase struct {
	Input    any `json:"input"`
	Expected any `json:"expected"`
}

type Structure struct {
	HasFunctionDef bool `json:"has_function_def"`
	HasReturn      bool `json:"has_return"`
}

type ContentResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ContentRule is a problem specific check on the submitted source
type ContentRule interface {
	ID() RuleID
	// FunctionName is the function learners are asked to define. It is
	// used to pick a rule when no problem is known (dry runs).
	FunctionName() string
	Check(code string) ContentResult
	// RenderOutput renders the value the learner's function returns as a
	// python literal. ok is false when the value cannot be recovered.
	RenderOutput(code string) (rendered string, ok bool)
}

type PerCaseResult struct {
	Index    int     `json:"index"`
	Passed   bool    `json:"passed"`
	Input    any     `json:"input"`
	Expected any     `json:"expected"`
	Actual   any     `json:"actual"`
	Error    *string `json:"error"`
}

type SubmissionResult struct {
	Success         bool            `json:"success"`
	ExecutionTimeMs int             `json:"execution_time_ms"`
	TestResults     []PerCaseResult `json:"test_results"`
	Transcript      string          `json:"transcript"`
	Error           *string         `json:"error"`
}

type SynthesisInput struct {
	Code             string
	Structure        Structure
	SyntaxViolations []string
	Content          ContentResult
	// nil when the problem has no content rule
	Rule             ContentRule
	TestCases        []TestCase
	ExecutionTimeMs  int
}
