package evaluation_service

import (
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/quest/internal/service"
)

func (e *EvaluationService) log() *logrus.Entry {
	e.loggerOnce.Do(func() {
		e.logger = logrus.WithField("from", "evaluation service")
	})
	return e.logger
}

func (e *EvaluationService) executionTime() (int, error) {
	if e.ExecTimer != nil {
		return e.ExecTimer()
	}
	return service.GenerateSecureRandomInt(minExecutionTimeMs, maxExecutionTimeMs-1)
}

// Evaluate grades code against the content rule stored on a problem
func (e *EvaluationService) Evaluate(
	code string,
	ruleID RuleID,
	testCases []TestCase,
) (SubmissionResult, error) {
	rule, ok := LookupRule(ruleID)
	if !ok && ruleID != RuleNone && ruleID != "" {
		e.log().Warnf("no content rule registered with id %q, skipping content checks", ruleID)
	}
	return e.run(code, rule, testCases)
}

// DryRun grades code without a problem. The content rule is picked by the
// function the code defines.
func (e *EvaluationService) DryRun(
	code string,
	testCases []TestCase,
) (SubmissionResult, error) {
	rule, _ := RuleForCode(code)
	return e.run(code, rule, testCases)
}

// every check runs even when an earlier one fails, the transcript needs all of them
func (e *EvaluationService) run(
	code string,
	rule ContentRule,
	testCases []TestCase,
) (SubmissionResult, error) {
	syntaxViolations := CheckSyntax(code)
	structure := CheckStructure(code)

	content := ContentResult{Valid: true, Errors: []string{}}
	if rule != nil {
		content = rule.Check(code)
	}

	execTime, err := e.executionTime()
	if err != nil {
		return SubmissionResult{}, err
	}

	result := Synthesize(SynthesisInput{
		Code:             code,
		Structure:        structure,
		SyntaxViolations: syntaxViolations,
		Content:          content,
		Rule:             rule,
		TestCases:        testCases,
		ExecutionTimeMs:  execTime,
	})

	e.log().WithFields(logrus.Fields{
		"success":    result.Success,
		"violations": len(syntaxViolations),
		"test_cases": len(testCases),
	}).Debug("evaluated code")

	return result, nil
}
