package evaluation_service

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	defaultFunctionName = "solution"

	glyphPass = "✅"
	glyphFail = "❌"

	errMissingFunctionDef = "Missing function definition. Define your solution with 'def', e.g. def solve():"
	errMissingReturn      = "Missing return statement. Your function must return its result"
	errUnknown            = "Unknown error"
)

var reFunctionName = regexp.MustCompile(`\bdef\s+([A-Za-z_]\w*)\s*\(`)

// Synthesize turns the outcome of every check into the learner facing result.
// The verdict is all or nothing; every test case shares it.
func Synthesize(in SynthesisInput) SubmissionResult {
	success := in.Structure.HasFunctionDef &&
		in.Structure.HasReturn &&
		len(in.SyntaxViolations) == 0 &&
		in.Content.Valid

	var primaryErr *string
	if !success {
		msg := primaryError(in)
		primaryErr = &msg
	}

	testResults := make([]PerCaseResult, 0, len(in.TestCases))
	for i, tc := range in.TestCases {
		res := PerCaseResult{
			Index:    i + 1,
			Passed:   success,
			Input:    tc.Input,
			Expected: tc.Expected,
		}
		if success {
			res.Actual = tc.Expected
		} else {
			res.Error = primaryErr
		}
		testResults = append(testResults, res)
	}

	var transcript string
	if success {
		transcript = successTranscript(in, testResults)
	} else {
		transcript = failureTranscript(in, *primaryErr, testResults)
	}

	return SubmissionResult{
		Success:         success,
		ExecutionTimeMs: in.ExecutionTimeMs,
		TestResults:     testResults,
		Transcript:      transcript,
		Error:           primaryErr,
	}
}

func primaryError(in SynthesisInput) string {
	switch {
	case len(in.SyntaxViolations) > 0:
		return in.SyntaxViolations[0]
	case !in.Structure.HasFunctionDef:
		return errMissingFunctionDef
	case !in.Structure.HasReturn:
		return errMissingReturn
	case len(in.Content.Errors) > 0:
		return in.Content.Errors[0]
	default:
		return errUnknown
	}
}

// FunctionName returns the name of the first function defined in code
func FunctionName(code string) string {
	if m := reFunctionName.FindStringSubmatch(code); m != nil {
		return m[1]
	}
	return defaultFunctionName
}

func renderReturnValue(in SynthesisInput) string {
	if in.Rule != nil {
		if rendered, ok := in.Rule.RenderOutput(in.Code); ok {
			return rendered
		}
	}
	if len(in.TestCases) == 0 {
		return PythonLiteral(nil)
	}
	return PythonLiteral(in.TestCases[0].Expected)
}

func successTranscript(in SynthesisInput, results []PerCaseResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, ">>> Running %s()\n", FunctionName(in.Code))
	fmt.Fprintf(&b, "%s\n", renderReturnValue(in))
	writeCaseBreakdown(&b, results)
	fmt.Fprintf(&b, "\n%s All checks passed! Your solution is correct.\n", glyphPass)
	fmt.Fprintf(&b, "Execution time: %dms", in.ExecutionTimeMs)
	return b.String()
}

func failureTranscript(in SynthesisInput, primaryErr string, results []PerCaseResult) string {
	var b strings.Builder
	b.WriteString(">>> Running your code\n")
	fmt.Fprintf(&b, "%s Your solution did not pass the checks.\n", glyphFail)
	b.WriteString("\nChecklist:\n")
	writeCheck(&b, in.Structure.HasFunctionDef, "Function definition (def)")
	writeCheck(&b, in.Structure.HasReturn, "Return statement")
	writeCheck(&b, len(in.SyntaxViolations) == 0, "Python syntax")
	writeCheck(&b, in.Content.Valid, "Problem requirements")
	fmt.Fprintf(&b, "\nError: %s\n", primaryErr)
	writeCaseBreakdown(&b, results)
	fmt.Fprintf(&b, "\nExecution time: %dms", in.ExecutionTimeMs)
	return b.String()
}

func writeCheck(b *strings.Builder, ok bool, label string) {
	glyph := glyphFail
	if ok {
		glyph = glyphPass
	}
	fmt.Fprintf(b, "%s %s\n", glyph, label)
}

func writeCaseBreakdown(b *strings.Builder, results []PerCaseResult) {
	if len(results) == 0 {
		return
	}
	b.WriteString("\n")
	for _, res := range results {
		if res.Passed {
			fmt.Fprintf(b, "Test %d: %s Passed (expected %s)\n", res.Index, glyphPass, PythonLiteral(res.Expected))
		} else {
			fmt.Fprintf(b, "Test %d: %s Failed\n", res.Index, glyphFail)
		}
	}
}
