package evaluation_service

import (
	"regexp"
	"strings"
)

type syntaxMarker struct {
	matches func(code string) bool
	message string
}

func keyword(word string) func(string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\s`)
	return re.MatchString
}

func literal(markers ...string) func(string) bool {
	return func(code string) bool {
		for _, m := range markers {
			if strings.Contains(code, m) {
				return true
			}
		}
		return false
	}
}

// order decides which violation becomes the primary error
var syntaxMarkers = []syntaxMarker{
	{
		matches: keyword("let"),
		message: "Python doesn't use 'let'. Create variables by assigning to them directly, e.g. x = 5",
	},
	{
		matches: keyword("const"),
		message: "Python doesn't have 'const'. Assign the value directly and use an UPPER_CASE name for constants, e.g. MAX_SIZE = 10",
	},
	{
		matches: keyword("var"),
		message: "Python doesn't use 'var'. Create variables by assigning to them directly, e.g. count = 0",
	},
	{
		matches: keyword("function"),
		message: "Use 'def' to define functions in Python, e.g. def greet():",
	},
	{
		matches: literal("console.log"),
		message: "Use print() to display output in Python instead of console.log()",
	},
	{
		matches: literal("===", "!=="),
		message: "Python compares values with '==' and '!=', not '===' or '!=='",
	},
}

// CheckSyntax returns one remediation message for every category of foreign
// syntax found in code, in a fixed order.
func CheckSyntax(code string) []string {
	violations := make([]string, 0)
	for _, marker := range syntaxMarkers {
		if marker.matches(code) {
			violations = append(violations, marker.message)
		}
	}
	return violations
}
