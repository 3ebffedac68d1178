package evaluation_service

import (
	"fmt"
	"regexp"
	"sync"
)

var (
	rulesMu sync.RWMutex
	rules   = map[RuleID]ContentRule{}
)

func init() {
	RegisterRule(businessCardRule{})
}

// RegisterRule adds a content rule to the rule table. It panics if a rule
// with the same id is already registered.
func RegisterRule(rule ContentRule) {
	rulesMu.Lock()
	defer rulesMu.Unlock()

	if rule.ID() == RuleNone || rule.ID() == "" {
		panic(fmt.Sprintf("content rule cannot use reserved id %q", rule.ID()))
	}
	if _, ok := rules[rule.ID()]; ok {
		panic(fmt.Sprintf("content rule %q registered twice", rule.ID()))
	}
	rules[rule.ID()] = rule
}

// LookupRule returns the rule registered for id
func LookupRule(id RuleID) (ContentRule, bool) {
	rulesMu.RLock()
	defer rulesMu.RUnlock()
	rule, ok := rules[id]
	return rule, ok
}

// RuleForCode picks the rule whose function the code defines. Used when the
// problem is not known.
func RuleForCode(code string) (ContentRule, bool) {
	rulesMu.RLock()
	defer rulesMu.RUnlock()
	for _, rule := range rules {
		re := regexp.MustCompile(`\bdef\s+` + regexp.QuoteMeta(rule.FunctionName()) + `\s*\(`)
		if re.MatchString(code) {
			return rule, true
		}
	}
	return nil, false
}

// CheckContent runs the content rule for id. Problems without a registered
// rule pass trivially.
func CheckContent(code string, id RuleID) ContentResult {
	rule, ok := LookupRule(id)
	if !ok {
		return ContentResult{Valid: true, Errors: []string{}}
	}
	return rule.Check(code)
}
