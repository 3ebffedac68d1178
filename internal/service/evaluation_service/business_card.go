package evaluation_service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const businessCardFunction = "create_business_card"

var (
	reCardName       = quotedBinding("name")
	reCardCity       = quotedBinding("city")
	reCardProfession = quotedBinding("profession")
	reCardAge        = regexp.MustCompile(`\bage\s*=\s*(-?[^\s=,;)#][^\s,;)#]*)`)
)

func quotedBinding(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + name + `\s*=\s*(?:"([^"\n]*)"|'([^'\n]*)')`)
}

type businessCard struct {
	name       string
	age        string
	city       string
	profession string
}

// businessCardRule checks the business card exercise: four variables holding
// a name, an age, a city and a profession.
type businessCardRule struct{}

func (businessCardRule) ID() RuleID { return RuleBusinessCard }

func (businessCardRule) FunctionName() string { return businessCardFunction }

func (businessCardRule) Check(code string) ContentResult {
	card, missing := extractBusinessCard(code)
	if len(missing) > 0 {
		return ContentResult{
			Valid: false,
			Errors: []string{
				fmt.Sprintf("Could not find the required variables: %s", strings.Join(missing, ", ")),
			},
		}
	}

	errs := make([]string, 0)
	if strings.TrimSpace(card.name) == "" {
		errs = append(errs, "Name cannot be empty")
	}
	if age, err := strconv.Atoi(card.age); err != nil || age <= 0 {
		errs = append(errs, "Age must be a positive number")
	}
	if strings.TrimSpace(card.city) == "" {
		errs = append(errs, "City cannot be empty")
	}
	if strings.TrimSpace(card.profession) == "" {
		errs = append(errs, "Profession cannot be empty")
	}

	return ContentResult{Valid: len(errs) == 0, Errors: errs}
}

func (businessCardRule) RenderOutput(code string) (string, bool) {
	card, missing := extractBusinessCard(code)
	if len(missing) > 0 {
		return "", false
	}

	var age any = card.age
	if n, err := strconv.Atoi(card.age); err == nil {
		age = n
	}
	return PythonLiteral([]any{card.name, age, card.city, card.profession}), true
}

// extractBusinessCard returns the bound values and the names of the bindings
// that could not be found.
func extractBusinessCard(code string) (card businessCard, missing []string) {
	var ok bool
	if card.name, ok = quotedValue(reCardName, code); !ok {
		missing = append(missing, "name")
	}
	if m := reCardAge.FindStringSubmatch(code); m != nil {
		card.age = strings.TrimSpace(m[1])
	} else {
		missing = append(missing, "age")
	}
	if card.city, ok = quotedValue(reCardCity, code); !ok {
		missing = append(missing, "city")
	}
	if card.profession, ok = quotedValue(reCardProfession, code); !ok {
		missing = append(missing, "profession")
	}
	return
}

func quotedValue(re *regexp.Regexp, code string) (string, bool) {
	m := re.FindStringSubmatchIndex(code)
	if m == nil {
		return "", false
	}
	// either the double or the single quoted group matched
	if m[2] >= 0 {
		return code[m[2]:m[3]], true
	}
	return code[m[4]:m[5]], true
}
