package evaluation_service

import "strings"

const (
	functionDefMarker = "def "
	returnMarker      = "return"
)

// CheckStructure only looks for the markers anywhere in the text. It does not
// check that the return is inside the function; graded fixtures rely on that.
func CheckStructure(code string) Structure {
	return Structure{
		HasFunctionDef: strings.Contains(code, functionDefMarker),
		HasReturn:      strings.Contains(code, returnMarker),
	}
}
