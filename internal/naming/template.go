package naming

import (
	"fmt"
	"regexp"
	"strings"
)

var varRegex = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// UnknownVariableError is returned by Render when tmpl references a name
// not present in scope. It is deliberately a plain struct, not a
// werrors.CodedError, so naming stays independent of the error taxonomy;
// callers that need an exit code wrap it in werrors.BranchTemplateError.
type UnknownVariableError struct {
	Template string
	Var      string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("template %q references unknown variable %q", e.Template, e.Var)
}

// Render performs variable substitution over {{ name }} tokens in tmpl.
// Unlike text/template, it has no control flow: only {{ name }} tokens are
// substituted, and any other text, including "{{" sequences that are not a
// single variable name, is copied through as literal text. Every variable
// reference must resolve in scope.
func Render(tmpl string, scope map[string]string) (string, error) {
	var missing string
	out := varRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := strings.TrimSpace(varRegex.FindStringSubmatch(match)[1])
		val, ok := scope[name]
		if !ok {
			missing = name
			return match
		}
		return val
	})
	if missing != "" {
		return "", &UnknownVariableError{Template: tmpl, Var: missing}
	}
	return out, nil
}
