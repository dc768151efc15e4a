package engine

import (
	"strings"
	"unicode"

	"github.com/wippyai/durable-transform/internal/codegen"
	"github.com/wippyai/durable-transform/js"
)

// rewriteClient replaces every import from a workflow-classified module with
// descriptor bindings, one per imported name, in the import's position.
// Client bundles must not link workflow code; the descriptor carries just
// enough for the invoking SDK to address the deployed function.
func rewriteClient(m *js.Module, matcher ModuleMatcher, envPrefix string) ([]js.Stmt, bool) {
	out := make([]js.Stmt, 0, len(m.Body))
	changed := false
	for _, item := range m.Body {
		imp, ok := item.(*js.ImportDecl)
		if !ok || matcher == nil || !matcher.MatchModule(imp.Source) {
			out = append(out, item)
			continue
		}
		changed = true
		// A bare side-effect import of a workflow module yields nothing:
		// there is no binding to stand in for.
		for _, spec := range imp.Specs {
			name := spec.Imported
			if spec.Kind != js.ImportNamed || name == "" {
				name = spec.Local
			}
			env := envPrefix + upperSnake(spec.Local)
			out = append(out, codegen.Descriptor(spec.Local, name, env))
		}
	}
	return out, changed
}

// upperSnake transliterates an identifier to UPPER_SNAKE_CASE for the
// environment-variable lookup: signupWorkflow -> SIGNUP_WORKFLOW,
// HTTPHandler -> HTTP_HANDLER.
func upperSnake(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if r == '-' || r == '.' || r == '$' {
			b.WriteByte('_')
			continue
		}
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
