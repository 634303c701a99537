package expression

// Context provides inputs to the evaluator. Values holds the current survey
// answers keyed by question name while Extras allows callers to inject
// arbitrary context such as the camp start date or user roles.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// Rule reports whether a rule string holds for the given context.
type Rule interface {
	Eval(rule string, ctx Context) (bool, error)
}

// RuleFunc adapts a function into a Rule.
type RuleFunc func(rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn RuleFunc) Eval(rule string, ctx Context) (bool, error) {
	return fn(rule, ctx)
}
