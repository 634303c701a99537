package expression

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-campform/pkg/functions"
)

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithFunctions sets the registry used to resolve function calls.
func WithFunctions(reg *functions.Registry) Option {
	return func(e *Evaluator) {
		if reg != nil {
			e.functions = reg
		}
	}
}

// Evaluator parses and evaluates expressions. It holds no per-call state and
// is safe for concurrent use once constructed.
type Evaluator struct {
	functions *functions.Registry
}

var _ Rule = (*Evaluator)(nil)

// New returns an evaluator backed by the default function registry unless
// WithFunctions overrides it.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.functions == nil {
		e.functions = functions.NewDefaultRegistry()
	}
	return e
}

// Eval evaluates rule and reports its truthiness. An empty rule is true.
func (e *Evaluator) Eval(rule string, ctx Context) (bool, error) {
	node, err := e.parse(rule)
	if err != nil {
		return false, err
	}
	if node == nil {
		return true, nil
	}
	value, err := node.eval(e, ctx)
	if err != nil {
		return false, err
	}
	return truthy(value), nil
}

// Value evaluates expr and returns its value. An empty expression is nil.
func (e *Evaluator) Value(expr string, ctx Context) (any, error) {
	node, err := e.parse(expr)
	if err != nil || node == nil {
		return nil, err
	}
	return node.eval(e, ctx)
}

// Compile parses expr and checks that every called function is registered,
// without evaluating anything.
func (e *Evaluator) Compile(expr string) error {
	node, err := e.parse(expr)
	if err != nil || node == nil {
		return err
	}
	return e.checkCalls(node)
}

func (e *Evaluator) checkCalls(node exprNode) error {
	switch n := node.(type) {
	case exprOr:
		return errors.Join(e.checkCalls(n.left), e.checkCalls(n.right))
	case exprAnd:
		return errors.Join(e.checkCalls(n.left), e.checkCalls(n.right))
	case exprNot:
		return e.checkCalls(n.inner)
	case exprCompare:
		return errors.Join(e.checkCalls(n.left), e.checkCalls(n.right))
	case exprCall:
		var errs []error
		if _, ok := e.functions.Lookup(n.name); !ok {
			errs = append(errs, fmt.Errorf("expression: %w %q", functions.ErrUnknownFunction, n.name))
		}
		for _, arg := range n.args {
			errs = append(errs, e.checkCalls(arg))
		}
		return errors.Join(errs...)
	}
	return nil
}

func (e *Evaluator) parse(input string) (exprNode, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, nil
	}
	tokens, err := tokenize(trimmed)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	return parseExpression(tokens)
}

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenNull
	tokenEq
	tokenNeq
	tokenLt
	tokenLte
	tokenGt
	tokenGte
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
	tokenComma
)

type token struct {
	kind tokenKind
	raw  string
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '(', ')', '!', '=', '&', '|', ',', '<', '>', '{', '}':
		return true
	}
	return false
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

	next := func() byte {
		if i >= len(input) {
			return 0
		}
		return input[i]
	}

	consume := func() byte {
		if i >= len(input) {
			return 0
		}
		ch := input[i]
		i++
		return ch
	}

	for i < len(input) {
		ch := next()
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			i++
			continue
		}

		switch ch {
		case '(':
			consume()
			tokens = append(tokens, token{kind: tokenLParen, raw: "("})
			continue
		case ')':
			consume()
			tokens = append(tokens, token{kind: tokenRParen, raw: ")"})
			continue
		case ',':
			consume()
			tokens = append(tokens, token{kind: tokenComma, raw: ","})
			continue
		case '<', '>':
			consume()
			orEqual := next() == '='
			if orEqual {
				consume()
			}
			tokens = append(tokens, comparisonToken(ch, orEqual))
			continue
		case '{':
			consume()
			end := strings.IndexByte(input[i:], '}')
			if end < 0 {
				return nil, errors.New("expression: unterminated '{' reference")
			}
			name := strings.TrimSpace(input[i : i+end])
			if name == "" {
				return nil, errors.New("expression: empty '{}' reference")
			}
			i += end + 1
			tokens = append(tokens, token{kind: tokenIdentifier, raw: name})
			continue
		case '}':
			return nil, errors.New("expression: unexpected '}'")
		case '!':
			consume()
			if next() == '=' {
				consume()
				tokens = append(tokens, token{kind: tokenNeq, raw: "!="})
				continue
			}
			tokens = append(tokens, token{kind: tokenNot, raw: "!"})
			continue
		case '=':
			consume()
			if next() != '=' {
				return nil, fmt.Errorf("expression: unexpected '='; use '=='")
			}
			consume()
			tokens = append(tokens, token{kind: tokenEq, raw: "=="})
			continue
		case '&':
			consume()
			if next() != '&' {
				return nil, fmt.Errorf("expression: unexpected '&'; use '&&'")
			}
			consume()
			tokens = append(tokens, token{kind: tokenAnd, raw: "&&"})
			continue
		case '|':
			consume()
			if next() != '|' {
				return nil, fmt.Errorf("expression: unexpected '|'; use '||'")
			}
			consume()
			tokens = append(tokens, token{kind: tokenOr, raw: "||"})
			continue
		case '"', '\'':
			quote := consume()
			start := i
			escaped := false
			for i < len(input) {
				c := consume()
				if escaped {
					escaped = false
					continue
				}
				if c == '\\' {
					escaped = true
					continue
				}
				if c == quote {
					value, err := unquote(quote, input[start:i-1])
					if err != nil {
						return nil, fmt.Errorf("expression: invalid string literal: %w", err)
					}
					tokens = append(tokens, token{kind: tokenString, raw: value})
					goto nextToken
				}
			}
			return nil, errors.New("expression: unterminated string literal")
		default:
			start := i
			for i < len(input) && !isDelimiter(input[i]) {
				i++
			}
			raw := input[start:i]
			switch strings.ToLower(raw) {
			case "true", "false":
				tokens = append(tokens, token{kind: tokenBool, raw: strings.ToLower(raw)})
			case "null", "nil":
				tokens = append(tokens, token{kind: tokenNull, raw: "null"})
			default:
				if looksLikeNumber(raw) {
					tokens = append(tokens, token{kind: tokenNumber, raw: raw})
				} else {
					tokens = append(tokens, token{kind: tokenIdentifier, raw: raw})
				}
			}
		}

	nextToken:
		continue
	}

	return tokens, nil
}

func comparisonToken(ch byte, orEqual bool) token {
	switch {
	case ch == '<' && orEqual:
		return token{kind: tokenLte, raw: "<="}
	case ch == '<':
		return token{kind: tokenLt, raw: "<"}
	case orEqual:
		return token{kind: tokenGte, raw: ">="}
	default:
		return token{kind: tokenGt, raw: ">"}
	}
}

// unquote handles both quote styles; strconv.Unquote only accepts single
// quotes around one rune.
func unquote(quote byte, body string) (string, error) {
	if quote == '\'' {
		body = strings.ReplaceAll(body, `\'`, `'`)
		body = strings.ReplaceAll(body, `"`, `\"`)
	}
	return strconv.Unquote(`"` + body + `"`)
}

func looksLikeNumber(raw string) bool {
	if raw == "" {
		return false
	}
	ch := raw[0]
	if !((ch >= '0' && ch <= '9') || ch == '-' || ch == '+' || ch == '.') {
		return false
	}
	_, err := strconv.ParseFloat(raw, 64)
	return err == nil
}

type exprNode interface {
	eval(e *Evaluator, ctx Context) (any, error)
}

type exprOr struct {
	left  exprNode
	right exprNode
}

func (n exprOr) eval(e *Evaluator, ctx Context) (any, error) {
	left, err := n.left.eval(e, ctx)
	if err != nil {
		return false, err
	}
	if truthy(left) {
		return true, nil
	}
	right, err := n.right.eval(e, ctx)
	if err != nil {
		return false, err
	}
	return truthy(right), nil
}

type exprAnd struct {
	left  exprNode
	right exprNode
}

func (n exprAnd) eval(e *Evaluator, ctx Context) (any, error) {
	left, err := n.left.eval(e, ctx)
	if err != nil {
		return false, err
	}
	if !truthy(left) {
		return false, nil
	}
	right, err := n.right.eval(e, ctx)
	if err != nil {
		return false, err
	}
	return truthy(right), nil
}

type exprNot struct {
	inner exprNode
}

func (n exprNot) eval(e *Evaluator, ctx Context) (any, error) {
	value, err := n.inner.eval(e, ctx)
	if err != nil {
		return false, err
	}
	return !truthy(value), nil
}

type exprLiteral struct {
	value any
	null  bool
}

func (n exprLiteral) eval(*Evaluator, Context) (any, error) {
	return n.value, nil
}

type exprReference struct {
	path string
}

func (n exprReference) eval(_ *Evaluator, ctx Context) (any, error) {
	value, _ := lookup(ctx, n.path)
	return value, nil
}

type exprCall struct {
	name string
	args []exprNode
}

func (n exprCall) eval(e *Evaluator, ctx Context) (any, error) {
	fn, ok := e.functions.Lookup(n.name)
	if !ok {
		return nil, fmt.Errorf("expression: %w %q", functions.ErrUnknownFunction, n.name)
	}
	params := make([]any, 0, len(n.args))
	for _, arg := range n.args {
		value, err := arg.eval(e, ctx)
		if err != nil {
			return nil, err
		}
		params = append(params, value)
	}
	result, err := fn(params)
	if err != nil {
		return nil, fmt.Errorf("expression: %s: %w", n.name, err)
	}
	return result, nil
}

type exprCompare struct {
	left  exprNode
	op    tokenKind
	right exprNode
}

func (n exprCompare) eval(e *Evaluator, ctx Context) (any, error) {
	left, err := n.left.eval(e, ctx)
	if err != nil {
		return false, err
	}
	right, err := n.right.eval(e, ctx)
	if err != nil {
		return false, err
	}

	switch n.op {
	case tokenEq, tokenNeq:
		var same bool
		if isNullLiteral(n.right) || isNullLiteral(n.left) {
			same = left == nil && right == nil
		} else {
			same = equal(left, right)
		}
		if n.op == tokenEq {
			return same, nil
		}
		return !same, nil
	default:
		cmp, ok := order(left, right)
		if !ok {
			return false, nil
		}
		switch n.op {
		case tokenLt:
			return cmp < 0, nil
		case tokenLte:
			return cmp <= 0, nil
		case tokenGt:
			return cmp > 0, nil
		case tokenGte:
			return cmp >= 0, nil
		}
	}
	return false, fmt.Errorf("expression: unsupported operator")
}

func isNullLiteral(node exprNode) bool {
	lit, ok := node.(exprLiteral)
	return ok && lit.null
}

type tokenStream struct {
	tokens []token
	pos    int
}

func parseExpression(tokens []token) (exprNode, error) {
	stream := &tokenStream{tokens: tokens}
	node, err := parseOr(stream)
	if err != nil {
		return nil, err
	}
	if stream.pos < len(stream.tokens) {
		return nil, fmt.Errorf("expression: unexpected token %q", stream.tokens[stream.pos].raw)
	}
	return node, nil
}

func parseOr(stream *tokenStream) (exprNode, error) {
	left, err := parseAnd(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenOr) {
		right, err := parseAnd(stream)
		if err != nil {
			return nil, err
		}
		left = exprOr{left: left, right: right}
	}
	return left, nil
}

func parseAnd(stream *tokenStream) (exprNode, error) {
	left, err := parseUnary(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenAnd) {
		right, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		left = exprAnd{left: left, right: right}
	}
	return left, nil
}

func parseUnary(stream *tokenStream) (exprNode, error) {
	if stream.match(tokenNot) {
		inner, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		return exprNot{inner: inner}, nil
	}
	return parseComparison(stream)
}

func parseComparison(stream *tokenStream) (exprNode, error) {
	left, err := parsePrimary(stream)
	if err != nil {
		return nil, err
	}
	for _, op := range []tokenKind{tokenEq, tokenNeq, tokenLt, tokenLte, tokenGt, tokenGte} {
		if stream.match(op) {
			right, err := parsePrimary(stream)
			if err != nil {
				return nil, err
			}
			return exprCompare{left: left, op: op, right: right}, nil
		}
	}
	return left, nil
}

func parsePrimary(stream *tokenStream) (exprNode, error) {
	if stream.match(tokenLParen) {
		inner, err := parseOr(stream)
		if err != nil {
			return nil, err
		}
		if !stream.match(tokenRParen) {
			return nil, errors.New("expression: missing closing ')'")
		}
		return inner, nil
	}

	if stream.pos >= len(stream.tokens) {
		return nil, errors.New("expression: empty expression")
	}
	tok := stream.tokens[stream.pos]
	stream.pos++

	switch tok.kind {
	case tokenString:
		return exprLiteral{value: tok.raw}, nil
	case tokenNumber:
		value, err := strconv.ParseFloat(tok.raw, 64)
		if err != nil {
			return nil, fmt.Errorf("expression: invalid number literal %q", tok.raw)
		}
		return exprLiteral{value: value}, nil
	case tokenBool:
		return exprLiteral{value: tok.raw == "true"}, nil
	case tokenNull:
		return exprLiteral{null: true}, nil
	case tokenIdentifier:
		if stream.match(tokenLParen) {
			args, err := parseArguments(stream)
			if err != nil {
				return nil, err
			}
			return exprCall{name: tok.raw, args: args}, nil
		}
		return exprReference{path: tok.raw}, nil
	default:
		return nil, fmt.Errorf("expression: expected value, got %q", tok.raw)
	}
}

func parseArguments(stream *tokenStream) ([]exprNode, error) {
	var args []exprNode
	if stream.match(tokenRParen) {
		return args, nil
	}
	for {
		arg, err := parseOr(stream)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if stream.match(tokenComma) {
			continue
		}
		if stream.match(tokenRParen) {
			return args, nil
		}
		return nil, errors.New("expression: missing closing ')' in call")
	}
}

func (s *tokenStream) match(kind tokenKind) bool {
	if s.pos >= len(s.tokens) {
		return false
	}
	if s.tokens[s.pos].kind != kind {
		return false
	}
	s.pos++
	return true
}
