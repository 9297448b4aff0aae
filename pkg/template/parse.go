package template

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/errors"
)

// The template grammar is deliberately small: literal text interleaved
// with {{ expression }} interpolations, where an expression is a
// primary value piped through zero or more filters.
//
//	expression := primary ( '|' IDENT call? )*
//	primary    := STRING | NUMBER | list | IDENT call?
//	list       := '[' ( primary ( ',' primary )* )? ']'
//	call       := '(' ( arg ( ',' arg )* )? ')'
//	arg        := IDENT '=' primary | primary

type nodeKind int

const (
	nodeText nodeKind = iota
	nodeExpr
)

type node struct {
	kind nodeKind
	text string
	expr *expression
}

type expression struct {
	primary *primary
	pipes   []*pipeStage
}

type pipeStage struct {
	name string
	args []*argument
}

type primaryKind int

const (
	primString primaryKind = iota
	primInt
	primList
	primIdent
	primCall
)

type primary struct {
	kind primaryKind
	str  string // literal value, or ident/call name
	num  int64
	list []*primary
	args []*argument // call arguments
}

type argument struct {
	name  string // non-empty for keyword arguments
	value *primary
}

// parseTemplate splits src into text and expression nodes. Expression
// delimiters inside string literals do not terminate the expression.
func parseTemplate(src string) ([]*node, error) {
	var nodes []*node
	for {
		open := strings.Index(src, "{{")
		if open < 0 {
			if src != "" {
				nodes = append(nodes, &node{kind: nodeText, text: src})
			}
			return nodes, nil
		}
		if open > 0 {
			nodes = append(nodes, &node{kind: nodeText, text: src[:open]})
		}

		inner, rest, err := scanExpression(src[open+2:])
		if err != nil {
			return nil, err
		}

		expr, err := parseExpression(inner)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &node{kind: nodeExpr, expr: expr})
		src = rest
	}
}

// scanExpression finds the matching }} for an already-opened
// expression, skipping over quoted strings.
func scanExpression(src string) (inner, rest string, err error) {
	var quote rune
	escaped := false
	for i, r := range src {
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
			}
			continue
		}
		switch r {
		case '\'', '"':
			quote = r
		case '}':
			if strings.HasPrefix(src[i:], "}}") {
				return src[:i], src[i+2:], nil
			}
		}
	}
	return "", "", errors.New(errors.ErrRender, "unclosed expression: missing }}")
}

// ---- expression lexer ----

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokPipe
	tokComma
	tokAssign
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
)

type token struct {
	kind tokenKind
	text string
	num  int64
}

type lexer struct {
	src  []rune
	pos  int
	peek *token
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src)}
}

func (l *lexer) next() (token, error) {
	if l.peek != nil {
		tok := *l.peek
		l.peek = nil
		return tok, nil
	}
	return l.scan()
}

func (l *lexer) peekToken() (token, error) {
	if l.peek == nil {
		tok, err := l.scan()
		if err != nil {
			return token{}, err
		}
		l.peek = &tok
	}
	return *l.peek, nil
}

func (l *lexer) scan() (token, error) {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF}, nil
	}

	r := l.src[l.pos]
	switch r {
	case '|':
		l.pos++
		return token{kind: tokPipe}, nil
	case ',':
		l.pos++
		return token{kind: tokComma}, nil
	case '=':
		l.pos++
		return token{kind: tokAssign}, nil
	case '(':
		l.pos++
		return token{kind: tokLParen}, nil
	case ')':
		l.pos++
		return token{kind: tokRParen}, nil
	case '[':
		l.pos++
		return token{kind: tokLBracket}, nil
	case ']':
		l.pos++
		return token{kind: tokRBracket}, nil
	case '\'', '"':
		return l.scanString(r)
	}

	if unicode.IsDigit(r) || r == '-' {
		return l.scanNumber()
	}
	if isIdentStart(r) {
		return l.scanIdent()
	}
	return token{}, errors.Newf(errors.ErrRender, "unexpected character %q in expression", string(r))
}

func (l *lexer) scanString(quote rune) (token, error) {
	l.pos++ // opening quote
	var b strings.Builder
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		switch r {
		case '\\':
			l.pos++
			if l.pos >= len(l.src) {
				return token{}, errors.New(errors.ErrRender, "unterminated string literal")
			}
			switch esc := l.src[l.pos]; esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(esc)
			}
			l.pos++
		case quote:
			l.pos++
			return token{kind: tokString, text: b.String()}, nil
		default:
			b.WriteRune(r)
			l.pos++
		}
	}
	return token{}, errors.New(errors.ErrRender, "unterminated string literal")
}

func (l *lexer) scanNumber() (token, error) {
	start := l.pos
	if l.src[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.src) && unicode.IsDigit(l.src[l.pos]) {
		l.pos++
	}
	text := string(l.src[start:l.pos])
	num, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token{}, errors.Newf(errors.ErrRender, "bad number literal %q", text)
	}
	return token{kind: tokNumber, num: num}, nil
}

func (l *lexer) scanIdent() (token, error) {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	return token{kind: tokIdent, text: string(l.src[start:l.pos])}, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

// ---- expression parser ----

func parseExpression(src string) (*expression, error) {
	l := newLexer(src)

	prim, err := parsePrimary(l)
	if err != nil {
		return nil, err
	}
	expr := &expression{primary: prim}

	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokEOF {
			return expr, nil
		}
		if tok.kind != tokPipe {
			return nil, errors.Newf(errors.ErrRender, "unexpected token after expression in %q", strings.TrimSpace(src))
		}

		stage, err := parsePipeStage(l)
		if err != nil {
			return nil, err
		}
		expr.pipes = append(expr.pipes, stage)
	}
}

func parsePipeStage(l *lexer) (*pipeStage, error) {
	tok, err := l.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokIdent {
		return nil, errors.New(errors.ErrRender, "expected filter name after |")
	}
	stage := &pipeStage{name: tok.text}

	next, err := l.peekToken()
	if err != nil {
		return nil, err
	}
	if next.kind == tokLParen {
		args, err := parseCallArgs(l)
		if err != nil {
			return nil, err
		}
		stage.args = args
	}
	return stage, nil
}

func parsePrimary(l *lexer) (*primary, error) {
	tok, err := l.next()
	if err != nil {
		return nil, err
	}

	switch tok.kind {
	case tokString:
		return &primary{kind: primString, str: tok.text}, nil
	case tokNumber:
		return &primary{kind: primInt, num: tok.num}, nil
	case tokLBracket:
		return parseList(l)
	case tokIdent:
		next, err := l.peekToken()
		if err != nil {
			return nil, err
		}
		if next.kind == tokLParen {
			args, err := parseCallArgs(l)
			if err != nil {
				return nil, err
			}
			return &primary{kind: primCall, str: tok.text, args: args}, nil
		}
		return &primary{kind: primIdent, str: tok.text}, nil
	}
	return nil, errors.New(errors.ErrRender, "expected a value")
}

func parseList(l *lexer) (*primary, error) {
	list := &primary{kind: primList}

	tok, err := l.peekToken()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokRBracket {
		l.next()
		return list, nil
	}

	for {
		item, err := parsePrimary(l)
		if err != nil {
			return nil, err
		}
		list.list = append(list.list, item)

		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokRBracket:
			return list, nil
		case tokComma:
			continue
		default:
			return nil, errors.New(errors.ErrRender, "expected , or ] in list")
		}
	}
}

// parseCallArgs consumes '(' arg, ... ')'. Keyword arguments
// (name=value) may follow positional ones.
func parseCallArgs(l *lexer) ([]*argument, error) {
	if tok, err := l.next(); err != nil {
		return nil, err
	} else if tok.kind != tokLParen {
		return nil, errors.New(errors.ErrRender, "expected (")
	}

	var args []*argument

	tok, err := l.peekToken()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokRParen {
		l.next()
		return args, nil
	}

	for {
		arg, err := parseArgument(l)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokRParen:
			return args, nil
		case tokComma:
			continue
		default:
			return nil, errors.New(errors.ErrRender, "expected , or ) in call")
		}
	}
}

func parseArgument(l *lexer) (*argument, error) {
	tok, err := l.peekToken()
	if err != nil {
		return nil, err
	}

	if tok.kind == tokIdent {
		// Look ahead for `name=`: consume the ident, then decide.
		l.next()
		next, err := l.peekToken()
		if err != nil {
			return nil, err
		}
		if next.kind == tokAssign {
			l.next()
			value, err := parsePrimary(l)
			if err != nil {
				return nil, err
			}
			return &argument{name: tok.text, value: value}, nil
		}
		if next.kind == tokLParen {
			args, err := parseCallArgs(l)
			if err != nil {
				return nil, err
			}
			return &argument{value: &primary{kind: primCall, str: tok.text, args: args}}, nil
		}
		return &argument{value: &primary{kind: primIdent, str: tok.text}}, nil
	}

	value, err := parsePrimary(l)
	if err != nil {
		return nil, err
	}
	return &argument{value: value}, nil
}

func (p *primary) describe() string {
	switch p.kind {
	case primString:
		return fmt.Sprintf("%q", p.str)
	case primInt:
		return strconv.FormatInt(p.num, 10)
	case primList:
		return "list"
	case primIdent, primCall:
		return p.str
	}
	return "?"
}
