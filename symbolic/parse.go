package symbolic

import (
	"fmt"
	"strings"
	"unicode"
)

// ============================================================
// Infix parser
// ============================================================

// ParseError reports the byte offset of a malformed input.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q at %d: %s", e.Input, e.Pos, e.Msg)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokIdent
	tokOp
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// Parse reads an infix expression. Supported: numbers (decimal literals
// are exact), identifiers, pi, e, + - * / ^ **, parentheses, |x| and
// function calls. Juxtaposition such as 2x or 3(x+1) multiplies.
func Parse(input string) (Expr, error) {
	toks, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{input: input, toks: toks}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "unexpected %q", t.text)
	}
	return e.Simplify(), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(input string) Expr {
	e, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return e
}

// ParseEquation reads "lhs = rhs" (or a bare expression meaning expr = 0).
func ParseEquation(input string) (*Equation, error) {
	parts := strings.Split(input, "=")
	switch len(parts) {
	case 1:
		lhs, err := Parse(parts[0])
		if err != nil {
			return nil, err
		}
		return Eq(lhs, N(0)), nil
	case 2:
		lhs, err := Parse(parts[0])
		if err != nil {
			return nil, err
		}
		rhs, err := Parse(parts[1])
		if err != nil {
			return nil, err
		}
		return Eq(lhs, rhs), nil
	}
	return nil, &ParseError{Input: input, Pos: strings.LastIndex(input, "="), Msg: "more than one '='"}
}

func tokenize(input string) ([]token, error) {
	var toks []token
	rs := []rune(input)
	offset := func(i int) int { return len(string(rs[:i])) }
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || (r == '.' && i+1 < len(rs) && unicode.IsDigit(rs[i+1])):
			start := i
			for i < len(rs) && (unicode.IsDigit(rs[i]) || rs[i] == '.') {
				i++
			}
			// Exponent part: 1e-3, 2E5.
			if i < len(rs) && (rs[i] == 'e' || rs[i] == 'E') {
				j := i + 1
				if j < len(rs) && (rs[j] == '+' || rs[j] == '-') {
					j++
				}
				if j < len(rs) && unicode.IsDigit(rs[j]) {
					for j < len(rs) && unicode.IsDigit(rs[j]) {
						j++
					}
					i = j
				}
			}
			toks = append(toks, token{kind: tokNum, text: string(rs[start:i]), pos: offset(start)})
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(rs) && (unicode.IsLetter(rs[i]) || unicode.IsDigit(rs[i]) || rs[i] == '_') {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: string(rs[start:i]), pos: offset(start)})
		case r == '*' && i+1 < len(rs) && rs[i+1] == '*':
			toks = append(toks, token{kind: tokOp, text: "^", pos: offset(i)})
			i += 2
		case strings.ContainsRune("+-*/^(),|", r):
			toks = append(toks, token{kind: tokOp, text: string(r), pos: offset(i)})
			i++
		case r == '·' || r == '×':
			toks = append(toks, token{kind: tokOp, text: "*", pos: offset(i)})
			i++
		case r == '−':
			toks = append(toks, token{kind: tokOp, text: "-", pos: offset(i)})
			i++
		default:
			return nil, &ParseError{Input: input, Pos: offset(i), Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(input)})
	return toks, nil
}

type parser struct {
	input string
	toks  []token
	pos   int
	// inAbs counts open |...| groups so a closing bar ends the group.
	inAbs int
}

func (p *parser) peek() token { return p.toks[p.pos] }
func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &ParseError{Input: p.input, Pos: t.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) isOp(text string) bool {
	t := p.peek()
	return t.kind == tokOp && t.text == text
}

// expr := term (('+'|'-') term)*
func (p *parser) expr() (Expr, error) {
	lhs, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isOp("+") || p.isOp("-") {
		op := p.next().text
		rhs, err := p.term()
		if err != nil {
			return nil, err
		}
		if op == "-" {
			rhs = MulOf(N(-1), rhs)
		}
		lhs = AddOf(lhs, rhs)
	}
	return lhs, nil
}

// term := unary (('*'|'/') unary | juxtaposed power)*
func (p *parser) term() (Expr, error) {
	lhs, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isOp("*"):
			p.next()
			rhs, err := p.unary()
			if err != nil {
				return nil, err
			}
			lhs = MulOf(lhs, rhs)
		case p.isOp("/"):
			t := p.next()
			rhs, err := p.unary()
			if err != nil {
				return nil, err
			}
			if IsZero(rhs) {
				return nil, p.errorf(t, "division by zero")
			}
			lhs = MulOf(lhs, PowOf(rhs, N(-1)))
		case p.juxtaposed():
			rhs, err := p.power()
			if err != nil {
				return nil, err
			}
			lhs = MulOf(lhs, rhs)
		default:
			return lhs, nil
		}
	}
}

func (p *parser) juxtaposed() bool {
	t := p.peek()
	switch {
	case t.kind == tokIdent, t.kind == tokNum:
		return true
	case t.kind == tokOp && t.text == "(":
		return true
	case t.kind == tokOp && t.text == "|":
		return p.inAbs == 0
	}
	return false
}

// unary := ('-'|'+') unary | power
func (p *parser) unary() (Expr, error) {
	if p.isOp("-") {
		p.next()
		e, err := p.unary()
		if err != nil {
			return nil, err
		}
		return MulOf(N(-1), e), nil
	}
	if p.isOp("+") {
		p.next()
		return p.unary()
	}
	return p.power()
}

// power := primary ('^' unary)?
func (p *parser) power() (Expr, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.isOp("^") {
		p.next()
		exp, err := p.unary()
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil
	}
	return base, nil
}

func (p *parser) primary() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		n, ok := NDecimal(t.text)
		if !ok {
			return nil, p.errorf(t, "bad number %q", t.text)
		}
		return n, nil
	case tokIdent:
		switch t.text {
		case "pi", "π":
			return Pi, nil
		case "e":
			return E, nil
		}
		if IsFunc(t.text) && p.isOp("(") {
			p.next()
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			if !p.isOp(")") {
				return nil, p.errorf(p.peek(), "expected ')' after argument of %s", t.text)
			}
			p.next()
			return FuncOf(t.text, arg)
		}
		if IsFunc(t.text) {
			return nil, p.errorf(t, "function %s needs parentheses", t.text)
		}
		return S(t.text), nil
	case tokOp:
		switch t.text {
		case "(":
			e, err := p.expr()
			if err != nil {
				return nil, err
			}
			if !p.isOp(")") {
				return nil, p.errorf(p.peek(), "expected ')'")
			}
			p.next()
			return e, nil
		case "|":
			p.inAbs++
			e, err := p.expr()
			p.inAbs--
			if err != nil {
				return nil, err
			}
			if !p.isOp("|") {
				return nil, p.errorf(p.peek(), "expected closing '|'")
			}
			p.next()
			return AbsOf(e), nil
		}
	case tokEOF:
		return nil, p.errorf(t, "unexpected end of input")
	}
	return nil, p.errorf(t, "unexpected %q", t.text)
}
