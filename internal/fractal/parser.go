package fractal

import (
	"fmt"
	"math/cmplx"
	"strconv"
)

// Fn is a compiled formula: a pure evaluator over the two formula
// variables. Evaluators hold no mutable state, so one Fn may be called
// from any number of goroutines at once.
type Fn func(z, c Cmplx) Cmplx

// complexFunctions maps recognized function names to implementations.
// abs, real and imag embed their scalar result back into the complex type.
var complexFunctions = map[string]func(Cmplx) Cmplx{
	"abs":  func(v Cmplx) Cmplx { return complex(cmplx.Abs(v), 0) },
	"exp":  cmplx.Exp,
	"sin":  cmplx.Sin,
	"cos":  cmplx.Cos,
	"tan":  cmplx.Tan,
	"asin": cmplx.Asin,
	"acos": cmplx.Acos,
	"atan": cmplx.Atan,
	"sqrt": cmplx.Sqrt,
	"real": func(v Cmplx) Cmplx { return complex(real(v), 0) },
	"imag": func(v Cmplx) Cmplx { return complex(0, imag(v)) },
}

// ParseFormula compiles a formula over the variables z and c (plus the
// imaginary unit I) into an evaluator, composing closures bottom-up as it
// parses. Operators are +, -, *, / and ^ (principal-branch power), all
// left-associative; a unary sign binds to the whole following factor, so
// -z^2 means (-z)^2. Trailing input after a complete expression is
// ignored. Any grammar violation returns a *ParseError.
func ParseFormula(src string) (Fn, error) {
	p := &parser{src: src}
	return p.parseExpr()
}

type parser struct {
	src string
	pos int
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) advance() byte {
	ch := p.peek()
	if ch != 0 {
		p.pos++
	}
	return ch
}

func (p *parser) skipSpace() {
	for p.peek() == ' ' || p.peek() == '\t' {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

// expr := term (('+' | '-') term)*
func (p *parser) parseExpr() (Fn, error) {
	f, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	for p.peek() == '+' || p.peek() == '-' {
		op := p.advance()
		g, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		lhs := f
		if op == '+' {
			f = func(z, c Cmplx) Cmplx { return lhs(z, c) + g(z, c) }
		} else {
			f = func(z, c Cmplx) Cmplx { return lhs(z, c) - g(z, c) }
		}
		p.skipSpace()
	}
	return f, nil
}

// term := pow_term (('*' | '/') pow_term)*
func (p *parser) parseTerm() (Fn, error) {
	f, err := p.parsePowTerm()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	for p.peek() == '*' || p.peek() == '/' {
		op := p.advance()
		g, err := p.parsePowTerm()
		if err != nil {
			return nil, err
		}
		lhs := f
		if op == '*' {
			f = func(z, c Cmplx) Cmplx { return lhs(z, c) * g(z, c) }
		} else {
			f = func(z, c Cmplx) Cmplx { return lhs(z, c) / g(z, c) }
		}
		p.skipSpace()
	}
	return f, nil
}

// pow_term := factor ('^' factor)*
func (p *parser) parsePowTerm() (Fn, error) {
	f, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	for p.peek() == '^' {
		p.advance()
		g, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		lhs := f
		f = func(z, c Cmplx) Cmplx { return cmplx.Pow(lhs(z, c), g(z, c)) }
		p.skipSpace()
	}
	return f, nil
}

// factor := ('+' | '-') factor | 'I' | 'z' | '(' expr ')' | number | call
func (p *parser) parseFactor() (Fn, error) {
	p.skipSpace()
	switch ch := p.peek(); {
	case ch == '+' || ch == '-':
		p.advance()
		f, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		if ch == '-' {
			return func(z, c Cmplx) Cmplx { return -f(z, c) }, nil
		}
		return f, nil
	case ch == 'I':
		p.advance()
		return func(z, c Cmplx) Cmplx { return complex(0, 1) }, nil
	case ch == 'z':
		p.advance()
		return func(z, c Cmplx) Cmplx { return z }, nil
	case ch == '(':
		p.advance()
		f, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return nil, p.errorf("missing ')'")
		}
		p.advance()
		return f, nil
	case ch >= '0' && ch <= '9' || ch == '.':
		return p.parseNumber()
	case ch >= 'a' && ch <= 'z':
		return p.parseFunction()
	case ch == 0:
		return nil, p.errorf("unexpected end of formula")
	default:
		return nil, p.errorf("unexpected character %q", ch)
	}
}

// parseNumber scans an unsigned literal: digits, an optional fraction and
// an optional exponent whose sign must directly follow the marker.
func (p *parser) parseNumber() (Fn, error) {
	start := p.pos
	gotDecimal := false
	gotExponent := false
	for {
		switch ch := p.peek(); {
		case ch >= '0' && ch <= '9':
			p.advance()
		case ch == '.':
			if gotDecimal {
				return nil, p.errorf("multiple decimal points in number")
			}
			if gotExponent {
				return nil, p.errorf("decimal point in exponent")
			}
			gotDecimal = true
			p.advance()
		case ch == 'e' || ch == 'E':
			if gotExponent {
				return nil, p.errorf("multiple exponent markers in number")
			}
			gotExponent = true
			p.advance()
			if p.peek() == '+' || p.peek() == '-' {
				p.advance()
			}
			if p.peek() < '0' || p.peek() > '9' {
				return nil, p.errorf("malformed exponent")
			}
		default:
			text := p.src[start:p.pos]
			x, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, p.errorf("bad number %q", text)
			}
			v := complex(x, 0)
			return func(z, c Cmplx) Cmplx { return v }, nil
		}
	}
}

// parseFunction reads a letter run and dispatches on the full name. The
// bare variable c is the one name that is not a function call: it only
// extends into a longer token when the very next character is 'o' (cos).
func (p *parser) parseFunction() (Fn, error) {
	start := p.pos
	if p.peek() == 'c' {
		p.advance()
		if p.peek() != 'o' {
			return func(z, c Cmplx) Cmplx { return c }, nil
		}
	}
	for ch := p.peek(); ch >= 'a' && ch <= 'z'; ch = p.peek() {
		p.advance()
	}
	name := p.src[start:p.pos]
	fn, ok := complexFunctions[name]
	if !ok {
		return nil, p.errorf("unknown function %q", name)
	}
	p.skipSpace()
	if p.peek() != '(' {
		return nil, p.errorf("missing '(' after %s", name)
	}
	p.advance()
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != ')' {
		return nil, p.errorf("missing ')' closing %s", name)
	}
	p.advance()
	return func(z, c Cmplx) Cmplx { return fn(arg(z, c)) }, nil
}
