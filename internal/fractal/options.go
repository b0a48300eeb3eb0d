package fractal

import (
	"fmt"
	"io"
	"strconv"
)

// Options holds everything a render needs, read from an option file. The
// file is a sequence of "keyword: value" entries; all five options
// (colors, domain, num_threads, output, function) must appear exactly
// once. See mandelbrot.cfg for the format.
type Options struct {
	Domain  Domain
	Output  string
	Colors  []ControlPoint
	Threads int
	Test    Tester

	// The raw function block, kept so callers can rebuild testers with
	// different parameters (the preview server does).
	Formula  string
	MaxIters uint32
	Escape   Real
	Constant Cmplx
	Probe    Probe
}

// ControlPoint anchors the color scale at an iteration count.
type ControlPoint struct {
	Iters uint32
	Color Color
}

// LoadOptions reads an option file. It returns a *ConfigError on
// malformed input and a *ParseError if the formula inside the function
// block does not parse.
func LoadOptions(r io.Reader) (*Options, error) {
	lx := newLexer(r)
	opts := &Options{}
	var gotColors, gotDomain, gotThreads, gotOutput, gotFunction bool

	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		if tok.typ == tokEOF {
			break
		}
		if tok.typ != tokKeyword {
			return nil, &ConfigError{Msg: fmt.Sprintf("got %q where an option keyword was expected", tok.text)}
		}
		if err := expectSymbol(lx, ":", "after option keyword"); err != nil {
			return nil, err
		}

		switch tok.text {
		case "colors":
			if gotColors {
				return nil, &ConfigError{Msg: "multiple definition of 'colors'"}
			}
			opts.Colors, err = parseColorList(lx)
			gotColors = true
		case "domain":
			if gotDomain {
				return nil, &ConfigError{Msg: "multiple definition of 'domain'"}
			}
			opts.Domain, err = parseDomain(lx)
			gotDomain = true
		case "num_threads":
			if gotThreads {
				return nil, &ConfigError{Msg: "multiple definition of 'num_threads'"}
			}
			opts.Threads, err = parseInteger(lx)
			gotThreads = true
		case "output":
			if gotOutput {
				return nil, &ConfigError{Msg: "multiple definition of 'output'"}
			}
			opts.Output, err = parseOutput(lx)
			gotOutput = true
		case "function":
			if gotFunction {
				return nil, &ConfigError{Msg: "multiple definition of 'function'"}
			}
			err = parseTestFun(lx, opts)
			gotFunction = true
		default:
			return nil, &ConfigError{Msg: "unrecognized option keyword " + strconv.Quote(tok.text)}
		}
		if err != nil {
			return nil, err
		}
	}

	if !(gotColors && gotDomain && gotThreads && gotOutput && gotFunction) {
		return nil, &ConfigError{Msg: "some options not specified"}
	}
	return opts, nil
}

func expectSymbol(lx *lexer, sym, context string) error {
	tok, err := lx.next()
	if err != nil {
		return err
	}
	if tok.typ != tokSymbol || tok.text != sym {
		return &ConfigError{Msg: fmt.Sprintf("missing %q %s", sym, context)}
	}
	return nil
}

func parseInteger(lx *lexer) (int, error) {
	tok, err := lx.next()
	if err != nil {
		return 0, err
	}
	if tok.typ != tokInt {
		return 0, &ConfigError{Msg: "got non-integer data where an integer was expected"}
	}
	n, err := strconv.Atoi(tok.text)
	if err != nil {
		return 0, &ConfigError{Msg: "bad integer " + strconv.Quote(tok.text)}
	}
	return n, nil
}

func parseScalar(lx *lexer) (Real, error) {
	tok, err := lx.next()
	if err != nil {
		return 0, err
	}
	if tok.typ != tokFloat && tok.typ != tokInt {
		return 0, &ConfigError{Msg: "non-numeric data where a number was expected"}
	}
	x, err := strconv.ParseFloat(tok.text, 64)
	if err != nil {
		return 0, &ConfigError{Msg: "bad number " + strconv.Quote(tok.text)}
	}
	return x, nil
}

func parseOutput(lx *lexer) (string, error) {
	tok, err := lx.next()
	if err != nil {
		return "", err
	}
	if tok.typ != tokString {
		return "", &ConfigError{Msg: "output option given is not a string"}
	}
	return tok.text, nil
}

// parseConstant reads a complex constant of the form { re, im }.
func parseConstant(lx *lexer) (Cmplx, error) {
	if err := expectSymbol(lx, "{", "opening complex constant"); err != nil {
		return 0, err
	}
	re, err := parseScalar(lx)
	if err != nil {
		return 0, err
	}
	if err := expectSymbol(lx, ",", "in complex constant"); err != nil {
		return 0, err
	}
	im, err := parseScalar(lx)
	if err != nil {
		return 0, err
	}
	if err := expectSymbol(lx, "}", "closing complex constant"); err != nil {
		return 0, err
	}
	return complex(re, im), nil
}

// parseDomain reads { lower_left, upper_right, columns, rows }.
func parseDomain(lx *lexer) (Domain, error) {
	var d Domain
	if err := expectSymbol(lx, "{", `after "domain:"`); err != nil {
		return d, err
	}
	var err error
	if d.LowerLeft, err = parseConstant(lx); err != nil {
		return d, err
	}
	if err = expectSymbol(lx, ",", "in domain"); err != nil {
		return d, err
	}
	if d.UpperRight, err = parseConstant(lx); err != nil {
		return d, err
	}
	if err = expectSymbol(lx, ",", "in domain"); err != nil {
		return d, err
	}
	if d.Columns, err = parseInteger(lx); err != nil {
		return d, err
	}
	if err = expectSymbol(lx, ",", "in domain"); err != nil {
		return d, err
	}
	if d.Rows, err = parseInteger(lx); err != nil {
		return d, err
	}
	if err = expectSymbol(lx, "}", "closing domain"); err != nil {
		return d, err
	}
	return d, d.Validate()
}

// parseColor reads { r, g, b } with each channel in [0, 255].
func parseColor(lx *lexer) (Color, error) {
	var c Color
	if err := expectSymbol(lx, "{", "opening color"); err != nil {
		return c, err
	}
	channels := [3]*uint8{&c.R, &c.G, &c.B}
	for i, ch := range channels {
		if i > 0 {
			if err := expectSymbol(lx, ",", "in color"); err != nil {
				return c, err
			}
		}
		v, err := parseInteger(lx)
		if err != nil {
			return c, err
		}
		if v < 0 || v > MaxColorValue {
			return c, &ConfigError{Msg: fmt.Sprintf("color value %d outside [0, %d]", v, MaxColorValue)}
		}
		*ch = uint8(v)
	}
	if err := expectSymbol(lx, "}", "closing color"); err != nil {
		return c, err
	}
	return c, nil
}

// parseColorPair reads { iterations, { r, g, b } }.
func parseColorPair(lx *lexer) (ControlPoint, error) {
	var cp ControlPoint
	if err := expectSymbol(lx, "{", "opening color pair"); err != nil {
		return cp, err
	}
	n, err := parseInteger(lx)
	if err != nil {
		return cp, err
	}
	cp.Iters = uint32(n)
	if err := expectSymbol(lx, ",", "in color pair"); err != nil {
		return cp, err
	}
	if cp.Color, err = parseColor(lx); err != nil {
		return cp, err
	}
	if err := expectSymbol(lx, "}", "closing color pair"); err != nil {
		return cp, err
	}
	return cp, nil
}

func parseColorList(lx *lexer) ([]ControlPoint, error) {
	if err := expectSymbol(lx, "{", "opening color list"); err != nil {
		return nil, err
	}
	var colors []ControlPoint
	for {
		cp, err := parseColorPair(lx)
		if err != nil {
			return nil, err
		}
		colors = append(colors, cp)
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		if tok.typ != tokSymbol {
			return nil, &ConfigError{Msg: "malformed color list"}
		}
		if tok.text == "}" {
			return colors, nil
		}
		if tok.text != "," {
			return nil, &ConfigError{Msg: "unexpected symbol in color list"}
		}
	}
}

// parseTestFun reads the function block:
//
//	{ "formula", max_iterations: N, escape_tol: X, constant: {a, b}, point: z|c }
//
// and compiles it into opts.Test, keeping the raw pieces alongside.
func parseTestFun(lx *lexer, opts *Options) error {
	if err := expectSymbol(lx, "{", "opening function definition"); err != nil {
		return err
	}
	tok, err := lx.next()
	if err != nil {
		return err
	}
	if tok.typ != tokString {
		return &ConfigError{Msg: "expected string giving function definition"}
	}
	fn, err := ParseFormula(tok.text)
	if err != nil {
		return err
	}
	opts.Formula = tok.text

	if err := expectKeywordField(lx, "max_iterations"); err != nil {
		return err
	}
	maxIters, err := parseInteger(lx)
	if err != nil {
		return err
	}
	if maxIters < 1 {
		return &ConfigError{Msg: "max_iterations must be positive"}
	}
	opts.MaxIters = uint32(maxIters)

	if err := expectKeywordField(lx, "escape_tol"); err != nil {
		return err
	}
	if opts.Escape, err = parseScalar(lx); err != nil {
		return err
	}
	if opts.Escape <= 0 {
		return &ConfigError{Msg: "escape_tol must be positive"}
	}

	if err := expectKeywordField(lx, "constant"); err != nil {
		return err
	}
	if opts.Constant, err = parseConstant(lx); err != nil {
		return err
	}

	if err := expectKeywordField(lx, "point"); err != nil {
		return err
	}
	tok, err = lx.next()
	if err != nil {
		return err
	}
	if tok.typ != tokKeyword || (tok.text != "z" && tok.text != "c") {
		return &ConfigError{Msg: "bad point specification - expect 'z' or 'c'"}
	}
	if tok.text == "c" {
		opts.Probe = ProbeC
	} else {
		opts.Probe = ProbeZ
	}

	if err := expectSymbol(lx, "}", "closing function definition"); err != nil {
		return err
	}
	opts.Test = NewTester(fn, opts.Constant, opts.Escape, opts.MaxIters, opts.Probe)
	return nil
}

// expectKeywordField consumes ", keyword :" before a function block field.
func expectKeywordField(lx *lexer, keyword string) error {
	if err := expectSymbol(lx, ",", "between function fields"); err != nil {
		return err
	}
	tok, err := lx.next()
	if err != nil {
		return err
	}
	if tok.typ != tokKeyword || tok.text != keyword {
		return &ConfigError{Msg: fmt.Sprintf("expected %q specification next", keyword)}
	}
	return expectSymbol(lx, ":", "after "+strconv.Quote(keyword))
}
