package fractal

import (
	"bufio"
	"io"
)

// Option files are broken into six token kinds: a keyword is a run of
// letters/underscores, a symbol is a single punctuation character, a
// string is anything between double quotes (no escapes), and numbers are
// split into integer and floating forms. Comments run from '#' to the end
// of the line.
type tokenType int

const (
	tokKeyword tokenType = iota
	tokSymbol
	tokString
	tokFloat
	tokInt
	tokEOF
)

type token struct {
	typ  tokenType
	text string
}

type lexer struct {
	r *bufio.Reader
}

func newLexer(r io.Reader) *lexer {
	return &lexer{r: bufio.NewReader(r)}
}

func (lx *lexer) peekByte() (byte, bool) {
	b, err := lx.r.Peek(1)
	if err != nil {
		return 0, false
	}
	return b[0], true
}

func (lx *lexer) readByte() (byte, bool) {
	b, err := lx.r.ReadByte()
	if err != nil {
		return 0, false
	}
	return b, true
}

func (lx *lexer) skipWhitespace() {
	for {
		ch, ok := lx.peekByte()
		if !ok {
			return
		}
		if ch == '#' {
			for ok && ch != '\n' {
				ch, ok = lx.readByte()
			}
			continue
		}
		if ch != ' ' && ch != '\n' && ch != '\t' && ch != '\r' {
			return
		}
		lx.readByte()
	}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// next extracts the next token from the stream.
func (lx *lexer) next() (token, error) {
	lx.skipWhitespace()
	ch, ok := lx.peekByte()
	if !ok {
		return token{typ: tokEOF}, nil
	}
	switch {
	case isDigit(ch) || ch == '+' || ch == '-' || ch == '.':
		return lx.numericToken()
	case isAlpha(ch) || ch == '_':
		return lx.word(), nil
	case ch == '"':
		return lx.stringToken()
	default:
		lx.readByte()
		return token{typ: tokSymbol, text: string(ch)}, nil
	}
}

func (lx *lexer) numericToken() (token, error) {
	gotDecimal := false
	gotExponent := false
	typ := tokInt

	ch, _ := lx.readByte()
	contents := []byte{ch}
	if ch == '-' || ch == '.' {
		typ = tokFloat
	}
	if ch == '.' {
		gotDecimal = true
	}

	for {
		ch, ok := lx.peekByte()
		if !ok || !(isDigit(ch) || ch == 'e' || ch == 'E' || ch == '.' || ch == '-' || ch == '+') {
			break
		}
		switch {
		case ch == '.':
			if gotDecimal {
				return token{}, &ConfigError{Msg: "bad number format - multiple decimal points"}
			}
			gotDecimal = true
			typ = tokFloat
		case ch == 'e' || ch == 'E':
			if gotExponent {
				return token{}, &ConfigError{Msg: "bad number format - multiple occurrences of 'E'"}
			}
			gotExponent = true
			typ = tokFloat
		case ch == '-' || ch == '+':
			if last := contents[len(contents)-1]; last != 'e' && last != 'E' {
				return token{}, &ConfigError{Msg: "bad number format - sign allowed only at the beginning or directly after 'E'"}
			}
		}
		lx.readByte()
		contents = append(contents, ch)
	}
	return token{typ: typ, text: string(contents)}, nil
}

func (lx *lexer) word() token {
	var word []byte
	for {
		ch, ok := lx.peekByte()
		if !ok || !(isAlpha(ch) || ch == '_') {
			break
		}
		lx.readByte()
		word = append(word, ch)
	}
	return token{typ: tokKeyword, text: string(word)}
}

func (lx *lexer) stringToken() (token, error) {
	lx.readByte() // opening quote
	var str []byte
	for {
		ch, ok := lx.readByte()
		if !ok {
			return token{}, &ConfigError{Msg: "reached EOF while reading string"}
		}
		if ch == '"' {
			return token{typ: tokString, text: string(str)}, nil
		}
		str = append(str, ch)
	}
}
