package expr

import (
	"strconv"
)

// tokenKind enumerates lexical token types.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokLParen
	tokRParen
	tokComma
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokEq  // ==
	tokNeq // !=
	tokLt  // <
	tokLte // <=
	tokGt  // >
	tokGte // >=
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of expression"
	case tokNumber:
		return "number"
	case tokIdent:
		return "identifier"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokEq:
		return "'=='"
	case tokNeq:
		return "'!='"
	case tokLt:
		return "'<'"
	case tokLte:
		return "'<='"
	case tokGt:
		return "'>'"
	case tokGte:
		return "'>='"
	}
	return "unknown token"
}

// token is a single lexical unit with its byte offset in the input.
type token struct {
	kind tokenKind
	text string
	num  float64 // valid when kind == tokNumber
	pos  int
}

// lexer produces tokens from an expression string.
type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

// next returns the next token, or a PARSE_ERROR on an unrecognized or
// malformed input byte.
func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.input) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}

	start := l.pos
	c := l.input[l.pos]

	switch {
	case isDigit(c):
		return l.lexNumber()
	case isIdentStart(c):
		for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
			l.pos++
		}
		return token{kind: tokIdent, text: l.input[start:l.pos], pos: start}, nil
	}

	l.pos++
	switch c {
	case '(':
		return token{kind: tokLParen, text: "(", pos: start}, nil
	case ')':
		return token{kind: tokRParen, text: ")", pos: start}, nil
	case ',':
		return token{kind: tokComma, text: ",", pos: start}, nil
	case '+':
		return token{kind: tokPlus, text: "+", pos: start}, nil
	case '-':
		return token{kind: tokMinus, text: "-", pos: start}, nil
	case '*':
		return token{kind: tokStar, text: "*", pos: start}, nil
	case '/':
		return token{kind: tokSlash, text: "/", pos: start}, nil
	case '=':
		if l.peek() == '=' {
			l.pos++
			return token{kind: tokEq, text: "==", pos: start}, nil
		}
		return token{}, newError(CodeParse, start, "unexpected '=' (did you mean '==')")
	case '!':
		if l.peek() == '=' {
			l.pos++
			return token{kind: tokNeq, text: "!=", pos: start}, nil
		}
		return token{}, newError(CodeParse, start, "unexpected '!' (did you mean '!=')")
	case '<':
		if l.peek() == '=' {
			l.pos++
			return token{kind: tokLte, text: "<=", pos: start}, nil
		}
		return token{kind: tokLt, text: "<", pos: start}, nil
	case '>':
		if l.peek() == '=' {
			l.pos++
			return token{kind: tokGte, text: ">=", pos: start}, nil
		}
		return token{kind: tokGt, text: ">", pos: start}, nil
	}

	return token{}, newError(CodeParse, start, "unexpected character %q", string(c))
}

// peek returns the current byte without consuming it, or 0 at EOF.
func (l *lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// lexNumber scans a numeric literal: digits, optional fraction, optional
// exponent. There is no unary minus in the grammar; negative quantities
// are written as a subtraction.
func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.peek() == '.' {
		l.pos++
		if !isDigit(l.peek()) {
			return token{}, newError(CodeParse, l.pos, "expected digit after decimal point")
		}
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	if c := l.peek(); c == 'e' || c == 'E' {
		l.pos++
		if c := l.peek(); c == '+' || c == '-' {
			l.pos++
		}
		if !isDigit(l.peek()) {
			return token{}, newError(CodeParse, l.pos, "expected digit in exponent")
		}
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}

	text := l.input[start:l.pos]
	num, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, newError(CodeParse, start, "malformed number %q", text)
	}
	return token{kind: tokNumber, text: text, num: num, pos: start}, nil
}
