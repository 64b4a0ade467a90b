package subobject

import (
	"strings"
	"unicode"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenKey
	tokenComma
	tokenLParen
	tokenRParen
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "end of selector"
	case tokenKey:
		return "key"
	case tokenComma:
		return "','"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	}
	return "unknown token"
}

// token positions and lengths count runes, matching ParsingError.
type token struct {
	typ     tokenType
	literal string
	pos     int
	length  int
}

type lexer struct {
	pattern string
	input   []rune
	pos     int
}

func lex(pattern string) ([]token, error) {
	l := lexer{pattern: pattern, input: []rune(pattern)}
	tokens := make([]token, 0, len(l.input)/2+1)

	for l.pos < len(l.input) {
		r := l.input[l.pos]
		if unicode.IsSpace(r) {
			l.pos++
			continue
		}

		switch r {
		case ',':
			tokens = append(tokens, token{typ: tokenComma, pos: l.pos, length: 1})
			l.pos++
			continue
		case '(':
			tokens = append(tokens, token{typ: tokenLParen, pos: l.pos, length: 1})
			l.pos++
			continue
		case ')':
			tokens = append(tokens, token{typ: tokenRParen, pos: l.pos, length: 1})
			l.pos++
			continue
		case '"', '\'':
			tok, err := l.lexQuoted(r)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			continue
		}

		if !isBareRune(r) {
			return nil, l.errorAt(l.pos, 1, "unexpected character %q", r)
		}

		start := l.pos
		for l.pos < len(l.input) && isBareRune(l.input[l.pos]) {
			l.pos++
		}
		tokens = append(tokens, token{
			typ:     tokenKey,
			literal: string(l.input[start:l.pos]),
			pos:     start,
			length:  l.pos - start,
		})
	}

	tokens = append(tokens, token{typ: tokenEOF, pos: len(l.input)})
	return tokens, nil
}

func (l *lexer) lexQuoted(quote rune) (token, error) {
	start := l.pos
	l.pos++

	var b strings.Builder
	for l.pos < len(l.input) {
		r := l.input[l.pos]
		switch {
		case r == '\\':
			if l.pos+1 >= len(l.input) {
				return token{}, l.errorAt(start, len(l.input)-start, "unterminated quoted key")
			}
			b.WriteRune(l.input[l.pos+1])
			l.pos += 2
		case r == quote:
			l.pos++
			if b.Len() == 0 {
				return token{}, l.errorAt(start, l.pos-start, "empty key")
			}
			return token{typ: tokenKey, literal: b.String(), pos: start, length: l.pos - start}, nil
		default:
			b.WriteRune(r)
			l.pos++
		}
	}

	return token{}, l.errorAt(start, len(l.input)-start, "unterminated quoted key")
}

func (l *lexer) errorAt(pos, length int, format string, args ...any) *ParsingError {
	return syntaxError(l.pattern, pos, length, format, args...)
}

func isBareRune(r rune) bool {
	switch r {
	case ',', '(', ')', '"', '\'', '\\':
		return false
	}
	return !unicode.IsSpace(r) && unicode.IsPrint(r)
}
