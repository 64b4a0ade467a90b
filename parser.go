package subobject

import "fmt"

// MaxDepth is the deepest selector nesting Parse accepts.
const MaxDepth = 256

// Parse turns a selector expression into a selector tree.
//
// The grammar is a comma separated list of keys, each optionally followed by
// a parenthesised child list:
//
//	id,owner(name,email),"display name",items(sku,price(amount))
//
// An empty child list, as in "meta()", keeps the key and projects its value
// with no fields.
//
// Keys containing whitespace or any of , ( ) " ' \ must be quoted with
// single or double quotes; a backslash escapes the next rune inside quotes.
// Whitespace between tokens is ignored.
//
// Any failure is returned as a *ParsingError carrying the pattern.
func Parse(pattern string) ([]Selector, error) {
	tokens, err := lex(pattern)
	if err != nil {
		return nil, err
	}

	p := parserState{pattern: pattern, tokens: tokens}
	if p.current().typ == tokenEOF {
		return nil, p.errorAt(0, 0, "selector is empty")
	}

	selectors, err := p.parseList(0)
	if err != nil {
		return nil, err
	}

	switch tok := p.current(); tok.typ {
	case tokenEOF:
		return selectors, nil
	case tokenRParen:
		return nil, p.errorAt(tok.pos, tok.length, "unexpected ')' without matching '('")
	default:
		return nil, p.errorAt(tok.pos, tok.length, "expected ',' before %s", tok.typ)
	}
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string) []Selector {
	selectors, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return selectors
}

type parserState struct {
	pattern string
	tokens  []token
	pos     int
}

func (p *parserState) current() token {
	return p.tokens[p.pos]
}

func (p *parserState) advance() token {
	tok := p.tokens[p.pos]
	if tok.typ != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parserState) parseList(depth int) ([]Selector, error) {
	var selectors []Selector
	seen := make(map[string]struct{})

	for {
		keyTok := p.current()
		if keyTok.typ != tokenKey {
			return nil, p.errorAt(keyTok.pos, keyTok.length, "expected key, found %s", keyTok.typ)
		}
		p.advance()

		if _, dup := seen[keyTok.literal]; dup {
			return nil, p.errorAt(keyTok.pos, keyTok.length, "duplicate key %q", keyTok.literal)
		}
		seen[keyTok.literal] = struct{}{}

		sel := Selector{Key: keyTok.literal}
		if p.current().typ == tokenLParen {
			children, err := p.parseChildren(depth + 1)
			if err != nil {
				return nil, err
			}
			sel.Children = children
		}
		selectors = append(selectors, sel)

		if p.current().typ != tokenComma {
			return selectors, nil
		}
		p.advance()
	}
}

func (p *parserState) parseChildren(depth int) ([]Selector, error) {
	open := p.advance()
	if depth > MaxDepth {
		return nil, p.errorAt(open.pos, open.length, "selector nesting exceeds maximum depth of %d", MaxDepth)
	}

	// "()" keeps the key but none of its fields.
	if p.current().typ == tokenRParen {
		p.advance()
		return []Selector{}, nil
	}

	children, err := p.parseList(depth)
	if err != nil {
		return nil, err
	}

	switch tok := p.current(); tok.typ {
	case tokenRParen:
		p.advance()
		return children, nil
	case tokenEOF:
		return nil, p.errorAt(open.pos, open.length, "unclosed '('")
	default:
		return nil, p.errorAt(tok.pos, tok.length, "expected ',' or ')' before %s", tok.typ)
	}
}

func (p *parserState) errorAt(pos, length int, format string, args ...any) *ParsingError {
	return syntaxError(p.pattern, pos, length, format, args...)
}

func syntaxError(pattern string, pos, length int, format string, args ...any) *ParsingError {
	return NewParsingError(pos, length, fmt.Sprintf(format, args...)).WithPattern(pattern)
}
