package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads the text form produced by Expression.String. Accepted shapes are a single
// predicate, an OR chain of predicates, or an AND chain of predicates, NOT predicates and at
// most one parenthesized OR group. An empty string gives the empty expression.
func Parse(s string) (Expression, error) {
	toks, err := lex(s)
	if err != nil {
		return Expression{}, err
	}
	if len(toks) == 0 {
		return Expression{}, nil
	}

	p := &parser{toks: toks}
	var must, should, mustNot []Condition

	first, err := p.term()
	if err != nil {
		return Expression{}, err
	}
	if p.peek("OR") {
		if first.negated || first.group != nil {
			return Expression{}, fmt.Errorf("filter: OR only joins plain predicates")
		}
		should = append(should, first.cond)
		for p.accept("OR") {
			c, err := p.predicate()
			if err != nil {
				return Expression{}, err
			}
			should = append(should, c)
		}
	} else {
		terms := []term{first}
		for p.accept("AND") {
			t, err := p.term()
			if err != nil {
				return Expression{}, err
			}
			terms = append(terms, t)
		}
		for _, t := range terms {
			switch {
			case t.group != nil:
				if should != nil {
					return Expression{}, fmt.Errorf("filter: only one OR group is supported")
				}
				should = t.group
			case t.negated:
				mustNot = append(mustNot, t.cond)
			default:
				must = append(must, t.cond)
			}
		}
	}

	if !p.done() {
		return Expression{}, fmt.Errorf("filter: unexpected %q", p.toks[p.pos].text)
	}
	return NewExpression(must, should, mustNot)
}

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokEq
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
}

func lex(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n':
			i++
		case ch == '=':
			toks = append(toks, token{kind: tokEq, text: "="})
			i++
		case ch == '(':
			toks = append(toks, token{kind: tokLParen, text: "("})
			i++
		case ch == ')':
			toks = append(toks, token{kind: tokRParen, text: ")"})
			i++
		case ch == '"':
			quoted, err := strconv.QuotedPrefix(s[i:])
			if err != nil {
				return nil, fmt.Errorf("filter: unterminated string at %d", i)
			}
			v, err := strconv.Unquote(quoted)
			if err != nil {
				return nil, fmt.Errorf("filter: bad string at %d: %w", i, err)
			}
			toks = append(toks, token{kind: tokString, text: v})
			i += len(quoted)
		default:
			j := i
			for j < len(s) && !strings.ContainsRune(" \t\n=()\"", rune(s[j])) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: s[i:j]})
			i = j
		}
	}
	return toks, nil
}

type term struct {
	cond    Condition
	negated bool
	group   []Condition
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) done() bool { return p.pos >= len(p.toks) }

func (p *parser) peek(keyword string) bool {
	return !p.done() && p.toks[p.pos].kind == tokIdent && p.toks[p.pos].text == keyword
}

func (p *parser) accept(keyword string) bool {
	if p.peek(keyword) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) next(kind tokenKind, what string) (token, error) {
	if p.done() {
		return token{}, fmt.Errorf("filter: expected %s, got end of input", what)
	}
	t := p.toks[p.pos]
	if t.kind != kind {
		return token{}, fmt.Errorf("filter: expected %s, got %q", what, t.text)
	}
	p.pos++
	return t, nil
}

func (p *parser) term() (term, error) {
	if p.accept("NOT") {
		c, err := p.predicate()
		return term{cond: c, negated: true}, err
	}
	if !p.done() && p.toks[p.pos].kind == tokLParen {
		p.pos++
		var group []Condition
		for {
			c, err := p.predicate()
			if err != nil {
				return term{}, err
			}
			group = append(group, c)
			if !p.accept("OR") {
				break
			}
		}
		if _, err := p.next(tokRParen, "')'"); err != nil {
			return term{}, err
		}
		return term{group: group}, nil
	}
	c, err := p.predicate()
	return term{cond: c}, err
}

func (p *parser) predicate() (Condition, error) {
	key, err := p.next(tokIdent, "field name")
	if err != nil {
		return Condition{}, err
	}
	if _, err := p.next(tokEq, "'='"); err != nil {
		return Condition{}, err
	}
	val, err := p.next(tokString, "quoted value")
	if err != nil {
		return Condition{}, err
	}
	return NewMatch(key.text, val.text)
}
