package dsl

import (
	"fmt"
	"strings"

	"github.com/railwayhistory/railmap/internal/diag"
)

// parseError is the panic value a parse failure raises; parseStatement's
// recover loop turns it into a diagnostic and resynchronises at the next
// statement boundary, per spec §4.1: "the parser records the failure
// with position and continues".
type parseError struct {
	pos Pos
	msg string
}

// Parse lexes and parses an entire rule file into a StatementList,
// accumulating diagnostics rather than stopping at the first error
// (spec §4.1: "parse failure yields a collected error list, not partial
// output"). file is used only to label diagnostics.
func Parse(file, src string) (*StatementList, *diag.Diagnostics) {
	var d diag.Diagnostics

	toks, lexErr := lexAll(src)
	if lexErr != nil {
		d.Add(diag.Pos{File: file}, "%v", lexErr)
	}
	if len(toks) == 0 || toks[len(toks)-1].Kind != TokEOF {
		toks = append(toks, Token{Kind: TokEOF})
	}

	p := &parser{file: file, toks: toks, diags: &d}
	list := p.parseStatementList(false)
	return list, &d
}

func lexAll(src string) ([]Token, error) {
	l := newLexer(src)
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			return toks, nil
		}
	}
}

type parser struct {
	file  string
	toks  []Token
	pos   int
	diags *diag.Diagnostics
}

func (p *parser) cur() Token { return p.toks[p.pos] }

func (p *parser) peek(n int) Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) fail(format string, args ...interface{}) {
	panic(parseError{pos: p.cur().Pos, msg: fmt.Sprintf(format, args...)})
}

func (p *parser) expect(kind TokenKind) Token {
	if p.cur().Kind != kind {
		p.fail("expected %s, got %s %q", kind, p.cur().Kind, p.cur().Text)
	}
	return p.advance()
}

func (p *parser) keyword(name string) bool {
	return p.cur().Kind == TokIdent && p.cur().Text == name
}

func (p *parser) toDiagPos(tp Pos) diag.Pos {
	return diag.Pos{File: p.file, Offset: tp.Offset, Line: tp.Line, Column: tp.Column}
}

// recoverToStatementBoundary discards tokens up to and including the
// next statement-terminating ";", or up to (not including) a block-
// closing "}" or EOF, so the surrounding statement-list can continue.
func (p *parser) recoverToStatementBoundary() {
	for {
		switch p.cur().Kind {
		case TokSemicolon:
			p.advance()
			return
		case TokRBrace, TokEOF:
			return
		default:
			p.advance()
		}
	}
}

// parseStatementList parses `{ statement }`, stopping at a "}" when
// inBlock is set or at EOF otherwise.
func (p *parser) parseStatementList(inBlock bool) *StatementList {
	list := &StatementList{Pos: p.cur().Pos}
	for {
		if p.cur().Kind == TokEOF {
			return list
		}
		if inBlock && p.cur().Kind == TokRBrace {
			return list
		}
		if stmt := p.parseStatementRecover(); stmt != nil {
			list.Statements = append(list.Statements, stmt)
		}
	}
}

func (p *parser) parseStatementRecover() (stmt Statement) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(parseError)
			if !ok {
				panic(r)
			}
			p.diags.Add(p.toDiagPos(pe.pos), "%s", pe.msg)
			p.recoverToStatementBoundary()
			stmt = nil
		}
	}()
	return p.parseStatement()
}

// parseStatement dispatches on the leading keyword (spec §4.1:
// `statement := contour | label | let | symbol | with`).
func (p *parser) parseStatement() Statement {
	if p.cur().Kind != TokIdent {
		p.fail("expected a statement, got %s", p.cur().Kind)
	}
	switch p.cur().Text {
	case "contour":
		return p.parseContour()
	case "symbol":
		return p.parseSymbol()
	case "label":
		return p.parseLabel()
	case "let":
		return p.parseLet()
	case "with":
		return p.parseWith()
	default:
		p.fail("expected one of contour, symbol, label, let, with, got %q", p.cur().Text)
		return nil
	}
}

func (p *parser) parseOptionalWith() *AssignmentList {
	if !p.keyword("with") {
		return nil
	}
	p.advance()
	return p.parseAssignmentList()
}

func (p *parser) parseContour() *Contour {
	start := p.expect(TokIdent).Pos // "contour"
	with := p.parseOptionalWith()
	rule := p.parseExpression()
	path := p.parsePath()
	p.expect(TokSemicolon)
	return &Contour{Pos: start, With: with, Rule: rule, Path: path}
}

func (p *parser) parseSymbol() *Symbol {
	start := p.expect(TokIdent).Pos // "symbol"
	with := p.parseOptionalWith()
	rule := p.parseExpression()
	pos := p.parsePosition()
	p.expect(TokSemicolon)
	return &Symbol{Pos: start, With: with, Rule: rule, Position: pos}
}

func (p *parser) parseLabel() *Label {
	start := p.expect(TokIdent).Pos // "label"
	with := p.parseOptionalWith()
	pos := p.parsePosition()
	rule := p.parseExpression()
	p.expect(TokSemicolon)
	return &Label{Pos: start, With: with, Position: pos, Rule: rule}
}

func (p *parser) parseLet() *Let {
	start := p.expect(TokIdent).Pos // "let"
	assigns := p.parseAssignmentList()
	p.expect(TokSemicolon)
	return &Let{Pos: start, Assignments: assigns}
}

func (p *parser) parseWith() *With {
	start := p.expect(TokIdent).Pos // "with"
	assigns := p.parseAssignmentList()
	p.expect(TokLBrace)
	body := p.parseStatementList(true)
	p.expect(TokRBrace)
	return &With{Pos: start, Assignments: assigns, Body: body}
}

// parseAssignmentList parses `assignment { "," assignment }` where each
// assignment is strictly `ident "=" expression` -- the form a with/let
// render-parameter list takes.
func (p *parser) parseAssignmentList() *AssignmentList {
	start := p.cur().Pos
	list := &AssignmentList{Pos: start}
	list.Assignments = append(list.Assignments, p.parseAssignment())
	for p.cur().Kind == TokComma {
		p.advance()
		list.Assignments = append(list.Assignments, p.parseAssignment())
	}
	return list
}

func (p *parser) parseAssignment() Assignment {
	tok := p.expect(TokIdent)
	p.expect(TokEquals)
	value := p.parseExpression()
	return Assignment{Pos: tok.Pos, Name: tok.Text, Value: value}
}

// parseArgumentList parses a procedure/function call's `[argument-list]`
// (spec §4.1: `argument := assignment | expression`), plus the literal
// SymbolSet flag syntax spec §3.2 shows (`:double:tight:closed`, a run
// of adjacent ":name" tokens folded into one Argument).
func (p *parser) parseArgumentList() *ArgumentList {
	start := p.cur().Pos
	list := &ArgumentList{Pos: start}
	list.Arguments = append(list.Arguments, p.parseArgument())
	for p.cur().Kind == TokComma {
		p.advance()
		list.Arguments = append(list.Arguments, p.parseArgument())
	}
	return list
}

func (p *parser) parseArgument() Argument {
	if p.cur().Kind == TokSymbol {
		return p.parseSymbolArgument()
	}
	if p.cur().Kind == TokIdent && p.peek(1).Kind == TokEquals {
		tok := p.advance()
		p.advance() // "="
		value := p.parseExpression()
		return Argument{Pos: tok.Pos, Name: tok.Text, Value: value}
	}
	expr := p.parseExpression()
	return Argument{Pos: exprPos(expr), Value: expr}
}

func (p *parser) parseSymbolArgument() Argument {
	start := p.cur().Pos
	var names []string
	for p.cur().Kind == TokSymbol {
		names = append(names, p.advance().Text)
	}
	return Argument{Pos: start, Symbols: names}
}

// parseExpression parses spec §4.1's `expression := unit-number-sum |
// range | number | quoted+ | function | ident`. The distance, range and
// bare-number alternatives share a prefix (a signed run of numbers and
// unit-numbers), so they are disambiguated after parsing that run
// rather than by lookahead.
func (p *parser) parseExpression() Expression {
	switch p.cur().Kind {
	case TokNumber, TokUnitNumber, TokPlus, TokMinus:
		return p.parseNumericExpression()
	case TokQuoted:
		return p.parseText()
	case TokIdent:
		return p.parseIdentExpression()
	default:
		p.fail("expected an expression, got %s", p.cur().Kind)
		return nil
	}
}

func (p *parser) parseNumericExpression() Expression {
	d := p.parseDistance()
	if len(d.Terms) == 1 && d.Terms[0].Unit == "" {
		lo := d.Terms[0].Sign * d.Terms[0].Value
		if p.cur().Kind == TokArrow {
			p.advance()
			hi := p.expect(TokNumber)
			return &RangeExpr{Pos: d.Pos, Lo: lo, Hi: hi.Number}
		}
		return &NumberExpr{Pos: d.Pos, Value: lo}
	}
	return d
}

// parseDistance parses a unit-number-sum: a signed unit-number (or bare
// dimensionless number) followed by zero or more "+"/"-" joined terms.
func (p *parser) parseDistance() *DistanceExpr {
	start := p.cur().Pos
	d := &DistanceExpr{Pos: start}
	d.Terms = append(d.Terms, p.parseSignedTerm())
	for p.cur().Kind == TokPlus || p.cur().Kind == TokMinus {
		d.Terms = append(d.Terms, p.parseSignedTerm())
	}
	return d
}

func (p *parser) parseSignedTerm() UnitNumber {
	sign := 1.0
	switch p.cur().Kind {
	case TokPlus:
		p.advance()
	case TokMinus:
		sign = -1
		p.advance()
	}
	tok := p.cur()
	var term UnitNumber
	switch tok.Kind {
	case TokNumber:
		p.advance()
		term = UnitNumber{Pos: tok.Pos, Value: tok.Number}
	case TokUnitNumber:
		p.advance()
		term = UnitNumber{Pos: tok.Pos, Value: tok.Number, Unit: tok.Unit}
	default:
		p.fail("expected a number, got %s", tok.Kind)
	}
	term.Sign = sign
	return term
}

func (p *parser) parseText() *TextExpr {
	start := p.cur().Pos
	var b strings.Builder
	for p.cur().Kind == TokQuoted {
		b.WriteString(p.cur().Text)
		p.advance()
	}
	return &TextExpr{Pos: start, Value: b.String()}
}

func (p *parser) parseIdentExpression() Expression {
	tok := p.expect(TokIdent)
	if p.cur().Kind == TokLParen {
		return p.parseFunctionCall(tok)
	}
	return &VariableExpr{Pos: tok.Pos, Ident: tok.Text}
}

func (p *parser) parseFunctionCall(ident Token) *FunctionExpr {
	p.expect(TokLParen)
	var args *ArgumentList
	if p.cur().Kind != TokRParen {
		args = p.parseArgumentList()
	}
	p.expect(TokRParen)
	return &FunctionExpr{Pos: ident.Pos, Ident: ident.Text, Args: args}
}

// parsePath parses `segment { (".." | "--") segment }`.
func (p *parser) parsePath() Path {
	start := p.cur().Pos
	first := p.parseSegment()
	path := Path{Pos: start, First: first}
	for p.cur().Kind == TokDotDot || p.cur().Kind == TokDashDash {
		dashDash := p.cur().Kind == TokDashDash
		p.advance()
		path.Joins = append(path.Joins, PathJoin{DashDash: dashDash, Segment: p.parseSegment()})
	}
	return path
}

// parseSegment parses `expression ["[" location "," location "]"]
// [offset]`.
func (p *parser) parseSegment() Segment {
	start := p.cur().Pos
	pathExpr := p.parseExpression()
	seg := Segment{Pos: start, Path: pathExpr}
	if p.cur().Kind == TokLBracket {
		p.advance()
		from := p.parseLocation()
		p.expect(TokComma)
		to := p.parseLocation()
		p.expect(TokRBracket)
		seg.Start, seg.End = &from, &to
	}
	if p.cur().Kind == TokOffsetLeft || p.cur().Kind == TokOffsetRight {
		off := p.parseOffset()
		seg.Offset = &off
	}
	return seg
}

// parsePosition parses `expression "[" location "]" [offset]
// ["@" number]`.
func (p *parser) parsePosition() Position {
	start := p.cur().Pos
	pathExpr := p.parseExpression()
	p.expect(TokLBracket)
	at := p.parseLocation()
	p.expect(TokRBracket)
	pos := Position{Pos: start, Path: pathExpr, At: at}
	if p.cur().Kind == TokOffsetLeft || p.cur().Kind == TokOffsetRight {
		off := p.parseOffset()
		pos.Offset = &off
	}
	if p.cur().Kind == TokAt {
		atTok := p.advance()
		num := p.expect(TokNumber)
		pos.Rotation = &Direction{Pos: atTok.Pos, Degrees: num.Number}
	}
	return pos
}

// parseLocation parses `ident [("+"|"-") unit-number-sum]`.
func (p *parser) parseLocation() Location {
	tok := p.expect(TokIdent)
	loc := Location{Pos: tok.Pos, Node: tok.Text}
	switch p.cur().Kind {
	case TokPlus:
		p.advance()
		loc.Sign = 1
		d := p.parseDistance()
		loc.Offset = d
	case TokMinus:
		p.advance()
		loc.Sign = -1
		d := p.parseDistance()
		loc.Offset = d
	}
	return loc
}

// parseOffset parses `("<<"|">>") unit-number-sum`.
func (p *parser) parseOffset() Offset {
	tok := p.advance() // "<<" or ">>"
	d := p.parseDistance()
	return Offset{Pos: tok.Pos, Left: tok.Kind == TokOffsetLeft, Value: *d}
}

// exprPos extracts an Expression's source position regardless of its
// concrete variant.
func exprPos(e Expression) Pos {
	return e.exprPos()
}
