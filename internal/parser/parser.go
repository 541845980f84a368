package parser

import (
	"slices"

	"playground/internal/ast"
	"playground/internal/diag"
	"playground/internal/lexer"
	"playground/internal/source"
	"playground/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Result - итог разбора одного файла. Tokens нужны token-проходам анализатора.
type Result struct {
	File   ast.FileID
	Tokens []token.Token
	Errors uint
}

// Parser - состояние парсера на один файл
type Parser struct {
	tokens   []token.Token
	pos      int
	arenas   *ast.Builder
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	// после Invalid-токена лексер уже сообщил об ошибке; каскадные ошибки глушим
	afterInvalid bool
	depth        int  // текущая глубина рекурсии, см. enter
	tooDeepSeen  bool // о переполнении вложенности сообщаем один раз на файл
}

// ParseFile токенизирует file и строит AST в arenas.
// Ошибки лексера и парсера уходят в opts.Reporter в порядке появления.
func ParseFile(
	fs *source.FileSet,
	file *source.File,
	arenas *ast.Builder,
	opts Options,
) Result {
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: countingReporter{opts: &opts}})
	p := Parser{
		tokens:   tokens,
		arenas:   arenas,
		fs:       fs,
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
	}

	body := p.parseProgram()
	end := uint32(len(file.Content))
	id := arenas.NewFile(source.Span{File: file.ID, Start: 0, End: end}, body)
	if p.opts.CurrentErrors == 0 {
		// длинные цепочки `a + b + ...` собираются циклом, их высоту проверяем здесь
		if deep, ok := arenas.TooDeep(maxTreeHeight); ok {
			p.report(diag.SynNestingTooDeep, diag.SevError, arenas.Exprs.Get(deep).Span, msgTooDeep, nil)
		}
	}
	return Result{
		File:   id,
		Tokens: tokens,
		Errors: p.opts.CurrentErrors,
	}
}

// countingReporter пропускает ошибки лексера через общий счётчик парсера.
type countingReporter struct{ opts *Options }

func (r countingReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	enough := r.opts.Enough()
	if sev.IsError() {
		r.opts.CurrentErrors++
	}
	if r.opts.Reporter != nil && !enough {
		r.opts.Reporter.Report(code, sev, primary, msg, notes)
	}
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseProgram - тело программы как блок без фигурных скобок.
// Лишняя '}' на верхнем уровне репортится как "expected expression" и пропускается.
func (p *Parser) parseProgram() ast.ExprID {
	stmts, tail := p.parseBlockBody(token.EOF)
	sp := source.Span{File: p.peek().Span.File, Start: 0, End: p.peek().Span.End}
	return p.arenas.Exprs.NewBlock(sp, stmts, tail)
}
