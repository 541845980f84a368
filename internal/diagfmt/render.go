package diagfmt

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"playground/internal/diag"
	"playground/internal/source"
)

// Стили принудительно включены: решение о цвете принимает Mode, а не терминал.
var (
	styleError   = forced(color.FgRed, color.Bold)
	styleWarning = forced(color.FgYellow, color.Bold)
	styleInfo    = forced(color.FgCyan, color.Bold)
	styleCode    = forced(color.Bold)
	styleGutter  = forced(color.FgBlue)
	styleNote    = forced(color.FgCyan)
	styleSummary = forced(color.Bold)
)

func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

type painter struct{ on bool }

func (p painter) paint(c *color.Color, s string) string {
	if !p.on || s == "" {
		return s
	}
	return c.Sprint(s)
}

func severityStyle(sev diag.Severity) *color.Color {
	switch {
	case sev.IsError():
		return styleError
	case sev == diag.SevInfo:
		return styleInfo
	}
	return styleWarning
}

// Render formats items in emission order, one "[span] severity CODE: message"
// line each, followed by a source excerpt and notes, and ends with the tally
// summary line. Rendering never fails; in ModeHTML a broken ANSI stream
// degrades to HTMLFallback.
func Render(items []diag.Diagnostic, fs *source.FileSet, mode Mode) string {
	text := render(items, fs, painter{on: mode != ModePlain})
	if mode != ModeHTML {
		return text
	}
	out, err := ANSIToHTML(text)
	if err != nil {
		return HTMLFallback
	}
	return out
}

// RenderHostError renders a failure of the analyzer host itself (not a
// finding about the program) as a one-message report.
func RenderHostError(err error, mode Mode) string {
	d := diag.NewError(diag.SemaAnalyzerFailed, source.NoSpan, "analyzer failed: "+err.Error())
	return Render([]diag.Diagnostic{d}, nil, mode)
}

func render(items []diag.Diagnostic, fs *source.FileSet, p painter) string {
	var b strings.Builder
	for i := range items {
		writeDiagnostic(&b, &items[i], fs, p)
	}
	tally, _ := diag.Aggregate(items)
	b.WriteString(p.paint(styleSummary, tally.Summary()))
	return b.String()
}

func writeDiagnostic(b *strings.Builder, d *diag.Diagnostic, fs *source.FileSet, p painter) {
	sev := severityStyle(d.Severity)
	fmt.Fprintf(b, "[%s] %s %s: %s\n",
		spanLabel(d.Primary, fs),
		p.paint(sev, d.Severity.Label()),
		p.paint(styleCode, d.Code.ID()),
		oneLine(d.Message),
	)
	writeExcerpt(b, d.Primary, fs, p, sev)
	for _, n := range d.Notes {
		fmt.Fprintf(b, "  %s [%s] %s\n", p.paint(styleNote, "= note:"), spanLabel(n.Span, fs), oneLine(n.Msg))
	}
}

func spanLabel(sp source.Span, fs *source.FileSet) string {
	if fs == nil || !sp.IsValid() {
		return "-"
	}
	return formatSpan(sp, fs)
}

// formatSpan форматирует span как "startLine:startCol-endLine:endCol".
// Без FileSet печатаются байтовые смещения.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// writeExcerpt печатает строку, на которой начинается span, и подчёркивание
// ^~~~ под ним. Многострочный span подчёркивается до конца первой строки.
func writeExcerpt(b *strings.Builder, sp source.Span, fs *source.FileSet, p painter, sev *color.Color) {
	if fs == nil || !sp.IsValid() {
		return
	}
	start, end, line := fs.Excerpt(sp)
	from := clamp(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = clamp(int(end.Col)-1, len(line))
	}
	if to < from {
		to = from
	}

	num := fmt.Sprintf("%d", start.Line)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(b, " %s %s\n", p.paint(styleGutter, num+" |"), line)

	width := max(runewidth.StringWidth(line[from:to]), 1)
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(b, " %s %s%s\n", p.paint(styleGutter, pad+" |"), indentFor(line[:from]), p.paint(sev, marker))
}

// indentFor повторяет табы из префикса, чтобы каретка встала под нужную колонку.
func indentFor(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func clamp(v, hi int) int {
	return min(max(v, 0), hi)
}

func oneLine(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", " ")
	return strings.ReplaceAll(msg, "\n", " ")
}
