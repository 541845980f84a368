package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"playground/internal/diag"
	"playground/internal/token"
)

// scanString сканирует "..." с escape-последовательностями \n \t \r \0 \\ \".
// Перевод строки или EOF до закрывающей кавычки - ошибка, привязанная к открывающей кавычке.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая "
	quote := lx.cursor.SpanFrom(start)

	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			lx.errLex(diag.LexUnterminatedString, quote, "unterminated string literal")
			return lx.emit(token.Invalid, start)
		}
		if lx.cursor.Peek() >= utf8RuneSelf {
			// внутри литерала битый UTF-8 - та же ошибка, что и вне его
			at := lx.cursor.Mark()
			if r, sz := lx.peekRune(); r == utf8.RuneError && sz <= 1 {
				lx.cursor.Bump()
				lx.errLex(diag.LexUnknownChar, lx.cursor.SpanFrom(at), "unknown character "+quoteRune(r))
			} else {
				lx.bumpRune()
			}
			continue
		}
		b := lx.cursor.Bump()
		switch b {
		case '"':
			return lx.emit(token.StringLit, start)
		case '\\':
			esc := lx.cursor.Mark() - 1
			if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
				continue // сообщим как незакрытую строку
			}
			c := lx.cursor.Peek()
			lx.bumpRune()
			if _, ok := unescapeByte(c); !ok {
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(esc), fmt.Sprintf("unknown escape sequence '\\%c'", c))
			}
		}
	}
}

func unescapeByte(c byte) (byte, bool) {
	switch c {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	}
	return 0, false
}

// Unquote decodes the text of a StringLit token. Unknown escapes are kept verbatim;
// the lexer has already reported them.
func Unquote(text string) string {
	text = strings.TrimPrefix(text, `"`)
	text = strings.TrimSuffix(text, `"`)
	if strings.IndexByte(text, '\\') < 0 {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\\' || i+1 == len(text) {
			sb.WriteByte(c)
			continue
		}
		if d, ok := unescapeByte(text[i+1]); ok {
			sb.WriteByte(d)
			i++
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
