package lexer

import (
	"strconv"
	"strings"

	"playground/internal/diag"
	"playground/internal/token"
)

// Поддержка: 0, 123, 1_000, 0b1010, 0xFF, 1.5, 1e-3, 1.0e+10.
// Неверные формы - репорт в opts.Reporter и токен Invalid на весь съеденный фрагмент.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
			switch b1 {
			case 'x', 'X':
				return lx.scanRadix(start, isHex, "hexadecimal")
			case 'b', 'B':
				return lx.scanRadix(start, func(b byte) bool { return b == '0' || b == '1' }, "binary")
			}
		}
	}

	kind := token.IntLit
	lx.eatDigits(isDec)

	// дробная часть только если после точки цифра
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.eatDigits(isDec)
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			lx.cursor.Reset(m)
			return lx.badNumber(start, "expected digits in exponent")
		}
		kind = token.FloatLit
		lx.eatDigits(isDec)
	}

	if lx.trailingIdentChars() {
		return lx.badNumber(start, "invalid suffix on numeric literal")
	}

	tok := lx.emit(kind, start)
	if tok.Text[len(tok.Text)-1] == '_' {
		return lx.badNumberFrom(tok, "numeric literal cannot end with '_'")
	}
	return lx.checkRange(tok)
}

func (lx *Lexer) scanRadix(start Mark, digit func(byte) bool, name string) token.Token {
	lx.cursor.Bump() // 0
	lx.cursor.Bump() // x/b
	n := lx.eatDigits(digit)
	if lx.trailingIdentChars() {
		return lx.badNumber(start, "invalid digit in "+name+" literal")
	}
	if n == 0 {
		return lx.badNumber(start, "expected "+name+" digits")
	}
	return lx.checkRange(lx.emit(token.IntLit, start))
}

// checkRange отсекает литералы, не влезающие в int64/float64.
func (lx *Lexer) checkRange(tok token.Token) token.Token {
	var err error
	if tok.Kind == token.FloatLit {
		_, err = ParseFloat(tok.Text)
	} else {
		_, err = ParseInt(tok.Text)
	}
	if err != nil {
		return lx.badNumberFrom(tok, "numeric literal out of range")
	}
	return tok
}

// ParseInt decodes the text of an IntLit token (decimal, 0x, 0b, '_' separators).
func ParseInt(text string) (int64, error) {
	digits := strings.ReplaceAll(text, "_", "")
	base := 10
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X':
			base, digits = 16, digits[2:]
		case 'b', 'B':
			base, digits = 2, digits[2:]
		}
	}
	return strconv.ParseInt(digits, base, 64)
}

// ParseFloat decodes the text of a FloatLit token.
func ParseFloat(text string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
}

// eatDigits съедает цифры и '_' и возвращает число именно цифр.
func (lx *Lexer) eatDigits(digit func(byte) bool) int {
	n := 0
	for {
		b := lx.cursor.Peek()
		switch {
		case digit(b):
			n++
		case b == '_':
		default:
			return n
		}
		lx.cursor.Bump()
	}
}

// trailingIdentChars съедает буквы/цифры, прилипшие к литералу (12abc, 0x1G).
func (lx *Lexer) trailingIdentChars() bool {
	if !isIdentContinueByte(lx.cursor.Peek()) {
		return false
	}
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return true
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	lx.trailingIdentChars()
	return lx.badNumberFrom(lx.emit(token.Invalid, start), msg)
}

func (lx *Lexer) badNumberFrom(tok token.Token, msg string) token.Token {
	tok.Kind = token.Invalid
	lx.errLex(diag.LexBadNumber, tok.Span, msg)
	return tok
}
