package token

var keywords = map[string]Kind{
	"let":   KwLet,
	"if":    KwIf,
	"else":  KwElse,
	"while": KwWhile,
	"true":  KwTrue,
	"false": KwFalse,
	"null":  KwNull,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
