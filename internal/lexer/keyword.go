package lexer

// keywords maps reserved lowercase words to their token kinds.
// Every keyword also matches the identifier class, so lookup happens after
// an identifier has been scanned.
var keywords = map[string]TokenKind{
	"component": TokKwComponent,
	"enum":      TokKwEnum,
	"false":     TokKwFalse,
	"true":      TokKwTrue,
}

// LookupKeyword returns the keyword token kind for text, if any.
func LookupKeyword(text string) (TokenKind, bool) {
	kind, ok := keywords[text]
	return kind, ok
}
