package basic

import (
	"strconv"
	"strings"
)

// TokenKind classifies a span of statement text.
type TokenKind int

const (
	// TokenText is any run of text with no special meaning to the rewriter.
	TokenText TokenKind = iota

	// TokenSpace is a run of blanks.
	TokenSpace

	// TokenString is a double-quoted string literal, quotes included.
	TokenString

	// TokenChr is a CHR$(<integer literal>) call.
	TokenChr

	// TokenOp is one of the separators "+", ";" or ",".
	TokenOp
)

// Token is a span of statement text. Joining the Text of every token of a
// statement reproduces the statement exactly.
type Token struct {
	Kind TokenKind
	Text string

	// Code is the decoded argument of a TokenChr.
	Code int
}

// IsOp reports whether the token is the given operator.
func (t Token) IsOp(op string) bool {
	return t.Kind == TokenOp && t.Text == op
}

// Tokenize splits a statement into tokens. It never fails: text it does
// not understand becomes TokenText, and an unterminated string runs to the
// end of the statement. Like the C64 tokenizer, CHR$ is recognized wherever
// it appears outside a string, even with no space before it ("PRINTCHR$(5)").
func Tokenize(stmt string) []Token {
	var tokens []Token
	textStart := -1

	flushText := func(end int) {
		if textStart >= 0 {
			tokens = append(tokens, Token{Kind: TokenText, Text: stmt[textStart:end]})
			textStart = -1
		}
	}

	for i := 0; i < len(stmt); {
		c := stmt[i]
		switch {
		case c == '"':
			flushText(i)
			end := strings.IndexByte(stmt[i+1:], '"')
			if end < 0 {
				end = len(stmt)
			} else {
				end += i + 2
			}
			tokens = append(tokens, Token{Kind: TokenString, Text: stmt[i:end]})
			i = end

		case c == ' ' || c == '\t':
			flushText(i)
			end := i
			for end < len(stmt) && (stmt[end] == ' ' || stmt[end] == '\t') {
				end++
			}
			tokens = append(tokens, Token{Kind: TokenSpace, Text: stmt[i:end]})
			i = end

		case c == '+' || c == ';' || c == ',':
			flushText(i)
			tokens = append(tokens, Token{Kind: TokenOp, Text: stmt[i : i+1]})
			i++

		default:
			if n, code, ok := scanChr(stmt[i:]); ok {
				flushText(i)
				tokens = append(tokens, Token{Kind: TokenChr, Text: stmt[i : i+n], Code: code})
				i += n
				continue
			}
			if textStart < 0 {
				textStart = i
			}
			i++
		}
	}
	flushText(len(stmt))

	return tokens
}

// scanChr matches "CHR$ ( digits )" at the start of s, case-insensitively,
// allowing blanks inside the parentheses. It returns the match length and
// the decoded code.
func scanChr(s string) (int, int, bool) {
	if !hasKeyword(s, "CHR$") {
		return 0, 0, false
	}
	i := len("CHR$")
	i = skipBlanks(s, i)
	if i >= len(s) || s[i] != '(' {
		return 0, 0, false
	}
	i = skipBlanks(s, i+1)
	digitsStart := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digitsStart {
		return 0, 0, false
	}
	code, err := strconv.Atoi(s[digitsStart:i])
	if err != nil {
		return 0, 0, false
	}
	i = skipBlanks(s, i)
	if i >= len(s) || s[i] != ')' {
		return 0, 0, false
	}
	return i + 1, code, true
}

func skipBlanks(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

// Join concatenates token texts.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}
