package basic

import "strings"

// Statement is the exact text of one colon-separated statement, including
// whatever whitespace surrounded it in the source.
type Statement string

// Trimmed returns the statement without surrounding whitespace.
func (s Statement) Trimmed() string {
	return strings.TrimSpace(string(s))
}

// Replace returns text wrapped in the statement's original leading and
// trailing whitespace.
func (s Statement) Replace(text string) Statement {
	raw := string(s)
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Statement(text)
	}
	lead := raw[:strings.Index(raw, trimmed)]
	trail := raw[len(lead)+len(trimmed):]
	return Statement(lead + text + trail)
}

// Expand replaces the statement with several. The first keeps the original
// leading whitespace and the last keeps the trailing whitespace.
func (s Statement) Expand(texts ...string) []Statement {
	if len(texts) == 0 {
		return nil
	}
	raw := string(s)
	trimmed := strings.TrimSpace(raw)
	lead, trail := "", ""
	if trimmed != "" {
		lead = raw[:strings.Index(raw, trimmed)]
		trail = raw[len(lead)+len(trimmed):]
	}

	out := make([]Statement, len(texts))
	for i, t := range texts {
		out[i] = Statement(t)
	}
	out[0] = Statement(lead) + out[0]
	out[len(out)-1] += Statement(trail)
	return out
}

// IsRemark reports whether the statement is a REM comment.
func (s Statement) IsRemark() bool {
	return hasKeyword(s.Trimmed(), "REM")
}

// SplitStatements splits a line body on colons that are outside string
// literals. A REM statement runs to the end of the line, colons included.
// An empty body yields no statements.
func SplitStatements(body string) ([]Statement, error) {
	if body == "" {
		return nil, nil
	}

	var out []Statement
	start := 0
	inString := false

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '"':
			inString = !inString
		case inString:
		case c == ':':
			out = append(out, Statement(body[start:i]))
			start = i + 1
		case i == start || isStatementStart(body, start, i):
			if hasKeyword(body[i:], "REM") {
				out = append(out, Statement(body[start:]))
				return out, nil
			}
		}
	}

	if inString {
		return nil, ErrUnterminatedString
	}

	return append(out, Statement(body[start:])), nil
}

// isStatementStart reports whether position i is the first non-blank
// character of the statement that begins at start.
func isStatementStart(body string, start, i int) bool {
	return strings.TrimLeft(body[start:i], " \t") == ""
}

// hasKeyword reports whether s begins with keyword, ignoring case.
// BASIC keywords need no trailing delimiter ("REMARK", "POKEB+1,0").
func hasKeyword(s, keyword string) bool {
	return len(s) >= len(keyword) && strings.EqualFold(s[:len(keyword)], keyword)
}

// HasKeyword reports whether the trimmed statement begins with keyword,
// ignoring case.
func HasKeyword(stmt, keyword string) bool {
	return hasKeyword(strings.TrimSpace(stmt), keyword)
}

// SplitArgs splits text on the first comma at parenthesis depth zero that
// is outside a string literal. It returns false when there is no such comma.
func SplitArgs(text string) (string, string, bool) {
	depth := 0
	inString := false
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == '"':
			inString = !inString
		case inString:
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			return text[:i], text[i+1:], true
		}
	}
	return "", "", false
}
