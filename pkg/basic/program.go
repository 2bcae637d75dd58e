package basic

import "strings"

// Program is a parsed program listing.
type Program struct {
	// Lines holds the numbered lines in source order.
	Lines []Line

	// CRLF is true when the source used CRLF line endings.
	CRLF bool
}

// ParseProgram parses a whole listing. Blank lines are skipped; the first
// line that cannot be parsed aborts with a *ParseError.
func ParseProgram(src []byte) (*Program, error) {
	text := string(src)
	prog := &Program{CRLF: strings.Contains(text, "\r\n")}

	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		line, err := ParseLine(i+1, raw)
		if err != nil {
			return nil, err
		}
		prog.Lines = append(prog.Lines, line)
	}

	return prog, nil
}

// FirstNumber returns the smallest line number in the program.
// It returns false for an empty program.
func (p *Program) FirstNumber() (int, bool) {
	if len(p.Lines) == 0 {
		return 0, false
	}
	lowest := p.Lines[0].Number
	for _, l := range p.Lines[1:] {
		lowest = min(lowest, l.Number)
	}
	return lowest, true
}

// Newline returns the line terminator the program was read with.
func (p *Program) Newline() string {
	if p.CRLF {
		return "\r\n"
	}
	return "\n"
}

// Format renders lines with the given terminator after every line.
func Format(lines []Line, newline string) []byte {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.String())
		b.WriteString(newline)
	}
	return []byte(b.String())
}
