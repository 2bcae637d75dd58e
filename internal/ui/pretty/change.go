package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/sidconv/pkg/analysis"
)

// Plural returns "<n> <word>" with an "s" added unless n is 1.
func Plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}

// Printable replaces control characters with \xNN escapes so converted
// lines holding raw ANSI sequences do not drive the terminal.
func Printable(s string) string {
	var builder strings.Builder
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x20 || c == 0x7f {
			fmt.Fprintf(&builder, "\\x%02x", c)
		} else {
			builder.WriteByte(c)
		}
	}
	return builder.String()
}

// FormatLocation renders "path:line", with the source line index dimmed
// when it differs from the BASIC line number.
func (s *Styles) FormatLocation(path string, line, source int) string {
	loc := s.FilePath.Render(path) + s.Location.Render(":"+strconv.Itoa(line))
	if source > 0 && source != line {
		loc += s.Dim.Render(fmt.Sprintf(" (source line %d)", source))
	}
	return loc
}

// FormatChange formats one rewritten line as a location line followed by
// the removed and added text.
func (s *Styles) FormatChange(path string, change analysis.ChangeEntry) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "  %s  %s\n",
		s.FormatLocation(path, change.Line, change.Source),
		s.RuleID.Render("("+strings.Join(change.Rules, ", ")+")"),
	)
	builder.WriteString("    " + s.Before.Render("- "+Printable(change.Before)) + "\n")
	builder.WriteString("    " + s.After.Render("+ "+Printable(change.After)) + "\n")

	return builder.String()
}

// FormatWarning formats a single warning.
func (s *Styles) FormatWarning(warning analysis.WarningEntry) string {
	return fmt.Sprintf("  %s  %s  %s  %s\n",
		s.FormatLocation(warning.FilePath, warning.Line, warning.Source),
		s.Warning.Render("warning"),
		s.Message.Render(warning.Message),
		s.RuleID.Render("("+warning.Rule+")"),
	)
}

// FormatHeader formats the initialization line added to a program.
func (s *Styles) FormatHeader(path string, header analysis.HeaderEntry) string {
	label := "header"
	if header.Merged {
		label = "header merged"
	}
	return fmt.Sprintf("  %s  %s\n    %s\n",
		s.FormatLocation(path, header.Line, 0),
		s.Info.Render(label),
		s.Header.Render("+ "+Printable(header.Text)),
	)
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, changes, warnings int) string {
	header := s.FilePath.Render(path)

	var counts []string
	if changes > 0 {
		counts = append(counts, Plural(changes, "change"))
	}
	if warnings > 0 {
		counts = append(counts, Plural(warnings, "warning"))
	}
	if len(counts) > 0 {
		header += s.Dim.Render(" (" + strings.Join(counts, ", ") + ")")
	}
	return header
}

// FormatFileError formats a file that could not be converted.
func (s *Styles) FormatFileError(path, message string) string {
	return fmt.Sprintf("%s: %s\n",
		s.FilePath.Render(path),
		s.Error.Render("error: "+message),
	)
}

// FormatStatus returns a styled file status.
func (s *Styles) FormatStatus(status analysis.FileStatus) string {
	switch status {
	case analysis.StatusConverted:
		return s.Success.Render(string(status))
	case analysis.StatusError:
		return s.Error.Render(string(status))
	case analysis.StatusSkipped:
		return s.Dim.Render(string(status))
	default:
		return string(status)
	}
}
