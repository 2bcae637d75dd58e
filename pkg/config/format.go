package config

import (
	"fmt"
	"strings"
)

// RuleFormat controls how rule identifiers appear in reports and in
// "sidconv rules".
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "sid-poke"
	RuleFormatID       RuleFormat = "id"       // "SC002"
	RuleFormatCombined RuleFormat = "combined" // "SC002/sid-poke"
)

// RuleFormats returns the accepted rule formats, default first.
func RuleFormats() []RuleFormat {
	return []RuleFormat{RuleFormatName, RuleFormatID, RuleFormatCombined}
}

// Valid reports whether f is one of RuleFormats.
func (f RuleFormat) Valid() bool {
	switch f {
	case RuleFormatName, RuleFormatID, RuleFormatCombined:
		return true
	}
	return false
}

// ParseRuleFormat reads a --rule-format value. Case is ignored.
func ParseRuleFormat(s string) (RuleFormat, error) {
	f := RuleFormat(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		names := make([]string, 0, len(RuleFormats()))
		for _, known := range RuleFormats() {
			names = append(names, string(known))
		}
		return "", fmt.Errorf("invalid rule format %q; must be one of: %s", s, strings.Join(names, ", "))
	}
	return f, nil
}

// FormatRuleID renders a rewrite rule as "SC002", "sid-poke" or
// "SC002/sid-poke". Rules without a name always show their ID, and an
// unknown format shows the name.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	switch {
	case ruleName == "", format == RuleFormatID:
		return ruleID
	case format == RuleFormatCombined:
		return ruleID + "/" + ruleName
	default:
		return ruleName
	}
}
