// Package langdetect decides whether a file is a line-numbered BASIC
// listing. It uses go-enry's linguist data to recognize BASIC-family file
// extensions and vendored directories, then checks that the content starts
// with a line number.
package langdetect

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// LanguageBASIC is reported for line-numbered BASIC listings.
const LanguageBASIC = "BASIC"

// basicFamily lists the linguist languages that share BASIC extensions
// (".bas" is claimed by several dialects).
//
//nolint:gochecknoglobals // Read-only lookup table.
var basicFamily = []string{
	"BASIC",
	"B4X",
	"FreeBasic",
	"QuickBASIC",
	"VBA",
	"Visual Basic 6.0",
}

// listingExtensions are extensions linguist does not know that C64 tools
// commonly use for plain-text listings.
//
//nolint:gochecknoglobals // Read-only lookup table.
var listingExtensions = []string{".c64", ".bas64"}

// Languages returns the linguist languages associated with the file's
// extension.
func Languages(path string) []string {
	return enry.GetLanguagesByExtension(filepath.Base(path), nil, nil)
}

// IsBASICPath reports whether the file name carries a BASIC-family extension.
func IsBASICPath(path string) bool {
	if slices.Contains(listingExtensions, strings.ToLower(filepath.Ext(path))) {
		return true
	}
	for _, lang := range Languages(path) {
		if slices.Contains(basicFamily, lang) {
			return true
		}
	}
	return false
}

// IsVendored reports whether a directory path is a dependency or build
// output directory that batch conversion should not descend into.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path) + "/")
}

// IsListing reports whether content looks like a line-numbered listing: its
// first non-blank line starts with a decimal line number.
func IsListing(content []byte) bool {
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimLeft(line, " \t")
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		return line[0] >= '0' && line[0] <= '9'
	}
	return false
}

// Detect returns LanguageBASIC for line-numbered BASIC sources, the
// linguist guess for other files, or "text" when nothing matches.
func Detect(path string, content []byte) string {
	if IsBASICPath(path) && IsListing(content) {
		return LanguageBASIC
	}
	if lang, safe := enry.GetLanguageByExtension(path); safe && lang != "" {
		return lang
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}
	return "text"
}
