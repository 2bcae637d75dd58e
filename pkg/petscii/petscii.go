// Package petscii holds the lookup data for translating C64 PETSCII screen
// control codes into ANSI terminal sequences.
package petscii

// Escape is the ANSI escape character.
const Escape = "\x1b"

// Carriage return is printable on both platforms and is never stripped.
const codeReturn = 13

// Mapping describes how one PETSCII control code is rendered on an ANSI
// terminal.
type Mapping struct {
	// Code is the PETSCII code passed to CHR$.
	Code int

	// Helper is the name of the string variable that holds Sequence when
	// helper variables are in use.
	Helper string

	// Sequence is the raw ANSI escape sequence.
	Sequence string

	// Definition is the BASIC expression that builds Sequence without
	// embedding raw escape bytes in the listing.
	Definition string

	// Description is a short human-readable name for the code.
	Description string
}

// mappings is ordered by code for deterministic listing.
//
//nolint:gochecknoglobals // Read-only lookup table.
var mappings = []Mapping{
	{5, "COL_WHITE$", Escape + "[37m", `CHR$(27)+"[37m"`, "white"},
	{17, "CUD$", Escape + "[B", `CHR$(27)+"[B"`, "cursor down"},
	{18, "COL_RESET$", Escape + "[0m", `CHR$(27)+"[0m"`, "reverse on (reset attributes)"},
	{19, "HOME$", Escape + "[H", `CHR$(27)+"[H"`, "home"},
	{28, "COL_RED$", Escape + "[31m", `CHR$(27)+"[31m"`, "red"},
	{29, "CUR$", Escape + "[C", `CHR$(27)+"[C"`, "cursor right"},
	{30, "COL_GREEN$", Escape + "[32m", `CHR$(27)+"[32m"`, "green"},
	{31, "COL_BLUE$", Escape + "[34m", `CHR$(27)+"[34m"`, "blue"},
	{144, "COL_BLACK$", Escape + "[30m", `CHR$(27)+"[30m"`, "black"},
	{145, "CUU$", Escape + "[A", `CHR$(27)+"[A"`, "cursor up"},
	{147, "CLS$", Escape + "[2J" + Escape + "[H", `CHR$(27)+"[2J"+CHR$(27)+"[H"`, "clear screen"},
	{157, "CUL$", Escape + "[D", `CHR$(27)+"[D"`, "cursor left"},
}

//nolint:gochecknoglobals // Derived read-only indexes.
var (
	byCode   = make(map[int]Mapping, len(mappings))
	byHelper = make(map[string]Mapping, len(mappings))
)

func init() {
	for _, m := range mappings {
		byCode[m.Code] = m
		byHelper[m.Helper] = m
	}
}

// Lookup returns the mapping for a PETSCII code.
func Lookup(code int) (Mapping, bool) {
	m, ok := byCode[code]
	return m, ok
}

// LookupHelper returns the mapping whose helper variable is name.
func LookupHelper(name string) (Mapping, bool) {
	m, ok := byHelper[name]
	return m, ok
}

// Mappings returns every mapping ordered by code.
func Mappings() []Mapping {
	return append([]Mapping(nil), mappings...)
}

// IsUnmappedControl reports whether code is a byte value that has no
// mapping and would not print as itself on an ASCII terminal.
func IsUnmappedControl(code int) bool {
	if code < 0 || code > 255 || code == codeReturn {
		return false
	}
	if _, ok := byCode[code]; ok {
		return false
	}
	return code < 32 || code > 126
}
