package rewrite

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/yaklabco/sidconv/pkg/basic"
	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/petscii"
)

// ErrNoHeaderSlot is returned when the program starts at line 0 and the
// header fallback is "error".
var ErrNoHeaderSlot = errors.New("no free line number for the header before line 0")

// headerGap is how far below the first program line the header is placed.
const headerGap = 5

// Register and data port variable names used by rewritten OUT statements.
const (
	RegVar = "REG"
	DatVar = "DAT"
)

// HeaderStatements returns the initialization statements for a program
// that ended the pass in state.
func HeaderStatements(cfg *config.Config, state State) []string {
	var stmts []string
	for _, name := range state.BaseVars() {
		stmts = append(stmts, name+"=0")
	}
	if !cfg.InlinePorts {
		stmts = append(stmts,
			RegVar+"="+strconv.Itoa(cfg.Reg),
			DatVar+"="+strconv.Itoa(cfg.Dat),
		)
	}
	if cfg.InjectANSIHelpers {
		for _, name := range state.Helpers() {
			if m, ok := petscii.LookupHelper(name); ok {
				stmts = append(stmts, name+"="+m.Definition)
			}
		}
	}
	return stmts
}

// HeaderNumber picks the header line number for a program whose lowest line
// number is first. It returns false when no number below first is free.
func HeaderNumber(first int) (int, bool) {
	if first <= 0 {
		return 0, false
	}
	return max(0, first-headerGap), true
}

// insertHeader splices the header into result.Lines.
func (e *Engine) insertHeader(prog *basic.Program, result *ProgramResult) error {
	stmts := HeaderStatements(e.Config, result.State)
	if len(stmts) == 0 {
		return nil
	}

	first, ok := prog.FirstNumber()
	if !ok {
		header := basic.NewLine(0, stmts...)
		result.Header = &header
		result.Lines = append(result.Lines, header)
		return nil
	}

	if number, ok := HeaderNumber(first); ok {
		header := basic.NewLine(number, stmts...)
		result.Header = &header
		result.Lines = append([]basic.Line{header}, result.Lines...)
		return nil
	}

	if e.Config.HeaderFallback != config.HeaderFallbackMerge {
		return fmt.Errorf("%w (set header_fallback: merge to prepend it to line 0)", ErrNoHeaderSlot)
	}

	for i, line := range result.Lines {
		if line.Number != first {
			continue
		}
		merged := line.Clone()
		prefix := make([]basic.Statement, len(stmts))
		for j, s := range stmts {
			prefix[j] = basic.Statement(s)
		}
		merged.Statements = append(prefix, merged.Statements...)
		if merged.Sep == "" {
			merged.Sep = " "
		}
		result.Lines[i] = merged
		result.Header = &merged
		result.HeaderMerged = true
		return nil
	}

	return nil
}
