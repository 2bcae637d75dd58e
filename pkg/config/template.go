package config

import (
	"bytes"
	"fmt"
	"strings"
)

// TemplateHeader is the comment block written at the top of generated files.
const TemplateHeader = `# sidconv configuration
# C64 BASIC to RC2014 MS BASIC converter.`

// GenerateTemplate creates a commented configuration file holding the
// defaults. With full set every option is written out; otherwise optional
// rewrites are left commented.
func GenerateTemplate(full bool) []byte {
	def := NewConfig()
	comment := "# "
	if full {
		comment = ""
	}

	var buf bytes.Buffer
	buf.WriteString(TemplateHeader + "\n\n")

	fmt.Fprintf(&buf, "# SID card ports (register select and data).\nreg: %d\ndat: %d\n\n", def.Reg, def.Dat)

	buf.WriteString("# Screen profile for PETSCII CHR$ codes: none, ansi, ansi-helpers\n")
	fmt.Fprintf(&buf, "screen_profile: %s\n\n", def.ScreenProfile)

	buf.WriteString("# Unmapped PETSCII control codes: leave, strip, warn (warn is reserved)\n")
	fmt.Fprintf(&buf, "unknown_petscii: %s\n\n", def.UnknownPETSCII)

	buf.WriteString("# Header placement when the program already uses line 0: error, merge\n")
	fmt.Fprintf(&buf, "header_fallback: %s\n\n", def.HeaderFallback)

	buf.WriteString("# Report SID register offsets outside 0-24.\n")
	fmt.Fprintf(&buf, "%swarn_out_of_range: true\n\n", comment)

	buf.WriteString("# Multiply the bound of simple delay loops (0 disables).\n")
	fmt.Fprintf(&buf, "%sscale_for: 4\n", comment)
	fmt.Fprintf(&buf, "%sscale_for_vars: [%s]\n\n", comment, strings.Join(def.ScaleForVars, ", "))

	buf.WriteString("# Define helper variables (CLS$, HOME$, ...) in the header.\n")
	fmt.Fprintf(&buf, "%sinject_ansi_helpers: true\n\n", comment)

	buf.WriteString("# Rewrite GET X$ into X$=INKEY$.\n")
	fmt.Fprintf(&buf, "%smap_get_to_inkey: true\n\n", comment)

	buf.WriteString("# Write port numbers directly into OUT statements.\n")
	fmt.Fprintf(&buf, "%sinline_ports: false\n\n", comment)

	buf.WriteString("# Backups of output files that get overwritten.\n")
	fmt.Fprintf(&buf, "backups:\n  enabled: %t\n  mode: %s\n", def.Backups.Enabled, def.Backups.Mode)

	return buf.Bytes()
}
