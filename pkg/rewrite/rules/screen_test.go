package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/rewrite"
)

func TestScreenMapRule_ANSI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		stmt string
		want string
	}{
		{name: "clear screen", stmt: "PRINT CHR$(147)", want: "PRINT \"\x1b[2J\x1b[H\""},
		{name: "lower case call", stmt: "PRINT chr$( 19 );", want: "PRINT \"\x1b[H\";"},
		{name: "several", stmt: `A$=CHR$(28)+"X"+CHR$(5)`, want: "A$=\"\x1b[31m\"+\"X\"+\"\x1b[37m\""},
		{name: "inside string untouched", stmt: `PRINT "CHR$(147)"`},
		{name: "unmapped", stmt: "PRINT CHR$(14)"},
		{name: "printable", stmt: "PRINT CHR$(65)"},
	}

	rule := NewScreenMapRule()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			outcome := applyRule(t, rule, nil, rewrite.State{}, tt.stmt)
			if tt.want == "" {
				assert.False(t, outcome.Matched)
				return
			}
			assert.Equal(t, tt.want, joined(outcome))
			assert.Empty(t, outcome.State.Helpers())
		})
	}
}

func TestScreenMapRule_Helpers(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.ScreenProfile = config.ScreenANSIHelpers

	outcome := applyRule(t, NewScreenMapRule(), cfg, rewrite.State{}, `PRINT CHR$(147);CHR$(28);CHR$(147)`)
	require.True(t, outcome.Matched)
	assert.Equal(t, "PRINT CLS$;COL_RED$;CLS$", joined(outcome))
	assert.Equal(t, []string{"CLS$", "COL_RED$"}, outcome.State.Helpers())
}

func TestScreenMapRule_Enabled(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.True(t, NewScreenMapRule().Enabled(cfg))

	cfg.ScreenProfile = config.ScreenNone
	assert.False(t, NewScreenMapRule().Enabled(cfg))
}
