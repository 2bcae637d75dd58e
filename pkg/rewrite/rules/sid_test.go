package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sidconv/pkg/config"
	"github.com/yaklabco/sidconv/pkg/rewrite"
)

func TestMatchSIDPoke(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		state      rewrite.State
		wantOK     bool
		wantOffset int
		wantValue  string
	}{
		{name: "literal base", text: "POKE 54272,15", wantOK: true, wantOffset: 0, wantValue: "15"},
		{name: "literal in window", text: "POKE 54296,15", wantOK: true, wantOffset: 24, wantValue: "15"},
		{name: "last window address", text: "POKE 54527,1", wantOK: true, wantOffset: 255, wantValue: "1"},
		{name: "past window", text: "POKE 54528,1"},
		{name: "below window", text: "POKE 53280,0"},
		{name: "literal sum", text: "POKE 54272+4,17", wantOK: true, wantOffset: 4, wantValue: "17"},
		{name: "literal sum with blanks", text: "POKE 54272 + 4 , 17", wantOK: true, wantOffset: 4, wantValue: "17"},
		{name: "literal sum past window", text: "POKE 54272+256,1"},
		{name: "wrong literal sum", text: "POKE 53248+4,1"},
		{name: "base var", text: "POKE B+1,0", state: sidBase(), wantOK: true, wantOffset: 1, wantValue: "0"},
		{name: "bare base var", text: "POKE B,0", state: sidBase(), wantOK: true, wantOffset: 0, wantValue: "0"},
		{name: "base var lower case", text: "poke b+5,A*2", state: sidBase(), wantOK: true, wantOffset: 5, wantValue: "A*2"},
		{name: "crunched", text: "POKEB+1,PEEK(2)", state: sidBase(), wantOK: true, wantOffset: 1, wantValue: "PEEK(2)"},
		{name: "unknown var", text: "POKE B+1,0"},
		{name: "variable offset", text: "POKE B+I,0", state: sidBase()},
		{name: "variable offset on literal", text: "POKE 54272+I,0"},
		{name: "offset first", text: "POKE 1+B,0", state: sidBase()},
		{name: "missing value", text: "POKE B+1,", state: sidBase()},
		{name: "missing comma", text: "POKE 54272"},
		{name: "not a poke", text: "PRINT 54272,1"},
		{name: "value with comma in call", text: "POKE 54272,MID(1,2)", wantOK: true, wantOffset: 0, wantValue: "MID(1,2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			poke, ok := MatchSIDPoke(tt.text, tt.state)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantOffset, poke.Offset)
			assert.Equal(t, tt.wantValue, poke.Value)
		})
	}
}

func TestSIDPokeRule(t *testing.T) {
	t.Parallel()

	outcome := applyRule(t, NewSIDPokeRule(), nil, sidBase(), " POKE B+24,15")
	require.True(t, outcome.Matched)
	assert.Equal(t, " OUT REG,24:OUT DAT,15", joined(outcome))
	assert.Empty(t, outcome.Warnings)
	assert.Equal(t, []string{"B"}, outcome.State.BaseVars())
}

func TestSIDPokeRule_InlinePorts(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.InlinePorts = true
	cfg.Reg = 100
	cfg.Dat = 101

	outcome := applyRule(t, NewSIDPokeRule(), cfg, rewrite.State{}, "POKE 54273,X")
	require.True(t, outcome.Matched)
	assert.Equal(t, "OUT 100,1:OUT 101,X", joined(outcome))
}

func TestSIDPokeRule_OutOfRangeWarning(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	outcome := applyRule(t, NewSIDPokeRule(), cfg, rewrite.State{}, "POKE 54272+25,1")
	require.True(t, outcome.Matched)
	assert.Empty(t, outcome.Warnings, "warnings are opt-in")

	cfg.WarnOutOfRange = true
	outcome = applyRule(t, NewSIDPokeRule(), cfg, rewrite.State{}, "POKE 54272+25,1")
	require.True(t, outcome.Matched)
	assert.Equal(t, "OUT REG,25:OUT DAT,1", joined(outcome), "warnings never change output")
	require.Len(t, outcome.Warnings, 1)
	assert.Equal(t, "SC002", outcome.Warnings[0].RuleID)
	assert.Equal(t, 10, outcome.Warnings[0].Line)
	assert.Contains(t, outcome.Warnings[0].Message, "25")

	outcome = applyRule(t, NewSIDPokeRule(), cfg, rewrite.State{}, "POKE 54272+24,1")
	assert.Empty(t, outcome.Warnings)
}
