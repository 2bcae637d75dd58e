package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_IsImmutable(t *testing.T) {
	t.Parallel()

	empty := State{}
	one := empty.WithBase("b", 54272)
	two := one.WithBase("S", 54272)

	_, ok := empty.KnownBase("B")
	assert.False(t, ok)

	addr, ok := one.KnownBase("B")
	assert.True(t, ok)
	assert.Equal(t, 54272, addr)
	assert.Equal(t, []string{"B"}, one.BaseVars())
	assert.Equal(t, []string{"B", "S"}, two.BaseVars())
}

func TestState_WithBaseKeepsOrder(t *testing.T) {
	t.Parallel()

	s := State{}.WithBase("A", 1).WithBase("B", 2).WithBase("A", 3)

	assert.Equal(t, []string{"A", "B"}, s.BaseVars())
	addr, _ := s.KnownBase("a")
	assert.Equal(t, 3, addr)
}

func TestState_Helpers(t *testing.T) {
	t.Parallel()

	base := State{}.WithHelper("CLS$")
	a := base.WithHelper("CUD$")
	b := base.WithHelper("HOME$").WithHelper("CLS$")

	assert.Equal(t, []string{"CLS$"}, base.Helpers())
	assert.Equal(t, []string{"CLS$", "CUD$"}, a.Helpers())
	assert.Equal(t, []string{"CLS$", "HOME$"}, b.Helpers())
}
