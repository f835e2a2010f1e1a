package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeNames(t *testing.T) {
	assert.Equal(t, []string{"exhaustive", "consecutive", "hierarchical", "hierarchical2"}, ModeNames())
	assert.Equal(t, []Mode{Exhaustive, Consecutive, Hierarchical, HierarchicalWithMidpoint}, Modes())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  Mode
	}{
		{"exhaustive", Exhaustive},
		{"Exhaustive", Exhaustive},
		{"exhausted", Exhaustive},
		{"consecutive", Consecutive},
		{"CONSECUTIVE", Consecutive},
		{"hierarchical", Hierarchical},
		{"  hierarchical ", Hierarchical},
		{"hierarchical2", HierarchicalWithMidpoint},
		{"Hierarchical_With_Midpoint", HierarchicalWithMidpoint},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMode_Unknown(t *testing.T) {
	for _, name := range []string{"", "dense", "hierarchical3", "consecutive2"} {
		_, err := ParseMode(name)
		assert.ErrorIs(t, err, ErrUnknownMode, "name %q", name)
	}

	_, err := ParseMode("dense")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exhaustive, consecutive, hierarchical, hierarchical2")
}

func TestParseMode_RoundTrip(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "exhaustive", Exhaustive.String())
	assert.Equal(t, "hierarchical2", HierarchicalWithMidpoint.String())
	assert.Equal(t, "mode(9)", Mode(9).String())
}

func TestMode_Valid(t *testing.T) {
	for _, m := range Modes() {
		assert.True(t, m.Valid(), m.String())
	}
	assert.False(t, Mode(-1).Valid())
	assert.False(t, Mode(4).Valid())
}

func TestMode_ParamKeys(t *testing.T) {
	assert.Empty(t, Exhaustive.ParamKeys())
	assert.Empty(t, Consecutive.ParamKeys())
	assert.Equal(t, []string{ParamMinDist, ParamMaxDist, ParamIncludeMidPoint}, Hierarchical.ParamKeys())
	assert.Equal(t, []string{ParamMinDist, ParamMaxDist}, HierarchicalWithMidpoint.ParamKeys())

	// callers get a copy
	keys := Hierarchical.ParamKeys()
	keys[0] = "changed"
	assert.Equal(t, ParamMinDist, Hierarchical.ParamKeys()[0])
}
