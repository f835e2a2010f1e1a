package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModeFlag(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantMode   string
		wantParams map[string]interface{}
		wantErr    bool
	}{
		{name: "name only", input: "consecutive", wantMode: "consecutive"},
		{name: "trailing colon", input: "hierarchical2:", wantMode: "hierarchical2"},
		{
			name:       "int params",
			input:      "hierarchical:min_dist=2,max_dist=16",
			wantMode:   "hierarchical",
			wantParams: map[string]interface{}{"min_dist": 2, "max_dist": 16},
		},
		{
			name:       "bool and string params",
			input:      "hierarchical: include_mid_point = true , note=x",
			wantMode:   "hierarchical",
			wantParams: map[string]interface{}{"include_mid_point": true, "note": "x"},
		},
		{name: "empty name", input: ":min_dist=2", wantErr: true},
		{name: "missing equals", input: "hierarchical:min_dist", wantErr: true},
		{name: "empty key", input: "hierarchical:=2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := parseModeFlag(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, rc.Mode)
			assert.Equal(t, tt.wantParams, rc.Params)
		})
	}
}

func TestParseParamValue(t *testing.T) {
	assert.Equal(t, 4, parseParamValue("4"))
	assert.Equal(t, -1, parseParamValue("-1"))
	assert.Equal(t, false, parseParamValue("false"))
	assert.Equal(t, "2.5", parseParamValue("2.5"))
}

func TestParseWindow(t *testing.T) {
	lo, hi, err := parseWindow("10:20")
	require.NoError(t, err)
	assert.Equal(t, 10, lo)
	assert.Equal(t, 20, hi)

	lo, hi, err = parseWindow(" 3 : 3 ")
	require.NoError(t, err)
	assert.Equal(t, 3, lo)
	assert.Equal(t, 3, hi)

	for _, bad := range []string{"10", "a:5", "5:b", "9:2"} {
		_, _, err := parseWindow(bad)
		assert.Error(t, err, bad)
	}
}
