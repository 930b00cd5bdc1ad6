package pyext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCFlags(t *testing.T) {
	testCases := []struct {
		name        string
		includeDirs []string
		macros      []Macro
		expected    string
	}{
		{
			name:     "empty",
			expected: "",
		},
		{
			name:        "include dirs only",
			includeDirs: []string{"/usr/include/python3.8"},
			expected:    "-I/usr/include/python3.8",
		},
		{
			name:        "dirs and macros in declaration order",
			includeDirs: []string{"a", "b"},
			macros:      []Macro{Define("FOO"), DefineValue("BAR", "1")},
			expected:    "-Ia -Ib -DFOO -DBAR=1",
		},
		{
			name:     "macro order is preserved, not sorted",
			macros:   []Macro{DefineValue("ZED", "2"), Define("ALPHA")},
			expected: "-DZED=2 -DALPHA",
		},
		{
			name:     "empty macro value still renders assignment",
			macros:   []Macro{DefineValue("EMPTY", "")},
			expected: "-DEMPTY=",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CFlags(tc.includeDirs, tc.macros))
		})
	}
}

func TestMacroConstructors(t *testing.T) {
	bare := Define("FOO")
	assert.Nil(t, bare.Value)

	valued := DefineValue("BAR", "1")
	if assert.NotNil(t, valued.Value) {
		assert.Equal(t, "1", *valued.Value)
	}
}
