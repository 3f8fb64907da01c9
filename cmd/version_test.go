package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Output(t *testing.T) {
	cmd := newVersionCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	output := out.String()
	if strings.Contains(output, "version: unknown") {
		assert.Contains(t, output, "version: unknown")
		return
	}

	assert.Contains(t, output, "tool version")
	assert.Contains(t, output, "go version")
}

func TestColorVersion(t *testing.T) {
	originalNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = originalNoColor })

	tests := []struct {
		name    string
		version string
		want    string
	}{
		{"release", "v1.4.2", "v1.4.2"},
		{"pre-release", "v0.3.0-rc.1", "v0.3.0-rc.1"},
		{"devel", "(devel)", "(devel)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, colorVersion(tt.version))
		})
	}
}

func TestColorVersion_Colored(t *testing.T) {
	originalNoColor := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = originalNoColor })

	got := colorVersion("v1.4.2")

	assert.NotEqual(t, "v1.4.2", got)
	assert.Contains(t, got, "\x1b[")
	assert.Contains(t, got, "v1")
}
