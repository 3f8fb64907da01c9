package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	domainmocks "termite.dev/pkg/termite/internal/domain/mocks"
)

// useMockWorkflow swaps the package workflow for a mock and keeps the log
// file out of the package directory.
func useMockWorkflow(t *testing.T) *domainmocks.MockWorkflow {
	t.Helper()

	t.Setenv("TERMITE_LOG_FILENAME", filepath.Join(t.TempDir(), "termite.log"))

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = originalWorkflow })

	return mockWorkflow
}

func newTestRootCmd(sub *cobra.Command) (*cobra.Command, *bytes.Buffer) {
	out := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.AddCommand(sub)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, out
}
