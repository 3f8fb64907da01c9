package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"termite.dev/pkg/termite/internal/domain"
	m "termite.dev/pkg/termite/internal/model"
)

func TestFixCmd_RunsFix(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)
	cmd, _ := newTestRootCmd(newFixCmd())

	mockWorkflow.On("Fix", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return len(args.Paths) == 1 &&
			args.Paths[0] == m.Path("./src") &&
			!args.Full &&
			args.Quiet
	})).Return(nil)

	cmd.SetArgs([]string{"--quiet", "fix", "./src"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestFixCmd_ReturnsWorkflowError(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)
	cmd, _ := newTestRootCmd(newFixCmd())

	mockWorkflow.On("Fix", mock.Anything, mock.Anything).Return(domain.ErrNoSources)

	cmd.SetArgs([]string{"fix"})
	err := cmd.Execute()

	require.ErrorIs(t, err, domain.ErrNoSources)
	assert.Equal(t, 1, exitCode(err))
	assert.False(t, errors.Is(err, domain.ErrPartialFailure))
}

func TestNewFixCmd(t *testing.T) {
	cmd := newFixCmd()

	assert.Equal(t, "fix [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, fixLongDescription, cmd.Long)
}
