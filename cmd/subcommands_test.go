package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/sjv/internal/domain"
	m "github.com/mouse-blink/sjv/internal/model"
)

func TestRunCmd(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd := newTestRootCmd(newRunCmd())

	mockWorkflow.On("Verify", mock.MatchedBy(func(args domain.VerifyArgs) bool {
		return args.Threads == 4 && args.Changed && len(args.Paths) == 1 && args.Paths[0] == "src/..."
	})).Return(nil)

	cmd.SetArgs([]string{"run", "-p", "4", "-c", "src/..."})
	require.NoError(t, cmd.Execute())
}

func TestListCmd(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd := newTestRootCmd(newListCmd())

	mockWorkflow.On("List", mock.MatchedBy(func(args domain.ListArgs) bool {
		return len(args.Paths) == 1 && args.Paths[0] == "prog.sjava" &&
			assert.ObjectsAreEqual([]string{"tmp"}, args.Exclude)
	})).Return(nil)

	cmd.SetArgs([]string{"list", "-x", "tmp", "prog.sjava"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_UsesRootOutputFlagByDefault(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd := newTestRootCmd(newViewCmd())

	mockWorkflow.On("View", domain.ViewArgs{Reports: m.Path(".sjv-reports")}).Return(nil)

	cmd.SetArgs([]string{"view"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_RootOutputFlagIsPassedThrough(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd := newTestRootCmd(newViewCmd())

	mockWorkflow.On("View", domain.ViewArgs{Reports: m.Path("./reports-dir")}).Return(nil)

	cmd.SetArgs([]string{"--output", "./reports-dir", "view"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_PositionalArgsAreRejected(t *testing.T) {
	withMockWorkflow(t)
	cmd := newTestRootCmd(newViewCmd())

	cmd.SetArgs([]string{"view", "extra"})
	err := cmd.Execute()

	require.Error(t, err)
}

func TestWatchCmd(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd := newTestRootCmd(newWatchCmd())

	mockWorkflow.On("Watch", mock.Anything, mock.MatchedBy(func(args domain.WatchArgs) bool {
		return args.Debounce == 250*time.Millisecond &&
			args.Threads == 2 &&
			len(args.Paths) == 1 && args.Paths[0] == "src/..."
	})).Return(nil)

	cmd.SetArgs([]string{"watch", "--debounce", "250ms", "-p", "2", "src/..."})
	require.NoError(t, cmd.Execute())
}
