package types_test

import (
	"errors"
	"testing"

	"concatd/pkg/types"

	"github.com/stretchr/testify/assert"
)

func TestResultSummary(t *testing.T) {
	t.Run("completed to file", func(t *testing.T) {
		r := types.Result{
			Phase:        types.PhaseCompleted,
			OutputPath:   "/tmp/out.txt",
			FilesWritten: 3,
			Words:        42,
			Chars:        256,
		}
		assert.Equal(t, "Concatenated 3 files into /tmp/out.txt (42 words, 256 characters)", r.Summary())
	})

	t.Run("completed to clipboard", func(t *testing.T) {
		r := types.Result{Phase: types.PhaseCompleted, FilesWritten: 2, Words: 10, Chars: 55}
		assert.Equal(t, "Copied 2 files to the clipboard (10 words, 55 characters)", r.Summary())
	})

	t.Run("cancelled", func(t *testing.T) {
		r := types.Result{Phase: types.PhaseCancelled, FilesWritten: 1}
		assert.Equal(t, "Cancelled after 1 files", r.Summary())
	})

	t.Run("failed", func(t *testing.T) {
		r := types.Result{Phase: types.PhaseFailed, Err: errors.New("boom")}
		assert.Equal(t, "Failed: boom", r.Summary())
	})
}

func TestWarningString(t *testing.T) {
	assert.Equal(t, "skipped /a: no longer exists",
		types.Warning{Path: "/a", Kind: types.WarnMissing}.String())
	assert.Equal(t, "skipped /b: not a text file",
		types.Warning{Path: "/b", Kind: types.WarnNotText}.String())
	assert.Equal(t, "skipped /c: unreadable (denied)",
		types.Warning{Path: "/c", Kind: types.WarnUnreadable, Err: errors.New("denied")}.String())
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 0, types.Progress{}.Percent())
	assert.Equal(t, 50, types.Progress{Completed: 1, Total: 2}.Percent())
	assert.Equal(t, 100, types.Progress{Completed: 4, Total: 4}.Percent())
}

func TestPhase(t *testing.T) {
	assert.Equal(t, "Running", types.PhaseRunning.String())
	assert.Equal(t, "Completed", types.PhaseCompleted.String())

	assert.False(t, types.PhaseIdle.Terminal())
	assert.False(t, types.PhaseRunning.Terminal())
	assert.True(t, types.PhaseCompleted.Terminal())
	assert.True(t, types.PhaseFailed.Terminal())
	assert.True(t, types.PhaseCancelled.Terminal())
}
