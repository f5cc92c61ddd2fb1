package concat_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"concatd/internal/concat"
	"concatd/internal/config"
	serr "concatd/internal/errors"
	"concatd/pkg/testutils"
	"concatd/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, cfg *config.Config) *concat.Engine {
	t.Helper()
	engine, err := concat.NewWithConfig(cfg)
	require.NoError(t, err)
	return engine
}

func runSession(t *testing.T, cfg *config.Config, session *types.Session) types.Result {
	t.Helper()
	engine := newEngine(t, cfg)
	return engine.Run(context.Background(), session)
}

func TestRunConcatenatesInSelectionOrder(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, tmpDir, map[string]string{
		"fileA.txt":    "AAA\n",
		"sub/b1.txt":   "B1\n",
		"sub/b2.txt":   "B2\n",
		"fileC.txt":    "CCC\n",
		"sub/skip.jpg": "\xff\xd8",
	})

	session := types.NewSession(tmpDir)
	session.Selection.Add(filepath.Join(tmpDir, "fileA.txt"))
	session.Selection.Add(filepath.Join(tmpDir, "sub"))
	session.Selection.Add(filepath.Join(tmpDir, "fileC.txt"))
	session.Output = filepath.Join(tmpDir, "out.txt")

	result := runSession(t, config.NewTestConfig(), session)
	require.Equal(t, types.PhaseCompleted, result.Phase, "run should complete: %v", result.Err)
	assert.Equal(t, 4, result.FilesWritten)

	assert.Equal(t, "AAA\nB1\nB2\nCCC\n", testutils.ReadOutput(t, session.Output))
}

func TestRunWithHeadersAndTree(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, tmpDir, map[string]string{
		"hello.txt": "hello",
	})

	cfg := config.NewTestConfig()
	cfg.Format.FileHeaders = true
	cfg.Format.FileTree = true

	session := types.NewSession(tmpDir)
	session.Selection.Add(filepath.Join(tmpDir, "hello.txt"))
	session.Output = filepath.Join(tmpDir, "out.md")

	result := runSession(t, cfg, session)
	require.Equal(t, types.PhaseCompleted, result.Phase, "run should complete: %v", result.Err)

	want := "Output File Tree:\n" +
		"- hello.txt\n" +
		"\nConcatenated Contents:\n" +
		"=== hello.txt ===\nhello\n\n"
	assert.Equal(t, want, testutils.ReadOutput(t, session.Output))
}

func TestRunCountsWordsAndChars(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, tmpDir, map[string]string{
		"words.txt": "one two three",
	})

	session := types.NewSession(tmpDir)
	session.Selection.Add(filepath.Join(tmpDir, "words.txt"))
	session.Output = filepath.Join(tmpDir, "out.txt")

	result := runSession(t, config.NewTestConfig(), session)
	require.Equal(t, types.PhaseCompleted, result.Phase)
	assert.Equal(t, 3, result.Words)
	assert.Equal(t, len("one two three"), result.Chars)
	assert.Equal(t, int64(len("one two three")), result.BytesWritten)
}

func TestRunEmptySelection(t *testing.T) {
	tmpDir := t.TempDir()
	session := types.NewSession(tmpDir)
	session.Output = filepath.Join(tmpDir, "out.txt")

	result := runSession(t, config.NewTestConfig(), session)
	assert.Equal(t, types.PhaseFailed, result.Phase)
	assert.True(t, serr.IsSelectionEmpty(result.Err))

	_, err := os.Stat(session.Output)
	assert.ErrorIs(t, err, os.ErrNotExist, "no output file should be created")
}

func TestRunSelectionWithNoTextFiles(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "empty"), 0755))

	session := types.NewSession(tmpDir)
	session.Selection.Add(filepath.Join(tmpDir, "empty"))
	session.Output = filepath.Join(tmpDir, "out.txt")

	result := runSession(t, config.NewTestConfig(), session)
	assert.Equal(t, types.PhaseFailed, result.Phase)
	assert.True(t, serr.IsSelectionEmpty(result.Err))
}

func TestRunMissingOutputDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, tmpDir, map[string]string{"a.txt": "a"})

	session := types.NewSession(tmpDir)
	session.Selection.Add(filepath.Join(tmpDir, "a.txt"))
	session.Output = filepath.Join(tmpDir, "no", "such", "dir", "out.txt")

	result := runSession(t, config.NewTestConfig(), session)
	assert.Equal(t, types.PhaseFailed, result.Phase)
	assert.True(t, serr.IsOutputPathInvalid(result.Err))
}

func TestRunEmptyOutputPath(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, tmpDir, map[string]string{"a.txt": "a"})

	session := types.NewSession(tmpDir)
	session.Selection.Add(filepath.Join(tmpDir, "a.txt"))

	result := runSession(t, config.NewTestConfig(), session)
	assert.Equal(t, types.PhaseFailed, result.Phase)
	assert.True(t, serr.IsOutputPathInvalid(result.Err))
}

func TestRunUnwritableOutputDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits not enforced here")
	}

	tmpDir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, tmpDir, map[string]string{"a.txt": "a"})

	outDir := filepath.Join(tmpDir, "readonly")
	require.NoError(t, os.Mkdir(outDir, 0555))
	t.Cleanup(func() { _ = os.Chmod(outDir, 0755) })

	session := types.NewSession(tmpDir)
	session.Selection.Add(filepath.Join(tmpDir, "a.txt"))
	session.Output = filepath.Join(outDir, "out.txt")

	result := runSession(t, config.NewTestConfig(), session)
	assert.Equal(t, types.PhaseFailed, result.Phase)
	assert.True(t, serr.IsPermissionDenied(result.Err), "unwritable output fails before any file is read")
}

func TestRunCollisionRename(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, tmpDir, map[string]string{
		"a.txt":   "new content",
		"out.txt": "old content",
	})

	cfg := config.NewTestConfig()
	cfg.Output.Collision = config.CollisionRename

	session := types.NewSession(tmpDir)
	session.Selection.Add(filepath.Join(tmpDir, "a.txt"))
	session.Output = filepath.Join(tmpDir, "out.txt")

	result := runSession(t, cfg, session)
	require.Equal(t, types.PhaseCompleted, result.Phase, "run should complete: %v", result.Err)

	assert.Equal(t, filepath.Join(tmpDir, "out_(1).txt"), result.OutputPath)
	assert.Equal(t, "old content", testutils.ReadOutput(t, filepath.Join(tmpDir, "out.txt")))
	assert.Equal(t, "new content", testutils.ReadOutput(t, result.OutputPath))
}

func TestRunCollisionOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, tmpDir, map[string]string{
		"a.txt":   "new content",
		"out.txt": "old content",
	})

	cfg := config.NewTestConfig()
	cfg.Output.Collision = config.CollisionOverwrite

	session := types.NewSession(tmpDir)
	session.Selection.Add(filepath.Join(tmpDir, "a.txt"))
	session.Output = filepath.Join(tmpDir, "out.txt")

	result := runSession(t, cfg, session)
	require.Equal(t, types.PhaseCompleted, result.Phase)
	assert.Equal(t, session.Output, result.OutputPath)
	assert.Equal(t, "new content", testutils.ReadOutput(t, session.Output))
}

func TestRunCollisionSkip(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, tmpDir, map[string]string{
		"a.txt":   "new content",
		"out.txt": "old content",
	})

	cfg := config.NewTestConfig()
	cfg.Output.Collision = config.CollisionSkip

	session := types.NewSession(tmpDir)
	session.Selection.Add(filepath.Join(tmpDir, "a.txt"))
	session.Output = filepath.Join(tmpDir, "out.txt")

	result := runSession(t, cfg, session)
	assert.Equal(t, types.PhaseFailed, result.Phase)
	assert.True(t, serr.IsOutputPathInvalid(result.Err))
	assert.Equal(t, "old content", testutils.ReadOutput(t, session.Output))
}

func TestRunCancellation(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, tmpDir, map[string]string{
		"a.txt": "a",
		"b.txt": "b",
	})

	session := types.NewSession(tmpDir)
	session.Selection.Add(tmpDir)
	session.Output = filepath.Join(tmpDir, "out.log")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := newEngine(t, config.NewTestConfig())
	result := engine.Run(ctx, session)

	assert.Equal(t, types.PhaseCancelled, result.Phase)
	assert.Equal(t, 0, result.FilesWritten)
	assert.Equal(t, session.Output, result.OutputPath, "partial output is named even when cancelled")
}

func TestRunReadFailureAborts(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits not enforced here")
	}

	tmpDir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, tmpDir, map[string]string{
		"a.txt": "readable",
		"b.txt": "locked",
		"c.txt": "never reached",
	})
	require.NoError(t, os.Chmod(filepath.Join(tmpDir, "b.txt"), 0000))

	session := types.NewSession(tmpDir)
	session.Selection.Add(tmpDir)
	session.Output = filepath.Join(tmpDir, "out.log")

	result := runSession(t, config.NewTestConfig(), session)
	assert.Equal(t, types.PhaseFailed, result.Phase)
	assert.True(t, serr.IsReadFailed(result.Err))

	// Partial output is flushed and left in place
	assert.Equal(t, 1, result.FilesWritten)
	assert.Equal(t, "readable", testutils.ReadOutput(t, session.Output))
}

func TestRunSkipUnreadable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits not enforced here")
	}

	tmpDir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, tmpDir, map[string]string{
		"a.txt": "first",
		"b.txt": "locked",
		"c.txt": "last",
	})
	require.NoError(t, os.Chmod(filepath.Join(tmpDir, "b.txt"), 0000))

	cfg := config.NewTestConfig()
	cfg.Run.SkipUnreadable = true

	session := types.NewSession(tmpDir)
	session.Selection.Add(tmpDir)
	session.Output = filepath.Join(tmpDir, "out.log")

	result := runSession(t, cfg, session)
	require.Equal(t, types.PhaseCompleted, result.Phase, "run should complete: %v", result.Err)
	assert.Equal(t, 2, result.FilesWritten)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, types.WarnUnreadable, result.Warnings[0].Kind)
	assert.Equal(t, "firstlast", testutils.ReadOutput(t, session.Output))
}

func TestRunEmitsProgress(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, tmpDir, map[string]string{
		"a.txt": "a",
		"b.txt": "b",
		"c.txt": "c",
	})

	session := types.NewSession(tmpDir)
	session.Selection.Add(tmpDir)
	session.Output = filepath.Join(tmpDir, "out.log")

	engine := newEngine(t, config.NewTestConfig())
	result := engine.Run(context.Background(), session)
	require.Equal(t, types.PhaseCompleted, result.Phase)

	var events []types.Progress
	for len(engine.Progress()) > 0 {
		events = append(events, <-engine.Progress())
	}

	require.Len(t, events, 3)
	for i, event := range events {
		assert.Equal(t, i+1, event.Completed)
		assert.Equal(t, 3, event.Total)
	}
	assert.Equal(t, 100, events[2].Percent())
}

func TestRunIsRepeatable(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, tmpDir, map[string]string{"a.txt": "same"})

	session := types.NewSession(tmpDir)
	session.Selection.Add(filepath.Join(tmpDir, "a.txt"))
	session.Output = filepath.Join(tmpDir, "out.log")

	engine := newEngine(t, config.NewTestConfig())

	first := engine.Run(context.Background(), session)
	require.Equal(t, types.PhaseCompleted, first.Phase)
	firstContent := testutils.ReadOutput(t, session.Output)

	second := engine.Run(context.Background(), session)
	require.Equal(t, types.PhaseCompleted, second.Phase)
	assert.Equal(t, firstContent, testutils.ReadOutput(t, session.Output))
	assert.Equal(t, first.FilesWritten, second.FilesWritten)
}
