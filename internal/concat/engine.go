// Package concat implements the concatenation engine: it validates a
// session, resolves the selection through the walker, and streams the
// resolved files into one output, reporting progress as it goes.
package concat

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"concatd/internal/config"
	serr "concatd/internal/errors"
	"concatd/internal/log"
	"concatd/internal/scan"
	"concatd/pkg/types"

	"github.com/atotto/clipboard"
)

// Engine performs concatenation runs. One engine can serve many runs; each
// run gets its own session and touches no shared mutable state beyond the
// progress channel.
type Engine struct {
	cfg    *config.Config
	walker *scan.Walker
	events chan types.Progress
}

// NewWithConfig creates an engine wired to the given configuration.
func NewWithConfig(cfg *config.Config) (*Engine, error) {
	walker, err := scan.NewWalker(cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:    cfg,
		walker: walker,
		events: make(chan types.Progress, 16),
	}, nil
}

// Progress returns the channel progress events are pushed on. The channel is
// never closed; consumers stop draining once Run returns. Events are dropped
// rather than blocking the run when no one is listening.
func (e *Engine) Progress() <-chan types.Progress {
	return e.events
}

// Walker exposes the engine's walker so frontends can preview resolution.
func (e *Engine) Walker() *scan.Walker {
	return e.walker
}

// Run executes one concatenation run. It validates before reading anything,
// then appends each resolved file to the output in order. Cancellation is
// cooperative and checked between files, never mid-file. On failure or
// cancellation any partially written output is left in place and named in
// the result.
func (e *Engine) Run(ctx context.Context, session *types.Session) types.Result {
	result := types.Result{Phase: types.PhaseValidating}

	if session == nil || session.Selection == nil || session.Selection.Empty() {
		result.Phase = types.PhaseFailed
		result.Err = serr.NewValidationError("no files or folders selected", serr.SelectionEmpty)
		return result
	}

	outputPath := session.Output
	if !session.Clipboard {
		var err error
		outputPath, err = e.validateOutput(outputPath)
		if err != nil {
			result.Phase = types.PhaseFailed
			result.Err = err
			return result
		}
	}

	files, warnings, err := e.walker.Resolve(session.Selection)
	result.Warnings = warnings
	if err != nil {
		result.Phase = types.PhaseFailed
		result.Err = err
		return result
	}
	if len(files) == 0 {
		result.Phase = types.PhaseFailed
		result.Err = serr.NewValidationError("no text files found in the selection", serr.SelectionEmpty)
		return result
	}

	result.Phase = types.PhaseRunning
	log.Info("concatenating %d files", len(files))

	if session.Clipboard {
		return e.runToClipboard(ctx, session, files, result)
	}
	return e.runToFile(ctx, session, files, outputPath, result)
}

// runToFile streams the resolved files into the output file. The handle is
// closed on every exit path.
func (e *Engine) runToFile(ctx context.Context, session *types.Session, files []string, outputPath string, result types.Result) types.Result {
	out, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		result.Phase = types.PhaseFailed
		if os.IsPermission(err) {
			result.Err = serr.NewFileError("cannot write output file", outputPath, serr.PermissionDenied, err)
		} else {
			result.Err = serr.NewFileError("cannot create output file", outputPath, serr.WriteFailed, err)
		}
		return result
	}
	defer out.Close()

	result.OutputPath = outputPath
	w := bufio.NewWriter(out)

	res := e.writeAll(ctx, session, files, w, result)
	if res.Phase != types.PhaseCompleted {
		// Flush what we have so the partial output named in the result
		// matches what is on disk.
		_ = w.Flush()
		return res
	}

	if err := w.Flush(); err != nil {
		res.Phase = types.PhaseFailed
		res.Err = serr.NewFileError("failed writing output file", outputPath, serr.WriteFailed, err)
		return res
	}
	if err := out.Close(); err != nil {
		res.Phase = types.PhaseFailed
		res.Err = serr.NewFileError("failed closing output file", outputPath, serr.WriteFailed, err)
		return res
	}

	log.Info("wrote %s (%d files, %d bytes)", outputPath, res.FilesWritten, res.BytesWritten)
	return res
}

// runToClipboard builds the output in memory and puts it on the clipboard.
func (e *Engine) runToClipboard(ctx context.Context, session *types.Session, files []string, result types.Result) types.Result {
	var sb strings.Builder
	res := e.writeAll(ctx, session, files, &sb, result)
	if res.Phase != types.PhaseCompleted {
		return res
	}

	if err := clipboard.WriteAll(sb.String()); err != nil {
		res.Phase = types.PhaseFailed
		res.Err = serr.Wrap(err, "failed to copy to clipboard")
		return res
	}

	log.Info("copied %d files to clipboard (%d bytes)", res.FilesWritten, res.BytesWritten)
	return res
}

// stringWriter is the subset of writing both destinations support.
type stringWriter interface {
	WriteString(s string) (int, error)
}

// writeAll appends every file to w in order, emitting a progress event after
// each one. It returns with PhaseCompleted, PhaseFailed, or PhaseCancelled.
func (e *Engine) writeAll(ctx context.Context, session *types.Session, files []string, w stringWriter, result types.Result) types.Result {
	total := len(files)

	if e.cfg.Format.FileTree {
		preamble := "Output File Tree:\n" + BuildTree(files, session.Root) + "\nConcatenated Contents:\n"
		n, err := w.WriteString(preamble)
		result.BytesWritten += int64(n)
		if err != nil {
			result.Phase = types.PhaseFailed
			result.Err = serr.NewFileError("failed writing output", result.OutputPath, serr.WriteFailed, err)
			return result
		}
	}

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			log.Info("run cancelled after %d of %d files", i, total)
			result.Phase = types.PhaseCancelled
			return result
		}

		content, err := os.ReadFile(path)
		if err != nil {
			if e.cfg.Run.SkipUnreadable {
				log.Warnf("skipping unreadable file %s: %v", path, err)
				result.Warnings = append(result.Warnings, types.Warning{
					Path: path, Kind: types.WarnUnreadable, Err: err,
				})
				e.emit(types.Progress{Completed: i + 1, Total: total, Path: path})
				continue
			}
			result.Phase = types.PhaseFailed
			result.Err = serr.NewFileError("error reading file", path, serr.ReadFailed, err)
			return result
		}

		chunk := string(content)
		if e.cfg.Format.FileHeaders {
			chunk = fmt.Sprintf("=== %s ===\n%s\n\n", filepath.Base(path), chunk)
		}

		n, err := w.WriteString(chunk)
		result.BytesWritten += int64(n)
		if err != nil {
			result.Phase = types.PhaseFailed
			result.Err = serr.NewFileError("failed writing output", result.OutputPath, serr.WriteFailed, err)
			return result
		}

		result.FilesWritten++
		result.Words += len(strings.Fields(chunk))
		result.Chars += len(chunk)
		e.emit(types.Progress{Completed: i + 1, Total: total, Path: path})
		log.Debugf("appended %s (%d/%d)", path, i+1, total)
	}

	result.Phase = types.PhaseCompleted
	return result
}

// emit pushes a progress event without ever blocking the run.
func (e *Engine) emit(p types.Progress) {
	select {
	case e.events <- p:
	default:
		log.Debugf("progress channel full, dropped event %d/%d", p.Completed, p.Total)
	}
}

// validateOutput checks the output target before anything is read and
// resolves the collision policy, returning the final path to write.
func (e *Engine) validateOutput(path string) (string, error) {
	if path == "" {
		return "", serr.NewValidationError("no output file specified", serr.OutputPathInvalid)
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return "", serr.NewFileError("output directory does not exist", dir, serr.OutputPathInvalid, err)
	}
	if !info.IsDir() {
		return "", serr.NewFileError("output location is not a directory", dir, serr.OutputPathInvalid, nil)
	}

	// Probe for writability up front so permission failures surface before
	// any source file is read.
	probe, err := os.CreateTemp(dir, ".concatd-probe-*")
	if err != nil {
		return "", serr.NewFileError("output directory is not writable", dir, serr.PermissionDenied, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	if existing, err := os.Stat(path); err == nil {
		if existing.IsDir() {
			return "", serr.NewFileError("output path is a directory", path, serr.OutputPathInvalid, nil)
		}
		return e.resolveCollision(path)
	}

	return path, nil
}

// resolveCollision applies the configured strategy when the output file
// already exists.
func (e *Engine) resolveCollision(path string) (string, error) {
	switch e.cfg.Output.Collision {
	case config.CollisionOverwrite:
		log.Warnf("overwriting existing output file %s", path)
		return path, nil
	case config.CollisionSkip:
		return "", serr.NewFileError("output file already exists", path, serr.OutputPathInvalid, nil)
	case config.CollisionRename:
		return findUniqueName(path)
	default:
		return "", serr.Newf("unknown collision strategy: %s", e.cfg.Output.Collision)
	}
}

// findUniqueName finds an unused sibling name by adding a counter to the
// basename.
func findUniqueName(originalPath string) (string, error) {
	ext := filepath.Ext(originalPath)
	base := strings.TrimSuffix(originalPath, ext)

	for counter := 1; counter <= 1000; counter++ {
		newName := fmt.Sprintf("%s_(%d)%s", base, counter, ext)
		if _, err := os.Stat(newName); os.IsNotExist(err) {
			log.Info("output exists, writing to %s instead", newName)
			return newName, nil
		}
	}

	return "", serr.Newf("failed to find unique name for %s after 1000 attempts", originalPath)
}
