//go:build !nogui
// +build !nogui

package gui

import (
	"context"
	"fmt"
	"strings"

	"concatd/internal/concat"
	"concatd/internal/log"
	"concatd/pkg/types"
)

// generate validates the window state, then runs the engine on a background
// goroutine while the interface thread renders progress events.
func (a *App) generate() {
	if a.root == "" {
		a.ShowError("No Root Directory", fmt.Errorf("please select a root directory first"))
		return
	}
	if a.selection.Empty() {
		a.ShowError("No Selection", fmt.Errorf("please select at least one file or folder to concatenate"))
		return
	}
	if !a.cfg.Output.Clipboard && a.outputEntry.Text == "" {
		a.ShowError("No Output File", fmt.Errorf("please specify an output file location"))
		return
	}

	// Snapshot the window state into a session so the run is unaffected by
	// later clicks.
	session := types.NewSession(a.root)
	for _, path := range a.selection.Paths() {
		session.Selection.Add(path)
	}
	session.Output = a.outputEntry.Text
	session.Clipboard = a.cfg.Output.Clipboard

	// Each run gets a fresh engine so preference changes apply.
	engine, err := concat.NewWithConfig(a.cfg)
	if err != nil {
		a.ShowError("Configuration", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancelRun = cancel
	a.setRunning(true)
	a.progressBar.SetValue(0)
	a.statusLabel.SetText("Status: Starting...")

	done := make(chan types.Result, 1)
	go func() {
		done <- engine.Run(ctx, session)
	}()

	go func() {
		defer cancel()
		for {
			select {
			case p := <-engine.Progress():
				a.progressBar.SetValue(float64(p.Percent()) / 100)
				a.statusLabel.SetText(fmt.Sprintf("Status: Processing (%d/%d)", p.Completed, p.Total))
			case result := <-done:
				a.finishRun(result)
				return
			}
		}
	}()
}

// finishRun renders the terminal result back into the window.
func (a *App) finishRun(result types.Result) {
	a.cancelRun = nil
	a.setRunning(false)

	switch result.Phase {
	case types.PhaseCompleted:
		a.progressBar.SetValue(1)
		a.statusLabel.SetText("Status: Completed")
		message := result.Summary()
		if len(result.Warnings) > 0 {
			message += "\n\nWarnings:\n" + formatWarnings(result.Warnings)
		}
		a.ShowInfo(message)
	case types.PhaseCancelled:
		a.statusLabel.SetText("Status: Cancelled")
		a.ShowInfo(result.Summary())
	default:
		a.statusLabel.SetText("Status: Error occurred")
		log.Errorf("run failed: %v", result.Err)
		a.ShowError("Concatenation Failed", result.Err)
	}
}

// setRunning toggles the form between idle and running states.
func (a *App) setRunning(running bool) {
	if running {
		a.generateBtn.Disable()
		a.cancelBtn.Enable()
		a.tree.Refresh()
	} else {
		a.generateBtn.Enable()
		a.cancelBtn.Disable()
	}
}

func formatWarnings(warnings []types.Warning) string {
	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, w.String())
	}
	return strings.Join(lines, "\n")
}
