//go:build !nogui
// +build !nogui

package gui

import (
	"concatd/internal/config"
)

// StartGUI launches the graphical interface and blocks until it exits.
func StartGUI(cfg *config.Config) error {
	app := NewApp(cfg)
	app.Run()
	return nil
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}
