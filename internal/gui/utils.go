//go:build !nogui
// +build !nogui

package gui

import (
	"os"

	"concatd/internal/log"
)

// removePlaceholder deletes the empty file the save dialog pre-creates, but
// only when it is actually empty so an existing output is never clobbered.
func removePlaceholder(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() != 0 {
		return
	}
	if err := os.Remove(path); err != nil {
		log.Debugf("could not remove placeholder %s: %v", path, err)
	}
}
