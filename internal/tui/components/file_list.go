package components

import (
	"fmt"
	"strings"

	"concatd/internal/tui/common"
	"concatd/internal/tui/styles"
	"concatd/pkg/types"

	"github.com/dustin/go-humanize"
)

// FileList renders the entries of the current directory with checkbox marks
// for selected paths and a movable cursor.
type FileList struct {
	entries    []common.FileEntry
	selection  *types.Selection
	cursor     int
	currentDir string
}

func NewFileList(selection *types.Selection) *FileList {
	return &FileList{selection: selection}
}

// SetEntries replaces the listing, clamping the cursor.
func (fl *FileList) SetEntries(dir string, entries []common.FileEntry) {
	fl.currentDir = dir
	fl.entries = entries
	if fl.cursor >= len(entries) {
		fl.cursor = 0
	}
}

// MoveCursor moves the cursor by delta, staying in bounds.
func (fl *FileList) MoveCursor(delta int) {
	newPos := fl.cursor + delta
	if newPos >= 0 && newPos < len(fl.entries) {
		fl.cursor = newPos
	}
}

// Cursor returns the entry under the cursor, or nil for an empty listing.
func (fl *FileList) Cursor() *common.FileEntry {
	if fl.cursor < 0 || fl.cursor >= len(fl.entries) {
		return nil
	}
	return &fl.entries[fl.cursor]
}

// ToggleCursor flips the selection state of the entry under the cursor.
func (fl *FileList) ToggleCursor() {
	entry := fl.Cursor()
	if entry == nil {
		return
	}
	if fl.selection.Contains(entry.Path) {
		fl.selection.Remove(entry.Path)
	} else {
		fl.selection.Add(entry.Path)
	}
}

func (fl *FileList) View() string {
	var s strings.Builder

	s.WriteString(styles.Theme.Help.Render("Directory: "+fl.currentDir) + "\n\n")

	if len(fl.entries) == 0 {
		s.WriteString("No files found\n")
		return s.String()
	}

	for i, entry := range fl.entries {
		style := styles.Theme.Unselected
		mark := "[ ]"
		if fl.selection.Contains(entry.Path) {
			style = styles.Theme.Selected
			mark = "[x]"
		}

		cursor := " "
		if i == fl.cursor {
			cursor = ">"
		}

		name := entry.Name
		details := ""
		if entry.IsDir {
			name += "/"
		} else {
			details = fmt.Sprintf("  %8s", humanize.Bytes(uint64(entry.Size)))
		}

		s.WriteString(fmt.Sprintf("%s %s %s%s\n",
			cursor,
			mark,
			style.Render(name),
			style.Render(details)))
	}

	return s.String()
}
