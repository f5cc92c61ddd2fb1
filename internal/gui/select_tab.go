//go:build !nogui
// +build !nogui

package gui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"concatd/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// createSelectTab builds the root chooser and the checkbox tree of the
// root's contents.
func (a *App) createSelectTab() fyne.CanvasObject {
	a.rootLabel = widget.NewLabel("No root directory selected")
	a.rootLabel.Wrapping = fyne.TextWrapWord

	selectRootButton := widget.NewButton("Select Root Directory", func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			a.setRoot(uri.Path())
		}, a.mainWindow)
	})

	a.tree = widget.NewTree(
		func(uid widget.TreeNodeID) []widget.TreeNodeID {
			return a.childPaths(uid)
		},
		func(uid widget.TreeNodeID) bool {
			if uid == "" {
				return true
			}
			info, err := os.Stat(uid)
			return err == nil && info.IsDir()
		},
		func(branch bool) fyne.CanvasObject {
			check := widget.NewCheck("", nil)
			label := widget.NewLabel("template")
			return container.NewHBox(check, label)
		},
		func(uid widget.TreeNodeID, branch bool, node fyne.CanvasObject) {
			box := node.(*fyne.Container)
			check := box.Objects[0].(*widget.Check)
			label := box.Objects[1].(*widget.Label)

			label.SetText(filepath.Base(uid))

			// Update the checkbox state without firing its callback. A node
			// under a checked folder shows as checked too, matching what the
			// walker will include.
			check.OnChanged = nil
			check.Checked = a.inheritsSelection(uid)
			check.Refresh()
			check.OnChanged = func(checked bool) {
				a.toggleSelection(uid, checked)
			}
		},
	)

	helpLabel := widget.NewLabel("Check files and folders to include. Checked folders include all text files beneath them.")
	helpLabel.Wrapping = fyne.TextWrapWord

	return container.NewBorder(
		container.NewVBox(
			container.NewBorder(nil, nil, selectRootButton, nil, a.rootLabel),
			helpLabel,
		),
		nil,
		nil,
		nil,
		a.tree,
	)
}

// setRoot switches the session to a new root directory and resets the
// selection, since selections are only valid under their root.
func (a *App) setRoot(path string) {
	a.root = path
	a.selection.Clear()
	a.rootLabel.SetText(fmt.Sprintf("Selected Directory: %s", path))
	a.tree.Refresh()

	if a.watcher != nil {
		// Live refresh is a convenience, not a requirement
		if err := a.watcher.AddDirectory(path); err != nil {
			log.Warnf("cannot watch %s: %v", path, err)
		}
	}
}

// toggleSelection adds or removes a path and updates the status line.
func (a *App) toggleSelection(path string, selected bool) {
	if selected {
		a.selection.Add(path)
	} else {
		a.selection.Remove(path)
	}
	a.statusLabel.SetText(fmt.Sprintf("Status: %d items selected", a.selection.Len()))
}

// inheritsSelection reports whether the path is selected itself or sits
// under a selected folder. Selecting a folder covers everything beneath it,
// so its descendants render as checked.
func (a *App) inheritsSelection(path string) bool {
	if path == "" {
		return false
	}
	for {
		if a.selection.Contains(path) {
			return true
		}
		if path == a.root {
			return false
		}
		parent := filepath.Dir(path)
		if parent == path {
			return false
		}
		path = parent
	}
}

// childPaths lists the visible entries of a directory: non-ignored folders
// and files with an allowed extension, in name order. The empty UID is the
// tree root.
func (a *App) childPaths(uid string) []string {
	if a.root == "" {
		return nil
	}
	dir := uid
	if dir == "" {
		dir = a.root
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable directories show as empty rather than erroring the tree
		return nil
	}

	extensions := a.cfg.ExtensionSet()
	ignored := make(map[string]bool, len(a.cfg.Ignore.Directories))
	for _, name := range a.cfg.Ignore.Directories {
		ignored[name] = true
	}

	var children []string
	for _, entry := range entries {
		if entry.IsDir() {
			if ignored[entry.Name()] {
				continue
			}
			children = append(children, filepath.Join(dir, entry.Name()))
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if extensions[ext] || (ext == "" && a.cfg.Include.SniffContent) {
			children = append(children, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(children)
	return children
}
