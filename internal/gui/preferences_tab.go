//go:build !nogui
// +build !nogui

package gui

import (
	"fmt"

	"concatd/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// createPreferencesTab builds the preferences form: tracking mode, ignored
// directories, file types, output options.
func (a *App) createPreferencesTab() fyne.CanvasObject {
	trackingRadio := widget.NewRadioGroup([]string{"All Files", "Git Tracked Files Only"}, func(choice string) {
		a.cfg.Include.GitTrackedOnly = choice == "Git Tracked Files Only"
		a.saveConfig()
	})
	if a.cfg.Include.GitTrackedOnly {
		trackingRadio.SetSelected("Git Tracked Files Only")
	} else {
		trackingRadio.SetSelected("All Files")
	}

	outputRadio := widget.NewRadioGroup([]string{"Save to File", "Copy to Clipboard"}, func(choice string) {
		a.cfg.Output.Clipboard = choice == "Copy to Clipboard"
		a.saveConfig()
	})
	if a.cfg.Output.Clipboard {
		outputRadio.SetSelected("Copy to Clipboard")
	} else {
		outputRadio.SetSelected("Save to File")
	}

	collisionSelect := widget.NewSelect([]string{
		config.CollisionRename,
		config.CollisionOverwrite,
		config.CollisionSkip,
	}, func(choice string) {
		a.cfg.Output.Collision = choice
		a.saveConfig()
	})
	collisionSelect.SetSelected(a.cfg.Output.Collision)

	headersCheck := widget.NewCheck("Insert \"=== filename ===\" headers between files", func(checked bool) {
		a.cfg.Format.FileHeaders = checked
		a.saveConfig()
	})
	headersCheck.SetChecked(a.cfg.Format.FileHeaders)

	treeCheck := widget.NewCheck("Prepend a file tree of the included files", func(checked bool) {
		a.cfg.Format.FileTree = checked
		a.saveConfig()
	})
	treeCheck.SetChecked(a.cfg.Format.FileTree)

	skipCheck := widget.NewCheck("Skip unreadable files instead of aborting", func(checked bool) {
		a.cfg.Run.SkipUnreadable = checked
		a.saveConfig()
	})
	skipCheck.SetChecked(a.cfg.Run.SkipUnreadable)

	return container.NewVScroll(container.NewVBox(
		widget.NewCard("File Tracking", "", trackingRadio),
		widget.NewCard("File Types to Include", "", a.createExtensionList()),
		widget.NewCard("Automatically Ignore Directories", "", a.createIgnoreList()),
		widget.NewCard("Output", "", container.NewVBox(
			outputRadio,
			container.NewBorder(nil, nil, widget.NewLabel("If the output file exists:"), nil, collisionSelect),
			headersCheck,
			treeCheck,
			skipCheck,
		)),
	))
}

// createExtensionList builds the extension checkbox grid and the custom
// extension entry.
func (a *App) createExtensionList() fyne.CanvasObject {
	grid := container.NewGridWithColumns(4)
	rebuild := func() {
		grid.Objects = nil
		for _, ext := range a.cfg.Include.Extensions {
			ext := ext
			check := widget.NewCheck(ext, func(checked bool) {
				if !checked {
					a.removeExtension(ext)
				}
			})
			check.SetChecked(true)
			grid.Add(check)
		}
		grid.Refresh()
	}
	rebuild()

	customEntry := widget.NewEntry()
	customEntry.SetPlaceHolder("Add custom file extension (e.g., .ini)")

	addButton := widget.NewButton("Add", func() {
		if err := a.cfg.AddExtension(customEntry.Text); err != nil {
			a.ShowError("Invalid Extension", err)
			return
		}
		a.saveConfig()
		customEntry.SetText("")
		rebuild()
	})

	sniffCheck := widget.NewCheck("Detect text files without an extension by content", func(checked bool) {
		a.cfg.Include.SniffContent = checked
		a.saveConfig()
	})
	sniffCheck.SetChecked(a.cfg.Include.SniffContent)

	return container.NewVBox(
		container.NewVScroll(grid),
		container.NewBorder(nil, nil, nil, addButton, customEntry),
		sniffCheck,
	)
}

// removeExtension drops an extension from the allowlist.
func (a *App) removeExtension(ext string) {
	for i, existing := range a.cfg.Include.Extensions {
		if existing == ext {
			a.cfg.Include.Extensions = append(a.cfg.Include.Extensions[:i], a.cfg.Include.Extensions[i+1:]...)
			break
		}
	}
	if err := a.cfg.Validate(); err != nil {
		// Refuse to drop the last extension
		a.cfg.Include.Extensions = append(a.cfg.Include.Extensions, ext)
		a.ShowError("File Types", fmt.Errorf("at least one file type must stay enabled"))
		return
	}
	a.saveConfig()
}

// createIgnoreList builds the ignored-directory checkboxes.
func (a *App) createIgnoreList() fyne.CanvasObject {
	grid := container.NewGridWithColumns(3)
	for _, pattern := range a.cfg.Ignore.Directories {
		pattern := pattern
		check := widget.NewCheck(pattern, nil)
		check.Checked = true
		check.OnChanged = func(checked bool) {
			if checked {
				a.cfg.Ignore.Directories = append(a.cfg.Ignore.Directories, pattern)
			} else {
				for i, existing := range a.cfg.Ignore.Directories {
					if existing == pattern {
						a.cfg.Ignore.Directories = append(a.cfg.Ignore.Directories[:i], a.cfg.Ignore.Directories[i+1:]...)
						break
					}
				}
			}
			a.saveConfig()
			if a.tree != nil {
				a.tree.Refresh()
			}
		}
		grid.Add(check)
	}
	return container.NewVScroll(grid)
}
