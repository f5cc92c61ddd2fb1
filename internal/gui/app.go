//go:build !nogui
// +build !nogui

package gui

import (
	"context"
	"image/color"

	"concatd/internal/config"
	"concatd/internal/log"
	"concatd/internal/watch"
	"concatd/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	watcher    *watch.Watcher

	// Session state for the current window
	root      string
	selection *types.Selection

	// Widgets that outlive a single tab build
	rootLabel   *widget.Label
	outputEntry *widget.Entry
	tree        *widget.Tree
	progressBar *widget.ProgressBar
	statusLabel *widget.Label
	generateBtn *widget.Button
	cancelBtn   *widget.Button

	// Cancels the in-flight run, nil when idle
	cancelRun context.CancelFunc

	// Theme settings
	accentColor color.NRGBA
	bgColor     color.NRGBA
}

// NewApp creates a new GUI application
func NewApp(cfg *config.Config) *App {
	// Create app with a unique ID for preferences storage
	fyneApp := app.NewWithID("io.github.concatd")

	watcher, err := watch.New()
	if err != nil {
		log.Errorf("Failed to create refresh watcher: %v", err)
		// The GUI still works without live refresh
		watcher = nil
	}

	a := &App{
		fyneApp:     fyneApp,
		cfg:         cfg,
		watcher:     watcher,
		selection:   types.NewSelection(),
		accentColor: color.NRGBA{R: 255, G: 165, B: 0, A: 255},
		bgColor:     color.NRGBA{R: 16, G: 16, B: 16, A: 255},
	}

	a.mainWindow = a.fyneApp.NewWindow("Text File Concatenator")

	return a
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Run starts the GUI application
func (a *App) Run() {
	a.setupMainWindow()

	if a.watcher != nil {
		a.startRefreshLoop()
	}

	a.mainWindow.Show()
	a.fyneApp.Run()

	if a.watcher != nil && a.watcher.IsRunning() {
		a.watcher.Stop()
	}
}

// setupMainWindow sets up the main window content
func (a *App) setupMainWindow() {
	a.mainWindow.Resize(fyne.NewSize(900, 700))

	logoText := `
 ██████╗ ██████╗ ███╗   ██╗ ██████╗ █████╗ ████████╗██████╗
██╔════╝██╔═══██╗████╗  ██║██╔════╝██╔══██╗╚══██╔══╝██╔══██╗
██║     ██║   ██║██╔██╗ ██║██║     ███████║   ██║   ██║  ██║
██║     ██║   ██║██║╚██╗██║██║     ██╔══██║   ██║   ██║  ██║
╚██████╗╚██████╔╝██║ ╚████║╚██████╗██║  ██║   ██║   ██████╔╝
 ╚═════╝ ╚═════╝ ╚═╝  ╚═══╝ ╚═════╝╚═╝  ╚═╝   ╚═╝   ╚═════╝
`
	logoDisplay := canvas.NewText(logoText, a.accentColor)
	logoDisplay.TextStyle.Monospace = true
	logoDisplay.TextSize = 14
	logoDisplay.Alignment = fyne.TextAlignCenter

	tabs := container.NewAppTabs(
		container.NewTabItem("Select", a.createSelectTab()),
		container.NewTabItem("Preferences", a.createPreferencesTab()),
	)
	tabs.SetTabLocation(container.TabLocationTop)

	content := container.NewBorder(
		container.NewVBox(
			logoDisplay,
			canvas.NewLine(a.accentColor),
		),
		a.createRunBar(),
		nil,
		nil,
		tabs,
	)

	a.mainWindow.SetContent(content)
}

// createRunBar builds the output row, generate/cancel buttons, and the
// progress area shown at the bottom of the window.
func (a *App) createRunBar() fyne.CanvasObject {
	a.outputEntry = widget.NewEntry()
	a.outputEntry.SetText(a.cfg.Output.DefaultPath)

	saveButton := widget.NewButton("Select Save Location", func() {
		a.chooseOutputLocation()
	})

	a.progressBar = widget.NewProgressBar()
	a.statusLabel = widget.NewLabel("Status: Idle")

	a.generateBtn = widget.NewButton("Generate", func() {
		a.generate()
	})
	a.cancelBtn = widget.NewButton("Cancel", func() {
		if a.cancelRun != nil {
			a.cancelRun()
		}
	})
	a.cancelBtn.Disable()

	outputRow := container.NewBorder(nil, nil, saveButton, nil, a.outputEntry)
	progressRow := container.NewBorder(nil, nil, nil, a.statusLabel, a.progressBar)

	return container.NewVBox(
		widget.NewLabel("Output File:"),
		outputRow,
		container.NewHBox(a.generateBtn, a.cancelBtn),
		progressRow,
	)
}

// chooseOutputLocation opens the save dialog and records the chosen path.
func (a *App) chooseOutputLocation() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.ShowError("Save Location", err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		// The dialog pre-creates the file; the engine's collision handling
		// runs against the final path, so drop the placeholder.
		removePlaceholder(path)
		a.outputEntry.SetText(path)
	}, a.mainWindow)
}

// startRefreshLoop reloads the tree whenever the watched root changes.
func (a *App) startRefreshLoop() {
	if err := a.watcher.Start(); err != nil {
		log.Warnf("refresh watcher not started: %v", err)
		return
	}
	go func() {
		for range a.watcher.RefreshChannel() {
			if a.tree != nil {
				a.tree.Refresh()
			}
		}
	}()
}

// ShowError displays an error dialog
func (a *App) ShowError(title string, err error) {
	if err == nil {
		return
	}
	log.Errorf("%s: %v", title, err)
	dialog.ShowError(err, a.mainWindow)
}

// ShowInfo displays an information dialog
func (a *App) ShowInfo(message string) {
	dialog.ShowInformation("Information", message, a.mainWindow)
}

// saveConfig saves the current configuration
func (a *App) saveConfig() {
	if err := a.cfg.Save(); err != nil {
		a.ShowError("Failed to save configuration", err)
	}
}
