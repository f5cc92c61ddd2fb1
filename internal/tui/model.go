// Package tui provides the terminal interface: a directory browser with
// checkbox selection and a progress view for the concatenation run.
package tui

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"concatd/internal/concat"
	"concatd/internal/config"
	"concatd/internal/tui/common"
	"concatd/internal/tui/components"
	"concatd/internal/tui/messages"
	"concatd/internal/tui/styles"
	"concatd/pkg/types"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateBrowsing state = iota
	stateRunning
	stateDone
)

// Model is the top-level bubbletea model.
type Model struct {
	cfg        *config.Config
	root       string
	currentDir string
	output     string

	selection *types.Selection
	fileList  *components.FileList
	progress  progress.Model

	state     state
	percent   float64
	statusMsg string
	result    *types.Result
	err       error

	engine    *concat.Engine
	cancelRun context.CancelFunc
	resultCh  chan types.Result
	runDone   chan struct{}
}

// New creates a TUI model rooted at the given directory.
func New(cfg *config.Config, root string) Model {
	selection := types.NewSelection()
	return Model{
		cfg:        cfg,
		root:       root,
		currentDir: root,
		output:     cfg.Output.DefaultPath,
		selection:  selection,
		fileList:   components.NewFileList(selection),
		progress:   progress.New(progress.WithDefaultGradient()),
		state:      stateBrowsing,
	}
}

// SetOutput overrides the output path before the program starts.
func (m *Model) SetOutput(path string) {
	m.output = path
}

func (m Model) Init() tea.Cmd {
	return loadDir(m.cfg, m.currentDir)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case messages.DirLoadedMsg:
		if msg.Error != nil {
			m.err = msg.Error
			return m, nil
		}
		m.currentDir = msg.Path
		m.fileList.SetEntries(msg.Path, msg.Entries)
		return m, nil

	case messages.ProgressMsg:
		// A late event can land after the run finished; don't rearm the wait
		if m.state != stateRunning {
			return m, nil
		}
		m.percent = float64(types.Progress(msg).Percent()) / 100
		m.statusMsg = types.Progress(msg).Path
		return m, waitForProgress(m.engine.Progress(), m.runDone)

	case messages.RunFinishedMsg:
		result := msg.Result
		m.result = &result
		m.state = stateDone
		m.cancelRun = nil
		if result.Phase == types.PhaseCompleted {
			m.percent = 1
		}
		return m, nil

	case messages.ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateRunning:
		switch msg.String() {
		case "esc":
			if m.cancelRun != nil {
				m.cancelRun()
			}
		case "ctrl+c":
			if m.cancelRun != nil {
				m.cancelRun()
			}
			return m, tea.Quit
		}
		return m, nil

	case stateDone:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		default:
			m.state = stateBrowsing
			m.result = nil
			m.percent = 0
			return m, loadDir(m.cfg, m.currentDir)
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.fileList.MoveCursor(-1)
	case "down", "j":
		m.fileList.MoveCursor(1)
	case " ", "space":
		m.fileList.ToggleCursor()
	case "enter", "l":
		if entry := m.fileList.Cursor(); entry != nil && entry.IsDir {
			return m, loadDir(m.cfg, entry.Path)
		}
	case "backspace", "h":
		// Never browse above the root, selections must stay under it
		if m.currentDir != m.root {
			return m, loadDir(m.cfg, filepath.Dir(m.currentDir))
		}
	case "g":
		return m.startRun()
	}
	return m, nil
}

// startRun snapshots the selection into a session and launches the engine on
// its own goroutine.
func (m Model) startRun() (tea.Model, tea.Cmd) {
	if m.selection.Empty() {
		m.err = nil
		m.statusMsg = "Nothing selected; mark files with space first"
		return m, nil
	}

	engine, err := concat.NewWithConfig(m.cfg)
	if err != nil {
		m.err = err
		return m, nil
	}

	session := types.NewSession(m.root)
	for _, path := range m.selection.Paths() {
		session.Selection.Add(path)
	}
	session.Output = m.output
	session.Clipboard = m.cfg.Output.Clipboard

	ctx, cancel := context.WithCancel(context.Background())
	m.engine = engine
	m.cancelRun = cancel
	m.resultCh = make(chan types.Result, 1)
	m.runDone = make(chan struct{})
	m.state = stateRunning
	m.percent = 0
	m.statusMsg = "Starting..."

	resultCh := m.resultCh
	runDone := m.runDone
	go func() {
		resultCh <- engine.Run(ctx, session)
		close(runDone)
	}()

	return m, tea.Batch(
		waitForProgress(engine.Progress(), m.runDone),
		waitForResult(resultCh),
	)
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(styles.Theme.Title.Render("concatd") + "\n")

	switch m.state {
	case stateRunning:
		s.WriteString("Concatenating...\n\n")
		s.WriteString(m.progress.ViewAs(m.percent) + "\n")
		s.WriteString(styles.Theme.Help.Render(m.statusMsg) + "\n\n")
		s.WriteString(styles.Theme.Help.Render("esc cancel • ctrl+c quit") + "\n")

	case stateDone:
		result := *m.result
		switch result.Phase {
		case types.PhaseCompleted:
			s.WriteString(m.progress.ViewAs(1) + "\n\n")
			s.WriteString(styles.Theme.Selected.Render(result.Summary()) + "\n")
		case types.PhaseCancelled:
			s.WriteString(styles.Theme.Warning.Render(result.Summary()) + "\n")
		default:
			s.WriteString(styles.Theme.Error.Render(result.Summary()) + "\n")
		}
		for _, w := range result.Warnings {
			s.WriteString(styles.Theme.Warning.Render(w.String()) + "\n")
		}
		s.WriteString("\n" + styles.Theme.Help.Render("press any key to continue, q to quit") + "\n")

	default:
		s.WriteString(m.fileList.View())
		if m.statusMsg != "" {
			s.WriteString("\n" + styles.Theme.Warning.Render(m.statusMsg) + "\n")
		}
		if m.err != nil {
			s.WriteString("\n" + styles.Theme.Error.Render(m.err.Error()) + "\n")
		}
		s.WriteString("\n" + styles.Theme.Help.Render("space select • enter open • backspace up • g generate • q quit") + "\n")
	}

	return styles.Theme.App.Render(s.String())
}

// loadDir reads a directory into the entries the browser shows: non-ignored
// folders and files with an allowed extension.
func loadDir(cfg *config.Config, dir string) tea.Cmd {
	return func() tea.Msg {
		dirEntries, err := os.ReadDir(dir)
		if err != nil {
			return messages.DirLoadedMsg{Path: dir, Error: err}
		}

		extensions := cfg.ExtensionSet()
		ignored := make(map[string]bool, len(cfg.Ignore.Directories))
		for _, name := range cfg.Ignore.Directories {
			ignored[name] = true
		}

		var entries []common.FileEntry
		for _, de := range dirEntries {
			if de.IsDir() {
				if ignored[de.Name()] {
					continue
				}
				entries = append(entries, common.FileEntry{
					Name:  de.Name(),
					Path:  filepath.Join(dir, de.Name()),
					IsDir: true,
				})
				continue
			}
			ext := strings.ToLower(filepath.Ext(de.Name()))
			if !extensions[ext] && !(ext == "" && cfg.Include.SniffContent) {
				continue
			}
			var size int64
			if info, err := de.Info(); err == nil {
				size = info.Size()
			}
			entries = append(entries, common.FileEntry{
				Name: de.Name(),
				Path: filepath.Join(dir, de.Name()),
				Size: size,
			})
		}

		sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
		return messages.DirLoadedMsg{Path: dir, Entries: entries}
	}
}

// waitForProgress blocks for the next progress event, giving up once the run
// is over so no goroutine is left behind on the never-closed channel.
func waitForProgress(ch <-chan types.Progress, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case p := <-ch:
			return messages.ProgressMsg(p)
		case <-done:
			return nil
		}
	}
}

func waitForResult(ch <-chan types.Result) tea.Cmd {
	return func() tea.Msg {
		return messages.RunFinishedMsg{Result: <-ch}
	}
}

// Start runs the TUI program until the user quits.
func Start(cfg *config.Config, root string, output string) error {
	model := New(cfg, root)
	if output != "" {
		model.SetOutput(output)
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
