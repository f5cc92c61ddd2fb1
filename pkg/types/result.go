package types

import "fmt"

// WarningKind classifies non-fatal per-file diagnostics raised while walking
// or concatenating.
type WarningKind int

const (
	WarnMissing WarningKind = iota // selected path vanished from disk
	WarnNotText                    // skipped because it isn't a text file
	WarnUnreadable                 // skipped because it couldn't be read
)

// Warning is a non-fatal diagnostic tied to a single path. Warnings never
// abort a run; they are collected and shown to the user afterwards.
type Warning struct {
	Path string
	Kind WarningKind
	Err  error
}

// String returns the warning in the "skipped: reason" form the frontends show.
func (w Warning) String() string {
	switch w.Kind {
	case WarnMissing:
		return fmt.Sprintf("skipped %s: no longer exists", w.Path)
	case WarnNotText:
		return fmt.Sprintf("skipped %s: not a text file", w.Path)
	case WarnUnreadable:
		return fmt.Sprintf("skipped %s: unreadable (%v)", w.Path, w.Err)
	default:
		return fmt.Sprintf("skipped %s", w.Path)
	}
}

// Progress is emitted after each file is appended to the output.
type Progress struct {
	Completed int    // files finished so far
	Total     int    // total files in the resolved list
	Path      string // file just processed
}

// Percent returns completion as 0-100 for progress bars.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Completed * 100 / p.Total
}

// Result is the terminal outcome of a concatenation run.
type Result struct {
	Phase        Phase
	OutputPath   string // empty when output went to the clipboard
	FilesWritten int
	BytesWritten int64
	Words        int
	Chars        int
	Warnings     []Warning
	Err          error
}

// Summary returns the one-line outcome message shown in dialogs and the CLI.
func (r Result) Summary() string {
	switch r.Phase {
	case PhaseCompleted:
		if r.OutputPath == "" {
			return fmt.Sprintf("Copied %d files to the clipboard (%d words, %d characters)",
				r.FilesWritten, r.Words, r.Chars)
		}
		return fmt.Sprintf("Concatenated %d files into %s (%d words, %d characters)",
			r.FilesWritten, r.OutputPath, r.Words, r.Chars)
	case PhaseCancelled:
		return fmt.Sprintf("Cancelled after %d files", r.FilesWritten)
	case PhaseFailed:
		return fmt.Sprintf("Failed: %v", r.Err)
	default:
		return r.Phase.String()
	}
}
