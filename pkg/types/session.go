package types

// Session carries everything one concatenation run needs: the root the user
// browsed, what they picked, and where the output goes. A Session is built
// when the user triggers generation and discarded when the run ends, so no
// state leaks between runs.
type Session struct {
	Root      string     // root directory all selections live under
	Selection *Selection // ordered picks, files and/or folders
	Output    string     // destination file path; ignored when Clipboard is set
	Clipboard bool       // send output to the system clipboard instead of a file
}

// NewSession creates a session for the given root with an empty selection.
func NewSession(root string) *Session {
	return &Session{
		Root:      root,
		Selection: NewSelection(),
	}
}
