package messages

import (
	"concatd/internal/tui/common"
	"concatd/pkg/types"
)

type ErrorMsg struct {
	Err error
}

type DirLoadedMsg struct {
	Path    string
	Entries []common.FileEntry
	Error   error
}

type ProgressMsg types.Progress

type RunFinishedMsg struct {
	Result types.Result
}
