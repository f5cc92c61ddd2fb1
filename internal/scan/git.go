package scan

import (
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"concatd/internal/log"
)

// gitIndex answers "is this file tracked by git" by shelling out to git,
// caching repository roots so each directory is resolved once.
type gitIndex struct {
	mu    sync.Mutex
	roots map[string]string // directory -> repo root ("" when outside a repo)
}

func newGitIndex() *gitIndex {
	return &gitIndex{roots: make(map[string]string)}
}

// tracked reports whether the file is tracked in its enclosing repository.
// Files outside any repository are not tracked.
func (g *gitIndex) tracked(path string) bool {
	root := g.repoRoot(filepath.Dir(path))
	if root == "" {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	cmd := exec.Command("git", "ls-files", "--error-unmatch", rel)
	cmd.Dir = root
	return cmd.Run() == nil
}

// repoRoot resolves and caches the repository root for a directory.
func (g *gitIndex) repoRoot(dir string) string {
	g.mu.Lock()
	if root, ok := g.roots[dir]; ok {
		g.mu.Unlock()
		return root
	}
	g.mu.Unlock()

	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	out, err := cmd.Output()
	root := ""
	if err == nil {
		root = strings.TrimSpace(string(out))
	} else {
		log.Debugf("not a git repository: %s", dir)
	}

	g.mu.Lock()
	g.roots[dir] = root
	g.mu.Unlock()
	return root
}
