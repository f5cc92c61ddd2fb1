// Package scan resolves a user selection of files and folders into the flat
// ordered list of text files to concatenate.
package scan

import (
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"concatd/internal/config"
	serr "concatd/internal/errors"
	"concatd/internal/log"
	"concatd/pkg/types"

	"github.com/gobwas/glob"
)

// Walker expands an ordered selection into the resolved file list. Top-level
// selection order is preserved; directories expand in lexicographic traversal
// order. Non-text files inside directories are skipped silently, text-ness
// being decided by the extension allowlist and, for unknown extensions, a
// content sniff.
type Walker struct {
	cfg         *config.Config
	extensions  map[string]bool
	ignoreGlobs []glob.Glob
	git         *gitIndex
}

// NewWalker creates a walker from the configuration. It fails if any ignore
// pattern doesn't compile.
func NewWalker(cfg *config.Config) (*Walker, error) {
	globs := make([]glob.Glob, 0, len(cfg.Ignore.Directories))
	for _, pattern := range cfg.Ignore.Directories {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, serr.Wrapf(err, "invalid ignore pattern %q", pattern)
		}
		globs = append(globs, g)
	}

	return &Walker{
		cfg:         cfg,
		extensions:  cfg.ExtensionSet(),
		ignoreGlobs: globs,
		git:         newGitIndex(),
	}, nil
}

// Resolve expands the selection into absolute file paths. A file reachable
// through two selected entries appears once, at its first position. Selected
// paths that vanished from disk become warnings, not errors.
func (w *Walker) Resolve(sel *types.Selection) ([]string, []types.Warning, error) {
	if sel == nil || sel.Empty() {
		return nil, nil, serr.NewValidationError("no files or folders selected", serr.SelectionEmpty)
	}

	var resolved []string
	var warnings []types.Warning
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			resolved = append(resolved, path)
		}
	}

	for _, entry := range sel.Paths() {
		info, err := os.Stat(entry)
		if err != nil {
			if os.IsNotExist(err) {
				log.Warnf("selected path vanished, skipping: %s", entry)
				warnings = append(warnings, types.Warning{Path: entry, Kind: types.WarnMissing})
				continue
			}
			return nil, warnings, serr.NewFileError("cannot access selected path", entry, serr.ReadFailed, err)
		}

		if !info.IsDir() {
			if !w.includes(entry) {
				warnings = append(warnings, types.Warning{Path: entry, Kind: types.WarnNotText})
				continue
			}
			add(entry)
			continue
		}

		dirFiles, err := w.walkDir(entry)
		if err != nil {
			return nil, warnings, err
		}
		for _, f := range dirFiles {
			add(f)
		}
	}

	log.Debugf("resolved %d selection entries into %d files", sel.Len(), len(resolved))
	return resolved, warnings, nil
}

// walkDir collects the text files under dir in lexicographic order, pruning
// ignored directories.
func (w *Walker) walkDir(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// A file disappearing mid-walk is not fatal; anything else is.
			if os.IsNotExist(err) {
				return nil
			}
			if os.IsPermission(err) {
				log.Debugf("no permission for %s, skipping", path)
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			return serr.NewFileError("error walking directory", path, serr.ReadFailed, err)
		}
		if d.IsDir() {
			if path != dir && w.ignored(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if w.includes(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// includes decides whether a file belongs in the output: text-like per the
// heuristic, and git-tracked when that filter is on.
func (w *Walker) includes(path string) bool {
	if !w.isText(path) {
		return false
	}
	if w.cfg.Include.GitTrackedOnly && !w.git.tracked(path) {
		return false
	}
	return true
}

// isText applies the text heuristic: the extension allowlist is
// authoritative for known extensions; unknown extensions fall through to a
// content sniff when that is enabled.
func (w *Walker) isText(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "" && w.extensions[ext] {
		return true
	}
	if !w.cfg.Include.SniffContent {
		return false
	}
	text, err := sniffText(path)
	if err != nil {
		log.Debugf("sniff failed for %s: %v", path, err)
		return false
	}
	return text
}

// sniffText reads the first 512 bytes and classifies them the same way the
// stdlib serves files.
func sniffText(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buffer := make([]byte, 512)
	n, err := f.Read(buffer)
	if err != nil && err != io.EOF {
		return false, err
	}
	return isTextContentType(http.DetectContentType(buffer[:n])), nil
}

// isTextContentType reports whether a detected MIME type is textual.
func isTextContentType(contentType string) bool {
	if strings.HasPrefix(contentType, "text/") {
		return true
	}
	switch {
	case strings.HasPrefix(contentType, "application/json"),
		strings.HasPrefix(contentType, "application/xml"),
		strings.HasPrefix(contentType, "application/yaml"):
		return true
	}
	return false
}

// ignored reports whether a directory name matches an ignore pattern.
func (w *Walker) ignored(name string) bool {
	for _, g := range w.ignoreGlobs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Scan returns FileInfo for a single path, used by the frontends to show
// details in the browse tree.
func (w *Walker) Scan(path string) (*types.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, serr.NewFileError("failed to stat file", path, serr.FileNotFound, err)
		}
		return nil, serr.NewFileError("failed to stat file", path, serr.PermissionDenied, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, serr.NewFileError("failed to open file", path, serr.PermissionDenied, err)
	}
	defer f.Close()

	buffer := make([]byte, 512)
	n, err := f.Read(buffer)
	if err != nil && err != io.EOF {
		return nil, serr.NewFileError("failed to read file", path, serr.ReadFailed, err)
	}
	contentType := http.DetectContentType(buffer[:n])

	return &types.FileInfo{
		Path:        path,
		ContentType: contentType,
		Size:        info.Size(),
		Text:        w.isText(path),
	}, nil
}
