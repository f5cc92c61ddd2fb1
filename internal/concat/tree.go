package concat

import (
	"path/filepath"
	"sort"
	"strings"
)

// treeNode is one level of the rendered file tree. A nil child map marks a
// file, a non-nil one a directory.
type treeNode map[string]treeNode

// BuildTree renders the included files as an indented tree relative to root,
// used as the optional preamble of the output. Paths outside the root are
// shown as-is.
func BuildTree(files []string, root string) string {
	tree := make(treeNode)

	for _, file := range files {
		rel := file
		if root != "" {
			if r, err := filepath.Rel(root, file); err == nil && !strings.HasPrefix(r, "..") {
				rel = r
			}
		}

		parts := strings.Split(strings.TrimPrefix(rel, string(filepath.Separator)), string(filepath.Separator))
		level := tree
		for _, part := range parts[:len(parts)-1] {
			child, ok := level[part]
			if !ok || child == nil {
				child = make(treeNode)
				level[part] = child
			}
			level = child
		}
		level[parts[len(parts)-1]] = nil
	}

	var sb strings.Builder
	renderTree(&sb, tree, 0)
	return sb.String()
}

func renderTree(sb *strings.Builder, node treeNode, indent int) {
	keys := make([]string, 0, len(node))
	for key := range node {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		sb.WriteString(strings.Repeat("    ", indent))
		sb.WriteString("- ")
		sb.WriteString(key)
		sb.WriteString("\n")
		if node[key] != nil {
			renderTree(sb, node[key], indent+1)
		}
	}
}
