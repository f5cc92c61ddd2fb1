package common

// FileEntry is one row of the browse listing.
type FileEntry struct {
	Name  string
	Path  string
	IsDir bool
	Size  int64
}
