package include

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// ============================================================================
// FileSystem Interface
// ============================================================================

// FileSystem is the read-only view of files that include sections resolve against
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	Stat(name string) (fs.FileInfo, error)
	Glob(pattern string) ([]string, error)
}

// OSFileSystem reads from the local disk. Relative names resolve against Dir,
// or against the process working directory when Dir is empty.
type OSFileSystem struct {
	Dir string
}

// ReadFile reads the named file
func (f OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(f.path(name))
}

// Stat returns file info for the named file
func (f OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(f.path(name))
}

// Glob expands a doublestar pattern. Relative patterns yield paths relative to Dir.
func (f OSFileSystem) Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(f.path(pattern))
	if err != nil {
		return nil, err
	}
	if f.Dir == "" || filepath.IsAbs(pattern) {
		return matches, nil
	}
	for i, m := range matches {
		if rel, err := filepath.Rel(f.Dir, m); err == nil {
			matches[i] = rel
		}
	}
	return matches, nil
}

func (f OSFileSystem) path(name string) string {
	if f.Dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(f.Dir, name)
}
