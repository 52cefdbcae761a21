package include

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gubarz/chatmd/internal/chat"
	"github.com/gubarz/chatmd/internal/logging"
)

// DefaultMaxFiles caps how many files one parse may include
const DefaultMaxFiles = 1000

// ErrTooManyFiles is returned when include expansion passes the configured limit
var ErrTooManyFiles = errors.New("too many included files")

// Resolver expands include bodies into content items. It counts files across
// every body it resolves, so use one Resolver per parse.
type Resolver struct {
	fs       FileSystem
	log      *logrus.Entry
	maxFiles int
	count    int
}

// NewResolver creates a resolver. A maxFiles of zero disables the limit.
func NewResolver(fsys FileSystem, log *logrus.Entry, maxFiles int) *Resolver {
	if fsys == nil {
		fsys = OSFileSystem{}
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Resolver{
		fs:       fsys,
		log:      log,
		maxFiles: maxFiles,
	}
}

// Resolve renders every file an include body refers to, in order
func (r *Resolver) Resolve(body string) ([]chat.ContentItem, error) {
	paths, err := r.Paths(body)
	if err != nil {
		return nil, err
	}

	items := make([]chat.ContentItem, 0, len(paths))
	for _, path := range paths {
		items = append(items, r.render(path))
	}
	return items, nil
}

// Paths expands an include body, one path or pattern per line. Lines keep
// their order; matches within a line are sorted.
func (r *Resolver) Paths(body string) ([]string, error) {
	var paths []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		matches, err := r.expand(line)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			r.log.WithField("pattern", line).Debug("Include matched no files")
			continue
		}

		if r.maxFiles > 0 && r.count+len(matches) > r.maxFiles {
			return nil, fmt.Errorf("%w: %q brings the total to %d, limit is %d",
				ErrTooManyFiles, line, r.count+len(matches), r.maxFiles)
		}
		r.count += len(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

func (r *Resolver) expand(line string) ([]string, error) {
	if !hasMeta(line) {
		info, err := r.fs.Stat(line)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, nil
		case err == nil && info.IsDir():
			r.log.WithField("path", line).Debug("Skipping included directory")
			return nil, nil
		}
		return []string{line}, nil
	}

	matches, err := r.fs.Glob(line)
	if err != nil {
		return nil, fmt.Errorf("invalid include pattern %q: %w", line, err)
	}
	sort.Strings(matches)

	files := matches[:0]
	for _, m := range matches {
		if info, err := r.fs.Stat(m); err == nil && info.IsDir() {
			r.log.WithField("path", m).Debug("Skipping included directory")
			continue
		}
		files = append(files, m)
	}
	return files, nil
}

func (r *Resolver) render(path string) chat.ContentItem {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{
			"path": path,
		}).Warn("Cannot read included file")
		return Unreadable(path)
	}
	return Render(path, data)
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
