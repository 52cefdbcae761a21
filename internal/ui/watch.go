package ui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// fileChangedMsg signals that the watched transcript was written
type fileChangedMsg struct{}

// watchErrMsg carries an error from the watcher
type watchErrMsg struct {
	err error
}

// fileWatcher watches the transcript's directory, since editors often replace
// files by renaming a temp file over them
type fileWatcher struct {
	w    *fsnotify.Watcher
	path string
}

func newFileWatcher(path string) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}
	return &fileWatcher{w: w, path: abs}, nil
}

// next returns a command that blocks until the transcript changes
func (fw *fileWatcher) next() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-fw.w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != fw.path {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					return fileChangedMsg{}
				}
			case err, ok := <-fw.w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func (fw *fileWatcher) Close() error {
	return fw.w.Close()
}
