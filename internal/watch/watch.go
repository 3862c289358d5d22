// Package watch reports changes to local image files as Bubble Tea messages.
package watch

import (
	"path/filepath"
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// ChangedMsg names the keys whose file was written, created or replaced.
type ChangedMsg struct {
	Path string
	Keys []string
}

// ErrMsg carries a watcher error; watching continues.
type ErrMsg struct {
	Err error
}

// Watcher watches the directories of registered files, so editors that save
// via rename are still seen.
type Watcher struct {
	mu      sync.Mutex
	fs      *fsnotify.Watcher
	files   map[string][]string // clean path -> keys
	dirs    map[string]int
	ch      chan tea.Msg
	done    chan struct{}
	closeMu sync.Once
}

// New starts a watcher with no files.
func New() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:    fw,
		files: map[string][]string{},
		dirs:  map[string]int{},
		ch:    make(chan tea.Msg, 10),
		done:  make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Add registers path under key. The same path may carry several keys.
func (w *Watcher) Add(key, path string) error {
	path = filepath.Clean(path)
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, k := range w.files[path] {
		if k == key {
			return nil
		}
	}
	dir := filepath.Dir(path)
	if w.dirs[dir] == 0 {
		if err := w.fs.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[path] = append(w.files[path], key)
	return nil
}

// Wait returns a command that blocks for the next change or error.
func (w *Watcher) Wait() tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case msg := <-w.ch:
			return msg
		case <-w.done:
			return nil
		}
	}
}

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.closeMu.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if msg, ok := w.match(event.Name); ok {
				w.send(msg)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.send(ErrMsg{Err: err})
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) match(name string) (ChangedMsg, bool) {
	path := filepath.Clean(name)
	w.mu.Lock()
	defer w.mu.Unlock()
	keys, ok := w.files[path]
	if !ok {
		return ChangedMsg{}, false
	}
	out := append([]string(nil), keys...)
	sort.Strings(out)
	return ChangedMsg{Path: path, Keys: out}, true
}

func (w *Watcher) send(msg tea.Msg) {
	select {
	case w.ch <- msg:
	case <-w.done:
	}
}
