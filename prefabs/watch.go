package prefabs

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// editors often write a file in several steps; a file is reported once it
// has been quiet for this long
const reloadDebounce = 100 * time.Millisecond

// Watcher collects prefab files edited on disk. The fsnotify goroutine only
// records names; the game loop picks them up with Drain so every reload is
// applied on the frame goroutine.
type Watcher struct {
	fs *fsnotify.Watcher

	mu sync.Mutex
	// last event time per changed file not yet drained
	pending map[string]time.Time

	done chan struct{}
	once sync.Once
}

// NewWatcher watches dirs for YAML changes.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		pending: make(map[string]time.Time),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

// Drain returns, sorted, the prefab names ("controller.yaml") whose last
// change is at least reloadDebounce old, and forgets them. Files still being
// written stay pending. It never blocks on the filesystem.
func (w *Watcher) Drain() []string {
	return w.drainAt(time.Now())
}

func (w *Watcher) drainAt(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []string
	for name, last := range w.pending {
		if now.Sub(last) < reloadDebounce {
			continue
		}
		out = append(out, name)
		delete(w.pending, name)
	}
	sort.Strings(out)
	return out
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.record(event, time.Now())
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("Prefabs: watcher error")
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) record(event fsnotify.Event, now time.Time) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	if !isSpecFile(event.Name) {
		return
	}
	name := filepath.Base(event.Name)

	w.mu.Lock()
	w.pending[name] = now
	w.mu.Unlock()
}

func isSpecFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
