package monitoring

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/devfeed/devfeed/internal/util"
)

// FileEvent describes one change to a watched feed file.
type FileEvent struct {
	Path      string
	Operation string
}

// FeedWatcher watches a local feed file and emits an event whenever it
// is rewritten, so a refresh can run immediately instead of waiting for
// the next timer tick.
type FeedWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan FileEvent
}

// NewFeedWatcher creates a watcher for the given feed file. The parent
// directory is watched rather than the file itself so atomic
// rename-over-the-top updates are still observed.
func NewFeedWatcher(path string) (*FeedWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FeedWatcher{
		watcher: watcher,
		path:    filepath.Clean(path),
		events:  make(chan FileEvent, 16),
	}

	if err := watcher.Add(filepath.Dir(fw.path)); err != nil {
		watcher.Close()
		return nil, err
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FeedWatcher) processEvents() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			select {
			case fw.events <- FileEvent{Path: event.Name, Operation: event.Op.String()}:
			default:
				// Consumer is behind; coalesce
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("Feed monitoring error: " + err.Error())
		}
	}
}

// Events returns the channel of feed file change events.
func (fw *FeedWatcher) Events() <-chan FileEvent {
	return fw.events
}

// Close stops watching and releases resources.
func (fw *FeedWatcher) Close() error {
	return fw.watcher.Close()
}
