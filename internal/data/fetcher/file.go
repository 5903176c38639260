package fetcher

import (
	"context"
	"fmt"
	"os"
)

// FileFetcher reads the feed from a local file. Used together with the
// feed-file watcher so refreshes can also be driven by file changes.
type FileFetcher struct {
	path string
}

// NewFileFetcher creates a FileFetcher for the given path.
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{path: path}
}

// Path returns the watched file path.
func (f *FileFetcher) Path() string {
	return f.path
}

// Fetch reads the feed file. Read failures are reported as
// ErrFeedUnavailable, same as transport failures.
func (f *FileFetcher) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	return string(data), nil
}
