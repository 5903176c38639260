package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandSource(t *testing.T) {
	assert.Equal(t, "https://example.com/feed.csv", expandSource("https://example.com/feed.csv"))
	assert.Equal(t, "http://localhost/feed", expandSource("http://localhost/feed"))

	expanded := expandSource("./activity.csv")
	assert.True(t, filepath.IsAbs(expanded))
}

func TestExpandPathHome(t *testing.T) {
	expanded := expandPath("~/logs/app.log")
	assert.True(t, filepath.IsAbs(expanded))
	assert.NotContains(t, expanded, "~")
}

func TestWatchCommandRegistered(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "watch" {
			found = true
		}
	}
	assert.True(t, found)
}
