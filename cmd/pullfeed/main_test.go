package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/pullfeed/internal/application/usecase"
)

func feedsCmdOutput(t *testing.T, configPath string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, run(append([]string{"--config", configPath, "feeds"}, args...), &out))
	return out.String()
}

func TestFeedsCommands(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")

	got := feedsCmdOutput(t, path, "list")
	assert.Equal(t, "1. https://news.ycombinator.com/rss\n", got)

	got = feedsCmdOutput(t, path, "add", "https://example.com/feed.xml")
	assert.Equal(t, "1. https://news.ycombinator.com/rss\n2. https://example.com/feed.xml\n", got)

	got = feedsCmdOutput(t, path, "remove", "1")
	assert.Equal(t, "1. https://example.com/feed.xml\n", got)

	got = feedsCmdOutput(t, path, "remove", "1")
	assert.True(t, strings.HasPrefix(got, "No feeds."), got)
}

func TestFeedsCommands_Errors(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	var out bytes.Buffer

	err := run([]string{"--config", path, "feeds", "add", "https://news.ycombinator.com/rss"}, &out)
	assert.ErrorIs(t, err, usecase.ErrDuplicateFeed)

	err = run([]string{"--config", path, "feeds", "remove", "5"}, &out)
	assert.ErrorIs(t, err, usecase.ErrFeedNotFound)

	err = run([]string{"--config", path, "feeds", "bogus"}, &out)
	assert.Error(t, err)
}
