// Package config handles configuration loading and saving.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/tesso57/pullfeed/internal/application/settings"
	"gopkg.in/yaml.v3"
)

const appName = "pullfeed"

// Store manages persisted application settings.
type Store struct {
	Settings   settings.Settings
	configPath string
}

// DefaultPath returns ~/.config/pullfeed/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.yaml"), nil
}

// Load loads the configuration from the specified path or default location.
// Struct tag defaults fill anything the file leaves out, and a missing file
// is created with those defaults.
func Load(customPath ...string) (*Store, error) {
	var configPath string
	if len(customPath) > 0 && customPath[0] != "" {
		configPath = customPath[0]
	} else {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		configPath = p
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := settings.Settings{}
	var options []kong.Option
	_, statErr := os.Stat(configPath)
	exists := statErr == nil
	if exists {
		options = append(options, kong.Configuration(yamlKongLoader, configPath))
	}

	parser, err := kong.New(&cfg, options...)
	if err != nil {
		return nil, err
	}
	if _, err := parser.Parse([]string{}); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	store := &Store{Settings: cfg, configPath: configPath}
	store.Settings.Feeds = normalizeFeeds(store.Settings.Feeds)
	store.Settings.StoreFile = strings.TrimSpace(store.Settings.StoreFile)
	if store.Settings.StoreFile == "" {
		store.Settings.StoreFile = filepath.Join(defaultDataHome(), appName, "items.db")
	}

	if errors.Is(statErr, os.ErrNotExist) {
		if err := store.Save(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}
	return store, nil
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.configPath
}

func normalizeFeeds(feeds []string) []string {
	if len(feeds) == 0 {
		return feeds
	}
	normalized := make([]string, 0, len(feeds))
	for _, feed := range feeds {
		for item := range strings.FieldsSeq(feed) {
			normalized = append(normalized, item)
		}
	}
	return normalized
}

func defaultDataHome() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return dataHome
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

func yamlKongLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		for _, name := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
			if v, ok := lookup(values, name); ok {
				return v, nil
			}
		}
		return nil, nil
	}
	return f, nil
}

// lookup resolves a flag name against the decoded file, following
// dot-separated names into nested sections.
func lookup(values map[string]any, name string) (any, bool) {
	if v, ok := values[name]; ok {
		return v, true
	}
	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return nil, false
	}
	curr := values
	for _, part := range parts[:len(parts)-1] {
		next, ok := curr[part].(map[string]any)
		if !ok {
			return nil, false
		}
		curr = next
	}
	v, ok := curr[parts[len(parts)-1]]
	return v, ok
}

// List returns the currently configured feed URLs.
func (s *Store) List() ([]string, error) {
	feeds := make([]string, len(s.Settings.Feeds))
	copy(feeds, s.Settings.Feeds)
	return feeds, nil
}

// Add appends a new feed URL and saves the configuration.
func (s *Store) Add(url string) error {
	s.Settings.Feeds = append(s.Settings.Feeds, url)
	return s.Save()
}

// Remove deletes a feed by index and saves the configuration.
func (s *Store) Remove(index int) error {
	if index < 0 || index >= len(s.Settings.Feeds) {
		return fmt.Errorf("invalid feed index: %d", index)
	}
	s.Settings.Feeds = append(s.Settings.Feeds[:index], s.Settings.Feeds[index+1:]...)
	return s.Save()
}

// Save writes the current settings to the config file.
func (s *Store) Save() error {
	f, err := os.Create(s.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	defer func() { _ = enc.Close() }()
	return enc.Encode(s.Settings)
}
