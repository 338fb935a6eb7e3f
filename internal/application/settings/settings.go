// Package settings defines application-level configuration data.
package settings

import "time"

// KeyMapConfig defines the configuration for keybindings.
type KeyMapConfig struct {
	Up       string `yaml:"up" kong:"help='Up key',default='k'"`
	Down     string `yaml:"down" kong:"help='Down key',default='j'"`
	UpPage   string `yaml:"up_page" kong:"help='Page Up key',default='ctrl+u'"`
	DownPage string `yaml:"down_page" kong:"help='Page Down key',default='ctrl+d'"`
	Top      string `yaml:"top" kong:"help='Top key',default='g'"`
	Bottom   string `yaml:"bottom" kong:"help='Bottom key',default='G'"`
	Refresh  string `yaml:"refresh" kong:"help='Refresh key',default='r'"`
	LoadMore string `yaml:"load_more" kong:"help='Load more key',default='m'"`
	Open     string `yaml:"open" kong:"help='Open link key',default='enter'"`
	Quit     string `yaml:"quit" kong:"help='Quit key',default='q'"`
}

// ThemeConfig defines the color theme configuration.
type ThemeConfig struct {
	FeedName string `yaml:"feed_name" kong:"help='Feed name color',default='244'"`
	Accent   string `yaml:"accent" kong:"help='Header accent color',default='205'"`
}

// ListConfig tunes the article list and its data source.
type ListConfig struct {
	PageSize            int    `yaml:"page_size" kong:"help='Items per page',default='20'"`
	FetchMoreThreshold  int    `yaml:"fetch_more_threshold" kong:"help='Distance from the bottom that triggers loading the next page',default='100'"`
	AutoFetchMore       bool   `yaml:"auto_fetch_more" kong:"help='Load the next page when scrolling near the end',default='true'"`
	RowUnits            int    `yaml:"row_units" kong:"help='Gesture units per terminal row',default='4'"`
	EmptyText           string `yaml:"empty_text" kong:"help='Text shown when the list is empty',default='No articles yet'"`
	ConfirmHoldMS       int    `yaml:"confirm_hold_ms" kong:"help='How long the refresh confirmation stays, in milliseconds',default='1000'"`
	FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds" kong:"help='Timeout for fetching all feeds',default='10'"`
}

// ConfirmHold returns ConfirmHoldMS as a duration.
func (c ListConfig) ConfirmHold() time.Duration {
	return time.Duration(c.ConfirmHoldMS) * time.Millisecond
}

// FetchTimeout returns FetchTimeoutSeconds as a duration.
func (c ListConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level" kong:"help='Log level (debug/info/warn/error)',default='info'"`
	File  string `yaml:"file" kong:"help='Log file path; empty disables logging'"`
}

// Settings represents the application configuration.
type Settings struct {
	Feeds     []string     `yaml:"feeds" kong:"help='RSS/Atom Feed URLs',default='https://news.ycombinator.com/rss'"`
	KeyMap    KeyMapConfig `yaml:"keymap" kong:"embed,prefix='keymap.'"`
	Theme     ThemeConfig  `yaml:"theme" kong:"embed,prefix='theme.'"`
	List      ListConfig   `yaml:"list" kong:"embed,prefix='list.'"`
	Log       LogConfig    `yaml:"log" kong:"embed,prefix='log.'"`
	StoreFile string       `yaml:"store_file" kong:"help='Article store path'"`
}
