// Command pullfeed is a terminal feed reader with pull-to-refresh.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/pullfeed/internal/application/usecase"
	"github.com/tesso57/pullfeed/internal/infrastructure/config"
	"github.com/tesso57/pullfeed/internal/infrastructure/feed"
	"github.com/tesso57/pullfeed/internal/infrastructure/logging"
	"github.com/tesso57/pullfeed/internal/infrastructure/store"
	"github.com/tesso57/pullfeed/internal/presentation/tui"
)

type cli struct {
	Config string `help:"Config file path" short:"c" type:"path"`

	Run   runCmd   `cmd:"" default:"1" help:"Open the reader"`
	Feeds feedsCmd `cmd:"" help:"Manage feed subscriptions"`
}

type runCmd struct{}

type feedsCmd struct {
	List   feedsListCmd   `cmd:"" help:"List subscribed feeds"`
	Add    feedsAddCmd    `cmd:"" help:"Subscribe to a feed"`
	Remove feedsRemoveCmd `cmd:"" help:"Unsubscribe from a feed by its number in 'feeds list'"`
}

type feedsListCmd struct{}

type feedsAddCmd struct {
	URL string `arg:"" help:"RSS or Atom feed URL"`
}

type feedsRemoveCmd struct {
	Number int `arg:"" help:"Feed number"`
}

// env carries what every command needs.
type env struct {
	configPath string
	out        io.Writer
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "pullfeed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("pullfeed"),
		kong.Description("A terminal feed reader. Pull down or press r to refresh."),
		kong.Writers(out, out),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return ctx.Run(&env{configPath: c.Config, out: out})
}

func (runCmd) Run(e *env) error {
	cfgStore, err := config.Load(e.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := cfgStore.Settings

	logger, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	items, err := store.Open(cfg.StoreFile)
	if err != nil {
		return err
	}
	defer func() { _ = items.Close() }()

	timeout := cfg.List.FetchTimeout()
	source := usecase.FeedSource{
		Feeds:    cfgStore,
		Fetcher:  feed.NewFetcher(logger.Component("feed")),
		Store:    items,
		PageSize: cfg.List.PageSize,
		Options: usecase.FeedFetchOptions{
			PerFeedTimeout: timeout,
			BatchTimeout:   timeout,
		},
		Logger: logger.Component("source"),
	}

	model, err := tui.NewModel(cfg, source, logger.Component("tui"))
	if err != nil {
		return err
	}
	defer model.Close()

	logger.Info().Str("config", cfgStore.Path()).Int("feeds", len(cfg.Feeds)).Msg("starting")
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func subscriptions(e *env) (usecase.SubscriptionService, error) {
	cfgStore, err := config.Load(e.configPath)
	if err != nil {
		return usecase.SubscriptionService{}, fmt.Errorf("load config: %w", err)
	}
	return usecase.NewSubscriptionService(cfgStore), nil
}

func printFeeds(w io.Writer, feeds []string) {
	if len(feeds) == 0 {
		fmt.Fprintln(w, "No feeds. Add one with: pullfeed feeds add <url>")
		return
	}
	for i, url := range feeds {
		fmt.Fprintf(w, "%d. %s\n", i+1, url)
	}
}

func (feedsListCmd) Run(e *env) error {
	svc, err := subscriptions(e)
	if err != nil {
		return err
	}
	feeds, err := svc.List()
	if err != nil {
		return err
	}
	printFeeds(e.out, feeds)
	return nil
}

func (c feedsAddCmd) Run(e *env) error {
	svc, err := subscriptions(e)
	if err != nil {
		return err
	}
	feeds, err := svc.Add(c.URL)
	if err != nil {
		return err
	}
	printFeeds(e.out, feeds)
	return nil
}

func (c feedsRemoveCmd) Run(e *env) error {
	svc, err := subscriptions(e)
	if err != nil {
		return err
	}
	feeds, err := svc.Remove(c.Number - 1)
	if err != nil {
		return err
	}
	printFeeds(e.out, feeds)
	return nil
}
