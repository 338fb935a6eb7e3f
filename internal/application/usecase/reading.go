// Package usecase contains application-level services.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/tesso57/pullfeed/internal/domain/paging"
	"github.com/tesso57/pullfeed/internal/domain/reading"
)

var (
	// ErrNoFeeds is returned when a refresh is requested with no subscriptions.
	ErrNoFeeds = errors.New("no feeds configured")
	// ErrAllFeedsFailed is returned when every requested feed failed.
	ErrAllFeedsFailed = errors.New("all feeds failed")
)

// FeedFetchOptions bounds a multi-feed fetch.
type FeedFetchOptions struct {
	PerFeedTimeout time.Duration
	BatchTimeout   time.Duration
}

// FeedFetchReport counts the outcome of a multi-feed fetch.
type FeedFetchReport struct {
	Requested int
	Succeeded int
	Failed    int
	TimedOut  int
}

// FeedFetcher abstracts RSS fetching.
type FeedFetcher interface {
	FetchAll(ctx context.Context, urls []string, opt FeedFetchOptions) ([]reading.Item, FeedFetchReport, error)
}

// ItemStore abstracts the persisted, date-ordered item collection.
type ItemStore interface {
	Upsert(ctx context.Context, items []reading.Item) (int, error)
	Page(ctx context.Context, page paging.Page) ([]reading.Item, error)
	Count(ctx context.Context) (int, error)
}

// FeedSource serves paginated items to the article list. Refresh pulls every
// subscribed feed into the store; Init and FetchMore read pages from it.
type FeedSource struct {
	Feeds    SubscriptionRepository
	Fetcher  FeedFetcher
	Store    ItemStore
	PageSize int
	Options  FeedFetchOptions
	Logger   *zerolog.Logger
	NewID    func() string
}

// Init returns the first page, fetching feeds first when nothing is stored.
func (s FeedSource) Init(ctx context.Context) ([]reading.Item, error) {
	log := s.logger("init")
	count, err := s.Store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count stored items: %w", err)
	}
	if count == 0 {
		if _, err := s.sync(ctx, log); err != nil && !errors.Is(err, ErrNoFeeds) {
			return nil, err
		}
	}
	return s.page(ctx, log, paging.FirstPage)
}

// Refresh fetches all feeds and returns the first page when new items
// arrived. An empty result means nothing new was found.
func (s FeedSource) Refresh(ctx context.Context) ([]reading.Item, error) {
	log := s.logger("refresh")
	inserted, err := s.sync(ctx, log)
	if err != nil {
		return nil, err
	}
	if inserted == 0 {
		log.Info().Msg("no new items")
		return []reading.Item{}, nil
	}
	return s.page(ctx, log, paging.FirstPage)
}

// FetchMore returns page index. An empty result means the store is exhausted.
func (s FeedSource) FetchMore(ctx context.Context, index int) ([]reading.Item, error) {
	return s.page(ctx, s.logger("fetch_more"), index)
}

func (s FeedSource) sync(ctx context.Context, log zerolog.Logger) (int, error) {
	urls, err := s.Feeds.List()
	if err != nil {
		return 0, fmt.Errorf("list feeds: %w", err)
	}
	if len(urls) == 0 {
		return 0, ErrNoFeeds
	}

	items, report, err := s.Fetcher.FetchAll(ctx, urls, s.Options)
	log.Info().
		Int("requested", report.Requested).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Int("timed_out", report.TimedOut).
		Msg("feeds fetched")
	if err != nil {
		return 0, fmt.Errorf("fetch feeds: %w", err)
	}

	inserted, err := s.Store.Upsert(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("store items: %w", err)
	}
	log.Info().Int("inserted", inserted).Msg("items stored")
	return inserted, nil
}

func (s FeedSource) page(ctx context.Context, log zerolog.Logger, index int) ([]reading.Item, error) {
	p := paging.Page{Index: index, Size: s.PageSize}
	if err := p.Valid(); err != nil {
		return nil, err
	}
	items, err := s.Store.Page(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("load page %d: %w", index, err)
	}
	log.Debug().Int("index", index).Int("count", len(items)).Msg("page loaded")
	if items == nil {
		items = []reading.Item{}
	}
	return items, nil
}

func (s FeedSource) logger(op string) zerolog.Logger {
	base := zerolog.Nop()
	if s.Logger != nil {
		base = *s.Logger
	}
	newID := s.NewID
	if newID == nil {
		newID = newRequestID
	}
	return base.With().Str("op", op).Str("req_id", newID()).Logger()
}

func newRequestID() string {
	return ulid.Make().String()
}
