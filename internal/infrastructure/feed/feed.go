// Package feed provides functionality to fetch and parse RSS/Atom feeds.
package feed

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
	"github.com/tesso57/pullfeed/internal/application/usecase"
	"github.com/tesso57/pullfeed/internal/domain/reading"
	"golang.org/x/sync/errgroup"
)

const feedAcceptHeader = "application/atom+xml, application/rss+xml, application/feed+json, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"

const defaultConcurrency = 4

type acceptTransport struct {
	base http.RoundTripper
}

func (t acceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	if clone.Header.Get("Accept") == "" {
		clone.Header.Set("Accept", feedAcceptHeader)
	}
	return base.RoundTrip(clone)
}

// ParserFunc parses the feed at url. Tests replace it.
var ParserFunc = defaultParser

func defaultParser(ctx context.Context, url string) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "pullfeed/1.0"
	fp.Client = &http.Client{Transport: acceptTransport{base: http.DefaultTransport}}
	return fp.ParseURLWithContext(url, ctx)
}

// FetchWithContext parses a feed from the given URL.
func FetchWithContext(ctx context.Context, url string) (*reading.Feed, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("feed url is empty")
	}
	parsed, err := ParserFunc(ctx, url)
	if err != nil {
		return nil, err
	}

	f := new(reading.Feed{
		Title: parsed.Title,
		URL:   url,
		Items: make([]reading.Item, len(parsed.Items)),
	})
	for i, item := range parsed.Items {
		pub := item.Published
		if pub == "" {
			pub = item.Updated
		}
		var date time.Time
		if item.PublishedParsed != nil {
			date = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			date = *item.UpdatedParsed
		}

		f.Items[i] = reading.Item{
			GUID:        item.GUID,
			Title:       item.Title,
			Link:        item.Link,
			Published:   pub,
			Description: item.Description,
			Date:        date,
			FeedTitle:   parsed.Title,
			FeedURL:     url,
		}
	}
	return f, nil
}

// Fetcher fetches many feeds with bounded concurrency. It implements
// usecase.FeedFetcher.
type Fetcher struct {
	// Concurrency caps parallel requests. Zero means 4.
	Concurrency int
	Logger      *zerolog.Logger
}

// NewFetcher constructs a Fetcher logging to logger.
func NewFetcher(logger *zerolog.Logger) *Fetcher {
	return &Fetcher{Concurrency: defaultConcurrency, Logger: logger}
}

// FetchAll parses every feed in urls and returns their items newest first.
// Individual failures are counted in the report, never returned.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string, opt usecase.FeedFetchOptions) ([]reading.Item, usecase.FeedFetchReport, error) {
	log := f.logger()
	report := usecase.FeedFetchReport{}

	if opt.BatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opt.BatchTimeout)
		defer cancel()
	}

	var mu sync.Mutex
	var items []reading.Item

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency())
	for _, url := range urls {
		url := strings.TrimSpace(url)
		if url == "" {
			continue
		}
		report.Requested++
		g.Go(func() error {
			feedCtx := gCtx
			if opt.PerFeedTimeout > 0 {
				var cancel context.CancelFunc
				feedCtx, cancel = context.WithTimeout(gCtx, opt.PerFeedTimeout)
				defer cancel()
			}

			parsed, err := FetchWithContext(feedCtx, url)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				report.Succeeded++
				items = append(items, parsed.Items...)
				log.Debug().Str("feed", url).Int("count", len(parsed.Items)).Msg("feed fetched")
			case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
				report.TimedOut++
				log.Warn().Str("feed", url).Err(err).Msg("feed timed out")
			default:
				report.Failed++
				log.Warn().Str("feed", url).Err(err).Msg("feed failed")
			}
			// one feed failing must not cancel the others
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})

	if report.Requested > 0 && report.Succeeded == 0 {
		return nil, report, usecase.ErrAllFeedsFailed
	}
	return items, report, nil
}

func (f *Fetcher) concurrency() int {
	if f.Concurrency > 0 {
		return f.Concurrency
	}
	return defaultConcurrency
}

func (f *Fetcher) logger() *zerolog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	nop := zerolog.Nop()
	return &nop
}
