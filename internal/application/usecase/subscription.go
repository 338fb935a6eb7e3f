package usecase

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

var (
	// ErrEmptyFeedURL is returned when a blank feed URL is added.
	ErrEmptyFeedURL = errors.New("feed url is empty")
	// ErrInvalidFeedURL is returned for URLs that are not absolute http(s) URLs.
	ErrInvalidFeedURL = errors.New("invalid feed url")
	// ErrDuplicateFeed is returned when the feed is already subscribed.
	ErrDuplicateFeed = errors.New("feed already subscribed")
	// ErrFeedNotFound is returned when removing a feed number that does not exist.
	ErrFeedNotFound = errors.New("feed not found")
)

// SubscriptionRepository abstracts persistence for feed subscriptions.
type SubscriptionRepository interface {
	List() ([]string, error)
	Add(url string) error
	Remove(index int) error
}

// SubscriptionService validates subscription changes before they reach the
// repository. FeedSource reads the same repository on every refresh.
type SubscriptionService struct {
	Repo SubscriptionRepository
}

// NewSubscriptionService constructs a SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository) SubscriptionService {
	return SubscriptionService{Repo: repo}
}

// List returns all subscribed feed URLs.
func (s SubscriptionService) List() ([]string, error) {
	return s.Repo.List()
}

// Add subscribes to rawURL and returns the updated list.
func (s SubscriptionService) Add(rawURL string) ([]string, error) {
	feedURL, err := normalizeFeedURL(rawURL)
	if err != nil {
		return nil, err
	}
	current, err := s.Repo.List()
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}
	if slices.Contains(current, feedURL) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateFeed, feedURL)
	}
	if err := s.Repo.Add(feedURL); err != nil {
		return nil, fmt.Errorf("add feed: %w", err)
	}
	return s.Repo.List()
}

// Remove unsubscribes the feed at the 0-based index and returns the updated
// list.
func (s SubscriptionService) Remove(index int) ([]string, error) {
	current, err := s.Repo.List()
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}
	if index < 0 || index >= len(current) {
		return nil, fmt.Errorf("%w: #%d", ErrFeedNotFound, index+1)
	}
	if err := s.Repo.Remove(index); err != nil {
		return nil, fmt.Errorf("remove feed: %w", err)
	}
	return s.Repo.List()
}

func normalizeFeedURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyFeedURL
	}
	if strings.ContainsAny(trimmed, " \t\r\n") {
		return "", fmt.Errorf("%w: contains whitespace", ErrInvalidFeedURL)
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFeedURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidFeedURL, trimmed)
	}
	return trimmed, nil
}
