package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubSubscriptionRepo struct {
	mock.Mock
	feeds []string
}

func (s *stubSubscriptionRepo) List() ([]string, error) {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called()
		feeds, _ := args.Get(0).([]string)
		return feeds, args.Error(1)
	}
	out := make([]string, len(s.feeds))
	copy(out, s.feeds)
	return out, nil
}

func (s *stubSubscriptionRepo) Add(url string) error {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(url)
		return args.Error(0)
	}
	s.feeds = append(s.feeds, url)
	return nil
}

func (s *stubSubscriptionRepo) Remove(index int) error {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(index)
		return args.Error(0)
	}
	if index < 0 || index >= len(s.feeds) {
		return nil
	}
	s.feeds = append(s.feeds[:index], s.feeds[index+1:]...)
	return nil
}

func TestSubscriptionAddTrimsWhitespace(t *testing.T) {
	repo := &stubSubscriptionRepo{}
	svc := NewSubscriptionService(repo)

	feeds, err := svc.Add("  https://github.com/golang/go/releases.atom\t")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://github.com/golang/go/releases.atom"}, feeds)
	assert.Equal(t, feeds, repo.feeds)
}

func TestSubscriptionAddValidation(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{name: "blank", url: " \t\n", wantErr: ErrEmptyFeedURL},
		{name: "whitespace inside", url: "https://example.com/rss another", wantErr: ErrInvalidFeedURL},
		{name: "no scheme", url: "example.com/rss", wantErr: ErrInvalidFeedURL},
		{name: "unsupported scheme", url: "ftp://example.com/rss", wantErr: ErrInvalidFeedURL},
		{name: "no host", url: "https:///rss", wantErr: ErrInvalidFeedURL},
		{name: "duplicate", url: "https://example.com/rss", wantErr: ErrDuplicateFeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubSubscriptionRepo{feeds: []string{"https://example.com/rss"}}
			svc := NewSubscriptionService(repo)

			feeds, err := svc.Add(tt.url)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, feeds)
			assert.Equal(t, []string{"https://example.com/rss"}, repo.feeds, "nothing stored")
		})
	}
}

func TestSubscriptionAddPropagatesRepositoryError(t *testing.T) {
	boom := errors.New("read-only config")
	repo := &stubSubscriptionRepo{}
	repo.On("List").Return([]string{}, nil).Once()
	repo.On("Add", "https://example.com/rss").Return(boom).Once()
	svc := NewSubscriptionService(repo)

	_, err := svc.Add("https://example.com/rss")

	assert.ErrorIs(t, err, boom)
	repo.AssertExpectations(t)
}

func TestSubscriptionRemove(t *testing.T) {
	repo := &stubSubscriptionRepo{feeds: []string{"a", "b", "c"}}
	svc := NewSubscriptionService(repo)

	feeds, err := svc.Remove(1)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, feeds)
}

func TestSubscriptionRemoveUnknownIndex(t *testing.T) {
	for _, index := range []int{-1, 3, 10} {
		repo := &stubSubscriptionRepo{feeds: []string{"a", "b", "c"}}
		svc := NewSubscriptionService(repo)

		_, err := svc.Remove(index)

		assert.ErrorIs(t, err, ErrFeedNotFound, "index %d", index)
		assert.Len(t, repo.feeds, 3)
	}
}

func TestSubscriptionRemovePropagatesError(t *testing.T) {
	boom := errors.New("disk full")
	repo := &stubSubscriptionRepo{}
	repo.On("List").Return([]string{"a", "b"}, nil).Once()
	repo.On("Remove", 1).Return(boom).Once()
	svc := NewSubscriptionService(repo)

	_, err := svc.Remove(1)

	assert.ErrorIs(t, err, boom)
	repo.AssertExpectations(t)
}
