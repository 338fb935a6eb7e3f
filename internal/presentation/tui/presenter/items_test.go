package presenter

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/tesso57/pullfeed/internal/domain/reading"
)

func plainRows(width int) *Rows {
	return &Rows{Width: width, FeedStyle: lipgloss.NewStyle(), DateStyle: lipgloss.NewStyle()}
}

func TestRowsRender(t *testing.T) {
	date := time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)

	tests := []struct {
		name  string
		item  reading.Item
		index int
		want  string
	}{
		{
			name:  "feed title and date",
			item:  reading.Item{Title: "Hello", FeedTitle: "HN", Date: date},
			index: 0,
			want:  "  1. [HN] Hello  Mar 01 09:30",
		},
		{
			name:  "no feed, no date",
			item:  reading.Item{Title: "Plain"},
			index: 41,
			want:  " 42. Plain",
		},
		{
			name:  "title collapses whitespace",
			item:  reading.Item{Title: "Multi\n  line\ttitle"},
			index: 2,
			want:  "  3. Multi line title",
		},
		{
			name:  "link fallback",
			item:  reading.Item{Link: "https://example.com/a"},
			index: 0,
			want:  "  1. https://example.com/a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plainRows(0).Render(tt.item, tt.index); got != tt.want {
				t.Fatalf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRowsRender_TruncatesToWidth(t *testing.T) {
	r := NewRows("244")
	r.Width = 20
	got := r.Render(reading.Item{Title: strings.Repeat("long ", 20), FeedTitle: "Feed"}, 0)

	if w := ansi.StringWidth(got); w > 20 {
		t.Fatalf("rendered width = %d, want <= 20 (%q)", w, got)
	}
	if strings.Contains(got, "\n") {
		t.Fatalf("row must be a single line: %q", got)
	}
}

func TestTitle(t *testing.T) {
	if got := Title(reading.Item{}); got != "(untitled)" {
		t.Fatalf("Title() = %q", got)
	}
}
