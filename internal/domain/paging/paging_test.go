package paging

import (
	"errors"
	"testing"
)

func TestPageOffset(t *testing.T) {
	tests := []struct {
		page Page
		want int
	}{
		{page: Page{Index: 1, Size: 20}, want: 0},
		{page: Page{Index: 2, Size: 20}, want: 20},
		{page: Page{Index: 5, Size: 3}, want: 12},
	}
	for _, tt := range tests {
		if got := tt.page.Offset(); got != tt.want {
			t.Fatalf("%+v.Offset() = %d, want %d", tt.page, got, tt.want)
		}
	}
}

func TestPageValid(t *testing.T) {
	if err := (Page{Index: FirstPage, Size: 1}).Valid(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range []Page{{Index: 0, Size: 10}, {Index: 1, Size: 0}, {Index: -2, Size: -1}} {
		if err := p.Valid(); !errors.Is(err, ErrInvalidPage) {
			t.Fatalf("%+v.Valid() = %v, want ErrInvalidPage", p, err)
		}
	}
}
