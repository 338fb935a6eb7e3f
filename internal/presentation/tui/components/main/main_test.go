package mainview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRender(t *testing.T) {
	got := Render(Props{Width: 20, Height: 4, Body: "BODY"})

	if !strings.Contains(got, "BODY") {
		t.Error("Missing body")
	}
	if h := lipgloss.Height(got); h != 4 {
		t.Errorf("height = %d, want 4", h)
	}
}

func TestRender_ClipsTallBody(t *testing.T) {
	got := Render(Props{Width: 10, Height: 2, Body: "a\nb\nc\nd"})

	if h := lipgloss.Height(got); h != 2 {
		t.Errorf("height = %d, want 2", h)
	}
	if strings.Contains(got, "c") {
		t.Errorf("clipped lines leaked: %q", got)
	}
}
