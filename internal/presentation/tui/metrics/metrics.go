// Package metrics centralizes layout constants for the TUI.
package metrics

const (
	HeaderLines  = 1
	MinBodyLines = 3

	// ItemIndexWidth is the width of the "123. " prefix on article rows.
	ItemIndexWidth = 5
)
