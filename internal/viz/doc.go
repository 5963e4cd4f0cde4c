// Package viz renders ReaxFF results in the terminal.
//
// Static output uses lipgloss tables and asciigraph curves. The explorer is
// a Bubble Tea program that draws the molecule on a braille canvas and
// re-evaluates every energy term as atoms are moved.
//
// # Key Bindings
//
//	Tab     - Select next atom (Shift+Tab previous)
//	x/y/z   - Move the selected atom along +axis (X/Y/Z for -axis)
//	+/-     - Double or halve the move step
//	Arrows  - Rotate the view
//	T       - Cycle color themes
//	R       - Reset to the initial geometry
//	?       - Show help overlay
package viz
