// Package viz renders simulations in the terminal.
//
// Static output, used by the CLI reports:
//
//   - [RenderComparison]: per-body discrepancy table for one run
//   - [RenderSchemeTable]: side by side discrepancies of several schemes
//   - [PlotSeries]: asciigraph line plot of a sampled coordinate
//
// Interactive output, built on Bubble Tea:
//
//   - [LiveModel]: steps a system and draws every body on a Braille [Canvas]
//   - [NewPicker]: menu that selects a system and a scheme, then goes live
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	C     - Cycle the body the view is centered on
//	+/-   - Zoom in/out
//	F/S   - More/fewer steps per frame
//	E     - Toggle ecliptic view
//	X/Y/Z - Rotate the view (shift reverses)
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
