// Package viz renders simulations in the terminal.
//
// [Model] is a Bubble Tea program that steps an orbital.Simulation live and
// overlays a speculative preview of the tracked body. [Canvas] is the
// braille canvas it draws on; [PlotTrajectory] and [PlotPath] produce static
// charts for recorded runs.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset to the initial state
//	P     - Toggle the preview trail
//	+/-   - Zoom
//	Q     - Quit
package viz
