// Package viz provides the terminal visualization for running scenes.
//
// The package implements a live TUI using the Bubble Tea framework:
//
//   - [Model]: live arena view with pause, reset, and GIF recording
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// The live view can record sessions as GIF animations using the G key.
// Recordings are saved to the current directory.
package viz
