// Package viz renders a running simulation in the terminal with Bubble Tea.
//
//   - [Model]: live view that owns the simulator and ticks it each frame
//   - [Picker]: preset menu that hands over to a [Model]
//   - [Canvas]: braille pixel canvas with per-cell colour
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Spawn a sphere
//	D     - Delete the oldest sphere
//	C     - Clear all spheres
//	S     - Toggle collision sound
//	V     - Toggle velocity vectors
//	T     - Cycle themes
//	?     - Show help overlay
package viz
