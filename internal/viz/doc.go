// Package viz is the terminal front end of the orrery.
//
// The scene is drawn on a braille [Canvas], two dots wide and four tall per
// cell, with one color per cell. The world is scaled to fit the space left
// of the panel column. [Model] is a Bubble Tea model that ticks the
// simulation at the configured frame rate.
//
// # Key Bindings
//
//	Space    - Pause/Resume
//	Up/K/+   - Faster (0.5 steps, up to 10x)
//	Down/J/- - Slower (down to 0.5x)
//	H/?      - Show/Hide the controls panel
//	Tab      - Select the next planet
//	Esc      - Clear the selection
//	T        - Cycle color themes
//	S        - Save the canvas as eclipse_<frame>.svg
//	Q        - Quit
//
// A left click selects the planet under the pointer.
package viz
