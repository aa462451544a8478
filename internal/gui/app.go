package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/eclipsehunter/internal/dynamo"
	"github.com/san-kum/eclipsehunter/internal/orrery"
	"github.com/san-kum/eclipsehunter/internal/sim"
)

const title = "Eclipse Hunter - Solar System Simulator"

type App struct {
	Sim  *sim.Simulation
	Font rl.Font
	quit bool
}

// initWindow opens a window the size of the world and disables the default
// exit key so Escape can clear the selection.
func initWindow(fps int) {
	rl.InitWindow(orrery.WorldWidth, orrery.WorldHeight, title)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont falls back to raylib's built-in font when the system font is
// missing.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationSans-Regular.ttf", 64, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(s *sim.Simulation) *App {
	return &App{Sim: s, Font: loadFont()}
}

// Run opens the window and blocks until it is closed.
func Run(s *sim.Simulation, fps int) {
	initWindow(fps)
	defer rl.CloseWindow()
	app := NewApp(s)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		a.quit = true
		return
	case rl.IsKeyPressed(rl.KeySpace):
		a.Sim.TogglePause()
	case rl.IsKeyPressed(rl.KeyUp):
		a.Sim.SpeedUp()
	case rl.IsKeyPressed(rl.KeyDown):
		a.Sim.SpeedDown()
	case rl.IsKeyPressed(rl.KeyH):
		a.Sim.ToggleInstructions()
	case rl.IsKeyPressed(rl.KeyTab):
		a.Sim.CycleSelection()
	case rl.IsKeyPressed(rl.KeyEscape):
		a.Sim.ClearSelection()
	case rl.IsKeyPressed(rl.KeyR):
		a.Sim.ResetStats()
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		p := rl.GetMousePosition()
		a.Sim.SelectAt(dynamo.Vec2{X: float64(p.X), Y: float64(p.Y)}, 0)
	}

	a.Sim.Tick()
}
