package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/eclipsehunter/internal/orrery"
	"github.com/san-kum/eclipsehunter/internal/sim"
)

var (
	ColControlsBg = rl.NewColor(0, 50, 0, 220)
	ColTrackerBg  = rl.NewColor(0, 0, 50, 220)
	ColInfoBg     = rl.NewColor(0, 0, 0, 200)
	ColShadow     = rl.NewColor(100, 0, 0, 255)
)

func color(c orrery.RGB) rl.Color { return rl.NewColor(c.R, c.G, c.B, 255) }

func alpha(c orrery.RGB, a uint8) rl.Color { return rl.NewColor(c.R, c.G, c.B, a) }

func (a *App) text(s string, x, y, size float32, c rl.Color) {
	rl.DrawTextEx(a.Font, s, rl.NewVector2(x, y), size, 1, c)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(color(orrery.Black))

	sys := a.Sim.System()
	for _, st := range a.Sim.Stars() {
		b := st.Brightness
		rl.DrawCircle(int32(st.X), int32(st.Y), float32(st.Size), rl.NewColor(b, b, b, 255))
	}

	a.drawSun(sys)
	for _, p := range sys.Planets() {
		a.drawPlanet(sys, p)
	}
	a.drawMoon(sys.Moon())

	if a.Sim.BannerActive() {
		a.drawBanner(sys)
	}
	if a.Sim.ShowInstructions() {
		a.drawPanel(panel{x: 10, y: 10, w: 280, h: 180, bg: ColControlsBg, border: color(orrery.Green),
			title: "CONTROLS", titleSize: 26, textSize: 22, top: 45, step: 28}, sim.ControlLines(a.Sim.Speed()), nil)
	}
	a.drawPanel(panel{x: orrery.WorldWidth - 290, y: 10, w: 280, h: 140, bg: ColTrackerBg, border: color(orrery.LightBlue),
		title: "ECLIPSE TRACKER", titleSize: 28, textSize: 24, top: 45, step: 30},
		sim.TrackerLines(a.Sim.Stats()), []rl.Color{color(orrery.White), color(orrery.White), color(orrery.Green)})
	if b := a.Sim.Selected(); b != nil {
		a.drawPanel(panel{x: orrery.WorldWidth - 320, y: orrery.WorldHeight - 220, w: 300, h: 200, bg: ColInfoBg, border: color(orrery.Gold),
			title: b.Name, titleSize: 32, textSize: 22, top: 50, step: 30}, b.Info, nil)
	}
}

func (a *App) drawSun(sys *orrery.System) {
	c := sys.Sun()
	r := float32(sys.SunRadius())
	for i := 0; i < 5; i++ {
		rl.DrawCircle(int32(c.X), int32(c.Y), r+float32(i*5), alpha(orrery.Yellow, uint8(40-i*8)))
	}
	rl.DrawCircle(int32(c.X), int32(c.Y), r, color(orrery.Yellow))
}

func (a *App) drawPlanet(sys *orrery.System, p orrery.Body) {
	c := sys.Sun()
	rl.DrawCircleLines(int32(c.X), int32(c.Y), float32(p.OrbitRadius), color(orrery.DarkGray))

	x, y := int32(p.Pos.X), int32(p.Pos.Y)
	r := float32(p.Radius)
	for i := 0; i < 3; i++ {
		rl.DrawCircle(x, y, r+float32(i*3), alpha(p.Color, uint8(30-i*10)))
	}
	rl.DrawCircle(x, y, r, color(p.Color))

	if p.Selected {
		rl.DrawRing(rl.NewVector2(float32(x), float32(y)), r+1, r+3, 0, 360, 48, color(orrery.Gold))
	}
	a.text(p.Name, float32(x-20), float32(y-30), 20, color(orrery.White))
}

func (a *App) drawMoon(m *orrery.Moon) {
	x, y := int32(m.Pos.X), int32(m.Pos.Y)
	r := float32(m.Radius)
	rl.DrawCircle(x, y, r+2, rl.NewColor(200, 200, 200, 20))
	rl.DrawCircle(x, y, r, color(m.Color))
}

// drawBanner shows the pulsing notice and the ring around the eclipsed
// planet.
func (a *App) drawBanner(sys *orrery.System) {
	pulse := float32(a.Sim.BannerPulse())
	size := 60 * pulse
	const msg = "ECLIPSE!"
	w := rl.MeasureTextEx(a.Font, msg, size, 1)
	x := float32(orrery.WorldWidth)/2 - w.X/2
	y := 80 - w.Y/2
	a.text(msg, x+3, y+3, size, ColShadow)
	a.text(msg, x, y, size, color(orrery.Red))

	p := sys.MoonParent().Pos
	ring := float32(a.Sim.BannerRing())
	rl.DrawRing(rl.NewVector2(float32(p.X), float32(p.Y)), ring-3, ring, 0, 360, 64, rl.NewColor(255, 0, 0, 255))
}

type panel struct {
	x, y, w, h          float32
	bg, border          rl.Color
	title               string
	titleSize, textSize float32
	// top is the offset of the first row, step the distance between rows.
	top, step float32
}

// drawPanel draws a filled, outlined box with a title and one row per
// line. lineColors, when given, colors the rows in order; missing entries
// are white.
func (a *App) drawPanel(p panel, lines []string, lineColors []rl.Color) {
	rec := rl.NewRectangle(p.x, p.y, p.w, p.h)
	rl.DrawRectangleRounded(rec, 0.1, 8, p.bg)
	rl.DrawRectangleLinesEx(rec, 2, p.border)

	a.text(p.title, p.x+10, p.y+10, p.titleSize, p.border)
	ty := p.y + p.top
	for i, l := range lines {
		c := color(orrery.White)
		if i < len(lineColors) {
			c = lineColors[i]
		}
		a.text(l, p.x+10, ty, p.textSize, c)
		ty += p.step
	}
}
