package viz

import (
	"fmt"
	"log"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/eclipsehunter/internal/dynamo"
	"github.com/san-kum/eclipsehunter/internal/orrery"
	"github.com/san-kum/eclipsehunter/internal/sim"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// canvasTop is the number of rows above the canvas: header and banner.
	canvasTop = 2
	sidebar   = panelWidth + 4
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd700"))
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff0000"))
	shadowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#640000"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
)

type TickMsg time.Time

// Options are the front-end settings that do not belong to the loop.
type Options struct {
	FPS     int
	Theme   string
	History int
}

// Model renders a Simulation on a braille canvas and feeds it keys,
// clicks and ticks.
type Model struct {
	sim           *sim.Simulation
	canvas        *Canvas
	theme         Theme
	interval      time.Duration
	width, height int
	scale         float64
	offX, offY    float64
	offsets       []float64
	historyCap    int
}

func NewModel(s *sim.Simulation, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	m := Model{
		sim:        s,
		theme:      GetTheme(opts.Theme),
		interval:   time.Second / time.Duration(opts.FPS),
		historyCap: opts.History,
		offsets:    make([]float64, 0, opts.History),
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "space":
			m.sim.TogglePause()
		case "up", "k", "+":
			m.sim.SpeedUp()
		case "down", "j", "-":
			m.sim.SpeedDown()
		case "h", "?":
			m.sim.ToggleInstructions()
		case "tab":
			m.sim.CycleSelection()
		case "esc":
			m.sim.ClearSelection()
		case "r":
			m.sim.ResetStats()
		case "t":
			m.theme = NextTheme(m.theme)
		case "s":
			m.snapshot()
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if p, ok := m.worldAt(msg.X, msg.Y); ok {
				m.sim.SelectAt(p, m.slack())
			}
		}
	case TickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	paused := m.sim.Paused()
	if m.sim.Tick() {
		s := m.sim.Stats()
		log.Printf("eclipse #%d at frame %d (%dy %dm)", s.Count, s.Frames, s.Years, s.Months)
	}
	if paused || m.historyCap <= 0 {
		return
	}
	m.offsets = append(m.offsets, m.sim.Last().Distances.Offset())
	if len(m.offsets) > m.historyCap {
		m.offsets = m.offsets[1:]
	}
}

// resize fits the world into the space left of the sidebar, keeping dots
// square.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cw := max(w-sidebar, 20)
	ch := max(h-canvasTop-1, 8)
	m.canvas = NewCanvas(cw, ch)

	sw, sh := float64(m.canvas.SubWidth()), float64(m.canvas.SubHeight())
	m.scale = math.Min(sw/orrery.WorldWidth, sh/orrery.WorldHeight)
	m.offX = (sw - orrery.WorldWidth*m.scale) / 2
	m.offY = (sh - orrery.WorldHeight*m.scale) / 2
}

func (m *Model) toDots(p dynamo.Vec2) (int, int) {
	return int(math.Round(m.offX + p.X*m.scale)), int(math.Round(m.offY + p.Y*m.scale))
}

func (m *Model) dots(r float64) int { return int(math.Round(r * m.scale)) }

// worldAt maps a terminal cell to the world point under the middle of the
// cell.
func (m *Model) worldAt(x, y int) (dynamo.Vec2, bool) {
	row := y - canvasTop
	if x < 0 || x >= m.canvas.Width || row < 0 || row >= m.canvas.Height {
		return dynamo.Vec2{}, false
	}
	sx, sy := float64(x*2+1), float64(row*4+2)
	return dynamo.Vec2{X: (sx - m.offX) / m.scale, Y: (sy - m.offY) / m.scale}, true
}

// slack is about one cell in world pixels, so a click on the cell that
// shows a planet hits it.
func (m *Model) slack() float64 { return 2 / m.scale }

func (m *Model) draw() {
	c := m.canvas
	c.Clear()
	sys := m.sim.System()

	for _, st := range m.sim.Stars() {
		x, y := m.toDots(dynamo.Vec2{X: st.X, Y: st.Y})
		b := st.Brightness
		c.SetColor(x, y, lipgloss.Color(orrery.RGB{R: b, G: b, B: b}.Hex()))
	}

	cx, cy := m.toDots(sys.Sun())
	for _, p := range sys.Planets() {
		c.DrawCircle(cx, cy, m.dots(p.OrbitRadius), m.theme.Orbit)
	}

	sunR := m.dots(sys.SunRadius())
	c.DrawCircle(cx, cy, sunR+2, lipgloss.Color("#806a00"))
	c.FillCircle(cx, cy, sunR, lipgloss.Color(orrery.Yellow.Hex()))

	for _, p := range sys.Planets() {
		x, y := m.toDots(p.Pos)
		r := max(m.dots(p.Radius), 1)
		c.FillCircle(x, y, r, lipgloss.Color(p.Color.Hex()))
		if p.Selected {
			c.DrawCircle(x, y, r+2, lipgloss.Color(orrery.Gold.Hex()))
		}
	}

	moon := sys.Moon()
	mx, my := m.toDots(moon.Pos)
	c.FillCircle(mx, my, m.dots(moon.Radius), lipgloss.Color(moon.Color.Hex()))

	if m.sim.BannerActive() {
		px, py := m.toDots(sys.MoonParent().Pos)
		c.DrawCircle(px, py, m.dots(m.sim.BannerRing()), m.theme.Alert)
	}

	// labels last so the bodies above never cover them
	for _, p := range sys.Planets() {
		x, y := m.toDots(p.Pos)
		r := max(m.dots(p.Radius), 1)
		c.Label(x-m.dots(20), y-r-4, p.Name, lipgloss.Color(orrery.White.Hex()))
	}
}

// snapshot writes the current canvas to eclipse_<frame>.svg in the working
// directory.
func (m *Model) snapshot() {
	m.draw()
	name := fmt.Sprintf("eclipse_%d.svg", m.sim.Stats().Frames)
	if err := os.WriteFile(name, []byte(m.canvas.SVG(4)), 0644); err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	log.Printf("snapshot saved to %s", name)
}

func (m Model) header() string {
	status := StatusRunning.Render("▶ RUNNING")
	if m.sim.Paused() {
		status = StatusPaused.Render("⏸ PAUSED")
	}
	return fmt.Sprintf("%s  %s  %s", headerStyle.Render("ECLIPSE HUNTER"), status,
		KeyHint.Render(fmt.Sprintf("speed %gx  seed %d  theme %s", m.sim.Speed(), m.sim.Seed(), m.theme.Name)))
}

// banner is the pulsing eclipse notice. The pulse widens the spacing
// between the letters.
func (m Model) banner() string {
	if !m.sim.BannerActive() {
		return ""
	}
	gap := strings.Repeat(" ", int(math.Round(2*(m.sim.BannerPulse()-0.7))))
	text := strings.Join(strings.Split("ECLIPSE!", ""), gap)
	pad := max((m.canvas.Width-lipgloss.Width(text))/2, 0)
	return strings.Repeat(" ", pad) + bannerStyle.Render(text) + shadowStyle.Render(" ░")
}

func (m Model) sidebarView() string {
	var parts []string
	if m.sim.ShowInstructions() {
		parts = append(parts, controlsPanel(m.theme, m.sim.Speed()))
	}
	parts = append(parts, trackerPanel(m.theme, m.sim.Stats()))
	if b := m.sim.Selected(); b != nil {
		parts = append(parts, infoPanel(m.theme, b))
	}
	if len(m.offsets) > 1 {
		chart := asciigraph.Plot(m.offsets,
			asciigraph.Height(5),
			asciigraph.Width(panelWidth-8),
			asciigraph.Caption("moon offset from "+m.sim.System().MoonParent().Name+" (px)"))
		parts = append(parts, graphStyle.Render(chart))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) View() string {
	m.draw()
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.Render(), " ", m.sidebarView())
	return m.header() + "\n" + m.banner() + "\n" + body
}

// Run starts the terminal program and blocks until the user quits.
func Run(s *sim.Simulation, opts Options) error {
	p := tea.NewProgram(NewModel(s, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
