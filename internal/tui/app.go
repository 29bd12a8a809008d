// Package tui is the terminal host: a Bubble Tea program that feeds mouse
// and focus events into an engine.Manager bound to a Braille canvas.
package tui

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/trails/internal/config"
	"github.com/san-kum/trails/internal/engine"
	"github.com/san-kum/trails/internal/metrics"
	"github.com/san-kum/trails/internal/physics"
	"github.com/san-kum/trails/internal/surface"
	"github.com/san-kum/trails/internal/viz"
)

const (
	stateMenu = iota
	stateLive
)

const (
	headerLines = 2 // title plus its bottom border
	chromeLines = headerLines + 2
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

var presetInfo = map[string]string{
	"classic": "the reference look",
	"silk":    "long soft ribbons",
	"comet":   "short bright tails",
	"storm":   "loose springs, fast hue",
}

type tickMsg time.Time

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Options configures the terminal host.
type Options struct {
	// Config starts the renderer straight away. When nil the preset menu
	// is shown first.
	Config *config.Config
	Name   string
	Seed   int64
	Logger *log.Logger
}

type Model struct {
	state   int
	presets []string
	cursor  int
	name    string
	cfg     *config.Config
	seed    int64
	logger  *log.Logger

	canvas   *viz.Canvas
	registry *surface.Registry
	queue    *engine.FrameQueue
	mgr      *engine.Manager
	energy   *metrics.Series

	width, height int
	paused        bool
	keys          keyMap
	help          help.Model
}

func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	m := Model{
		state:   stateMenu,
		presets: config.ListPresets(),
		seed:    opts.Seed,
		logger:  logger,
		width:   80,
		height:  24,
		keys:    newKeyMap(),
		help:    help.New(),
	}
	m.keys.inMenu = true
	if opts.Config != nil {
		name := opts.Name
		if name == "" {
			name = "custom"
		}
		m.start(opts.Config, name)
	}
	return m
}

func (m Model) fps() int {
	if m.cfg != nil && m.cfg.FPS > 0 {
		return m.cfg.FPS
	}
	return config.DefaultFPS
}

func (m Model) Init() tea.Cmd { return tick(m.fps()) }

// viewport is the window size handed to the manager. The manager takes the
// margin off the width, so it is added back here to fill the terminal.
func (m Model) viewport() surface.Size {
	rows := max(m.height-chromeLines, 1)
	margin := 0
	if m.cfg != nil {
		margin = m.cfg.Margin
	}
	return surface.Size{
		W: int(float64(m.width*2)*viz.DefaultScale) + margin,
		H: int(float64(rows*4) * viz.DefaultScale),
	}
}

func (m *Model) start(cfg *config.Config, name string) {
	m.cfg = cfg
	m.name = name
	m.canvas = viz.NewCanvas(1, 1)
	m.registry = surface.NewRegistry()
	m.registry.Register(cfg.SurfaceID, m.canvas)
	m.queue = &engine.FrameQueue{}

	ctl := engine.NewController(cfg.Options(), rand.New(rand.NewSource(m.seed)))
	m.mgr = engine.NewManager(ctl, m.registry, m.queue, m.logger)
	m.mgr.Bind(cfg.SurfaceID, m.viewport())
	m.energy = metrics.NewSeries(metrics.NewKineticEnergy(), 60)

	m.paused = false
	m.state = stateLive
	m.keys.inMenu = false
}

func (m *Model) stop() {
	if m.mgr != nil {
		m.mgr.Unbind()
	}
	m.state = stateMenu
	m.keys.inMenu = true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.state == stateLive {
			m.mgr.Dispatch(engine.Resize{Viewport: m.viewport()})
		}
	case tea.MouseMsg:
		if m.state == stateLive {
			m.mouse(msg)
		}
	case tea.FocusMsg:
		if m.state == stateLive && !m.paused {
			m.mgr.Dispatch(engine.Focus{})
		}
	case tea.BlurMsg:
		if m.state == stateLive {
			m.mgr.Dispatch(engine.Blur{})
		}
	case tickMsg:
		if m.state == stateLive && m.queue.RunFrame() > 0 {
			m.energy.Metric.Observe(m.mgr.Controller())
			m.energy.Sample()
		}
		return m, tick(m.fps())
	}
	return m, nil
}

// mouse turns a left-button press or drag into touch events and plain
// motion into pointer moves.
func (m *Model) mouse(msg tea.MouseMsg) {
	row := msg.Y - headerLines
	if row < 0 || row >= m.canvas.Height || msg.X < 0 {
		return
	}
	x, y := m.canvas.CellToSurface(msg.X, row)
	p := physics.Vec2{X: x, Y: y}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.mgr.Dispatch(engine.TouchStart{Touches: []physics.Vec2{p}})
	case msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonLeft:
		m.mgr.Dispatch(engine.TouchMove{Touches: []physics.Vec2{p}})
	case msg.Action == tea.MouseActionMotion:
		m.mgr.Dispatch(engine.PointerMove{Pos: p})
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if m.state == stateMenu {
		return m.menuKey(msg)
	}
	return m.liveKey(msg)
}

func (m Model) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Start):
		name := m.presets[m.cursor]
		cfg, err := config.GetPreset(name)
		if err != nil {
			m.logger.Printf("preset %s: %v", name, err)
			return m, nil
		}
		m.start(cfg, name)
	}
	return m, nil
}

func (m Model) liveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if m.paused {
			m.mgr.Dispatch(engine.Blur{})
		} else {
			m.mgr.Dispatch(engine.Focus{})
		}
	case key.Matches(msg, m.keys.Reset):
		m.paused = false
		m.mgr.Bind(m.cfg.SurfaceID, m.viewport())
		m.energy.Reset()
	case key.Matches(msg, m.keys.Menu):
		m.stop()
	}
	return m, nil
}

func (m Model) View() string {
	if m.state == stateMenu {
		return m.viewMenu()
	}
	return m.viewLive()
}

func (m Model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("             " + cyan.Render("t r a i l s") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n      " + m.help.View(m.keys) + "\n")
	return b.String()
}

func (m Model) viewLive() string {
	ctl := m.mgr.Controller()

	var status string
	switch {
	case !m.mgr.Running():
		status = viz.StatusPaused.Render("PAUSED")
	case m.mgr.State() == engine.Idle:
		status = viz.Subtle.Render("move the mouse to draw")
	default:
		status = viz.StatusRunning.Render("RUNNING")
	}

	info := fmt.Sprintf("%s  %s %s  %s %s  %s %s  %s",
		status,
		viz.MetricLabel.Render("frame"), viz.MetricValue.Render(fmt.Sprint(ctl.Frame())),
		viz.MetricLabel.Render("lines"), viz.MetricValue.Render(fmt.Sprint(len(ctl.Lines()))),
		viz.MetricLabel.Render("hue"), viz.Swatch(ctl.StrokeStyle()),
		viz.SparklineChart(m.energy.Values, 20),
	)

	var b strings.Builder
	b.WriteString(viz.HeaderStyle.Render("trails · "+m.name) + "\n")
	if m.canvas.Height > 0 {
		b.WriteString(viz.Paint(m.canvas) + "\n")
	}
	b.WriteString(info + "\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Run starts the terminal host and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}
