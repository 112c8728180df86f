package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/kmuro/fieldsim/internal/body"
	"github.com/kmuro/fieldsim/internal/config"
	"github.com/kmuro/fieldsim/internal/metrics"
	"github.com/kmuro/fieldsim/internal/scene"
	"github.com/kmuro/fieldsim/internal/world"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
)

type TickMsg time.Time

// Model is the live arena view. It steps the world at the configured
// frame rate and renders balls onto a Braille canvas with an energy
// chart alongside.
type Model struct {
	registry *scene.Registry
	cfg      *config.Config
	w        *world.World
	canvas   *Canvas

	t       float64
	running bool
	done    bool

	energyHistory []float64

	recording bool
	frames    []*image.Paletted
	showHelp  bool
}

func NewModel(registry *scene.Registry, cfg *config.Config) (Model, error) {
	w, err := registry.Build(cfg)
	if err != nil {
		return Model{}, err
	}

	return Model{
		registry:      registry,
		cfg:           cfg,
		w:             w,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	interval := time.Second / time.Duration(m.cfg.FPS)
	return tea.Tick(interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.done {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && !m.done {
			m.step()
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.w.Step(m.cfg.Dt)
	m.t += m.cfg.Dt
	if m.t >= m.cfg.Duration {
		m.done = true
		m.running = false
	}

	m.energyHistory = append(m.energyHistory, metrics.KineticOf(m.w.Registry.Movers()))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) reset() {
	w, err := m.registry.Build(m.cfg)
	if err != nil {
		return
	}
	m.w = w
	m.t = 0
	m.done = false
	m.running = true
	m.energyHistory = m.energyHistory[:0]
}

// draw renders the arena walls and every ball, mapping arena coordinates
// onto the canvas sub-pixel grid.
func (m *Model) draw() {
	m.canvas.Clear()

	cw, ch := canvasWidth*2, canvasHeight*4
	sx := float64(cw-2) / m.w.Bounds.Width()
	sy := float64(ch-2) / m.w.Bounds.Height()

	m.canvas.DrawRect(0, 0, cw-1, ch-1)

	for _, e := range m.w.Registry.Entities() {
		b, ok := e.(*body.Ball)
		if !ok {
			continue
		}
		pos := b.Position()
		px := 1 + int((pos.X-m.w.Bounds.Left)*sx)
		py := 1 + int((pos.Y-m.w.Bounds.Top)*sy)
		m.canvas.FillEllipse(px, py, int(b.Radius()*sx), int(b.Radius()*sy))
	}
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.cfg.Scene)) + "\n")

	switch {
	case m.done:
		s.WriteString(statusDone.Render("DONE") + "\n\n")
	case m.running:
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs / %.0fs", m.t, m.cfg.Duration)) + "\n")
	s.WriteString(labelStyle.Render("Progress") + ProgressBar(m.t/m.cfg.Duration, 20) + "\n")

	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.1f", energy)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", len(m.w.Registry.Movers()))) + "\n")
	if m.recording {
		s.WriteString(labelStyle.Render("Recording") + valueStyle.Render(fmt.Sprintf("%d frames", len(m.frames))) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nG:Record ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset simulation         ║
║  Q        - Quit                     ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func (m *Model) captureFrame() {
	charW, charH := 8, 16
	imgW, imgH := canvasWidth*charW, canvasHeight*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	for row := 0; row < canvasHeight; row++ {
		for col := 0; col < canvasWidth; col++ {
			r := m.canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			dotW, dotH := charW/2, charH/4
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						for py := 0; py < dotH; py++ {
							for px := 0; px < dotW; px++ {
								img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
							}
						}
					}
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create("simulation.gif")
	if err != nil {
		return
	}
	defer f.Close()
	gif.EncodeAll(f, &anim)
}
