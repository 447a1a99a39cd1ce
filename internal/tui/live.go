// Package tui is an interactive terminal player for snapshot series.
//
// The player shows one frame at a time as a character heatmap, using
// the same fixed value range as the encoded artifacts, so brightness
// is comparable across frames. Frames load lazily from disk and stay
// cached for scrubbing.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/render"
	"github.com/san-kum/fieldviz/internal/scan"
	"github.com/san-kum/fieldviz/internal/series"
)

const (
	canvasWidth  = 64
	canvasHeight = 28
	meanCapacity = 120

	// ramp runs from the range minimum to the maximum; points outside
	// the domain render as blanks so they never read as low values.
	ramp = ".:-=+*#%@"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true).Padding(1, 2)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model plays a snapshot series in the terminal.
type Model struct {
	steps    []int
	load     series.Loader
	rng      scan.Range
	lo, hi   float64
	title    string
	interval time.Duration
	pos      int
	running  bool
	cur      field.Field
	cache    map[int]field.Field
	means    []float64
	err      error
}

// NewModel builds a player over the given steps. The range must come
// from a completed scan of the same loader.
func NewModel(steps []int, load series.Loader, rng scan.Range, title string, interval time.Duration) Model {
	lo, hi := render.PadRange(rng)
	return Model{
		steps:    steps,
		load:     load,
		rng:      rng,
		lo:       lo,
		hi:       hi,
		title:    title,
		interval: interval,
		running:  true,
		cache:    make(map[int]field.Field, len(steps)),
		means:    make([]float64, 0, meanCapacity),
	}
}

// Err reports the load failure that stopped playback, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(showFrame, m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// showMsg asks the model to load the frame at the current position.
type showMsg struct{}

func showFrame() tea.Msg { return showMsg{} }

// Update handles input and playback ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.pos = 0
			m.means = m.means[:0]
			m.show()
		case "left", "h":
			m.running = false
			if m.pos > 0 {
				m.pos--
			}
			m.show()
		case "right", "l":
			m.running = false
			if m.pos < len(m.steps)-1 {
				m.pos++
			}
			m.show()
		}
		if m.err != nil {
			return m, tea.Quit
		}
	case showMsg:
		m.show()
		if m.err != nil {
			return m, tea.Quit
		}
	case TickMsg:
		if m.err != nil {
			return m, tea.Quit
		}
		if m.running {
			m.pos = (m.pos + 1) % len(m.steps)
			m.show()
			if m.err != nil {
				return m, tea.Quit
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// show loads the frame at the playback position and records its mean.
func (m *Model) show() {
	step := m.steps[m.pos]
	f, ok := m.cache[step]
	if !ok {
		var err error
		f, err = m.load(step)
		if err != nil {
			m.err = err
			return
		}
		m.cache[step] = f
	}
	m.cur = f
	if vals := f.Valid(); len(vals) > 0 {
		m.means = append(m.means, stat.Mean(vals, nil))
		if len(m.means) > meanCapacity {
			m.means = m.means[1:]
		}
	}
}

// View renders the heatmap beside the stats panel.
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("playback stopped: %v", m.err))
	}
	if m.cur.Nx == 0 {
		return canvasStyle.Render("loading...")
	}

	canvasView := canvasStyle.Render(m.heatmap())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	status := "PLAYING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")
	if len(m.means) > 1 {
		chart := asciigraph.Plot(m.means, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Mean"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("t = %d", m.steps[m.pos])) + "\n")
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d/%d", m.pos+1, len(m.steps))) + "\n")
	s.WriteString(labelStyle.Render("Range") + valueStyle.Render(m.rng.String()) + "\n")
	s.WriteString(labelStyle.Render("Grid") + valueStyle.Render(fmt.Sprintf("%dx%d", m.cur.Nx, m.cur.Ny)) + "\n")
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause ←/→:Scrub\nR:Restart Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// heatmap downsamples the current frame onto the character canvas,
// top row first so the grid's y axis points up.
func (m Model) heatmap() string {
	var b strings.Builder
	for cy := 0; cy < canvasHeight; cy++ {
		for cx := 0; cx < canvasWidth; cx++ {
			i := sample(cx, canvasWidth, m.cur.Nx)
			j := sample(canvasHeight-1-cy, canvasHeight, m.cur.Ny)
			b.WriteByte(m.shade(m.cur.At(i, j)))
		}
		if cy < canvasHeight-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// shade maps a value onto the ramp; no-data points stay blank.
func (m Model) shade(v float64) byte {
	if math.IsNaN(v) {
		return ' '
	}
	t := (v - m.lo) / (m.hi - m.lo)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return ramp[int(t*float64(len(ramp)-1)+0.5)]
}

// sample maps canvas coordinate c in [0, cn) onto grid index [0, n).
func sample(c, cn, n int) int {
	if cn <= 1 || n <= 1 {
		return 0
	}
	i := c * (n - 1) / (cn - 1)
	if i > n-1 {
		i = n - 1
	}
	return i
}
