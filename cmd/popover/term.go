package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/phanxgames/popover"
	"github.com/spf13/cobra"
)

const termFrameInterval = time.Second / 60

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Run the card in the terminal (mouse or keyboard)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := loadFromCommand(cmd)
		if err != nil {
			return err
		}
		m := newTermModel(cli)
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
				return fmt.Errorf("terminal host requires a real terminal")
			}
			return fmt.Errorf("error running terminal host: %w", err)
		}
		return m.err
	},
}

var (
	cardBorderColor = lipgloss.Color("63")
	gripStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusStyle     = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(termFrameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// termLook records the fractions the controller applies; View turns them
// into rows and colors.
type termLook struct {
	frame, radius, overlay float64
}

func (l *termLook) ApplyFrame(f float64)            { l.frame = f }
func (l *termLook) ApplyCornerRadius(f float64)     { l.radius = f }
func (l *termLook) ApplyOverlayIntensity(f float64) { l.overlay = f }

// termModel hosts a Controller in a Bubble Tea program. Extents are measured
// in terminal rows.
type termModel struct {
	cli        cliConfig
	cfg        popover.Config
	ctrl       *popover.Controller
	recognizer *popover.GestureRecognizer
	handle     *popover.Node
	look       *termLook

	width, height int
	pendingResize bool
	lastTick      time.Time
	err           error
}

func newTermModel(cli cliConfig) *termModel {
	return &termModel{cli: cli, look: &termLook{}}
}

func (m *termModel) Init() tea.Cmd {
	return tick()
}

// resize rebuilds the controller for a terminal of w x h cells. The card keeps
// its state; a transition in progress finishes before the rebuild.
func (m *termModel) resize(w, h int) error {
	m.width, m.height = w, h
	if m.ctrl != nil && m.ctrl.Mode() != popover.ModeIdle {
		m.pendingResize = true
		return nil
	}
	m.pendingResize = false

	cli := m.cli
	if m.ctrl != nil {
		cli.Initial = m.ctrl.State().String()
	}
	cfg, err := cli.popoverConfig(float64(h))
	if err != nil {
		return err
	}
	ctrl, err := popover.NewController(cfg, m.look)
	if err != nil {
		return err
	}

	handle := popover.NewNode("handle", float64(w-1), math.Max(cfg.CollapsedExtent-1, 0))
	handle.Interactable = true
	m.cfg, m.ctrl, m.handle = cfg, ctrl, handle
	m.recognizer = popover.NewGestureRecognizer(ctrl, handle)
	// Any movement of one cell starts a pan.
	m.recognizer.SetDragDeadZone(0.5)
	m.syncHandle()
	return nil
}

// cardRows returns the card's current height in rows.
func (m *termModel) cardRows() int {
	rows := m.cfg.CollapsedExtent + (m.cfg.ExpandedExtent-m.cfg.CollapsedExtent)*m.look.frame
	return int(math.Round(rows))
}

// syncHandle keeps the hit area on the card's top rows.
func (m *termModel) syncHandle() {
	if m.handle != nil {
		m.handle.Y = float64(m.height - m.cardRows())
	}
}

func (m *termModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if err := m.resize(msg.Width, msg.Height); err != nil {
			m.err = err
			return m, tea.Quit
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ", "enter":
			if m.ctrl != nil {
				m.ctrl.OnTap()
			}
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tickMsg:
		m.advance(time.Time(msg))
		return m, tick()
	}
	m.syncHandle()
	return m, nil
}

func (m *termModel) handleMouse(msg tea.MouseMsg) {
	if m.recognizer == nil {
		return
	}
	x, y := float64(msg.X), float64(msg.Y)
	switch msg.Action {
	case tea.MouseActionPress, tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft {
			m.recognizer.Process(x, y, true)
		}
	case tea.MouseActionRelease:
		m.recognizer.Process(x, y, false)
	}
}

// advance steps the controller by the time since the previous tick.
func (m *termModel) advance(now time.Time) {
	if m.ctrl == nil {
		return
	}
	if !m.lastTick.IsZero() {
		m.ctrl.Update(now.Sub(m.lastTick).Seconds())
	}
	m.lastTick = now
	if m.pendingResize && m.ctrl.Mode() == popover.ModeIdle {
		if err := m.resize(m.width, m.height); err != nil {
			m.err = err
		}
	}
	m.syncHandle()
}

func (m *termModel) View() string {
	if m.err != nil {
		return "popover: " + m.err.Error() + "\n"
	}
	if m.ctrl == nil || m.width < 3 {
		return ""
	}

	rows := m.cardRows()
	var b strings.Builder
	if above := m.height - rows; above > 0 {
		overlay := lipgloss.NewStyle().Width(m.width).Height(above)
		if m.look.overlay > 0 {
			overlay = overlay.Background(overlayColor(m.look.overlay))
		}
		b.WriteString(overlay.Render(""))
		b.WriteString("\n")
	}
	b.WriteString(m.cardView(rows))
	return b.String()
}

// overlayColor walks the 256-color grayscale ramp from light to dark as the
// overlay intensifies.
func overlayColor(f float64) lipgloss.Color {
	return lipgloss.Color(strconv.Itoa(250 - int(math.Round(f*15))))
}

func (m *termModel) cardView(rows int) string {
	border := lipgloss.NormalBorder()
	if m.look.radius > 0.5 {
		border = lipgloss.RoundedBorder()
	}
	inner := max(rows-2, 1)
	w := m.width - 2

	lines := []string{lipgloss.PlaceHorizontal(w, lipgloss.Center, gripStyle.Render("━━━━━━"))}
	if inner > 1 {
		status := fmt.Sprintf("%s · %s · %3.0f%%", m.ctrl.State(), m.ctrl.Mode(), m.ctrl.Expansion()*100)
		lines = append(lines, lipgloss.PlaceHorizontal(w, lipgloss.Center, statusStyle.Render(status)))
	}
	if inner > 3 {
		lines = append(lines, "", lipgloss.PlaceHorizontal(w, lipgloss.Center,
			helpStyle.Render("space: toggle · drag handle: scrub · q: quit")))
	}

	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(cardBorderColor).
		Width(w).
		Height(inner).
		MaxHeight(max(rows, 3)).
		Render(strings.Join(lines, "\n"))
}
