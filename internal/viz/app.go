package viz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/model"
	"github.com/san-kum/algoviz/internal/persist"
	"github.com/san-kum/algoviz/internal/render"
	"github.com/san-kum/algoviz/internal/run"
)

const (
	defaultCols = 80
	defaultRows = 20
	speedStep   = 0.2

	// canvasTop is the first terminal row of the canvas: the header line
	// and its margin sit above it.
	canvasTop = 2
)

type runDoneMsg struct{ err error }

type persistDoneMsg struct {
	op  string
	err error
}

type editField int

const (
	editNone editField = iota
	editUsername
	editSize
)

// App is the Bubble Tea model hosting a run.Controller.
type App struct {
	ctrl   *run.Controller
	bridge *Bridge
	logger *slog.Logger
	layout model.Layout

	term   *render.TermRenderer
	keys   keyMap
	help   help.Model
	input  textinput.Model
	theme  Theme
	styles styles

	editing   editField
	presetIdx int
	rng       *rand.Rand
	message   string
	enabled   bool
	showHelp  bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp builds the TUI. The bridge must be the controller's renderer,
// notifier and control surface.
func NewApp(ctrl *run.Controller, bridge *Bridge, layout model.Layout, theme string, logger *slog.Logger) App {
	t := GetTheme(theme)
	term := render.NewTermRenderer(defaultCols, defaultRows)
	term.Palette = t.Palette()

	in := textinput.New()
	in.CharLimit = 32
	in.Width = 24

	keys := defaultKeyMap()
	keys.setControls(true)

	ctx, cancel := context.WithCancel(context.Background())
	return App{
		ctrl:    ctrl,
		bridge:  bridge,
		logger:  logging.OrDiscard(logger),
		layout:  layout,
		term:    term,
		keys:    keys,
		help:    help.New(),
		input:   in,
		theme:   t,
		styles:  newStyles(t),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		message: run.MsgReady,
		enabled: true,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (m App) Init() tea.Cmd {
	return m.bridge.Wait()
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case updateMsg:
		if msg.bridgeDone {
			return m, nil
		}
		if msg.scene != nil {
			m.term.Paint(*msg.scene)
		}
		if msg.message != nil {
			m.message = *msg.message
		}
		if msg.controls != nil {
			m.enabled = *msg.controls
			m.keys.setControls(m.enabled)
		}
		return m, m.bridge.Wait()

	case runDoneMsg:
		var fault *run.AlgorithmFault
		if errors.As(msg.err, &fault) {
			m.logger.Error("run fault", "error", fault)
		}
		return m, nil

	case persistDoneMsg:
		if msg.err != nil {
			m.logger.Debug("persistence", "op", msg.op, "error", msg.err)
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if x, y, ok := m.toLayout(msg.X, msg.Y); ok {
				m.ctrl.Touch(x, y)
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing != editNone {
			return m.updateInput(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Cancel()
		m.cancel()
		m.bridge.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case key.Matches(msg, m.keys.Start):
		return m, m.startCmd()

	case key.Matches(msg, m.keys.Stop):
		m.ctrl.Cancel()

	case key.Matches(msg, m.keys.Generate):
		_ = m.ctrl.Generate()

	case key.Matches(msg, m.keys.Algorithm):
		names := engine.Names()
		next := names[0]
		for i, name := range names {
			if name == m.ctrl.Algorithm() {
				next = names[(i+1)%len(names)]
				break
			}
		}
		if err := m.ctrl.SelectAlgorithm(next); err == nil {
			a, _ := engine.Lookup(next)
			m.message = fmt.Sprintf("Selected %s.", a.Title)
		}

	case key.Matches(msg, m.keys.Faster):
		m.ctrl.SetSpeed(m.ctrl.Timer().Speed() + speedStep)

	case key.Matches(msg, m.keys.Slower):
		m.ctrl.SetSpeed(m.ctrl.Timer().Speed() - speedStep)

	case key.Matches(msg, m.keys.Size):
		return m.beginEdit(editSize, strconv.Itoa(m.ctrl.Size()))

	case key.Matches(msg, m.keys.Username):
		return m.beginEdit(editUsername, m.ctrl.Snapshot().Username)

	case key.Matches(msg, m.keys.Save):
		return m, m.persistCmd("save", m.ctrl.Save)

	case key.Matches(msg, m.keys.Load):
		return m, m.persistCmd("load", m.ctrl.Load)

	case key.Matches(msg, m.keys.Preset):
		names := config.ListPresets()
		name := names[m.presetIdx%len(names)]
		m.presetIdx++
		values := config.GetPreset(name).Build(m.ctrl.Size(), m.rng)
		_ = m.ctrl.SetValues(values, fmt.Sprintf("Preset %s loaded.", name))

	case key.Matches(msg, m.keys.Theme):
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
		m.term.Palette = m.theme.Palette()
		if last := m.term.Last(); last.Kind != render.KindEmpty {
			m.term.Paint(last)
		}
	}
	return m, nil
}

func (m App) beginEdit(field editField, value string) (tea.Model, tea.Cmd) {
	m.editing = field
	switch field {
	case editSize:
		m.input.Prompt = "size: "
		m.input.Placeholder = fmt.Sprintf("%d-%d", model.MinSize, model.MaxSize)
	case editUsername:
		m.input.Prompt = "user: "
		m.input.Placeholder = persist.DefaultUsername
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

func (m App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		switch m.editing {
		case editSize:
			// Unparseable input becomes 0, which clamps to the default size.
			n, _ := strconv.Atoi(value)
			if size, err := m.ctrl.SetSize(n); err == nil {
				m.message = fmt.Sprintf("Size set to %d.", size)
			}
		case editUsername:
			m.ctrl.SetUsername(value)
			m.message = fmt.Sprintf("User set to %s.", persist.Username(value))
		}
		m.stopEdit()
		return m, nil
	case tea.KeyEsc:
		m.stopEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *App) stopEdit() {
	m.editing = editNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m App) startCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return runDoneMsg{err: ctrl.Start(ctx)}
	}
}

func (m App) persistCmd(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		return persistDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m *App) resize(width, height int) {
	cols := max(20, width-sidebarWidth-4)
	rows := max(8, height-8)
	m.term.Resize(cols, rows)
	m.help.Width = width
}

// toLayout maps a terminal cell to layout coordinates at the cell center.
func (m App) toLayout(col, row int) (float64, float64, bool) {
	row -= canvasTop
	c := m.term.Canvas
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	l := m.term.Last().Layout
	if l.Width <= 0 || l.Height <= 0 {
		l = m.layout
	}
	pw, ph := c.PixelSize()
	x := (float64(col*2) + 1) * l.Width / float64(pw)
	y := (float64(row*4) + 2) * l.Height / float64(ph)
	return x, y, true
}

func (m App) sidebar() string {
	st := m.ctrl.Snapshot()
	s := m.styles

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(s.label.Render(label) + s.value.Render(value) + "\n")
	}

	if st.Running {
		b.WriteString(s.running.Render("● RUNNING") + "\n\n")
	} else {
		b.WriteString(s.idle.Render("○ IDLE") + "\n\n")
	}
	title := st.Algorithm
	if a, err := engine.Lookup(st.Algorithm); err == nil {
		title = a.Title
	}
	row("Algorithm", title)
	row("Size", strconv.Itoa(st.Size))
	row("Speed", fmt.Sprintf("%.1fx", st.Speed))
	b.WriteString(s.gauge.Render(speedGauge(st.Speed, sidebarWidth-6)) + "\n")
	row("User", persist.Username(st.Username))
	b.WriteString("\n")

	if engine.IsGraph(st.Algorithm) {
		row("Visits", strconv.Itoa(st.Counts.Visits))
		row("Edges", strconv.Itoa(st.Counts.Edges))
	} else {
		row("Compares", strconv.Itoa(st.Counts.Compares))
		row("Swaps", strconv.Itoa(st.Counts.Swaps))
		row("Writes", strconv.Itoa(st.Counts.Writes))
		if values := m.term.Last().Values(); len(values) > 0 {
			row("Sorted", fmt.Sprintf("%.0f%%", metrics.SortedFraction(values)*100))
		}
	}

	if values := m.term.Last().Values(); len(values) > 0 {
		b.WriteString("\n" + s.spark.Render(sparkline(values, sidebarWidth-6)) + "\n")
	}
	b.WriteString("\n" + s.muted.Render("theme: "+m.theme.Name))
	return s.panel.Render(b.String())
}

func (m App) View() string {
	var b strings.Builder

	title := gradientText("ALGOVIZ", m.theme.Primary, m.theme.Accent)
	b.WriteString(m.styles.header.Render(title+"  "+m.styles.muted.Render("algorithm visualizer")) + "\n")

	canvas := m.term.View()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.sidebar()) + "\n")
	b.WriteString(m.styles.message.Render(m.message) + "\n")
	if m.editing != editNone {
		b.WriteString(m.input.View() + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
