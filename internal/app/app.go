package app

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"skyshield.klederson.com/internal/config"
	"skyshield.klederson.com/internal/feed"
	"skyshield.klederson.com/internal/radar"
	"skyshield.klederson.com/internal/scope"
	"skyshield.klederson.com/internal/track"
	"skyshield.klederson.com/internal/ui"
)

var log = config.Component("app")

// Particle density steps cycled by the density key.
var densitySteps = []float64{0, 0.3, 0.6, 1}

const scanSpeedStep = 0.005

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	scope  *scope.Scope
	source feed.Source
	cancel context.CancelFunc
	bell   io.Writer
	now    func() time.Time
}

// AppModel is the root Bubble Tea model for SkyShield.
type AppModel struct {
	width  int
	height int

	variant  config.Variant
	keys     keyMap
	help     help.Model
	showHelp bool
	notice   string

	shared *shared
}

// New creates a model around a fresh scope for cfg. The render loop starts
// running immediately; events arrive once StartSources is called.
func New(cfg config.Scope, source feed.Source) AppModel {
	sc := scope.New(cfg)
	sc.Start()
	if cfg.Variant == config.VariantStandalone {
		sc.SetStatus("Standalone demo")
	}
	return AppModel{
		variant: cfg.Variant,
		keys:    defaultKeys(),
		help:    help.New(),
		shared: &shared{
			scope:  sc,
			source: source,
			bell:   os.Stderr,
			now:    time.Now,
		},
	}
}

// Scope exposes the core for main.go and tests.
func (m AppModel) Scope() *scope.Scope {
	return m.shared.scope
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{frameCmd(m.shared.scope.Loop())}
	if m.variant == config.VariantLive {
		cmds = append(cmds, offlineCmd())
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	sc := m.shared.scope
	now := m.shared.now()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg, now)

	case tea.MouseMsg:
		return m.handleMouse(msg, now)

	case FrameMsg:
		// A stopped loop, or a frame left over from before the last Start,
		// exits here without rescheduling.
		if !sc.Running() || msg.Loop != sc.Loop() {
			return m, nil
		}
		sc.Advance(m.viewport(), now)
		return m, frameCmd(msg.Loop)

	case FeedMsg:
		return m, m.effects(sc.Apply(msg.Msg, now))

	case ExpireMsg:
		sc.Expire(msg.Schedule)
		return m, nil

	case OfflineCheckMsg:
		return m, m.effects(sc.CheckOffline(now))

	case SourceErrorMsg:
		log.WithError(msg.Err).Error("event sources stopped")
		sc.SetStatus("Feed error: " + msg.Err.Error())
		return m, nil
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	sc := m.shared.scope
	m.notice = ""

	if key.Matches(msg, m.keys.Quit) {
		m.StopSources()
		return m, tea.Quit
	}

	// An open confirmation captures the keyboard.
	if sc.Pending() != nil {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			fx, err := sc.Resolve(true, now)
			m.report(err)
			return m, m.effects(fx)
		case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Deny):
			_, err := sc.Resolve(false, now)
			m.report(err)
		}
		return m, nil
	}

	cfg := sc.Config()
	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, m.keys.Cancel):
		m.showHelp = false

	case key.Matches(msg, m.keys.LockNext):
		return m, m.effects(sc.LockNext(now))

	case key.Matches(msg, m.keys.Unlock):
		sc.Unlock()

	case key.Matches(msg, m.keys.Monitor):
		return m.request(track.ActionMonitor, now)
	case key.Matches(msg, m.keys.Report):
		return m.request(track.ActionReport, now)
	case key.Matches(msg, m.keys.Mark):
		return m.request(track.ActionMark, now)
	case key.Matches(msg, m.keys.Neutralize):
		return m.request(track.ActionNeutralize, now)

	case key.Matches(msg, m.keys.Faster):
		sc.SetScanSpeed(cfg.ScanSpeed + scanSpeedStep)
	case key.Matches(msg, m.keys.Slower):
		sc.SetScanSpeed(cfg.ScanSpeed - scanSpeedStep)
	case key.Matches(msg, m.keys.Density):
		sc.SetParticleDensity(nextDensity(cfg.Particles))
	case key.Matches(msg, m.keys.Reticle):
		sc.ToggleReticle(!cfg.Reticle)
	case key.Matches(msg, m.keys.Sound):
		sc.ToggleSound(!cfg.Sound)
	case key.Matches(msg, m.keys.Quick):
		sc.SetQuickNeutralize(!cfg.QuickNeutralize)

	case key.Matches(msg, m.keys.Start):
		if sc.Start() {
			return m, frameCmd(sc.Loop())
		}
	case key.Matches(msg, m.keys.Stop):
		sc.Stop()
	}

	return m, nil
}

func (m AppModel) request(a track.Action, now time.Time) (tea.Model, tea.Cmd) {
	_, fx, err := m.shared.scope.Request(a, now)
	m.report(err)
	return m, m.effects(fx)
}

// report turns an operator error into the one-line notice.
func (m *AppModel) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, scope.ErrNoTarget):
		m.notice = "No target locked"
	case errors.Is(err, scope.ErrNeutralized):
		m.notice = "Target already neutralized"
	default:
		m.notice = err.Error()
	}
}

func (m AppModel) handleMouse(msg tea.MouseMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.shared.scope.Pending() != nil {
		return m, nil
	}
	col, row, ok := m.canvasCell(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	fx, _ := m.shared.scope.LockNearest(m.viewport(), float64(col), float64(row), now)
	return m, m.effects(fx)
}

// canvasCell maps a terminal cell to radar canvas coordinates.
func (m AppModel) canvasCell(x, y int) (int, int, bool) {
	col := x - ui.RadarOffsetCol
	row := y - menuHeight - ui.RadarOffsetRow
	w, h := m.canvasSize()
	if col < 0 || row < 0 || col >= w || row >= h {
		return 0, 0, false
	}
	return col, row, true
}

// effects turns scope side effects into commands.
func (m AppModel) effects(fx scope.Effects) tea.Cmd {
	var cmds []tea.Cmd
	for _, s := range fx.Schedules {
		cmds = append(cmds, expireCmd(s))
	}
	if fx.Beep {
		bell := m.shared.bell
		cmds = append(cmds, func() tea.Msg {
			_, _ = io.WriteString(bell, "\a")
			return nil
		})
	}
	return tea.Batch(cmds...)
}

const (
	menuHeight   = 1
	statusHeight = 1
	helpHeight   = 1
)

func (m AppModel) bodyHeight() int {
	return max(5, m.height-menuHeight-statusHeight-helpHeight)
}

func (m AppModel) canvasSize() (int, int) {
	radarW, _ := ui.Split(m.width)
	return ui.RadarCanvasSize(radarW, m.bodyHeight())
}

func (m AppModel) viewport() scope.Viewport {
	return scope.NewViewport(m.canvasSize())
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing SkyShield..."
	}

	sc := m.shared.scope
	now := m.shared.now()
	bodyH := m.bodyHeight()
	radarW, sideW := ui.Split(m.width)
	cw, ch := m.canvasSize()
	v := m.viewport()
	f := sc.Frame(v, now)

	var radarContent string
	switch {
	case f.Pending != nil:
		radarContent = ui.RenderConfirm(f.Pending, cw, ch)
	case m.showHelp:
		h := m.help
		h.ShowAll = true
		radarContent = lipgloss.Place(cw, ch, lipgloss.Center, lipgloss.Center, h.View(m.keys))
	default:
		radarContent = radar.Render(cw, ch, v, f)
	}
	radarPanel := ui.RenderRadarPanel(radarW, bodyH, radarContent, radar.RenderLegend(cw), f.Banner, f.Overlay)

	lockH := bodyH * 2 / 3
	lockPanel := ui.RenderLockPanel(f.Lock, sideW, lockH, now)
	feedList := ui.RenderFeedList(f.Feed, sideW, bodyH-lockH)

	menuBar := ui.RenderMenuBar(m.width, m.variant, f.Running)
	statusBar := ui.RenderStatusBar(m.width, f, sc.Config(), now)

	helpLine := m.help.View(m.keys)
	if m.notice != "" {
		helpLine = ui.StyleStatusStopped.Render(m.notice) + "  " + helpLine
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		ui.ComposeLayout(menuBar, radarPanel, lockPanel, feedList, statusBar), helpLine)
}

// StartSources runs the event source in the background, forwarding every
// message into the program. Must be called before p.Run().
func (m *AppModel) StartSources(p *tea.Program) {
	if m.shared.source == nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.shared.cancel = cancel
	src := m.shared.source
	go func() {
		err := src.Run(ctx, func(msg feed.Message) { p.Send(FeedMsg{Msg: msg}) })
		if err != nil && !errors.Is(err, context.Canceled) {
			p.Send(SourceErrorMsg{Err: err})
		}
	}()
}

// StopSources cancels the event sources. The scope keeps its state.
func (m AppModel) StopSources() {
	if m.shared.cancel != nil {
		m.shared.cancel()
	}
}

func nextDensity(cur float64) float64 {
	for _, d := range densitySteps {
		if d > cur+1e-9 {
			return d
		}
	}
	return densitySteps[0]
}

func frameCmd(loop uint64) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return FrameMsg{At: t, Loop: loop}
	})
}

func offlineCmd() tea.Cmd {
	return tea.Tick(config.OfflineGrace, func(t time.Time) tea.Msg {
		return OfflineCheckMsg(t)
	})
}

func expireCmd(s scope.Schedule) tea.Cmd {
	return tea.Tick(s.After, func(time.Time) tea.Msg {
		return ExpireMsg{Schedule: s}
	})
}
