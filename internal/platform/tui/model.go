package tui

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/tile-breakout/internal/breakout"
	"github.com/vovakirdan/tile-breakout/internal/gfx/soft"
)

// footerLines are the terminal rows below the frame: status and help.
const footerLines = 2

// Options configures the terminal frame loop.
type Options struct {
	TickRate int
	Hold     time.Duration // how long a key press counts as held

	// Renderer selects the color profile. Nil means the local terminal.
	Renderer *lipgloss.Renderer
	Logger   *log.Logger

	// ScreenshotDir is where ctrl+s writes PNGs. Empty uses ~/.breakout/screenshots.
	ScreenshotDir string
	NoScreenshots bool
}

// Model is the Bubble Tea model driving one game: each tick releases
// expired keys, then runs the game's input, update and render pass into the
// software framebuffer, which View presents as half-block characters.
type Model struct {
	game      *breakout.Game
	backend   *soft.Backend
	presenter *Presenter
	held      *heldKeys
	keys      KeyMap
	help      help.Model
	opts      Options
	logger    *log.Logger

	last     time.Time
	frames   int
	status   string
	err      error
	quitting bool
}

// NewModel creates a model for a game whose cache was built on backend.
func NewModel(game *breakout.Game, backend *soft.Backend, opts Options) Model {
	if opts.TickRate <= 0 {
		opts.TickRate = defaultTickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()

	return Model{
		game:      game,
		backend:   backend,
		presenter: NewPresenter(opts.Renderer),
		held:      newHeldKeys(opts.Hold),
		keys:      DefaultKeyMap(),
		help:      h,
		opts:      opts,
		logger:    logger,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.BlurMsg:
		for _, code := range m.held.releaseAll() {
			m.setKey(code, false)
		}
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot) && !m.opts.NoScreenshots:
		path, err := m.saveScreenshot()
		if err != nil {
			m.logger.Error("screenshot failed", "error", err)
			m.status = "screenshot failed"
		} else {
			m.logger.Info("screenshot saved", "path", path)
			m.status = "saved " + path
		}
		return m, nil
	}

	if code, ok := KeyCode(msg); ok {
		if m.held.press(code, time.Now()) {
			m.setKey(code, true)
		}
	}
	return m, nil
}

func (m Model) setKey(code int, pressed bool) {
	if err := m.game.SetKey(code, pressed); err != nil {
		m.logger.Warn("key ignored", "code", code, "error", err)
	}
}

// handleResize maps the terminal to a framebuffer above the footer.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	w, h := FrameSize(msg.Width, msg.Height)
	m.game.Resize(w, h)
	m.help.Width = msg.Width
	m.logger.Debug("viewport resized", "cols", msg.Width, "rows", msg.Height, "pixels", fmt.Sprintf("%dx%d", w, h))
	return m, nil
}

// handleTick runs one frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.last, now, m.opts.TickRate)
	m.last = now

	for _, code := range m.held.expire(now) {
		m.setKey(code, false)
	}

	if err := m.game.Step(float32(dt.Seconds())); err != nil {
		m.err = err
		m.quitting = true
		m.logger.Error("frame failed", "error", err)
		return m, tea.Quit
	}
	m.frames++

	// Continue ticking
	return m, tickCmd(m.opts.TickRate)
}

// Err returns the error that stopped the frame loop, if any.
func (m Model) Err() error { return m.err }

// Frames returns the number of frames rendered.
func (m Model) Frames() int { return m.frames }

// saveScreenshot writes the framebuffer scaled to the game's logical size.
func (m Model) saveScreenshot() (string, error) {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".breakout", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	src := m.backend.Frame()
	if src.Rect.Empty() {
		return "", errors.New("empty framebuffer")
	}
	dst := image.NewNRGBA(image.Rect(0, 0, m.game.Width(), m.game.Height()))
	xdraw.NearestNeighbor.Scale(dst, dst.Rect, src, src.Rect, xdraw.Src, nil)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("breakout_%s.png", timestamp))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.presenter.Render(m.backend.Frame()) + "\n" + m.status + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program and returns the error that ended the
// frame loop, if any.
func Run(game *breakout.Game, backend *soft.Backend, opts Options) error {
	model := NewModel(game, backend, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithReportFocus(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
