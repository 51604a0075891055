// Package tui provides the Bubble Tea keying interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tapmorse/internal/generator"
	"github.com/verte-zerg/tapmorse/internal/keyer"
	"github.com/verte-zerg/tapmorse/internal/logger"
	"github.com/verte-zerg/tapmorse/internal/model"
	statsPkg "github.com/verte-zerg/tapmorse/internal/stats"
	"github.com/verte-zerg/tapmorse/internal/store"
)

const startHint = "Click to start"

type frameMsg time.Time

// Model implements the Bubble Tea keying UI. Every frame it feeds the
// events gathered since the previous frame to the controller.
type Model struct {
	config   model.Config
	ctrl     *keyer.Controller
	store    *store.Store
	gen      *generator.Generator
	alphabet []rune
	words    []string
	weakSet  map[rune]struct{}

	keys KeyMap
	help help.Model

	width  int
	height int

	pending   []keyer.Event
	lastFrame time.Time
	snap      keyer.Snapshot

	session *session

	lastWPM float64
	lastAcc float64
	hasLast bool
}

var (
	correctStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle     = pendingStyle.Underline(true)
	displayStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A")).Padding(0, 2)
	bufferStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	previewStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Italic(true)
	transcriptStyle = correctStyle
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a keying TUI model. st may be nil, in which case
// nothing is persisted. A positive cfg.DrillLength starts drill mode; with
// words the targets are built from them instead of alphabet.
func NewModel(cfg model.Config, ctrl *keyer.Controller, st *store.Store, gen *generator.Generator, alphabet []rune, words []string, weakSet map[rune]struct{}) *Model {
	m := &Model{
		config:   cfg,
		ctrl:     ctrl,
		store:    st,
		gen:      gen,
		alphabet: alphabet,
		words:    words,
		weakSet:  weakSet,
		keys:     DefaultKeyMap.withTranscript(ctrl.Config().Transcript),
		help:     help.New(),
		snap:     ctrl.Snapshot(),
	}
	m.resetSession()
	m.loadFooterStats()
	return m
}

func (m *Model) drill() bool {
	return m.config.DrillLength > 0
}

func tick(rate int) tea.Cmd {
	if rate <= 0 {
		rate = 60
	}
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick(m.config.FrameRate)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case frameMsg:
		now := time.Time(msg)
		var dt time.Duration
		if !m.lastFrame.IsZero() {
			dt = now.Sub(m.lastFrame)
		}
		m.lastFrame = now
		m.step(dt, now)
		return m, tick(m.config.FrameRate)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.finishSession(time.Now())
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Reset):
			m.pending = append(m.pending, keyer.ResetTranscript)
		case key.Matches(msg, m.keys.Delete):
			m.pending = append(m.pending, keyer.DeleteLast)
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.pending = append(m.pending, keyer.PressStart)
		case tea.MouseButtonRight:
			if m.keys.Reset.Enabled() {
				m.pending = append(m.pending, keyer.ResetTranscript)
			}
		}
	case tea.MouseActionRelease:
		// Some terminals report releases without a button.
		if msg.Button != tea.MouseButtonRight {
			m.pending = append(m.pending, keyer.PressEnd)
		}
	}
}

// step advances the controller by dt with the queued events.
func (m *Model) step(dt time.Duration, now time.Time) {
	events := m.pending
	m.pending = nil
	pressed := false
	for _, ev := range events {
		switch ev {
		case keyer.PressStart:
			pressed = true
		case keyer.ResetTranscript:
			if !m.drill() {
				m.finishSession(now)
				m.resetSession()
			}
		}
	}
	frame := m.ctrl.Step(dt, events...)
	m.snap = frame.Snapshot
	if frame.Decoded != nil || m.snap.State != keyer.Idle {
		// a character in progress belongs to the session it finishes in
		m.session.start(now)
	}
	if pressed && logger.IsDebugEnabled() {
		logger.Debug("press after %s up", m.snap.Gap)
	}
	if frame.Decoded == nil {
		return
	}
	d := *frame.Decoded
	if logger.IsDebugEnabled() {
		logger.Debug("decoded %s -> %q ok=%v keying=%s", d.Sequence, d.Char, d.OK, d.KeyingTime)
	}

	pos := len([]rune(m.snap.Transcript))
	if d.Appended {
		pos--
	}
	m.session.record(d, pos)

	if m.drill() && len([]rune(m.snap.Transcript)) >= len(m.session.target) {
		m.finishSession(now)
		m.resetSession()
		m.snap = m.ctrl.Step(0, keyer.ResetTranscript).Snapshot
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{displayStyle.Render(string(m.snap.Display)), m.renderBuffer()}
	if body := m.renderText(); body != "" {
		lines = append(lines, "", body)
	}
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	footer := m.renderFooter()
	helpView := m.help.View(m.keys)
	if m.width == 0 || m.height == 0 {
		return strings.Join([]string{content, footer, helpView}, "\n")
	}
	bottom := lipgloss.JoinVertical(lipgloss.Center, footer, helpView)
	bodyHeight := m.height - lipgloss.Height(bottom)
	if bodyHeight < lipgloss.Height(content) {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	return body + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, bottom)
}

func (m *Model) renderBuffer() string {
	if !m.snap.Started {
		return previewStyle.Render(startHint)
	}
	line := bufferStyle.Render(m.snap.Buffer)
	if m.snap.Preview != 0 {
		line += previewStyle.Render(fmt.Sprintf("  %c", m.snap.Preview))
	}
	if line == "" {
		// keep the layout from jumping between characters
		line = " "
	}
	return line
}

func (m *Model) renderText() string {
	width := m.contentWidth()
	if m.drill() {
		input := []rune(m.snap.Transcript)
		cursor := -1
		if len(input) < len(m.session.target) {
			cursor = len(input)
		}
		return wrapStyledRunes(buildStyledRunes(m.session.target, input, cursor), width)
	}
	if !m.ctrl.Config().Transcript || m.snap.Transcript == "" {
		return ""
	}
	return wrapStyledRunes(plainStyledRunes([]rune(m.snap.Transcript), transcriptStyle), width)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) renderFooter() string {
	var segments []string
	if m.drill() {
		done := len([]rune(m.snap.Transcript))
		segments = append(segments, fmt.Sprintf("Drill %d/%d", done, len(m.session.target)))
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", m.lastWPM, m.lastAcc*100))
	}
	if m.session.unmatched > 0 {
		segments = append(segments, fmt.Sprintf("Unmatched %d", m.session.unmatched))
	}
	if len(segments) == 0 {
		return ""
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	sessions, err := m.store.ListSessions(context.Background(), model.StatsConfig{Profile: m.config.Profile})
	if err != nil {
		logger.Error("failed to load session stats: %v", err)
		return
	}
	if len(sessions) == 0 {
		return
	}
	m.lastWPM, _, m.lastAcc = statsPkg.AggregateMetrics(sessions[len(sessions)-1])
	m.hasLast = true
}

func (m *Model) resetSession() {
	var target []rune
	if m.drill() {
		target = []rune(m.generateTarget())
	}
	m.session = newSession(m.config.Profile, target)
}

func (m *Model) generateTarget() string {
	if len(m.words) > 0 {
		factor := 0.0
		if m.config.FocusWeak {
			factor = m.config.WeakFactor
		}
		return m.gen.GenerateWords(m.words, m.config.DrillLength, m.weakSet, factor)
	}
	if m.config.FocusWeak && len(m.weakSet) > 0 {
		return m.gen.GenerateWeighted(m.alphabet, m.config.DrillLength, m.weakSet, m.config.WeakFactor)
	}
	return m.gen.Generate(m.alphabet, m.config.DrillLength)
}

func (m *Model) finishSession(now time.Time) {
	s := m.session
	if !s.started || s.attempts() == 0 {
		return
	}
	stats, charStats := s.finish(m.snap.Transcript, now)
	m.lastWPM, _, m.lastAcc = statsPkg.SessionMetrics(stats.Correct, stats.Incorrect+stats.Unmatched, stats.DurationMs)
	m.hasLast = true
	logger.Info("session finished: mode=%s correct=%d incorrect=%d unmatched=%d", stats.Mode, stats.Correct, stats.Incorrect, stats.Unmatched)
	if m.store == nil {
		return
	}
	if _, err := m.store.InsertSession(context.Background(), stats, charStats); err != nil {
		logger.Error("failed to save session: %v", err)
		return
	}
	if m.drill() && m.config.FocusWeak {
		m.refreshWeakSet()
	}
}

func (m *Model) refreshWeakSet() {
	aggs, err := m.store.GetWeakChars(context.Background(), m.config.WeakWindow, m.config.Profile)
	if err != nil {
		logger.Error("failed to load weak chars: %v", err)
		return
	}
	if len(aggs) == 0 {
		m.weakSet = map[rune]struct{}{}
		return
	}
	m.weakSet = statsPkg.SelectWeakChars(aggs, m.config.WeakTop)
}
