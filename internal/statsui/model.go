// Package statsui provides the Bubble Tea stats browser.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tapmorse/internal/model"
	"github.com/verte-zerg/tapmorse/internal/stats"
	"github.com/verte-zerg/tapmorse/internal/store"
)

const (
	tabOverview = iota
	tabCharTable
)

const (
	fieldProfile = iota
	fieldSince
	fieldLast
	fieldWindow
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	charTable table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a stats UI model.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store:     st,
		cfg:       cfg,
		tabs:      []string{"Overview", "Characters"},
		overview:  viewport.New(0, 0),
		charTable: newCharTable(),
	}
	m.filterInputs = []textinput.Model{
		newFilterInput("Profile: "),
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
		newFilterInput("Curve window: "),
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h", "right", "l", "tab":
			m.activeTab = (m.activeTab + 1) % len(m.tabs)
			if m.activeTab == tabCharTable {
				m.charTable.Focus()
			} else {
				m.charTable.Blur()
			}
			return m, tea.ClearScreen
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "/":
			return m, m.startFilter()
		}
		var cmd tea.Cmd
		if m.activeTab == tabCharTable {
			m.charTable, cmd = m.charTable.Update(msg)
		} else {
			m.overview, cmd = m.overview.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderTabs()+"\n"+m.renderFilterSummary(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = lipgloss.Height(activeNavStyle.Render("X")) + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = maxInt(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.charTable.SetWidth(m.width)
	m.charTable.SetHeight(maxInt(1, bodyHeight-1))
	for i := range m.filterInputs {
		m.filterInputs[i].Width = maxInt(10, m.width-lipgloss.Width(m.filterInputs[i].Prompt)-2)
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderFilterSummary() string {
	profile := m.cfg.Profile
	if profile == "" {
		profile = "any"
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: profile=%s  since=%s  last=%s  window=%d", profile, since, last, m.cfg.CurveWindow)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Tabs: left/right  Scroll: up/down  Window: -/=  Settings: /  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody() string {
	if m.filterMode {
		lines := []string{"Settings (enter to apply, esc to cancel)"}
		for _, input := range m.filterInputs {
			lines = append(lines, input.View())
		}
		if m.filterError != "" {
			lines = append(lines, errorStyle.Render(m.filterError))
		}
		return strings.Join(lines, "\n")
	}
	if m.activeTab == tabCharTable {
		switch {
		case len(m.report.Sessions) == 0:
			return "No sessions found."
		case len(m.report.CharAggsWindow) == 0:
			return "No character stats found."
		default:
			return tableMutedStyle.Render(m.charTable.View())
		}
	}
	return m.overview.View()
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load stats.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.charTable.SetRows(charRows(report.CharAggsWindow))
	m.renderOverview()
}

func (m *Model) renderOverview() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report, m.cfg.CurveWindow, width))
}

func renderOverview(report stats.Report, window, width int) string {
	if len(report.Sessions) == 0 {
		return "No sessions found."
	}
	var curves bytes.Buffer
	if err := stats.RenderCurves(&curves, report.Sessions, window, width); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	out := renderSummaryCards(report.Sessions, width) + "\n\n" + curves.String()
	if len(report.TopChars) > 0 {
		out += "\n" + headerStyle.Render("Most keyed: "+strings.Join(report.TopChars, " "))
	}
	return strings.TrimRight(out, "\n")
}

func renderSummaryCards(sessions []model.SessionAggregate, width int) string {
	var totalWPM, totalAcc float64
	bestWPM := 0.0
	drills, unmatched := 0, 0
	for _, s := range sessions {
		wpm, _, acc := stats.AggregateMetrics(s)
		totalWPM += wpm
		totalAcc += acc
		if wpm > bestWPM {
			bestWPM = wpm
		}
		if s.Mode == model.ModeDrill {
			drills++
		}
		unmatched += s.Unmatched
	}
	count := float64(len(sessions))
	cards := []string{
		metricCard("Sessions", fmt.Sprintf("%d (%d drills)", len(sessions), drills)),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", totalWPM/count)),
		metricCard("Best WPM", fmt.Sprintf("%.1f", bestWPM)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", (totalAcc/count)*100)),
		metricCard("Unmatched", strconv.Itoa(unmatched)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	return cardStyle.Render(cardTitleStyle.Render(label) + "\n" + cardValueStyle.Render(value))
}

func newCharTable() table.Model {
	columns := []table.Column{
		{Title: "Char", Width: 4},
		{Title: "Code", Width: 8},
		{Title: "Accuracy", Width: 9},
		{Title: "Avg Keying (ms)", Width: 16},
		{Title: "Correct", Width: 7},
		{Title: "Missed", Width: 7},
	}
	t := table.New(table.WithColumns(columns), table.WithHeight(1))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		PaddingLeft(0)
	styles.Cell = styles.Cell.PaddingLeft(0)
	styles.Selected = styles.Cell.Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	t.SetStyles(styles)
	return t
}

// charRows lists characters weakest first.
func charRows(aggs []model.CharAggregate) []table.Row {
	ranks := stats.RankChars(aggs)
	rows := make([]table.Row, 0, len(ranks))
	for _, r := range ranks {
		rows = append(rows, table.Row{
			r.Char,
			r.Code,
			fmt.Sprintf("%.1f%%", r.Accuracy*100),
			fmt.Sprintf("%.0f", r.AvgKeyingMs),
			strconv.Itoa(r.Correct),
			strconv.Itoa(r.Missed),
		})
	}
	return rows
}

func (m *Model) startFilter() tea.Cmd {
	m.filterMode = true
	m.filterError = ""
	m.filterInputs[fieldProfile].SetValue(m.cfg.Profile)
	m.filterInputs[fieldSince].SetValue("")
	if m.cfg.Since != nil {
		m.filterInputs[fieldSince].SetValue(m.cfg.Since.Format("2006-01-02"))
	}
	m.filterInputs[fieldLast].SetValue("")
	if m.cfg.Last > 0 {
		m.filterInputs[fieldLast].SetValue(strconv.Itoa(m.cfg.Last))
	}
	m.filterInputs[fieldWindow].SetValue(strconv.Itoa(m.cfg.CurveWindow))
	return m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		return m, nil
	case tea.KeyEnter:
		cfg, err := m.parseFilter()
		if err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.cfg = cfg
		m.filterMode = false
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	m.filterIndex = (idx%count + count) % count
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) parseFilter() (model.StatsConfig, error) {
	cfg := m.cfg
	cfg.Profile = strings.TrimSpace(m.filterInputs[fieldProfile].Value())

	cfg.Since = nil
	if v := strings.TrimSpace(m.filterInputs[fieldSince].Value()); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		cfg.Since = &parsed
	}

	cfg.Last = 0
	if v := strings.TrimSpace(m.filterInputs[fieldLast].Value()); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return cfg, fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		cfg.Last = parsed
	}

	if v := strings.TrimSpace(m.filterInputs[fieldWindow].Value()); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return cfg, fmt.Errorf("invalid curve window (use integer >= 1)")
		}
		cfg.CurveWindow = parsed
	}
	return cfg, nil
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	return (n/5 + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
