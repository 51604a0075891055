package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tapmorse/internal/model"
	"github.com/verte-zerg/tapmorse/internal/store"
)

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "tapmorse.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	stats := model.SessionStats{
		StartedAt:  start,
		EndedAt:    start.Add(time.Minute),
		Profile:    "standard",
		Mode:       model.ModeDrill,
		Target:     "QQK",
		Transcript: "QQT",
		Correct:    2,
		Incorrect:  1,
		DurationMs: 60000,
	}
	chars := []model.CharStats{
		{Char: "Q", Correct: 2, LatencySumMs: 1400, LatencyCount: 2},
		{Char: "K", Incorrect: 1},
	}
	if _, err := st.InsertSession(context.Background(), stats, chars); err != nil {
		t.Fatalf("insert session: %v", err)
	}
	return st
}

func TestModelRendersOverviewAndTable(t *testing.T) {
	m := NewModel(seededStore(t), model.StatsConfig{CurveWindow: 5})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	if !strings.Contains(view, "Sessions") || !strings.Contains(view, "1 (1 drills)") {
		t.Fatalf("overview missing summary:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabCharTable {
		t.Fatalf("expected char table tab")
	}
	rows := m.charTable.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "K" || rows[0][1] != "-•-" {
		t.Fatalf("expected weakest char K first, got %v", rows[0])
	}
	if rows[1][3] != "700" {
		t.Fatalf("expected 700ms average keying for Q, got %v", rows[1])
	}
}

func TestModelFilterForm(t *testing.T) {
	m := NewModel(seededStore(t), model.StatsConfig{CurveWindow: 5})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	if !m.filterMode {
		t.Fatalf("expected filter mode")
	}
	m.filterInputs[fieldProfile].SetValue("minimal")
	m.filterInputs[fieldLast].SetValue("x")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.filterMode || m.filterError == "" {
		t.Fatalf("expected a validation error for last")
	}

	m.filterInputs[fieldLast].SetValue("3")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterMode {
		t.Fatalf("expected filter to apply")
	}
	if m.cfg.Profile != "minimal" || m.cfg.Last != 3 {
		t.Fatalf("unexpected config: %+v", m.cfg)
	}
	if len(m.report.Sessions) != 0 {
		t.Fatalf("expected no minimal sessions, got %d", len(m.report.Sessions))
	}
}

func TestCurveWindowSteps(t *testing.T) {
	if nextCurveWindow(1) != 5 || nextCurveWindow(5) != 10 || nextCurveWindow(7) != 10 {
		t.Fatalf("unexpected next window")
	}
	if prevCurveWindow(5) != 1 || prevCurveWindow(10) != 5 || prevCurveWindow(7) != 5 {
		t.Fatalf("unexpected previous window")
	}
}
