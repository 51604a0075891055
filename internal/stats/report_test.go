package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tapmorse/internal/model"
	"github.com/verte-zerg/tapmorse/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tapmorse.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		stats := model.SessionStats{
			StartedAt:  start,
			EndedAt:    end,
			Profile:    "standard",
			Mode:       model.ModeDrill,
			Target:     "ETAET",
			Transcript: "ETAEE",
			Correct:    4,
			Incorrect:  1,
			Dots:       4,
			Dashes:     3,
			DurationMs: end.Sub(start).Milliseconds(),
		}
		charStats := []model.CharStats{
			{Char: "E", Correct: 2, LatencySumMs: 200, LatencyCount: 2},
			{Char: "T", Correct: 1, Incorrect: 1, LatencySumMs: 250, LatencyCount: 1},
			{Char: "A", Correct: 1, LatencySumMs: 400, LatencyCount: 1},
		}
		id, err := st.InsertSession(ctx, stats, charStats)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}

	cfg := model.StatsConfig{
		Profile:     "standard",
		Last:        2,
		CurveWindow: 2,
		Chars:       "TA",
	}
	report, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].SessionID != ids[1] || report.Sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", report.Sessions)
	}
	if len(report.WindowSessionIDs) != 2 {
		t.Fatalf("expected 2 window session ids, got %d", len(report.WindowSessionIDs))
	}
	if len(report.CharAggsAll) != 3 {
		t.Fatalf("expected char aggregates for all sessions")
	}
	if len(report.CharAggsWindow) != 2 {
		t.Fatalf("expected char filter to keep T and A, got %+v", report.CharAggsWindow)
	}
	if len(report.TopChars) == 0 || report.TopChars[0] != "E" && report.TopChars[0] != "T" {
		t.Fatalf("unexpected top chars: %v", report.TopChars)
	}

	var buf bytes.Buffer
	if err := RenderSummary(&buf, report.Sessions); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if err := RenderCharTable(&buf, report.CharAggsWindow); err != nil {
		t.Fatalf("render char table: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 2 (2 drills)", "Avg Accuracy: 80.00%", "Per-Character", "•-", "50.00%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
