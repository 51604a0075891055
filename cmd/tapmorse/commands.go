package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tapmorse/internal/config"
	"github.com/verte-zerg/tapmorse/internal/keyer"
	"github.com/verte-zerg/tapmorse/internal/model"
	"github.com/verte-zerg/tapmorse/internal/morse"
	"github.com/verte-zerg/tapmorse/internal/replay"
	"github.com/verte-zerg/tapmorse/internal/stats"
	"github.com/verte-zerg/tapmorse/internal/statsui"
	"github.com/verte-zerg/tapmorse/internal/store"
)

const defaultCurveWindow = 20

var (
	statsProfile     string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsChars       string
	statsPlain       bool

	replayProfile string
	replayFrame   time.Duration

	encodeProfile string
	encodeScript  bool
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsProfile, "profile", "", "profile filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().StringVar(&statsChars, "char", "", "characters to show in the table")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the browser")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	cfg := model.StatsConfig{
		Profile:     statsProfile,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
		Chars:       strings.ToUpper(statsChars),
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if !statsPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	return renderReport(cmd.OutOrStdout(), report, cfg, stats.TerminalWidth(os.Stdout))
}

func renderReport(w io.Writer, report stats.Report, cfg model.StatsConfig, width int) error {
	if err := stats.RenderSummary(w, report.Sessions); err != nil {
		return err
	}
	if len(report.Sessions) == 0 {
		return nil
	}
	if err := stats.RenderCurves(w, report.Sessions, cfg.CurveWindow, width); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\nCharacters (last %d sessions)\n", len(report.WindowSessionIDs)); err != nil {
		return err
	}
	if err := stats.RenderCharTable(w, report.CharAggsWindow); err != nil {
		return err
	}
	if len(report.TopChars) > 0 {
		if _, err := fmt.Fprintf(w, "\nMost keyed: %s\n", strings.Join(report.TopChars, " ")); err != nil {
			return err
		}
	}
	return nil
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Run a keying script without a terminal UI",
		Long:  "Run a keying script (down/up/wait/reset/delete lines) through the keyer. Use - for stdin.",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplayCmd,
	}
	cmd.Flags().StringVar(&replayProfile, "profile", config.ProfileStandard, "timing profile")
	cmd.Flags().DurationVar(&replayFrame, "frame", time.Second/60, "simulated frame duration")
	return cmd
}

func runReplayCmd(cmd *cobra.Command, args []string) error {
	keyerCfg, err := profileKeyerConfig(cmd, replayProfile)
	if err != nil {
		return err
	}
	keyerCfg.Audio = false

	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		r = f
	}
	steps, err := replay.Parse(r)
	if err != nil {
		return err
	}

	res := replay.Run(keyer.NewController(keyerCfg, nil), steps, replayFrame)
	out := cmd.OutOrStdout()
	for _, d := range res.Decoded {
		char := "?"
		if d.OK {
			char = string(d.Char)
		}
		if _, err := fmt.Fprintf(out, "%-8s %s\n", d.Sequence, char); err != nil {
			return err
		}
	}
	text := res.Snapshot.Transcript
	if !keyerCfg.Transcript {
		text = string(res.Snapshot.Display)
	}
	_, err = fmt.Fprintf(out, "%s\n(%s elapsed)\n", text, res.Elapsed)
	return err
}

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode TEXT...",
		Short: "Print text as Morse, or as a keying script",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runEncodeCmd,
	}
	cmd.Flags().BoolVar(&encodeScript, "script", false, "write a replay script instead of glyphs")
	cmd.Flags().StringVar(&encodeProfile, "profile", config.ProfileStandard, "timing profile for --script")
	return cmd
}

func runEncodeCmd(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	out := cmd.OutOrStdout()
	var skipped []rune
	if encodeScript {
		keyerCfg, err := profileKeyerConfig(cmd, encodeProfile)
		if err != nil {
			return err
		}
		skipped, err = replay.WriteScript(out, text, replay.TimingFor(keyerCfg))
		if err != nil {
			return err
		}
	} else {
		var encoded string
		encoded, skipped = morse.EncodeText(text)
		if _, err := fmt.Fprintln(out, encoded); err != nil {
			return err
		}
	}
	var unknown []string
	for _, r := range skipped {
		if r != ' ' {
			unknown = append(unknown, string(r))
		}
	}
	if len(unknown) > 0 {
		logErrf("skipped characters without a code: %s\n", strings.Join(unknown, " "))
	}
	return nil
}

// profileKeyerConfig layers the config file over a profile. An explicit
// --profile wins over the file's profile.
func profileKeyerConfig(cmd *cobra.Command, profile string) (keyer.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return keyer.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	name := config.ResolveProfile(profile, cmd.Flags().Changed("profile"), fileCfg)
	cfg, err := config.ProfileDefaults(name)
	if err != nil {
		return keyer.Config{}, err
	}
	keyerCfg := config.KeyerConfig(fileCfg.Overlay(cfg))
	if err := keyerCfg.Validate(); err != nil {
		return keyer.Config{}, err
	}
	return keyerCfg, nil
}
