// Package main provides the CLI entrypoint for tapmorse.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tapmorse/internal/config"
	"github.com/verte-zerg/tapmorse/internal/generator"
	"github.com/verte-zerg/tapmorse/internal/keyer"
	"github.com/verte-zerg/tapmorse/internal/logger"
	"github.com/verte-zerg/tapmorse/internal/model"
	"github.com/verte-zerg/tapmorse/internal/stats"
	"github.com/verte-zerg/tapmorse/internal/store"
	"github.com/verte-zerg/tapmorse/internal/tui"
	"github.com/verte-zerg/tapmorse/internal/wordlist"
)

var (
	keyProfile        string
	keyClickThreshold float64
	keyCharDelay      float64
	keyTranscript     bool
	keyAudio          bool
	keyToneFrequency  float64
	keyVolume         float64
	keyFrameRate      int
	keyDebug          bool

	drillLength     int
	drillCharset    string
	drillWords      string
	drillFocusWeak  bool
	drillWeakTop    int
	drillWeakFactor float64
	drillWeakWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	standard, _ := config.ProfileDefaults(config.ProfileStandard)

	rootCmd := &cobra.Command{
		Use:           "tapmorse",
		Short:         "Morse keyer driven by mouse press and release",
		Long:          "Hold the left mouse button as the key: short holds are dots, long holds are dashes.\nA pause finishes the character.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runKeyCmd,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&keyProfile, "profile", config.ProfileStandard, fmt.Sprintf("timing profile (%s)", strings.Join(config.ProfileNames(), ", ")))
	flags.Float64Var(&keyClickThreshold, "click-threshold", standard.ClickThreshold, "hold time in seconds at which a press becomes a dash")
	flags.Float64Var(&keyCharDelay, "char-delay", standard.CharDelay, "idle time in seconds that finishes a character")
	flags.BoolVar(&keyTranscript, "transcript", standard.Transcript, "keep a transcript of decoded characters")
	flags.BoolVar(&keyAudio, "audio", standard.Audio, "play a tone while the key is held")
	flags.Float64Var(&keyToneFrequency, "tone-frequency", standard.ToneFrequency, "tone frequency in Hz")
	flags.Float64Var(&keyVolume, "volume", standard.Volume, "tone volume (0-1)")
	flags.IntVar(&keyFrameRate, "frame-rate", standard.FrameRate, "frames per second")
	flags.BoolVar(&keyDebug, "debug", false, "write debug records to the log file")

	flags.IntVar(&drillLength, "drill", standard.DrillLength, "drill with targets of N characters (0 for free keying)")
	flags.StringVar(&drillCharset, "charset", standard.DrillCharset, "drill charset (letters, digits, punct, all; comma separated)")
	flags.StringVar(&drillWords, "words", "", "drill on words from a file, one per line, instead of a charset")
	flags.BoolVar(&drillFocusWeak, "focus-weak", false, "bias drills toward weak characters")
	flags.IntVar(&drillWeakTop, "weak-top", standard.WeakTop, "number of weak characters to focus on")
	flags.Float64Var(&drillWeakFactor, "weak-factor", standard.WeakFactor, "weight factor for weak characters")
	flags.IntVar(&drillWeakWindow, "weak-window", standard.WeakWindow, "number of recent drills to compute weak chars")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newEncodeCmd())

	return rootCmd
}

// resolveConfig layers profile defaults, the config file and changed flags.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	profile := config.ResolveProfile(keyProfile, cmd.Flags().Changed("profile"), fileCfg)
	cfg, err := config.ProfileDefaults(profile)
	if err != nil {
		return model.Config{}, err
	}
	cfg = fileCfg.Overlay(cfg)

	flags := cmd.Flags()
	applyFlag(flags.Changed("click-threshold"), &cfg.ClickThreshold, keyClickThreshold)
	applyFlag(flags.Changed("char-delay"), &cfg.CharDelay, keyCharDelay)
	applyFlag(flags.Changed("transcript"), &cfg.Transcript, keyTranscript)
	applyFlag(flags.Changed("audio"), &cfg.Audio, keyAudio)
	applyFlag(flags.Changed("tone-frequency"), &cfg.ToneFrequency, keyToneFrequency)
	applyFlag(flags.Changed("volume"), &cfg.Volume, keyVolume)
	applyFlag(flags.Changed("frame-rate"), &cfg.FrameRate, keyFrameRate)
	applyFlag(flags.Changed("drill"), &cfg.DrillLength, drillLength)
	applyFlag(flags.Changed("charset"), &cfg.DrillCharset, drillCharset)
	applyFlag(flags.Changed("words"), &cfg.WordList, drillWords)
	applyFlag(flags.Changed("focus-weak"), &cfg.FocusWeak, drillFocusWeak)
	applyFlag(flags.Changed("weak-top"), &cfg.WeakTop, drillWeakTop)
	applyFlag(flags.Changed("weak-factor"), &cfg.WeakFactor, drillWeakFactor)
	applyFlag(flags.Changed("weak-window"), &cfg.WeakWindow, drillWeakWindow)
	return cfg, nil
}

func applyFlag[T any](changed bool, target *T, value T) {
	if changed {
		*target = value
	}
}

func runKeyCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	keyerCfg := config.KeyerConfig(cfg)
	if err := keyerCfg.Validate(); err != nil {
		return err
	}

	level := logger.INFO
	if keyDebug {
		level = logger.DEBUG
	}
	if l, err := logger.NewFileLogger(config.DefaultLogPath(), level, keyDebug); err != nil {
		logErrf("logging disabled: %v\n", err)
	} else {
		// file:line only helps when chasing timing issues
		l.EnableCaller(keyDebug)
		logger.SetGlobal(l)
	}
	defer func() {
		_ = logger.Close()
	}()
	logger.Info("starting: profile=%s click=%s delay=%s drill=%d", cfg.Profile, keyerCfg.ClickThreshold, keyerCfg.CharDelay, cfg.DrillLength)

	alphabet, err := generator.Alphabet(cfg.DrillCharset)
	if err != nil {
		return err
	}
	var words []string
	if cfg.DrillLength > 0 && cfg.WordList != "" {
		words, err = wordlist.LoadWords(cfg.WordList)
		if err != nil {
			return fmt.Errorf("failed to load word list: %w", err)
		}
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

	weakSet := map[rune]struct{}{}
	if cfg.DrillLength > 0 && cfg.FocusWeak {
		aggs, err := st.GetWeakChars(context.Background(), cfg.WeakWindow, cfg.Profile)
		if err != nil {
			logErrf("failed to load weak chars: %v\n", err)
		} else {
			weakSet = stats.SelectWeakChars(aggs, cfg.WeakTop)
			if len(weakSet) == 0 {
				logErrln("no stats available for weak-char focus yet; using normal generator")
			}
		}
	}

	var tone keyer.ToneSink
	if cfg.Audio {
		t, closeAudio, err := startTone(cfg)
		if err != nil {
			logger.Warn("audio disabled: %v", err)
		} else {
			tone = t
			defer closeAudio()
		}
	}

	ctrl := keyer.NewController(keyerCfg, tone)
	m := tui.NewModel(cfg, ctrl, st, generator.New(), alphabet, words, weakSet)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func validateConfig(cfg model.Config) error {
	if cfg.FrameRate <= 0 {
		return fmt.Errorf("--frame-rate must be > 0")
	}
	if cfg.ToneFrequency <= 0 {
		return fmt.Errorf("--tone-frequency must be > 0")
	}
	if cfg.Volume < 0 || cfg.Volume > 1 {
		return fmt.Errorf("--volume must be between 0 and 1")
	}
	if cfg.DrillLength < 0 {
		return fmt.Errorf("--drill must be >= 0")
	}
	if cfg.DrillLength > 0 && !cfg.Transcript {
		return fmt.Errorf("--drill needs the transcript; profile %q disables it (use --transcript)", cfg.Profile)
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	standard, _ := config.ProfileDefaults(config.ProfileStandard)
	return fmt.Sprintf(`# tapmorse configuration
# Uncomment a value to enable it. CLI flags override config values,
# config values override the profile.

[keyer]
# profile = %q        # %s
# click-threshold = %.2f  # Seconds; holds at least this long are dashes
# char-delay = %.2f       # Seconds of idle that finish a character
# transcript = %t         # Keep decoded characters
# audio = %t              # Tone while the key is held
# tone-frequency = %.1f  # Hz
# volume = %.2f           # 0-1
# frame-rate = %d          # Frames per second

[drill]
# length = %d              # Characters per drill target (0 for free keying)
# charset = %q       # letters, digits, punct, all
# words = "/path/to/words.txt"  # Drill on words from this file instead of the charset
# focus-weak = false      # Bias drills toward weak characters
# weak-top = %d            # Number of weak characters to focus on
# weak-factor = %.1f       # Weight factor for weak characters
# weak-window = %d         # Number of recent drills to compute weak chars
`,
		standard.Profile,
		strings.Join(config.ProfileNames(), ", "),
		standard.ClickThreshold,
		standard.CharDelay,
		standard.Transcript,
		standard.Audio,
		standard.ToneFrequency,
		standard.Volume,
		standard.FrameRate,
		standard.DrillLength,
		standard.DrillCharset,
		standard.WeakTop,
		standard.WeakFactor,
		standard.WeakWindow,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
