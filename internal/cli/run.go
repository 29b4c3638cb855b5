package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/forPelevin/vidsum/internal/config"
	"github.com/forPelevin/vidsum/internal/pipeline"
)

func run(cmd *cobra.Command, input string) error {
	flags := cmd.Flags()
	cfgPath, _ := flags.GetString("config")
	fc, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	cfg := pipeline.Config{
		InputVideo:    absIn,
		Summarizer:    fc.Summarizer,
		Language:      fc.Language,
		Search:        fc.Search,
		DurationSec:   fc.DurationSec,
		MaxIterations: fc.MaxIterations,
		CueWords:      fc.CueWords,
		CacheDir:      fc.CacheDir,
		FFmpegPath:    fc.FFmpeg.Path,
		FFprobePath:   fc.FFmpeg.ProbePath,
		Encoding:      fc.Encoding,
	}

	// explicit flags win over file and env
	if flags.Changed("subs") {
		cfg.Subtitles, _ = flags.GetString("subs")
	}
	if flags.Changed("duration") {
		cfg.DurationSec, _ = flags.GetFloat64("duration")
	}
	if flags.Changed("summarizer") {
		cfg.Summarizer, _ = flags.GetString("summarizer")
	}
	if flags.Changed("language") {
		cfg.Language, _ = flags.GetString("language")
	}
	if flags.Changed("search") {
		cfg.Search, _ = flags.GetString("search")
	}
	if flags.Changed("max-iterations") {
		cfg.MaxIterations, _ = flags.GetInt("max-iterations")
	}
	cfg.OutDir, _ = flags.GetString("out")
	cfg.DryRun, _ = flags.GetBool("dry-run")
	cfg.WriteSRT, _ = flags.GetBool("subs-out")

	if quiet, _ := flags.GetBool("quiet"); !quiet {
		errOut := cmd.ErrOrStderr()
		cfg.Logf = func(format string, args ...any) {
			fmt.Fprintf(errOut, format+"\n", args...)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Hour)
	defer cancel()

	man, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}
	if cfg.DryRun {
		b, err := json.MarshalIndent(man, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal manifest: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
	}
	return nil
}
