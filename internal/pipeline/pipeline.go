package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/forPelevin/vidsum/internal/domain/converge"
	"github.com/forPelevin/vidsum/internal/domain/nlp"
	"github.com/forPelevin/vidsum/internal/domain/summarize"
	"github.com/forPelevin/vidsum/internal/ports"
	"github.com/forPelevin/vidsum/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/vidsum/internal/types"
	"github.com/forPelevin/vidsum/internal/usecase"
)

type Config struct {
	InputVideo string
	// Subtitles defaults to the video path with a .srt (then .vtt) extension.
	Subtitles string
	// OutDir defaults to the directory of InputVideo.
	OutDir string

	Summarizer    string
	Language      string
	Search        string
	DurationSec   float64
	MaxIterations int
	CueWords      summarize.CueWords

	// CacheDir is the base directory for intermediate audio.
	// If empty, defaults to ".cache".
	CacheDir string

	FFmpegPath  string
	FFprobePath string
	Encoding    types.Encoding

	WriteSRT bool
	DryRun   bool
	Logf     func(format string, args ...any)
}

// Validate rejects bad names before touching the filesystem, then checks
// that the inputs exist. Empty Subtitles is resolved in place.
func (c *Config) Validate() error {
	if _, err := summarize.ParseKind(c.Summarizer); err != nil {
		return err
	}
	if _, err := nlp.Lookup(c.Language); err != nil {
		return err
	}
	if _, err := converge.ParseStrategy(c.Search); err != nil {
		return err
	}
	if c.DurationSec <= 0 {
		return fmt.Errorf("duration must be > 0")
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("max iterations must be >= 0")
	}
	if c.InputVideo == "" {
		return errors.New("input is empty")
	}
	if !c.DryRun {
		if _, err := os.Stat(c.InputVideo); err != nil {
			return fmt.Errorf("stat input: %w", err)
		}
	}
	if c.Subtitles == "" {
		c.Subtitles = defaultSubtitles(c.InputVideo)
	}
	if _, err := os.Stat(c.Subtitles); err != nil {
		return fmt.Errorf("stat subtitles: %w", err)
	}
	return nil
}

// Outputs are the files one run writes.
type Outputs struct {
	Video    string
	Manifest string
	SRT      string
}

func Run(ctx context.Context, cfg Config) (types.Manifest, error) {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	if err := cfg.Validate(); err != nil {
		return types.Manifest{}, err
	}
	kind, _ := summarize.ParseKind(cfg.Summarizer)
	lang, _ := nlp.Lookup(cfg.Language)
	strategy, _ := converge.ParseStrategy(cfg.Search)

	enc := cfg.Encoding
	if enc.VideoCodec == "" {
		enc = types.DefaultEncoding()
	}

	// adapters
	v := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)
	uc := usecase.New(usecase.Deps{Video: v})

	baseCache := cfg.CacheDir
	if baseCache == "" {
		baseCache = ".cache"
	}
	cacheDir := filepath.Join(baseCache, "runs", hash(cfg.InputVideo))
	if !cfg.DryRun {
		logf("preparing workspace")
		if err := os.MkdirAll(cacheDir, 0o755); err != nil {
			return types.Manifest{}, err
		}
		logf("cache: %s", cacheDir)
	}

	out := outputPaths(cfg.OutDir, cfg.InputVideo)
	if err := os.MkdirAll(filepath.Dir(out.Manifest), 0o755); err != nil {
		return types.Manifest{}, err
	}

	in := usecase.Input{
		Video:         cfg.InputVideo,
		Subtitles:     cfg.Subtitles,
		Kind:          kind,
		Language:      lang,
		Strategy:      strategy,
		TargetSec:     cfg.DurationSec,
		MaxIterations: cfg.MaxIterations,
		CueWords:      cfg.CueWords,
		Encoding:      enc,
		OutVideo:      out.Video,
		TempDir:       cacheDir,
		DryRun:        cfg.DryRun,
		Logf:          logf,
	}
	if cfg.WriteSRT {
		in.OutSRT = out.SRT
	}
	res, err := uc.Run(ctx, in)
	if err != nil {
		return types.Manifest{}, err
	}

	b, err := json.MarshalIndent(res.Manifest, "", "  ")
	if err != nil {
		return types.Manifest{}, fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(out.Manifest, b, 0o644); err != nil {
		return types.Manifest{}, err
	}
	logf("manifest written (%d regions, %.2fs): %s", len(res.Manifest.Regions), res.Manifest.TotalSec, out.Manifest)
	return res.Manifest, nil
}

func outputPaths(outDir, input string) Outputs {
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + "_summarized"
	return Outputs{
		Video:    filepath.Join(outDir, base+".mp4"),
		Manifest: filepath.Join(outDir, base+".json"),
		SRT:      filepath.Join(outDir, base+".srt"),
	}
}

func defaultSubtitles(input string) string {
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	srt := stem + ".srt"
	if _, err := os.Stat(srt); err != nil {
		if _, err := os.Stat(stem + ".vtt"); err == nil {
			return stem + ".vtt"
		}
	}
	return srt
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
