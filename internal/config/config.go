package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/forPelevin/vidsum/internal/domain/summarize"
	"github.com/forPelevin/vidsum/internal/types"
)

// DefaultPath is read when no explicit config file is given and it exists.
const DefaultPath = "vidsum.yaml"

type Config struct {
	Summarizer    string             `yaml:"summarizer"`
	Language      string             `yaml:"language"`
	DurationSec   float64            `yaml:"duration"`
	Search        string             `yaml:"search"`
	MaxIterations int                `yaml:"max_iterations"`
	CacheDir      string             `yaml:"cache_dir"`
	FFmpeg        FFmpegConfig       `yaml:"ffmpeg"`
	Encoding      types.Encoding     `yaml:"encoding"`
	CueWords      summarize.CueWords `yaml:"cue_words"`
}

type FFmpegConfig struct {
	Path      string `yaml:"path"`
	ProbePath string `yaml:"probe_path"`
}

func Default() *Config {
	return &Config{
		Summarizer:    "lsa",
		Language:      "english",
		DurationSec:   60,
		Search:        "bisect",
		MaxIterations: 1000,
		CacheDir:      ".cache",
		FFmpeg:        FFmpegConfig{Path: "ffmpeg", ProbePath: "ffprobe"},
		Encoding:      types.DefaultEncoding(),
	}
}

// Load layers defaults, the YAML file at path (or DefaultPath when path is
// empty and the file exists) and VIDSUM_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}
	if path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VIDSUM_SUMMARIZER"); v != "" {
		cfg.Summarizer = v
	}
	if v := os.Getenv("VIDSUM_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("VIDSUM_DURATION"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.DurationSec = parsed
		}
	}
	if v := os.Getenv("VIDSUM_SEARCH"); v != "" {
		cfg.Search = v
	}
	if v := os.Getenv("VIDSUM_MAX_ITERATIONS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.MaxIterations = parsed
		}
	}
	if v := os.Getenv("VIDSUM_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("VIDSUM_FFMPEG"); v != "" {
		cfg.FFmpeg.Path = v
	}
	if v := os.Getenv("VIDSUM_FFPROBE"); v != "" {
		cfg.FFmpeg.ProbePath = v
	}
}

// Validate fills in empty optional fields and rejects impossible values.
func (c *Config) Validate() error {
	if c.DurationSec <= 0 {
		return fmt.Errorf("duration must be > 0")
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("max_iterations must be >= 0")
	}
	def := types.DefaultEncoding()
	if c.Encoding.VideoCodec == "" {
		c.Encoding.VideoCodec = def.VideoCodec
	}
	if c.Encoding.AudioCodec == "" {
		c.Encoding.AudioCodec = def.AudioCodec
	}
	if c.Encoding.Preset == "" {
		c.Encoding.Preset = def.Preset
	}
	if c.Encoding.AudioBitrate == "" {
		c.Encoding.AudioBitrate = def.AudioBitrate
	}
	// crf 0 (lossless x264) is not offered: zero means unset
	if c.Encoding.CRF == 0 {
		c.Encoding.CRF = def.CRF
	}
	if c.Encoding.CRF < 1 || c.Encoding.CRF > 51 {
		return fmt.Errorf("encoding.crf must be in [1,51]")
	}
	if c.CacheDir == "" {
		c.CacheDir = ".cache"
	}
	if c.Summarizer == "" {
		c.Summarizer = "lsa"
	}
	if c.Language == "" {
		c.Language = "english"
	}
	return nil
}
