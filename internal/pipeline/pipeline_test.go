package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forPelevin/vidsum/internal/domain/nlp"
	"github.com/forPelevin/vidsum/internal/domain/summarize"
	"github.com/forPelevin/vidsum/internal/types"
)

const sampleSRT = `1
00:00:00,000 --> 00:00:05,000
Hello there, welcome to the launch

2
00:00:05,000 --> 00:00:12,000
[door slam]

3
00:00:12,000 --> 00:00:20,000
Goodbye now, the launch went well
`

func TestOutputPaths(t *testing.T) {
	got := outputPaths("out", "/tmp/My Talk.mkv")
	want := Outputs{
		Video:    filepath.Join("out", "My Talk_summarized.mp4"),
		Manifest: filepath.Join("out", "My Talk_summarized.json"),
		SRT:      filepath.Join("out", "My Talk_summarized.srt"),
	}
	if got != want {
		t.Fatalf("outputPaths = %+v, want %+v", got, want)
	}

	got = outputPaths("", "/videos/talk.mp4")
	if got.Video != "/videos/talk_summarized.mp4" {
		t.Fatalf("expected output next to input, got %s", got.Video)
	}
}

func TestDefaultSubtitles(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "talk.mp4")

	if got := defaultSubtitles(video); got != filepath.Join(dir, "talk.srt") {
		t.Fatalf("no subtitles: got %s", got)
	}
	touch(t, filepath.Join(dir, "talk.vtt"), "WEBVTT\n")
	if got := defaultSubtitles(video); got != filepath.Join(dir, "talk.vtt") {
		t.Fatalf("vtt only: got %s", got)
	}
	touch(t, filepath.Join(dir, "talk.srt"), sampleSRT)
	if got := defaultSubtitles(video); got != filepath.Join(dir, "talk.srt") {
		t.Fatalf("srt preferred: got %s", got)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "talk.mp4")
	subs := filepath.Join(dir, "talk.srt")
	touch(t, video, "")
	touch(t, subs, sampleSRT)

	valid := func() Config {
		return Config{
			InputVideo:  video,
			Summarizer:  "lsa",
			Language:    "english",
			Search:      "bisect",
			DurationSec: 10,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantIs  error
		wantErr string
	}{
		{name: "ok"},
		{
			name: "unknown summarizer before any stat",
			mutate: func(c *Config) {
				c.Summarizer = "nonexistent"
				c.InputVideo = filepath.Join(dir, "missing.mp4")
				c.Subtitles = filepath.Join(dir, "missing.srt")
			},
			wantIs: summarize.ErrUnknownSummarizer,
		},
		{
			name:   "unknown language",
			mutate: func(c *Config) { c.Language = "klingon" },
			wantIs: nlp.ErrUnknownLanguage,
		},
		{
			name:    "unknown search",
			mutate:  func(c *Config) { c.Search = "random" },
			wantErr: "unknown search strategy",
		},
		{
			name:    "zero duration",
			mutate:  func(c *Config) { c.DurationSec = 0 },
			wantErr: "duration must be > 0",
		},
		{
			name:    "missing input",
			mutate:  func(c *Config) { c.InputVideo = filepath.Join(dir, "missing.mp4") },
			wantErr: "stat input:",
		},
		{
			name: "dry run skips input stat",
			mutate: func(c *Config) {
				c.InputVideo = filepath.Join(dir, "missing.mp4")
				c.Subtitles = subs
				c.DryRun = true
			},
		},
		{
			name:    "missing subtitles",
			mutate:  func(c *Config) { c.Subtitles = filepath.Join(dir, "missing.srt") },
			wantErr: "stat subtitles:",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			if tt.mutate != nil {
				tt.mutate(&c)
			}
			err := c.Validate()
			switch {
			case tt.wantIs != nil:
				if !errors.Is(err, tt.wantIs) {
					t.Fatalf("expected %v, got %v", tt.wantIs, err)
				}
			case tt.wantErr != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if c.Subtitles != subs {
					t.Fatalf("subtitles = %s, want %s", c.Subtitles, subs)
				}
			}
		})
	}
}

func TestRun_DryRunWritesManifest(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "talk.mp4")
	touch(t, filepath.Join(dir, "talk.srt"), sampleSRT)
	outDir := filepath.Join(dir, "out")

	man, err := Run(context.Background(), Config{
		InputVideo:  video,
		OutDir:      outDir,
		Summarizer:  "luhn",
		Language:    "english",
		DurationSec: 8,
		CacheDir:    filepath.Join(dir, ".cache"),
		WriteSRT:    true,
		DryRun:      true,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(man.Regions) == 0 {
		t.Fatalf("expected regions")
	}

	b, err := os.ReadFile(filepath.Join(outDir, "talk_summarized.json"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var onDisk types.Manifest
	if err := json.Unmarshal(b, &onDisk); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if onDisk.Summarizer != string(summarize.FrequencyRank) || onDisk.Search != "bisect" {
		t.Fatalf("unexpected manifest: %+v", onDisk)
	}
	if onDisk.Output != "" {
		t.Fatalf("dry run should not record an output video, got %q", onDisk.Output)
	}
	if _, err := os.Stat(filepath.Join(outDir, "talk_summarized.srt")); err != nil {
		t.Fatalf("expected summary srt: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "talk_summarized.mp4")); !os.IsNotExist(err) {
		t.Fatalf("dry run rendered a video, stat err=%v", err)
	}
}

func touch(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
