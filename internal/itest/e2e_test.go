//go:build integration

package itest

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/forPelevin/vidsum/internal/pipeline"
	"github.com/forPelevin/vidsum/internal/types"
)

func TestE2E(t *testing.T) {
	for _, kind := range []string{"luhn", "edmundson", "lsa", "lex-rank", "text-rank"} {
		for _, search := range []string{"bisect", "step"} {
			kind, search := kind, search
			t.Run(kind+"/"+search, func(t *testing.T) {
				tmp := t.TempDir()
				in := makeLecture(t, tmp)
				outDir := filepath.Join(tmp, "out")

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				defer cancel()

				man, err := pipeline.Run(ctx, pipeline.Config{
					InputVideo:  in,
					OutDir:      outDir,
					Summarizer:  kind,
					Language:    "english",
					Search:      search,
					DurationSec: 12,
					CacheDir:    filepath.Join(tmp, ".cache"),
					FFmpegPath:  "ffmpeg",
					FFprobePath: "ffprobe",
					WriteSRT:    true,
					Logf:        t.Logf,
				})
				if err != nil {
					t.Fatalf("pipeline failed: %v", err)
				}

				out := filepath.Join(outDir, "lecture_summarized.mp4")
				got, err := probeDurationSeconds(out)
				if err != nil {
					t.Fatalf("probe output: %v", err)
				}
				// encoder frame/packet rounding per segment
				tol := 0.15 * float64(len(man.Regions)+1)
				if math.Abs(got-man.TotalSec) > tol {
					t.Fatalf("output is %.2fs, manifest says %.2fs", got, man.TotalSec)
				}
				for _, r := range man.Regions {
					if r.CueIndex == 2 {
						t.Fatalf("annotation cue was selected: %+v", r)
					}
				}

				b, err := os.ReadFile(filepath.Join(outDir, "lecture_summarized.json"))
				if err != nil {
					t.Fatalf("missing manifest: %v", err)
				}
				var onDisk types.Manifest
				if err := json.Unmarshal(b, &onDisk); err != nil {
					t.Fatalf("decode manifest: %v", err)
				}
				if onDisk.Output != out || len(onDisk.Regions) != len(man.Regions) {
					t.Fatalf("unexpected manifest on disk: %+v", onDisk)
				}

				srt, err := os.ReadFile(filepath.Join(outDir, "lecture_summarized.srt"))
				if err != nil {
					t.Fatalf("missing summary srt: %v", err)
				}
				if !strings.HasPrefix(string(srt), "1\n00:00:00,000 --> ") {
					t.Fatalf("summary srt not retimed:\n%s", srt)
				}

				leftovers, _ := filepath.Glob(filepath.Join(tmp, ".cache", "runs", "*", "*"))
				if len(leftovers) != 0 {
					t.Fatalf("temporary files left behind: %v", leftovers)
				}
			})
		}
	}
}
