//go:build integration

package itest

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// lectureSRT covers 30s of a synthetic talk with one sound annotation.
const lectureSRT = `1
00:00:00,500 --> 00:00:04,500
Welcome to the lecture about rocket engines

2
00:00:05,000 --> 00:00:09,000
Rocket engines burn fuel and oxidizer in a chamber

3
00:00:09,500 --> 00:00:11,000
[applause]

4
00:00:11,500 --> 00:00:16,000
The nozzle turns hot gas into thrust for the rocket

5
00:00:16,500 --> 00:00:21,000
Birds were singing outside the window this morning

6
00:00:21,500 --> 00:00:26,000
Remember that thrust depends on the fuel flow of the engine

7
00:00:26,500 --> 00:00:29,500
Thank you and goodbye
`

func findRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return wd, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			break
		}
		wd = parent
	}
	return "", errors.New("could not locate go.mod")
}

func mustRepoRoot(t *testing.T) string {
	t.Helper()

	repoRoot, err := findRepoRoot()
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}
	return repoRoot
}

// makeLecture writes dir/lecture.mp4 (30s tone over a color source) and
// the matching dir/lecture.srt.
func makeLecture(t *testing.T, dir string) string {
	t.Helper()

	video := filepath.Join(dir, "lecture.mp4")
	ff := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", "testsrc=size=640x360:rate=25:duration=30",
		"-f", "lavfi",
		"-i", "sine=frequency=440:duration=30",
		"-shortest",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		video,
	)
	if b, err := ff.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg fixture failed: %v\n%s", err, string(b))
	}
	if err := os.WriteFile(filepath.Join(dir, "lecture.srt"), []byte(lectureSRT), 0o644); err != nil {
		t.Fatalf("write subtitles fixture: %v", err)
	}
	return video
}

func probeDurationSeconds(path string) (float64, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return sec, nil
}
