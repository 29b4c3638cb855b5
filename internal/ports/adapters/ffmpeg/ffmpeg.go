package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/forPelevin/vidsum/internal/types"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

func (a *Adapter) RenderAudio(ctx context.Context, inVideo string, regions []types.Region, outAudio string, enc types.Encoding) error {
	script, err := writeScript(FilterGraph(regions, false, true))
	if err != nil {
		return err
	}
	defer os.Remove(script)

	args := []string{
		"-y",
		"-i", inVideo,
		"-filter_complex_script", script,
		"-map", "[outa]",
		"-vn",
		"-c:a", enc.AudioCodec,
	}
	if enc.AudioBitrate != "" {
		args = append(args, "-b:a", enc.AudioBitrate)
	}
	args = append(args, outAudio)
	return a.run(ctx, "ffmpeg render audio", args)
}

func (a *Adapter) RenderVideo(ctx context.Context, inVideo string, regions []types.Region, audio, outVideo string, enc types.Encoding) error {
	script, err := writeScript(FilterGraph(regions, true, false))
	if err != nil {
		return err
	}
	defer os.Remove(script)

	args := []string{
		"-y",
		"-i", inVideo,
		"-i", audio,
		"-filter_complex_script", script,
		"-map", "[outv]",
		"-map", "1:a",
		"-c:v", enc.VideoCodec,
	}
	if enc.Preset != "" {
		args = append(args, "-preset", enc.Preset)
	}
	if enc.CRF > 0 {
		args = append(args, "-crf", strconv.Itoa(enc.CRF))
	}
	args = append(args,
		"-pix_fmt", "yuv420p",
		"-c:a", "copy",
		"-movflags", "+faststart",
		"-shortest",
		outVideo,
	)
	return a.run(ctx, "ffmpeg render video", args)
}

func (a *Adapter) ProbeDuration(ctx context.Context, inVideo string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inVideo,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

func (a *Adapter) run(ctx context.Context, what string, args []string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w\n%s", what, err, tail(string(b), 2000))
	}
	return nil
}

// FilterGraph trims every region out of input 0 and concatenates the
// pieces into [outv] and/or [outa].
func FilterGraph(regions []types.Region, video, audio bool) string {
	var b strings.Builder
	for i, r := range regions {
		start, end := fmtSeconds(r.StartDur()), fmtSeconds(r.EndDur())
		if video {
			fmt.Fprintf(&b, "[0:v]trim=start=%s:end=%s,setpts=PTS-STARTPTS[v%d];\n", start, end, i)
		}
		if audio {
			fmt.Fprintf(&b, "[0:a]atrim=start=%s:end=%s,asetpts=PTS-STARTPTS[a%d];\n", start, end, i)
		}
	}
	if video {
		for i := range regions {
			fmt.Fprintf(&b, "[v%d]", i)
		}
		fmt.Fprintf(&b, "concat=n=%d:v=1:a=0[outv]", len(regions))
		if audio {
			b.WriteString(";\n")
		}
	}
	if audio {
		for i := range regions {
			fmt.Fprintf(&b, "[a%d]", i)
		}
		fmt.Fprintf(&b, "concat=n=%d:v=0:a=1[outa]", len(regions))
	}
	b.WriteString("\n")
	return b.String()
}

func writeScript(graph string) (string, error) {
	f, err := os.CreateTemp("", "vidsum-filter-*.txt")
	if err != nil {
		return "", fmt.Errorf("create filter script: %w", err)
	}
	if _, err := f.WriteString(graph); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write filter script: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func fmtSeconds(d time.Duration) string {
	sec := float64(d) / float64(time.Second)
	return strconv.FormatFloat(sec, 'f', 3, 64)
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
