// Package montage cuts ordered regions out of a video and exports them as
// one file.
package montage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/forPelevin/vidsum/internal/ports"
	"github.com/forPelevin/vidsum/internal/types"
)

var (
	ErrNoRegions     = errors.New("no regions to assemble")
	ErrInvalidRegion = errors.New("invalid region")
)

// Montage is a renderable handle: the regions are only cut on Export.
type Montage struct {
	// TempDir holds the intermediate audio track. Empty means next to the output.
	TempDir string

	tool    ports.VideoTool
	video   string
	regions []types.Region
}

// Compose checks regions against the source duration and returns the handle.
// Regions running past the end of the video are clipped to it.
func Compose(ctx context.Context, tool ports.VideoTool, video string, regions []types.Region) (Montage, error) {
	if len(regions) == 0 {
		return Montage{}, ErrNoRegions
	}
	length, err := tool.ProbeDuration(ctx, video)
	if err != nil {
		return Montage{}, err
	}
	limit := length.Seconds()

	out := make([]types.Region, 0, len(regions))
	for i, r := range regions {
		if r.Start < 0 || r.End <= r.Start {
			return Montage{}, fmt.Errorf("%w %d: [%.3f, %.3f]", ErrInvalidRegion, i, r.Start, r.End)
		}
		if limit > 0 {
			if r.Start >= limit {
				return Montage{}, fmt.Errorf("%w %d: starts at %.3fs, video is %.3fs", ErrInvalidRegion, i, r.Start, limit)
			}
			if r.End > limit {
				r.End = limit
			}
		}
		out = append(out, r)
	}
	return Montage{tool: tool, video: video, regions: out}, nil
}

func (m Montage) Regions() []types.Region { return m.regions }

// Export encodes the montage to dst. Audio is rendered first to a temporary
// file; the video is written to a partial file that is renamed into place
// only once encoding succeeded.
func (m Montage) Export(ctx context.Context, dst string, enc types.Encoding) (err error) {
	ext := filepath.Ext(dst)
	base := strings.TrimSuffix(dst, ext)
	partial := base + ".partial" + ext
	audio := base + ".audio.m4a"
	if m.TempDir != "" {
		audio = filepath.Join(m.TempDir, filepath.Base(base)+".audio.m4a")
	}

	defer os.Remove(audio)
	defer func() {
		if err != nil {
			os.Remove(partial)
		}
	}()

	if err := m.tool.RenderAudio(ctx, m.video, m.regions, audio, enc); err != nil {
		return err
	}
	if err := m.tool.RenderVideo(ctx, m.video, m.regions, audio, partial, enc); err != nil {
		return err
	}
	if err := os.Rename(partial, dst); err != nil {
		return fmt.Errorf("move output into place: %w", err)
	}
	return nil
}
