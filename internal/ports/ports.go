package ports

import (
	"context"
	"time"

	"github.com/forPelevin/vidsum/internal/types"
)

// VideoTool cuts regions out of a source video and concatenates them in order.
type VideoTool interface {
	// RenderAudio writes the concatenated audio of regions to outAudio.
	RenderAudio(ctx context.Context, inVideo string, regions []types.Region, outAudio string, enc types.Encoding) error
	// RenderVideo writes the concatenated video of regions muxed with audio to outVideo.
	RenderVideo(ctx context.Context, inVideo string, regions []types.Region, audio, outVideo string, enc types.Encoding) error
	ProbeDuration(ctx context.Context, inVideo string) (time.Duration, error)
}
