package montage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/forPelevin/vidsum/internal/types"
)

type fakeVideoTool struct {
	length      time.Duration
	failVideo   bool
	audioPaths  []string
	videoPaths  []string
	gotRegions  []types.Region
	audioExists bool
}

func (f *fakeVideoTool) RenderAudio(_ context.Context, _ string, _ []types.Region, out string, _ types.Encoding) error {
	f.audioPaths = append(f.audioPaths, out)
	return os.WriteFile(out, []byte("aac"), 0o644)
}

func (f *fakeVideoTool) RenderVideo(_ context.Context, _ string, rs []types.Region, audio, out string, _ types.Encoding) error {
	f.gotRegions = rs
	f.videoPaths = append(f.videoPaths, out)
	_, err := os.Stat(audio)
	f.audioExists = err == nil
	if err := os.WriteFile(out, []byte("partial"), 0o644); err != nil {
		return err
	}
	if f.failVideo {
		return errors.New("encoder crashed")
	}
	return nil
}

func (f *fakeVideoTool) ProbeDuration(context.Context, string) (time.Duration, error) {
	return f.length, nil
}

func TestCompose_Validates(t *testing.T) {
	tool := &fakeVideoTool{length: 30 * time.Second}
	ctx := context.Background()

	_, err := Compose(ctx, tool, "in.mp4", nil)
	require.True(t, errors.Is(err, ErrNoRegions))

	_, err = Compose(ctx, tool, "in.mp4", []types.Region{{Start: 5, End: 5}})
	require.True(t, errors.Is(err, ErrInvalidRegion))

	_, err = Compose(ctx, tool, "in.mp4", []types.Region{{Start: 31, End: 35}})
	require.True(t, errors.Is(err, ErrInvalidRegion))

	m, err := Compose(ctx, tool, "in.mp4", []types.Region{{Start: 1, End: 2}, {Start: 28, End: 33}})
	require.NoError(t, err)
	require.Equal(t, []types.Region{{Start: 1, End: 2}, {Start: 28, End: 30}}, m.Regions())
}

func TestExport_Success(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "movie_summarized.mp4")
	tool := &fakeVideoTool{length: time.Minute}

	m, err := Compose(context.Background(), tool, "in.mp4", []types.Region{{Start: 0, End: 5}, {Start: 12, End: 20}})
	require.NoError(t, err)
	require.NoError(t, m.Export(context.Background(), dst, types.DefaultEncoding()))

	require.True(t, tool.audioExists, "audio must exist while video renders")
	require.Equal(t, m.Regions(), tool.gotRegions)
	require.FileExists(t, dst)
	require.NoFileExists(t, tool.audioPaths[0])
	require.NoFileExists(t, tool.videoPaths[0])
}

func TestExport_FailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "movie_summarized.mp4")
	tool := &fakeVideoTool{length: time.Minute, failVideo: true}

	m, err := Compose(context.Background(), tool, "in.mp4", []types.Region{{Start: 0, End: 5}})
	require.NoError(t, err)
	require.Error(t, m.Export(context.Background(), dst, types.DefaultEncoding()))

	require.NoFileExists(t, dst)
	require.NoFileExists(t, tool.audioPaths[0])
	require.NoFileExists(t, tool.videoPaths[0])
}

func TestExport_TempDir(t *testing.T) {
	dir := t.TempDir()
	tmp := t.TempDir()
	dst := filepath.Join(dir, "movie_summarized.mp4")
	tool := &fakeVideoTool{length: time.Minute}

	m, err := Compose(context.Background(), tool, "in.mp4", []types.Region{{Start: 0, End: 5}})
	require.NoError(t, err)
	m.TempDir = tmp
	require.NoError(t, m.Export(context.Background(), dst, types.DefaultEncoding()))

	require.Equal(t, filepath.Join(tmp, "movie_summarized.audio.m4a"), tool.audioPaths[0])
	require.NoFileExists(t, tool.audioPaths[0])
	require.FileExists(t, dst)
}
