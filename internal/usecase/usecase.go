package usecase

import (
	"context"
	"fmt"
	"os"

	"github.com/forPelevin/vidsum/internal/domain/converge"
	"github.com/forPelevin/vidsum/internal/domain/montage"
	"github.com/forPelevin/vidsum/internal/domain/nlp"
	"github.com/forPelevin/vidsum/internal/domain/subtitles"
	"github.com/forPelevin/vidsum/internal/domain/summarize"
	"github.com/forPelevin/vidsum/internal/ports"
	"github.com/forPelevin/vidsum/internal/types"
)

type Deps struct {
	Video ports.VideoTool
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	Video     string
	Subtitles string

	Kind          summarize.Kind
	Language      nlp.Language
	Strategy      converge.Strategy
	TargetSec     float64
	MaxIterations int
	CueWords      summarize.CueWords

	Encoding types.Encoding
	OutVideo string
	// OutSRT, when set, receives the selected cues retimed to the output.
	OutSRT  string
	TempDir string
	DryRun  bool

	Logf func(format string, args ...any)
}

type Result struct {
	Manifest types.Manifest
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	cues, err := subtitles.LoadFile(in.Subtitles)
	if err != nil {
		return Result{}, fmt.Errorf("load subtitles: %w", err)
	}
	logf("loaded %d cues from %s", len(cues), in.Subtitles)

	sel := converge.Pipeline{
		Cues:       cues,
		Summarizer: summarize.New(summarize.NewRegistry(in.CueWords)),
		Kind:       in.Kind,
		Language:   in.Language,
	}
	res, err := converge.Converge(ctx, cues, in.TargetSec, sel, converge.Options{
		Strategy:      in.Strategy,
		MaxIterations: in.MaxIterations,
		Sentences:     sel.Sentences(),
		Logf:          logf,
	})
	if err != nil {
		return Result{}, err
	}
	logf("selected %d regions, %.2fs of %.2fs target (%s, %d iterations)",
		len(res.Regions), res.Total, in.TargetSec, res.Direction, res.Iterations)

	picked := res.Regions
	if !in.DryRun {
		m, err := montage.Compose(ctx, u.d.Video, in.Video, res.Regions)
		if err != nil {
			return Result{}, err
		}
		m.TempDir = in.TempDir
		logf("rendering %s", in.OutVideo)
		if err := m.Export(ctx, in.OutVideo, in.Encoding); err != nil {
			return Result{}, err
		}
		picked = m.Regions()
	}

	man := types.Manifest{
		Input:      in.Video,
		Subtitles:  in.Subtitles,
		Summarizer: string(in.Kind),
		Language:   in.Language.Name(),
		Search:     string(in.Strategy),
		TargetSec:  in.TargetSec,
		Sentences:  int(res.Count),
		Iterations: res.Iterations,
	}
	if !in.DryRun {
		man.Output = in.OutVideo
	}
	for i, r := range picked {
		man.TotalSec += r.Duration()
		man.Regions = append(man.Regions, types.ManifestRegion{
			ID:       fmt.Sprintf("%03d", i+1),
			CueIndex: r.CueIndex,
			StartSec: r.Start,
			EndSec:   r.End,
			Text:     cues[r.CueIndex].Text,
		})
	}

	if in.OutSRT != "" {
		srt := subtitles.RenderSRT(subtitles.Retime(picked, cues))
		if err := writeFile(in.OutSRT, []byte(srt)); err != nil {
			return Result{}, err
		}
		man.SummarySRT = in.OutSRT
	}
	return Result{Manifest: man}, nil
}

func writeFile(path string, b []byte) error {
	return os.WriteFile(path, b, 0o644)
}
