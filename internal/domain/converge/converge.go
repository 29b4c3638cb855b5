// Package converge searches for the sentence count whose selected regions
// add up to a target duration.
package converge

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/forPelevin/vidsum/internal/domain/regions"
	"github.com/forPelevin/vidsum/internal/domain/summarize"
	"github.com/forPelevin/vidsum/internal/types"
)

var (
	ErrNoCues            = errors.New("no cues: average cue duration is undefined")
	ErrConvergenceFailed = errors.New("duration search did not converge")
)

type Strategy string

const (
	// Step walks the sentence count one at a time in the direction fixed
	// by the first evaluation.
	Step Strategy = "step"
	// Bisect binary-searches integer counts in the same locked direction.
	Bisect Strategy = "bisect"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case Step, Bisect:
		return Strategy(s), nil
	case "":
		return Bisect, nil
	}
	return "", fmt.Errorf("unknown search strategy %q (want %s or %s)", s, Bisect, Step)
}

type Direction int

const (
	Increase Direction = iota + 1
	Decrease
)

func (d Direction) String() string {
	switch d {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	}
	return "unset"
}

// Selector runs document build, summarization and region resolution for
// one sentence count.
type Selector interface {
	Select(ctx context.Context, n float64) ([]types.Region, error)
}

type SelectorFunc func(ctx context.Context, n float64) ([]types.Region, error)

func (f SelectorFunc) Select(ctx context.Context, n float64) ([]types.Region, error) {
	return f(ctx, n)
}

const DefaultMaxIterations = 1000

type Options struct {
	Strategy      Strategy
	MaxIterations int
	// Sentences bounds the bisect search. Zero means one per cue.
	Sentences int
	Logf      func(format string, args ...any)
}

type Result struct {
	Regions    []types.Region
	Count      float64
	Total      float64
	Iterations int
	Direction  Direction
}

type evaluation struct {
	n       float64
	regions []types.Region
	total   float64
}

type searcher struct {
	sel    Selector
	target float64
	max    int
	iters  int
	logf   func(format string, args ...any)
}

func (s *searcher) eval(ctx context.Context, n float64) (evaluation, error) {
	if err := ctx.Err(); err != nil {
		return evaluation{}, err
	}
	if s.iters >= s.max {
		return evaluation{}, fmt.Errorf("%w after %d iterations (target %.2fs)", ErrConvergenceFailed, s.iters, s.target)
	}
	s.iters++
	rs, err := s.sel.Select(ctx, n)
	if err != nil {
		return evaluation{}, fmt.Errorf("select %.2f sentences: %w", n, err)
	}
	e := evaluation{n: n, regions: rs, total: regions.Total(rs)}
	s.logf("iteration %d: sentences=%.2f total=%.2fs target=%.2fs", s.iters, n, e.total, s.target)
	return e, nil
}

func (s *searcher) result(e evaluation, dir Direction) Result {
	return Result{Regions: e.regions, Count: e.n, Total: e.total, Iterations: s.iters, Direction: dir}
}

// Converge seeds the sentence count from the average cue duration, locks
// the search direction on the first evaluation and returns the first
// selection that crosses target in that direction.
func Converge(ctx context.Context, cues []types.Cue, target float64, sel Selector, opts Options) (Result, error) {
	if len(cues) == 0 {
		return Result{}, ErrNoCues
	}
	if target <= 0 || math.IsNaN(target) || math.IsInf(target, 0) {
		return Result{}, fmt.Errorf("target duration must be > 0, got %v", target)
	}
	avg := regions.TotalCues(cues) / float64(len(cues))
	if avg <= 0 {
		return Result{}, fmt.Errorf("%w: total cue duration is zero", ErrNoCues)
	}

	s := &searcher{sel: sel, target: target, max: opts.MaxIterations, logf: opts.Logf}
	if s.max <= 0 {
		s.max = DefaultMaxIterations
	}
	if s.logf == nil {
		s.logf = func(string, ...any) {}
	}
	seed := target / avg
	s.logf("average cue %.2fs over %d cues, seed %.2f sentences", avg, len(cues), seed)

	switch opts.Strategy {
	case Step:
		return s.step(ctx, seed)
	case Bisect, "":
		upper := opts.Sentences
		if upper <= 0 {
			upper = len(cues)
		}
		return s.bisect(ctx, seed, upper)
	default:
		return Result{}, fmt.Errorf("unknown search strategy %q", opts.Strategy)
	}
}

func (s *searcher) step(ctx context.Context, n float64) (Result, error) {
	var e evaluation
	var err error
	if n < 1 {
		// selects nothing: the walk starts at zero seconds and can only grow
		e = evaluation{n: n}
		s.logf("seed %.2f is below one sentence, treated as an empty selection", n)
	} else if e, err = s.eval(ctx, n); err != nil {
		return Result{}, err
	}
	if e.total < s.target {
		for e.total < s.target {
			if e, err = s.eval(ctx, e.n+1); err != nil {
				return Result{}, err
			}
		}
		return s.result(e, Increase), nil
	}
	// below one sentence the summarizer fails with ErrInsufficientContent
	for e.total > s.target {
		if e, err = s.eval(ctx, e.n-1); err != nil {
			return Result{}, err
		}
	}
	return s.result(e, Decrease), nil
}

func (s *searcher) bisect(ctx context.Context, seed float64, upper int) (Result, error) {
	seen := map[int]evaluation{}
	at := func(k int) (evaluation, error) {
		if e, ok := seen[k]; ok {
			return e, nil
		}
		e, err := s.eval(ctx, float64(k))
		if err != nil {
			return evaluation{}, err
		}
		seen[k] = e
		return e, nil
	}

	if seed < 1 {
		s.logf("seed %.2f is below one sentence, treated as an empty selection", seed)
		return s.bisectUp(at, 0, upper)
	}
	k0 := int(math.Round(seed))
	k0 = max(1, min(k0, upper))
	first, err := at(k0)
	if err != nil {
		return Result{}, err
	}

	if first.total < s.target {
		return s.bisectUp(at, k0, upper)
	}

	if first.total <= s.target {
		return s.result(first, Decrease), nil
	}
	// largest k in [1, k0) with total <= target
	low, err := at(1)
	if err != nil {
		return Result{}, err
	}
	if low.total > s.target {
		return Result{}, fmt.Errorf("%w: a single sentence gives %.2fs, above target %.2fs",
			summarize.ErrInsufficientContent, low.total, s.target)
	}
	lk, hi := 1, k0
	for hi-lk > 1 {
		mid := lk + (hi-lk)/2
		e, err := at(mid)
		if err != nil {
			return Result{}, err
		}
		if e.total <= s.target {
			lk = mid
		} else {
			hi = mid
		}
	}
	return s.result(seen[lk], Decrease), nil
}

// bisectUp finds the smallest k in (lo, upper] whose total reaches the
// target. lo is known to fall short; lo == 0 stands for the empty selection.
func (s *searcher) bisectUp(at func(int) (evaluation, error), lo, upper int) (Result, error) {
	hi, err := at(upper)
	if err != nil {
		return Result{}, err
	}
	if hi.total < s.target {
		return Result{}, fmt.Errorf("%w: all %d sentences give %.2fs, below target %.2fs",
			summarize.ErrInsufficientContent, upper, hi.total, s.target)
	}
	hk := upper
	for hk-lo > 1 {
		mid := lo + (hk-lo)/2
		e, err := at(mid)
		if err != nil {
			return Result{}, err
		}
		if e.total >= s.target {
			hk = mid
		} else {
			lo = mid
		}
	}
	e, err := at(hk)
	if err != nil {
		return Result{}, err
	}
	return s.result(e, Increase), nil
}
