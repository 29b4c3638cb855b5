package types

import "time"

// Cue is one timed subtitle entry. Times are seconds from the start of the track.
type Cue struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

func (c Cue) Duration() float64 { return c.End - c.Start }

func (c Cue) StartDur() time.Duration { return dur(c.Start) }
func (c Cue) EndDur() time.Duration   { return dur(c.End) }

// Region is a time interval taken verbatim from one cue.
type Region struct {
	CueIndex int     `json:"cue_index"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
}

func (r Region) Duration() float64 { return r.End - r.Start }

func (r Region) StartDur() time.Duration { return dur(r.Start) }
func (r Region) EndDur() time.Duration   { return dur(r.End) }

type Encoding struct {
	VideoCodec   string `yaml:"video_codec"`
	AudioCodec   string `yaml:"audio_codec"`
	Preset       string `yaml:"preset"`
	CRF          int    `yaml:"crf"`
	AudioBitrate string `yaml:"audio_bitrate"`
}

// DefaultEncoding is the fixed libx264/aac pairing used for exports.
func DefaultEncoding() Encoding {
	return Encoding{
		VideoCodec:   "libx264",
		AudioCodec:   "aac",
		Preset:       "veryfast",
		CRF:          18,
		AudioBitrate: "192k",
	}
}

type Manifest struct {
	Input      string           `json:"input"`
	Subtitles  string           `json:"subtitles"`
	Output     string           `json:"output,omitempty"`
	SummarySRT string           `json:"summary_srt,omitempty"`
	Summarizer string           `json:"summarizer"`
	Language   string           `json:"language"`
	Search     string           `json:"search"`
	TargetSec  float64          `json:"target_sec"`
	TotalSec   float64          `json:"total_sec"`
	Sentences  int              `json:"sentences"`
	Iterations int              `json:"iterations"`
	Regions    []ManifestRegion `json:"regions"`
}

type ManifestRegion struct {
	ID       string  `json:"id"`
	CueIndex int     `json:"cue_index"`
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
	Text     string  `json:"text"`
}

func dur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }
