package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/forPelevin/vidsum/internal/domain/summarize"
)

func Main() {
	if err := NewRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRoot() *cobra.Command {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "vidsum <video>",
		Short:        "Cut a video down to its most relevant subtitle sentences",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	kinds := make([]string, 0, len(summarize.Kinds()))
	for _, k := range summarize.Kinds() {
		kinds = append(kinds, string(k))
	}

	root.Flags().String("subs", "", "Subtitle file (.srt or .vtt); defaults to the video path with .srt")
	root.Flags().Float64("duration", 0, "Target summary duration in seconds (default 60)")
	root.Flags().String("summarizer", "", "Summarizer: "+strings.Join(kinds, ", ")+" (default lsa)")
	root.Flags().String("language", "", "Subtitle language (default english)")
	root.Flags().String("search", "", "Duration search: bisect or step (default bisect)")
	root.Flags().String("out", "", "Output directory (default: next to the video)")
	root.Flags().String("config", "", "YAML config file (default ./vidsum.yaml if present)")
	root.Flags().Bool("dry-run", false, "Select regions and write the manifest without rendering")
	root.Flags().Bool("subs-out", false, "Also write the summary subtitles as .srt")
	root.Flags().Bool("quiet", false, "Suppress progress logs")

	// Hidden tuning flag (internal)
	root.Flags().Int("max-iterations", 0, "Max summarizer calls during the duration search")
	_ = root.Flags().MarkHidden("max-iterations")

	return root
}
