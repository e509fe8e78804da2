// Package main implements decide, an offline CLI over the rule-based engine.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"decision-coach/internal/advisor"
	"decision-coach/internal/bias"
	"decision-coach/internal/decision"
	"decision-coach/internal/emotion"
	"decision-coach/internal/scoring"
	"decision-coach/internal/synthesis"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "decide",
		Short: "Score and analyze a decision offline",
		Long: `decide runs the rule-based decision engine locally, without the server
or any remote model.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(newAnalyzeCmd(), newPrioritiesCmd(), newEmotionsCmd())
	return root
}

// decisionFile is the analyze input.
type decisionFile struct {
	Decision   string              `json:"decision"`
	Options    []decision.Option   `json:"options"`
	Priorities []decision.Priority `json:"priorities"`
}

type report struct {
	Ranked         []scoring.ScoredOption      `json:"ranked"`
	MaxPossible    int                         `json:"maxPossible"`
	Recommendation scoring.Recommendation      `json:"recommendation"`
	Patterns       []decision.CognitivePattern `json:"patterns"`
	Analysis       synthesis.Analysis          `json:"analysis"`
}

func newAnalyzeCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the full report for a decision file",
		Long: `Read a decision (text, 2 to 4 options, priorities) as JSON and print the
ranking, recommendation, detected patterns and written analysis.

Examples:
  decide analyze --file decision.json
  cat decision.json | decide analyze --file -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := openInput(cmd, file)
			if err != nil {
				return err
			}
			defer in.Close()

			var d decisionFile
			if err := json.NewDecoder(in).Decode(&d); err != nil {
				return fmt.Errorf("decode %s: %w", file, err)
			}
			if len(d.Priorities) == 0 {
				d.Priorities = decision.DefaultPriorities()
			}
			if err := decision.ValidatePriorities(d.Priorities); err != nil {
				return err
			}
			if err := decision.ValidateOptions(d.Options, true); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), buildReport(d))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "decision JSON file, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func buildReport(d decisionFile) report {
	result := scoring.Score(d.Options, d.Priorities)
	rec, _ := scoring.Recommend(result)
	winner, _ := result.Winner()
	analyses := emotion.AnalyzeOptions(d.Options)
	return report{
		Ranked:         result.Ranked,
		MaxPossible:    result.MaxPossible,
		Recommendation: rec,
		Patterns:       bias.Detected(bias.Detect(d.Options, analyses, winner.Option.ID)),
		Analysis:       synthesis.Analyze(d.Decision, d.Options, d.Priorities, winner.Option),
	}
}

func openInput(cmd *cobra.Command, file string) (io.ReadCloser, error) {
	if file == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(file)
}

func newPrioritiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "priorities <decision text>",
		Short: "Suggest starter priorities for a decision",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), advisor.SmartPriorities(strings.Join(args, " ")))
		},
	}
}

func newEmotionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "emotions <text>",
		Short: "Detect emotions in a piece of reflection text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"emotions":        emotion.Detect(text),
				"dominantEmotion": emotion.Dominant(text),
			})
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
