package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tonegrid/notescan/analysis"
	"github.com/tonegrid/notescan/analysis/config"
	"github.com/tonegrid/notescan/logging"
	"github.com/tonegrid/notescan/transcode"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		mode        string
		showSummary bool
		verbose     bool
	)

	rootCmd := &cobra.Command{
		Use:           "notescan",
		Short:         "Detect musical notes in an audio recording over time",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze an audio file and print one note observation per segment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logging.GetGlobalLogger().SetLevel(logging.DebugLevel)
			}
			return runAnalyze(args[0], config.Mode(mode), showSummary)
		},
	}
	analyzeCmd.Flags().StringVarP(&mode, "mode", "m", string(config.ModeStandard),
		"Detection mode: fast, standard, or advanced")
	analyzeCmd.Flags().BoolVar(&showSummary, "summary", false,
		"Print a note-stability summary after the per-segment records")
	analyzeCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Show verbose output")

	rootCmd.AddCommand(analyzeCmd)
	return rootCmd
}

func runAnalyze(path string, mode config.Mode, showSummary bool) error {
	if !config.Valid(mode) {
		return fmt.Errorf("unknown detection mode: %q (expected fast, standard, or advanced)", mode)
	}

	decoder := transcode.NewDecoder(nil)
	audio, err := decoder.DecodeFile(path)
	if err != nil {
		return err
	}

	analyzer := analysis.NewFileAnalyzer()
	observations, err := analyzer.AnalyzeFile(audio.Waveform(), mode, func(fraction float64) {
		fmt.Fprintf(os.Stderr, "\ranalyzing... %3.0f%%", fraction*100)
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	fmt.Println("time,note,frequency,confidence,energy")
	for _, obs := range observations {
		freq := "—"
		if obs.Frequency > 0 {
			freq = fmt.Sprintf("%.2f", obs.Frequency)
		}
		fmt.Printf("%s,%s,%s,%.2f,%.3f\n", obs.TimeFormatted, obs.Note, freq, obs.Confidence, obs.Energy)
	}

	if showSummary {
		summary := analysis.Summarize(observations)
		fmt.Printf("\ndominant note: %s (ratio %.2f)\n", summary.DominantNote, summary.DominanceRatio)
		fmt.Printf("stability score: %.2f (stable: %v)\n", summary.StabilityScore, summary.Stable)
	}

	return nil
}
