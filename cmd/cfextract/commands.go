package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrei-lupu/cf-extract/internal/batch"
	"github.com/andrei-lupu/cf-extract/internal/textacq"
)

func newProcessCmd() *cobra.Command {
	var (
		inputDir  string
		outputDir string
		resume    bool
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process all PDFs in the input directory",
		Long: "Processes every PDF in the input directory in checkpointed batches.\n" +
			"Interrupting with Ctrl-C finishes the current file, checkpoints, and\n" +
			"exits; a later run with --resume picks up where it left off.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			acq := textacq.NewExtractor(cfg.TextAcq, logger)
			proc := batch.NewProcessor(inputDir, outputDir, cfg.Batch, acq, logger)
			if err := proc.Run(ctx, resume); err != nil {
				return err
			}

			pr := proc.Progress()
			fmt.Printf("%s: %d/%d files (%.1f%%)\n", pr.Status, pr.Current, pr.Total, pr.Percent)
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "directory holding the PDF extracts (required)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for the report and run state (required)")
	cmd.Flags().BoolVar(&resume, "resume", true, "continue from the last checkpoint; --resume=false starts fresh")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newStatusCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show progress of the current or last run",
		RunE: func(cmd *cobra.Command, args []string) error {
			pr := batch.NewStore(outputDir).LoadProgress()
			fmt.Printf("status:  %s\n", pr.Status)
			fmt.Printf("files:   %d/%d (%.1f%%)\n", pr.Current, pr.Total, pr.Percent)
			if pr.RunID != "" {
				fmt.Printf("run id:  %s\n", pr.RunID)
			}
			if pr.Timestamp != "" {
				fmt.Printf("updated: %s\n", pr.Timestamp)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory of the run (required)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newErrorsCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "errors",
		Short: "Print the per-file error report",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := batch.NewStore(outputDir)
			fmt.Print("Filename;ErrorType;Details\n")
			for _, e := range store.LoadErrors() {
				fmt.Printf("%s;%s;%s\n", e.File, e.Type, e.Details)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory of the run (required)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newResetCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard checkpoint, errors and progress for a fresh start",
		Long: "Removes checkpoint.json, errors.json and progress.json from the output\n" +
			"directory. The XLSX report is left in place; the next non-resume run\n" +
			"overwrites it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := batch.NewStore(outputDir).Reset(); err != nil {
				return err
			}
			fmt.Println("run state cleared")
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory of the run (required)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
