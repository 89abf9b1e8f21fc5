// Command gs1encode is the CLI front end for the GS1 composite/DataBar
// Expanded encoder core, structured the way the teacher's cmd/z80opt
// subcommands are: one cobra.Command per operation, flags bound with
// Flags().*Var, RunE returning wrapped errors.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gs1/barcode-engine/pkg/batch"
	"github.com/gs1/barcode-engine/pkg/driver"
	"github.com/gs1/barcode-engine/pkg/encoder"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gs1encode",
		Short: "GS1 composite / DataBar Expanded symbol encoder",
	}

	rootCmd.AddCommand(
		newEncodeCmd(),
		newBatchCmd(),
		newSelftestCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newEncodeCmd() *cobra.Command {
	var variant string
	var secondary string
	var ccbCols int
	var pixMult int
	var sepHeight int
	var output string
	var text bool

	cmd := &cobra.Command{
		Use:   "encode [ai-data]",
		Short: "Encode a single GS1 AI data string to a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseVariant(variant)
			if err != nil {
				return err
			}
			req := encoder.Request{
				Payload:   args[0],
				Variant:   v,
				CCBCols:   ccbCols,
				PixMult:   pixMult,
				SepHeight: sepHeight,
			}
			if secondary != "" {
				sv, err := parseVariant(secondary)
				if err != nil {
					return fmt.Errorf("--secondary: %w", err)
				}
				req.SecondaryVariant = sv
			}

			var out *os.File
			if output == "" || output == "-" {
				out = os.Stdout
			} else {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			var sink driver.Sink
			if text {
				sink = driver.NewTextDriver(out)
			} else {
				sink = driver.NewBMPDriver(out, pixMult, sepHeight)
			}
			if err := encoder.EncodeToSink(req, sink); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if output != "" && output != "-" {
				fmt.Fprintf(os.Stderr, "written to %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&variant, "variant", "rss-expanded", "Symbology: rss-expanded, cc-a, cc-b, cc-c")
	cmd.Flags().StringVar(&secondary, "secondary", "", "2D composite component variant when payload contains a '|'-linked secondary (cc-a, cc-b, cc-c)")
	cmd.Flags().IntVar(&ccbCols, "cc-b-cols", 4, "CC-B data-column count (2, 3, or 4)")
	cmd.Flags().IntVar(&pixMult, "x", 3, "Module width in pixels (BMP output only)")
	cmd.Flags().IntVar(&sepHeight, "sep-height", 1, "Separator row height in pixels")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default stdout)")
	cmd.Flags().BoolVar(&text, "text", false, "Write a plain-text bar dump instead of a BMP")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var variant string
	var ccbCols int
	var pixMult int
	var numWorkers int
	var checkpoint string
	var reportPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "batch [payloads.txt]",
		Short: "Encode many GS1 AI data strings concurrently from a file, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseVariant(variant)
			if err != nil {
				return err
			}
			lines, err := readLines(args[0])
			if err != nil {
				return err
			}

			var ckpt *batch.Checkpoint
			if checkpoint != "" {
				if c, err := batch.LoadCheckpoint(checkpoint); err == nil {
					ckpt = c
					fmt.Fprintf(os.Stderr, "resuming from checkpoint: %d jobs already done\n", len(ckpt.Done))
				}
			}

			jobs := make([]batch.Job, len(lines))
			for i, line := range lines {
				jobs[i] = batch.Job{
					Index: i,
					Request: encoder.Request{
						Payload: line,
						Variant: v,
						CCBCols: ccbCols,
						PixMult: pixMult,
					},
				}
			}
			pending := batch.Pending(jobs, ckpt)

			pool := batch.NewWorkerPool(numWorkers)
			if ckpt != nil {
				for _, o := range ckpt.Outcomes {
					pool.Results.Add(o)
				}
			}
			pool.Run(pending, verbose)

			if checkpoint != "" {
				if err := batch.SaveCheckpoint(checkpoint, pool.Checkpoint()); err != nil {
					return fmt.Errorf("batch: writing checkpoint: %w", err)
				}
			}

			report := batch.BuildReport(pool.Results)
			fmt.Fprintf(os.Stderr, "%d/%d succeeded\n", report.Succeeded, report.Total)
			if reportPath != "" {
				if err := batch.WriteJSON(reportPath, report); err != nil {
					return fmt.Errorf("batch: writing report: %w", err)
				}
				fmt.Fprintf(os.Stderr, "report written to %s\n", reportPath)
			}
			if report.Failed > 0 {
				return fmt.Errorf("%d of %d payloads failed to encode", report.Failed, report.Total)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&variant, "variant", "rss-expanded", "Symbology: rss-expanded, cc-a, cc-b, cc-c")
	cmd.Flags().IntVar(&ccbCols, "cc-b-cols", 4, "CC-B data-column count (2, 3, or 4)")
	cmd.Flags().IntVar(&pixMult, "x", 3, "Module width in pixels")
	cmd.Flags().IntVar(&numWorkers, "workers", 0, "Number of workers (0 = NumCPU)")
	cmd.Flags().StringVar(&checkpoint, "checkpoint", "", "Checkpoint file to resume from / save to")
	cmd.Flags().StringVar(&reportPath, "report", "", "Output JSON report path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose per-job output")
	return cmd
}

func newSelftestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run a handful of fixed GS1 payloads through every encoder path as a smoke test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelftest(os.Stdout)
		},
	}
	return cmd
}

func parseVariant(s string) (encoder.Variant, error) {
	switch strings.ToLower(s) {
	case "rss-expanded", "rss", "":
		return encoder.VariantRSSExpanded, nil
	case "cc-a", "cca":
		return encoder.VariantCCA, nil
	case "cc-b", "ccb":
		return encoder.VariantCCB, nil
	case "cc-c", "ccc":
		return encoder.VariantCCC, nil
	default:
		return 0, fmt.Errorf("unknown variant %q: want rss-expanded, cc-a, cc-b, or cc-c", s)
	}
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}
