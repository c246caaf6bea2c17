package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fraudlens/fraudlens/internal/cli"
	"github.com/fraudlens/fraudlens/internal/project"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate fraud statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := openStore(nil)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records := store.Load(cmd.Context())
			counts := project.AggregateStatusCounts(records)

			fmt.Println(cli.FormatTitle("Fraud statistics"))
			fmt.Printf("  %s %d\n", cli.BoldStyle.Render("Total records:"), counts.Total)
			fmt.Printf("  %s %d (%d%%)\n", cli.SuccessStyle.Render("Normal:"),
				counts.Normal, project.PercentageOf(counts.Normal, counts.Total))
			fmt.Printf("  %s %d (%d%%)\n", cli.WarningStyle.Render("Suspicious:"),
				counts.Suspicious, project.PercentageOf(counts.Suspicious, counts.Total))
			fmt.Printf("  %s %d (%d%%)\n", cli.ErrorStyle.Render("Fraud:"),
				counts.Fraud, project.PercentageOf(counts.Fraud, counts.Total))
			fmt.Printf("  %s %d (%d%%)\n", cli.SubtleStyle.Render("Errors:"),
				counts.Errors, project.PercentageOf(counts.Errors, counts.Total))
			fmt.Printf("  %s %d\n", cli.BoldStyle.Render("Open alerts:"), counts.AlertCount())
			fmt.Printf("  %s %.2f\n", cli.BoldStyle.Render("Amount saved:"), project.AmountSaved(records))
			return nil
		},
	}
}

func timelineCmd() *cobra.Command {
	var bucket string

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show fraud and suspicious counts bucketed over time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b := project.Bucket(bucket)
			if !b.Valid() {
				return fmt.Errorf("unknown bucket %q (want day, week, or month)", bucket)
			}

			store, _, err := openStore(nil)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			points := project.Timeline(store.Load(cmd.Context()), b)
			if len(points) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No datable records."))
				return nil
			}

			fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-12s  %6s  %10s", "BUCKET", "FRAUD", "SUSPICIOUS")))
			for _, p := range points {
				fmt.Printf("%-12s  %6d  %10d\n", p.Key, p.FraudCount, p.SuspiciousCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "day", "bucket granularity (day, week, month)")
	return cmd
}
