package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fraudlens/fraudlens/internal/cli"
	"github.com/fraudlens/fraudlens/internal/model"
	"github.com/fraudlens/fraudlens/internal/project"
)

func listCmd() *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List persisted fraud records, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := openStore(nil)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records := store.Load(cmd.Context())
			if statusFilter != "" {
				status := model.RecordStatus(statusFilter)
				if !status.Valid() {
					return fmt.Errorf("unknown status %q", statusFilter)
				}
				filtered := make([]model.FraudRecord, 0, len(records))
				for _, r := range records {
					if r.Status == status {
						filtered = append(filtered, r)
					}
				}
				records = filtered
			}

			if len(records) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No records."))
				return nil
			}

			fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf(
				"%-36s  %-16s  %-10s  %10s  %5s  %-10s", "ID", "TIME", "TYPE", "AMOUNT", "SCORE", "STATUS")))
			for _, row := range project.GridRows(records) {
				fmt.Printf("%-36s  %-16s  %-10s  %10.2f  %5d  %s\n",
					row.ID, row.Time, row.Type, row.Amount, row.RiskScore,
					cli.StatusStyle(row.Status).Render(string(row.Status)))
				if row.Factors != "" {
					fmt.Println(cli.SubtleStyle.Render("    " + row.Factors))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "only show records with this status (normal, suspicious, fraud, error)")
	return cmd
}
