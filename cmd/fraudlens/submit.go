package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fraudlens/fraudlens/internal/cli"
	"github.com/fraudlens/fraudlens/internal/pipeline"
	"github.com/fraudlens/fraudlens/internal/predict"
)

func submitCmd() *cobra.Command {
	var (
		amount    float64
		day       int
		txType    string
		pairCode  string
		partOfDay string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a transaction for fraud scoring",
		Long: `Submit a transaction to the prediction service, classify the response,
and persist the resulting fraud record. If the service cannot be
reached, an error record is persisted instead so the failure stays on
the audit trail.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := parseInput(amount, day, txType, pairCode, partOfDay)
			if err != nil {
				return err
			}

			url, err := apiURL()
			if err != nil {
				return err
			}

			store, _, err := openStore(nil)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			orchestrator := pipeline.New(store, predict.NewClient(url))
			record, err := orchestrator.Submit(cmd.Context(), input)
			if err != nil {
				return err
			}

			style := cli.StatusStyle(record.Status)
			fmt.Println(cli.FormatTitle("Classification result"))
			fmt.Printf("  %s %s\n", cli.BoldStyle.Render("Status:"), style.Render(string(record.Status)))
			fmt.Printf("  %s %d/100\n", cli.BoldStyle.Render("Risk score:"), record.RiskScore)
			fmt.Printf("  %s %s\n", cli.BoldStyle.Render("Record id:"), record.ID)
			if len(record.Factors) > 0 {
				fmt.Printf("  %s %s\n", cli.BoldStyle.Render("Factors:"), strings.Join(record.Factors, ", "))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "transaction amount (required)")
	cmd.Flags().IntVar(&day, "day", 1, "day of month (1-31)")
	cmd.Flags().StringVar(&txType, "type", "PAYMENT", "transaction type (PAYMENT, TRANSFER, CASH_OUT, CASH_IN, DEBIT)")
	cmd.Flags().StringVar(&pairCode, "pair", "customer-to-merchant", "transaction pair code (customer-to-customer, customer-to-merchant)")
	cmd.Flags().StringVar(&partOfDay, "part-of-day", "morning", "part of day (morning, afternoon, evening, night)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
