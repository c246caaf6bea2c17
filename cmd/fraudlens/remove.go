package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fraudlens/fraudlens/internal/cli"
)

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <record-id>",
		Short: "Delete a fraud record by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore(nil)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			// Removing an unknown id is a no-op by contract.
			if err := store.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Record removed."))
			return nil
		},
	}
}

func clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every persisted fraud record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear all records without --yes")
			}

			store, _, err := openStore(nil)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("All records cleared."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion of every record")
	return cmd
}
