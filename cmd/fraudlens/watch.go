package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fraudlens/fraudlens/internal/bus"
	"github.com/fraudlens/fraudlens/internal/cli"
	"github.com/fraudlens/fraudlens/internal/project"
	"github.com/fraudlens/fraudlens/internal/storage"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow record changes from this and other processes",
		Long: `Watch subscribes to the change notification bus and re-reads the full
store on every signal, printing refreshed statistics. Changes made by
another fraudlens process against the same database surface as
external-change signals.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			changeBus := bus.New()
			defer changeBus.Close()

			store, kv, err := openStore(changeBus)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			watcher, err := bus.NewWatcher(kv.Path(), storage.RecordsKey, kv.InstanceID(), kv, changeBus)
			if err != nil {
				return err
			}
			defer func() { _ = watcher.Close() }()

			ctx := cmd.Context()
			watcher.Start(ctx)

			signals, cancel := changeBus.Subscribe()
			defer cancel()

			fmt.Println(cli.FormatTitle("Watching for record changes (ctrl-c to stop)"))
			printSummary := func() {
				counts := project.AggregateStatusCounts(store.Load(ctx))
				fmt.Printf("  total=%d normal=%d suspicious=%d fraud=%d errors=%d alerts=%d\n",
					counts.Total, counts.Normal, counts.Suspicious,
					counts.Fraud, counts.Errors, counts.AlertCount())
			}
			printSummary()

			for {
				select {
				case <-ctx.Done():
					return nil
				case sig, ok := <-signals:
					if !ok {
						return nil
					}
					fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("-- %s at %s",
						sig.Kind, sig.At.Format("15:04:05"))))
					printSummary()
				}
			}
		},
	}
}
