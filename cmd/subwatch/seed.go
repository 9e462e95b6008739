package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/subwatch/internal/cli"
	"github.com/Veraticus/subwatch/internal/storage"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo subscriptions into the store",
		Long: `Seed loads a small demo data set: a mix of active, trial, and
recently-unused subscriptions, so the alerts and list commands
have something to show.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			subs := storage.DemoSubscriptions(time.Now())
			for _, sub := range subs {
				sub.ID = "" // Let the store assign ids.
				if _, err := store.Create(cmd.Context(), sub); err != nil {
					return fmt.Errorf("failed to seed %s: %w", sub.Name, err)
				}
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Seeded %d demo subscriptions", len(subs))))
			return nil
		},
	}
}
