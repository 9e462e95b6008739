package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/subwatch/internal/cli"
	"github.com/Veraticus/subwatch/internal/common"
	"github.com/Veraticus/subwatch/internal/model"
	"github.com/Veraticus/subwatch/internal/service"
)

func subscriptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subs"},
		Short:   "Manage tracked subscriptions",
	}

	cmd.AddCommand(subsListCmd())
	cmd.AddCommand(subsAddCmd())
	cmd.AddCommand(subsCancelCmd())
	cmd.AddCommand(subsUsageCmd())
	cmd.AddCommand(subsStatusCmd())
	cmd.AddCommand(subsDeleteCmd())

	return cmd
}

// withStore opens the store, runs fn, and closes it afterwards. Every
// subscription subcommand follows this shape.
func withStore(fn func(store service.Store) error) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}

func subsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tracked subscriptions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(func(store service.Store) error {
				subs, err := store.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list subscriptions: %w", err)
				}

				if len(subs) == 0 {
					fmt.Println(cli.SubtleStyle.Render("No subscriptions tracked yet. Try `subwatch scan --demo`."))
					return nil
				}

				fmt.Println(cli.FormatTitle(cli.MoneyIcon + " Tracked subscriptions"))
				var total float64
				for _, sub := range subs {
					status := string(sub.Status)
					switch sub.Status {
					case model.StatusActive:
						status = cli.SuccessStyle.Render(status)
						total += sub.Amount
					case model.StatusTrial:
						status = cli.WarningStyle.Render(status)
						total += sub.Amount
					case model.StatusPaused, model.StatusCancelled:
						status = cli.SubtleStyle.Render(status)
					}
					fmt.Printf("  [%s] %-28s %-12s %12s  next: %s  %s\n",
						sub.ID, sub.Name, sub.Provider,
						cli.FormatAmount(sub.Amount), sub.NextBilling, status)
				}
				fmt.Println()
				fmt.Printf("  %d subscriptions, %s per month on active plans\n",
					len(subs), cli.FormatAmount(total))
				return nil
			})
		},
	}
}

func subsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a subscription by hand",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			provider, _ := cmd.Flags().GetString("provider")
			amount, _ := cmd.Flags().GetFloat64("amount")
			nextBilling, _ := cmd.Flags().GetString("next-billing")
			status, _ := cmd.Flags().GetString("status")

			if provider == "" {
				provider = name
			}
			if nextBilling == "" {
				nextBilling = time.Now().AddDate(0, 1, 0).Format("2006-01-02")
			}

			return withStore(func(store service.Store) error {
				sub, err := store.Create(cmd.Context(), model.Subscription{
					Name:        name,
					Provider:    provider,
					Amount:      amount,
					NextBilling: nextBilling,
					Status:      model.Status(status),
				})
				if err != nil {
					return fmt.Errorf("failed to add subscription: %w", err)
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s [%s]", sub.Name, sub.ID)))
				return nil
			})
		},
	}

	cmd.Flags().String("name", "", "subscription name (required)")
	cmd.Flags().String("provider", "", "provider name (default: same as name)")
	cmd.Flags().Float64("amount", 0, "monthly amount in AED")
	cmd.Flags().String("next-billing", "", "next billing date, YYYY-MM-DD (default: one month from now)")
	cmd.Flags().String("status", string(model.StatusActive), "initial status (Active, Trial, Paused, Cancelled)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func subsCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store service.Store) error {
				sub, err := store.Cancel(cmd.Context(), args[0])
				if err != nil {
					return describeStoreErr(err, args[0], "cancel")
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Cancelled %s", sub.Name)))
				return nil
			})
		},
	}
}

func subsUsageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage <id>",
		Short: "Record that you used a subscription just now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store service.Store) error {
				sub, err := store.TouchUsage(cmd.Context(), args[0])
				if err != nil {
					return describeStoreErr(err, args[0], "record usage for")
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Marked %s as used", sub.Name)))
				return nil
			})
		},
	}
}

func subsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change a subscription's status",
		Long:  "Change a subscription's status to Active, Trial, Paused, or Cancelled.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store service.Store) error {
				sub, err := store.UpdateStatus(cmd.Context(), args[0], model.Status(args[1]))
				if err != nil {
					if errors.Is(err, common.ErrInvalidStatus) {
						return fmt.Errorf("%q is not a valid status (want Active, Trial, Paused, or Cancelled)", args[1])
					}
					return describeStoreErr(err, args[0], "update")
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s is now %s", sub.Name, sub.Status)))
				return nil
			})
		},
	}
}

func subsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a subscription entirely",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store service.Store) error {
				deleted, err := store.Delete(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to delete subscription: %w", err)
				}
				if !deleted {
					return fmt.Errorf("no subscription with id %q", args[0])
				}
				fmt.Println(cli.FormatSuccess("Deleted subscription " + args[0]))
				return nil
			})
		},
	}
}

func describeStoreErr(err error, id, verb string) error {
	if errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("no subscription with id %q", id)
	}
	return fmt.Errorf("failed to %s subscription: %w", verb, err)
}
