package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/subwatch/internal/alerts"
	"github.com/Veraticus/subwatch/internal/cli"
)

func alertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Show low-usage and upcoming-renewal alerts",
		Long: `Alerts reviews your subscriptions for two things worth acting on:
active subscriptions you haven't used in over two weeks, and
subscriptions that will renew within the next seven days.`,
		RunE: runAlerts,
	}
}

func runAlerts(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	subs, err := store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list subscriptions: %w", err)
	}

	report := alerts.Report(subs, time.Now())

	if len(report.LowUsage) == 0 && len(report.UpcomingRenewals) == 0 {
		fmt.Println(cli.FormatSuccess("Nothing needs your attention."))
		return nil
	}

	if len(report.LowUsage) > 0 {
		var b strings.Builder
		for i, a := range report.LowUsage {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(fmt.Sprintf("%s (%s) — %s/mo, unused for %d days",
				a.Name, a.Provider, cli.FormatAmount(a.Amount), a.DaysSinceLastUse))
		}
		fmt.Println(cli.RenderBox(cli.WarningIcon+" Low usage", b.String()))
	}

	if len(report.UpcomingRenewals) > 0 {
		var b strings.Builder
		for i, a := range report.UpcomingRenewals {
			if i > 0 {
				b.WriteString("\n")
			}
			when := fmt.Sprintf("in %d days", a.DaysUntilRenewal)
			if a.DaysUntilRenewal == 0 {
				when = "today"
			} else if a.DaysUntilRenewal == 1 {
				when = "tomorrow"
			}
			b.WriteString(fmt.Sprintf("%s (%s) — %s renews %s (%s)",
				a.Name, a.Provider, cli.FormatAmount(a.Amount), when, a.NextBilling))
		}
		fmt.Println(cli.RenderBox(cli.BellIcon+" Upcoming renewals", b.String()))
	}

	return nil
}
