package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/subwatch/internal/catalog"
	"github.com/Veraticus/subwatch/internal/classify"
	"github.com/Veraticus/subwatch/internal/cli"
	"github.com/Veraticus/subwatch/internal/gmail"
	"github.com/Veraticus/subwatch/internal/scan"
	"github.com/Veraticus/subwatch/internal/service"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan your inbox for subscription emails",
		Long: `Scan fetches recent billing and renewal emails, detects which
subscriptions they describe, and reconciles each into the store.
Emails already matching a known subscription update nothing; new
providers become new entries.`,
		RunE: runScan,
	}

	cmd.Flags().Bool("demo", false, "scan built-in demo emails instead of a live inbox")
	cmd.Flags().Int("max", 0, "maximum number of emails to fetch (default: scan.max_emails)")
	cmd.Flags().String("token", "", "Gmail OAuth access token (or SUBWATCH_GMAIL_ACCESS_TOKEN)")

	return cmd
}

func runScan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	demo, _ := cmd.Flags().GetBool("demo")
	max, _ := cmd.Flags().GetInt("max")
	if max <= 0 {
		max = viper.GetInt("scan.max_emails")
	}

	var fetcher service.MailFetcher
	if demo {
		fetcher = gmail.NewFixtureFetcher()
	} else {
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			token = viper.GetString("gmail.access_token")
		}
		client, err := gmail.NewClient(ctx, token)
		if err != nil {
			return fmt.Errorf("failed to connect to gmail: %w", err)
		}
		fetcher = client
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	fmt.Println(cli.FormatTitle(cli.MailIcon + " Scanning for subscription emails"))

	emails, err := fetcher.Fetch(ctx, max)
	if err != nil {
		return fmt.Errorf("failed to fetch emails: %w", err)
	}
	if len(emails) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No subscription emails found."))
		return nil
	}

	bar := progressbar.NewOptions(len(emails),
		progressbar.OptionSetDescription("Scanning emails"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	scanner := scan.New(classify.New(catalog.Default()), store)
	scanner.OnEmail = func(done, _ int) {
		_ = bar.Set(done)
	}

	result, err := scanner.Scan(ctx, emails)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	_ = bar.Finish()

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Scanned %d emails, detected %d subscription notices",
		result.Scanned, result.Detected)))

	if len(result.Created) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No subscriptions to add or update."))
		return nil
	}

	fmt.Println()
	fmt.Println(cli.FormatTitle("Subscriptions reconciled"))
	for _, sub := range result.Created {
		fmt.Printf("  %s %s (%s) — %s, next billing %s\n",
			cli.SuccessStyle.Render(cli.SuccessIcon),
			sub.Name,
			sub.Provider,
			cli.FormatAmount(sub.Amount),
			sub.NextBilling)
	}

	return nil
}
