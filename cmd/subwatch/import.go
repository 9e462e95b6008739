package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/subwatch/internal/catalog"
	"github.com/Veraticus/subwatch/internal/cli"
	"github.com/Veraticus/subwatch/internal/model"
	"github.com/Veraticus/subwatch/internal/ofx"
	"github.com/Veraticus/subwatch/internal/service"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file.ofx ...]",
		Short: "Import subscriptions from bank statements",
		Long: `Import reads OFX/QFX bank statement files and turns each debit
charge into a subscription entry, assuming the charge repeats
monthly. Known providers are recognized from the merchant name;
everything else keeps the name the statement used.`,
		RunE: runImport,
	}

	cmd.Flags().Bool("demo", false, "import built-in demo bank charges instead of a file")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	demo, _ := cmd.Flags().GetBool("demo")

	if !demo && len(args) == 0 {
		return fmt.Errorf("provide at least one OFX file, or use --demo")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if demo {
		return importDemoCharges(cmd, store)
	}

	reader := ofx.NewReader()
	var charges []model.Charge
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		fileCharges, err := reader.ReadCharges(ctx, f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		charges = append(charges, fileCharges...)
	}

	if len(charges) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No charges found in the statement(s)."))
		return nil
	}

	cat := catalog.Default()
	added := 0
	for _, charge := range charges {
		sub := chargeToSubscription(charge, cat)
		created, err := store.Create(ctx, sub)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", charge.Name, err)
		}
		added++
		fmt.Printf("  %s %s (%s) — %s, next billing %s\n",
			cli.SuccessStyle.Render(cli.SuccessIcon),
			created.Name, created.Provider,
			cli.FormatAmount(created.Amount), created.NextBilling)
	}

	fmt.Println()
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d subscriptions from %d charges", added, len(charges))))
	return nil
}

// chargeToSubscription assumes the charge repeats monthly: the next
// billing date is one calendar month after the posting date. The charge
// name is run through the provider catalog so "NETFLIX.COM DUBAI"
// becomes a Netflix subscription rather than a one-off.
func chargeToSubscription(charge model.Charge, cat *catalog.Catalog) model.Subscription {
	name := charge.Name
	provider := charge.Provider

	if svc := cat.Identify(charge.Name, ""); svc != nil {
		name = svc.Name
		provider = svc.Provider
	}

	posted := charge.Posted
	if posted.IsZero() {
		posted = time.Now()
	}

	return model.Subscription{
		Name:        name,
		Provider:    provider,
		Amount:      charge.Amount,
		NextBilling: posted.AddDate(0, 1, 0).Format("2006-01-02"),
		Status:      model.StatusActive,
	}
}

// importDemoCharges reconciles a canned set of recurring bank charges
// through the same find-or-create path the email scan uses, so running
// it twice never duplicates entries.
func importDemoCharges(cmd *cobra.Command, store service.Store) error {
	now := time.Now()
	facts := []model.DetectedFact{
		{
			Name:        "Amazon Prime",
			Provider:    "Amazon",
			Amount:      16.0,
			NextBilling: now.AddDate(0, 1, 0).Format("2006-01-02"),
			Status:      model.StatusActive,
		},
		{
			Name:        "Du Home Internet",
			Provider:    "Du",
			Amount:      299.0,
			NextBilling: now.AddDate(0, 1, 0).Format("2006-01-02"),
			Status:      model.StatusActive,
		},
		{
			Name:        "Xbox Game Pass",
			Provider:    "Microsoft",
			Amount:      40.0,
			NextBilling: now.AddDate(0, 1, 0).Format("2006-01-02"),
			Status:      model.StatusActive,
		},
	}

	fmt.Println(cli.FormatTitle(cli.MoneyIcon + " Importing demo bank charges"))
	for _, fact := range facts {
		sub, err := store.Ensure(cmd.Context(), fact)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", fact.Name, err)
		}
		fmt.Printf("  %s %s (%s) — %s\n",
			cli.SuccessStyle.Render(cli.SuccessIcon),
			sub.Name, sub.Provider, cli.FormatAmount(sub.Amount))
	}

	fmt.Println()
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d demo charges", len(facts))))
	return nil
}
