package commands

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerport-dev/ledgerport/internal/accounts"
	"github.com/ledgerport-dev/ledgerport/internal/book"
	"github.com/ledgerport-dev/ledgerport/internal/commodities"
	"github.com/ledgerport-dev/ledgerport/internal/config"
	"github.com/ledgerport-dev/ledgerport/internal/diag"
	"github.com/ledgerport-dev/ledgerport/internal/importer"
	"github.com/ledgerport-dev/ledgerport/internal/model"
	"github.com/ledgerport-dev/ledgerport/internal/prices"
)

func newImportCommand() *cobra.Command {
	var (
		chartPath   string
		profilePath string
		pricesPath  string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import transactions from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			diag.Init(verbose)
			return runImport(cmd, args[0], chartPath, profilePath, pricesPath)
		},
	}

	cmd.Flags().StringVar(&chartPath, "chart", "chart-of-accounts.csv", "chart of accounts CSV file")
	cmd.Flags().StringVar(&profilePath, "profile", "import-profile.yaml", "import profile YAML file")
	cmd.Flags().StringVar(&pricesPath, "prices", "", "optional price CSV file for multi-currency imports")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostics")

	return cmd
}

func runImport(cmd *cobra.Command, csvPath, chartPath, profilePath, pricesPath string) error {
	profile, err := config.Load(profilePath)
	if err != nil {
		return err
	}

	table := commodities.NewTable().WithDefaultCurrencies()

	chart, err := accounts.Load(chartPath, table)
	if err != nil {
		return err
	}

	priceDB := prices.NewDB()
	if pricesPath != "" {
		priceDB, err = prices.Load(pricesPath, table)
		if err != nil {
			return err
		}
	}

	b := book.New(chart, table, priceDB)
	resolver := accounts.NewResolver(chart)
	for raw, fullName := range profile.AccountMap {
		acct := chart.LookupByFullName(fullName)
		if acct == nil {
			return fmt.Errorf("account map: unknown account %q", fullName)
		}
		resolver.Map(raw, acct)
	}

	opts, err := importOptions(profile, table)
	if err != nil {
		return err
	}

	imp, err := importer.New(b, resolver, opts)
	if err != nil {
		return err
	}

	rows, err := readRows(csvPath)
	if err != nil {
		return err
	}

	res := imp.ImportRows(rows)
	printResult(cmd, res)

	// Deferred drafts need the interactive matcher, which a batch run
	// doesn't have; roll their edits back.
	for _, d := range res.Deferred {
		d.Release()
	}
	return nil
}

func importOptions(profile *config.Profile, table *commodities.Table) (importer.Options, error) {
	dateFormat, err := profile.ResolveDateFormat()
	if err != nil {
		return importer.Options{}, err
	}
	currencyFormat, err := profile.ResolveCurrencyFormat()
	if err != nil {
		return importer.Options{}, err
	}
	columns, err := profile.ResolveColumns()
	if err != nil {
		return importer.Options{}, err
	}
	currency := table.Lookup(model.CurrencyNamespace, profile.Currency)
	if currency == nil {
		return importer.Options{}, fmt.Errorf("unknown fallback currency %q", profile.Currency)
	}

	return importer.Options{
		Columns:          columns,
		DateFormat:       dateFormat,
		CurrencyFormat:   currencyFormat,
		MultiSplit:       profile.MultiSplit,
		FallbackCurrency: currency,
		SkipRows:         profile.SkipRows,
	}, nil
}

func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	return rows, nil
}

func printResult(cmd *cobra.Command, res *importer.Result) {
	cmd.Printf("imported %d transaction(s), %d deferred, %d row error(s)\n",
		len(res.Committed), len(res.Deferred), len(res.RowErrors))

	for _, tx := range res.Committed {
		cmd.Printf("  %s  %-30s  %d split(s)\n",
			tx.PostedDate.Format("2006-01-02"), tx.Description, len(tx.Splits))
	}
	for _, d := range res.Deferred {
		why := "imbalanced"
		if d.HasDeferredTransfer() {
			why = "transfer split incomplete"
		}
		cmd.Printf("  deferred: %s (%s)\n", d.Tx.Description, why)
	}
	for _, re := range res.RowErrors {
		cmd.Printf("  row %d: %s\n", re.Row, strings.Join(re.Messages, "; "))
	}
}
