package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/eshaffer321/amazon-ynab-sync/internal/adapters/amazon"
	"github.com/eshaffer321/amazon-ynab-sync/internal/adapters/openai"
	"github.com/eshaffer321/amazon-ynab-sync/internal/adapters/ynab"
	appsync "github.com/eshaffer321/amazon-ynab-sync/internal/application/sync"
	"github.com/eshaffer321/amazon-ynab-sync/internal/cli"
	"github.com/eshaffer321/amazon-ynab-sync/internal/domain/memo"
	"github.com/eshaffer321/amazon-ynab-sync/internal/domain/purchase"
	"github.com/eshaffer321/amazon-ynab-sync/internal/infrastructure/cache"
	"github.com/eshaffer321/amazon-ynab-sync/internal/infrastructure/config"
	"github.com/eshaffer321/amazon-ynab-sync/internal/infrastructure/logging"
)

var (
	configFile      string
	verbose         bool
	dryRun          bool
	force           bool
	forceRefresh    bool
	nonInteractive  bool
	transactionDays int
	orderYears      []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "amazon-ynab-sync",
		Short:        "Reconcile YNAB transactions with Amazon purchases",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().IntVar(&transactionDays, "days", 0, "Days to look back for transactions (overrides config)")
	rootCmd.PersistentFlags().StringSliceVar(&orderYears, "years", nil, "Order years to fetch (overrides config)")

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Match pending YNAB transactions and write memos back",
		RunE:  runSync,
	}
	syncCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without applying")
	syncCmd.Flags().BoolVar(&force, "force", false, "Match all tagged transactions, including ones with memos")
	syncCmd.Flags().BoolVar(&forceRefresh, "force-refresh", false, "Bypass the purchase cache")
	syncCmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, "Suppress all prompts")

	amazonCmd := &cobra.Command{
		Use:   "amazon",
		Short: "Print fetched Amazon purchase transactions",
		RunE:  runPrintAmazon,
	}
	amazonCmd.Flags().BoolVar(&forceRefresh, "force-refresh", false, "Bypass the purchase cache")

	ynabCmd := &cobra.Command{
		Use:   "ynab",
		Short: "Print pending YNAB transactions",
		RunE:  runPrintYnab,
	}

	rootCmd.AddCommand(syncCmd, amazonCmd, ynabCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and builds the orchestrator shared by all
// subcommands.
func setup(interactive bool) (*config.Config, *appsync.Orchestrator, func(), error) {
	cfg, err := config.LoadOrEnv(configFile)
	if err != nil {
		return nil, nil, nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if transactionDays > 0 {
		cfg.Amazon.TransactionDays = transactionDays
	}
	if len(orderYears) > 0 {
		cfg.Amazon.OrderYears = orderYears
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	logger := logging.NewLoggerWithSystem(cfg.Logging, "sync")

	store, err := cache.Open(cfg.Cache.Path, cfg.Cache.TTL)
	if err != nil {
		logger.Warn("failed to open cache, continuing without it", slog.String("error", err.Error()))
		store = nil
	}
	cleanup := func() {
		if store != nil {
			_ = store.Close()
		}
	}

	provider := amazon.NewProvider(logger, &amazon.ProviderConfig{
		Headless: cfg.Sync.NonInteractive || nonInteractive,
	})

	var summarizer memo.Summarizer
	if cfg.OpenAI.UseAISummarization {
		summarizer = openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}

	var confirmer appsync.Confirmer
	if interactive {
		confirmer = cli.NewStdinConfirmer(os.Stdin, os.Stdout)
	}

	orchestrator := appsync.NewOrchestrator(
		cfg,
		ynab.NewClient(cfg.YNAB.APIKey),
		provider,
		store,
		summarizer,
		confirmer,
		os.Stdout,
		logger,
	)

	return cfg, orchestrator, cleanup, nil
}

func runSync(cmd *cobra.Command, args []string) error {
	_, orchestrator, cleanup, err := setup(!nonInteractive)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := orchestrator.Run(cmd.Context(), appsync.Options{
		DryRun:         dryRun,
		Force:          force,
		ForceRefresh:   forceRefresh,
		NonInteractive: nonInteractive,
	})
	if err != nil {
		return err
	}

	cli.PrintResult(os.Stdout, result)
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d transactions failed to update", len(result.Errors))
	}
	return nil
}

func runPrintAmazon(cmd *cobra.Command, args []string) error {
	cfg, _, cleanup, err := setup(false)
	if err != nil {
		return err
	}
	defer cleanup()

	logger := logging.NewLoggerWithSystem(cfg.Logging, "amazon")
	provider := amazon.NewProvider(logger, nil)

	years, err := amazon.NormalizeYears(cfg.Amazon.OrderYears)
	if err != nil {
		return err
	}

	orders, err := provider.FetchOrders(cmd.Context(), years)
	if err != nil {
		return err
	}
	transactions, err := provider.FetchTransactions(cmd.Context(), cfg.Amazon.TransactionDays)
	if err != nil {
		return err
	}

	cli.PrintPurchases(os.Stdout, purchase.Join(orders, transactions, logger))
	return nil
}

func runPrintYnab(cmd *cobra.Command, args []string) error {
	cfg, _, cleanup, err := setup(false)
	if err != nil {
		return err
	}
	defer cleanup()

	client := ynab.NewClient(cfg.YNAB.APIKey)
	payees, err := client.Payees(cmd.Context(), cfg.YNAB.BudgetID)
	if err != nil {
		return err
	}

	payee, ok := ynab.FindPayee(payees, cfg.YNAB.PayeeNameToBeProcessed)
	if !ok {
		return fmt.Errorf("payee %q not found in YNAB", cfg.YNAB.PayeeNameToBeProcessed)
	}

	transactions, err := client.TransactionsByPayee(cmd.Context(), cfg.YNAB.BudgetID, payee.ID)
	if err != nil {
		return err
	}

	cli.PrintBudgetTransactions(os.Stdout, transactions)
	return nil
}
