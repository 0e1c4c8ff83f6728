// Package amazon fetches Amazon orders and payment transactions by shelling
// out to the amazon-order-scraper CLI (npm package).
//
// The CLI must be installed globally or available via npx:
//
//	npm install -g amazon-order-scraper
//
// Authentication is managed by the CLI - run `amazon-scraper --login` to
// authenticate.
package amazon

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"sort"
)

// Provider fetches orders and transactions via the amazon-order-scraper CLI.
type Provider struct {
	logger   *slog.Logger
	profile  string
	headless bool
}

// ProviderConfig holds configuration for the Amazon provider.
type ProviderConfig struct {
	Profile  string // Profile name for multi-account support
	Headless bool   // Run the scraper browser in headless mode
}

// NewProvider creates a new Amazon provider.
func NewProvider(logger *slog.Logger, cfg *ProviderConfig) *Provider {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Provider{
		logger: logger.With(slog.String("system", "amazon")),
	}
	if cfg != nil {
		p.profile = cfg.Profile
		p.headless = cfg.Headless
	}
	return p
}

// FetchOrders fetches orders placed in the given years, sorted by placed
// date ascending.
func (p *Provider) FetchOrders(ctx context.Context, years []int) ([]Order, error) {
	p.logger.Debug("fetching orders", slog.Any("years", years))

	output, err := p.fetch(ctx, yearArgs(years))
	if err != nil {
		return nil, err
	}

	orders := make([]Order, 0, len(output.Orders))
	for _, raw := range output.Orders {
		order, err := convertOrder(raw)
		if err != nil {
			p.logger.Warn("failed to parse order, skipping",
				slog.String("order_id", raw.OrderID),
				slog.String("error", err.Error()),
			)
			continue
		}
		orders = append(orders, order)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].PlacedDate.Before(orders[j].PlacedDate)
	})

	p.logger.Debug("fetched orders", slog.Int("count", len(orders)))
	return orders, nil
}

// FetchTransactions fetches charge transactions completed within the given
// lookback window, sorted by completed date ascending. Amounts are the raw
// signed values (negative for charges).
func (p *Provider) FetchTransactions(ctx context.Context, days int) ([]Transaction, error) {
	p.logger.Debug("fetching transactions", slog.Int("days", days))

	output, err := p.fetch(ctx, []string{"--days", fmt.Sprintf("%d", days)})
	if err != nil {
		return nil, err
	}

	var transactions []Transaction
	for _, raw := range output.Orders {
		converted, err := convertTransactions(raw)
		if err != nil {
			p.logger.Warn("failed to parse transactions, skipping order",
				slog.String("order_id", raw.OrderID),
				slog.String("error", err.Error()),
			)
			continue
		}
		transactions = append(transactions, converted...)
	}

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].CompletedDate.Before(transactions[j].CompletedDate)
	})

	p.logger.Debug("fetched transactions", slog.Int("count", len(transactions)))
	return transactions, nil
}

// fetch runs the scraper CLI with common flags plus the given args and
// parses its JSON output.
func (p *Provider) fetch(ctx context.Context, args []string) (*cliOutput, error) {
	if p.profile != "" {
		args = append(args, "--profile", p.profile)
	}
	if p.headless {
		args = append(args, "--headless")
	}
	args = append(args, "--stdout")

	raw, err := p.executeCLI(ctx, args)
	if err != nil {
		return nil, err
	}

	output, err := parseCLIOutput(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CLI output: %w", err)
	}
	return output, nil
}

// executeCLI executes the amazon-order-scraper CLI and returns its stdout.
func (p *Provider) executeCLI(ctx context.Context, args []string) ([]byte, error) {
	cliPath, useNpx := p.findCLI()

	var cmd *exec.Cmd
	if useNpx {
		npxArgs := append([]string{"amazon-order-scraper"}, args...)
		cmd = exec.CommandContext(ctx, cliPath, npxArgs...)
		p.logger.Debug("executing CLI via npx", slog.Any("args", npxArgs))
	} else {
		cmd = exec.CommandContext(ctx, cliPath, args...)
		p.logger.Debug("executing CLI directly", slog.String("path", cliPath), slog.Any("args", args))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			if exitErr.ExitCode() == 2 {
				return nil, fmt.Errorf("amazon login required: run 'amazon-scraper --login' to authenticate")
			}
			return nil, fmt.Errorf("CLI failed (exit %d): %s", exitErr.ExitCode(), stderr.String())
		}
		return nil, fmt.Errorf("failed to execute CLI: %w", err)
	}

	return stdout.Bytes(), nil
}

// findCLI locates the amazon-order-scraper CLI, falling back to npx.
func (p *Provider) findCLI() (string, bool) {
	if path, err := exec.LookPath("amazon-scraper"); err == nil {
		return path, false
	}
	if path, err := exec.LookPath("npx"); err == nil {
		return path, true
	}
	return "npx", true
}

// yearArgs builds the date-range arguments for an order-history fetch.
func yearArgs(years []int) []string {
	if len(years) == 0 {
		return nil
	}
	min, max := years[0], years[0]
	for _, y := range years[1:] {
		if y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}
	return []string{
		"--since", fmt.Sprintf("%d-01-01", min),
		"--until", fmt.Sprintf("%d-12-31", max),
	}
}
