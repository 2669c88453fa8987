package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dyike/SharpeGo/config"
	"github.com/dyike/SharpeGo/internal/analysis"
	"github.com/dyike/SharpeGo/internal/display"
	"github.com/dyike/SharpeGo/pkg/dataflows"
)

const version = "1.0.0"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	// Initialize configuration early
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "sharpego",
		Short: "SharpeGo - Annualized Sharpe Ratio Comparison",
		Long: `SharpeGo computes annualized Sharpe Ratios for a set of assets over a
historical window and renders a bar comparison in the terminal.

It fetches adjusted daily closes for the assets and a risk-free proxy,
derives excess returns and aggregates them into a risk-adjusted metric.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: run the analysis with configured parameters
			return runAnalyze(cmd, cfg)
		},
	}

	// Add subcommands
	rootCmd.AddCommand(newAnalyzeCmd(cfg))
	rootCmd.AddCommand(newInteractiveCmd(cfg))
	rootCmd.AddCommand(newConfigCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	addAnalyzeFlags(rootCmd, cfg)

	return rootCmd
}

// newAnalyzeCmd creates the analyze command
func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute annualized Sharpe Ratios for the configured assets",
		Long: `Compute annualized Sharpe Ratios and render the comparison chart.
Example: sharpego analyze --tickers=AAPL,MSFT --start=2020-01-01 --end=2024-12-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, cfg)
		},
	}

	addAnalyzeFlags(cmd, cfg)

	return cmd
}

func addAnalyzeFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().String("tickers", "", "Comma-separated asset tickers (default from config)")
	cmd.Flags().String("risk-free", "", "Risk-free proxy ticker (default from config)")
	cmd.Flags().String("start", "", "Start date in YYYY-MM-DD format")
	cmd.Flags().String("end", "", "End date in YYYY-MM-DD format")
	cmd.Flags().String("provider", "", "Market data provider: yahoo, stooq or longport")
	cmd.Flags().Bool("no-chart", false, "Skip the bar chart, print the table only")
	cmd.Flags().Bool("debug", false, "Log a note per symbol fetch")
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if val, _ := cmd.Flags().GetString("tickers"); val != "" {
		var tickers []string
		for _, t := range strings.Split(val, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tickers = append(tickers, t)
			}
		}
		cfg.Tickers = tickers
	}
	if val, _ := cmd.Flags().GetString("risk-free"); val != "" {
		cfg.RiskFreeTicker = val
	}
	if val, _ := cmd.Flags().GetString("start"); val != "" {
		cfg.StartDate = normalizeDateFlag(val)
	}
	if val, _ := cmd.Flags().GetString("end"); val != "" {
		cfg.EndDate = normalizeDateFlag(val)
	}
	if val, _ := cmd.Flags().GetString("provider"); val != "" {
		cfg.Provider = strings.ToLower(val)
	}
	if val, _ := cmd.Flags().GetBool("debug"); val {
		cfg.Debug = true
	}
}

// normalizeDateFlag accepts the common date formats on the command line and
// canonicalizes them to YYYY-MM-DD. Unparseable input passes through so that
// config validation reports it.
func normalizeDateFlag(val string) string {
	parsed, err := dataflows.ParseDateString(val)
	if err != nil {
		return val
	}
	return parsed.Format("2006-01-02")
}

func runAnalyze(cmd *cobra.Command, cfg *config.Config) error {
	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		display.DisplayError(err, "configuration")
		return err
	}

	noChart, _ := cmd.Flags().GetBool("no-chart")

	return runAnalysis(cmd.Context(), cfg, !noChart)
}

// runAnalysis executes the fetch, compute and report pipeline.
func runAnalysis(ctx context.Context, cfg *config.Config, withChart bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	provider, err := dataflows.NewProvider(cfg)
	if err != nil {
		display.DisplayError(err, "provider setup")
		return err
	}

	start, end := cfg.DateRange()
	period := dataflows.FormatDateRange(start, end)

	display.DisplayInfo(fmt.Sprintf("Analyzing %s over %s (provider: %s)",
		strings.Join(cfg.Tickers, ", "), period, cfg.Provider))

	ratios, err := analysis.ComputeSharpeRatios(ctx, provider, analysis.Params{
		Tickers:        cfg.Tickers,
		RiskFreeTicker: cfg.RiskFreeTicker,
		Start:          start,
		End:            end,
		TradingDays:    cfg.TradingDays,
	})
	if err != nil {
		if errors.Is(err, dataflows.ErrDataUnavailable) {
			display.DisplayError(err, "market data fetch")
		} else {
			display.DisplayError(err, "analysis")
		}
		return err
	}

	sorted := display.SortDescending(ratios)
	display.PrintReport(sorted, period)

	if undefined := display.CountUndefined(sorted); undefined > 0 {
		display.DisplayWarning(fmt.Sprintf("%d of %d ratios are undefined (zero-variance excess returns)",
			undefined, len(sorted)))
	}

	if withChart {
		fmt.Print(display.RenderChart(sorted))
	}

	return nil
}

// newInteractiveCmd creates the interactive command
func newInteractiveCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Pick tickers, proxy and date range interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := promptForParameters(cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				display.DisplayError(err, "configuration")
				return err
			}
			return runAnalysis(cmd.Context(), cfg, true)
		},
	}
}

// newConfigCmd creates the config command
func newConfigCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Tickers:        %s\n", strings.Join(cfg.Tickers, ", "))
			fmt.Printf("Risk-free:      %s\n", cfg.RiskFreeTicker)
			fmt.Printf("Start date:     %s\n", cfg.StartDate)
			fmt.Printf("End date:       %s\n", cfg.EndDate)
			fmt.Printf("Trading days:   %d\n", cfg.TradingDays)
			fmt.Printf("Provider:       %s\n", cfg.Provider)
			fmt.Printf("Results dir:    %s\n", cfg.ResultsDir)
		},
	}
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("SharpeGo v%s\n", version)
		},
	}
}
