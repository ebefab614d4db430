package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/onering/catalog"
	"github.com/s0up4200/onering/config"
	"github.com/s0up4200/onering/filter"
	"github.com/s0up4200/onering/theoneapi"
)

var (
	cfgFile    string
	apiKey     string
	baseURL    string
	jsonOutput bool

	cfg        *config.Config
	logger     zerolog.Logger
	client     *theoneapi.Client
	operations *catalog.Operations
	formatter  catalog.Formatter

	presetFilters *filter.Manager
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "onering",
	Short: "Query The One API from the command line",
	Long: `onering is a CLI for The One API (the-one-api.dev), the Lord of the Rings
catalog of movies, characters, books, chapters and quotes.

Results can be paginated, sorted and filtered upstream with --filter, or
filtered locally with a --where expression.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key (overrides api.key)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (overrides api.base_url)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(quotesCmd)
	rootCmd.AddCommand(chaptersCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Command line overrides
	if cmd.Flags().Changed("api-key") {
		cfg.API.Key = apiKey
	}
	if cmd.Flags().Changed("base-url") {
		cfg.API.BaseURL = baseURL
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	if cfg.API.Key == "" {
		logger.Warn().Msg("No API key configured, only /book endpoints will work")
	}

	client = theoneapi.NewClient(cfg.API.Key, logger,
		theoneapi.WithBaseURL(cfg.API.BaseURL),
		theoneapi.WithUserAgent("onering/"+version),
	)

	operations = catalog.NewOperations(client, logger)
	operations.SetPageSize(cfg.List.PageSize)
	operations.SetConcurrency(cfg.List.Concurrency)

	formatter = catalog.NewConsoleFormatter()

	// Compile preset expressions once
	presetFilters = filter.NewManager(nil)
	for name, p := range cfg.Presets {
		if p.Where == "" {
			continue
		}
		if err := presetFilters.RegisterFilter(name, p.Where); err != nil {
			return err
		}
	}

	logger.Debug().
		Str("base_url", client.BaseURL()).
		Int("page_size", cfg.List.PageSize).
		Int("concurrency", cfg.List.Concurrency).
		Msg("Initialized client")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
