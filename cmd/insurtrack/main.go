package main

import (
	"context"
	"fmt"
	"os"

	"insurtrack/internal/apiclient"
	"insurtrack/internal/config"
	uidash "insurtrack/internal/ui/dashboard"
	"insurtrack/internal/ui/store"
	"insurtrack/internal/ui/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagAPIURL string
	flagLog    string
)

var rootCmd = &cobra.Command{
	Use:   "insurtrack",
	Short: "Terminal client for the insurance tracking API",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&flagAPIURL, "api-url", "", "base URL of the API server (overrides API_URL)")
	rootCmd.Flags().StringVar(&flagLog, "log", "", "client log file (overrides CLIENT_LOG)")
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	cfg := config.Load()

	if flagAPIURL != "" {
		cfg.APIBaseURL = flagAPIURL
	}
	if flagLog != "" {
		cfg.ClientLog = flagLog
	}

	// Logs go to a file: stdout belongs to the terminal UI.
	logger, err := fileLogger(cfg.ClientLog)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logger.Sync()

	client := apiclient.New(cfg.APIBaseURL, nil, logger)

	customers := store.NewCustomerStore(client, logger)
	insurances := store.NewInsuranceStore(client, logger)
	poller := uidash.NewPoller(client, cfg.PollInterval, logger)

	model := tui.New(customers, insurances, poller, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())

	// Repaint when a poll cycle lands between ticks.
	poller.OnChange = func() { program.Send(struct{}{}) }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)
	defer poller.Stop()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func fileLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
