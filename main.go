// Package main provides the verifylinks CLI entrypoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lukemcguire/verifylinks/config"
	"github.com/lukemcguire/verifylinks/crawler"
	"github.com/lukemcguire/verifylinks/result"
	"github.com/lukemcguire/verifylinks/tui"
)

// ErrLinksFailed is returned when the run completed but found broken or
// unreachable links, or the seed page could not be fetched. The report has
// already been printed, so main only sets the exit status.
var ErrLinksFailed = errors.New("link verification failed")

// NewRootCmd creates the verifylinks command.
func NewRootCmd() *cobra.Command {
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "verifylinks",
		Short: "Verify every internal link on a site's homepage",
		Long: `verifylinks fetches the homepage of a locally running site, extracts every
link on it and requests each internal link once, reporting links that return
an error status, look like a "not found" page, or cannot be reached.

The process exits with status 1 when any link fails.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			if cfg.Interactive {
				return runTUI(ctx, cmd, cfg, logger)
			}
			return runPlain(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, logger)
		},
	}

	cmd.Flags().String("config", "", "config file (default ./verifylinks.yaml if present)")
	cmd.Flags().String("base-url", defaults.BaseURL, "origin of the site under test")
	cmd.Flags().Duration("timeout", defaults.RequestTimeout, "per-request timeout (0 disables)")
	cmd.Flags().Int("retries", defaults.Retries, "retries for transport errors, 429 and 5xx responses")
	cmd.Flags().Bool("tui", defaults.Interactive, "show an interactive progress display")
	cmd.Flags().BoolP("verbose", "v", defaults.Verbose, "enable debug logging on stderr")

	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// runPlain streams progress lines to w and prints the summary report. A seed
// failure is reported on errW.
func runPlain(ctx context.Context, w, errW io.Writer, cfg config.Config, logger *slog.Logger) error {
	printer := result.NewPrinter(w, errW)
	printer.Start(cfg.BaseURL)

	verifier := crawler.New(cfg, nil,
		crawler.WithObserver(printer),
		crawler.WithLogger(logger),
	)

	report, err := verifier.Run(ctx)
	var seedErr *crawler.SeedError
	if errors.As(err, &seedErr) {
		printer.SeedFailed(seedErr.Status, seedErr.Err)
		return fmt.Errorf("%w: %w", ErrLinksFailed, seedErr)
	}
	if report != nil {
		printer.Summary(report)
	}
	if err != nil {
		return err
	}
	if report.HasFailures() {
		return ErrLinksFailed
	}
	return nil
}

// runTUI drives the run through the Bubble Tea progress display.
func runTUI(ctx context.Context, cmd *cobra.Command, cfg config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	progressCh := make(chan crawler.CrawlEvent, 100)
	verifier := crawler.New(cfg, progressCh, crawler.WithLogger(logger))

	model := tui.NewModel(ctx, cancel, verifier, progressCh)
	program := tea.NewProgram(model, tea.WithOutput(cmd.OutOrStdout()))

	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	final, ok := finalModel.(tui.Model)
	if !ok || final.HasFailures() {
		return ErrLinksFailed
	}
	return nil
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, ErrLinksFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
