package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/explorer/internal/domain"
	domsummary "github.com/kailas-cloud/explorer/internal/domain/summary"
	logpkg "github.com/kailas-cloud/explorer/internal/logger"
	summaryuc "github.com/kailas-cloud/explorer/internal/usecase/summary"
)

var (
	summarizeCategory string
	summarizeTimeout  time.Duration
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <topic>",
	Short: "Summarize a topic once and print the result",
	Long: `
Run a single search-and-summarize round without starting the server.
The Markdown summary is printed first, followed by the numbered sources.

Examples:
  explorer summarize "quantum computing"
  explorer summarize "5G causes illness" --category Fact-Check
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeCategory, "category", "Overview",
		"Category: Overview, Research, News or Fact-Check")
	summarizeCmd.Flags().DurationVar(&summarizeTimeout, "timeout", 90*time.Second, "Overall timeout")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, logger, _, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	req, err := domsummary.NewRequest(strings.Join(args, " "), summarizeCategory)
	if err != nil {
		return err
	}

	searcher, completer := buildProviders(&cfg, logger)
	svc := summaryuc.New(searcher, completer).WithSnippetBudget(cfg.Search.SnippetBudget)

	ctx, cancel := context.WithTimeout(context.Background(), summarizeTimeout)
	defer cancel()
	ctx = logpkg.ContextWithLogger(ctx, logger)
	ctx, usage := domain.NewContextWithUsage(ctx)

	resp, err := svc.Summarize(ctx, &req)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), &resp)
	if usage.Used {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "\n(%d tokens)\n", usage.TotalTokens)
	}
	return nil
}

func printSummary(w io.Writer, resp *domsummary.Response) {
	_, _ = fmt.Fprintln(w, resp.Summary())
	if len(resp.Sources()) > 0 {
		_, _ = fmt.Fprintln(w, "\nSources:")
		for i, src := range resp.Sources() {
			_, _ = fmt.Fprintf(w, "  [%d] %s\n      %s\n", i+1, src.Title, src.URL)
		}
	}
	if len(resp.Images()) > 0 {
		_, _ = fmt.Fprintln(w, "\nImages:")
		for _, img := range resp.Images() {
			_, _ = fmt.Fprintf(w, "  %s\n", img)
		}
	}
}
