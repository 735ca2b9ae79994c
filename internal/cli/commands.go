package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"insighthub-be/pkg/analytics"
)

var themesK int

var errNotConfigured = errors.New("services not configured")

var ingestCmd = &cobra.Command{
	Use:   "ingest [workspace-id]",
	Short: "Process every pending source of a workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

var processCmd = &cobra.Command{
	Use:   "process [source-id]",
	Short: "Process one source",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcess,
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics [workspace-id]",
	Short: "Recompute workspace insights and themes",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalytics,
}

var themesCmd = &cobra.Command{
	Use:   "themes [workspace-id]",
	Short: "Cluster workspace chunks into themes",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemes,
}

var scorecardCmd = &cobra.Command{
	Use:   "scorecard [scorecard-id]",
	Short: "Score every brand against a scorecard",
	Args:  cobra.ExactArgs(1),
	RunE:  runScorecard,
}

func init() {
	themesCmd.Flags().IntVarP(&themesK, "k", "k", analytics.DefaultThemeCount, "number of themes")
	rootCmd.AddCommand(ingestCmd, processCmd, analyticsCmd, themesCmd, scorecardCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil || services == nil {
		return orNotConfigured(err)
	}

	summary, err := services.Ingestion.ProcessPendingSources(context.Background(), id)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	cmd.Printf("Processed %d sources: %d completed, %d failed, %d skipped\n",
		summary.Total, summary.Completed, summary.Failed, summary.Skipped)
	return nil
}

func runProcess(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil || services == nil {
		return orNotConfigured(err)
	}

	status, err := services.Ingestion.ProcessSource(context.Background(), id)
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}
	if status == "" {
		cmd.Println("Source not found or already being processed.")
		return nil
	}
	cmd.Printf("Source %s: %s\n", id, statusColor(status))
	return nil
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil || services == nil {
		return orNotConfigured(err)
	}

	res, err := services.Analytics.RunWorkspaceAnalytics(context.Background(), id)
	if err != nil {
		return fmt.Errorf("analytics failed: %w", err)
	}
	if !res.Updated {
		cmd.Println("No documents, insights left unchanged.")
	}
	cmd.Printf("Themes: %d\n", res.Themes)
	return nil
}

func runThemes(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil || services == nil {
		return orNotConfigured(err)
	}
	if themesK <= 0 {
		return fmt.Errorf("--k must be positive")
	}

	n, err := services.Analytics.ExtractThemes(context.Background(), id, themesK)
	if err != nil {
		return fmt.Errorf("theme extraction failed: %w", err)
	}
	cmd.Printf("Themes: %d\n", n)
	return nil
}

func runScorecard(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil || services == nil {
		return orNotConfigured(err)
	}

	ctx := context.Background()
	if _, err := services.Scorecard.Calculate(ctx, id); err != nil {
		return fmt.Errorf("scorecard failed: %w", err)
	}
	results, err := services.Scorecard.GetResults(ctx, id)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		cmd.Println("No results.")
		return nil
	}
	for _, r := range results {
		cmd.Printf("  %-20s %5.1f\n", r.Brand, r.Overall)
	}
	return nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func orNotConfigured(err error) error {
	if err != nil {
		return err
	}
	return errNotConfigured
}
