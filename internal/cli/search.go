package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"insighthub-be/internal/dto"
	"insighthub-be/internal/service"
)

var (
	searchLimit   int
	searchFilters []string
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [workspace-id] [query]",
	Short: "Semantic search over a workspace",
	Long: `Embeds the query and ranks the workspace's chunks by cosine similarity.
Filters match document metadata exactly, e.g. --filter brand=Acme.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", service.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().StringArrayVar(&searchFilters, "filter", nil, "metadata filter key=value (repeatable)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil || services == nil {
		return orNotConfigured(err)
	}

	filters, err := parseFilters(searchFilters)
	if err != nil {
		return err
	}

	results, err := services.Search.Search(context.Background(), id, &dto.SearchRequest{
		Query:   args[1],
		Limit:   searchLimit,
		Filters: filters,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func parseFilters(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	filters := make(map[string]string, len(raw))
	for _, f := range raw {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q, expected key=value", f)
		}
		filters[key] = value
	}
	return filters, nil
}

func outputSearchJSON(cmd *cobra.Command, results []*dto.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []*dto.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, r.SourceTitle, r.Score)
		if r.SourceUrl != nil {
			cmd.Printf("      Source: %s\n", *r.SourceUrl)
		}
		cmd.Printf("      %s\n", snippet(r.ChunkText, 160))
		cmd.Println()
	}
	return nil
}

func snippet(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
