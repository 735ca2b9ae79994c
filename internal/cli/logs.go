package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	logsLevel  string
	logsLimit  int
	logsOffset int
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent log entries, newest first",
	Args:  cobra.NoArgs,
	RunE:  runLogs,
}

func init() {
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "only show this level (INFO, WARN, ERROR)")
	logsCmd.Flags().IntVarP(&logsLimit, "limit", "n", 50, "maximum entries")
	logsCmd.Flags().IntVar(&logsOffset, "offset", 0, "entries to skip")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	if services == nil || services.Logs == nil {
		return errNotConfigured
	}

	entries, err := services.Logs.GetLogs(strings.ToUpper(logsLevel), logsLimit, logsOffset)
	if err != nil {
		return fmt.Errorf("read logs: %w", err)
	}
	if len(entries) == 0 {
		cmd.Println("No log entries.")
		return nil
	}
	for _, e := range entries {
		line := e.Timestamp + " " + levelColor(e.Level)
		if e.Module != "" {
			line += " [" + e.Module + "]"
		}
		cmd.Println(line + " " + e.Message)
	}
	return nil
}
