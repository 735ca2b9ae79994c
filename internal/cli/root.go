package cli

import (
	"github.com/spf13/cobra"

	"insighthub-be/internal/pkg/logger"
	"insighthub-be/internal/service"
)

// Services are the operations the commands run synchronously.
type Services struct {
	Ingestion service.IIngestionService
	Analytics service.IAnalyticsService
	Scorecard service.IScorecardService
	Search    service.ISearchService
	Logs      LogReader
}

// LogReader reads back the service's rotated JSON log.
type LogReader interface {
	GetLogs(level string, limit, offset int) ([]logger.LogEntry, error)
}

var services *Services

var rootCmd = &cobra.Command{
	Use:           "insightctl",
	Short:         "Operate an InsightHub deployment",
	Long:          `Runs ingestion and analytics operations directly, without the task queue.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// SetServices injects the services used by every command.
func SetServices(s *Services) {
	services = s
}

func Execute() error {
	return rootCmd.Execute()
}
