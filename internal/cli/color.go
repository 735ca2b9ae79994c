package cli

import (
	"fmt"

	"github.com/fatih/color"

	"insighthub-be/internal/entity"
)

func statusColor(status string) string {
	switch status {
	case entity.SourceStatusCompleted:
		return color.GreenString(status)
	case entity.SourceStatusFailed:
		return color.RedString(status)
	default:
		return color.YellowString(status)
	}
}

// levelColor pads before colouring so escape codes do not break alignment.
func levelColor(level string) string {
	padded := fmt.Sprintf("%-5s", level)
	switch level {
	case "ERROR", "FATAL":
		return color.RedString(padded)
	case "WARN":
		return color.YellowString(padded)
	case "DEBUG":
		return color.HiBlackString(padded)
	default:
		return color.CyanString(padded)
	}
}
