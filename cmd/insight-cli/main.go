// insight-cli generates a research report for one ticker and writes the
// structured result to stdout as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/bobmcallan/insight/internal/app"
	"github.com/bobmcallan/insight/internal/interfaces"
	"github.com/bobmcallan/insight/internal/models"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	maxVideos := flag.Int("max-videos", 0, "videos that must yield relevant comments")
	maxComments := flag.Int("max-comments", 0, "comment collection cap per video")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: insight-cli [flags] TICKER")
		flag.PrintDefaults()
		os.Exit(2)
	}
	ticker := flag.Arg(0)

	ctx := context.Background()

	a, err := app.NewApp(ctx, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	report, err := a.ReportService.GenerateReport(ctx, ticker, interfaces.ReportOptions{
		MaxVideos:           *maxVideos,
		MaxCommentsPerVideo: *maxComments,
	})
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Fprintf(os.Stderr, "Invalid ticker %s: %s\n", ticker, validationErr.Reason)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Report generation failed: %v\n", err)
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode report: %v\n", err)
		os.Exit(1)
	}
}
