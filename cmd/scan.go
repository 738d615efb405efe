package cmd

import (
	"fmt"
	"strings"
	"time"

	"db-privacy-scan/internal/classify"
	"db-privacy-scan/internal/dialect"
	"db-privacy-scan/internal/report"
	"db-privacy-scan/internal/schema"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	dryRun    bool
	tables    []string
	outputDir string
	interval  time.Duration
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Classify the database schema and generate the privacy report",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Prefer the active config entry's display name for the report
		if activeConfig, err := GetActiveDBConfig(); err == nil && activeConfig.Name != "" {
			DBName = activeConfig.Name
		}

		// Classifier first: a missing API key must fail before the first
		// catalog query runs.
		classifier, err := buildClassifier(cmd)
		if err != nil {
			return err
		}
		if gc, ok := classifier.(*classify.GeminiClassifier); ok {
			defer gc.Close()
		}

		d := dialect.Get(DriverName)
		Logger.Info("analyzing schema", zap.String("driver", DriverName))

		allTables, err := schema.Analyze(DB, d, SchemaName)
		if err != nil {
			return err
		}
		if len(allTables) == 0 {
			return fmt.Errorf("no tables found in schema %q", SchemaName)
		}

		targetTables, err := filterTables(allTables)
		if err != nil {
			return err
		}

		requestInterval := interval
		if requestInterval == 0 {
			requestInterval = viper.GetDuration("settings.request_interval")
		}

		Logger.Info("starting classification",
			zap.Int("tables", len(targetTables)),
			zap.Bool("dry_run", dryRun),
			zap.Duration("request_interval", requestInterval))
		start := time.Now()

		uiprogress.Start()
		bar := uiprogress.AddBar(len(targetTables)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Classifying: "
		})

		results := make([]classify.TableResult, 0, len(targetTables))
		for _, t := range targetTables {
			results = append(results, classifier.ClassifyTable(ctx, t))
			bar.Incr()
			// Fixed inter-request throttle, independent of response latency.
			// Dry runs never touch the API, so they skip it.
			if !dryRun {
				time.Sleep(requestInterval)
			}
		}

		uiprogress.Stop()

		dir := outputDir
		if dir == "" {
			dir = viper.GetString("settings.output_dir")
		}
		gen, err := report.NewGenerator(dir, Logger)
		if err != nil {
			return err
		}
		path, err := gen.Generate(results, DBName)
		if err != nil {
			return err
		}

		elapsed := time.Since(start)

		fmt.Println("\n📊 Classification Summary:")
		totalRows := 0
		for i, r := range results {
			icon := "✓"
			status := fmt.Sprintf("%d records", len(r.Records))
			if r.Skipped() {
				icon = "!"
				status = fmt.Sprintf("SKIPPED (%s)", r.SkipReason)
			}
			fmt.Printf("[%s] [%02d/%02d] %-24s : %s\n", icon, i+1, len(results), r.Table, status)
			totalRows += len(r.Records)
		}
		fmt.Println("--------------------------------------------------")
		fmt.Printf("Total Rows: %d\n", totalRows)
		fmt.Printf("Report: %s\n", path)
		Logger.Info("scan done", zap.Duration("elapsed", elapsed), zap.String("report", path))

		return nil
	},
}

// filterTables applies the subset filter: flag > config > all.
func filterTables(allTables []*schema.Table) ([]*schema.Table, error) {
	targetNames := tables
	if len(targetNames) == 0 {
		targetNames = viper.GetStringSlice("settings.tables")
	}
	if len(targetNames) == 0 {
		return allTables, nil
	}

	requested := make(map[string]bool)
	for _, t := range targetNames {
		requested[strings.ToLower(t)] = true
	}

	var filtered []*schema.Table
	for _, t := range allTables {
		if requested[strings.ToLower(t.Name)] {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("no matching tables found for inputs: %v", targetNames)
	}
	return filtered, nil
}

// buildClassifier picks the backend. A missing API key on a real run is a
// configuration error and aborts before any work starts.
func buildClassifier(cmd *cobra.Command) (classify.TableClassifier, error) {
	if dryRun {
		Logger.Info("dry-run mode active, no model calls will be made")
		return classify.NewMockClassifier(time.Now().UnixNano()), nil
	}

	apiKey := viper.GetString("gemini.api_key")
	if apiKey == "" {
		return nil, fmt.Errorf("gemini.api_key is required (set GEMINI_API_KEY or use --dry-run)")
	}
	return classify.NewGeminiClassifier(cmd.Context(), apiKey, viper.GetString("gemini.model"), Logger)
}

func init() {
	RootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Skip model calls and fill the report with placeholder classifications")
	scanCmd.Flags().StringSliceVarP(&tables, "tables", "t", []string{}, "Specific tables to classify (comma-separated)")
	scanCmd.Flags().StringVar(&outputDir, "output", "", "Report output directory (overrides config)")
	scanCmd.Flags().DurationVar(&interval, "interval", 0, "Delay after each model call (overrides config)")
}
