package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/logger"
	"github.com/jonathan/job-matcher/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full matching pipeline end-to-end",
	Long: `Orchestrates the matching process: resume ingestion -> profile extraction -> scraping -> relevance scoring -> ranking -> report export.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath    string
	runResume        string
	runQuery         string
	runLocation      string
	runPages         int
	runSites         []string
	runMinScore      float64
	runFallbackScore float64
	runOutput        string
	runAPIKey        string
	runJSONLogs      bool
	runVerbose       bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runResume, "resume", "r", "", "Path to the resume file (PDF or DOCX)")
	runCommand.Flags().StringVarP(&runQuery, "query", "q", "", "Job title to search for")
	runCommand.Flags().StringVarP(&runLocation, "location", "l", "", "Location to search in")
	runCommand.Flags().IntVarP(&runPages, "pages", "p", 0, "Result pages to fetch per site")
	runCommand.Flags().StringSliceVar(&runSites, "sites", nil, "Job sites to scrape (default: all configured)")
	runCommand.Flags().Float64Var(&runMinScore, "min-score", 0, "Minimum relevance score to keep a job")
	runCommand.Flags().Float64Var(&runFallbackScore, "fallback-score", 0, "Score assigned when relevance scoring fails for a job")
	runCommand.Flags().StringVarP(&runOutput, "output", "o", "", "Report output path (default: timestamped job_matches_*.xlsx)")
	runCommand.Flags().BoolVar(&runJSONLogs, "json-logs", false, "Emit JSON logs instead of console output")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (only flags explicitly set). An explicit
	// zero, like --min-score 0, is a real value and must survive the merge.
	if cmd.Flags().Changed("resume") {
		cfg.Resume = runResume
	}
	if cmd.Flags().Changed("query") {
		cfg.Query = runQuery
	}
	if cmd.Flags().Changed("location") {
		cfg.Location = runLocation
	}
	if cmd.Flags().Changed("pages") {
		cfg.Pages = &runPages
	}
	if cmd.Flags().Changed("sites") {
		cfg.Sites = runSites
	}
	if cmd.Flags().Changed("min-score") {
		cfg.MinScore = &runMinScore
	}
	if cmd.Flags().Changed("fallback-score") {
		cfg.FallbackScore = &runFallbackScore
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = runOutput
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("json-logs") {
		cfg.JSONLogs = runJSONLogs
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Resolve against defaults
	settings := cfg.Resolve(config.Defaults{
		Pages:         2,
		MinScore:      0.6,
		FallbackScore: 0.5,
		Sites:         []string{"linkedin", "indeed"},
	})

	// Step 4: Validate required fields, then the resolved values. Validation
	// runs only after the merge so a config file value a flag corrects (a
	// stale resume path, say) never aborts the run.
	if settings.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if settings.Query == "" {
		return fmt.Errorf("--query is required (via flag or config)")
	}
	if settings.Location == "" {
		return fmt.Errorf("--location is required (via flag or config)")
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	// Step 5: API key handling
	if settings.APIKey == "" {
		settings.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if settings.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	log, err := logger.New(settings.JSONLogs, settings.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	result, err := pipeline.Run(ctx, pipeline.Options{
		ResumePath:    settings.Resume,
		Query:         settings.Query,
		Location:      settings.Location,
		Pages:         settings.Pages,
		Sources:       settings.Sources(),
		MinScore:      settings.MinScore,
		FallbackScore: settings.FallbackScore,
		OutputPath:    settings.Output,
		APIKey:        settings.APIKey,
		Log:           log,
	})

	// Empty-result outcomes end cleanly with an explanatory message and no
	// report file; they are not crashes.
	switch {
	case errors.Is(err, pipeline.ErrNoJobs):
		fmt.Println("No job listings could be scraped. Try different sites, query or location.")
		return nil
	case errors.Is(err, pipeline.ErrNoMatches):
		fmt.Printf("No jobs scored at or above %.2f. Try lowering --min-score.\n", settings.MinScore)
		return nil
	case err != nil:
		return err
	}

	fmt.Printf("Job matching complete! Results saved to: %s\n", result.ReportPath)
	fmt.Printf("Found %d relevant job matches.\n", len(result.Jobs))
	return nil
}
