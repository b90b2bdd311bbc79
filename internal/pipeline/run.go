// Package pipeline provides the high-level orchestration for a matching run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/llm"
	"github.com/jonathan/job-matcher/internal/ranking"
	"github.com/jonathan/job-matcher/internal/report"
	"github.com/jonathan/job-matcher/internal/resume"
	"github.com/jonathan/job-matcher/internal/scoring"
	"github.com/jonathan/job-matcher/internal/scrape"
	"github.com/jonathan/job-matcher/internal/sites"
	"github.com/jonathan/job-matcher/internal/types"
)

// Empty-result outcomes. These end the run cleanly with a user-facing
// message and no report file; they are not crashes.
var (
	ErrNoJobs    = errors.New("no job listings were scraped")
	ErrNoMatches = errors.New("no jobs cleared the relevance threshold")
)

// Options configures a matching run.
type Options struct {
	ResumePath string
	Query      string
	Location   string
	Pages      int
	Sources    []types.Source

	MinScore      float64
	FallbackScore float64

	OutputPath string
	APIKey     string
	Log        *zap.Logger
}

// Result is the run-scoped state threaded through the stages. Each stage
// receives it, fills in its part and passes it forward; nothing accumulates
// on ambient globals.
type Result struct {
	RunID   uuid.UUID
	Profile *types.CandidateProfile
	Jobs    []types.Job

	PagesFetched   int
	CardsSkipped   int
	ScoreFallbacks int
	ReportPath     string
}

// Run executes the full pipeline: resume text extraction, profile
// extraction, scraping, scoring, ranking and report export. Strictly
// sequential: one blocking call at a time.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := opts.Log
	result := &Result{RunID: uuid.New()}

	rules, err := resolveRules(opts.Sources)
	if err != nil {
		return result, err
	}

	log.Info("starting run",
		zap.String("run_id", result.RunID.String()),
		zap.String("resume", opts.ResumePath),
		zap.String("query", opts.Query),
		zap.String("location", opts.Location))

	text, err := resume.ExtractText(opts.ResumePath)
	if err != nil {
		return result, fmt.Errorf("resume ingestion failed: %w", err)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
	if err != nil {
		return result, fmt.Errorf("LLM client setup failed: %w", err)
	}
	defer func() { _ = client.Close() }()

	result.Profile, err = resume.ExtractProfile(ctx, client, text, log)
	if err != nil {
		return result, fmt.Errorf("profile extraction failed: %w", err)
	}

	if err := runScrapeStage(ctx, rules, opts, result, log); err != nil {
		return result, err
	}
	if len(result.Jobs) == 0 {
		return result, ErrNoJobs
	}

	log.Info("scoring jobs against candidate profile",
		zap.Int("jobs", len(result.Jobs)))
	result.Jobs = scoring.ScoreJobs(ctx, client, result.Jobs, result.Profile, opts.FallbackScore, log)
	for _, job := range result.Jobs {
		if job.ScoreOrigin == types.ScoreOriginFallback {
			result.ScoreFallbacks++
		}
	}

	result.Jobs = ranking.Rank(result.Jobs, opts.MinScore)
	if len(result.Jobs) == 0 {
		return result, ErrNoMatches
	}
	log.Info("ranked jobs",
		zap.Int("matches", len(result.Jobs)),
		zap.Float64("min_score", opts.MinScore))

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = report.DefaultOutputPath(time.Now())
	}
	if err := report.WriteXLSX(outputPath, result.Jobs); err != nil {
		return result, fmt.Errorf("report export failed: %w", err)
	}
	result.ReportPath = outputPath

	log.Info("run complete",
		zap.String("report", outputPath),
		zap.Int("matches", len(result.Jobs)),
		zap.Int("score_fallbacks", result.ScoreFallbacks))
	return result, nil
}

// runScrapeStage owns the browser session for its whole duration and
// releases it unconditionally before scoring begins.
func runScrapeStage(ctx context.Context, rules []sites.Rule, opts Options, result *Result, log *zap.Logger) error {
	browser, err := scrape.NewBrowser(ctx)
	if err != nil {
		return fmt.Errorf("browser acquisition failed: %w", err)
	}
	defer browser.Close()

	scrapeSites(ctx, browser, rules, opts, result, log)
	return nil
}

// scrapeSites walks the rules in order against one shared session. A site
// failing mid-pagination abandons that site's remaining pages but keeps
// whatever was captured and leaves other sites unaffected.
func scrapeSites(ctx context.Context, session scrape.Session, rules []sites.Rule, opts Options, result *Result, log *zap.Logger) {
	for _, rule := range rules {
		pages, fetchErr := scrape.FetchPages(ctx, session, rule, opts.Query, opts.Location, opts.Pages, log)
		if fetchErr != nil {
			log.Warn("site fetch aborted, keeping captured pages",
				zap.String("site", string(rule.Source)),
				zap.Int("pages_kept", len(pages)),
				zap.Error(fetchErr))
		}
		result.PagesFetched += len(pages)

		for _, html := range pages {
			jobs, outcomes, parseErr := scrape.ParsePage(html, rule)
			if parseErr != nil {
				log.Warn("page parse failed, skipping page",
					zap.String("site", string(rule.Source)),
					zap.Error(parseErr))
				continue
			}
			skipped := len(outcomes) - scrape.CountOutcomes(outcomes, scrape.CardParsed)
			result.CardsSkipped += skipped
			result.Jobs = append(result.Jobs, jobs...)

			log.Debug("parsed result page",
				zap.String("site", string(rule.Source)),
				zap.Int("jobs", len(jobs)),
				zap.Int("cards_skipped", skipped))
		}
	}

	log.Info("scraping complete",
		zap.Int("pages", result.PagesFetched),
		zap.Int("jobs", len(result.Jobs)),
		zap.Int("cards_skipped", result.CardsSkipped))
}

// resolveRules maps the requested sources onto validated rules, preserving
// request order.
func resolveRules(sources []types.Source) ([]sites.Rule, error) {
	if len(sources) == 0 {
		rules := sites.Registry()
		if err := sites.ValidateAll(rules); err != nil {
			return nil, err
		}
		return rules, nil
	}

	rules := make([]sites.Rule, 0, len(sources))
	for _, source := range sources {
		rule, ok := sites.Lookup(source)
		if !ok {
			return nil, fmt.Errorf("unknown job site %q", source)
		}
		rules = append(rules, rule)
	}
	if err := sites.ValidateAll(rules); err != nil {
		return nil, err
	}
	return rules, nil
}
