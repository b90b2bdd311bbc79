package scrape

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/sites"
)

// Session is the browser surface the fetch loop drives. Browser implements
// it; tests substitute a scripted fake.
type Session interface {
	// Load navigates to url and lets the page settle before returning.
	Load(url string, settle time.Duration) error
	// Capture returns the current page markup, scrolling first so
	// lazily-loaded cards render.
	Capture(settle time.Duration) (string, error)
	// NextControl reports whether the next-page control exists and is enabled.
	NextControl(selector string) (bool, error)
	// ClickNext advances to the next result page.
	ClickNext(selector string, settle time.Duration) error
}

// FetchPages retrieves up to pageCount rendered result pages for one site.
// Pagination advances per the rule: an explicit next-page control or an
// offset query parameter. A missing or disabled next control ends the site
// normally; a page error aborts the rest of the site but the pages captured
// so far are returned alongside the error so already-collected data is kept.
func FetchPages(ctx context.Context, s Session, rule sites.Rule, query, location string, pageCount int, log *zap.Logger) ([]string, error) {
	if pageCount <= 0 {
		return nil, nil
	}

	switch rule.Pagination.Kind {
	case sites.PaginationOffset:
		return fetchOffsetPages(ctx, s, rule, query, location, pageCount, log)
	default:
		return fetchNextControlPages(ctx, s, rule, query, location, pageCount, log)
	}
}

// fetchOffsetPages navigates to a fresh URL per page, shifting the offset
// query parameter.
func fetchOffsetPages(ctx context.Context, s Session, rule sites.Rule, query, location string, pageCount int, log *zap.Logger) ([]string, error) {
	var pages []string

	for page := 0; page < pageCount; page++ {
		if err := ctx.Err(); err != nil {
			return pages, &FetchError{Source: rule.Source, Page: page, Message: "run cancelled", Cause: err}
		}

		pageURL := rule.SearchURL(query, location, page)
		log.Debug("loading result page",
			zap.String("site", string(rule.Source)),
			zap.Int("page", page),
			zap.String("url", pageURL))

		if err := s.Load(pageURL, rule.SettleDelay); err != nil {
			return pages, &FetchError{Source: rule.Source, Page: page, Message: "page load failed", Cause: err}
		}
		html, err := s.Capture(0)
		if err != nil {
			return pages, &FetchError{Source: rule.Source, Page: page, Message: "capture failed", Cause: err}
		}

		pages = append(pages, html)
	}

	return pages, nil
}

// fetchNextControlPages navigates once, then advances by clicking the rule's
// next-page control until it disappears, disables, or pageCount is reached.
func fetchNextControlPages(ctx context.Context, s Session, rule sites.Rule, query, location string, pageCount int, log *zap.Logger) ([]string, error) {
	startURL := rule.SearchURL(query, location, 0)
	log.Debug("loading result page",
		zap.String("site", string(rule.Source)),
		zap.Int("page", 0),
		zap.String("url", startURL))

	if err := s.Load(startURL, rule.SettleDelay); err != nil {
		return nil, &FetchError{Source: rule.Source, Page: 0, Message: "page load failed", Cause: err}
	}

	var pages []string
	for page := 0; page < pageCount; page++ {
		if err := ctx.Err(); err != nil {
			return pages, &FetchError{Source: rule.Source, Page: page, Message: "run cancelled", Cause: err}
		}

		html, err := s.Capture(rule.SettleDelay)
		if err != nil {
			return pages, &FetchError{Source: rule.Source, Page: page, Message: "capture failed", Cause: err}
		}
		pages = append(pages, html)

		if page == pageCount-1 {
			break
		}

		advanced, err := clickNext(s, rule)
		if err != nil {
			return pages, &FetchError{Source: rule.Source, Page: page + 1, Message: "pagination failed", Cause: err}
		}
		if !advanced {
			// No further results: normal termination, not an error.
			log.Debug("no next page control, stopping site early",
				zap.String("site", string(rule.Source)),
				zap.Int("pages", len(pages)))
			break
		}
	}

	return pages, nil
}

// clickNext clicks the rule's next control if it exists and is enabled.
// Returns false when the site exposes no further results.
func clickNext(s Session, rule sites.Rule) (bool, error) {
	hasNext, err := s.NextControl(rule.Pagination.NextSelector)
	if err != nil {
		return false, err
	}
	if !hasNext {
		return false, nil
	}

	if err := s.ClickNext(rule.Pagination.NextSelector, rule.SettleDelay); err != nil {
		return false, err
	}
	return true, nil
}
