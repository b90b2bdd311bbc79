package scrape

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/job-matcher/internal/sites"
	"github.com/jonathan/job-matcher/internal/types"
)

// CardOutcomeKind classifies what happened to one listing card during
// parsing, so callers and tests can assert on failure mode rather than just
// the absence of a crash.
type CardOutcomeKind string

const (
	CardParsed       CardOutcomeKind = "parsed"
	CardMissingTitle CardOutcomeKind = "skipped_missing_title"
	CardMissingLink  CardOutcomeKind = "skipped_missing_link"
)

// CardOutcome is the per-card parse result.
type CardOutcome struct {
	Kind   CardOutcomeKind
	Source types.Source
	// Detail carries whatever identifying text the card had, for logging.
	Detail string
}

// ParsePage maps one rendered result page onto Job records using the site's
// field selectors. Partial results are kept: a card missing its title or
// link is skipped with a typed outcome, never raised to the caller. Company
// defaults to "N/A" and description to "" when absent.
func ParsePage(html string, rule sites.Rule) ([]types.Job, []CardOutcome, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse HTML for %s: %w", rule.Source, err)
	}

	var jobs []types.Job
	var outcomes []CardOutcome

	doc.Find(rule.CardSelector).Each(func(_ int, card *goquery.Selection) {
		job, outcome := parseCard(card, rule)
		outcomes = append(outcomes, outcome)
		if outcome.Kind == CardParsed {
			jobs = append(jobs, job)
		}
	})

	return jobs, outcomes, nil
}

func parseCard(card *goquery.Selection, rule sites.Rule) (types.Job, CardOutcome) {
	title := extractTitle(card, rule)
	if title == "" {
		return types.Job{}, CardOutcome{Kind: CardMissingTitle, Source: rule.Source}
	}

	href, ok := card.Find(rule.LinkSelector).First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return types.Job{}, CardOutcome{Kind: CardMissingLink, Source: rule.Source, Detail: title}
	}

	link, err := NormalizeLink(href, rule.Origin)
	if err != nil {
		return types.Job{}, CardOutcome{Kind: CardMissingLink, Source: rule.Source, Detail: title}
	}

	company := "N/A"
	if rule.CompanySelector != "" {
		if text := strings.TrimSpace(card.Find(rule.CompanySelector).First().Text()); text != "" {
			company = text
		}
	}

	description := ""
	if rule.DescriptionSelector != "" {
		description = strings.TrimSpace(card.Find(rule.DescriptionSelector).First().Text())
	}

	job := types.Job{
		Title:       title,
		Company:     company,
		Link:        link,
		Description: description,
		Source:      rule.Source,
	}
	return job, CardOutcome{Kind: CardParsed, Source: rule.Source, Detail: title}
}

// extractTitle prefers the nested title attribute when the rule declares one
// (Indeed keeps the full title in a span's title attribute), falling back to
// the title element's text.
func extractTitle(card *goquery.Selection, rule sites.Rule) string {
	if rule.TitleAttrSelector != "" {
		if attr, ok := card.Find(rule.TitleAttrSelector).First().Attr("title"); ok {
			if title := strings.TrimSpace(attr); title != "" {
				return title
			}
		}
	}
	return strings.TrimSpace(card.Find(rule.TitleSelector).First().Text())
}

// NormalizeLink resolves a possibly site-relative href against the site
// origin, producing an absolute URL.
func NormalizeLink(href, origin string) (string, error) {
	base, err := url.Parse(origin)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("invalid site origin %q", origin)
	}

	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("invalid href %q: %w", href, err)
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme == "" || resolved.Host == "" {
		return "", fmt.Errorf("could not resolve href %q against %q", href, origin)
	}
	return resolved.String(), nil
}

// CountOutcomes tallies outcomes by kind.
func CountOutcomes(outcomes []CardOutcome, kind CardOutcomeKind) int {
	n := 0
	for _, o := range outcomes {
		if o.Kind == kind {
			n++
		}
	}
	return n
}
