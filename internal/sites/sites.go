// Package sites holds the declarative per-site scrape rules. Adding a job
// site is a data change here, not a code change in the fetcher or parser.
package sites

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/job-matcher/internal/types"
)

// PaginationKind selects how a site advances through result pages.
type PaginationKind string

const (
	// PaginationNext clicks an explicit "next page" control in the DOM.
	PaginationNext PaginationKind = "next"
	// PaginationOffset appends an offset query parameter per page.
	PaginationOffset PaginationKind = "offset"
)

// SpaceEncoding selects how spaces in query values are encoded.
type SpaceEncoding string

const (
	SpacePlus    SpaceEncoding = "plus"    // "data engineer" -> data+engineer
	SpacePercent SpaceEncoding = "percent" // "data engineer" -> data%20engineer
)

// Param is one query parameter of a site's search URL. Values may contain
// the {query} and {location} placeholders.
type Param struct {
	Key   string `validate:"required"`
	Value string
}

// Pagination describes a site's page-advance mechanism.
type Pagination struct {
	Kind PaginationKind `validate:"required,oneof=next offset"`
	// NextSelector locates the next-page control (Kind == next).
	NextSelector string
	// OffsetParam and OffsetStep build the offset parameter (Kind == offset).
	OffsetParam string
	OffsetStep  int
}

// Rule is the complete extraction recipe for one job site: how to build a
// search URL, how long to let the page settle, and which selectors map the
// rendered markup onto a Job record.
type Rule struct {
	Source   types.Source  `validate:"required"`
	BaseURL  string        `validate:"required,url"`
	Origin   string        `validate:"required,url"`
	Params   []Param       `validate:"required,min=1,dive"`
	Encoding SpaceEncoding `validate:"required,oneof=plus percent"`

	// SettleDelay is how long to wait after a page load before capturing
	// markup. Capturing too early yields empty results on rendered sites.
	SettleDelay time.Duration `validate:"min=0"`

	Pagination Pagination `validate:"required"`

	CardSelector        string `validate:"required"`
	TitleSelector       string `validate:"required"`
	LinkSelector        string `validate:"required"`
	CompanySelector     string
	DescriptionSelector string
	// TitleAttrSelector, when set, names a nested element whose "title"
	// attribute holds the listing title (Indeed buries it in a span).
	TitleAttrSelector string
}

// SearchURL builds the search URL for a query, location and zero-based page
// index. For offset-paginated sites the page index shifts the offset
// parameter; next-control sites ignore it.
func (r Rule) SearchURL(query, location string, page int) string {
	var pairs []string
	for _, p := range r.Params {
		value := strings.ReplaceAll(p.Value, "{query}", query)
		value = strings.ReplaceAll(value, "{location}", location)
		pairs = append(pairs, p.Key+"="+r.encode(value))
	}

	u := r.BaseURL + "?" + strings.Join(pairs, "&")
	if r.Pagination.Kind == PaginationOffset && page > 0 {
		u += fmt.Sprintf("&%s=%d", r.Pagination.OffsetParam, page*r.Pagination.OffsetStep)
	}
	return u
}

func (r Rule) encode(value string) string {
	escaped := url.QueryEscape(value)
	if r.Encoding == SpacePercent {
		escaped = strings.ReplaceAll(escaped, "+", "%20")
	}
	return escaped
}

// Registry returns the configured site rules in scrape order.
func Registry() []Rule {
	return []Rule{
		{
			Source:  types.SourceLinkedIn,
			BaseURL: "https://www.linkedin.com/jobs/search",
			Origin:  "https://www.linkedin.com",
			Params: []Param{
				{Key: "keywords", Value: "{query}"},
				{Key: "location", Value: "{location}"},
				{Key: "f_TPR", Value: "r86400"}, // past 24 hours
				{Key: "position", Value: "1"},
				{Key: "pageNum", Value: "0"},
			},
			Encoding:    SpacePercent,
			SettleDelay: 3 * time.Second,
			Pagination: Pagination{
				Kind:         PaginationNext,
				NextSelector: `button[aria-label="Next"]`,
			},
			CardSelector:        "div.base-card",
			TitleSelector:       "h3.base-search-card__title",
			CompanySelector:     "h4.base-search-card__subtitle",
			LinkSelector:        "a.base-card__full-link",
			DescriptionSelector: "p.job-search-card__snippet",
		},
		{
			Source:  types.SourceIndeed,
			BaseURL: "https://www.indeed.com/jobs",
			Origin:  "https://www.indeed.com",
			Params: []Param{
				{Key: "q", Value: "{query}"},
				{Key: "l", Value: "{location}"},
				{Key: "fromage", Value: "1"}, // past 24 hours
				{Key: "sort", Value: "date"},
			},
			Encoding:    SpacePlus,
			SettleDelay: 2 * time.Second,
			Pagination: Pagination{
				Kind:        PaginationOffset,
				OffsetParam: "start",
				OffsetStep:  10,
			},
			CardSelector:        "div.job_seen_beacon",
			TitleSelector:       "h2.jobTitle",
			TitleAttrSelector:   "h2.jobTitle span[title]",
			CompanySelector:     "span.companyName",
			LinkSelector:        "a.jcs-JobTitle",
			DescriptionSelector: "div.job-snippet",
		},
	}
}

// Lookup returns the rule for a source.
func Lookup(source types.Source) (Rule, bool) {
	for _, rule := range Registry() {
		if rule.Source == source {
			return rule, true
		}
	}
	return Rule{}, false
}

// ValidateAll checks every registered rule so a malformed table fails fast
// at startup instead of mid-scrape.
func ValidateAll(rules []Rule) error {
	v := validator.New()
	for _, rule := range rules {
		if err := v.Struct(rule); err != nil {
			return fmt.Errorf("invalid rule for site %s: %w", rule.Source, err)
		}
		switch rule.Pagination.Kind {
		case PaginationNext:
			if rule.Pagination.NextSelector == "" {
				return fmt.Errorf("invalid rule for site %s: next pagination requires a selector", rule.Source)
			}
		case PaginationOffset:
			if rule.Pagination.OffsetParam == "" || rule.Pagination.OffsetStep <= 0 {
				return fmt.Errorf("invalid rule for site %s: offset pagination requires a param and positive step", rule.Source)
			}
		}
	}
	return nil
}
