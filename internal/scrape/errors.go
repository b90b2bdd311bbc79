package scrape

import (
	"fmt"

	"github.com/jonathan/job-matcher/internal/types"
)

// FetchError reports a failure while fetching one site's result pages.
// Pages captured before the failure are still returned alongside it.
type FetchError struct {
	Source  types.Source
	Page    int
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch failed for %s page %d: %s: %v", e.Source, e.Page, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch failed for %s page %d: %s", e.Source, e.Page, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
