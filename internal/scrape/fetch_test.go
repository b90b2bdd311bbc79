package scrape

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captureStep struct {
	html string
	err  error
}

// scriptedSession plays back canned results so the fetch loops can be driven
// without a real browser.
type scriptedSession struct {
	loadErrs map[string]error
	captures []captureStep
	hasNext  bool
	nextErr  error
	clickErr error

	loadedURLs []string
	captureIdx int
	clicks     int
}

func (s *scriptedSession) Load(url string, _ time.Duration) error {
	s.loadedURLs = append(s.loadedURLs, url)
	return s.loadErrs[url]
}

func (s *scriptedSession) Capture(_ time.Duration) (string, error) {
	if s.captureIdx >= len(s.captures) {
		return "", errors.New("no capture scripted")
	}
	step := s.captures[s.captureIdx]
	s.captureIdx++
	return step.html, step.err
}

func (s *scriptedSession) NextControl(_ string) (bool, error) {
	return s.hasNext, s.nextErr
}

func (s *scriptedSession) ClickNext(_ string, _ time.Duration) error {
	s.clicks++
	return s.clickErr
}

func TestFetchPages_OffsetCollectsEveryPage(t *testing.T) {
	rule := indeedRule(t)
	session := &scriptedSession{
		loadErrs: map[string]error{},
		captures: []captureStep{{html: "page0"}, {html: "page1"}, {html: "page2"}},
	}

	pages, err := FetchPages(context.Background(), session, rule, "data engineer", "New York", 3, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, []string{"page0", "page1", "page2"}, pages)
	require.Len(t, session.loadedURLs, 3)
	assert.Contains(t, session.loadedURLs[2], "start=20")
}

func TestFetchPages_OffsetErrorKeepsCapturedPages(t *testing.T) {
	rule := indeedRule(t)
	badURL := rule.SearchURL("data engineer", "New York", 1)
	session := &scriptedSession{
		loadErrs: map[string]error{badURL: errors.New("net::ERR_TIMED_OUT")},
		captures: []captureStep{{html: "page0"}},
	}

	pages, err := FetchPages(context.Background(), session, rule, "data engineer", "New York", 3, zap.NewNop())

	// The failing page aborts the rest of the site, but page 0 survives.
	assert.Equal(t, []string{"page0"}, pages)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 1, fetchErr.Page)
}

func TestFetchPages_NextControlAdvances(t *testing.T) {
	rule := linkedInRule(t)
	session := &scriptedSession{
		loadErrs: map[string]error{},
		captures: []captureStep{{html: "page0"}, {html: "page1"}},
		hasNext:  true,
	}

	pages, err := FetchPages(context.Background(), session, rule, "data engineer", "New York", 2, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, []string{"page0", "page1"}, pages)
	assert.Equal(t, 1, session.clicks)
	// Next-control sites navigate once; pagination happens in the page.
	assert.Len(t, session.loadedURLs, 1)
}

func TestFetchPages_MissingNextControlStopsEarlyWithoutError(t *testing.T) {
	rule := linkedInRule(t)
	session := &scriptedSession{
		loadErrs: map[string]error{},
		captures: []captureStep{{html: "page0"}},
		hasNext:  false,
	}

	pages, err := FetchPages(context.Background(), session, rule, "data engineer", "New York", 5, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, []string{"page0"}, pages)
	assert.Equal(t, 0, session.clicks)
}

func TestFetchPages_NextControlCaptureErrorKeepsEarlierPages(t *testing.T) {
	rule := linkedInRule(t)
	session := &scriptedSession{
		loadErrs: map[string]error{},
		captures: []captureStep{{html: "page0"}, {err: errors.New("tab crashed")}},
		hasNext:  true,
	}

	pages, err := FetchPages(context.Background(), session, rule, "data engineer", "New York", 3, zap.NewNop())

	assert.Equal(t, []string{"page0"}, pages)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 1, fetchErr.Page)
}

func TestFetchPages_ZeroPageCount(t *testing.T) {
	pages, err := FetchPages(context.Background(), &scriptedSession{}, indeedRule(t), "q", "l", 0, zap.NewNop())

	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestFetchPages_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pages, err := FetchPages(ctx, &scriptedSession{}, indeedRule(t), "q", "l", 2, zap.NewNop())

	assert.Empty(t, pages)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.ErrorIs(t, fetchErr.Cause, context.Canceled)
}
