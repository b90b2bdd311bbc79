package sites

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-matcher/internal/types"
)

func TestRegistry_AllRulesValid(t *testing.T) {
	require.NoError(t, ValidateAll(Registry()))
}

func TestLookup(t *testing.T) {
	rule, ok := Lookup(types.SourceIndeed)
	require.True(t, ok)
	assert.Equal(t, types.SourceIndeed, rule.Source)

	_, ok = Lookup(types.Source("monster"))
	assert.False(t, ok)
}

func TestSearchURL_IndeedEncodingAndOffset(t *testing.T) {
	rule, ok := Lookup(types.SourceIndeed)
	require.True(t, ok)

	first := rule.SearchURL("data engineer", "New York", 0)
	assert.Equal(t, "https://www.indeed.com/jobs?q=data+engineer&l=New+York&fromage=1&sort=date", first)

	third := rule.SearchURL("data engineer", "New York", 2)
	assert.True(t, strings.HasSuffix(third, "&start=20"), "page 2 should carry start=20, got %s", third)
}

func TestSearchURL_LinkedInEncoding(t *testing.T) {
	rule, ok := Lookup(types.SourceLinkedIn)
	require.True(t, ok)

	u := rule.SearchURL("data engineer", "New York", 0)

	assert.Contains(t, u, "keywords=data%20engineer")
	assert.Contains(t, u, "location=New%20York")
	assert.Contains(t, u, "f_TPR=r86400")
	// Next-control pagination: the page index never shows up in the URL.
	assert.Equal(t, u, rule.SearchURL("data engineer", "New York", 5))
}

func TestValidateAll_RejectsBadPagination(t *testing.T) {
	rule, ok := Lookup(types.SourceLinkedIn)
	require.True(t, ok)

	rule.Pagination.NextSelector = ""
	err := ValidateAll([]Rule{rule})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "next pagination")

	offsetRule, ok := Lookup(types.SourceIndeed)
	require.True(t, ok)
	offsetRule.Pagination.OffsetStep = 0
	err = ValidateAll([]Rule{offsetRule})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offset pagination")
}

func TestValidateAll_RejectsMissingSelectors(t *testing.T) {
	rule, ok := Lookup(types.SourceIndeed)
	require.True(t, ok)

	rule.CardSelector = ""
	assert.Error(t, ValidateAll([]Rule{rule}))
}
