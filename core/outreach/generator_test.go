package outreach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
)

func sampleResult() *domain.ExtractionResult {
	return &domain.ExtractionResult{
		ID:       "ext-1",
		Title:    "TechCorp Expands",
		SiteName: "Daily Ledger",
		Profiles: []domain.Profile{
			{ID: 1, Name: "Sarah Johnson", Role: "CEO", Company: "TechCorp", Quote: "We are ready", Confidence: 97, Mentions: 1},
			{ID: 2, Name: "Michael Chen", Role: "Analyst", Company: "Northwind Capital", Confidence: 90, Mentions: 1},
			{ID: 3, Name: "Maria Lopez", Confidence: 50, Mentions: 1},
		},
	}
}

func TestGenerate_AllProfiles(t *testing.T) {
	drafts, err := NewGenerator().Generate(sampleResult(), 0)
	require.NoError(t, err)
	require.Len(t, drafts, 3)

	first := drafts[0]
	assert.Equal(t, 1, first.ProfileID)
	assert.Equal(t, "Sarah Johnson", first.Name)
	assert.Equal(t, `Your comments in "TechCorp Expands"`, first.Subject)
	assert.Contains(t, first.Body, "Hi Sarah,")
	assert.Contains(t, first.Body, `I came across "TechCorp Expands" in Daily Ledger and your perspective as a CEO at TechCorp.`)
	assert.Contains(t, first.Body, `Your point that "We are ready" stood out to me.`)

	assert.Contains(t, drafts[1].Body, "as an Analyst at Northwind Capital.")
	assert.NotContains(t, drafts[1].Body, "stood out")

	assert.Contains(t, drafts[2].Body, `I came across "TechCorp Expands" in Daily Ledger.`)
}

func TestGenerate_SingleProfile(t *testing.T) {
	drafts, err := NewGenerator().Generate(sampleResult(), 2)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Michael Chen", drafts[0].Name)

	_, err = NewGenerator().Generate(sampleResult(), 9)
	assert.True(t, coreerrors.IsNotFound(err))
}

func TestGenerate_WithoutTitle(t *testing.T) {
	result := sampleResult()
	result.Title = ""

	drafts, err := NewGenerator().Generate(result, 1)
	require.NoError(t, err)
	assert.Equal(t, "Reaching out about TechCorp", drafts[0].Subject)
	assert.Contains(t, drafts[0].Body, "I came across a recent article and your perspective")
}

func TestIndefiniteArticle(t *testing.T) {
	tests := map[string]string{
		"CEO":      "a",
		"MD":       "an",
		"Analyst":  "an",
		"Director": "a",
		"":         "a",
	}
	for word, want := range tests {
		assert.Equal(t, want, indefiniteArticle(word), word)
	}
}
