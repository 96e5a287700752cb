// ABOUTME: Batch extraction models report per-article outcomes for a feed
// ABOUTME: Each item carries either an extraction summary or a user message

package domain

// BatchStatus is the outcome of one article in a batch
type BatchStatus string

const (
	// BatchSucceeded means profiles were extracted and stored
	BatchSucceeded BatchStatus = "succeeded"

	// BatchFailed means the article could not be processed
	BatchFailed BatchStatus = "failed"
)

// BatchItem is the outcome of extracting one feed article
type BatchItem struct {
	URL     string             `json:"url"`
	Title   string             `json:"title,omitempty"`
	Status  BatchStatus        `json:"status"`
	Summary *ExtractionSummary `json:"summary,omitempty"`
	Reason  string             `json:"reason,omitempty"`
	Message string             `json:"message,omitempty"`
}

// BatchResult lists outcomes in feed order
type BatchResult struct {
	FeedURL   string      `json:"feedUrl"`
	Items     []BatchItem `json:"items"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}
