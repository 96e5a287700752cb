// ABOUTME: Response DTOs for extraction, share and batch API endpoints
// ABOUTME: Adds display fields such as confidence labels and relative times

package responses

import "time"

// SourceResponse describes where an extraction's text came from
type SourceResponse struct {
	Kind        string `json:"kind" doc:"url or document"`
	URL         string `json:"url,omitempty"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Size        int    `json:"size,omitempty"`
}

// ProfileResponse is one extracted person
type ProfileResponse struct {
	ID                   int      `json:"id"`
	Name                 string   `json:"name"`
	Role                 string   `json:"role"`
	Company              string   `json:"company"`
	Quote                string   `json:"quote"`
	Confidence           int      `json:"confidence" minimum:"0" maximum:"100"`
	ConfidenceLabel      string   `json:"confidenceLabel" doc:"Confidence as a percentage, e.g. 95%"`
	ConfidenceLevel      string   `json:"confidenceLevel" enum:"high,medium,low"`
	LinkedInURL          string   `json:"linkedInUrl,omitempty"`
	PossibleLinkedInURLs []string `json:"possibleLinkedInUrls,omitempty"`
	Mentions             int      `json:"mentions"`
}

// ExtractionResponse is a full extraction result
type ExtractionResponse struct {
	ID           string            `json:"extractionId"`
	Source       SourceResponse    `json:"source"`
	Title        string            `json:"title"`
	SiteName     string            `json:"siteName,omitempty"`
	Byline       string            `json:"byline,omitempty"`
	PublishedAt  *time.Time        `json:"publishedAt,omitempty"`
	Profiles     []ProfileResponse `json:"profiles"`
	ProfileCount int               `json:"profileCount"`
	Message      string            `json:"message" doc:"Status message suitable for display"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// RecentExtractionResponse is one entry in the recent extractions list
type RecentExtractionResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ProfileCount int       `json:"profileCount"`
	CreatedAt    time.Time `json:"createdAt"`
	TimeAgo      string    `json:"timeAgo" doc:"Relative creation time, e.g. 2 hours ago"`
}

// RecentExtractionsResponse lists recent extractions, newest first
type RecentExtractionsResponse struct {
	Extractions []RecentExtractionResponse `json:"extractions"`
	Count       int                        `json:"count"`
}

// ShareResponse describes a share link
type ShareResponse struct {
	ID           string     `json:"id"`
	ExtractionID string     `json:"extractionId"`
	URL          string     `json:"url" doc:"Path that resolves the share"`
	CreatedAt    time.Time  `json:"createdAt"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}

// SharedExtractionResponse is a resolved share with its extraction
type SharedExtractionResponse struct {
	Share      ShareResponse      `json:"share"`
	Extraction ExtractionResponse `json:"extraction"`
}

// OutreachDraftResponse is a suggested message for one profile
type OutreachDraftResponse struct {
	ProfileID int    `json:"profileId"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// OutreachResponse lists outreach drafts
type OutreachResponse struct {
	ExtractionID string                  `json:"extractionId"`
	Drafts       []OutreachDraftResponse `json:"drafts"`
}

// BatchItemResponse is the outcome for one feed article
type BatchItemResponse struct {
	URL          string `json:"url"`
	Title        string `json:"title,omitempty"`
	Status       string `json:"status" enum:"succeeded,failed"`
	ExtractionID string `json:"extractionId,omitempty"`
	ProfileCount int    `json:"profileCount"`
	Reason       string `json:"reason,omitempty"`
	Message      string `json:"message,omitempty"`
}

// BatchResponse summarises a feed batch extraction
type BatchResponse struct {
	FeedURL   string              `json:"feedUrl"`
	Items     []BatchItemResponse `json:"items"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

// SourceViewResponse is the reader view of an extraction's source article
type SourceViewResponse struct {
	ExtractionID string `json:"extractionId"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	SiteName     string `json:"siteName,omitempty"`
	Byline       string `json:"byline,omitempty"`
	Excerpt      string `json:"excerpt,omitempty"`
	Markdown     string `json:"markdown"`
	TextContent  string `json:"textContent"`
}

// HealthResponse reports service status and enabled features
type HealthResponse struct {
	Status    string          `json:"status"`
	Version   string          `json:"version"`
	Timestamp time.Time       `json:"timestamp"`
	Features  map[string]bool `json:"features"`
}
