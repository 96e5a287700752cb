// ABOUTME: Mappers for converting extraction domain models to API DTOs
// ABOUTME: Produces display messages, confidence labels and relative times

package mappers

import (
	"fmt"
	"time"

	"newsnex-api/api/dto/responses"
	"newsnex-api/core/domain"
	timeutil "newsnex-api/pkg/utils/time"
)

// MessageNoProfiles is shown when an article yields no profiles
const MessageNoProfiles = "No profiles found in the article. Try another URL."

// ProfilesMessage returns the display message for an extraction with count profiles
func ProfilesMessage(count int) string {
	if count == 0 {
		return MessageNoProfiles
	}
	return fmt.Sprintf("Found %d profiles!", count)
}

// ToProfileResponse converts a domain Profile
func ToProfileResponse(p domain.Profile) responses.ProfileResponse {
	return responses.ProfileResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Role:                 p.Role,
		Company:              p.Company,
		Quote:                p.Quote,
		Confidence:           p.Confidence,
		ConfidenceLabel:      p.ConfidenceLabel(),
		ConfidenceLevel:      string(p.ConfidenceLevel()),
		LinkedInURL:          p.LinkedInURL,
		PossibleLinkedInURLs: p.PossibleLinkedInURLs,
		Mentions:             p.Mentions,
	}
}

// ToExtractionResponse converts a domain ExtractionResult
func ToExtractionResponse(result *domain.ExtractionResult) *responses.ExtractionResponse {
	if result == nil {
		return nil
	}

	response := &responses.ExtractionResponse{
		ID: result.ID,
		Source: responses.SourceResponse{
			Kind:        string(result.Source.Kind),
			URL:         result.Source.URL,
			Filename:    result.Source.Filename,
			ContentType: result.Source.ContentType,
			Size:        result.Source.Size,
		},
		Title:        result.Title,
		SiteName:     result.SiteName,
		Byline:       result.Byline,
		Profiles:     make([]responses.ProfileResponse, 0, len(result.Profiles)),
		ProfileCount: len(result.Profiles),
		Message:      ProfilesMessage(len(result.Profiles)),
		CreatedAt:    result.CreatedAt,
	}
	if !result.PublishedAt.IsZero() {
		published := result.PublishedAt
		response.PublishedAt = &published
	}

	for _, p := range result.Profiles {
		response.Profiles = append(response.Profiles, ToProfileResponse(p))
	}

	return response
}

// ToRecentExtractionsResponse converts summaries, computing relative times against now
func ToRecentExtractionsResponse(summaries []domain.ExtractionSummary, now time.Time) *responses.RecentExtractionsResponse {
	response := &responses.RecentExtractionsResponse{
		Extractions: make([]responses.RecentExtractionResponse, 0, len(summaries)),
		Count:       len(summaries),
	}

	for _, s := range summaries {
		response.Extractions = append(response.Extractions, responses.RecentExtractionResponse{
			ID:           s.ID,
			Title:        s.Title,
			ProfileCount: s.ProfileCount,
			CreatedAt:    s.CreatedAt,
			TimeAgo:      timeutil.Ago(s.CreatedAt, now),
		})
	}

	return response
}

// ToShareResponse converts a domain Share
func ToShareResponse(share *domain.Share) *responses.ShareResponse {
	if share == nil {
		return nil
	}
	return &responses.ShareResponse{
		ID:           share.ID,
		ExtractionID: share.ExtractionID,
		URL:          "/shares/" + share.ID,
		CreatedAt:    share.CreatedAt,
		ExpiresAt:    share.ExpiresAt,
	}
}

// ToOutreachResponse converts generated drafts
func ToOutreachResponse(extractionID string, drafts []domain.OutreachDraft) *responses.OutreachResponse {
	response := &responses.OutreachResponse{
		ExtractionID: extractionID,
		Drafts:       make([]responses.OutreachDraftResponse, 0, len(drafts)),
	}
	for _, d := range drafts {
		response.Drafts = append(response.Drafts, responses.OutreachDraftResponse{
			ProfileID: d.ProfileID,
			Name:      d.Name,
			Subject:   d.Subject,
			Body:      d.Body,
		})
	}
	return response
}

// ToBatchResponse converts a domain BatchResult
func ToBatchResponse(result *domain.BatchResult) *responses.BatchResponse {
	if result == nil {
		return nil
	}

	response := &responses.BatchResponse{
		FeedURL:   result.FeedURL,
		Items:     make([]responses.BatchItemResponse, 0, len(result.Items)),
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
	}

	for _, item := range result.Items {
		itemResponse := responses.BatchItemResponse{
			URL:     item.URL,
			Title:   item.Title,
			Status:  string(item.Status),
			Reason:  item.Reason,
			Message: item.Message,
		}
		if item.Summary != nil {
			itemResponse.ExtractionID = item.Summary.ID
			itemResponse.ProfileCount = item.Summary.ProfileCount
		}
		response.Items = append(response.Items, itemResponse)
	}

	return response
}

// ToSourceViewResponse converts an article fetched for an extraction's source
func ToSourceViewResponse(extractionID string, article *domain.Article) *responses.SourceViewResponse {
	if article == nil {
		return nil
	}
	return &responses.SourceViewResponse{
		ExtractionID: extractionID,
		URL:          article.URL,
		Title:        article.Title,
		SiteName:     article.SiteName,
		Byline:       article.Byline,
		Excerpt:      article.Excerpt,
		Markdown:     article.Markdown,
		TextContent:  article.TextContent,
	}
}
