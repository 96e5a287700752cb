package domain

import (
	"testing"

	coreerrors "newsnex-api/core/errors"
)

func TestExtractionRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     ExtractionRequest
		wantMsg string
	}{
		{
			name:    "empty URL",
			req:     ExtractionRequest{},
			wantMsg: MessageMissingURL,
		},
		{
			name:    "whitespace URL",
			req:     ExtractionRequest{URL: "   "},
			wantMsg: MessageMissingURL,
		},
		{
			name:    "URL without scheme",
			req:     ExtractionRequest{URL: "example.com/article"},
			wantMsg: MessageInvalidURL,
		},
		{
			name:    "unsupported scheme",
			req:     ExtractionRequest{URL: "ftp://example.com/article"},
			wantMsg: MessageInvalidURL,
		},
		{
			name: "valid URL",
			req:  ExtractionRequest{URL: "https://example.com/article"},
		},
		{
			name: "document only",
			req:  ExtractionRequest{Document: []byte("hello"), ContentType: "text/plain"},
		},
		{
			name:    "both URL and document",
			req:     ExtractionRequest{URL: "https://example.com", Document: []byte("x")},
			wantMsg: "Provide either a URL or a document, not both",
		},
		{
			name:    "confidence out of range",
			req:     ExtractionRequest{URL: "https://example.com", Options: ExtractionOptions{MinConfidence: 120}},
			wantMsg: "Minimum confidence must be between 0 and 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantMsg == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !coreerrors.IsValidation(err) {
				t.Fatalf("Validate() error = %v, want validation error", err)
			}
			if got := coreerrors.UserMessage(err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestExtractionRequest_Source(t *testing.T) {
	src := ExtractionRequest{URL: " https://example.com/a "}.Source()
	if src.Kind != SourceURL || src.URL != "https://example.com/a" {
		t.Errorf("Source() = %+v", src)
	}

	src = ExtractionRequest{Document: []byte("abc"), Filename: "a.txt", ContentType: "text/plain"}.Source()
	if src.Kind != SourceDocument || src.Size != 3 || src.Filename != "a.txt" {
		t.Errorf("Source() = %+v", src)
	}
}
