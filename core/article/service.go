// ABOUTME: Article service turns a URL or uploaded document into readable text
// ABOUTME: Fetches pages, decodes charsets, runs go-readability and converts content to Markdown

package article

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html/charset"

	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
	"newsnex-api/core/interfaces"
)

const (
	// MaxBodySize limits fetched pages and uploaded documents
	MaxBodySize = 5 << 20

	cacheTTL    = 1 * time.Hour
	cachePrefix = "article:"
)

// Content types handled without readability
const (
	contentTypeHTML     = "text/html"
	contentTypeXHTML    = "application/xhtml+xml"
	contentTypeText     = "text/plain"
	contentTypeMarkdown = "text/markdown"
)

// Service acquires article content
type Service struct {
	client   interfaces.HTTPClient
	renderer interfaces.PageRenderer
	cache    interfaces.Cache
	logger   interfaces.Logger
}

// NewService creates an article service. A non-nil Renderer in deps makes
// FromURL load pages through the headless browser instead of the HTTP client.
func NewService(deps interfaces.Dependencies) *Service {
	return &Service{
		client:   deps.HTTPClient,
		renderer: deps.Renderer,
		cache:    deps.Cache,
		logger:   deps.Logger,
	}
}

// FromURL fetches and parses the article at rawURL
func (s *Service) FromURL(ctx context.Context, rawURL string) (*domain.Article, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, &coreerrors.ValidationError{Field: "url", Message: domain.MessageInvalidURL}
	}

	if cached := s.fromCache(ctx, rawURL); cached != nil {
		return cached, nil
	}

	body, contentType, err := s.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	var art *domain.Article
	switch mediaType(contentType) {
	case contentTypeText, contentTypeMarkdown:
		art, err = fromText(body, mediaType(contentType))
	case "", contentTypeHTML, contentTypeXHTML:
		art, err = fromHTML(body, contentType, pageURL)
	default:
		return nil, coreerrors.NewExtractionError(coreerrors.ReasonUnsupportedContent,
			fmt.Errorf("unsupported content type %q", contentType))
	}
	if err != nil {
		return nil, err
	}
	art.URL = rawURL

	s.toCache(ctx, rawURL, art)
	return art, nil
}

// FromDocument parses an uploaded document. The content type is sniffed from
// the filename and the bytes when not supplied.
func (s *Service) FromDocument(ctx context.Context, data []byte, contentType, filename string) (*domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, coreerrors.NewExtractionError(coreerrors.ReasonCanceled, err)
	}
	if len(data) > MaxBodySize {
		return nil, coreerrors.NewExtractionError(coreerrors.ReasonTooLarge,
			fmt.Errorf("document exceeds %d bytes", MaxBodySize))
	}

	detected := DetectContentType(data, contentType, filename)
	s.logger.Debug("Parsing uploaded document", map[string]interface{}{
		"filename":     filename,
		"content_type": detected,
		"size":         len(data),
	})

	var (
		art *domain.Article
		err error
	)
	switch detected {
	case contentTypeHTML, contentTypeXHTML:
		art, err = fromHTML(data, contentType, documentURL(filename))
	case contentTypeText, contentTypeMarkdown:
		art, err = fromText(data, detected)
	default:
		return nil, coreerrors.NewExtractionError(coreerrors.ReasonUnsupportedContent,
			fmt.Errorf("unsupported document type %q", detected))
	}
	if err != nil {
		return nil, err
	}
	if art.Title == "" && filename != "" {
		art.Title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return art, nil
}

// DetectContentType resolves the media type of a document from the declared
// type, then the filename extension, then the content itself
func DetectContentType(data []byte, declared, filename string) string {
	if mt := mediaType(declared); mt != "" && mt != "application/octet-stream" {
		if mt == "text/x-markdown" {
			return contentTypeMarkdown
		}
		return mt
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
		return contentTypeHTML
	case ".xhtml":
		return contentTypeXHTML
	case ".md", ".markdown":
		return contentTypeMarkdown
	case ".txt", ".text":
		return contentTypeText
	}

	return mediaType(http.DetectContentType(data))
}

// documentURL gives readability a base for resolving relative links in uploads
func documentURL(filename string) *url.URL {
	return &url.URL{Scheme: "file", Path: "/" + filepath.Base(filename)}
}

func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

func (s *Service) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	if s.renderer != nil {
		html, err := s.renderer.Render(ctx, rawURL)
		if err != nil {
			s.logger.Warn("Failed to render page", map[string]interface{}{
				"url":   rawURL,
				"error": err.Error(),
			})
			return nil, "", coreerrors.NewExtractionError(coreerrors.ReasonFetchFailed, err)
		}
		if len(html) > MaxBodySize {
			return nil, "", coreerrors.NewExtractionError(coreerrors.ReasonFetchFailed,
				fmt.Errorf("rendered page exceeds %d bytes", MaxBodySize))
		}
		return []byte(html), "text/html; charset=utf-8", nil
	}

	resp, err := s.client.Get(ctx, rawURL)
	if err != nil {
		s.logger.Warn("Failed to fetch article", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
		return nil, "", coreerrors.NewExtractionError(coreerrors.ReasonFetchFailed, err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		resp.Body().Close()
		return nil, "", coreerrors.NewExtractionError(coreerrors.ReasonFetchFailed, &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    http.StatusText(resp.StatusCode()),
			API:        rawURL,
		})
	}

	body, err := interfaces.ReadBody(resp, MaxBodySize)
	if err != nil {
		return nil, "", coreerrors.NewExtractionError(coreerrors.ReasonFetchFailed, err)
	}
	return body, resp.Header("Content-Type"), nil
}

func fromHTML(data []byte, contentType string, pageURL *url.URL) (*domain.Article, error) {
	reader, err := charset.NewReader(bytes.NewReader(data), contentType)
	if err != nil {
		reader = bytes.NewReader(data)
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return nil, coreerrors.NewExtractionError(coreerrors.ReasonInternal, err)
	}

	parsed, err := readability.FromReader(bytes.NewReader(decoded), pageURL)
	if err != nil {
		return nil, coreerrors.NewExtractionError(coreerrors.ReasonNoContent, err)
	}

	art := &domain.Article{
		Title:       strings.TrimSpace(parsed.Title),
		Byline:      strings.TrimSpace(parsed.Byline),
		SiteName:    parsed.SiteName,
		Content:     parsed.Content,
		TextContent: strings.TrimSpace(parsed.TextContent),
		Excerpt:     parsed.Excerpt,
		Image:       parsed.Image,
	}
	if parsed.PublishedTime != nil {
		art.PublishedAt = *parsed.PublishedTime
	}

	// Readability gives up on short pages; fall back to the body text
	if art.TextContent == "" {
		if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(decoded)); err == nil {
			doc.Find("script, style, noscript").Remove()
			art.TextContent = normalizeText(doc.Find("body").Text())
			if art.Title == "" {
				art.Title = strings.TrimSpace(doc.Find("title").First().Text())
			}
		}
	}
	if art.TextContent == "" {
		return nil, coreerrors.NewExtractionError(coreerrors.ReasonNoContent, errors.New("page has no readable text"))
	}

	if art.Content != "" {
		converter := md.NewConverter("", true, nil)
		if markdown, err := converter.ConvertString(art.Content); err == nil {
			art.Markdown = BuildMarkdown(art.Title, art.Byline, art.PublishedAt, art.SiteName, markdown)
		}
	}

	return art, nil
}

var (
	markdownHeading = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	markdownLink    = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	markdownEmph    = regexp.MustCompile(`(\*\*|__|\*|_|` + "`" + `)`)
	markdownBullet  = regexp.MustCompile(`(?m)^\s*([-*+]|\d+\.)\s+`)
	markdownQuote   = regexp.MustCompile(`(?m)^>\s?`)
)

func fromText(data []byte, contentType string) (*domain.Article, error) {
	raw := strings.ToValidUTF8(string(data), "")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	art := &domain.Article{}
	text := raw
	if contentType == contentTypeMarkdown {
		art.Markdown = cleanMarkdown(raw)
		text = markdownLink.ReplaceAllString(text, "$1")
		text = markdownHeading.ReplaceAllString(text, "")
		text = markdownBullet.ReplaceAllString(text, "")
		text = markdownQuote.ReplaceAllString(text, "")
		text = markdownEmph.ReplaceAllString(text, "")
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if contentType == contentTypeMarkdown {
			line = strings.TrimSpace(markdownHeading.ReplaceAllString(line, ""))
		}
		if len(line) <= 200 {
			art.Title = line
		}
		break
	}

	art.TextContent = normalizeText(text)
	if art.TextContent == "" {
		return nil, coreerrors.NewExtractionError(coreerrors.ReasonNoContent, errors.New("document has no text"))
	}
	if art.Markdown == "" {
		art.Markdown = art.TextContent
	}
	return art, nil
}

var (
	horizontalSpace = regexp.MustCompile(`[ \t\f\v]+`)
	blankLines      = regexp.MustCompile(`\n{3,}`)
)

// normalizeText collapses runs of spaces and blank lines while keeping
// paragraph breaks
func normalizeText(s string) string {
	s = horizontalSpace.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = strings.Join(lines, "\n")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func (s *Service) fromCache(ctx context.Context, rawURL string) *domain.Article {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, cachePrefix+rawURL)
	if err != nil || data == nil {
		return nil
	}
	var art domain.Article
	if err := json.Unmarshal(data, &art); err != nil {
		return nil
	}
	s.logger.Debug("Article cache hit", map[string]interface{}{"url": rawURL})
	return &art
}

func (s *Service) toCache(ctx context.Context, rawURL string, art *domain.Article) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(art)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cachePrefix+rawURL, data, cacheTTL); err != nil {
		s.logger.Debug("Failed to cache article", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
	}
}
