package ingest

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Importer turns a posting URL into job-description text.
type Importer struct {
	useBrowser bool
	logger     *zap.Logger
}

// NewImporter creates an importer. With useBrowser enabled, pages whose
// extracted text is too short are re-rendered in headless Chrome.
func NewImporter(useBrowser bool, logger *zap.Logger) *Importer {
	return &Importer{useBrowser: useBrowser, logger: logger}
}

// Description fetches the URL and extracts the job description text.
func (i *Importer) Description(ctx context.Context, url string) (string, error) {
	html, err := fetchHTML(ctx, url)
	if err != nil {
		return "", err
	}

	text, err := extractDescription(html)
	if err != nil {
		return "", &Error{URL: url, Message: "extraction failed", Cause: err}
	}

	if i.useBrowser && needsBrowser(text) {
		if i.logger != nil {
			i.logger.Info("falling back to headless browser",
				zap.String("url", url),
				zap.Int("extracted_chars", len(text)),
			)
		}
		rendered, err := renderWithBrowser(ctx, url, DefaultTimeout)
		if err != nil {
			return "", &Error{URL: url, Message: "browser fallback failed", Cause: err}
		}
		text, err = extractDescription(rendered)
		if err != nil {
			return "", &Error{URL: url, Message: "extraction failed after render", Cause: err}
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", &Error{URL: url, Message: "no description text found"}
	}
	return text, nil
}
