package ingest

import (
	"bytes"
	"fmt"
	"net/url"

	readability "github.com/go-shiori/go-readability"
)

// ExtractDocumentText pulls the readable article text out of an HTML
// document, stripping navigation, ads and boilerplate. Returns the plain
// text content ready for term extraction.
func ExtractDocumentText(html []byte) (string, error) {
	// The parser only uses the URL to resolve relative links, which we
	// never follow, so a placeholder base is fine.
	base := &url.URL{Scheme: "https", Host: "localhost"}

	article, err := readability.FromReader(bytes.NewReader(html), base)
	if err != nil {
		return "", fmt.Errorf("failed to parse document: %w", err)
	}
	return article.TextContent, nil
}
