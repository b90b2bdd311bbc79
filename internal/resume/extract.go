// Package resume turns a resume document into a structured candidate profile.
package resume

import (
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ExtractText converts a resume file into plain text. PDFs are read page by
// page, DOCX files paragraph by paragraph, joined by newlines in reading
// order. This is a pure local transform: no retries, no fallback.
func ExtractText(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", &NotFoundError{Path: path}
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return extractPDFText(path)
	case ".docx", ".doc":
		return extractDocxText(path)
	default:
		return "", &UnsupportedFormatError{Extension: ext}
	}
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to read PDF", Cause: err}
	}
	defer func() { _ = f.Close() }()

	var pages []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not discard the rest.
			continue
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}

var (
	paragraphEndRe = regexp.MustCompile(`</w:p>`)
	xmlTagRe       = regexp.MustCompile(`<[^>]+>`)
)

func extractDocxText(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to parse DOCX", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	// GetContent returns the raw document XML; map paragraph ends to
	// newlines before stripping the remaining markup.
	content := doc.Editable().GetContent()
	content = paragraphEndRe.ReplaceAllString(content, "\n")
	content = xmlTagRe.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}
