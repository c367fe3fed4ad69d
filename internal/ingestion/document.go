package ingestion

import (
	"bytes"
	"html"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format identifies the container a document arrived in
type Format string

// Supported document formats.
const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
)

// DetectFormat picks a Format from the file extension, falling back to content sniffing.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF
	case ".docx", ".doc":
		return FormatDOCX
	case ".html", ".htm":
		return FormatHTML
	case ".txt", ".md":
		return FormatText
	}

	mime := http.DetectContentType(data)
	switch {
	case strings.HasPrefix(mime, "application/pdf"):
		return FormatPDF
	case strings.HasPrefix(mime, "text/html"):
		return FormatHTML
	case strings.HasPrefix(mime, "application/zip"):
		// docx is a zip container
		return FormatDOCX
	}
	return FormatText
}

// ExtractText returns the raw text of a document in the given format.
func ExtractText(format Format, data []byte) (string, error) {
	switch format {
	case FormatPDF:
		return extractPDFText(data)
	case FormatDOCX:
		return extractDocxText(data)
	case FormatHTML:
		return extractHTMLText(data)
	case FormatText:
		return decodeText(data), nil
	default:
		return "", &UnsupportedFormatError{Format: string(format)}
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatPDF, Message: "failed to read pdf", Cause: err}
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractionError{Format: FormatPDF, Message: "failed to read pdf page", Cause: err}
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatDOCX, Message: "failed to parse docx", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	return docxParagraphs(doc.Editable().GetContent()), nil
}

// docxParagraphs turns the document XML into one line per paragraph.
func docxParagraphs(xml string) string {
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:br/>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", " ")

	var sb strings.Builder
	inTag := false
	for _, r := range xml {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return html.UnescapeString(sb.String())
}

func extractHTMLText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", &ExtractionError{Format: FormatHTML, Message: "failed to parse HTML", Cause: err}
	}

	// Remove common unwanted elements (nav, footer, scripts, etc.)
	doc.Find("nav, footer, script, style, noscript").Remove()

	content := doc.Find("body")
	for _, selector := range []string{".job-description", "#job-description", "main", "article"} {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}

	// Block elements become their own lines so blank-line structure survives
	content.Find("p, li, h1, h2, h3, h4, div, br").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return content.Text(), nil
}

// decodeText returns data as UTF-8, reading it as latin-1 when it is not valid UTF-8.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
