package renderer

import "strings"

const (
	FormatPDF  = "pdf"
	FormatHTML = "html"
)

// ForFormat picks the renderer for a requested output format. Empty means PDF.
func ForFormat(format string) (Renderer, bool) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatPDF:
		return NewPDFRenderer(), true
	case FormatHTML:
		return NewHTMLRenderer(), true
	default:
		return nil, false
	}
}
