package renderer

import (
	"agency/internal/logger"
	"bytes"
	"context"

	"github.com/go-pdf/fpdf"
)

type PDFRenderer struct {
	log logger.Logger
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{log: logger.New("renderer").File("pdf")}
}

func (r *PDFRenderer) Render(ctx context.Context, request RenderRequest) ([]byte, error) {
	log := r.log.Function("Render")

	if err := ctx.Err(); err != nil {
		return nil, log.Err("render cancelled", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(request.Title, true)
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 18)
	pdf.MultiCell(0, 10, tr(request.Title), "", "L", false)

	if request.Description != "" {
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, tr(request.Description), "", "L", false)
	}
	pdf.Ln(6)

	for _, field := range request.Fields {
		pdf.SetFont("Arial", "B", 11)
		pdf.MultiCell(0, 6, tr(field.Label+":"), "", "L", false)
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, tr(field.Value), "", "L", false)
		pdf.Ln(3)
	}

	if err := pdf.Error(); err != nil {
		return nil, log.Err("failed to lay out pdf document", err, "title", request.Title)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, log.Err("failed to write pdf document", err, "title", request.Title)
	}

	return buf.Bytes(), nil
}

func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

func (r *PDFRenderer) Extension() string {
	return "pdf"
}
