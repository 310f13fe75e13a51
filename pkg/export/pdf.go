package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

type PDFEncoder struct {
	fontFamily string
	fontSize   float64
	lineHeight float64
}

func NewPDFEncoder() *PDFEncoder {
	return &PDFEncoder{fontFamily: "Helvetica", fontSize: 11, lineHeight: 6}
}

func (e *PDFEncoder) ContentType() string { return "application/pdf" }
func (e *PDFEncoder) Extension() string   { return "pdf" }

func (e *PDFEncoder) Encode(text string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Jarvina export", true)
	pdf.AddPage()
	pdf.SetFont(e.fontFamily, "", e.fontSize)

	// Core fonts are cp1252; characters outside it are replaced.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, line := range splitLines(text) {
		if line == "" {
			pdf.Ln(e.lineHeight)
			continue
		}
		pdf.MultiCell(0, e.lineHeight, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
