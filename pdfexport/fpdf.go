package pdfexport

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
)

// Document is the fpdf-backed Canvas plus final serialization.
type Document struct {
	pdf    *fpdf.Fpdf
	family string
}

// NewDocument prepares an A4 portrait document. fontPath names a UTF-8 TTF
// covering the Vietnamese repertoire; an unreadable font is fatal for the
// whole conversion. An empty path falls back to the built-in Helvetica core
// font, which only covers ASCII.
func NewDocument(fontPath string) (*Document, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	family := "Helvetica"
	if fontPath != "" {
		if _, err := os.Stat(fontPath); err != nil {
			return nil, fmt.Errorf("failed to load font %s: %w", fontPath, err)
		}
		family = "quiz"
		pdf.AddUTF8Font(family, "", fontPath)
		pdf.AddUTF8Font(family, "B", fontPath)
		if pdf.Err() {
			return nil, fmt.Errorf("failed to load font %s: %w", fontPath, pdf.Error())
		}
	}
	return &Document{pdf: pdf, family: family}, nil
}

// AddPage implements Canvas.
func (d *Document) AddPage() float64 {
	d.pdf.AddPage()
	_, h := d.pdf.GetPageSize()
	return h
}

// Text implements Canvas.
func (d *Document) Text(x, y, width float64, s string, style TextStyle) {
	fontStyle := ""
	if style.Bold {
		fontStyle = "B"
	}
	d.pdf.SetFont(d.family, fontStyle, style.Size)
	d.pdf.SetTextColor(style.R, style.G, style.B)
	d.pdf.SetXY(x, y)
	// 0.45mm per pt keeps drawn lines close to the cursor's line height.
	d.pdf.MultiCell(width, style.Size*0.45, s, "", "L", false)
}

// Bytes finalizes the document and returns the PDF bytes.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize PDF: %w", err)
	}
	return buf.Bytes(), nil
}
