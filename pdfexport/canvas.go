package pdfexport

// TextStyle selects how one string is drawn.
type TextStyle struct {
	Size    float64
	Bold    bool
	R, G, B int
}

// Canvas is the page surface the layout engine draws on. The production
// implementation is Document (go-pdf/fpdf); tests use a recording canvas.
type Canvas interface {
	// AddPage starts a new page and returns its height in mm.
	AddPage() float64
	// Text draws s at (x, y), wrapping within width mm.
	Text(x, y, width float64, s string, style TextStyle)
}
