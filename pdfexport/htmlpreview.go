package pdfexport

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"QuizPDF/mytestx"
)

// HTML renders the question records as a printable HTML document. It is the
// source for the Chrome-based export path and applies the same skip rules as
// the PDF layout: records without question text are not numbered, options
// keep their letter even when an earlier slot was skipped.
func HTML(records []*mytestx.Node) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html lang="vi"><head><meta charset="utf-8"><style>
body { font-family: "DejaVu Sans", sans-serif; margin: 20mm 15mm; font-size: 12pt; }
.question { margin-bottom: 4mm; }
.label { font-weight: bold; }
.part, .option { margin-left: 7mm; }
.correct { color: #008000; }
</style></head><body>
`)

	num := 0
	for _, rec := range records {
		text := mytestx.Normalize(mytestx.PlainText(rec))
		if text == "" {
			continue
		}
		num++
		b.WriteString(`<div class="question">`)

		parts := mytestx.SplitParts(text)
		if len(parts) <= 1 {
			fmt.Fprintf(&b, `<span class="label">Câu %d:</span> %s`, num, html.EscapeString(text))
		} else {
			fmt.Fprintf(&b, `<div class="label">Câu %d:</div>`, num)
			for _, part := range parts {
				fmt.Fprintf(&b, `<div class="part">%s</div>`, html.EscapeString(part))
			}
		}

		for i, v := range mytestx.Variants(rec) {
			optText := mytestx.Normalize(mytestx.OptionText(v))
			if optText == "" {
				continue
			}
			class := "option"
			marker := ""
			if mytestx.IsCorrect(v) {
				class = "option correct"
				marker = " ✓"
			}
			fmt.Fprintf(&b, `<div class="%s">%c. %s%s</div>`, class, 'A'+i, html.EscapeString(optText), marker)
		}
		b.WriteString("</div>\n")
	}

	b.WriteString("</body></html>\n")
	return b.String()
}

// ChromeRenderer prints the HTML rendition to PDF through headless Chrome.
// It is the alternate, high-fidelity export path; the fpdf layout is the
// primary one.
type ChromeRenderer struct {
	timeout time.Duration
}

// NewChromeRenderer creates a renderer with a 30 second conversion timeout.
func NewChromeRenderer() *ChromeRenderer {
	return &ChromeRenderer{timeout: 30 * time.Second}
}

// PrintToPDF loads htmlContent in headless Chrome and returns the printed
// PDF bytes.
func (r *ChromeRenderer) PrintToPDF(htmlContent string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, r.timeout)
	defer cancelTimeout()

	htmlFile := filepath.Join(os.TempDir(), "quizpdf_preview_"+time.Now().Format("20060102_150405")+".html")
	if err := os.WriteFile(htmlFile, []byte(htmlContent), 0644); err != nil {
		return nil, fmt.Errorf("failed to create temp HTML file: %w", err)
	}
	defer os.Remove(htmlFile)

	var pdf []byte
	err := chromedp.Run(taskCtx,
		chromedp.Navigate("file:///"+filepath.ToSlash(htmlFile)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(500*time.Millisecond), // wait for fonts
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 inches
				WithPaperHeight(11.69).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print via Chrome: %w", err)
	}
	return pdf, nil
}
