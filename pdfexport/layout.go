// Package pdfexport lays extracted question records out on PDF pages.
//
// The layout is a single greedy pass: a vertical cursor walks down the page,
// every drawn block advances it by an estimated line count, and a new page
// starts whenever the cursor crosses the bottom safety margin between two
// records. A record is never split across pages; one that does not fit simply
// runs past the bottom edge.
package pdfexport

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"QuizPDF/mytestx"
)

// Page geometry in mm, A4 portrait.
const (
	pageWidth    = 210.0
	leftMargin   = 15.0
	rightMargin  = 15.0
	topMargin    = 20.0
	bottomMargin = 20.0
	labelWidth   = 18.0
	partIndent   = 22.0
	optionIndent = 20.0
	lineHeight   = 6.0
)

// ErrNoRenderable means extraction produced records but none of them had
// usable question text. Distinct from the "no questions found" case, which
// the caller detects before rendering starts.
var ErrNoRenderable = errors.New("no renderable question content")

// Layout holds the tunable layout parameters. The width factors are the
// assumed average glyph width in mm for each text style; they feed the line
// estimation heuristic and can be replaced with real font metrics later
// without touching the layout pass itself.
type Layout struct {
	QuestionSize        float64
	OptionSize          float64
	QuestionWidthFactor float64
	PartWidthFactor     float64
	OptionWidthFactor   float64
	TrailingGap         float64
}

// DefaultLayout returns the layout used when settings carry no overrides.
func DefaultLayout() Layout {
	return Layout{
		QuestionSize:        12,
		OptionSize:          11,
		QuestionWidthFactor: 2.0,
		PartWidthFactor:     2.0,
		OptionWidthFactor:   1.8,
		TrailingGap:         4.0,
	}
}

// Skip records one abandoned record or option and why.
type Skip struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

// Report summarizes one rendering pass. It, not the log, is the
// authoritative record of what was rendered and what was skipped.
type Report struct {
	Rendered int    `json:"rendered"`
	Pages    int    `json:"pages"`
	Skips    []Skip `json:"skips,omitempty"`
}

// cursor is the layout state threaded through rendering: current vertical
// offset, current page height and the running 1-based question counter. It
// is passed by value and returned updated, never shared.
type cursor struct {
	y     float64
	pageH float64
	num   int
}

// Renderer lays question records out onto a Canvas.
type Renderer struct {
	layout Layout
	log    *logrus.Logger
}

// NewRenderer creates a renderer with the given layout parameters.
func NewRenderer(layout Layout) *Renderer {
	return &Renderer{layout: layout, log: logrus.StandardLogger()}
}

// SetLogger overrides the logger used for per-record failures.
func (r *Renderer) SetLogger(log *logrus.Logger) {
	r.log = log
}

// Render draws every record onto the canvas and returns the render report.
// Records whose question text is empty after trimming are skipped without
// consuming a question number. A record that fails mid-render is logged,
// recorded in the report and abandoned; the remaining records still render.
// When nothing at all was rendered the whole pass fails with ErrNoRenderable.
func (r *Renderer) Render(records []*mytestx.Node, canvas Canvas) (*Report, error) {
	report := &Report{}
	cur := cursor{pageH: canvas.AddPage(), y: topMargin}
	report.Pages = 1

	for i, rec := range records {
		raw := mytestx.PlainText(rec)
		if strings.TrimSpace(raw) == "" {
			report.Skips = append(report.Skips, Skip{
				Item:   fmt.Sprintf("record %d", i+1),
				Reason: "empty question text",
			})
			continue
		}

		cur.num++
		next, err := r.renderQuestion(canvas, cur, rec, raw, report)
		cur = next
		if err != nil {
			r.log.WithError(err).WithField("record", i+1).Warn("abandoning question")
			report.Skips = append(report.Skips, Skip{
				Item:   fmt.Sprintf("record %d", i+1),
				Reason: err.Error(),
			})
			continue
		}
		report.Rendered++

		// Page breaks happen strictly between records.
		if cur.y > cur.pageH-bottomMargin {
			cur.pageH = canvas.AddPage()
			cur.y = topMargin
			report.Pages++
		}
	}

	if report.Rendered == 0 {
		return report, ErrNoRenderable
	}
	return report, nil
}

func (r *Renderer) renderQuestion(canvas Canvas, cur cursor, rec *mytestx.Node, raw string, report *Report) (c cursor, err error) {
	c = cur
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("unexpected record shape: %v", p)
		}
	}()

	text := mytestx.Normalize(raw)
	label := fmt.Sprintf("Câu %d:", c.num)
	labelStyle := TextStyle{Size: r.layout.QuestionSize, Bold: true}
	bodyStyle := TextStyle{Size: r.layout.QuestionSize}

	parts := mytestx.SplitParts(text)
	if len(parts) <= 1 {
		canvas.Text(leftMargin, c.y, labelWidth, label, labelStyle)
		bodyX := leftMargin + labelWidth
		bodyW := pageWidth - bodyX - rightMargin
		canvas.Text(bodyX, c.y, bodyW, text, bodyStyle)
		c.y += lineHeight * float64(estimateLines(text, r.layout.QuestionWidthFactor, bodyW))
	} else {
		canvas.Text(leftMargin, c.y, labelWidth, label, labelStyle)
		c.y += lineHeight
		partW := pageWidth - partIndent - rightMargin
		for _, part := range parts {
			if mytestx.HasPartMarker(part) {
				canvas.Text(partIndent, c.y, partW, part, bodyStyle)
				c.y += lineHeight * float64(estimateLines(part, r.layout.PartWidthFactor, partW))
			} else {
				canvas.Text(partIndent, c.y, partW, part, bodyStyle)
				c.y += lineHeight
			}
		}
	}

	c = r.renderOptions(canvas, c, rec, report)
	c.y += r.layout.TrailingGap
	return c, nil
}

// renderOptions draws the answer options. The letter index runs over all
// variants: an option skipped for empty text still consumes its letter.
func (r *Renderer) renderOptions(canvas Canvas, cur cursor, rec *mytestx.Node, report *Report) cursor {
	variants := mytestx.Variants(rec)
	optW := pageWidth - optionIndent - rightMargin

	for i, v := range variants {
		letter := rune('A' + i)
		cur = func(c cursor) (out cursor) {
			out = c
			defer func() {
				if p := recover(); p != nil {
					r.log.WithField("option", string(letter)).Warnf("abandoning option: %v", p)
					report.Skips = append(report.Skips, Skip{
						Item:   fmt.Sprintf("option %c of Câu %d", letter, c.num),
						Reason: fmt.Sprintf("unexpected option shape: %v", p),
					})
				}
			}()

			raw := mytestx.OptionText(v)
			if strings.TrimSpace(raw) == "" {
				report.Skips = append(report.Skips, Skip{
					Item:   fmt.Sprintf("option %c of Câu %d", letter, c.num),
					Reason: "empty option text",
				})
				return c
			}

			line := fmt.Sprintf("%c. %s", letter, mytestx.Normalize(raw))
			style := TextStyle{Size: r.layout.OptionSize}
			if mytestx.IsCorrect(v) {
				line += " ✓"
				style.R, style.G, style.B = 0, 128, 0
			}
			canvas.Text(optionIndent, c.y, optW, line, style)
			c.y += lineHeight * float64(estimateLines(line, r.layout.OptionWidthFactor, optW))
			return c
		}(cur)
	}
	return cur
}

// estimateLines approximates how many wrapped lines text occupies in a box
// boxWidth mm wide, assuming factor mm per glyph. No font metrics are
// consulted; this is the documented substitute for real text measurement.
func estimateLines(text string, factor, boxWidth float64) int {
	if boxWidth <= 0 {
		return 1
	}
	n := int(math.Ceil(float64(utf8.RuneCountInString(text)) * factor / boxWidth))
	if n < 1 {
		n = 1
	}
	return n
}
