package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/philipparndt/printplate/internal/config"
	qrcode "github.com/skip2/go-qrcode"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	qrSize       = 30.0
	rowHeight    = 7.0
	swatchSize   = 4.0
)

type column struct {
	title string
	width float64
	align string
}

var columns = []column{
	{"", 8, "C"},
	{"#", 10, "R"},
	{"Model", 52, "L"},
	{"Colour", 20, "L"},
	{"Scale", 16, "R"},
	{"Size (mm)", 34, "R"},
	{"Layers", 14, "R"},
	{"Min", 12, "R"},
	{"Cost", 14, "R"},
}

// ExportPDF writes the quote as a one-table PDF. Each line starts with a
// swatch of the model colour; a QR code in the header carries the quote
// summary as JSON.
func ExportPDF(path string, q Quote, palette config.Palette) error {
	if len(q.Lines) == 0 {
		return ErrEmptyQuote
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	if err := renderHeader(pdf, q, tr); err != nil {
		return err
	}

	y := marginTop + qrSize + 8
	y = renderTableHeader(pdf, y)
	for i, line := range q.Lines {
		if y+rowHeight > pageHeight-marginBottom-rowHeight {
			pdf.AddPage()
			y = renderTableHeader(pdf, marginTop)
		}
		renderLine(pdf, y, line, q, palette, tr, i%2 == 1)
		y += rowHeight
	}
	renderTotals(pdf, y, q, tr)
	renderPreview(pdf, y+rowHeight*2, q)

	return pdf.OutputFileAndClose(path)
}

func renderHeader(pdf *fpdf.Fpdf, q Quote, tr func(string) string) error {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight-qrSize, 10, "Print quote "+q.ID, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+12)
	pdf.CellFormat(100, 5, "Created: "+q.Created.Format("2006-01-02 15:04"), "", 0, "L", false, 0, "")
	pdf.SetXY(marginLeft, marginTop+17)
	rate := tr(fmt.Sprintf("Rate: %s per started 15 minutes", q.FormatCost(q.HourlyRate)))
	pdf.CellFormat(120, 5, rate, "", 0, "L", false, 0, "")

	data, err := json.Marshal(q.summary())
	if err != nil {
		return fmt.Errorf("failed to marshal quote summary: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := "qr_" + q.ID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, pageWidth-marginRight-qrSize, marginTop, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

func renderTableHeader(pdf *fpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetDrawColor(180, 180, 180)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	for _, c := range columns {
		pdf.CellFormat(c.width, rowHeight, c.title, "B", 0, c.align, true, 0, "")
	}
	return y + rowHeight
}

func renderLine(pdf *fpdf.Fpdf, y float64, line Line, q Quote, palette config.Palette, tr func(string) string, shaded bool) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(245, 245, 245)
	if line.Oversize {
		pdf.SetTextColor(200, 0, 0)
	} else {
		pdf.SetTextColor(0, 0, 0)
	}

	cells := []string{
		"",
		fmt.Sprintf("%d", line.ModelID),
		truncate(pdf, tr(line.Name), columns[2].width-2),
		line.Color,
		strconv.FormatFloat(line.Scale, 'f', -1, 64)+"%",
		fmt.Sprintf("%.1f x %.1f x %.1f", line.Length, line.Width, line.Height),
		fmt.Sprintf("%d", line.Layers),
		fmt.Sprintf("%d", line.Minutes),
		tr(q.FormatCost(line.Cost)),
	}

	pdf.SetXY(marginLeft, y)
	for i, c := range columns {
		pdf.CellFormat(c.width, rowHeight, cells[i], "", 0, c.align, shaded, 0, "")
	}

	swatch := palette.RGBA(line.Color)
	pdf.SetFillColor(int(swatch.R), int(swatch.G), int(swatch.B))
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.2)
	pdf.Rect(marginLeft+(columns[0].width-swatchSize)/2, y+(rowHeight-swatchSize)/2, swatchSize, swatchSize, "FD")
}

func renderTotals(pdf *fpdf.Fpdf, y float64, q Quote, tr func(string) string) {
	width := 0.0
	for _, c := range columns[:len(columns)-2] {
		width += c.width
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(180, 180, 180)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(width, rowHeight, fmt.Sprintf("Total (%d models)", len(q.Lines)), "T", 0, "L", false, 0, "")
	pdf.CellFormat(columns[len(columns)-2].width, rowHeight, fmt.Sprintf("%d", q.TotalMinutes), "T", 0, "R", false, 0, "")
	pdf.CellFormat(columns[len(columns)-1].width, rowHeight, tr(q.FormatCost(q.TotalCost)), "T", 0, "R", false, 0, "")
}

// renderPreview places the plate image below the table, on a new page when
// the rest of the page is too small
func renderPreview(pdf *fpdf.Fpdf, y float64, q Quote) {
	if len(q.Preview) == 0 {
		return
	}

	width := pageWidth - marginLeft - marginRight
	height := width * PreviewHeight / PreviewWidth
	if y+height > pageHeight-marginBottom {
		pdf.AddPage()
		y = marginTop
	}

	imgName := "preview_" + q.ID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(q.Preview))
	pdf.ImageOptions(imgName, marginLeft, y, width, height, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

// truncate shortens text with an ellipsis until it fits width
func truncate(pdf *fpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	for len(text) > 0 && pdf.GetStringWidth(text+"...") > width {
		text = text[:len(text)-1]
	}
	return text + "..."
}
