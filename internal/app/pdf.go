package app

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// writeSummaryPDF renders the summary as a one-page PDF: title heading,
// source line (clickable when it is a URL), then the numbered points.
func writeSummaryPDF(sum Summary, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	title := sum.Title
	if title == "" {
		title = "Summary"
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, title, "", "L", false)
	pdf.SetFont("Helvetica", "", 11)

	if sum.Source != "" {
		pdf.SetTextColor(90, 90, 90)
		if strings.HasPrefix(sum.Source, "http://") || strings.HasPrefix(sum.Source, "https://") {
			pdf.WriteLinkString(5, sum.Source, sum.Source)
			pdf.Ln(5)
		} else {
			pdf.MultiCell(0, 5, sum.Source, "", "L", false)
		}
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)

	for i, p := range sum.Points {
		pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s", i+1, p), "", "L", false)
		pdf.Ln(1)
	}

	return pdf.OutputFileAndClose(outPath)
}
