package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"campus-waterworks/internal/leakage"
	"campus-waterworks/internal/reconcile"
)

// RunSummary is the material included in the end-of-run PDF report.
type RunSummary struct {
	GeneratedAt    time.Time
	ValidRows      int
	DroppedRows    int
	UnmappedNames  int
	Reconciliation []reconcile.Result
	TopRates       []leakage.Rate
	RateStats      *leakage.Stats
}

// BuildRunSummaryPDF renders a minimal PDF summarizing a batch run.
func BuildRunSummaryPDF(s RunSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Campus Water Analysis Summary")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", s.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Valid readings: %d", s.ValidRows))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Dropped on hierarchy join: %d", s.DroppedRows))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Display names without a zone: %d", s.UnmappedNames))
	pdf.Ln(8)

	if len(s.Reconciliation) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(30, 6, "Prefix", "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, "Tier 1 Total", "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, "Tier 2 Total", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "Error (%)", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, r := range s.Reconciliation {
			pdf.CellFormat(30, 6, r.Prefix, "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", r.FirstTierTotal), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", r.SecondTierTotal), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", r.ErrorPercent()), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	if s.RateStats != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Leakage ranking: %d meters, mean %.2f%%, median %.2f%%, max %.2f%%, min %.2f%%",
			s.RateStats.Count, s.RateStats.Mean, s.RateStats.Median, s.RateStats.Max, s.RateStats.Min))
		pdf.Ln(8)
	}

	if len(s.TopRates) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(80, 6, "Meter", "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, "Leak Rate (%)", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, r := range s.TopRates {
			pdf.CellFormat(80, 6, r.Code, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", r.Rate), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
