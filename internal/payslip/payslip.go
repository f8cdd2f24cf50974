package payslip

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"takehome-engine/internal/model"
	"takehome-engine/internal/money"
)

const (
	marginLeft   = 20.0
	marginTop    = 20.0
	marginRight  = 20.0
	contentWidth = 210.0 - marginLeft - marginRight
	labelWidth   = 110.0
	amountWidth  = contentWidth - labelWidth
)

// Details identifies a payslip. Reference and Issued are printed verbatim.
type Details struct {
	Reference string
	TaxYear   string
	Issued    time.Time
	Input     model.CalculationInput
}

// Render draws a one page A4 payslip for a monthly breakdown and returns
// the PDF bytes.
func Render(d Details, b model.DeductionBreakdown) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Monthly payslip "+d.Reference, false)
	pdf.SetCreationDate(d.Issued)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentWidth, 12, "Monthly Take-Home Pay", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Tax year %s  |  Issued %s", d.TaxYear, d.Issued.Format("2 January 2006")), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentWidth, 6, "Reference "+d.Reference, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	section(pdf, "Your details")
	row(pdf, "Annual salary", money.Format(d.Input.Salary), false)
	row(pdf, "Pension contribution", pensionText(d.Input), false)
	row(pdf, "Student loan", string(d.Input.StudentLoan), false)
	pdf.Ln(4)

	section(pdf, "This month")
	row(pdf, "Gross pay", money.Format(b.GrossMonthly), true)
	row(pdf, "Income tax", money.Format(-b.TaxDeduction), false)
	for _, label := range bandLabels(b.TaxBreakdown) {
		row(pdf, "    "+label, money.Format(b.TaxBreakdown[label]), false)
	}
	row(pdf, "National Insurance", money.Format(-b.NIDeduction), false)
	row(pdf, "Student loan repayment", money.Format(-b.StudentLoanDeduction), false)
	row(pdf, "Pension", money.Format(-b.PensionDeduction), false)
	row(pdf, "Net pay", money.Format(b.NetMonthly), true)

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(contentWidth, 4,
		"Figures are estimates based on published thresholds and are rounded to the nearest penny. "+
			"Band amounts are rounded individually and may not add up exactly to the income tax total.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentWidth, 8, title, "", 1, "L", false, 0, "")
	pdf.SetDrawColor(0, 51, 102)
	pdf.Line(marginLeft, pdf.GetY(), marginLeft+contentWidth, pdf.GetY())
	pdf.Ln(2)
}

func row(pdf *fpdf.Fpdf, label, amount string, bold bool) {
	style := ""
	pdf.SetFillColor(250, 250, 250)
	if bold {
		style = "B"
		pdf.SetFillColor(240, 240, 240)
	}
	pdf.SetFont("Arial", style, 10)
	pdf.SetTextColor(50, 50, 50)
	pdf.CellFormat(labelWidth, 7, pdfText(label), "1", 0, "L", true, 0, "")
	pdf.CellFormat(amountWidth, 7, pdfText(amount), "1", 1, "R", true, 0, "")
}

func pensionText(in model.CalculationInput) string {
	if in.PensionMode == model.PensionPercentage {
		return fmt.Sprintf("%g%% of salary", in.PensionInput)
	}
	return money.Format(in.PensionInput) + " per month"
}

// bandLabels orders band labels basic, higher, additional.
func bandLabels(bands map[string]float64) []string {
	order := map[string]int{model.BandBasic: 0, model.BandHigher: 1, model.BandAdditional: 2}
	labels := make([]string, 0, len(bands))
	for label := range bands {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return order[labels[i]] < order[labels[j]]
	})
	return labels
}

// pdfText converts the pound sign to the Latin-1 byte the core fonts expect.
func pdfText(s string) string {
	return strings.ReplaceAll(s, "£", "\xa3")
}
