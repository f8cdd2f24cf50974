package model

// Envelope is the JSON shape of every /calculate response. Failures are
// reported with Success false and HTTP 200.
type Envelope struct {
	Success bool                `json:"success"`
	Result  *DeductionBreakdown `json:"result,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// DeductionBreakdown holds monthly figures rounded to pennies.
type DeductionBreakdown struct {
	GrossMonthly         float64            `json:"gross_monthly"`
	TaxDeduction         float64            `json:"tax_deduction"`
	NIDeduction          float64            `json:"ni_deduction"`
	StudentLoanDeduction float64            `json:"student_loan_deduction"`
	PensionDeduction     float64            `json:"pension_deduction"`
	NetMonthly           float64            `json:"net_monthly"`
	TaxBreakdown         map[string]float64 `json:"tax_breakdown"`
}

const (
	BandBasic      = "Basic Rate (20%)"
	BandHigher     = "Higher Rate (40%)"
	BandAdditional = "Additional Rate (45%)"
)
