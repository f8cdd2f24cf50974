package engine

import (
	"takehome-engine/internal/model"
	"takehome-engine/internal/money"
	"takehome-engine/internal/taxyear"
)

// Calculator turns a salary into monthly deductions for one tax year.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	c *taxyear.Constants
}

func New(c *taxyear.Constants) *Calculator {
	return &Calculator{c: c}
}

// Constants returns the table the calculator was built with.
func (calc *Calculator) Constants() *taxyear.Constants {
	return calc.c
}

// Calculate computes the monthly breakdown. Intermediate values keep full
// precision; only the returned figures are rounded to pennies.
func (calc *Calculator) Calculate(in model.CalculationInput) model.DeductionBreakdown {
	annualPension := AnnualPension(in)

	annualTax, bands := calc.IncomeTax(in.Salary, annualPension)
	monthlyTax := annualTax / 12
	monthlyPension := annualPension / 12
	monthlyNI := calc.NationalInsurance(in.Salary)
	monthlyLoan := calc.StudentLoan(in.Salary, in.StudentLoan)

	gross := in.Salary / 12
	net := gross - monthlyTax - monthlyNI - monthlyLoan - monthlyPension

	return model.DeductionBreakdown{
		GrossMonthly:         money.Round2(gross),
		TaxDeduction:         money.Round2(monthlyTax),
		NIDeduction:          money.Round2(monthlyNI),
		StudentLoanDeduction: money.Round2(monthlyLoan),
		PensionDeduction:     money.Round2(monthlyPension),
		NetMonthly:           money.Round2(net),
		TaxBreakdown:         bands,
	}
}

// AnnualPension converts the pension input into a yearly contribution.
// A percentage applies to the salary; any other mode is a fixed monthly
// amount.
func AnnualPension(in model.CalculationInput) float64 {
	if in.PensionMode == model.PensionPercentage {
		return in.Salary * (in.PensionInput / 100)
	}
	return in.PensionInput * 12
}
