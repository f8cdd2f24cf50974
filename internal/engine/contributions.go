package engine

import (
	"math"

	"takehome-engine/internal/model"
)

// NationalInsurance is the monthly Class 1 employee contribution on the
// full salary. Pension contributions do not reduce it.
func (calc *Calculator) NationalInsurance(salary float64) float64 {
	if salary <= calc.c.NIPrimaryThreshold {
		return 0
	}

	mainBand := math.Min(salary, calc.c.NIUpperLimit) - calc.c.NIPrimaryThreshold
	higherBand := math.Max(0, salary-calc.c.NIUpperLimit)

	annual := mainBand*calc.c.NIEffectiveMainRate + higherBand*calc.c.NIHigherRate
	return annual / 12
}

// StudentLoan is the monthly repayment for plan. Unknown plans repay
// nothing.
func (calc *Calculator) StudentLoan(salary float64, plan model.StudentLoanPlan) float64 {
	if plan == model.StudentLoanNone {
		return 0
	}
	p, ok := calc.c.Plan(string(plan))
	if !ok || salary <= p.Threshold {
		return 0
	}
	return (salary - p.Threshold) * p.Rate / 12
}
