package model

import "strings"

type PensionMode string

const (
	PensionPercentage   PensionMode = "percentage"
	PensionFixedMonthly PensionMode = "fixed"
)

// StudentLoanPlan values match the plan names of the tax year table.
type StudentLoanPlan string

const (
	StudentLoanNone         StudentLoanPlan = "None"
	StudentLoanPlan1        StudentLoanPlan = "Plan 1"
	StudentLoanPlan2        StudentLoanPlan = "Plan 2"
	StudentLoanPlan4        StudentLoanPlan = "Plan 4"
	StudentLoanPostgraduate StudentLoanPlan = "Postgraduate"
)

var knownPlans = []StudentLoanPlan{
	StudentLoanPlan1,
	StudentLoanPlan2,
	StudentLoanPlan4,
	StudentLoanPostgraduate,
}

// ParseStudentLoanPlan maps a user supplied plan name onto a known plan,
// ignoring case and spaces ("plan2", "Plan 2"). Anything else is returned
// unchanged and later treated as no loan.
func ParseStudentLoanPlan(s string) StudentLoanPlan {
	key := planKey(s)
	if key == "" || key == planKey(string(StudentLoanNone)) {
		return StudentLoanNone
	}
	for _, p := range knownPlans {
		if key == planKey(string(p)) {
			return p
		}
	}
	return StudentLoanPlan(s)
}

func planKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

// CalculationInput is a validated request, ready for the calculator.
type CalculationInput struct {
	Salary       float64
	PensionInput float64
	PensionMode  PensionMode
	StudentLoan  StudentLoanPlan
}
