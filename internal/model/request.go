package model

import json "github.com/goccy/go-json"

// CalculationRequest is the body of POST /calculate and POST /payslip.
// Fields stay raw until validation decides how to coerce them.
type CalculationRequest struct {
	Salary      json.RawMessage `json:"salary"`
	Pension     json.RawMessage `json:"pension"`
	PensionType json.RawMessage `json:"pensionType"`
	StudentLoan json.RawMessage `json:"studentLoan"`
}
