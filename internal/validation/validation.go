package validation

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"takehome-engine/internal/model"
)

var jsonNull = []byte("null")

// ParseRequest decodes a request body into a CalculationInput. The input is
// only usable when no issues are returned.
//
// salary is required and may be a JSON number or a numeric string. pension
// defaults to 0, pensionType to percentage and studentLoan to None; an
// explicit null counts as absent for those optional fields. pensionType is
// compared exactly, so "Percentage" selects a fixed monthly amount.
func ParseRequest(body []byte) (model.CalculationInput, []model.ValidationIssue) {
	var req model.CalculationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return model.CalculationInput{}, []model.ValidationIssue{{
			Code:    model.CodeMalformedBody,
			Message: "request body must be a JSON object: " + err.Error(),
		}}
	}

	v := &validator{}
	in := model.CalculationInput{
		PensionMode: model.PensionPercentage,
		StudentLoan: model.StudentLoanNone,
	}

	if isAbsent(req.Salary) {
		v.add("salary", model.CodeRequired, "is required")
	} else if salary, ok := v.number("salary", req.Salary); ok {
		in.Salary = salary
	}

	if !isAbsent(req.Pension) {
		if pension, ok := v.number("pension", req.Pension); ok {
			in.PensionInput = pension
		}
	}

	// Anything other than the exact string "percentage", including a
	// non-string, is a fixed monthly amount.
	if !isAbsent(req.PensionType) && !isPercentage(req.PensionType) {
		in.PensionMode = model.PensionFixedMonthly
	}

	if !isAbsent(req.StudentLoan) {
		if s, ok := v.str("studentLoan", req.StudentLoan); ok {
			in.StudentLoan = model.ParseStudentLoanPlan(s)
		}
	}

	if len(v.issues) > 0 {
		return model.CalculationInput{}, v.issues
	}
	return in, nil
}

type validator struct {
	issues []model.ValidationIssue
}

func (v *validator) add(field, code, message string) {
	v.issues = append(v.issues, model.ValidationIssue{Field: field, Code: code, Message: message})
}

// number accepts a JSON number or a string holding one.
func (v *validator) number(field string, raw json.RawMessage) (float64, bool) {
	text := string(bytes.TrimSpace(raw))
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			v.add(field, model.CodeNotNumeric, "must be a number")
			return 0, false
		}
		text = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		v.add(field, model.CodeNotNumeric, "must be a number, got "+strconv.Quote(truncate(text, 32)))
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		v.add(field, model.CodeNotFinite, "must be a finite number")
		return 0, false
	}
	return f, true
}

func (v *validator) str(field string, raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		v.add(field, model.CodeNotString, "must be a string")
		return "", false
	}
	return s, true
}

func isPercentage(raw json.RawMessage) bool {
	var s string
	return json.Unmarshal(raw, &s) == nil && s == string(model.PensionPercentage)
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
