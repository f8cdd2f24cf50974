package validation

import (
	"testing"

	"takehome-engine/internal/model"
)

func TestParseRequestDefaults(t *testing.T) {
	in, issues := ParseRequest([]byte(`{"salary": 30000}`))
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}

	want := model.CalculationInput{
		Salary:      30000,
		PensionMode: model.PensionPercentage,
		StudentLoan: model.StudentLoanNone,
	}
	if in != want {
		t.Fatalf("expected %+v, got %+v", want, in)
	}
}

func TestParseRequestAllFields(t *testing.T) {
	body := `{"salary": "150000", "pension": "250.50", "pensionType": "amount", "studentLoan": "Plan 2"}`

	in, issues := ParseRequest([]byte(body))
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}

	want := model.CalculationInput{
		Salary:       150000,
		PensionInput: 250.5,
		PensionMode:  model.PensionFixedMonthly,
		StudentLoan:  model.StudentLoanPlan2,
	}
	if in != want {
		t.Fatalf("expected %+v, got %+v", want, in)
	}
}

func TestParseRequestCoercion(t *testing.T) {
	tests := []struct {
		name string
		body string
		want model.CalculationInput
	}{
		{
			name: "padded numeric string",
			body: `{"salary": " 42000.5 ", "pension": 3}`,
			want: model.CalculationInput{Salary: 42000.5, PensionInput: 3, PensionMode: model.PensionPercentage, StudentLoan: model.StudentLoanNone},
		},
		{
			name: "nulls are defaults",
			body: `{"salary": 1, "pension": null, "pensionType": null, "studentLoan": null}`,
			want: model.CalculationInput{Salary: 1, PensionMode: model.PensionPercentage, StudentLoan: model.StudentLoanNone},
		},
		{
			name: "compact plan name",
			body: `{"salary": 1, "studentLoan": "plan1"}`,
			want: model.CalculationInput{Salary: 1, PensionMode: model.PensionPercentage, StudentLoan: model.StudentLoanPlan1},
		},
		{
			name: "unknown plan kept",
			body: `{"salary": 1, "studentLoan": "Plan 5"}`,
			want: model.CalculationInput{Salary: 1, PensionMode: model.PensionPercentage, StudentLoan: model.StudentLoanPlan("Plan 5")},
		},
		{
			name: "negative salary passes through",
			body: `{"salary": -100}`,
			want: model.CalculationInput{Salary: -100, PensionMode: model.PensionPercentage, StudentLoan: model.StudentLoanNone},
		},
		{
			name: "unknown fields ignored",
			body: `{"salary": 1, "taxYear": "2024/25"}`,
			want: model.CalculationInput{Salary: 1, PensionMode: model.PensionPercentage, StudentLoan: model.StudentLoanNone},
		},
	}

	for _, tc := range tests {
		in, issues := ParseRequest([]byte(tc.body))
		if len(issues) != 0 {
			t.Fatalf("%s: expected no issues, got %v", tc.name, issues)
		}
		if in != tc.want {
			t.Fatalf("%s: expected %+v, got %+v", tc.name, tc.want, in)
		}
	}
}

func TestParseRequestPensionTypeIsExact(t *testing.T) {
	tests := []struct {
		raw  string
		want model.PensionMode
	}{
		{`"percentage"`, model.PensionPercentage},
		{`"Percentage"`, model.PensionFixedMonthly},
		{`"PERCENTAGE"`, model.PensionFixedMonthly},
		{`" percentage "`, model.PensionFixedMonthly},
		{`"amount"`, model.PensionFixedMonthly},
		{`""`, model.PensionFixedMonthly},
		{`1`, model.PensionFixedMonthly},
		{`false`, model.PensionFixedMonthly},
		{`{"type": "percentage"}`, model.PensionFixedMonthly},
	}

	for _, tc := range tests {
		in, issues := ParseRequest([]byte(`{"salary": 30000, "pension": 5, "pensionType": ` + tc.raw + `}`))
		if len(issues) != 0 {
			t.Fatalf("%s: expected no issues, got %v", tc.raw, issues)
		}
		if in.PensionMode != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.raw, tc.want, in.PensionMode)
		}
	}
}

func TestParseRequestIssues(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
		code  string
	}{
		{"empty body", ``, "", model.CodeMalformedBody},
		{"broken json", `{"salary": `, "", model.CodeMalformedBody},
		{"array body", `[30000]`, "", model.CodeMalformedBody},
		{"missing salary", `{}`, "salary", model.CodeRequired},
		{"null body", `null`, "salary", model.CodeRequired},
		{"null salary", `{"salary": null}`, "salary", model.CodeRequired},
		{"text salary", `{"salary": "lots"}`, "salary", model.CodeNotNumeric},
		{"empty salary", `{"salary": ""}`, "salary", model.CodeNotNumeric},
		{"bool salary", `{"salary": true}`, "salary", model.CodeNotNumeric},
		{"object salary", `{"salary": {"amount": 1}}`, "salary", model.CodeNotNumeric},
		{"nan salary", `{"salary": "NaN"}`, "salary", model.CodeNotFinite},
		{"infinite salary", `{"salary": "inf"}`, "salary", model.CodeNotFinite},
		{"text pension", `{"salary": 1, "pension": "five"}`, "pension", model.CodeNotNumeric},
		{"list student loan", `{"salary": 1, "studentLoan": ["Plan 1"]}`, "studentLoan", model.CodeNotString},
	}

	for _, tc := range tests {
		_, issues := ParseRequest([]byte(tc.body))
		if len(issues) != 1 {
			t.Fatalf("%s: expected 1 issue, got %v", tc.name, issues)
		}
		if issues[0].Field != tc.field || issues[0].Code != tc.code {
			t.Fatalf("%s: expected %s/%s, got %s/%s", tc.name, tc.field, tc.code, issues[0].Field, issues[0].Code)
		}
		if issues[0].Message == "" {
			t.Fatalf("%s: expected a message", tc.name)
		}
	}
}

func TestParseRequestCollectsEveryIssue(t *testing.T) {
	_, issues := ParseRequest([]byte(`{"pension": "x", "pensionType": false, "studentLoan": 2}`))
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %v", issues)
	}

	got := model.JoinIssues(issues)
	want := `salary: is required; pension: must be a number, got "x"; studentLoan: must be a string`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
