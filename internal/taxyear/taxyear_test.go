package taxyear

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTable(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default table: %v", err)
	}

	if c.Name != "2023/24" {
		t.Fatalf("expected 2023/24, got %s", c.Name)
	}
	if c.PersonalAllowance != 12570 {
		t.Fatalf("expected personal allowance 12570, got %v", c.PersonalAllowance)
	}
	if c.EffectivePersonalAllowance != 12579 {
		t.Fatalf("expected effective allowance 12579, got %v", c.EffectivePersonalAllowance)
	}
	if c.HigherRateStart != c.PersonalAllowance+c.BasicRateLimit {
		t.Fatalf("higher rate start %v does not follow allowance + basic limit", c.HigherRateStart)
	}
	if c.HigherBandWidth != c.AdditionalRateStart-c.BasicRateLimit {
		t.Fatalf("higher band width %v does not match table", c.HigherBandWidth)
	}
	if c.NIEffectiveMainRate != 0.08 || c.NIHigherRate != 0.02 {
		t.Fatalf("unexpected NI rates %v / %v", c.NIEffectiveMainRate, c.NIHigherRate)
	}
}

func TestDefaultPlans(t *testing.T) {
	c := MustDefault()

	tests := []struct {
		name      string
		threshold float64
		rate      float64
	}{
		{"Plan 1", 22015, 0.09},
		{"Plan 2", 27295, 0.09},
		{"Plan 4", 27660, 0.09},
		{"Postgraduate", 21000, 0.06},
	}

	for _, tc := range tests {
		p, ok := c.Plan(tc.name)
		if !ok {
			t.Fatalf("plan %s missing", tc.name)
		}
		if p.Threshold != tc.threshold || p.Rate != tc.rate {
			t.Fatalf("%s: expected %v @ %v, got %v @ %v", tc.name, tc.threshold, tc.rate, p.Threshold, p.Rate)
		}
	}

	if _, ok := c.Plan("None"); ok {
		t.Fatal("None must not be a plan")
	}
	if got := len(c.PlanNames()); got != 4 {
		t.Fatalf("expected 4 plans, got %d", got)
	}
}

func TestParseRejectsBrokenTables(t *testing.T) {
	tests := map[string]string{
		"not yaml":       "name: [",
		"no allowance":   "name: x\ntaper_threshold: 100000\n",
		"duplicate plan": string(defaultTableYAML) + "  - plan: \"Plan 1\"\n    threshold: 1\n    rate: 0.1\n",
		"unnamed plan":   string(defaultTableYAML) + "  - threshold: 1\n    rate: 0.1\n",
	}

	for name, doc := range tests {
		if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalidTable) {
			t.Fatalf("%s: expected ErrInvalidTable, got %v", name, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	if err := os.WriteFile(path, defaultTableYAML, 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if c.EffectivePersonalAllowance != 12579 {
		t.Fatalf("expected 12579, got %v", c.EffectivePersonalAllowance)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestTaperAllowance(t *testing.T) {
	tests := []struct {
		income   float64
		expected float64
	}{
		{50000, 12579},
		{100000, 12579},
		{100001, 12579}, // floor(0.5) = 0
		{100002, 12578},
		{110000, 7579},
		{125157, 1},
		{125158, 0},
		{200000, 0},
	}

	for _, tc := range tests {
		if got := TaperAllowance(12579, 100000, tc.income); got != tc.expected {
			t.Fatalf("income %v: expected %v, got %v", tc.income, tc.expected, got)
		}
	}
}

func TestStatutoryAllowanceUsesPublishedFigure(t *testing.T) {
	c := MustDefault()

	if got := c.StatutoryAllowance(30000); got != 12570 {
		t.Fatalf("expected 12570, got %v", got)
	}
	if got := c.StatutoryAllowance(125140); got != 0 {
		t.Fatalf("expected allowance fully removed at 125140, got %v", got)
	}
}
