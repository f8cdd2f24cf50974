package taxyear

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed 2023-24.yaml
var defaultTableYAML []byte

var ErrInvalidTable = errors.New("invalid tax year table")

// StudentLoanPlan is the repayment threshold and rate of one plan.
type StudentLoanPlan struct {
	Name      string
	Threshold float64
	Rate      float64
}

// Constants holds the thresholds and rates of a single tax year.
// A Constants value is built once by Default or LoadFile and is never
// modified afterwards; plans are only reachable through Plan.
type Constants struct {
	Name string

	// PersonalAllowance is the published allowance. The income tax
	// calculation starts from EffectivePersonalAllowance instead.
	PersonalAllowance          float64
	EffectivePersonalAllowance float64
	TaperThreshold             float64

	BasicRateLimit      float64
	HigherRateStart     float64
	AdditionalRateStart float64
	HigherBandWidth     float64
	BasicRate           float64
	HigherRate          float64
	AdditionalRate      float64

	NIPrimaryThreshold  float64
	NIUpperLimit        float64
	NIMainRateBeforeJan float64
	NIMainRateAfterJan  float64
	NIEffectiveMainRate float64
	NIHigherRate        float64

	plans map[string]StudentLoanPlan
}

type tableDoc struct {
	Name                       string  `yaml:"name"`
	PersonalAllowance          float64 `yaml:"personal_allowance"`
	EffectivePersonalAllowance float64 `yaml:"effective_personal_allowance"`
	TaperThreshold             float64 `yaml:"taper_threshold"`
	IncomeTax                  struct {
		BasicRateLimit      float64 `yaml:"basic_rate_limit"`
		HigherRateStart     float64 `yaml:"higher_rate_start"`
		AdditionalRateStart float64 `yaml:"additional_rate_start"`
		HigherBandWidth     float64 `yaml:"higher_band_width"`
		BasicRate           float64 `yaml:"basic_rate"`
		HigherRate          float64 `yaml:"higher_rate"`
		AdditionalRate      float64 `yaml:"additional_rate"`
	} `yaml:"income_tax"`
	NationalInsurance struct {
		PrimaryThreshold      float64 `yaml:"primary_threshold"`
		UpperLimit            float64 `yaml:"upper_limit"`
		MainRateBeforeJanuary float64 `yaml:"main_rate_before_january"`
		MainRateAfterJanuary  float64 `yaml:"main_rate_after_january"`
		EffectiveMainRate     float64 `yaml:"effective_main_rate"`
		HigherRate            float64 `yaml:"higher_rate"`
	} `yaml:"national_insurance"`
	StudentLoans []struct {
		Plan      string  `yaml:"plan"`
		Threshold float64 `yaml:"threshold"`
		Rate      float64 `yaml:"rate"`
	} `yaml:"student_loans"`
}

// Default returns the embedded 2023/24 table.
func Default() (*Constants, error) {
	return Parse(defaultTableYAML)
}

// MustDefault is Default for tests and other callers that cannot recover
// from a broken embedded table.
func MustDefault() *Constants {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFile reads a table with the same layout as the embedded one.
func LoadFile(path string) (*Constants, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tax year table: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML tax year table.
func Parse(data []byte) (*Constants, error) {
	var doc tableDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}

	c := &Constants{
		Name:                       doc.Name,
		PersonalAllowance:          doc.PersonalAllowance,
		EffectivePersonalAllowance: doc.EffectivePersonalAllowance,
		TaperThreshold:             doc.TaperThreshold,
		BasicRateLimit:             doc.IncomeTax.BasicRateLimit,
		HigherRateStart:            doc.IncomeTax.HigherRateStart,
		AdditionalRateStart:        doc.IncomeTax.AdditionalRateStart,
		HigherBandWidth:            doc.IncomeTax.HigherBandWidth,
		BasicRate:                  doc.IncomeTax.BasicRate,
		HigherRate:                 doc.IncomeTax.HigherRate,
		AdditionalRate:             doc.IncomeTax.AdditionalRate,
		NIPrimaryThreshold:         doc.NationalInsurance.PrimaryThreshold,
		NIUpperLimit:               doc.NationalInsurance.UpperLimit,
		NIMainRateBeforeJan:        doc.NationalInsurance.MainRateBeforeJanuary,
		NIMainRateAfterJan:         doc.NationalInsurance.MainRateAfterJanuary,
		NIEffectiveMainRate:        doc.NationalInsurance.EffectiveMainRate,
		NIHigherRate:               doc.NationalInsurance.HigherRate,
		plans:                      make(map[string]StudentLoanPlan, len(doc.StudentLoans)),
	}

	for _, sl := range doc.StudentLoans {
		if sl.Plan == "" {
			return nil, fmt.Errorf("%w: student loan plan without a name", ErrInvalidTable)
		}
		if _, dup := c.plans[sl.Plan]; dup {
			return nil, fmt.Errorf("%w: duplicate student loan plan %q", ErrInvalidTable, sl.Plan)
		}
		c.plans[sl.Plan] = StudentLoanPlan{Name: sl.Plan, Threshold: sl.Threshold, Rate: sl.Rate}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Constants) validate() error {
	switch {
	case c.EffectivePersonalAllowance <= 0 || c.PersonalAllowance <= 0:
		return fmt.Errorf("%w: personal allowance must be positive", ErrInvalidTable)
	case c.TaperThreshold <= 0:
		return fmt.Errorf("%w: taper threshold must be positive", ErrInvalidTable)
	case c.BasicRateLimit <= 0 || c.HigherBandWidth <= 0:
		return fmt.Errorf("%w: band widths must be positive", ErrInvalidTable)
	case c.NIUpperLimit < c.NIPrimaryThreshold:
		return fmt.Errorf("%w: NI upper limit below primary threshold", ErrInvalidTable)
	}
	return nil
}

// Plan looks up a student loan plan by its canonical name.
func (c *Constants) Plan(name string) (StudentLoanPlan, bool) {
	p, ok := c.plans[name]
	return p, ok
}

// PlanNames returns the canonical plan names in sorted order. The index
// page lists them as the student loan choices.
func (c *Constants) PlanNames() []string {
	names := make([]string, 0, len(c.plans))
	for name := range c.plans {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StatutoryAllowance applies the high-income taper to the published
// PersonalAllowance. The income tax path does not use it.
func (c *Constants) StatutoryAllowance(income float64) float64 {
	return TaperAllowance(c.PersonalAllowance, c.TaperThreshold, income)
}

// TaperAllowance reduces allowance by £1 for every whole £2 of income over
// threshold, never below zero.
func TaperAllowance(allowance, threshold, income float64) float64 {
	if income <= threshold {
		return allowance
	}
	reduction := math.Min(math.Floor((income-threshold)/2), allowance)
	return math.Max(0, allowance-reduction)
}
