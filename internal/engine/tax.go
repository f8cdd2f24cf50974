package engine

import (
	"math"

	"takehome-engine/internal/model"
	"takehome-engine/internal/money"
	"takehome-engine/internal/taxyear"
)

// PersonalAllowance is the income tax allowance for the given salary after
// pension. It starts from the effective allowance, not the published one.
func (calc *Calculator) PersonalAllowance(taxableSalary float64) float64 {
	return taxyear.TaperAllowance(calc.c.EffectivePersonalAllowance, calc.c.TaperThreshold, taxableSalary)
}

// Bands splits taxable income into basic, higher and additional widths.
// The three widths always add up to taxableIncome when it is non-negative.
func (calc *Calculator) Bands(taxableIncome float64) (basic, higher, additional float64) {
	basic = math.Min(taxableIncome, calc.c.BasicRateLimit)
	higher = math.Min(math.Max(0, taxableIncome-calc.c.BasicRateLimit), calc.c.HigherBandWidth)
	additional = math.Max(0, taxableIncome-calc.c.BasicRateLimit-calc.c.HigherBandWidth)
	return basic, higher, additional
}

// IncomeTax returns the unrounded annual tax and the monthly tax per band,
// each band rounded to pennies. Bands with nothing in them are omitted.
// The band figures are for display; they need not add up to annual/12.
func (calc *Calculator) IncomeTax(salary, annualPension float64) (float64, map[string]float64) {
	taxableSalary := math.Max(0, salary-annualPension)
	taxableIncome := math.Max(0, taxableSalary-calc.PersonalAllowance(taxableSalary))

	basic, higher, additional := calc.Bands(taxableIncome)

	breakdown := make(map[string]float64, 3)
	var tax float64

	for _, b := range []struct {
		label string
		width float64
		rate  float64
	}{
		{model.BandBasic, basic, calc.c.BasicRate},
		{model.BandHigher, higher, calc.c.HigherRate},
		{model.BandAdditional, additional, calc.c.AdditionalRate},
	} {
		if b.width <= 0 {
			continue
		}
		bandTax := b.width * b.rate
		tax += bandTax
		breakdown[b.label] = money.Round2(bandTax / 12)
	}

	return tax, breakdown
}
