package forecast

import (
	"github.com/shopspring/decimal"
)

// RetirementAge is the last age a projection covers.
const RetirementAge = 65

// FIMultiple is the "25x annual spending" financial independence threshold.
const FIMultiple = 25

// Tier is a preset annual spending level drawn as a comparison target.
type Tier struct {
	Name        string  `json:"name"`
	AnnualSpend float64 `json:"annualSpend"`
}

// Tiers are the preset spending levels, from leanest to most comfortable.
var Tiers = []Tier{
	{Name: "Lean", AnnualSpend: 600000},
	{Name: "Barista", AnnualSpend: 800000},
	{Name: "Regular", AnnualSpend: 1000000},
	{Name: "Fat", AnnualSpend: 2500000},
}

// ProjectionInput are the parameters of a projection. Rates are percentages.
type ProjectionInput struct {
	Age              int     `json:"age"`
	Investable       float64 `json:"investable"`
	RealEstate       float64 `json:"realEstate"`
	AnnualSavings    float64 `json:"annualSavings"`
	ReturnRate       float64 `json:"returnRate"`
	RealEstateGrowth float64 `json:"realEstateGrowth"`
	Inflation        float64 `json:"inflation"`
	TargetExpense    float64 `json:"targetExpense"`
	GrowRealEstate   bool    `json:"growRealEstate"`
}

// TierCurve is the inflation adjusted FI target of one tier, per projected age.
type TierCurve struct {
	Tier
	Target []float64 `json:"target"`
}

// Projection holds one point per integer age from the starting age to RetirementAge.
type Projection struct {
	Ages   []int       `json:"ages"`
	Wealth []float64   `json:"wealth"`
	Tiers  []TierCurve `json:"tiers"`
	Custom []float64   `json:"custom"`
	// FIAge is the first age whose projected wealth reaches the custom target, if any.
	FIAge *int `json:"fiAge"`
}

// Project simulates the yearly growth of investable capital and real estate and
// the inflation of each spending target.
//
// Every year investable capital receives the annual savings and then grows by
// ReturnRate; real estate grows by RealEstateGrowth only when GrowRealEstate is
// set and it has a positive value. Wealth is recorded after each update. The
// curve always contains the starting point, even when Age >= RetirementAge.
// Project is a pure function of its input.
func Project(in ProjectionInput) Projection {
	years := RetirementAge - in.Age
	if years < 0 {
		years = 0
	}
	points := years + 1

	growth := pct(in.ReturnRate)
	reGrowth := pct(in.RealEstateGrowth)
	inflation := pct(in.Inflation)
	savings := decimal.NewFromFloat(in.AnnualSavings)
	multiple := decimal.NewFromInt(FIMultiple)

	invest := decimal.NewFromFloat(in.Investable)
	house := decimal.NewFromFloat(in.RealEstate)
	tiers := make([]decimal.Decimal, len(Tiers))
	for i, t := range Tiers {
		tiers[i] = decimal.NewFromFloat(t.AnnualSpend).Mul(multiple)
	}
	custom := decimal.NewFromFloat(in.TargetExpense).Mul(multiple)

	p := Projection{
		Ages:   make([]int, 0, points),
		Wealth: make([]float64, 0, points),
		Tiers:  make([]TierCurve, len(Tiers)),
		Custom: make([]float64, 0, points),
	}
	for i, t := range Tiers {
		p.Tiers[i] = TierCurve{Tier: t, Target: make([]float64, 0, points)}
	}

	record := func(age int) {
		wealth := invest.Add(house)
		p.Ages = append(p.Ages, age)
		p.Wealth = append(p.Wealth, wealth.InexactFloat64())
		for i := range tiers {
			p.Tiers[i].Target = append(p.Tiers[i].Target, tiers[i].InexactFloat64())
		}
		p.Custom = append(p.Custom, custom.InexactFloat64())
		if p.FIAge == nil && custom.IsPositive() && wealth.GreaterThanOrEqual(custom) {
			fi := age
			p.FIAge = &fi
		}
	}

	record(in.Age)
	for year := 1; year <= years; year++ {
		invest = invest.Add(savings).Mul(growth)
		if in.GrowRealEstate && house.IsPositive() {
			house = house.Mul(reGrowth)
		}
		for i := range tiers {
			tiers[i] = tiers[i].Mul(inflation)
		}
		custom = custom.Mul(inflation)
		record(in.Age + year)
	}

	return p
}

// pct converts a percentage rate into its growth factor, 1 + r/100.
func pct(rate float64) decimal.Decimal {
	return decimal.NewFromInt(1).Add(decimal.NewFromFloat(rate).Div(decimal.NewFromInt(100)))
}
