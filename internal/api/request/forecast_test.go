package request

import (
	"math"
	"net/url"
	"testing"
)

func TestParseProjectionQuery(t *testing.T) {
	t.Run("no parameters", func(t *testing.T) {
		p, err := ParseProjectionQuery(url.Values{})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if p.IncludeFixed || p.Age != nil || p.Savings != nil || p.Inflation != nil {
			t.Errorf("Expected no overrides, got %+v", p)
		}
	})

	t.Run("all parameters", func(t *testing.T) {
		q := url.Values{
			"includeFixed":     {"true"},
			"age":              {"35"},
			"savings":          {"400000"},
			"returnRate":       {"7.5"},
			"expense":          {"600000"},
			"realEstateGrowth": {"2"},
			"inflation":        {"2.5"},
		}
		p, err := ParseProjectionQuery(q)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !p.IncludeFixed || *p.Age != 35 || *p.Savings != 400000 || *p.ReturnRate != 7.5 ||
			*p.Expense != 600000 || *p.RealEstateGrowth != 2 || *p.Inflation != 2.5 {
			t.Errorf("Unexpected overrides: %+v", p)
		}
	})

	t.Run("blank values are ignored", func(t *testing.T) {
		p, err := ParseProjectionQuery(url.Values{"age": {" "}, "inflation": {""}})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if p.Age != nil || p.Inflation != nil {
			t.Errorf("Expected no overrides, got %+v", p)
		}
	})

	invalid := []struct {
		name  string
		query url.Values
	}{
		{"non numeric age", url.Values{"age": {"thirty"}}},
		{"fractional age", url.Values{"age": {"30.5"}}},
		{"age out of range", url.Values{"age": {"200"}}},
		{"negative savings", url.Values{"savings": {"-1"}}},
		{"non numeric inflation", url.Values{"inflation": {"high"}}},
		{"return rate out of range", url.Values{"returnRate": {"150"}}},
		{"bad bool", url.Values{"includeFixed": {"maybe"}}},
		{"NaN savings", url.Values{"savings": {"NaN"}}},
		{"NaN return rate", url.Values{"returnRate": {"nan"}}},
		{"infinite inflation", url.Values{"inflation": {"+Inf"}}},
		{"infinite expense", url.Values{"expense": {"Inf"}}},
		{"NaN real estate growth", url.Values{"realEstateGrowth": {"NaN"}}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseProjectionQuery(tt.query); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	for raw, want := range map[string]bool{"": false, "true": true, "1": true, "false": false, "0": false} {
		got, err := ParseBool(url.Values{"privacy": {raw}}, "privacy")
		if err != nil || got != want {
			t.Errorf("ParseBool(%q) = %v, %v; want %v", raw, got, err, want)
		}
	}
}

// TestProjectionQuery_Validate tests the checks shared by the HTTP query
// parser and the command line flags.
//
// WHY: Non-finite numbers cannot be converted to decimals, so they must be
// rejected before a projection runs rather than fail inside it.
func TestProjectionQuery_Validate(t *testing.T) {
	num := func(v float64) *float64 { return &v }
	age := func(v int) *int { return &v }

	valid := ProjectionQuery{Age: age(120), Savings: num(0), ReturnRate: num(-100), Inflation: num(100)}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected bounds to be inclusive, got %v", err)
	}

	invalid := map[string]ProjectionQuery{
		"negative age":      {Age: age(-1_000_000_000)},
		"age above 120":     {Age: age(121)},
		"NaN savings":       {Savings: num(math.NaN())},
		"infinite expense":  {Expense: num(math.Inf(1))},
		"growth below -100": {RealEstateGrowth: num(-101)},
	}
	for name, q := range invalid {
		t.Run(name, func(t *testing.T) {
			if err := q.Validate(); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	if v, err := ParseNumber(" 12.5 "); err != nil || v != 12.5 {
		t.Errorf("ParseNumber(12.5) = %v, %v", v, err)
	}
	for _, raw := range []string{"NaN", "-Inf", "infinity", "1e400", "abc", ""} {
		if _, err := ParseNumber(raw); err == nil {
			t.Errorf("ParseNumber(%q): expected an error", raw)
		}
	}
}
