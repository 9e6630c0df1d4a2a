package request

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// ProjectionQuery holds the optional overrides of GET /api/forecast/projection.
// Nil fields were not supplied.
type ProjectionQuery struct {
	IncludeFixed     bool
	Age              *int
	Savings          *float64
	ReturnRate       *float64
	Expense          *float64
	RealEstateGrowth *float64
	Inflation        *float64
}

// ParseBool reads an optional boolean query parameter. Missing or empty
// values are false.
func ParseBool(q url.Values, name string) (bool, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: must be true or false", name)
	}
	return v, nil
}

// ParseNumber parses a finite number. NaN and the infinities are rejected.
func ParseNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("must be a number")
	}
	return v, nil
}

// numberField is an optional float override and its inclusive bounds.
type numberField struct {
	name     string
	dst      **float64
	min, max float64
}

func (p *ProjectionQuery) numberFields() []numberField {
	return []numberField{
		{"savings", &p.Savings, 0, 1e15},
		{"expense", &p.Expense, 0, 1e15},
		{"returnRate", &p.ReturnRate, -100, 100},
		{"realEstateGrowth", &p.RealEstateGrowth, -100, 100},
		{"inflation", &p.Inflation, -100, 100},
	}
}

// Validate checks the overrides that are set.
//
// Validation rules:
//   - age: integer between 0 and 120
//   - savings, expense: non-negative numbers
//   - returnRate, realEstateGrowth, inflation: numbers between -100 and 100
//
// Every number must be finite.
func (p ProjectionQuery) Validate() error {
	if p.Age != nil && (*p.Age < 0 || *p.Age > 120) {
		return fmt.Errorf("invalid age: must be between 0 and 120")
	}
	for _, f := range p.numberFields() {
		if *f.dst == nil {
			continue
		}
		v := **f.dst
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid %s: must be a number", f.name)
		}
		if v < f.min || v > f.max {
			return fmt.Errorf("invalid %s: out of range", f.name)
		}
	}
	return nil
}

// ParseProjectionQuery extracts and validates the projection overrides from
// query parameters. All parameters are optional; see Validate for the rules.
func ParseProjectionQuery(q url.Values) (ProjectionQuery, error) {
	var p ProjectionQuery
	var err error

	if p.IncludeFixed, err = ParseBool(q, "includeFixed"); err != nil {
		return ProjectionQuery{}, err
	}

	if raw := strings.TrimSpace(q.Get("age")); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil {
			return ProjectionQuery{}, fmt.Errorf("invalid age: must be a whole number")
		}
		p.Age = &age
	}

	for _, f := range p.numberFields() {
		raw := strings.TrimSpace(q.Get(f.name))
		if raw == "" {
			continue
		}
		v, err := ParseNumber(raw)
		if err != nil {
			return ProjectionQuery{}, fmt.Errorf("invalid %s: %w", f.name, err)
		}
		*f.dst = &v
	}

	if err := p.Validate(); err != nil {
		return ProjectionQuery{}, err
	}
	return p, nil
}
