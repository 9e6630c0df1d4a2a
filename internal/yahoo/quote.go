package yahoo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/phuslu/log"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
)

const (
	pathChartPrice = "$.chart.result[0].meta.regularMarketPrice"
	pathChartName  = "$.chart.result[0].meta.shortName"
	pathCloses     = "$.chart.result[0].indicators.quote[0].close"
	pathQuotePrice = "$.quoteResponse.result[0].regularMarketPrice"
	pathQuoteName  = "$.quoteResponse.result[0].shortName"
)

var errNoValue = errors.New("no value")

// Quoter resolves prices and display names, trying several Yahoo sources in turn.
type Quoter struct {
	client Client
}

// NewQuoter creates a Quoter backed by client.
func NewQuoter(client Client) *Quoter {
	return &Quoter{client: client}
}

// Price returns the latest price of ticker. Sources are tried in order: the
// chart's last traded price, the quote endpoint's market price, then the most
// recent non-null daily close of the 5 day chart. The first positive value wins.
// When every source fails the error is a *apperrors.ProviderUnavailableError.
func (q *Quoter) Price(ctx context.Context, ticker string) (float64, error) {
	ticker = strings.TrimSpace(ticker)
	var errs []error

	chart, err := q.client.QueryChart(ctx, ticker)
	if err != nil {
		errs = append(errs, fmt.Errorf("chart: %w", err))
	} else if p, err := positive(chart, pathChartPrice); err == nil {
		return p, nil
	} else {
		errs = append(errs, fmt.Errorf("chart price: %w", err))
	}

	quote, err := q.client.QueryQuote(ctx, ticker)
	if err != nil {
		errs = append(errs, fmt.Errorf("quote: %w", err))
	} else if p, err := positive(quote, pathQuotePrice); err == nil {
		return p, nil
	} else {
		errs = append(errs, fmt.Errorf("quote price: %w", err))
	}

	if chart != nil {
		p, err := lastClose(chart)
		if err == nil {
			return p, nil
		}
		errs = append(errs, fmt.Errorf("daily close: %w", err))
	}

	return 0, &apperrors.ProviderUnavailableError{Symbol: ticker, Err: errors.Join(errs...)}
}

// DisplayName returns the short name of ticker, from the quote endpoint or,
// failing that, the chart metadata.
func (q *Quoter) DisplayName(ctx context.Context, ticker string) (string, error) {
	ticker = strings.TrimSpace(ticker)
	var errs []error

	if quote, err := q.client.QueryQuote(ctx, ticker); err != nil {
		errs = append(errs, fmt.Errorf("quote: %w", err))
	} else if name, err := text(quote, pathQuoteName); err == nil {
		return name, nil
	} else {
		errs = append(errs, fmt.Errorf("quote name: %w", err))
	}

	if chart, err := q.client.QueryChart(ctx, ticker); err != nil {
		errs = append(errs, fmt.Errorf("chart: %w", err))
	} else if name, err := text(chart, pathChartName); err == nil {
		return name, nil
	} else {
		errs = append(errs, fmt.Errorf("chart name: %w", err))
	}

	return "", &apperrors.ProviderUnavailableError{Symbol: ticker, Err: errors.Join(errs...)}
}

// PriceOrZero is Price with failures logged and reported as 0.
func (q *Quoter) PriceOrZero(ctx context.Context, ticker string) float64 {
	p, err := q.Price(ctx, ticker)
	if err != nil {
		log.Warn().Str("ticker", ticker).Err(err).Msg("price lookup failed")
		return 0
	}
	return p
}

// DisplayNameOrTicker is DisplayName with failures reported as the ticker itself.
func (q *Quoter) DisplayNameOrTicker(ctx context.Context, ticker string) string {
	name, err := q.DisplayName(ctx, ticker)
	if err != nil {
		log.Debug().Str("ticker", ticker).Err(err).Msg("name lookup failed")
		return strings.TrimSpace(ticker)
	}
	return name
}

// lookup evaluates path against doc, unwrapping single element result lists.
func lookup(doc any, path string) (any, error) {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, err
	}
	if list, ok := v.([]any); ok && len(list) == 1 {
		if _, nested := list[0].([]any); !nested {
			v = list[0]
		}
	}
	if v == nil {
		return nil, errNoValue
	}
	return v, nil
}

func positive(doc any, path string) (float64, error) {
	v, err := lookup(doc, path)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok || f <= 0 {
		return 0, fmt.Errorf("%s: not a positive number: %v", path, v)
	}
	return f, nil
}

func text(doc any, path string) (string, error) {
	v, err := lookup(doc, path)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%s: %w", path, errNoValue)
	}
	return s, nil
}

// lastClose returns the most recent non-null close of the chart's daily series.
func lastClose(chart any) (float64, error) {
	v, err := jsonpath.Get(pathCloses, chart)
	if err != nil {
		return 0, err
	}
	closes, ok := v.([]any)
	if !ok {
		return 0, fmt.Errorf("%s: not a series", pathCloses)
	}
	for i := len(closes) - 1; i >= 0; i-- {
		if f, ok := closes[i].(float64); ok && f > 0 {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%s: %w", pathCloses, errNoValue)
}
