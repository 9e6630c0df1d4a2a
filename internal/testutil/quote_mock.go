package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
)

// MockQuoter is a mock quote source for testing.
// It returns configured prices and names instead of calling Yahoo Finance.
type MockQuoter struct {
	mu sync.Mutex
	// Prices maps ticker to price; tickers not listed are unavailable.
	Prices map[string]float64
	// Names maps ticker to display name; tickers not listed are unavailable.
	Names map[string]string
	// Calls records every Price lookup, in order.
	Calls []string
}

// NewMockQuoter creates a mock with no known tickers.
func NewMockQuoter() *MockQuoter {
	return &MockQuoter{
		Prices: map[string]float64{},
		Names:  map[string]string{},
	}
}

// WithPrice registers a price.
func (m *MockQuoter) WithPrice(ticker string, price float64) *MockQuoter {
	m.Prices[ticker] = price
	return m
}

// WithName registers a display name.
func (m *MockQuoter) WithName(ticker, name string) *MockQuoter {
	m.Names[ticker] = name
	return m
}

// Price returns the configured price or a ProviderUnavailableError.
func (m *MockQuoter) Price(_ context.Context, ticker string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, ticker)
	if p, ok := m.Prices[ticker]; ok {
		return p, nil
	}
	return 0, &apperrors.ProviderUnavailableError{Symbol: ticker, Err: errors.New("unknown ticker")}
}

// DisplayName returns the configured name or a ProviderUnavailableError.
func (m *MockQuoter) DisplayName(_ context.Context, ticker string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.Names[ticker]; ok {
		return n, nil
	}
	return "", &apperrors.ProviderUnavailableError{Symbol: ticker, Err: errors.New("unknown ticker")}
}
