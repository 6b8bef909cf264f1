package circuitbreaker

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"
)

func TestReadyToTrip(t *testing.T) {
	tests := []struct {
		counts   gobreaker.Counts
		expected bool
	}{
		{gobreaker.Counts{}, false},
		{gobreaker.Counts{Requests: 10, TotalFailures: 10}, false},
		{gobreaker.Counts{Requests: 11, TotalFailures: 6}, false},
		{gobreaker.Counts{Requests: 11, TotalFailures: 7}, true},
		{gobreaker.Counts{Requests: 20, TotalFailures: 20}, true},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, readyToTrip(tt.counts))
	}
}

func TestCircuitBreakerOpens(t *testing.T) {
	cb := NewCircuitBreaker("test")
	errFail := errors.New("fail")

	for i := 0; i <= MaxNumOfFailingRequests; i++ {
		_, err := cb.Execute(func() (interface{}, error) { return nil, errFail })
		require.ErrorIs(t, err, errFail)
	}
	require.Equal(t, gobreaker.StateOpen, cb.State())

	_, err := cb.Execute(func() (interface{}, error) { return nil, nil })
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
}
