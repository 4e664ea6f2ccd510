package errortypes

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityFilters(t *testing.T) {
	warning := &Warning{Message: "w", WarningCode: BidAdjustmentWarningCode}
	fatal := &FloorConfig{Message: "f"}
	plain := errors.New("plain")

	errs := []error{warning, fatal, plain}

	assert.True(t, ContainsFatalError(errs))
	assert.False(t, ContainsFatalError([]error{warning}))
	assert.Equal(t, []error{fatal, plain}, FatalOnly(errs))
	assert.Equal(t, []error{warning}, WarningOnly(errs))
}

func TestSeverityOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("account 1: %w", &Warning{Message: "w"})

	assert.True(t, IsWarning(wrapped))
	assert.Equal(t, SeverityFatal, SeverityOf(errors.New("plain")))
	assert.Equal(t, SeverityFatal, SeverityOf(&FailedToAdjustBid{Message: "f"}))
}

func TestReadCode(t *testing.T) {
	testCases := []struct {
		description string
		err         error
		expected    int
	}{
		{
			description: "warning",
			err:         &Warning{WarningCode: BidAdjustmentWarningCode},
			expected:    BidAdjustmentWarningCode,
		},
		{
			description: "no-conversion-rate",
			err:         &NoConversionRate{},
			expected:    NoConversionRateErrorCode,
		},
		{
			description: "not-a-coder",
			err:         errors.New("x"),
			expected:    UnknownErrorCode,
		},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			assert.Equal(t, test.expected, ReadCode(test.err))
		})
	}
}
