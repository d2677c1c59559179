package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name            string
		originalError   error
		message         string
		expectedMessage string
	}{
		{
			name:            "wrap simple error",
			originalError:   errors.New("original error"),
			message:         "wrapper message",
			expectedMessage: "wrapper message: original error",
		},
		{
			name:            "empty wrapper message",
			originalError:   errors.New("original error"),
			message:         "",
			expectedMessage: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrappedError := WrapError(tt.originalError, tt.message)
			assert.Error(t, wrappedError)
			assert.Equal(t, tt.expectedMessage, wrappedError.Error())
			assert.ErrorIs(t, wrappedError, tt.originalError)
		})
	}

	assert.NoError(t, WrapError(nil, "ignored"))
	assert.NoError(t, WrapErrorf(nil, "ignored %d", 1))
}

func TestWrapErrorf(t *testing.T) {
	base := errors.New("boom")
	err := WrapErrorf(base, "strategy %s failed", "jina")
	assert.Equal(t, "strategy jina failed: boom", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("domain", "", "domain is required")
	assert.Equal(t, "validation failed for field 'domain': domain is required (value: )", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)

	var target *ValidationError
	require.True(t, errors.As(WrapError(err, "assemble"), &target))
	assert.Equal(t, "domain", target.Field)
}

func TestConfigurationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigurationError
		expected string
	}{
		{
			name:     "section and field",
			err:      NewConfigurationError("fetcher_config", "strategies", "at least one strategy is required"),
			expected: "configuration error in section 'fetcher_config', field 'strategies': at least one strategy is required",
		},
		{
			name:     "section only",
			err:      NewConfigurationError("log_config", "", "bad"),
			expected: "configuration error in section 'log_config': bad",
		},
		{
			name:     "reason only",
			err:      NewConfigurationError("", "", "bad"),
			expected: "configuration error: bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrInvalidConfiguration)
		})
	}
}

func TestErrorCollector(t *testing.T) {
	var ec ErrorCollector
	assert.False(t, ec.HasErrors())
	assert.NoError(t, ec.Error())

	first := errors.New("first")
	ec.Add(first)
	ec.Add(nil)
	assert.Len(t, ec.Errors(), 1)
	assert.Same(t, first, ec.Error())

	ec.AddWithContext(errors.New("second"), "jina")
	require.True(t, ec.HasErrors())
	combined := ec.Error()
	assert.Equal(t, "multiple errors occurred: [first; jina: second]", combined.Error())
	assert.ErrorIs(t, combined, first)
}
