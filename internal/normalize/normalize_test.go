package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumeric(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *float64
	}{
		{"thousands separators stripped", "1,234,567", ptr(1234567)},
		{"plain integer", "42", ptr(42)},
		{"decimal", "12.5", ptr(12.5)},
		{"surrounding whitespace", "  7  ", ptr(7)},
		{"parenthesised negative", "(1,000)", ptr(-1000)},
		{"zero is zero, not missing", "0", ptr(0)},
		{"empty is missing", "", nil},
		{"dash placeholder", "-", nil},
		{"NA placeholder", "NA", nil},
		{"N/A placeholder", "N/A", nil},
		{"cross-out marker", "XXX", nil},
		{"embedded cross-out marker", "1,234 XXX", nil},
		{"unparseable text stays missing, not zero", "12abc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Numeric(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestInt(t *testing.T) {
	year, ok := Int("2023")
	require.True(t, ok)
	assert.Equal(t, 2023, year)

	_, ok = Int("Prior")
	assert.False(t, ok)

	_, ok = Int("19.3")
	assert.False(t, ok)

	_, ok = Int("")
	assert.False(t, ok)
}

func TestSumNullable(t *testing.T) {
	assert.Nil(t, SumNullable(nil, nil))

	got := SumNullable(ptr(10), nil)
	require.NotNil(t, got)
	assert.Equal(t, 10.0, *got)

	got = SumNullable(ptr(10), ptr(2.5))
	require.NotNil(t, got)
	assert.Equal(t, 12.5, *got)

	// A reported zero still counts as reported.
	got = SumNullable(ptr(0), nil)
	require.NotNil(t, got)
	assert.Equal(t, 0.0, *got)
}

func ptr(f float64) *float64 { return &f }
