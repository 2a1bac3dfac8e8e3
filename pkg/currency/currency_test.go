package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAR(t *testing.T) {
	testCases := []struct {
		amount string
		want   Winston
	}{
		{"0", 0},
		{"1", 1_000_000_000_000},
		{"1.5", 1_500_000_000_000},
		{"0.000000000001", 1},
		{"2.000000000001", 2_000_000_000_001},
		{"10.25", 10_250_000_000_000},
		{" 3 ", 3_000_000_000_000},
		{"18446744.073709551615", 18_446_744_073_709_551_615},
	}

	for _, tc := range testCases {
		t.Run(tc.amount, func(t *testing.T) {
			got, err := FromAR(tc.amount)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFromARInvalid(t *testing.T) {
	testCases := []struct {
		name   string
		amount string
	}{
		{"empty", ""},
		{"not a number", "abc"},
		{"negative", "-1"},
		{"too many decimals", "1.0000000000001"},
		{"two dots", "1.5.2"},
		{"trailing dot", "1."},
		{"overflow whole", "18446745"},
		{"overflow fraction", "18446744.073709551616"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromAR(tc.amount)
			require.Error(t, err)
		})
	}
}

func TestAR(t *testing.T) {
	testCases := []struct {
		winston Winston
		want    string
	}{
		{0, "0"},
		{1, "0.000000000001"},
		{1_000_000_000_000, "1"},
		{1_500_000_000_000, "1.5"},
		{2_000_000_000_001, "2.000000000001"},
		{10_250_000_000_000, "10.25"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.winston.AR())
		})
	}
}

func TestFromARRoundTrip(t *testing.T) {
	for _, winston := range []Winston{0, 1, 999, 1_000_000_000_000, 123_456_789_012_345} {
		parsed, err := FromAR(winston.AR())
		require.NoError(t, err)
		assert.Equal(t, winston, parsed)
	}
}

func TestParseWinston(t *testing.T) {
	got, err := ParseWinston("65595508")
	require.NoError(t, err)
	assert.Equal(t, Winston(65595508), got)
	assert.Equal(t, "65595508", got.String())

	_, err = ParseWinston("1.5")
	require.Error(t, err)

	_, err = ParseWinston("")
	require.Error(t, err)
}
