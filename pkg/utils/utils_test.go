package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAddYearsClamped(t *testing.T) {
	cases := []struct {
		start string
		years int
		want  string
	}{
		{"2025-02-15", 1, "2026-02-15"},
		{"2024-02-29", 1, "2025-02-28"}, // leap day clamps, never rolls to March
		{"2024-02-29", 4, "2028-02-29"},
		{"2025-12-31", 1, "2026-12-31"},
		{"2025-01-01", 2, "2027-01-01"},
	}

	for _, tc := range cases {
		got := AddYearsClamped(date(tc.start), tc.years)
		assert.Equal(t, tc.want, got.Format(DateLayout), "%s + %d years", tc.start, tc.years)
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2025-02-15")
	require.NoError(t, err)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.February, parsed.Month())

	_, err = ParseDate("15/02/2025")
	assert.Error(t, err)
}

func TestGenerateContractNumber(t *testing.T) {
	now := date("2025-08-31")

	number := GenerateContractNumber(now)

	assert.Regexp(t, `^HD-202508-\d{4}$`, number)
}

func TestDaysSince(t *testing.T) {
	then := date("2025-08-01")
	now := date("2025-08-31")

	assert.Equal(t, 30, DaysSince(then, now))
}
