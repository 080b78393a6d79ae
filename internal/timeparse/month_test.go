package timeparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMonth(t *testing.T) {
	cases := []struct {
		in    string
		month int
		year  int
		ok    bool
	}{
		{"T11/2024", 11, 2024, true},
		{"t11/2024", 11, 2024, true},
		{"Tháng 12 2024", 12, 2024, true},
		{"Tháng 3 2023", 3, 2023, true},
		{"thang 3/2023", 3, 2023, true},
		{"11/2024", 11, 2024, true},
		{"1-2025", 1, 2025, true},
		{"09.2024", 9, 2024, true},
		{"Cuối tháng 11/2024", 11, 2024, true},
		{"T13/2024", 0, 0, false},
		{"T0/2024", 0, 0, false},
		{"invalid", 0, 0, false},
		{"", 0, 0, false},
		{"2024", 0, 0, false},
		{"quý 4 năm nay", 0, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseMonth(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.month, got.Month)
				assert.Equal(t, tc.year, got.Year)
			}
		})
	}
}

func TestParseMonthDeterministic(t *testing.T) {
	first, ok1 := ParseMonth("T11/2024")
	second, ok2 := ParseMonth("T11/2024")
	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestMonthIndex(t *testing.T) {
	dec := Month{Month: 12, Year: 2024}
	jan := Month{Month: 1, Year: 2025}
	assert.Equal(t, dec.Index()+1, jan.Index())
	assert.True(t, dec.Before(jan))
	assert.False(t, jan.Before(dec))
}

func TestInRange(t *testing.T) {
	t.Run("inclusive bounds", func(t *testing.T) {
		assert.True(t, InRange("T11/2024", "T11/2024", "T12/2024"))
		assert.True(t, InRange("T12/2024", "T11/2024", "T12/2024"))
		assert.False(t, InRange("T10/2024", "T11/2024", "T12/2024"))
		assert.False(t, InRange("T1/2025", "T11/2024", "T12/2024"))
	})

	t.Run("open range is a no-op", func(t *testing.T) {
		assert.True(t, InRange("whenever", "", ""))
		assert.True(t, InRange("", "", ""))
	})

	t.Run("half open ranges", func(t *testing.T) {
		assert.True(t, InRange("T12/2025", "T11/2024", ""))
		assert.False(t, InRange("T10/2024", "T11/2024", ""))
		assert.True(t, InRange("T10/2024", "", "T11/2024"))
	})

	t.Run("unparsable value never matches a bounded range", func(t *testing.T) {
		assert.False(t, InRange("sớm nhất có thể", "T11/2024", "T12/2024"))
	})
}
