package agreement

import (
	"testing"
	"time"

	arepo "carrental/repository/agreement"
)

func d(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"disjoint before", "2024-01-01", "2024-01-05", "2024-01-06", "2024-01-10", false},
		{"disjoint after", "2024-01-11", "2024-01-15", "2024-01-06", "2024-01-10", false},
		{"partial overlap", "2024-01-04", "2024-01-08", "2024-01-06", "2024-01-10", true},
		{"contained", "2024-01-07", "2024-01-08", "2024-01-06", "2024-01-10", true},
		{"containing", "2024-01-01", "2024-01-31", "2024-01-06", "2024-01-10", true},
		{"identical", "2024-01-06", "2024-01-10", "2024-01-06", "2024-01-10", true},
		// Closed intervals: sharing a single day is an overlap.
		{"touching at end", "2024-01-01", "2024-01-06", "2024-01-06", "2024-01-10", true},
		{"touching at start", "2024-01-10", "2024-01-15", "2024-01-06", "2024-01-10", true},
		{"single day inside", "2024-01-07", "2024-01-07", "2024-01-06", "2024-01-10", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := rangesOverlap(d(tc.s1), d(tc.e1), d(tc.s2), d(tc.e2))
			if got != tc.want {
				t.Fatalf("rangesOverlap(%s,%s vs %s,%s) = %v; want %v",
					tc.s1, tc.e1, tc.s2, tc.e2, got, tc.want)
			}
		})
	}
}

func TestHasConflict_ExcludesSelf(t *testing.T) {
	active := []arepo.Period{
		{ID: 7, Start: d("2024-01-10"), End: d("2024-01-20")},
	}
	if !hasConflict(active, d("2024-01-15"), d("2024-01-25"), 0) {
		t.Fatal("expected conflict against agreement 7")
	}
	// Re-validating agreement 7 against itself must not conflict.
	if hasConflict(active, d("2024-01-15"), d("2024-01-25"), 7) {
		t.Fatal("self overlap should be excluded")
	}
}

// Only ACTIVE agreements occupy a vehicle. The conflict input is the ACTIVE
// period set by construction, so pending and approved requests never block
// each other; that policy keeps multiple quotes open for the same period.
func TestHasConflict_EmptyActiveSet(t *testing.T) {
	if hasConflict(nil, d("2024-01-01"), d("2024-12-31"), 0) {
		t.Fatal("no ACTIVE agreements means no conflict")
	}
}
