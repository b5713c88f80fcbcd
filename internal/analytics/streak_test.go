package analytics

import "testing"

func keys(ss ...string) []DateKey {
	out := make([]DateKey, len(ss))
	for i, s := range ss {
		out[i] = DateKey(s)
	}
	return out
}

func TestComputeStreak(t *testing.T) {
	today := DateKey("2024-01-03")

	cases := []struct {
		name        string
		completions []DateKey
		wantCurrent int
		wantLongest int
	}{
		{"empty", nil, 0, 0},
		{"three consecutive ending today", keys("2024-01-01", "2024-01-02", "2024-01-03"), 3, 3},
		{"ends yesterday still counts", keys("2024-01-01", "2024-01-02"), 2, 2},
		{"two days stale", keys("2023-12-31", "2024-01-01"), 0, 2},
		{"gap keeps longest", keys("2023-12-28", "2023-12-29", "2023-12-30", "2024-01-02", "2024-01-03"), 2, 3},
		{"broken then restarted today", keys("2023-12-30", "2024-01-03"), 1, 1},
		{"duplicates counted once", keys("2024-01-02", "2024-01-02", "2024-01-03"), 2, 2},
		{"unsorted input", keys("2024-01-03", "2024-01-01", "2024-01-02"), 3, 3},
		{"invalid entries skipped", keys("2024-01-02", "oops", "2024-01-03"), 2, 2},
		{"single day today", keys("2024-01-03"), 1, 1},
		{"future days dedupe but do not anchor", keys("2024-01-05"), 0, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeStreak(tc.completions, today)
			if got.Current != tc.wantCurrent || got.Longest != tc.wantLongest {
				t.Fatalf("ComputeStreak = {Current:%d Longest:%d}, want {Current:%d Longest:%d}",
					got.Current, got.Longest, tc.wantCurrent, tc.wantLongest)
			}
			if got.Current > got.Longest {
				t.Fatalf("invariant violated: current %d > longest %d", got.Current, got.Longest)
			}
		})
	}
}

func TestComputeStreakInvalidToday(t *testing.T) {
	got := ComputeStreak(keys("2024-01-01"), DateKey("whenever"))
	if got.Current != 0 || got.Longest != 0 {
		t.Fatalf("invalid today should yield zero streak, got %+v", got)
	}
}

func TestComputeStreakAcrossYearBoundary(t *testing.T) {
	got := ComputeStreak(keys("2023-12-30", "2023-12-31", "2024-01-01"), DateKey("2024-01-01"))
	if got.Current != 3 || got.Longest != 3 {
		t.Fatalf("year boundary streak = %+v, want {3 3}", got)
	}
}

func TestLastCompleted(t *testing.T) {
	if got := LastCompleted(nil); got != nil {
		t.Fatalf("LastCompleted(nil) = %v, want nil", got)
	}
	if got := LastCompleted(keys("bad", "worse")); got != nil {
		t.Fatalf("LastCompleted(all invalid) = %v, want nil", got)
	}
	got := LastCompleted(keys("2024-01-01", "2024-01-05", "2024-01-03"))
	if got == nil || *got != DateKey("2024-01-05") {
		t.Fatalf("LastCompleted = %v, want 2024-01-05", got)
	}
}
