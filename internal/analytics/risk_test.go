package analytics

import "testing"

func TestEvaluateRisk(t *testing.T) {
	today := DateKey("2024-03-15")
	dk := func(s string) *DateKey {
		k := DateKey(s)
		return &k
	}

	cases := []struct {
		name string
		last *DateKey
		want Risk
	}{
		{"never completed", nil, RiskNoStreak},
		{"completed today", dk("2024-03-15"), RiskSafe},
		{"completed yesterday", dk("2024-03-14"), RiskInDanger},
		{"two days ago already broken", dk("2024-03-13"), RiskNoStreak},
		{"long ago", dk("2023-09-01"), RiskNoStreak},
		{"future date treated as no streak", dk("2024-03-16"), RiskNoStreak},
		{"invalid key", dk("soon"), RiskNoStreak},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EvaluateRisk(tc.last, today); got != tc.want {
				t.Fatalf("EvaluateRisk = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestEvaluateRiskAcrossMonthBoundary(t *testing.T) {
	last := DateKey("2024-02-29")
	if got := EvaluateRisk(&last, DateKey("2024-03-01")); got != RiskInDanger {
		t.Fatalf("leap day yesterday should be in_danger, got %s", got)
	}
}
