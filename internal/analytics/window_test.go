package analytics

import "testing"

func TestCompletionWindow(t *testing.T) {
	today := DateKey("2024-03-15")

	t.Run("rounding with three habits", func(t *testing.T) {
		completions := []Completion{
			{HabitID: 1, Date: "2024-03-15"},
			{HabitID: 2, Date: "2024-03-15"},
		}
		got := CompletionWindow(3, completions, 1, today)
		if len(got) != 1 {
			t.Fatalf("window length = %d, want 1", len(got))
		}
		if got[0].Percentage != 67 {
			t.Fatalf("2/3 rounds to %d, want 67", got[0].Percentage)
		}
	})

	t.Run("window length and order", func(t *testing.T) {
		got := CompletionWindow(2, nil, 7, today)
		if len(got) != 7 {
			t.Fatalf("window length = %d, want 7", len(got))
		}
		if got[0].Date != DateKey("2024-03-09") || got[6].Date != today {
			t.Fatalf("window spans %s..%s, want 2024-03-09..%s", got[0].Date, got[6].Date, today)
		}
		for i := 1; i < len(got); i++ {
			if got[i].Date != got[i-1].Date.AddDays(1) {
				t.Fatalf("days not consecutive at index %d: %s after %s", i, got[i].Date, got[i-1].Date)
			}
		}
	})

	t.Run("no active habits yields zero percentages", func(t *testing.T) {
		completions := []Completion{{HabitID: 1, Date: "2024-03-15"}}
		got := CompletionWindow(0, completions, 3, today)
		for _, d := range got {
			if d.Percentage != 0 || d.Total != 0 {
				t.Fatalf("day %s = %+v, want zero total and percentage", d.Date, d)
			}
		}
	})

	t.Run("same habit same day counted once", func(t *testing.T) {
		completions := []Completion{
			{HabitID: 1, Date: "2024-03-15"},
			{HabitID: 1, Date: "2024-03-15"},
		}
		got := CompletionWindow(1, completions, 1, today)
		if got[0].Completed != 1 || got[0].Percentage != 100 {
			t.Fatalf("duplicate checkin inflated result: %+v", got[0])
		}
	})

	t.Run("completions outside window ignored", func(t *testing.T) {
		completions := []Completion{
			{HabitID: 1, Date: "2024-03-01"},
			{HabitID: 1, Date: "2024-03-14"},
		}
		got := CompletionWindow(1, completions, 2, today)
		if got[0].Completed != 1 || got[1].Completed != 0 {
			t.Fatalf("window counts = [%d %d], want [1 0]", got[0].Completed, got[1].Completed)
		}
	})

	t.Run("invalid window size", func(t *testing.T) {
		if got := CompletionWindow(1, nil, 0, today); got != nil {
			t.Fatalf("windowDays=0 should return nil, got %v", got)
		}
	})
}

func TestClassifyPercentage(t *testing.T) {
	cases := []struct {
		pct  int
		want Level
	}{
		{100, LevelGood},
		{80, LevelGood},
		{79, LevelWarning},
		{50, LevelWarning},
		{49, LevelBad},
		{0, LevelBad},
	}
	for _, tc := range cases {
		if got := ClassifyPercentage(tc.pct); got != tc.want {
			t.Errorf("ClassifyPercentage(%d) = %s, want %s", tc.pct, got, tc.want)
		}
	}
}
