package analytics

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateKey(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    DateKey
		wantErr bool
	}{
		{"plain date", "2024-03-15", DateKey("2024-03-15"), false},
		{"rfc3339", "2024-03-15T08:30:00Z", DateKey("2024-03-15"), false},
		{"datetime", "2024-03-15 08:30:00", DateKey("2024-03-15"), false},
		{"garbage", "not-a-date", "", true},
		{"empty", "", "", true},
		{"month out of range", "2024-13-01", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDateKey(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseDateKey(%q) expected error, got %q", tc.in, got)
				}
				var perr *DateParseError
				if !errors.As(err, &perr) {
					t.Fatalf("ParseDateKey(%q) error type = %T, want *DateParseError", tc.in, err)
				}
				if perr.Value != tc.in {
					t.Fatalf("DateParseError.Value = %q, want %q", perr.Value, tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateKey(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseDateKey(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestToDateKey(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// 纽约时间 23:30，UTC 已经是次日
	ts := time.Date(2024, 3, 15, 23, 30, 0, 0, loc)
	if got := ToDateKey(ts); got != DateKey("2024-03-15") {
		t.Fatalf("ToDateKey = %q, want 2024-03-15", got)
	}
}

// DATE 列经 driver 读回来是连接时区的 0 点，不能再转 UTC：
// 东八区 0 点转 UTC 会退回前一天。
func TestToDateKeyMidnightKeepsDay(t *testing.T) {
	zones := []string{"Asia/Shanghai", "America/New_York", "Pacific/Auckland"}
	for _, name := range zones {
		loc, err := time.LoadLocation(name)
		if err != nil {
			t.Skip("tzdata unavailable")
		}
		midnight := time.Date(2024, 3, 15, 0, 0, 0, 0, loc)
		if got := ToDateKey(midnight); got != DateKey("2024-03-15") {
			t.Errorf("ToDateKey(midnight %s) = %q, want 2024-03-15", name, got)
		}
		if got := ToDateKey(midnight.UTC()); name == "Asia/Shanghai" && got != DateKey("2024-03-14") {
			t.Errorf("sanity: Shanghai midnight in UTC = %q, want previous day 2024-03-14", got)
		}
	}
}

func TestAddDays(t *testing.T) {
	cases := []struct {
		in   DateKey
		days int
		want DateKey
	}{
		{"2024-01-31", 1, "2024-02-01"},
		{"2024-02-28", 1, "2024-02-29"}, // 闰年
		{"2023-02-28", 1, "2023-03-01"},
		{"2024-03-10", -1, "2024-03-09"},
		{"2024-12-31", 1, "2025-01-01"},
		{"2024-03-15", 0, "2024-03-15"},
	}
	for _, tc := range cases {
		if got := tc.in.AddDays(tc.days); got != tc.want {
			t.Errorf("%s.AddDays(%d) = %s, want %s", tc.in, tc.days, got, tc.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		from, to DateKey
		want     int
	}{
		{"2024-03-10", "2024-03-15", 5},
		{"2024-03-15", "2024-03-10", -5},
		{"2024-03-15", "2024-03-15", 0},
		{"2024-02-28", "2024-03-01", 2},  // 闰年跨月
		{"2023-12-31", "2024-01-01", 1},  // 跨年
		{"2024-03-09", "2024-03-11", 2},  // 美国 DST 切换周末，仍按整天计
	}
	for _, tc := range cases {
		got, err := DaysBetween(tc.from, tc.to)
		if err != nil {
			t.Errorf("DaysBetween(%s, %s) unexpected error: %v", tc.from, tc.to, err)
			continue
		}
		if got != tc.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", tc.from, tc.to, got, tc.want)
		}
	}

	if _, err := DaysBetween("bogus", "2024-03-15"); err == nil {
		t.Error("DaysBetween with invalid key should error")
	}
}

func TestValid(t *testing.T) {
	if !DateKey("2024-03-15").Valid() {
		t.Error("2024-03-15 should be valid")
	}
	if DateKey("2024-3-15").Valid() {
		t.Error("2024-3-15 should be invalid, layout requires zero padding")
	}
	if DateKey("").Valid() {
		t.Error("empty key should be invalid")
	}
}
