package cache

import (
	"encoding/json"
	"testing"

	"DayFlow/internal/analytics"
)

func TestDecodeStreakEntry(t *testing.T) {
	last := analytics.DateKey("2024-03-15")
	raw, err := json.Marshal(StreakEntry{
		Streak:        analytics.Streak{Current: 4, Longest: 9},
		LastCompleted: &last,
	})
	if err != nil {
		t.Fatalf("marshal entry: %v", err)
	}

	entry, ok := decodeStreakEntry(raw)
	if !ok {
		t.Fatal("well-formed entry should decode")
	}
	if entry.Streak.Current != 4 || entry.Streak.Longest != 9 {
		t.Errorf("streak = %+v, want current 4 longest 9", entry.Streak)
	}
	// 命中时直接用条目里的最近打卡日，不再查库，所以它必须完整存下来
	if entry.LastCompleted == nil || *entry.LastCompleted != last {
		t.Errorf("last completed = %v, want %s", entry.LastCompleted, last)
	}
}

func TestDecodeStreakEntryNeverCompleted(t *testing.T) {
	raw, err := json.Marshal(StreakEntry{Streak: analytics.Streak{}})
	if err != nil {
		t.Fatalf("marshal entry: %v", err)
	}
	entry, ok := decodeStreakEntry(raw)
	if !ok {
		t.Fatal("entry without completions should decode")
	}
	if entry.LastCompleted != nil {
		t.Errorf("last completed = %v, want nil", entry.LastCompleted)
	}
}

func TestDecodeStreakEntryCorrupt(t *testing.T) {
	if _, ok := decodeStreakEntry([]byte("{not json")); ok {
		t.Error("corrupt payload should read as a cache miss")
	}
}
