package analytics

import "testing"

func due(s string) *DateKey {
	k := DateKey(s)
	return &k
}

func TestProjectEvents(t *testing.T) {
	tasks := []TaskEntry{
		{ID: 1, Title: "Ship release", Priority: "high", Due: due("2024-03-15")},
		{ID: 2, Title: "Write notes", Priority: "low", Due: due("2024-03-15")},
		{ID: 3, Title: "Pay rent", Priority: "high", Completed: true, Due: due("2024-03-16")},
		{ID: 4, Title: "Someday", Priority: "medium", Due: nil}, // 无截止日，不上日历
		{ID: 5, Title: "Weird", Priority: "urgent!!", Due: due("2024-03-17")},
	}
	completions := []CompletionEntry{
		{HabitID: 10, HabitTitle: "Morning run", Date: "2024-03-15", ReminderTime: "07:00", Location: "Park"},
	}

	events := ProjectEvents(tasks, completions)
	if len(events) != 5 {
		t.Fatalf("event count = %d, want 5", len(events))
	}

	byID := make(map[int64]Event)
	for _, e := range events {
		if e.Kind == KindTask {
			byID[e.SourceID] = e
		}
	}

	if e := byID[1]; e.Color != colorTaskHigh || e.Title != "Ship release" {
		t.Errorf("high priority task = %+v", e)
	}
	if e := byID[2]; e.Color != colorTaskLow {
		t.Errorf("low priority color = %s, want %s", e.Color, colorTaskLow)
	}
	if e := byID[3]; e.Color != colorTaskCompleted || e.Title != "✓ Pay rent" {
		t.Errorf("completed task should be gray with checkmark prefix, got %+v", e)
	}
	if e := byID[5]; e.Color != colorTaskMedium {
		t.Errorf("unknown priority falls back to medium color, got %s", e.Color)
	}

	var habit Event
	for _, e := range events {
		if e.Kind == KindHabit {
			habit = e
		}
	}
	if habit.Color != colorHabit || habit.Display != "background" {
		t.Errorf("habit event = %+v", habit)
	}
	if habit.Title != "✓ Morning run" {
		t.Errorf("habit event title = %q, want checkmark prefix + habit title", habit.Title)
	}
	if habit.ReminderTime != "07:00" || habit.Location != "Park" {
		t.Errorf("habit metadata lost: %+v", habit)
	}
}

func TestProjectEventsEmpty(t *testing.T) {
	events := ProjectEvents(nil, nil)
	if len(events) != 0 {
		t.Fatalf("empty input should project no events, got %d", len(events))
	}
}

func TestFilterEvents(t *testing.T) {
	events := []Event{
		{Kind: KindTask, SourceID: 1},
		{Kind: KindHabit, SourceID: 2},
		{Kind: KindTask, SourceID: 3},
	}

	if got := FilterEvents(events, ""); len(got) != 3 {
		t.Fatalf("empty kind should keep all, got %d", len(got))
	}
	tasksOnly := FilterEvents(events, KindTask)
	if len(tasksOnly) != 2 || tasksOnly[0].SourceID != 1 || tasksOnly[1].SourceID != 3 {
		t.Fatalf("task filter broke order: %+v", tasksOnly)
	}
	if got := FilterEvents(events, KindHabit); len(got) != 1 || got[0].SourceID != 2 {
		t.Fatalf("habit filter = %+v", got)
	}
}

func TestEventsOnDay(t *testing.T) {
	events := []Event{
		{Date: "2024-03-15", SourceID: 1},
		{Date: "2024-03-16", SourceID: 2},
		{Date: "2024-03-15", SourceID: 3},
	}
	got := EventsOnDay(events, "2024-03-15")
	if len(got) != 2 {
		t.Fatalf("events on day = %d, want 2", len(got))
	}
}

func TestDayHasMultipleTasks(t *testing.T) {
	events := []Event{
		{Kind: KindTask, Date: "2024-03-15"},
		{Kind: KindHabit, Date: "2024-03-15"},
		{Kind: KindTask, Date: "2024-03-15"},
		{Kind: KindTask, Date: "2024-03-16"},
	}
	if !DayHasMultipleTasks(events, "2024-03-15") {
		t.Error("two tasks on 2024-03-15, want true")
	}
	if DayHasMultipleTasks(events, "2024-03-16") {
		t.Error("single task on 2024-03-16, want false")
	}
	if DayHasMultipleTasks(events, "2024-03-17") {
		t.Error("no events on 2024-03-17, want false")
	}
}
