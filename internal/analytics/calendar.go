package analytics

// 日历事件颜色，对齐前端主题色
const (
	colorTaskHigh      = "#e53935"
	colorTaskMedium    = "#fb8c00"
	colorTaskLow       = "#1e88e5"
	colorTaskCompleted = "#9e9e9e"
	colorHabit         = "#43a047"
)

// EventKind 日历事件来源类型
type EventKind string

const (
	KindTask  EventKind = "task"
	KindHabit EventKind = "habit"
)

// TaskEntry 投影日历所需的任务字段
type TaskEntry struct {
	ID        int64
	Title     string
	Priority  string // low / medium / high
	Completed bool
	Due       *DateKey // nil 表示无截止日，不上日历
}

// CompletionEntry 投影日历所需的习惯打卡字段
type CompletionEntry struct {
	HabitID      int64
	HabitTitle   string
	Date         DateKey
	ReminderTime string
	Location     string
}

// Event 一条日历事件
type Event struct {
	Date         DateKey
	Title        string
	Color        string
	Kind         EventKind
	SourceID     int64
	ReminderTime string
	Location     string
	Display      string // habit 事件渲染为 background
}

// ProjectEvents 把任务和习惯打卡投影为日历事件
// 无截止日的任务不产生事件；已完成任务统一灰色并加 ✓ 前缀，覆盖优先级配色；
// 打卡事件同样带 ✓ 前缀，作为 background 渲染
func ProjectEvents(tasks []TaskEntry, completions []CompletionEntry) []Event {
	events := make([]Event, 0, len(tasks)+len(completions))

	for _, t := range tasks {
		if t.Due == nil || !t.Due.Valid() {
			continue
		}

		title := t.Title
		color := taskColor(t.Priority)
		if t.Completed {
			title = "✓ " + title
			color = colorTaskCompleted
		}

		events = append(events, Event{
			Date:     *t.Due,
			Title:    title,
			Color:    color,
			Kind:     KindTask,
			SourceID: t.ID,
		})
	}

	for _, c := range completions {
		if !c.Date.Valid() {
			continue
		}
		events = append(events, Event{
			Date:         c.Date,
			Title:        "✓ " + c.HabitTitle,
			Color:        colorHabit,
			Kind:         KindHabit,
			SourceID:     c.HabitID,
			ReminderTime: c.ReminderTime,
			Location:     c.Location,
			Display:      "background",
		})
	}

	return events
}

// 未知优先级按 medium 处理
func taskColor(priority string) string {
	switch priority {
	case "high":
		return colorTaskHigh
	case "low":
		return colorTaskLow
	default:
		return colorTaskMedium
	}
}

// FilterEvents 按类型过滤，kind 为空串视为 all，保持原有顺序
func FilterEvents(events []Event, kind EventKind) []Event {
	if kind == "" {
		return events
	}
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// EventsOnDay 取某一天的全部事件
func EventsOnDay(events []Event, day DateKey) []Event {
	out := make([]Event, 0, 4)
	for _, e := range events {
		if e.Date == day {
			out = append(out, e)
		}
	}
	return out
}

// DayHasMultipleTasks 某天是否有 2 个及以上任务事件（日历上用角标提示）
func DayHasMultipleTasks(events []Event, day DateKey) bool {
	count := 0
	for _, e := range events {
		if e.Kind == KindTask && e.Date == day {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}
