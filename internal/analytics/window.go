package analytics

import "math"

// Completion 某个习惯在某一天的一次打卡记录
type Completion struct {
	HabitID int64
	Date    DateKey
}

// DayCompletion 窗口内某一天的汇总结果
type DayCompletion struct {
	Date       DateKey
	Completed  int
	Total      int
	Percentage int
}

// Level 每日完成率分档，用于 dashboard 着色
type Level string

const (
	LevelGood    Level = "good"
	LevelWarning Level = "warning"
	LevelBad     Level = "bad"
)

// ClassifyPercentage 完成率分档：>=80 good，50-79 warning，<50 bad
func ClassifyPercentage(pct int) Level {
	switch {
	case pct >= 80:
		return LevelGood
	case pct >= 50:
		return LevelWarning
	default:
		return LevelBad
	}
}

// CompletionWindow 计算以 today 结尾、长度 windowDays 的每日完成率序列
// 返回值从最旧到最新排列，长度恒等于 windowDays（windowDays <= 0 返回空）
// 同一习惯同一天多条记录只算一次；totalActive 为 0 时当天比例记 0
func CompletionWindow(totalActive int, completions []Completion, windowDays int, today DateKey) []DayCompletion {
	if windowDays <= 0 || !today.Valid() {
		return nil
	}

	// 去重：day -> 打过卡的 habit 集合
	type habitSet map[int64]struct{}
	byDay := make(map[DateKey]habitSet)
	for _, c := range completions {
		if !c.Date.Valid() {
			continue
		}
		set, ok := byDay[c.Date]
		if !ok {
			set = make(habitSet)
			byDay[c.Date] = set
		}
		set[c.HabitID] = struct{}{}
	}

	out := make([]DayCompletion, 0, windowDays)
	for offset := windowDays - 1; offset >= 0; offset-- {
		day := today.AddDays(-offset)
		completed := len(byDay[day])

		pct := 0
		if totalActive > 0 {
			pct = int(math.Round(float64(completed) / float64(totalActive) * 100))
		}

		out = append(out, DayCompletion{
			Date:       day,
			Completed:  completed,
			Total:      totalActive,
			Percentage: pct,
		})
	}
	return out
}
