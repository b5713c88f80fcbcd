package analytics

import "sort"

// Streak 连续打卡天数统计结果
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// ComputeStreak 计算一个习惯的当前连续天数和历史最长连续天数
//
// current 只在最近一次打卡是 today 或昨天时非零，从最近一天往回数，
// 间隔恰好 1 天则延续，否则停止；longest 是所有连续段的最大长度。
// 重复日期和非法日期会被忽略，空输入返回 {0, 0}。
func ComputeStreak(keys []DateKey, today DateKey) Streak {
	todayNum, ok := today.dayNumber()
	if !ok {
		return Streak{}
	}

	// 去重，同一天多条记录只算一次
	uniq := make(map[int64]struct{}, len(keys))
	for _, k := range keys {
		day, ok := k.dayNumber()
		if !ok {
			continue
		}
		uniq[day] = struct{}{}
	}

	if len(uniq) == 0 {
		return Streak{}
	}

	days := make([]int64, 0, len(uniq))
	for d := range uniq {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] }) // 最近的在前

	var result Streak

	// current：锚定在今天或昨天，往回走
	if days[0] == todayNum || days[0] == todayNum-1 {
		result.Current = 1
		for i := 0; i < len(days)-1; i++ {
			if days[i]-days[i+1] != 1 {
				break
			}
			result.Current++
		}
	}

	// longest：升序扫描所有连续段
	run := 1
	result.Longest = 1
	for i := len(days) - 1; i > 0; i-- {
		if days[i]-days[i-1] == -1 {
			run++
			if run > result.Longest {
				result.Longest = run
			}
		} else {
			run = 1
		}
	}

	return result
}

// LastCompleted 返回最近一次打卡的日键，没有有效记录时返回 nil
func LastCompleted(keys []DateKey) *DateKey {
	var best *DateKey
	var bestNum int64
	for i := range keys {
		day, ok := keys[i].dayNumber()
		if !ok {
			continue
		}
		if best == nil || day > bestNum {
			best = &keys[i]
			bestNum = day
		}
	}
	return best
}
