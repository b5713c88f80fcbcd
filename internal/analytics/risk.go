package analytics

// Risk 习惯当前 streak 的风险状态
type Risk string

const (
	RiskSafe     Risk = "safe"      // 今天已打卡
	RiskInDanger Risk = "in_danger" // 昨天打了、今天还没打，streak 还活着
	RiskNoStreak Risk = "no_streak" // 没有存活的 streak
)

// EvaluateRisk 根据最近一次打卡日判断 streak 风险
// 只有「恰好是昨天」才算 InDanger，更早的都是已断（NoStreak），不做提醒
func EvaluateRisk(lastCompleted *DateKey, today DateKey) Risk {
	if lastCompleted == nil {
		return RiskNoStreak
	}

	diff, err := DaysBetween(*lastCompleted, today)
	if err != nil {
		return RiskNoStreak
	}

	switch diff {
	case 0:
		return RiskSafe
	case 1:
		return RiskInDanger
	default:
		return RiskNoStreak
	}
}
