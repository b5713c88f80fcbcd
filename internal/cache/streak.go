package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"DayFlow/internal/analytics"
	"DayFlow/storage/redis"
)

const (
	streakPrefix = "habit:streak"

	// streak 按天变化，缓存到当天结束即可，这里给一个保守的上限
	streakTTL = 6 * time.Hour
)

// StreakEntry 连同最近打卡日一起缓存，命中时不必再查打卡历史
type StreakEntry struct {
	Streak        analytics.Streak   `json:"streak"`
	LastCompleted *analytics.DateKey `json:"last_completed,omitempty"`
}

// streak 缓存按「习惯 + 当天」记，跨天自动失效，不用追着日期清理
func streakKey(habitID int64, today analytics.DateKey) string {
	return redis.Key(streakPrefix, fmt.Sprintf("%d", habitID), string(today))
}

// GetStreak 读取缓存的 streak 条目，未命中返回 (nil, false)
func GetStreak(ctx context.Context, habitID int64, today analytics.DateKey) (*StreakEntry, bool, error) {
	raw, err := redis.Client().Get(ctx, streakKey(habitID, today)).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached streak: %w", err)
	}
	entry, ok := decodeStreakEntry(raw)
	return entry, ok, nil
}

// SetStreak 写入 streak 缓存
func SetStreak(ctx context.Context, habitID int64, today analytics.DateKey, entry StreakEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal streak: %w", err)
	}
	return redis.Client().Set(ctx, streakKey(habitID, today), raw, streakTTL).Err()
}

// InvalidateStreak 打卡后清掉当天的缓存，下次读取重新计算
func InvalidateStreak(ctx context.Context, habitID int64, today analytics.DateKey) error {
	if err := redis.Client().Del(ctx, streakKey(habitID, today)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate streak cache: %w", err)
	}
	return nil
}

// 缓存内容损坏直接当未命中
func decodeStreakEntry(raw []byte) (*StreakEntry, bool) {
	var entry StreakEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false
	}
	return &entry, true
}
