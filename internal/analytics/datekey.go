package analytics

import (
	"fmt"
	"time"
)

// DateKey 规范化的日历日键，格式 YYYY-MM-DD，始终按记录所在时区的本地日取值
// streak、窗口统计、日历分组全部用它比较，避免 ISO 字符串截断和时区漂移
type DateKey string

const dateKeyLayout = "2006-01-02"

const daySeconds = 24 * 60 * 60

// DateParseError 输入日期无法解析时返回，调用方跳过该条记录而不是中断整个计算
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("invalid date value %q: %v", e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// ToDateKey 取 t 在其自身 Location 下的日历日
func ToDateKey(t time.Time) DateKey {
	return DateKey(t.Format(dateKeyLayout))
}

// Today 返回 loc 时区下的今天
func Today(loc *time.Location) DateKey {
	if loc == nil {
		loc = time.Local
	}
	return ToDateKey(time.Now().In(loc))
}

// ParseDateKey 解析日期字符串为 DateKey
// 接受纯日期和常见的带时间戳格式，时间部分截断到日；无法解析返回 *DateParseError
func ParseDateKey(value string) (DateKey, error) {
	if value == "" {
		return "", &DateParseError{Value: value, Err: fmt.Errorf("empty value")}
	}

	layouts := []string{
		dateKeyLayout,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}

	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return ToDateKey(t), nil
		}
		lastErr = err
	}

	return "", &DateParseError{Value: value, Err: lastErr}
}

// Valid 报告 k 是否是规范的 YYYY-MM-DD
func (k DateKey) Valid() bool {
	_, err := time.Parse(dateKeyLayout, string(k))
	return err == nil
}

// dayNumber 把日键折算成自 epoch 起的天序号
// 统一在 UTC 做日算术，DST 切换不会挪动任何一天
func (k DateKey) dayNumber() (int64, bool) {
	t, err := time.ParseInLocation(dateKeyLayout, string(k), time.UTC)
	if err != nil {
		return 0, false
	}
	return t.Unix() / daySeconds, true
}

// AddDays 返回 k 偏移 n 天后的日键，n 可为负
func (k DateKey) AddDays(n int) DateKey {
	t, err := time.ParseInLocation(dateKeyLayout, string(k), time.UTC)
	if err != nil {
		return k
	}
	return DateKey(t.AddDate(0, 0, n).Format(dateKeyLayout))
}

// DaysBetween 返回 from 到 to 的有符号整天数差（to 在 from 之后为正）
func DaysBetween(from, to DateKey) (int, error) {
	a, ok := from.dayNumber()
	if !ok {
		return 0, &DateParseError{Value: string(from), Err: fmt.Errorf("not a date key")}
	}
	b, ok := to.dayNumber()
	if !ok {
		return 0, &DateParseError{Value: string(to), Err: fmt.Errorf("not a date key")}
	}
	return int(b - a), nil
}
