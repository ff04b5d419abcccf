package engine

import "time"

// DateLayout ISO 日期格式 YYYY-MM-DD
const DateLayout = "2006-01-02"

// ParseDate 解析 ISO 日期（按 UTC 处理，仅用于日历计算）
func ParseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate 格式化为 ISO 日期
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsDate 判断字符串是否为合法 ISO 日期
func IsDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

// AddDays 日期加减天数
func AddDays(date string, n int) (string, bool) {
	t, ok := ParseDate(date)
	if !ok {
		return "", false
	}
	return FormatDate(t.AddDate(0, 0, n)), true
}

// Today 取 now 所在时区的日历日期
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

func weekdaySet(days []int) [7]bool {
	var set [7]bool
	for _, d := range days {
		if d >= 0 && d <= 6 {
			set[d] = true
		}
	}
	return set
}
