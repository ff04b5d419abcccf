package engine

import (
	"iter"
	"slices"
)

// MaxScanDays 展开时最多扫描的自然日数（按日历天计，不是命中次数）。
// 每年不足一次的课程或很大的课次目标会在此处被静默截断。
const MaxScanDays = 365

// Limits 展开终止条件，零值字段表示未设置；同时设置时先触发者生效
type Limits struct {
	TotalLessons int    // 课次上限
	Consumed     int    // 已计入上限的课次（对账时的历史课次）
	EndDate      string // 截止日期（含）
}

func (l Limits) reached(added int, date string) bool {
	if l.TotalLessons > 0 && added+l.Consumed >= l.TotalLessons {
		return true
	}
	if l.EndDate != "" && date > l.EndDate {
		return true
	}
	return false
}

// Expand 从 start（含）逐日扫描，产出星期落在 days 中的日期。
// 返回的序列可重复遍历，每次遍历都从 start 重新开始。
// start 非法时序列为空。
func Expand(start string, days []int, lim Limits) iter.Seq[string] {
	return func(yield func(string) bool) {
		scan(start, days, lim, yield)
	}
}

// ExpandAll 展开为切片
func ExpandAll(start string, days []int, lim Limits) []string {
	return slices.Collect(Expand(start, days, lim))
}

// scan 执行展开并返回实际扫描的日历天数
func scan(start string, days []int, lim Limits, yield func(string) bool) int {
	cur, ok := ParseDate(start)
	if !ok {
		return 0
	}
	set := weekdaySet(days)

	added, scanned := 0, 0
	for scanned < MaxScanDays {
		date := FormatDate(cur)
		if lim.reached(added, date) {
			break
		}
		if set[cur.Weekday()] {
			if !yield(date) {
				return scanned
			}
			added++
		}
		cur = cur.AddDate(0, 0, 1)
		scanned++
	}
	return scanned
}
