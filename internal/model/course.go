package model

import "slices"

// Course 课程（重复规则定义）
//
// EndDate 与 TotalLessons 在前端互斥，数据层不强制；两者都为零值时表示未设置。
type Course struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartDate    string `json:"startDate"`              // YYYY-MM-DD，生成下界（含）
	DaysOfWeek   []int  `json:"daysOfWeek"`             // 0=周日 … 6=周六
	EndDate      string `json:"endDate,omitempty"`      // YYYY-MM-DD，生成上界（含）
	TotalLessons int    `json:"totalLessons,omitempty"` // 常规课次上限
}

// MeetsOn 判断课程是否在指定星期上课
func (c *Course) MeetsOn(weekday int) bool {
	return slices.Contains(c.DaysOfWeek, weekday)
}

// WeekdaySet 返回去重排序后的上课星期集合
func (c *Course) WeekdaySet() []int {
	days := slices.Clone(c.DaysOfWeek)
	slices.Sort(days)
	return slices.Compact(days)
}
