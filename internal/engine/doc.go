// Package engine 课次生成与对账核心
//
// 纯函数集合，不做 I/O、不读系统时钟、不打日志：
//   - recurrence: 按星期规则展开日期序列（365 天扫描上限）
//   - generator:  由课程生成课次
//   - reconcile:  课程编辑后按变更类型对账课次
//   - replacement: 补课链接协议（资格、额度、双向链接、级联删除）
//   - stats:      按课程名汇总出勤与课时消耗
//   - query:      下一次课、列表筛选、补课资格视图
//
// "今天" 与 ID 生成器均由调用方显式传入，所有函数返回新切片而不修改入参。
package engine
