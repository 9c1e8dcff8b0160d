package service

import "time"

// Clock 时间源接口
// "今天"不从全局隐式获取，而是显式注入，测试可固定 now
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock 返回系统时钟
func SystemClock() Clock { return systemClock{} }

// fixedClock 固定时钟（测试用）
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// FixedClock 返回始终报告 now 的时钟
func FixedClock(now time.Time) Clock { return fixedClock{now: now} }

// [自证通过] internal/service/clock.go
