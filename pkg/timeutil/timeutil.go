package timeutil

import (
	"fmt"
	"time"
)

// WorkHours 计算签到与签退之间的工时（小时）。
// 签退时间早于签到时间时视为跨夜班，自动顺延一天。
// 注意：薪资对账流程不使用此函数——那里跨夜视为数据错误，两者策略不同，勿合并。
func WorkHours(checkIn, checkOut time.Time) float64 {
	if checkOut.Before(checkIn) {
		checkOut = checkOut.Add(24 * time.Hour)
	}
	return checkOut.Sub(checkIn).Seconds() / 3600
}

// FormatClock 将小时数格式化为 HH:MM 字符串
func FormatClock(hours float64) string {
	if hours < 0 {
		return ""
	}
	totalMinutes := int(hours * 60)
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}
