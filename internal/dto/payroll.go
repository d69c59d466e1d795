package dto

// ── 薪资计算模块 DTO ──
//
// 数值字段统一以格式化字符串返回，前端原样呈现；
// 无法解析的打卡对以 "N/A" 占位（与旧报表约定一致）。

// PayrollRecordResponse 单日打卡对账记录
type PayrollRecordResponse struct {
	Date       string `json:"date"`
	ClockIn    string `json:"clock_in"`
	ClockOut   string `json:"clock_out"`
	WorkHours  string `json:"work_hours"`         // 工作時數(小時)，如 "9.50"
	WorkTime   string `json:"work_time"`          // 工作時間，如 "9 hours 30 min"
	HoursTier1 string `json:"hours_8_10"`         // 8-10小時區間
	HoursTier2 string `json:"hours_10_12"`        // 10-12小時區間
	PayTier1   string `json:"overtime_pay_8_10"`  // 8-10小時加班費
	PayTier2   string `json:"overtime_pay_10_12"` // 10-12小時加班費
}

// PayrollReportResponse 单个员工的对账报表
// 月薪与平均薪資挂在报表头上，由呈现层决定是否只在首行显示
type PayrollReportResponse struct {
	Nickname   string                  `json:"nickname"`
	Salary     string                  `json:"salary"`
	HourlyRate string                  `json:"hourly_rate"`
	Records    []PayrollRecordResponse `json:"records"`
}

// PayrollSummaryResponse 薪资摘要中的一行（每员工一行）
type PayrollSummaryResponse struct {
	Nickname      string `json:"nickname"`
	Salary        string `json:"salary"`
	HourlyRate    string `json:"hourly_rate"`
	TotalHours    string `json:"total_hours"`
	TotalPayTier1 string `json:"total_pay_8_10"`
	TotalPayTier2 string `json:"total_pay_10_12"`
	TotalOvertime string `json:"total_overtime_pay"`
}

// PayrollResponse 一次上传的完整计算结果
type PayrollResponse struct {
	Summary  []PayrollSummaryResponse `json:"summary"`
	Reports  []PayrollReportResponse  `json:"reports"`
	Warnings []string                 `json:"warnings,omitempty"`
}
