package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Tzu-An-Wang/ForBRO/internal/model"
)

// ── 打卡表对账核心 ──
//
// 上传的打卡表是一张纵向表：员工姓名行 → 若干 上班/下班 行 → 總時數 行，
// 依次重复。这里把整个流程拆成三步：
//   1. 归类（ClassifyRow）：摄入时给每一行打上明确的标签枚举，后续不再做字符串判断
//   2. 分段（SegmentEvents）：按姓名行与總時數行切出每位员工的打卡块
//   3. 对账（Reconciler.Reconcile）：逐块配对 上班/下班，计算工时与两档加班费

// EventLabel 打卡表行标签
type EventLabel int

const (
	LabelBlank    EventLabel = iota // 空标签行
	LabelClockIn                    // 上班
	LabelClockOut                   // 下班
	LabelTotals                     // 總時數 合计行
	LabelName                       // 员工姓名行
)

// 打卡表中的字面标记（上传文件为繁体，必须原样匹配）
const (
	tokenClockIn  = "上班"
	tokenClockOut = "下班"
	tokenTotals   = "總時數"
)

// ClockEvent 打卡表的一行
type ClockEvent struct {
	Label     EventLabel
	Name      string // Label 为 LabelName 时的姓名
	Timestamp string // 原始时间戳字符串
	Index     int    // 上传表中的行号（从 1 起，供警告定位）
}

// ClassifyRow 归类一行打卡数据
// 标签列包含 總時數 即视为合计行；上班/下班 必须整列精确匹配
func ClassifyRow(label, timestamp string, index int) ClockEvent {
	ev := ClockEvent{Timestamp: timestamp, Index: index}

	trimmed := strings.TrimSpace(label)
	switch {
	case trimmed == "":
		ev.Label = LabelBlank
	case trimmed == tokenClockIn:
		ev.Label = LabelClockIn
	case trimmed == tokenClockOut:
		ev.Label = LabelClockOut
	case strings.Contains(trimmed, tokenTotals):
		ev.Label = LabelTotals
	default:
		ev.Label = LabelName
		ev.Name = trimmed
	}
	return ev
}

// EmployeeBlock 一位员工的连续打卡块
type EmployeeBlock struct {
	Nickname string
	Events   []ClockEvent // 仅含 上班/下班 行，保持原始顺序
}

// SegmentResult 分段结果
type SegmentResult struct {
	Blocks   []EmployeeBlock // 按打卡表出现顺序
	Warnings []string
}

// SegmentEvents 把归类后的打卡表切成每位员工的打卡块
//
// 规则：
//   - 姓名行（首次出现）为块起点，其后第一个 總時數 行为块终点（无则到表尾）
//   - 块内只保留 上班/下班 行
//   - 表中姓名不在名册 → 警告并跳过；名册员工无任何打卡行 → 警告并跳过
//   - 同名出现多次时只用首次出现定位（沿用旧系统行为）
func SegmentEvents(events []ClockEvent, roster map[string]*model.Employee) SegmentResult {
	var result SegmentResult

	// 收集 總時數 行位置（升序）
	var totalsIdx []int
	for i, ev := range events {
		if ev.Label == LabelTotals {
			totalsIdx = append(totalsIdx, i)
		}
	}

	// 按出现顺序收集表中姓名（去重，仅保留首次出现）
	firstAt := make(map[string]int)
	var names []string
	for i, ev := range events {
		if ev.Label != LabelName {
			continue
		}
		if _, seen := firstAt[ev.Name]; !seen {
			firstAt[ev.Name] = i
			names = append(names, ev.Name)
		}
	}

	for _, name := range names {
		if _, ok := roster[name]; !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("打卡表第 %d 列的員工 '%s' 不在名冊中，已略過",
					events[firstAt[name]].Index, name))
			continue
		}

		start := firstAt[name]

		// 块终点：起点之后第一个 總時數 行（含）
		end := len(events) - 1
		for _, ti := range totalsIdx {
			if ti > start {
				end = ti
				break
			}
		}

		block := EmployeeBlock{Nickname: name}
		for _, ev := range events[start : end+1] {
			if ev.Label == LabelClockIn || ev.Label == LabelClockOut {
				block.Events = append(block.Events, ev)
			}
		}
		result.Blocks = append(result.Blocks, block)
	}

	// 反向核对：名册中有、打卡表中无的员工（按綽號排序保证警告顺序稳定）
	var missing []string
	for nickname := range roster {
		if _, ok := firstAt[nickname]; !ok {
			missing = append(missing, nickname)
		}
	}
	sort.Strings(missing)
	for _, nickname := range missing {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("名冊中的員工 '%s' 在打卡表中沒有任何記錄，已略過", nickname))
	}

	return result
}

// ── 对账 ──

// WorkRecord 一对 上班/下班 的对账记录
// Valid 为 false 时数值字段全部无效（时间戳无法解析），
// 但 Date/ClockIn/ClockOut 保留原始字符串供人工核对。
type WorkRecord struct {
	Date       string
	ClockIn    string
	ClockOut   string
	Valid      bool
	WorkHours  float64 // 工作時數
	HoursTier1 float64 // 8-10 小时区间（0.2 小时刻度）
	HoursTier2 float64 // 10 小时以上区间（0.2 小时刻度）
	PayTier1   float64
	PayTier2   float64
}

// EmployeeReport 一位员工的完整对账报表
// 月薪与平均薪資挂在报表头；是否只在首行呈现由渲染层决定
type EmployeeReport struct {
	Nickname   string
	Salary     float64
	HourlyRate float64
	Records    []WorkRecord
	Warnings   []string // 非致命提醒（薪资异常、时长异常等）
}

// OvernightShiftError 跨夜班数据错误
// 同一日期内 下班 早于 上班 说明打卡数据本身有误（本店不存在跨夜班），
// 必须人工修正源文件，因此整次计算立即中止。
type OvernightShiftError struct {
	Nickname string
	Date     string
	ClockIn  string
	ClockOut string
}

func (e *OvernightShiftError) Error() string {
	return fmt.Sprintf("員工 '%s' 在 %s 偵測到跨夜班記錄（上班 %s / 下班 %s），打卡資料有誤，請先修正來源檔案",
		e.Nickname, e.Date, e.ClockIn, e.ClockOut)
}

// Reconciler 打卡对账器
// 两档加班费倍率来自配置（预设 1.33 / 1.67）
type Reconciler struct {
	Tier1Multiplier float64
	Tier2Multiplier float64
}

// Reconcile 对一位员工的打卡块做配对与加班费计算
//
// 配对采用相邻扫描：当前两行恰为（上班, 下班）则消费两行；
// 否则前进一行，落单的打卡行被静默丢弃（沿用旧系统行为，见 DESIGN.md）。
// 偵測到跨夜班时返回 *OvernightShiftError，整块计算中止。
func (rc Reconciler) Reconcile(block EmployeeBlock, salary, hourlyRate float64) (*EmployeeReport, error) {
	report := &EmployeeReport{Nickname: block.Nickname}

	if salary <= 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("員工 '%s' 的月薪無效（%.2f），以 0 計算", block.Nickname, salary))
		salary = 0
	}
	if hourlyRate <= 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("員工 '%s' 的平均薪資無效（%.2f），以 0 計算", block.Nickname, hourlyRate))
		hourlyRate = 0
	}
	report.Salary = salary
	report.HourlyRate = hourlyRate

	i := 0
	for i < len(block.Events)-1 {
		if block.Events[i].Label != LabelClockIn || block.Events[i+1].Label != LabelClockOut {
			i++ // 落单行：跳过
			continue
		}

		inEv := block.Events[i]
		record, err := rc.reconcilePair(block.Nickname, inEv.Timestamp, block.Events[i+1].Timestamp,
			inEv.Index, hourlyRate, report)
		if err != nil {
			return nil, err
		}
		report.Records = append(report.Records, record)

		i += 2
	}

	return report, nil
}

// reconcilePair 处理一对打卡时间戳
// 解析失败返回哨兵记录（Valid=false），跨夜班返回硬错误
func (rc Reconciler) reconcilePair(nickname, inRaw, outRaw string, rowIndex int, hourlyRate float64, report *EmployeeReport) (WorkRecord, error) {
	datePart, inTime := splitTimestamp(inRaw)
	_, outTime := splitTimestamp(outRaw)

	record := WorkRecord{Date: datePart, ClockIn: inTime, ClockOut: outTime}

	layout := "2006/1/2 15:04"
	if strings.Contains(inRaw, "-") {
		layout = "2006-1-2 15:04:05"
	}

	inDT, errIn := time.Parse(layout, datePart+" "+inTime)
	outDT, errOut := time.Parse(layout, datePart+" "+outTime)
	if errIn != nil || errOut != nil {
		// 哨兵记录：保留原始字符串，数值字段全部无效
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("員工 '%s' 第 %d 列的打卡時間無法解析（%s），該筆記錄不計工時",
				nickname, rowIndex, datePart))
		return record, nil
	}

	// 同一日期内 下班 早于 上班 → 跨夜班，硬错误
	if outDT.Before(inDT) {
		return WorkRecord{}, &OvernightShiftError{
			Nickname: nickname,
			Date:     datePart,
			ClockIn:  inTime,
			ClockOut: outTime,
		}
	}

	workHours := outDT.Sub(inDT).Seconds() / 3600
	if workHours > 24 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("員工 '%s' 在 %s 的工時異常：%.2f 小時", nickname, datePart, workHours))
	}

	record.Valid = true
	record.WorkHours = workHours

	// 8-10 小时区间：上限 2 小时
	if workHours > 8 {
		tier1 := workHours - 8
		if workHours >= 10 {
			tier1 = 2
		}
		record.HoursTier1 = roundUpToFifth(tier1)
	}

	// 10 小时以上区间：无上限（但费率表止于 12 小时，超出部分不另设档）
	if workHours > 10 {
		record.HoursTier2 = roundUpToFifth(workHours - 10)
	}

	record.PayTier1 = record.HoursTier1 * hourlyRate * rc.Tier1Multiplier
	record.PayTier2 = record.HoursTier2 * hourlyRate * rc.Tier2Multiplier

	return record, nil
}

// splitTimestamp 按第一个空白把时间戳拆成日期与时刻
// 没有时刻部分时沿用整串（解析必然失败，走哨兵路径）
func splitTimestamp(raw string) (datePart, timePart string) {
	fields := strings.Fields(raw)
	switch len(fields) {
	case 0:
		return raw, raw
	case 1:
		return fields[0], raw
	default:
		return fields[0], fields[1]
	}
}

// roundUpToFifth 把小时数向上取整到 0.2 小时（12 分钟）刻度
// 整数小时部分不动，分钟零头按 ceil(分钟/12)*0.2 进位
func roundUpToFifth(hours float64) float64 {
	minutesFraction := math.Mod(hours*60, 60)
	return float64(int(hours)) + math.Ceil(minutesFraction/12)*0.2
}

// ── 汇总 ──

// SummaryRow 薪資摘要中的一行
type SummaryRow struct {
	Nickname      string
	Salary        float64
	HourlyRate    float64
	TotalHours    float64
	TotalPayTier1 float64
	TotalPayTier2 float64
	TotalOvertime float64
}

// Summarize 汇总所有员工报表
// 哨兵记录（Valid=false）不计入任何合计，单笔坏数据不影响整行摘要。
// 逐笔先取 2 位小数再累加，保证摘要合计与报表各行呈现值逐笔相加一致
func Summarize(reports []*EmployeeReport) []SummaryRow {
	rows := make([]SummaryRow, 0, len(reports))
	for _, r := range reports {
		row := SummaryRow{
			Nickname:   r.Nickname,
			Salary:     r.Salary,
			HourlyRate: r.HourlyRate,
		}
		for _, rec := range r.Records {
			if !rec.Valid {
				continue
			}
			row.TotalHours += round2(rec.WorkHours)
			row.TotalPayTier1 += round2(rec.PayTier1)
			row.TotalPayTier2 += round2(rec.PayTier2)
		}
		row.TotalOvertime = row.TotalPayTier1 + row.TotalPayTier2
		rows = append(rows, row)
	}
	return rows
}

// round2 四舍五入到 2 位小数（报表呈现精度）
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
