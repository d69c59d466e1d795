package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Tzu-An-Wang/ForBRO/config"
	"github.com/Tzu-An-Wang/ForBRO/internal/dto"
	"github.com/Tzu-An-Wang/ForBRO/internal/model"
	"github.com/Tzu-An-Wang/ForBRO/internal/repository"
)

// ── 薪资模块业务错误 ──

var (
	ErrPayrollBadFile      = errors.New("無法解析打卡記錄 Excel 檔案")
	ErrPayrollEmptyFile    = errors.New("打卡記錄檔案沒有資料")
	ErrPayrollEmptyRoster  = errors.New("名冊中沒有任何員工資料")
	ErrPayrollNoRecords    = errors.New("沒有任何員工產生有效的打卡記錄")
	ErrPayrollGenerateFail = errors.New("生成薪資報表 Excel 失敗")
)

// 报表里的「不可用」占位（沿用旧报表约定）
const notAvailable = "N/A"

// PayrollService 薪资计算业务接口
//
// 设计说明：
//   - 每次上传独立处理，不跨请求缓存结果
//   - Calculate 返回 JSON 预览；Export 对同一份上传直接产出多 Sheet Excel
//   - 跨夜班属于源数据错误，整次计算中止并原样上抛 *OvernightShiftError
type PayrollService interface {
	Calculate(ctx context.Context, r io.Reader) (*dto.PayrollResponse, error)
	Export(ctx context.Context, r io.Reader) (*bytes.Buffer, string, error)
}

type payrollService struct {
	cfg    *config.PayrollConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPayrollService 创建 PayrollService 实例
func NewPayrollService(cfg *config.PayrollConfig, repo *repository.Repository, logger *zap.Logger) PayrollService {
	return &payrollService{cfg: cfg, repo: repo, logger: logger}
}

// payrollResult 一次上传的内部计算结果
type payrollResult struct {
	reports  []*EmployeeReport // 按打卡表出现顺序
	summary  []SummaryRow
	warnings []string
}

// Calculate 计算一次上传的薪资结果（JSON 预览）
func (s *payrollService) Calculate(ctx context.Context, r io.Reader) (*dto.PayrollResponse, error) {
	result, err := s.process(ctx, r)
	if err != nil {
		return nil, err
	}
	return s.toResponse(result), nil
}

// Export 计算并导出多 Sheet 薪资报表 Excel
func (s *payrollService) Export(ctx context.Context, r io.Reader) (*bytes.Buffer, string, error) {
	result, err := s.process(ctx, r)
	if err != nil {
		return nil, "", err
	}

	buf, err := s.renderExcel(result)
	if err != nil {
		s.logger.Error("写入薪资报表 Excel 失败", zap.Error(err))
		return nil, "", ErrPayrollGenerateFail
	}

	filename := fmt.Sprintf("員工薪資報表_%s.xlsx", time.Now().Format("20060102_1504"))
	return buf, filename, nil
}

// process 完整跑一遍：读文件 → 归类 → 分段 → 逐员工对账 → 汇总
func (s *payrollService) process(ctx context.Context, r io.Reader) (*payrollResult, error) {
	events, err := parseTimeclockFile(r)
	if err != nil {
		return nil, err
	}

	employees, err := s.repo.Employee.List(ctx)
	if err != nil {
		s.logger.Error("读取员工名册失败", zap.Error(err))
		return nil, err
	}
	if len(employees) == 0 {
		return nil, ErrPayrollEmptyRoster
	}

	roster := make(map[string]*model.Employee, len(employees))
	for i := range employees {
		roster[employees[i].Nickname] = &employees[i]
	}

	seg := SegmentEvents(events, roster)

	result := &payrollResult{warnings: seg.Warnings}
	rc := Reconciler{
		Tier1Multiplier: s.cfg.Tier1Multiplier,
		Tier2Multiplier: s.cfg.Tier2Multiplier,
	}

	for _, block := range seg.Blocks {
		emp := roster[block.Nickname]
		report, err := rc.Reconcile(block, emp.Salary, emp.HourlyRate)
		if err != nil {
			// 跨夜班：整次计算中止（见 OvernightShiftError）
			return nil, err
		}
		result.warnings = append(result.warnings, report.Warnings...)

		if len(report.Records) == 0 {
			result.warnings = append(result.warnings,
				fmt.Sprintf("員工 '%s' 沒有任何有效的打卡配對，已略過", block.Nickname))
			continue
		}
		result.reports = append(result.reports, report)
	}

	if len(result.reports) == 0 {
		return nil, ErrPayrollNoRecords
	}

	result.summary = Summarize(result.reports)

	s.logger.Info("薪资计算完成",
		zap.Int("employees", len(result.reports)),
		zap.Int("warnings", len(result.warnings)),
	)

	return result, nil
}

// parseTimeclockFile 把上传的打卡 Excel 读成归类后的事件序列
// 首个 Sheet，首行为表头；第 1 列为标签，第 2 列为时间戳
func parseTimeclockFile(r io.Reader) ([]ClockEvent, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayrollBadFile, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayrollBadFile, err)
	}
	if len(rows) < 2 {
		return nil, ErrPayrollEmptyFile
	}

	events := make([]ClockEvent, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		var label, timestamp string
		if len(rows[i]) > 0 {
			label = rows[i][0]
		}
		if len(rows[i]) > 1 {
			timestamp = rows[i][1]
		}
		events = append(events, ClassifyRow(label, timestamp, i+1))
	}

	return events, nil
}

// ── DTO 转换 ──

func (s *payrollService) toResponse(result *payrollResult) *dto.PayrollResponse {
	resp := &dto.PayrollResponse{Warnings: result.warnings}

	for _, row := range result.summary {
		resp.Summary = append(resp.Summary, dto.PayrollSummaryResponse{
			Nickname:      row.Nickname,
			Salary:        groupThousands(row.Salary),
			HourlyRate:    formatFloat2(row.HourlyRate),
			TotalHours:    formatFloat2(row.TotalHours),
			TotalPayTier1: formatFloat2(row.TotalPayTier1),
			TotalPayTier2: formatFloat2(row.TotalPayTier2),
			TotalOvertime: formatFloat2(row.TotalOvertime),
		})
	}

	for _, report := range result.reports {
		r := dto.PayrollReportResponse{
			Nickname:   report.Nickname,
			Salary:     groupThousands(report.Salary),
			HourlyRate: formatFloat2(report.HourlyRate),
		}
		for _, rec := range report.Records {
			r.Records = append(r.Records, toRecordResponse(rec))
		}
		resp.Reports = append(resp.Reports, r)
	}

	return resp
}

func toRecordResponse(rec WorkRecord) dto.PayrollRecordResponse {
	out := dto.PayrollRecordResponse{
		Date:     rec.Date,
		ClockIn:  rec.ClockIn,
		ClockOut: rec.ClockOut,
	}
	if !rec.Valid {
		out.WorkHours = notAvailable
		out.WorkTime = notAvailable
		out.HoursTier1 = notAvailable
		out.HoursTier2 = notAvailable
		out.PayTier1 = notAvailable
		out.PayTier2 = notAvailable
		return out
	}
	out.WorkHours = formatFloat2(rec.WorkHours)
	out.WorkTime = formatWorkTime(rec.WorkHours)
	out.HoursTier1 = formatFloat1(rec.HoursTier1)
	out.HoursTier2 = formatFloat1(rec.HoursTier2)
	out.PayTier1 = formatFloat2(rec.PayTier1)
	out.PayTier2 = formatFloat2(rec.PayTier2)
	return out
}

// ── Excel 渲染 ──

// 员工明细 Sheet 表头（沿用旧报表列序）
var payrollSheetHeader = []string{
	"日期", "上班", "下班", "工作時數(小時)", "工作時間",
	"8-10小時區間", "10-12小時區間", "8-10小時加班費", "10-12小時加班費",
	"工資", "平均薪資",
}

// 薪資摘要 Sheet 表头
var summarySheetHeader = []string{
	"員工綽號", "月薪", "時薪", "總工時",
	"8-10小時加班費總計", "10-12小時加班費總計", "總加班費",
}

func (s *payrollService) renderExcel(result *payrollResult) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	// 摘要 Sheet 在最前
	const summarySheet = "薪資摘要"
	idx, err := f.NewSheet(summarySheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	if err := f.SetSheetRow(summarySheet, "A1", &summarySheetHeader); err != nil {
		return nil, err
	}
	for i, row := range result.summary {
		cells := []string{
			row.Nickname,
			groupThousands(row.Salary),
			formatFloat2(row.HourlyRate),
			formatFloat2(row.TotalHours),
			formatFloat2(row.TotalPayTier1),
			formatFloat2(row.TotalPayTier2),
			formatFloat2(row.TotalOvertime),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(summarySheet, cell, &cells); err != nil {
			return nil, err
		}
	}

	// 每位员工一个 Sheet
	for _, report := range result.reports {
		sheet := sanitizeSheetName(report.Nickname)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, "A1", &payrollSheetHeader); err != nil {
			return nil, err
		}

		for i, rec := range report.Records {
			row := toRecordResponse(rec)
			// 工資/平均薪資 只在首行呈现（旧报表的显示约定）
			salary, rate := "", ""
			if i == 0 {
				salary = groupThousands(report.Salary)
				rate = formatFloat2(report.HourlyRate)
			}
			cells := []string{
				row.Date, row.ClockIn, row.ClockOut,
				row.WorkHours, row.WorkTime,
				row.HoursTier1, row.HoursTier2,
				row.PayTier1, row.PayTier2,
				salary, rate,
			}
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
				return nil, err
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// sanitizeSheetName 清理 Excel Sheet 名：截断到 31 字符并替换非法字符
func sanitizeSheetName(name string) string {
	runes := []rune(name)
	if len(runes) > 31 {
		runes = runes[:31]
	}
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", "?", "_", "*", "_",
		"[", "_", "]", "_", ":", "_",
	)
	return replacer.Replace(string(runes))
}

// ── 数值格式化（旧报表格式）──

func formatFloat2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatFloat1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// formatWorkTime 把小时数格式化为「X hours Y min」
func formatWorkTime(hours float64) string {
	h := int(hours)
	m := int((hours - float64(h)) * 60)
	return fmt.Sprintf("%d hours %d min", h, m)
}

// groupThousands 整数千分位，如 30000 → "30,000"
func groupThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, ch := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
