package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Tzu-An-Wang/ForBRO/internal/dto"
)

// ── POS 转换模块业务错误 ──

var (
	ErrPOSBadFile      = errors.New("無法解析 POS Excel 檔案")
	ErrPOSNoData       = errors.New("POS 檔案中沒有任何小結資料")
	ErrPOSGenerateFail = errors.New("生成轉換後 Excel 失敗")
)

// 小結行标记（POS 导出为繁体，原样匹配）
const tokenSubtotal = "小結"

// POSService POS 报表转换业务接口
//
// 把 POS 机导出的流水 Excel 整理成会计用格式：
// 只保留每日小結行，按日期升序排列，并补上累计营收栏。
type POSService interface {
	Convert(r io.Reader) (*dto.POSConvertResponse, error)
	Export(r io.Reader) (*bytes.Buffer, string, error)
}

type posService struct {
	logger *zap.Logger
}

// NewPOSService 创建 POSService 实例
func NewPOSService(logger *zap.Logger) POSService {
	return &posService{logger: logger}
}

// posRow 内部中间行
type posRow struct {
	date    time.Time
	revenue float64
}

// Convert 转换并返回 JSON 预览
func (s *posService) Convert(r io.Reader) (*dto.POSConvertResponse, error) {
	rows, warnings, err := s.parse(r)
	if err != nil {
		return nil, err
	}

	resp := &dto.POSConvertResponse{Warnings: warnings}
	var cumulative float64
	for _, row := range rows {
		cumulative += row.revenue
		resp.Rows = append(resp.Rows, dto.POSRowResponse{
			Date:       row.date.Format("2006/1/2"),
			Revenue:    row.revenue,
			Cumulative: cumulative,
		})
	}
	return resp, nil
}

// Export 转换并产出下载用 Excel
func (s *posService) Export(r io.Reader) (*bytes.Buffer, string, error) {
	resp, err := s.Convert(r)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	header := []string{"時間", "營業額", "累積營收/現金", "備註"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, "", ErrPOSGenerateFail
	}
	for i, row := range resp.Rows {
		cells := []interface{}{row.Date, row.Revenue, row.Cumulative, row.Remark}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, "", ErrPOSGenerateFail
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 POS 转换 Excel 失败", zap.Error(err))
		return nil, "", ErrPOSGenerateFail
	}

	return buf, "修改後資料.xlsx", nil
}

// parse 读取上传文件并抽取小結行（按日期升序）
// 首个 Sheet，首行为表头；第 2 列为行类型，第 3 列为日期，第 4 列为金额
func (s *posService) parse(r io.Reader) ([]posRow, []string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrPOSBadFile, err)
	}
	defer f.Close()

	excelRows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrPOSBadFile, err)
	}

	var rows []posRow
	var warnings []string
	for i := 1; i < len(excelRows); i++ {
		row := excelRows[i]
		if len(row) < 4 || strings.TrimSpace(row[1]) != tokenSubtotal {
			continue
		}

		date, err := parsePOSDate(strings.TrimSpace(row[2]))
		if err != nil {
			warnings = append(warnings,
				fmt.Sprintf("第 %d 行的日期 '%s' 無法解析，已略過", i+1, row[2]))
			continue
		}

		revenue, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(row[3]), ",", ""), 64)
		if err != nil {
			warnings = append(warnings,
				fmt.Sprintf("第 %d 行的金額 '%s' 無法解析，已略過", i+1, row[3]))
			continue
		}

		rows = append(rows, posRow{date: date, revenue: revenue})
	}

	if len(rows) == 0 {
		return nil, nil, ErrPOSNoData
	}

	// 按日期升序；同日保持原始顺序
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })

	return rows, warnings, nil
}

// parsePOSDate 解析 POS 导出里的日期（几种常见写法都接受）
func parsePOSDate(raw string) (time.Time, error) {
	layouts := []string{
		"2006/1/2 15:04:05",
		"2006/1/2 15:04",
		"2006/1/2",
		"2006-1-2 15:04:05",
		"2006-1-2",
		"01-02-06", // excelize 对未设格式的日期单元格的预设呈现
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("無法解析日期: %q", raw)
}
