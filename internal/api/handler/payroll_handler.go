package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Tzu-An-Wang/ForBRO/config"
	"github.com/Tzu-An-Wang/ForBRO/internal/service"
	"github.com/Tzu-An-Wang/ForBRO/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PayrollHandler 薪资计算模块 HTTP 处理器
type PayrollHandler struct {
	cfg        *config.Config
	payrollSvc service.PayrollService
}

// NewPayrollHandler 创建 PayrollHandler
func NewPayrollHandler(cfg *config.Config, payrollSvc service.PayrollService) *PayrollHandler {
	return &PayrollHandler{cfg: cfg, payrollSvc: payrollSvc}
}

// openUpload 提取 multipart 上传文件（表单字段 file），missingMsg 为缺文件时的提示
func openUpload(c *gin.Context, maxSize int64, missingMsg string) (multipart.File, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, missingMsg)
		return nil, false
	}
	if maxSize > 0 && fileHeader.Size > maxSize {
		response.BadRequest(c, 10004, "上傳檔案過大")
		return nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 10001, "無法讀取上傳檔案")
		return nil, false
	}
	return f, true
}

// Calculate 计算薪资（JSON 预览）
// POST /api/v1/payroll/calculate
func (h *PayrollHandler) Calculate(c *gin.Context) {
	f, ok := openUpload(c, h.cfg.Server.MaxUploadSize, "請上傳打卡記錄 Excel 檔案（欄位 file）")
	if !ok {
		return
	}
	defer f.Close()

	result, err := h.payrollSvc.Calculate(c.Request.Context(), f)
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}

	response.OK(c, result)
}

// Export 计算并下载多 Sheet 薪资报表
// POST /api/v1/payroll/export
func (h *PayrollHandler) Export(c *gin.Context) {
	f, ok := openUpload(c, h.cfg.Server.MaxUploadSize, "請上傳打卡記錄 Excel 檔案（欄位 file）")
	if !ok {
		return
	}
	defer f.Close()

	buf, filename, err := h.payrollSvc.Export(c.Request.Context(), f)
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *PayrollHandler) handlePayrollError(c *gin.Context, err error) {
	var overnight *service.OvernightShiftError
	switch {
	case errors.As(err, &overnight):
		// 源数据错误：用户必须修正打卡档后重新上传
		response.ErrorWithDetails(c, http.StatusBadRequest, 40001, "偵測到跨夜班記錄，打卡資料有誤", overnight.Error())
	case errors.Is(err, service.ErrPayrollBadFile):
		response.BadRequest(c, 40002, "無法解析打卡記錄 Excel 檔案")
	case errors.Is(err, service.ErrPayrollEmptyFile):
		response.BadRequest(c, 40003, "打卡記錄檔案沒有資料")
	case errors.Is(err, service.ErrPayrollEmptyRoster):
		response.BadRequest(c, 40004, "名冊中沒有任何員工資料")
	case errors.Is(err, service.ErrPayrollNoRecords):
		response.BadRequest(c, 40005, "沒有任何員工產生有效的打卡記錄")
	default:
		response.InternalError(c)
	}
}
