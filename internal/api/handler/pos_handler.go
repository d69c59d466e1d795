package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Tzu-An-Wang/ForBRO/config"
	"github.com/Tzu-An-Wang/ForBRO/internal/service"
	"github.com/Tzu-An-Wang/ForBRO/pkg/response"
)

// POSHandler POS 转换模块 HTTP 处理器
type POSHandler struct {
	cfg    *config.Config
	posSvc service.POSService
}

// NewPOSHandler 创建 POSHandler
func NewPOSHandler(cfg *config.Config, posSvc service.POSService) *POSHandler {
	return &POSHandler{cfg: cfg, posSvc: posSvc}
}

// Preview 解析 POS 报表并返回整理后的数据
// POST /api/v1/pos/preview
func (h *POSHandler) Preview(c *gin.Context) {
	f, ok := openUpload(c, h.cfg.Server.MaxUploadSize, "請上傳 POS 報表 Excel 檔案（欄位 file）")
	if !ok {
		return
	}
	defer f.Close()

	resp, err := h.posSvc.Convert(f)
	if err != nil {
		h.handlePOSError(c, err)
		return
	}
	response.OK(c, resp)
}

// Convert 转换 POS 报表并下载
// POST /api/v1/pos/convert
func (h *POSHandler) Convert(c *gin.Context) {
	f, ok := openUpload(c, h.cfg.Server.MaxUploadSize, "請上傳 POS 報表 Excel 檔案（欄位 file）")
	if !ok {
		return
	}
	defer f.Close()

	buf, filename, err := h.posSvc.Export(f)
	if err != nil {
		h.handlePOSError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// handlePOSError 将 POS 服务层错误映射为统一响应
func (h *POSHandler) handlePOSError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPOSBadFile):
		response.BadRequest(c, 41001, "無法解析 POS Excel 檔案")
	case errors.Is(err, service.ErrPOSNoData):
		response.BadRequest(c, 41002, "POS 檔案中沒有任何小結資料")
	default:
		response.InternalError(c)
	}
}
