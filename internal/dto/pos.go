package dto

// ── POS 转换模块 DTO ──

// POSRowResponse 转换后的一行小結数据
type POSRowResponse struct {
	Date       string  `json:"date"`       // 時間，YYYY/M/D
	Revenue    float64 `json:"revenue"`    // 營業額
	Cumulative float64 `json:"cumulative"` // 累積營收/現金
	Remark     string  `json:"remark"`     // 備註，固定为空
}

// POSConvertResponse POS 转换预览响应
type POSConvertResponse struct {
	Rows     []POSRowResponse `json:"rows"`
	Warnings []string         `json:"warnings,omitempty"`
}
