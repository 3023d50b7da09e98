package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chenshien/Customer-report-conversion-tool/internal/store"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Version   string            `json:"version"`
	DataDir   string            `json:"dataDir"`
	TotalRuns int               `json:"totalRuns"`
	LastRun   *store.RunSummary `json:"lastRun,omitempty"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{Version: Version, DataDir: h.dataDir}

	total, err := h.store.CountRuns()
	if err != nil {
		h.logger.Warn("统计处理记录失败", zap.Error(err))
	}
	resp.TotalRuns = total

	runs, err := h.store.ListRuns(1)
	if err == nil && len(runs) > 0 {
		resp.LastRun = &runs[0]
	}

	c.JSON(http.StatusOK, resp)
}

// ConfigResponse 当前生效的引擎与导出配置
type ConfigResponse struct {
	HeaderRows       int      `json:"headerRows"`
	HeaderMaxCols    int      `json:"headerMaxCols"`
	NoiseRows        int      `json:"noiseRows"`
	NoiseMaxCols     int      `json:"noiseMaxCols"`
	NoiseMarkers     []string `json:"noiseMarkers"`
	EvaluateFormulas bool     `json:"evaluateFormulas"`
	TotalPolicy      string   `json:"totalPolicy"`
	RatioDecimals    int32    `json:"ratioDecimals"`
	ChecksSheet      bool     `json:"checksSheet"`
	TemplatePath     string   `json:"templatePath"`
	// Stored 数据库中保存的配置项（含记住的期间选择）
	Stored map[string]string `json:"stored"`
}

// GetConfig 获取配置
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	stored, err := h.store.GetAllConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取配置失败"})
		return
	}

	e := h.cfg.Engine
	c.JSON(http.StatusOK, ConfigResponse{
		HeaderRows:       e.HeaderRows,
		HeaderMaxCols:    e.HeaderMaxCols,
		NoiseRows:        e.NoiseRows,
		NoiseMaxCols:     e.NoiseMaxCols,
		NoiseMarkers:     e.NoiseMarkers,
		EvaluateFormulas: e.EvaluateFormulas,
		TotalPolicy:      string(h.engine.Policy()),
		RatioDecimals:    h.export.RatioDecimals,
		ChecksSheet:      h.export.ChecksSheet,
		TemplatePath:     h.export.TemplatePath,
		Stored:           stored,
	})
}
