package v1

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chenshien/Customer-report-conversion-tool/internal/exporter"
	"github.com/chenshien/Customer-report-conversion-tool/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// queryLimit 读取 limit 参数，非法时使用默认值
func queryLimit(c *gin.Context, def int) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(def)))
	if err != nil || limit <= 0 {
		return def
	}
	return limit
}

// ListRuns 查询处理记录
// GET /api/runs
func (h *Handler) ListRuns(c *gin.Context) {
	runs, err := h.store.ListRuns(queryLimit(c, 50))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询处理记录失败"})
		return
	}
	total, err := h.store.CountRuns()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "统计处理记录失败"})
		return
	}
	if runs == nil {
		runs = []store.RunSummary{}
	}
	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"total": total,
	})
}

// GetRun 获取处理结果详情
// GET /api/runs/:id
func (h *Handler) GetRun(c *gin.Context) {
	res, err := h.store.GetRun(c.Param("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "处理记录不存在"})
		return
	}
	if err != nil {
		h.logger.Error("读取处理记录失败", zap.String("run_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取处理记录失败"})
		return
	}

	roundResultInPlace(res, h.export.RatioDecimals)
	c.JSON(http.StatusOK, gin.H{
		"result":   res,
		"balanced": res.Balanced(),
	})
}

// DeleteRun 删除处理记录
// DELETE /api/runs/:id
func (h *Handler) DeleteRun(c *gin.Context) {
	err := h.store.DeleteRun(c.Param("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "处理记录不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除处理记录失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// ExportRun 导出处理结果为标准模板工作簿
// GET /api/runs/:id/export
func (h *Handler) ExportRun(c *gin.Context) {
	res, err := h.store.GetRun(c.Param("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "处理记录不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取处理记录失败"})
		return
	}

	file, err := exporter.NewExporter(h.export).Export(res)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", buildExportContentDisposition(res.RunID, res.Filename))
	c.Header("Content-Type", xlsxContentType)
	if err := file.Write(c.Writer); err != nil {
		h.logger.Error("写入导出文件失败", zap.String("run_id", res.RunID), zap.Error(err))
	}
}

// buildExportContentDisposition ASCII 文件名兜底，filename* 携带 UTF-8 中文名 (RFC 5987)
func buildExportContentDisposition(runID, source string) string {
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	fallback := fmt.Sprintf("report-%s.xlsx", short)

	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" || base == "." {
		base = "report-" + short
	}
	name := base + "-标准模板.xlsx"
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", fallback, url.PathEscape(name))
}

// ListImports 查询导入日志
// GET /api/imports
func (h *Handler) ListImports(c *gin.Context) {
	logs, err := h.store.ListImportLogs(queryLimit(c, 50))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询导入日志失败"})
		return
	}
	if logs == nil {
		logs = []store.ImportLog{}
	}
	c.JSON(http.StatusOK, gin.H{"imports": logs})
}
