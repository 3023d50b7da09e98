package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chenshien/Customer-report-conversion-tool/internal/importer"
	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

// ProcessRequest 处理请求
type ProcessRequest struct {
	FileID string `json:"fileId"`
	// Sheets 报表类型 -> 工作表名
	Sheets map[string]string `json:"sheets"`
	// Periods 报表类型 -> {期间: 表头文字}
	Periods map[string]map[string]string `json:"periods"`
	// AutoSuggest 未指定的部分按自动识别补齐，默认开启
	AutoSuggest *bool `json:"autoSuggest"`
}

// statements 解析为引擎的报表输入
func (r ProcessRequest) statements() (map[model.StatementKind]importer.StatementRequest, error) {
	out := make(map[model.StatementKind]importer.StatementRequest, len(model.AllStatements))
	for key, sheet := range r.Sheets {
		kind, ok := model.ParseStatementKind(key)
		if !ok {
			return nil, fmt.Errorf("未知的报表类型: %s", key)
		}
		sr := out[kind]
		sr.Sheet = strings.TrimSpace(sheet)
		out[kind] = sr
	}
	for key, periods := range r.Periods {
		kind, ok := model.ParseStatementKind(key)
		if !ok {
			return nil, fmt.Errorf("未知的报表类型: %s", key)
		}
		sel := make(model.PeriodSelection, len(periods))
		for pk, header := range periods {
			p, ok := model.ParsePeriodKind(pk)
			if !ok {
				return nil, fmt.Errorf("未知的期间: %s", pk)
			}
			sel[p] = header
		}
		sr := out[kind]
		sr.Periods = sel
		out[kind] = sr
	}
	return out, nil
}

// Process 处理已上传的工作簿 (SSE 流式响应)
// POST /api/process
//
// 输入形态错误在开始匹配之前出现，此时直接返回 400 而不建立事件流。
func (h *Handler) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	path, filename, err := h.resolveUpload(req.FileID)
	switch {
	case errors.Is(err, errBadFileID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, os.ErrNotExist):
		c.JSON(http.StatusNotFound, gin.H{"error": "上传文件不存在，请重新上传"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取上传文件失败"})
		return
	}

	statements, err := req.statements()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.cfg.Data.KeepUploads {
		defer h.dropUpload(req.FileID, path)
	}

	autoSuggest := req.AutoSuggest == nil || *req.AutoSuggest
	progressChan := h.coordinator.Run(importer.RunOptions{
		FilePath:      path,
		Filename:      filename,
		Statements:    statements,
		AutoSuggest:   autoSuggest,
		UseRemembered: true,
		Persist:       true,
		Remember:      true,
	})

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	// 开始匹配之前的事件先缓存
	var pending []importer.ProgressEvent
	streaming := false
	for event := range progressChan {
		if !streaming {
			switch event.Type {
			case importer.EventError:
				for range progressChan {
				}
				c.JSON(statusFor(event.Err), gin.H{"error": event.Message})
				return
			case importer.EventSheetStart, importer.EventDone:
				startStream(c)
				for _, ev := range pending {
					writeEvent(c, flusher, ev)
				}
				pending = nil
				streaming = true
			default:
				pending = append(pending, event)
				continue
			}
		}
		writeEvent(c, flusher, event)
	}

	if !streaming {
		startStream(c)
		for _, ev := range pending {
			writeEvent(c, flusher, ev)
		}
	}
}

func (h *Handler) dropUpload(fileID, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		h.logger.Warn("删除上传文件失败", zap.String("path", path), zap.Error(err))
	}
	h.uploadsMu.Lock()
	delete(h.uploads, fileID)
	h.uploadsMu.Unlock()
}

// startStream 设置 SSE 响应头
func startStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
}

func writeEvent(c *gin.Context, flusher http.Flusher, event importer.ProgressEvent) {
	eventData, err := json.Marshal(event)
	if err != nil {
		return
	}

	// SSE 格式: data: {json}\n\n
	fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
	flusher.Flush()
}
