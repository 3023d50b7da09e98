package v1

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chenshien/Customer-report-conversion-tool/internal/importer"
	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
	"github.com/chenshien/Customer-report-conversion-tool/internal/parser"
	"github.com/chenshien/Customer-report-conversion-tool/internal/store"
)

// uploadExts 允许上传的扩展名
var uploadExts = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xls":  true,
	".csv":  true,
}

var errBadFileID = errors.New("无效的 fileId")

// AnalyzeResponse 上传预览响应
type AnalyzeResponse struct {
	FileID       string                                        `json:"fileId"`
	Filename     string                                        `json:"filename"`
	Format       parser.Format                                 `json:"format"`
	Sheets       []importer.SheetAnalysis                      `json:"sheets"`
	Suggested    map[model.StatementKind]string                `json:"suggested"`
	Periods      map[model.StatementKind]model.PeriodSelection `json:"periods"`
	Recognitions []model.SheetRecognition                      `json:"recognitions"`
	Remembered   map[model.StatementKind]store.Remembered      `json:"remembered,omitempty"`
}

// Analyze 上传工作簿并返回工作表与期间列预览
// POST /api/analyze
func (h *Handler) Analyze(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}
	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}
	uploaded := files[0]

	ext := strings.ToLower(filepath.Ext(uploaded.Filename))
	if !uploadExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": model.ErrUnsupportedFormat.Error() + ": " + uploaded.Filename})
		return
	}

	fileID := uuid.NewString() + ext
	path := h.uploadPath(fileID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建上传目录失败"})
		return
	}
	if err := c.SaveUploadedFile(uploaded, path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}

	wb, err := parser.OpenWorkbook(path, h.excel)
	if err != nil {
		_ = os.Remove(path)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer wb.Close()

	analysis, err := h.engine.Analyze(wb)
	if err != nil {
		_ = os.Remove(path)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	h.uploadsMu.Lock()
	h.uploads[fileID] = uploaded.Filename
	h.uploadsMu.Unlock()

	resp := AnalyzeResponse{
		FileID:       fileID,
		Filename:     uploaded.Filename,
		Format:       analysis.Format,
		Sheets:       analysis.Sheets,
		Suggested:    analysis.Suggested,
		Periods:      make(map[model.StatementKind]model.PeriodSelection, len(model.AllStatements)),
		Recognitions: analysis.Recognitions,
	}
	for _, kind := range model.AllStatements {
		if s, ok := analysis.Sheet(analysis.Suggested[kind]); ok {
			resp.Periods[kind] = s.Suggested
		}
		r, ok, err := h.store.GetRemembered(kind)
		if err != nil {
			h.logger.Warn("读取期间选择失败", zap.String("statement", string(kind)), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		if resp.Remembered == nil {
			resp.Remembered = make(map[model.StatementKind]store.Remembered)
		}
		resp.Remembered[kind] = r
	}

	h.logger.Info("上传预览",
		zap.String("file_id", fileID),
		zap.String("filename", uploaded.Filename),
		zap.Int("sheets", len(analysis.Sheets)),
	)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) uploadPath(fileID string) string {
	return filepath.Join(h.dataDir, "uploads", fileID)
}

// resolveUpload 校验 fileId 并返回文件路径与展示用文件名
func (h *Handler) resolveUpload(fileID string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(fileID))
	if filepath.Base(fileID) != fileID || !uploadExts[ext] {
		return "", "", errBadFileID
	}
	if _, err := uuid.Parse(strings.TrimSuffix(fileID, filepath.Ext(fileID))); err != nil {
		return "", "", errBadFileID
	}
	path := h.uploadPath(fileID)
	if _, err := os.Stat(path); err != nil {
		return "", "", err
	}

	h.uploadsMu.RLock()
	name, ok := h.uploads[fileID]
	h.uploadsMu.RUnlock()
	if !ok {
		name = fileID
	}
	return path, name, nil
}

// statusFor 输入形态错误返回 400
func statusFor(err error) int {
	if model.IsInputError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
