package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
	"github.com/chenshien/Customer-report-conversion-tool/internal/parser"
	"github.com/chenshien/Customer-report-conversion-tool/internal/store"
)

// 事件类型
const (
	EventStart      = "start"
	EventInfo       = "info"
	EventSheetStart = "sheet_start"
	EventSheetDone  = "sheet_done"
	EventWarning    = "warning"
	EventError      = "error"
	EventDone       = "done"
)

// Coordinator 处理协调器：打开工作簿、驱动引擎并通过通道汇报进度
type Coordinator struct {
	engine *Engine
	store  *store.Store
	excel  parser.ExcelOptions
	logger *zap.Logger
}

// NewCoordinator 创建处理协调器，st 为 nil 时不保存历史
func NewCoordinator(engine *Engine, st *store.Store, excel parser.ExcelOptions, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		engine: engine,
		store:  st,
		excel:  excel,
		logger: logger,
	}
}

// RunOptions 处理选项
type RunOptions struct {
	FilePath   string
	Filename   string // 展示用文件名，默认取 FilePath 的文件名
	RunID      string
	Statements map[model.StatementKind]StatementRequest
	// AutoSuggest 未指定的工作表与期间列按自动识别结果补齐
	AutoSuggest bool
	// UseRemembered 未指定时沿用上次对同一报表的选择
	UseRemembered bool
	Persist       bool
	Remember      bool
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`      // start/info/sheet_start/sheet_done/warning/error/done
	Message   string      `json:"message"`   // 事件消息
	Data      interface{} `json:"data"`      // 附加数据
	Timestamp time.Time   `json:"timestamp"` // 时间戳
	// Err 错误事件对应的错误，不参与序列化
	Err error `json:"-"`
}

// RunOutcome done 事件携带的结果
type RunOutcome struct {
	RunID     string               `json:"runId"`
	Report    *parser.ImportReport `json:"report"`
	Balanced  bool                 `json:"balanced"`
	Persisted bool                 `json:"persisted"`
	Result    *model.Result        `json:"-"`
}

// runContext 单次处理的上下文
type runContext struct {
	opts        RunOptions
	filename    string
	progress    chan ProgressEvent
	importLogID int64
}

// Run 执行处理，返回进度通道；通道在处理结束后关闭
func (c *Coordinator) Run(opts RunOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doRun(opts, progressChan)
	}()

	return progressChan
}

// doRun 执行处理逻辑
func (c *Coordinator) doRun(opts RunOptions, progressChan chan ProgressEvent) {
	startTime := time.Now()
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	ctx := &runContext{
		opts:     opts,
		filename: opts.Filename,
		progress: progressChan,
	}
	if ctx.filename == "" {
		ctx.filename = filepath.Base(opts.FilePath)
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:    EventStart,
		Message: "开始处理报表文件",
		Data: map[string]string{
			"filename": ctx.filename,
			"run_id":   opts.RunID,
		},
		Timestamp: time.Now(),
	})
	c.createImportLog(ctx)

	// 打开工作簿
	wb, err := parser.OpenWorkbook(opts.FilePath, c.excel)
	if err != nil {
		c.fail(ctx, fmt.Errorf("打开文件失败: %w", err))
		return
	}
	defer wb.Close()

	c.sendProgress(progressChan, ProgressEvent{
		Type:    EventInfo,
		Message: fmt.Sprintf("发现 %d 个工作表", len(wb.SheetNames())),
		Data: map[string]interface{}{
			"format":       wb.Format(),
			"total_sheets": len(wb.SheetNames()),
		},
		Timestamp: time.Now(),
	})

	req, err := c.buildRequest(ctx, wb)
	if err != nil {
		c.fail(ctx, err)
		return
	}

	prepared, err := c.engine.Prepare(wb, req)
	if err != nil {
		c.fail(ctx, err)
		return
	}

	res := model.NewResult(opts.RunID, ctx.filename)
	report := &parser.ImportReport{RunID: opts.RunID, Filename: ctx.filename}
	for _, ps := range prepared {
		c.processStatement(ctx, ps, res, report)
	}

	c.engine.Finish(res, report)
	report.Duration = time.Since(startTime)

	for _, d := range res.Discrepancies {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      EventWarning,
			Message:   fmt.Sprintf("%s %s(%s) 源表合计 %.2f 与重算 %.2f 不一致", d.Statement.Title(), d.Slot, d.Period.Label(), d.Reported, d.Computed),
			Data:      d,
			Timestamp: time.Now(),
		})
	}
	for _, b := range res.BalanceIssues {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      EventWarning,
			Message:   fmt.Sprintf("资产负债表%s不平衡: 资产总计 %.2f，负债和所有者权益总计 %.2f", b.Period.Label(), b.TotalAssets, b.TotalLiabilitiesAndEquity),
			Data:      b,
			Timestamp: time.Now(),
		})
	}

	outcome := &RunOutcome{
		RunID:    opts.RunID,
		Report:   report,
		Balanced: res.Balanced(),
		Result:   res,
	}
	if opts.Persist && c.store != nil {
		outcome.Persisted = c.persist(ctx, res)
	}
	if opts.Remember && c.store != nil {
		c.remember(ctx, prepared)
	}
	c.finishImportLog(ctx, report, store.ImportCompleted, "")

	// 发送完成事件
	c.sendProgress(progressChan, ProgressEvent{
		Type:      EventDone,
		Message:   "处理完成",
		Data:      outcome,
		Timestamp: time.Now(),
	})
}

// buildRequest 合并调用方选择、记忆的选择与自动识别结果
func (c *Coordinator) buildRequest(ctx *runContext, wb parser.Workbook) (Request, error) {
	explicit := make(map[model.StatementKind]StatementRequest, len(model.AllStatements))
	for kind, sr := range ctx.opts.Statements {
		explicit[kind] = sr
	}

	if ctx.opts.UseRemembered && c.store != nil {
		for _, kind := range model.AllStatements {
			sr := explicit[kind]
			r, ok, err := c.store.GetRemembered(kind)
			if err != nil || !ok {
				continue
			}
			if sr.Sheet == "" && containsSheet(wb, r.Sheet) {
				sr.Sheet = r.Sheet
			}
			if sr.Sheet == r.Sheet && selectionEmpty(sr.Periods) {
				sr.Periods = r.Periods
			}
			explicit[kind] = sr
		}
	}

	if !ctx.opts.AutoSuggest {
		return Request{RunID: ctx.opts.RunID, Filename: ctx.filename, Statements: explicit}, nil
	}

	analysis, err := c.engine.Analyze(wb)
	if err != nil {
		return Request{}, err
	}
	req := analysis.Request(ctx.opts.RunID, ctx.filename, explicit)
	for _, kind := range model.AllStatements {
		if explicit[kind].Sheet == "" && req.Statements[kind].Sheet != "" {
			c.sendProgress(ctx.progress, ProgressEvent{
				Type:    EventInfo,
				Message: fmt.Sprintf("%s 识别为工作表: %s", kind.Title(), req.Statements[kind].Sheet),
				Data: map[string]string{
					"statement":  string(kind),
					"sheet_name": req.Statements[kind].Sheet,
				},
				Timestamp: time.Now(),
			})
		}
	}
	return req, nil
}

// processStatement 处理单张报表
func (c *Coordinator) processStatement(ctx *runContext, ps *PreparedStatement, res *model.Result, report *parser.ImportReport) {
	c.sendProgress(ctx.progress, ProgressEvent{
		Type:    EventSheetStart,
		Message: fmt.Sprintf("正在解析 %s: %s", ps.Kind.Title(), ps.Sheet),
		Data: map[string]string{
			"statement":  string(ps.Kind),
			"sheet_name": ps.Sheet,
		},
		Timestamp: time.Now(),
	})

	for _, w := range ps.Warnings {
		c.sendProgress(ctx.progress, ProgressEvent{
			Type:      EventWarning,
			Message:   w,
			Timestamp: time.Now(),
		})
	}

	sheet := c.engine.Extract(ps, res)
	report.Add(sheet)

	c.sendProgress(ctx.progress, ProgressEvent{
		Type:      EventSheetDone,
		Message:   fmt.Sprintf("%s 匹配 %d 个科目，%d 行未匹配", ps.Kind.Title(), sheet.MatchedRows, sheet.OmittedRows),
		Data:      sheet,
		Timestamp: time.Now(),
	})
}

// persist 保存处理结果，失败不影响本次结果
func (c *Coordinator) persist(ctx *runContext, res *model.Result) bool {
	if err := c.store.SaveRun(res, string(c.engine.Policy())); err != nil {
		c.logger.Error("保存处理结果失败", zap.String("run_id", res.RunID), zap.Error(err))
		c.sendProgress(ctx.progress, ProgressEvent{
			Type:      EventWarning,
			Message:   fmt.Sprintf("保存处理结果失败: %v", err),
			Timestamp: time.Now(),
		})
		return false
	}
	return true
}

// remember 记住本次的工作表与期间列选择
func (c *Coordinator) remember(ctx *runContext, prepared []*PreparedStatement) {
	for _, ps := range prepared {
		r := store.Remembered{
			Sheet:   ps.Sheet,
			Periods: parser.SelectionFor(ps.Candidates, ps.Columns),
		}
		if err := c.store.SetRemembered(ps.Kind, r); err != nil {
			c.sendProgress(ctx.progress, ProgressEvent{
				Type:      EventWarning,
				Message:   fmt.Sprintf("记录期间选择失败: %v", err),
				Timestamp: time.Now(),
			})
		}
	}
}

// fail 发送错误事件并结束导入日志
func (c *Coordinator) fail(ctx *runContext, err error) {
	c.logger.Error("处理失败", zap.String("file", ctx.filename), zap.Error(err))
	c.sendProgress(ctx.progress, ProgressEvent{
		Type:      EventError,
		Message:   err.Error(),
		Data:      map[string]string{"error": err.Error()},
		Timestamp: time.Now(),
		Err:       err,
	})
	c.finishImportLog(ctx, nil, store.ImportFailed, err.Error())
}

func (c *Coordinator) createImportLog(ctx *runContext) {
	if c.store == nil || !ctx.opts.Persist {
		return
	}
	var size int64
	if info, err := os.Stat(ctx.opts.FilePath); err == nil {
		size = info.Size()
	}
	id, err := c.store.CreateImportLog(ctx.filename, ctx.opts.FilePath, size, fileHash(ctx.opts.FilePath))
	if err != nil {
		c.logger.Warn("创建导入日志失败", zap.Error(err))
		return
	}
	ctx.importLogID = id
}

func (c *Coordinator) finishImportLog(ctx *runContext, report *parser.ImportReport, status, msg string) {
	if c.store == nil || ctx.importLogID == 0 {
		return
	}
	var statements, matched, omitted int
	runID := ""
	if report != nil {
		runID = report.RunID
		statements = report.Statements
		matched = report.MatchedRows
		omitted = report.OmittedRows
	}
	if err := c.store.UpdateImportLog(ctx.importLogID, runID, statements, matched, omitted, status, msg); err != nil {
		c.logger.Warn("更新导入日志失败", zap.Error(err))
	}
}

func fileHash(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func containsSheet(wb parser.Workbook, name string) bool {
	for _, s := range wb.SheetNames() {
		if s == name {
			return true
		}
	}
	return false
}

// sendProgress 发送进度事件
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
		// 通道已满，丢弃事件
	}
}
