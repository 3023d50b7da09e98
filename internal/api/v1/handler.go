// Package v1 提供报表转换的 HTTP 接口。
package v1

import (
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chenshien/Customer-report-conversion-tool/internal/config"
	"github.com/chenshien/Customer-report-conversion-tool/internal/exporter"
	"github.com/chenshien/Customer-report-conversion-tool/internal/importer"
	"github.com/chenshien/Customer-report-conversion-tool/internal/parser"
	"github.com/chenshien/Customer-report-conversion-tool/internal/store"
	"github.com/chenshien/Customer-report-conversion-tool/internal/template"
)

// Version 服务版本
const Version = "1.0.0"

// Handler V1 API 处理器
type Handler struct {
	store       *store.Store
	engine      *importer.Engine
	coordinator *importer.Coordinator
	excel       parser.ExcelOptions
	export      exporter.Options
	cfg         *config.AppConfig
	dataDir     string
	logger      *zap.Logger

	// fileId -> 上传时的原始文件名
	uploads   map[string]string
	uploadsMu sync.RWMutex
}

// NewHandler 创建 V1 API 处理器
func NewHandler(cfg *config.AppConfig, dataDir string, st *store.Store, reg *template.Registry, logger *zap.Logger) (*Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts, excel, err := importer.OptionsFromConfig(cfg.Engine)
	if err != nil {
		return nil, err
	}
	engine := importer.NewEngine(reg, opts, logger.Named("engine"))

	return &Handler{
		store:       st,
		engine:      engine,
		coordinator: importer.NewCoordinator(engine, st, excel, logger.Named("coordinator")),
		excel:       excel,
		export: exporter.Options{
			RatioDecimals: cfg.Export.RatioDecimals,
			ChecksSheet:   cfg.Export.ChecksSheet,
			TemplatePath:  cfg.Export.TemplatePath,
		},
		cfg:     cfg,
		dataDir: dataDir,
		logger:  logger,
		uploads: make(map[string]string),
	}, nil
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)
	router.GET("/config", h.GetConfig)

	// 上传预览与处理
	router.POST("/analyze", h.Analyze)
	router.POST("/process", h.Process)
	router.GET("/imports", h.ListImports)

	// 处理记录
	router.GET("/runs", h.ListRuns)
	router.GET("/runs/:id", h.GetRun)
	router.DELETE("/runs/:id", h.DeleteRun)
	router.GET("/runs/:id/export", h.ExportRun)
}
