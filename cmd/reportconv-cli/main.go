package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/chenshien/Customer-report-conversion-tool/internal/calculator"
	"github.com/chenshien/Customer-report-conversion-tool/internal/config"
	"github.com/chenshien/Customer-report-conversion-tool/internal/exporter"
	"github.com/chenshien/Customer-report-conversion-tool/internal/importer"
	"github.com/chenshien/Customer-report-conversion-tool/internal/logger"
	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
	"github.com/chenshien/Customer-report-conversion-tool/internal/store"
	"github.com/chenshien/Customer-report-conversion-tool/internal/template"
	"github.com/chenshien/Customer-report-conversion-tool/internal/util"
)

var (
	inPath  = flag.String("in", "", "客户报表文件 (xlsx/xls/csv)")
	outPath = flag.String("out", "", "输出文件，默认为 <输入文件名>-标准模板.xlsx")
	bsSheet = flag.String("bs", "", "资产负债表所在工作表，留空自动识别")
	cfSheet = flag.String("cf", "", "现金流量表所在工作表，留空自动识别")
	isSheet = flag.String("is", "", "损益表所在工作表，留空自动识别")
	periods = flag.String("periods", "", "期间列表头，如 current=本期金额,previous=上期金额,year_start=年初余额（三张报表共用）")
	dbPath  = flag.String("db", "", "保存处理记录的数据库文件，留空不保存")
	verbose = flag.Bool("v", false, "输出调试日志")
)

func main() {
	flag.Parse()
	if *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "处理失败: %v\n", err)
		os.Exit(1)
	}
}

// run 完成一次转换；所有资源在返回前释放，由 main 决定退出码
func run() error {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("加载 .env 失败: %v", err)
	}
	cfg, _, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
	}

	level := cfg.Log.Level
	if *verbose {
		level = "debug"
	}
	zl, err := logger.New(level, true)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	sel, err := parsePeriods(*periods)
	if err != nil {
		return err
	}

	opts, excel, err := importer.OptionsFromConfig(cfg.Engine)
	if err != nil {
		return err
	}
	reg, err := template.NewRegistry(template.Builtin()...)
	if err != nil {
		return err
	}

	var st *store.Store
	if *dbPath != "" {
		st, err = store.New(*dbPath)
		if err != nil {
			return fmt.Errorf("打开数据库失败: %w", err)
		}
		defer st.Close()
	}

	engine := importer.NewEngine(reg, opts, zl)
	coordinator := importer.NewCoordinator(engine, st, excel, zl)

	statements := make(map[model.StatementKind]importer.StatementRequest, len(model.AllStatements))
	for kind, sheet := range map[model.StatementKind]string{
		model.StatementBalanceSheet:    *bsSheet,
		model.StatementCashFlow:        *cfSheet,
		model.StatementIncomeStatement: *isSheet,
	} {
		statements[kind] = importer.StatementRequest{Sheet: strings.TrimSpace(sheet), Periods: sel}
	}

	outcome, err := drain(coordinator.Run(importer.RunOptions{
		FilePath:    *inPath,
		Statements:  statements,
		AutoSuggest: true,
		Persist:     st != nil,
	}))
	if err != nil {
		return err
	}

	out := *outPath
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(*inPath), filepath.Ext(*inPath))
		out = filepath.Join(filepath.Dir(*inPath), base+"-标准模板.xlsx")
	}
	exp := exporter.NewExporter(exporter.Options{
		RatioDecimals: cfg.Export.RatioDecimals,
		ChecksSheet:   cfg.Export.ChecksSheet,
		TemplatePath:  cfg.Export.TemplatePath,
	})
	f, err := exp.ExportWithProgress(outcome.Result, func(p exporter.ProgressEvent) {
		fmt.Printf("[export] %3d%% %s\n", p.Percent, p.Stage)
	})
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(out); err != nil {
		return fmt.Errorf("保存导出文件失败: %w", err)
	}

	printSummary(outcome)
	fmt.Printf("已输出: %s\n", out)
	return nil
}

// drain 打印进度直到通道关闭，返回完成结果或第一个错误事件
//
// 出错后继续读完通道，协调器的 goroutine 才能退出。
func drain(events <-chan importer.ProgressEvent) (*importer.RunOutcome, error) {
	var (
		outcome *importer.RunOutcome
		runErr  error
	)
	for event := range events {
		fmt.Printf("[%s] %s\n", event.Type, event.Message)
		switch event.Type {
		case importer.EventError:
			if runErr == nil {
				runErr = event.Err
				if runErr == nil {
					runErr = errors.New(event.Message)
				}
			}
		case importer.EventDone:
			outcome, _ = event.Data.(*importer.RunOutcome)
		}
	}
	if runErr != nil {
		return nil, runErr
	}
	if outcome == nil || outcome.Result == nil {
		return nil, errors.New("处理未完成")
	}
	return outcome, nil
}

// parsePeriods 解析 current=本期金额,previous=上期金额 形式的期间选择
func parsePeriods(s string) (model.PeriodSelection, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	sel := make(model.PeriodSelection)
	for _, part := range strings.Split(s, ",") {
		key, header, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("期间参数格式错误: %q", part)
		}
		p, ok := model.ParsePeriodKind(strings.TrimSpace(key))
		if !ok {
			return nil, fmt.Errorf("未知的期间: %q", key)
		}
		sel[p] = strings.TrimSpace(header)
	}
	return sel, nil
}

func printSummary(outcome *importer.RunOutcome) {
	res := outcome.Result
	fmt.Printf("\n处理编号: %s\n", outcome.RunID)
	for _, s := range outcome.Report.Sheets {
		fmt.Printf("  %s <- %s: 匹配 %d，未匹配 %d\n", s.Statement.Title(), s.SheetName, s.MatchedRows, s.OmittedRows)
	}
	if outcome.Balanced {
		fmt.Println("  资产负债表平衡")
	}
	for _, d := range res.Discrepancies {
		fmt.Printf("  合计不一致 %s %s(%s): 源表 %s，重算 %s\n",
			d.Statement.Title(), d.Slot, d.Period.Label(), util.FormatAmount(d.Reported), util.FormatAmount(d.Computed))
	}

	fmt.Println("\n重点财务指标（本期）:")
	for _, info := range calculator.Catalog() {
		v, ok := res.Indicators.Get(model.PeriodCurrent, info.Name)
		switch {
		case !ok:
			fmt.Printf("  %s: -\n", info.DisplayName())
		case info.Unit == model.UnitPercent:
			fmt.Printf("  %s: %s\n", info.Name, util.FormatPercent(v))
		default:
			fmt.Printf("  %s: %s\n", info.DisplayName(), util.FormatAmount(v))
		}
	}
}
