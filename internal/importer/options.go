package importer

import (
	"github.com/chenshien/Customer-report-conversion-tool/internal/calculator"
	"github.com/chenshien/Customer-report-conversion-tool/internal/config"
	"github.com/chenshien/Customer-report-conversion-tool/internal/parser"
)

// OptionsFromConfig 由引擎配置构造引擎参数与工作簿读取参数
func OptionsFromConfig(cfg config.EngineConfig) (Options, parser.ExcelOptions, error) {
	policy, err := calculator.ParseTotalPolicy(cfg.TotalPolicy)
	if err != nil {
		return Options{}, parser.ExcelOptions{}, err
	}
	opts := Options{
		Scan: parser.ScanOptions{
			Rows:    cfg.HeaderRows,
			MaxCols: cfg.HeaderMaxCols,
		},
		Noise: parser.NoiseOptions{
			Rows:    cfg.NoiseRows,
			MaxCols: cfg.NoiseMaxCols,
			Markers: cfg.NoiseMarkers,
		},
		TotalPolicy: policy,
	}
	return opts, parser.ExcelOptions{EvaluateFormulas: cfg.EvaluateFormulas}, nil
}
