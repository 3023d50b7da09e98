package parser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

// Format 工作簿文件格式
type Format string

const (
	FormatXLSX    Format = "xlsx"
	FormatXLS     Format = "xls"
	FormatCSV     Format = "csv"
	FormatUnknown Format = "unknown"
)

var (
	zipMagic = []byte{'P', 'K', 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0}
)

// DetectFormat 按文件头识别格式，文件头无法识别时再看扩展名
func DetectFormat(head []byte, filename string) Format {
	switch {
	case bytes.HasPrefix(head, zipMagic):
		return FormatXLSX
	case bytes.HasPrefix(head, oleMagic):
		return FormatXLS
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return FormatCSV
	}
	return FormatUnknown
}

// Workbook 已打开的工作簿
type Workbook interface {
	Format() Format
	SheetNames() []string
	// Table 返回工作表的可写副本（删除噪声列不影响其他报表对同一工作表的读取）
	Table(name string) (RawTable, error)
	Close() error
}

// OpenWorkbook 打开 xlsx / xls / csv 文件
func OpenWorkbook(path string, opts ExcelOptions) (Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取文件失败: %w", err)
	}
	return OpenWorkbookBytes(data, filepath.Base(path), opts)
}

// OpenWorkbookBytes 从内存打开工作簿
func OpenWorkbookBytes(data []byte, filename string, opts ExcelOptions) (Workbook, error) {
	head := data
	if len(head) > 8 {
		head = head[:8]
	}
	switch DetectFormat(head, filename) {
	case FormatXLSX:
		return openExcelWorkbook(data, opts)
	case FormatXLS:
		return LoadXLS(bytes.NewReader(data))
	case FormatCSV:
		return LoadCSV(sheetNameFromFile(filename), data)
	default:
		return nil, fmt.Errorf("%s: %w", filename, model.ErrUnsupportedFormat)
	}
}

func sheetNameFromFile(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// excelWorkbook xlsx 工作簿：每次取表都重新打开，使各报表的删列互不影响
type excelWorkbook struct {
	data   []byte
	opts   ExcelOptions
	names  []string
	opened []*excelize.File
}

func openExcelWorkbook(data []byte, opts ExcelOptions) (*excelWorkbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("打开 Excel 失败: %w", err)
	}
	wb := &excelWorkbook{
		data:   data,
		opts:   opts,
		names:  f.GetSheetList(),
		opened: []*excelize.File{f},
	}
	return wb, nil
}

func (w *excelWorkbook) Format() Format { return FormatXLSX }

func (w *excelWorkbook) SheetNames() []string {
	return append([]string(nil), w.names...)
}

func (w *excelWorkbook) Table(name string) (RawTable, error) {
	if !containsString(w.names, name) {
		return nil, fmt.Errorf("%s: %w", name, model.ErrSheetNotFound)
	}
	f, err := excelize.OpenReader(bytes.NewReader(w.data))
	if err != nil {
		return nil, fmt.Errorf("打开 Excel 失败: %w", err)
	}
	w.opened = append(w.opened, f)
	return NewExcelTable(f, name, w.opts)
}

func (w *excelWorkbook) Close() error {
	var first error
	for _, f := range w.opened {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	w.opened = nil
	return first
}

// memWorkbook 已全部读入内存的工作簿（xls / csv）
type memWorkbook struct {
	format Format
	names  []string
	tables map[string]*MemTable
}

func newMemWorkbook(format Format) *memWorkbook {
	return &memWorkbook{format: format, tables: make(map[string]*MemTable)}
}

func (w *memWorkbook) add(t *MemTable) {
	if _, ok := w.tables[t.Name()]; !ok {
		w.names = append(w.names, t.Name())
	}
	w.tables[t.Name()] = t
}

func (w *memWorkbook) Format() Format { return w.format }

func (w *memWorkbook) SheetNames() []string {
	return append([]string(nil), w.names...)
}

func (w *memWorkbook) Table(name string) (RawTable, error) {
	t, ok := w.tables[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, model.ErrSheetNotFound)
	}
	return t.Clone(), nil
}

func (w *memWorkbook) Close() error { return nil }

// NewMemWorkbook 由内存表组成工作簿（测试与上层拼装使用）
func NewMemWorkbook(tables ...*MemTable) Workbook {
	w := newMemWorkbook(FormatUnknown)
	for _, t := range tables {
		w.add(t)
	}
	return w
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
