package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

// DefaultNoiseMarkers 试算平衡表遗留列的标记
var DefaultNoiseMarkers = []string{"tb", "trial balance", "global"}

// NoiseOptions 噪声列检测窗口
type NoiseOptions struct {
	Rows    int
	MaxCols int
	Markers []string
}

// DefaultNoiseOptions 前 20 行、从最右侧往回最多 100 列
func DefaultNoiseOptions() NoiseOptions {
	return NoiseOptions{Rows: 20, MaxCols: 100, Markers: DefaultNoiseMarkers}
}

func (o NoiseOptions) withDefaults() NoiseOptions {
	def := DefaultNoiseOptions()
	if o.Rows <= 0 {
		o.Rows = def.Rows
	}
	if o.MaxCols <= 0 {
		o.MaxCols = def.MaxCols
	}
	if len(o.Markers) == 0 {
		o.Markers = def.Markers
	}
	return o
}

// DetectNoiseColumns 找出带噪声标记的列，按列号降序返回
//
// 第 1 列是科目名称列，不参与检测。
func DetectNoiseColumns(t RawTable, opts NoiseOptions) []int {
	opts = opts.withDefaults()
	markers := make([]string, len(opts.Markers))
	for i, m := range opts.Markers {
		markers[i] = strings.ToLower(strings.TrimSpace(m))
	}

	maxRow := t.MaxRow()
	if maxRow > opts.Rows {
		maxRow = opts.Rows
	}
	maxCol := t.MaxCol()
	lower := maxCol - opts.MaxCols
	if lower < 1 {
		lower = 1
	}

	var cols []int
	for col := maxCol; col > lower; col-- {
		for row := 1; row <= maxRow; row++ {
			text := strings.ToLower(strings.TrimSpace(t.Cell(row, col).String()))
			if text != "" && ContainsAny(text, markers) {
				cols = append(cols, col)
				break
			}
		}
	}
	return cols
}

// GroupColumnRuns 把列号合并为连续区间，区间按起始列降序排列
//
// 从右往左删除时，前面的删除不会影响后面区间的列号。
func GroupColumnRuns(cols []int) []model.ColumnRun {
	if len(cols) == 0 {
		return nil
	}
	sorted := append([]int(nil), cols...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	var runs []model.ColumnRun
	cur := model.ColumnRun{Start: sorted[0], Count: 1}
	for _, col := range sorted[1:] {
		switch {
		case col == cur.Start:
			// 重复列号
		case col == cur.Start-1:
			cur.Start = col
			cur.Count++
		default:
			runs = append(runs, cur)
			cur = model.ColumnRun{Start: col, Count: 1}
		}
	}
	return append(runs, cur)
}

// RemoveNoiseColumns 按区间批量删除噪声列
func RemoveNoiseColumns(t RawTable, cols []int) ([]model.ColumnRun, error) {
	runs := GroupColumnRuns(cols)
	for _, run := range runs {
		if err := t.RemoveColumns(run.Start, run.Count); err != nil {
			return nil, fmt.Errorf("删除 %s 第 %d 列起 %d 列失败: %w", t.Name(), run.Start, run.Count, err)
		}
	}
	return runs, nil
}
