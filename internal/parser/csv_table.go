package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadCSV 读取 CSV 导出的报表，作为单个工作表
//
// 非 UTF-8 内容按 GBK 解码（国内财务软件导出的默认编码）。
func LoadCSV(name string, data []byte) (Workbook, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var text []byte
	if utf8.Valid(data) {
		text = data
	} else {
		decoded, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("GBK 解码失败: %w", err)
		}
		text = decoded
	}

	reader := csv.NewReader(bytes.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析 CSV 失败: %w", err)
	}

	wb := newMemWorkbook(FormatCSV)
	wb.add(NewMemTableFromStrings(name, records))
	return wb, nil
}

// sniffDelimiter 根据首行判断分隔符
func sniffDelimiter(text []byte) rune {
	line := string(text)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	best, bestCount := ',', strings.Count(line, ",")
	for _, d := range []rune{';', '\t'} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
