package model

import "errors"

// 输入形态错误：在开始匹配之前检出，处理不会开始
var (
	ErrNoWorkbook          = errors.New("未加载工作簿")
	ErrSheetNotSelected    = errors.New("未选择报表对应的工作表")
	ErrSheetNotFound       = errors.New("工作表不存在")
	ErrUnknownPeriodHeader = errors.New("期间列不存在")
	ErrUnsupportedFormat   = errors.New("不支持的文件格式")
)

// IsInputError 是否为输入形态错误
func IsInputError(err error) bool {
	for _, target := range []error{ErrNoWorkbook, ErrSheetNotSelected, ErrSheetNotFound, ErrUnknownPeriodHeader, ErrUnsupportedFormat} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
