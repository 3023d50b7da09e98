// Package util 命令行输出与端口相关的小工具。
package util

import (
	"fmt"
	"net"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Chinese)

// FindAvailablePort 从 startPort 开始查找可监听的端口，最多尝试 attempts 个
func FindAvailablePort(startPort, attempts int) (int, error) {
	for port := startPort; port < startPort+attempts; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			continue
		}
		_ = ln.Close()
		return port, nil
	}
	return 0, fmt.Errorf("端口 %d-%d 均被占用", startPort, startPort+attempts-1)
}

// FormatPercent 格式化百分比，value 已是百分数
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// FormatAmount 格式化金额（千分位，两位小数）
func FormatAmount(value float64) string {
	return printer.Sprintf("%.2f", value)
}
