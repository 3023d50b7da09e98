package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

// ErrConfigNotFound 配置项不存在
var ErrConfigNotFound = errors.New("config key not found")

const rememberPrefix = "remember."

// GetConfig 获取配置项
func (s *Store) GetConfig(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, key)
		}
		return "", err
	}
	return value, nil
}

// SetConfig 设置配置项
func (s *Store) SetConfig(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	return err
}

// GetAllConfig 获取所有配置项
func (s *Store) GetAllConfig() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM config")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	config := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		config[key] = value
	}

	return config, rows.Err()
}

// Remembered 上次对某张报表使用的工作表与期间表头
type Remembered struct {
	Sheet   string                `json:"sheet"`
	Periods model.PeriodSelection `json:"periods"`
}

// SetRemembered 记住某张报表的选择
func (s *Store) SetRemembered(kind model.StatementKind, r Remembered) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode selection: %w", err)
	}
	return s.SetConfig(rememberPrefix+string(kind), string(data))
}

// GetRemembered 读取记住的选择，ok=false 表示从未记录
func (s *Store) GetRemembered(kind model.StatementKind) (Remembered, bool, error) {
	var r Remembered
	value, err := s.GetConfig(rememberPrefix + string(kind))
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return r, false, nil
		}
		return r, false, err
	}
	if err := json.Unmarshal([]byte(value), &r); err != nil {
		return r, false, fmt.Errorf("failed to decode selection: %w", err)
	}
	return r, true, nil
}
