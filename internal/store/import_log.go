package store

import (
	"database/sql"
	"fmt"
	"time"
)

// 导入状态
const (
	ImportProcessing = "processing"
	ImportCompleted  = "completed"
	ImportFailed     = "failed"
)

// ImportLog 导入日志
type ImportLog struct {
	ID           int64      `json:"id"`
	Filename     string     `json:"filename"`
	FilePath     string     `json:"filePath"`
	FileSize     int64      `json:"fileSize"`
	FileHash     string     `json:"fileHash"`
	RunID        string     `json:"runId"`
	Statements   int        `json:"statements"`
	MatchedRows  int        `json:"matchedRows"`
	OmittedRows  int        `json:"omittedRows"`
	Status       string     `json:"status"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// CreateImportLog 创建导入日志，返回 import_log_id
func (s *Store) CreateImportLog(filename, filePath string, fileSize int64, fileHash string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (filename, file_path, file_size, file_hash, status)
		VALUES (?, ?, ?, ?, ?)
	`, filename, filePath, fileSize, fileHash, ImportProcessing)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// UpdateImportLog 完成导入日志更新
func (s *Store) UpdateImportLog(id int64, runID string, statements, matchedRows, omittedRows int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE import_logs SET
			run_id = ?,
			statements = ?,
			matched_rows = ?,
			omitted_rows = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, runID, statements, matchedRows, omittedRows, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return nil
}

// ListImportLogs 最近的导入日志
func (s *Store) ListImportLogs(limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, filename, file_path, file_size, file_hash, run_id,
			statements, matched_rows, omitted_rows, status, error_message, created_at, completed_at
		FROM import_logs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query import logs: %w", err)
	}
	defer rows.Close()

	logs := []ImportLog{}
	for rows.Next() {
		var l ImportLog
		var completed sql.NullTime
		if err := rows.Scan(&l.ID, &l.Filename, &l.FilePath, &l.FileSize, &l.FileHash, &l.RunID,
			&l.Statements, &l.MatchedRows, &l.OmittedRows, &l.Status, &l.ErrorMessage, &l.CreatedAt, &completed); err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		if completed.Valid {
			t := completed.Time
			l.CompletedAt = &t
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
