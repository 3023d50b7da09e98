package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
)

// ErrRunNotFound 处理记录不存在
var ErrRunNotFound = errors.New("run not found")

const (
	issueDiscrepancy = "discrepancy"
	issueBalance     = "balance"
	issueOmission    = "omission"
)

// RunSummary 处理记录列表项
type RunSummary struct {
	ID               string    `json:"id"`
	Filename         string    `json:"filename"`
	TotalPolicy      string    `json:"totalPolicy"`
	Balanced         bool      `json:"balanced"`
	DiscrepancyCount int       `json:"discrepancyCount"`
	OmissionCount    int       `json:"omissionCount"`
	CreatedAt        time.Time `json:"createdAt"`
}

// SaveRun 在一个事务中保存处理结果（全部成功或全部回滚）
func (s *Store) SaveRun(res *model.Result, policy string) error {
	inputs, err := json.Marshal(res.Inputs)
	if err != nil {
		return fmt.Errorf("failed to encode inputs: %w", err)
	}
	removed, err := json.Marshal(res.RemovedColumns)
	if err != nil {
		return fmt.Errorf("failed to encode removed columns: %w", err)
	}
	warnings, err := json.Marshal(res.Warnings)
	if err != nil {
		return fmt.Errorf("failed to encode warnings: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO runs (
			id, filename, total_policy, balanced, discrepancy_count, omission_count,
			inputs, removed_columns, warnings, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, res.RunID, res.Filename, policy, boolToInt(res.Balanced()), len(res.Discrepancies), len(res.Omissions),
		string(inputs), string(removed), string(warnings), res.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	if err := insertSlots(tx, res); err != nil {
		return err
	}
	if err := insertIndicators(tx, res); err != nil {
		return err
	}
	if err := insertIssues(tx, res); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertSlots(tx *sql.Tx, res *model.Result) error {
	stmt, err := tx.Prepare(`
		INSERT INTO run_slots (
			run_id, statement, line, name,
			current_value, previous_value, year_start_value,
			matched, source_row
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, kind := range model.AllStatements {
		t, ok := res.Templates[kind]
		if !ok {
			continue
		}
		for _, slot := range t.Slots {
			if _, err := stmt.Exec(
				res.RunID, string(kind), slot.Line, slot.Name,
				slot.Values[model.PeriodCurrent], slot.Values[model.PeriodPrevious], slot.Values[model.PeriodYearStart],
				boolToInt(slot.Matched), slot.SourceRow,
			); err != nil {
				return fmt.Errorf("failed to insert slot %s: %w", slot.Name, err)
			}
		}
	}
	return nil
}

func insertIndicators(tx *sql.Tx, res *model.Result) error {
	stmt, err := tx.Prepare(`INSERT INTO run_indicators (run_id, name, period, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for period, values := range res.Indicators {
		for name, v := range values {
			if _, err := stmt.Exec(res.RunID, name, string(period), v); err != nil {
				return fmt.Errorf("failed to insert indicator %s: %w", name, err)
			}
		}
	}
	return nil
}

func insertIssues(tx *sql.Tx, res *model.Result) error {
	stmt, err := tx.Prepare(`
		INSERT INTO run_issues (
			run_id, kind, statement, slot, period, source_row, label, suggestion, reported, computed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, d := range res.Discrepancies {
		if _, err := stmt.Exec(res.RunID, issueDiscrepancy, string(d.Statement), d.Slot, string(d.Period),
			0, "", "", d.Reported, d.Computed); err != nil {
			return fmt.Errorf("failed to insert discrepancy: %w", err)
		}
	}
	for _, b := range res.BalanceIssues {
		if _, err := stmt.Exec(res.RunID, issueBalance, string(model.StatementBalanceSheet), "", string(b.Period),
			0, "", "", b.TotalAssets, b.TotalLiabilitiesAndEquity); err != nil {
			return fmt.Errorf("failed to insert balance issue: %w", err)
		}
	}
	for _, o := range res.Omissions {
		if _, err := stmt.Exec(res.RunID, issueOmission, string(o.Statement), "", "",
			o.Row, o.Label, o.Suggestion, 0, 0); err != nil {
			return fmt.Errorf("failed to insert omission: %w", err)
		}
	}
	return nil
}

// ListRuns 最近的处理记录，limit <= 0 时返回全部
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	query := `
		SELECT id, filename, total_policy, balanced, discrepancy_count, omission_count, created_at
		FROM runs ORDER BY created_at DESC, id
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	out := []RunSummary{}
	for rows.Next() {
		var r RunSummary
		var balanced int
		if err := rows.Scan(&r.ID, &r.Filename, &r.TotalPolicy, &balanced, &r.DiscrepancyCount, &r.OmissionCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Balanced = balanced != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountRuns 处理记录总数
func (s *Store) CountRuns() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return n, nil
}

// GetRun 读取完整的处理结果
func (s *Store) GetRun(id string) (*model.Result, error) {
	var (
		res                        = model.NewResult(id, "")
		policy                     string
		balanced, diffs, omissions int
		inputs, removed, warnings  string
	)
	err := s.db.QueryRow(`
		SELECT filename, total_policy, balanced, discrepancy_count, omission_count,
			inputs, removed_columns, warnings, created_at
		FROM runs WHERE id = ?
	`, id).Scan(&res.Filename, &policy, &balanced, &diffs, &omissions, &inputs, &removed, &warnings, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", id, ErrRunNotFound)
		}
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	if err := json.Unmarshal([]byte(inputs), &res.Inputs); err != nil {
		return nil, fmt.Errorf("failed to decode inputs: %w", err)
	}
	if err := json.Unmarshal([]byte(removed), &res.RemovedColumns); err != nil {
		return nil, fmt.Errorf("failed to decode removed columns: %w", err)
	}
	if err := json.Unmarshal([]byte(warnings), &res.Warnings); err != nil {
		return nil, fmt.Errorf("failed to decode warnings: %w", err)
	}

	if err := s.loadSlots(res); err != nil {
		return nil, err
	}
	if err := s.loadIndicators(res); err != nil {
		return nil, err
	}
	if err := s.loadIssues(res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) loadSlots(res *model.Result) error {
	rows, err := s.db.Query(`
		SELECT statement, line, name, current_value, previous_value, year_start_value, matched, source_row
		FROM run_slots WHERE run_id = ? ORDER BY statement, line
	`, res.RunID)
	if err != nil {
		return fmt.Errorf("failed to query slots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			statement     string
			slot          model.AccountSlot
			cur, prev, ys float64
			matched       int
		)
		if err := rows.Scan(&statement, &slot.Line, &slot.Name, &cur, &prev, &ys, &matched, &slot.SourceRow); err != nil {
			return fmt.Errorf("failed to scan slot: %w", err)
		}
		kind := model.StatementKind(statement)
		slot.Matched = matched != 0
		slot.Values = map[model.PeriodKind]float64{
			model.PeriodCurrent:   cur,
			model.PeriodPrevious:  prev,
			model.PeriodYearStart: ys,
		}
		t, ok := res.Templates[kind]
		if !ok {
			t = &model.Template{Kind: kind}
			res.Templates[kind] = t
		}
		t.Slots = append(t.Slots, &slot)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for kind, t := range res.Templates {
		res.Unmatched[kind] = t.UnmatchedNames()
	}
	return nil
}

func (s *Store) loadIndicators(res *model.Result) error {
	rows, err := s.db.Query(`SELECT name, period, value FROM run_indicators WHERE run_id = ?`, res.RunID)
	if err != nil {
		return fmt.Errorf("failed to query indicators: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, period string
		var v float64
		if err := rows.Scan(&name, &period, &v); err != nil {
			return fmt.Errorf("failed to scan indicator: %w", err)
		}
		p := model.PeriodKind(period)
		if res.Indicators[p] == nil {
			res.Indicators[p] = make(map[string]float64)
		}
		res.Indicators[p][name] = v
	}
	return rows.Err()
}

func (s *Store) loadIssues(res *model.Result) error {
	rows, err := s.db.Query(`
		SELECT kind, statement, slot, period, source_row, label, suggestion, reported, computed
		FROM run_issues WHERE run_id = ? ORDER BY id
	`, res.RunID)
	if err != nil {
		return fmt.Errorf("failed to query issues: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind, statement, slot, period, label, suggestion string
			row                                              int
			reported, computed                               float64
		)
		if err := rows.Scan(&kind, &statement, &slot, &period, &row, &label, &suggestion, &reported, &computed); err != nil {
			return fmt.Errorf("failed to scan issue: %w", err)
		}
		switch kind {
		case issueDiscrepancy:
			res.Discrepancies = append(res.Discrepancies, model.Discrepancy{
				Statement: model.StatementKind(statement),
				Slot:      slot,
				Period:    model.PeriodKind(period),
				Reported:  reported,
				Computed:  computed,
			})
		case issueBalance:
			res.BalanceIssues = append(res.BalanceIssues, model.BalanceIssue{
				Period:                    model.PeriodKind(period),
				TotalAssets:               reported,
				TotalLiabilitiesAndEquity: computed,
			})
		case issueOmission:
			res.Omissions = append(res.Omissions, model.Omission{
				Statement:  model.StatementKind(statement),
				Row:        row,
				Label:      label,
				Suggestion: suggestion,
			})
		}
	}
	return rows.Err()
}

// DeleteRun 删除处理记录及其明细
func (s *Store) DeleteRun(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	for _, table := range []string{"run_slots", "run_indicators", "run_issues"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE run_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
