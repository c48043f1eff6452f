// Package db stores generated datasets, generation runs and fetched corpus
// documents in sqlite.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tactile-data/braillegen/internal/braille"
	"github.com/tactile-data/braillegen/internal/dataset"
)

type DB struct {
	*sql.DB
}

// OpenDB opens (creating if necessary) the sqlite database at path. Schema
// management is left to the migrations; see migrate.go.
func OpenDB(path string) (*DB, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if _, err := d.Exec("PRAGMA foreign_keys = ON"); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	// Single writer; avoids SQLITE_BUSY between the API and batch inserts.
	d.SetMaxOpenConns(1)
	return &DB{d}, nil
}

// InsertRun records a generation run descriptor. configJSON may be empty.
func (db *DB) InsertRun(run dataset.Run, configJSON string) error {
	_, err := db.Exec(
		`INSERT INTO generation_runs (run_id, stage, seed, record_count, config, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Stage, run.Seed, run.Count, configJSON, run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}
	return nil
}

// InsertRecords stores a generated batch under runID in one transaction.
// Each record gets a fresh id; metadata is stored as JSON text.
func (db *DB) InsertRecords(runID string, recs []dataset.Record) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO records (record_id, run_id, instruction, input, output, task_type, metadata, output_cells)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range recs {
		var metadata string
		if rec.Metadata != nil {
			raw, err := json.Marshal(rec.Metadata)
			if err != nil {
				return fmt.Errorf("record %d: failed to marshal metadata: %w", i, err)
			}
			metadata = string(raw)
		}
		if _, err := stmt.Exec(
			uuid.NewString(), runID, rec.Instruction, rec.Input, rec.Output,
			rec.TaskType, metadata, braille.CountCells(rec.Output),
		); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// StoredRecord is a record row joined with its storage identity.
type StoredRecord struct {
	ID          string         `json:"id"`
	RunID       string         `json:"run_id,omitempty"`
	Instruction string         `json:"instruction"`
	Input       string         `json:"input"`
	Output      string         `json:"output"`
	TaskType    string         `json:"task_type,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	OutputCells int            `json:"output_cells"`
	CreatedAt   string         `json:"created_at"`
}

// RecentRecords returns the newest records, up to limit.
func (db *DB) RecentRecords(limit int) ([]StoredRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(
		`SELECT record_id, run_id, instruction, input, output, task_type, metadata, output_cells, created_at
		 FROM records ORDER BY created_at DESC, record_id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []StoredRecord
	for rows.Next() {
		var rec StoredRecord
		var runID, taskType, metadata sql.NullString
		if err := rows.Scan(
			&rec.ID, &runID, &rec.Instruction, &rec.Input, &rec.Output,
			&taskType, &metadata, &rec.OutputCells, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.RunID = runID.String
		rec.TaskType = taskType.String
		if metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &rec.Metadata); err != nil {
				return nil, fmt.Errorf("record %s: corrupt metadata: %w", rec.ID, err)
			}
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// TaskStat summarises the stored records for one task type.
type TaskStat struct {
	TaskType       string  `json:"task_type"`
	Count          int     `json:"count"`
	AvgOutputCells float64 `json:"avg_output_cells"`
}

// TaskStats returns per-task record counts and average output cell counts.
// Untagged records (stage 1/2 corpora) report under the empty task type.
func (db *DB) TaskStats() ([]TaskStat, error) {
	rows, err := db.Query(
		`SELECT COALESCE(task_type, ''), COUNT(*), COALESCE(AVG(output_cells), 0)
		 FROM records GROUP BY task_type ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []TaskStat
	for rows.Next() {
		var s TaskStat
		if err := rows.Scan(&s.TaskType, &s.Count, &s.AvgOutputCells); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// CountRecords returns the total number of stored records.
func (db *DB) CountRecords() (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&n)
	return n, err
}

// SaveDocument stores one fetched corpus document. Concepts are stored as a
// comma-separated list.
func (db *DB) SaveDocument(id, title, court, dateFiled, jurisdiction, sourceURL string, concepts []string, body string) error {
	_, err := db.Exec(
		`INSERT OR REPLACE INTO documents (document_id, title, court, date_filed, jurisdiction, source_url, concepts, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, title, court, dateFiled, jurisdiction, sourceURL, strings.Join(concepts, ","), body,
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", id, err)
	}
	return nil
}
