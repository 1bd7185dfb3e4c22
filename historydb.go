package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"QuizPDF/pdfexport"
)

// Conversion is one recorded conversion attempt. Only metadata and the skip
// report are persisted, never the produced PDF bytes.
type Conversion struct {
	ID            int64  `json:"id"`
	SourcePath    string `json:"sourcePath"`
	SourceName    string `json:"sourceName"`
	QuestionCount int    `json:"questionCount"`
	PageCount     int    `json:"pageCount"`
	Status        string `json:"status"` // "ok" or "error"
	Error         string `json:"error"`
	CreatedAt     string `json:"createdAt"`
}

// HistoryDB manages the SQLite database for conversion history.
type HistoryDB struct {
	db *sql.DB
}

// NewHistoryDB opens the history database under the app directory.
func NewHistoryDB() (*HistoryDB, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	appDir := filepath.Join(homeDir, ".quizpdf")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create app directory: %w", err)
	}

	return newHistoryDBAt(filepath.Join(appDir, "history.db"))
}

func newHistoryDBAt(dbPath string) (*HistoryDB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	hdb := &HistoryDB{db: db}
	if err := hdb.initTables(); err != nil {
		db.Close()
		return nil, err
	}

	return hdb, nil
}

// initTables creates the necessary tables.
func (h *HistoryDB) initTables() error {
	_, err := h.db.Exec(`
		CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_path TEXT NOT NULL,
			source_name TEXT NOT NULL,
			question_count INTEGER NOT NULL DEFAULT 0,
			page_count INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL CHECK(status IN ('ok', 'error')),
			error TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create conversions table: %w", err)
	}

	_, err = h.db.Exec(`
		CREATE TABLE IF NOT EXISTS skips (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			conversion_id INTEGER NOT NULL,
			item TEXT NOT NULL,
			reason TEXT NOT NULL,
			FOREIGN KEY (conversion_id) REFERENCES conversions(id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create skips table: %w", err)
	}

	_, err = h.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_skips_conversion_id ON skips(conversion_id)
	`)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

// RecordConversion stores one conversion attempt together with its skip
// report and returns the stored row.
func (h *HistoryDB) RecordConversion(c Conversion, skips []pdfexport.Skip) (*Conversion, error) {
	result, err := h.db.Exec(
		"INSERT INTO conversions (source_path, source_name, question_count, page_count, status, error) VALUES (?, ?, ?, ?, ?, ?)",
		c.SourcePath, c.SourceName, c.QuestionCount, c.PageCount, c.Status, c.Error,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record conversion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get conversion ID: %w", err)
	}

	for _, s := range skips {
		if _, err := h.db.Exec(
			"INSERT INTO skips (conversion_id, item, reason) VALUES (?, ?, ?)",
			id, s.Item, s.Reason,
		); err != nil {
			return nil, fmt.Errorf("failed to record skip: %w", err)
		}
	}

	return h.GetConversion(id)
}

// GetConversion retrieves a conversion by ID.
func (h *HistoryDB) GetConversion(id int64) (*Conversion, error) {
	var c Conversion
	err := h.db.QueryRow(
		"SELECT id, source_path, source_name, question_count, page_count, status, error, created_at FROM conversions WHERE id = ?",
		id,
	).Scan(&c.ID, &c.SourcePath, &c.SourceName, &c.QuestionCount, &c.PageCount, &c.Status, &c.Error, &c.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("conversion not found")
		}
		return nil, fmt.Errorf("failed to get conversion: %w", err)
	}

	return &c, nil
}

// GetAllConversions retrieves all conversions, most recent first.
func (h *HistoryDB) GetAllConversions() ([]Conversion, error) {
	rows, err := h.db.Query(
		"SELECT id, source_path, source_name, question_count, page_count, status, error, created_at FROM conversions ORDER BY created_at DESC, id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions: %w", err)
	}
	defer rows.Close()

	var out []Conversion
	for rows.Next() {
		var c Conversion
		if err := rows.Scan(&c.ID, &c.SourcePath, &c.SourceName, &c.QuestionCount, &c.PageCount, &c.Status, &c.Error, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversion: %w", err)
		}
		out = append(out, c)
	}

	return out, nil
}

// GetSkips retrieves the skip report recorded for a conversion.
func (h *HistoryDB) GetSkips(conversionID int64) ([]pdfexport.Skip, error) {
	rows, err := h.db.Query(
		"SELECT item, reason FROM skips WHERE conversion_id = ? ORDER BY id ASC",
		conversionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query skips: %w", err)
	}
	defer rows.Close()

	var out []pdfexport.Skip
	for rows.Next() {
		var s pdfexport.Skip
		if err := rows.Scan(&s.Item, &s.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan skip: %w", err)
		}
		out = append(out, s)
	}

	return out, nil
}

// SearchConversions searches conversions by source file name.
func (h *HistoryDB) SearchConversions(query string) ([]Conversion, error) {
	rows, err := h.db.Query(
		`SELECT id, source_path, source_name, question_count, page_count, status, error, created_at FROM conversions
		WHERE source_name LIKE ?
		ORDER BY created_at DESC, id DESC`,
		"%"+query+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search conversions: %w", err)
	}
	defer rows.Close()

	var out []Conversion
	for rows.Next() {
		var c Conversion
		if err := rows.Scan(&c.ID, &c.SourcePath, &c.SourceName, &c.QuestionCount, &c.PageCount, &c.Status, &c.Error, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversion: %w", err)
		}
		out = append(out, c)
	}

	return out, nil
}

// DeleteConversion deletes a conversion and its skip report.
func (h *HistoryDB) DeleteConversion(id int64) error {
	if _, err := h.db.Exec("DELETE FROM skips WHERE conversion_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete skips: %w", err)
	}
	if _, err := h.db.Exec("DELETE FROM conversions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete conversion: %w", err)
	}
	return nil
}

// DeleteAllConversions clears the whole history.
func (h *HistoryDB) DeleteAllConversions() error {
	if _, err := h.db.Exec("DELETE FROM skips"); err != nil {
		return fmt.Errorf("failed to delete skips: %w", err)
	}
	if _, err := h.db.Exec("DELETE FROM conversions"); err != nil {
		return fmt.Errorf("failed to delete conversions: %w", err)
	}
	return nil
}

// GetConversionCount returns the total number of recorded conversions.
func (h *HistoryDB) GetConversionCount() (int, error) {
	var count int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM conversions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count conversions: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}
