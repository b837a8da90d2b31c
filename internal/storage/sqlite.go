package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/refdex/refdex/internal/record"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectRecordFields contains the standard field list for SELECT
// queries.
const selectRecordFields = `id, project_id, title, authors_json, journal,
	pub_year, doi, pmid, abstract,
	duplicate_of, similarity_score, updated_at`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			project_id TEXT,
			title TEXT NOT NULL,
			authors_json TEXT NOT NULL,
			journal TEXT,
			pub_year INTEGER,
			doi TEXT,
			pmid TEXT,
			abstract TEXT,
			duplicate_of TEXT,
			similarity_score REAL,
			updated_at TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_records_doi ON records(doi) WHERE doi IS NOT NULL AND doi != '';
		CREATE INDEX IF NOT EXISTS idx_records_duplicate_of ON records(duplicate_of) WHERE duplicate_of IS NOT NULL AND duplicate_of != '';
	`

	_, err := db.Exec(schema)
	return err
}

// Upsert inserts or replaces a record.
func (d *DB) Upsert(rec record.Record) error {
	authorsJSON, err := json.Marshal(rec.Authors)
	if err != nil {
		return fmt.Errorf("encoding authors: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT OR REPLACE INTO records (
			id, project_id, title, authors_json, journal,
			pub_year, doi, pmid, abstract,
			duplicate_of, similarity_score, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.ProjectID, rec.Title, string(authorsJSON), rec.Journal,
		rec.Year, rec.DOI, rec.PMID, rec.Abstract,
		rec.DuplicateOf, rec.SimilarityScore, formatTime(rec.UpdatedAt))
	if err != nil {
		return fmt.Errorf("upserting record %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns the record with the given ID.
func (d *DB) Get(id string) (record.Record, bool, error) {
	row := d.db.QueryRow(`SELECT `+selectRecordFields+` FROM records WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return record.Record{}, false, nil
	}
	if err != nil {
		return record.Record{}, false, fmt.Errorf("getting record %s: %w", id, err)
	}
	return rec, true, nil
}

// ListAll returns records ordered by ID, up to limit (0 = all).
func (d *DB) ListAll(limit int) ([]record.Record, error) {
	query := `SELECT ` + selectRecordFields + ` FROM records ORDER BY id`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return d.queryRecords(query)
}

// ListPrimaries returns records not marked as duplicates.
func (d *DB) ListPrimaries(limit int) ([]record.Record, error) {
	query := `SELECT ` + selectRecordFields + ` FROM records
		WHERE duplicate_of IS NULL OR duplicate_of = '' ORDER BY id`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return d.queryRecords(query)
}

// ListDuplicates returns records marked as duplicates.
func (d *DB) ListDuplicates(limit int) ([]record.Record, error) {
	query := `SELECT ` + selectRecordFields + ` FROM records
		WHERE duplicate_of IS NOT NULL AND duplicate_of != '' ORDER BY id`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return d.queryRecords(query)
}

// MarkDuplicate updates a record's duplicate pointer, score, and
// timestamp. Records already pointing at id are re-pointed at
// primaryID so no duplicate chain exceeds depth one.
func (d *DB) MarkDuplicate(id, primaryID string, score float64, at time.Time) error {
	res, err := d.db.Exec(`
		UPDATE records SET duplicate_of = ?, similarity_score = ?, updated_at = ?
		WHERE id = ?`,
		primaryID, score, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("marking record %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("record %q not found", id)
	}

	if _, err := d.db.Exec(`
		UPDATE records SET duplicate_of = ?, updated_at = ?
		WHERE duplicate_of = ?`,
		primaryID, formatTime(at), id); err != nil {
		return fmt.Errorf("re-pointing duplicates of %s: %w", id, err)
	}
	return nil
}

// ClearDuplicate removes a record's duplicate pointer and score.
func (d *DB) ClearDuplicate(id string, at time.Time) error {
	res, err := d.db.Exec(`
		UPDATE records SET duplicate_of = '', similarity_score = 0, updated_at = ?
		WHERE id = ?`,
		formatTime(at), id)
	if err != nil {
		return fmt.Errorf("clearing record %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("record %q not found", id)
	}
	return nil
}

// Count returns the number of records in the database.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL
// file. Returns the number of records loaded.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	records, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	if _, err := d.db.Exec(`DELETE FROM records`); err != nil {
		return 0, fmt.Errorf("clearing records table: %w", err)
	}

	for _, rec := range records {
		if err := d.Upsert(rec); err != nil {
			return 0, err
		}
	}

	return len(records), nil
}

// queryRecords runs a SELECT over the standard field list.
func (d *DB) queryRecords(query string, args ...any) ([]record.Record, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []record.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanRecord.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one row in selectRecordFields order.
func scanRecord(s scanner) (record.Record, error) {
	var rec record.Record
	var authorsJSON string
	var projectID, journal, doi, pmid, abstract, duplicateOf, updatedAt sql.NullString
	var year sql.NullInt64
	var score sql.NullFloat64

	err := s.Scan(&rec.ID, &projectID, &rec.Title, &authorsJSON, &journal,
		&year, &doi, &pmid, &abstract,
		&duplicateOf, &score, &updatedAt)
	if err != nil {
		return record.Record{}, err
	}

	rec.ProjectID = projectID.String
	rec.Journal = journal.String
	rec.Year = int(year.Int64)
	rec.DOI = doi.String
	rec.PMID = pmid.String
	rec.Abstract = abstract.String
	rec.DuplicateOf = duplicateOf.String
	rec.SimilarityScore = score.Float64

	if err := json.Unmarshal([]byte(authorsJSON), &rec.Authors); err != nil {
		return record.Record{}, fmt.Errorf("decoding authors for %s: %w", rec.ID, err)
	}
	if updatedAt.String != "" {
		t, err := time.Parse(time.RFC3339, updatedAt.String)
		if err != nil {
			return record.Record{}, fmt.Errorf("parsing updated_at for %s: %w", rec.ID, err)
		}
		rec.UpdatedAt = t
	}

	return rec, nil
}

// formatTime renders a timestamp for storage; zero times store empty.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
