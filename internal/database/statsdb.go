package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"passat/internal/model"
)

// dbFileName is the SQLite database file created inside the data directory.
const dbFileName = "passat.db"

// StatsDB provides SQLite-based storage for audit run reports.
type StatsDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures StatsDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a StatsDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
func Open(dbDir string, opts Options) (*StatsDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &StatsDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Close closes the database connection.
func (sdb *StatsDB) Close() error {
	return sdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (sdb *StatsDB) createTables() error {
	schema := `
	-- One row per completed audit run. Summary columns support listing;
	-- report_json holds the full RunReport for comparison.
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		sources TEXT NOT NULL,
		lines_read INTEGER NOT NULL,
		valid_passwords INTEGER NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunSummary is a listing row for a stored run.
type RunSummary struct {
	ID             int64
	CreatedAt      time.Time
	Sources        []string
	LinesRead      int
	ValidPasswords int
}

// SaveRun stores a completed run report and returns its assigned ID.
func (sdb *StatsDB) SaveRun(ctx context.Context, report *model.RunReport) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize run report: %w", err)
	}

	query := `
	INSERT INTO runs (sources, lines_read, valid_passwords, report_json)
	VALUES (?, ?, ?, ?)
	`

	result, err := sdb.db.ExecContext(ctx, query,
		strings.Join(report.Sources, ","),
		report.LinesRead,
		report.ValidPasswords,
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return result.LastInsertId()
}

// GetRun retrieves a stored run report by ID.
// Returns nil without error when the ID does not exist.
func (sdb *StatsDB) GetRun(ctx context.Context, id int64) (*model.RunReport, error) {
	query := `SELECT report_json FROM runs WHERE id = ?`

	var reportJSON string
	err := sdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", id, err)
	}

	var report model.RunReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse run %d: %w", id, err)
	}
	return &report, nil
}

// ListRuns returns summaries of the most recent runs, newest first.
// limit <= 0 returns all runs.
func (sdb *StatsDB) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `
	SELECT id, created_at, sources, lines_read, valid_passwords
	FROM runs
	ORDER BY id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := sdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var s RunSummary
		var createdAt, sources string
		if err := rows.Scan(&s.ID, &createdAt, &sources, &s.LinesRead, &s.ValidPasswords); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		s.CreatedAt = parseTimestamp(createdAt)
		if sources != "" {
			s.Sources = strings.Split(sources, ",")
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// LatestRunIDs returns the IDs of the n most recent runs, newest first.
func (sdb *StatsDB) LatestRunIDs(ctx context.Context, n int) ([]int64, error) {
	summaries, err := sdb.ListRuns(ctx, n)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(summaries))
	for i, s := range summaries {
		ids[i] = s.ID
	}
	return ids, nil
}

// timestampFormats covers the layouts SQLite returns depending on how the
// value was written.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z",
}

func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Zero time rather than an error; listings tolerate unknown layouts.
	return time.Time{}
}
