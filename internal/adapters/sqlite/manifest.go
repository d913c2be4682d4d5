package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"carddconv/internal/domain"
	"carddconv/internal/ports"
)

const schemaVersion = "1"

// manifestRelPath is the manifest location inside the output root
const manifestRelPath = ".carddconv/manifest.db"

// Manifest implements ports.Manifest using SQLite
type Manifest struct {
	db        *sql.DB
	outputDir string
	dbPath    string
}

// Ensure Manifest implements ports.Manifest
var _ ports.Manifest = (*Manifest)(nil)

// NewManifest creates a new SQLite manifest
func NewManifest() *Manifest {
	return &Manifest{}
}

// Open initializes the manifest for the given output directory
func (m *Manifest) Open(outputDir string) error {
	m.outputDir = outputDir
	m.dbPath = filepath.Join(outputDir, manifestRelPath)

	if err := os.MkdirAll(filepath.Dir(m.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", m.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	m.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at INTEGER NOT NULL,
			coco_dir TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			multi_label INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS files (
			run_id TEXT NOT NULL,
			split TEXT NOT NULL,
			category TEXT NOT NULL,
			file_name TEXT NOT NULL,
			size INTEGER NOT NULL,
			PRIMARY KEY (run_id, split, category, file_name)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_files_run ON files(run_id);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	_, err = db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (m *Manifest) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// BeginRun records a new conversion run and returns its id
func (m *Manifest) BeginRun(cocoDir, outputDir string, multiLabel bool) (string, error) {
	id := uuid.NewString()

	_, err := m.db.Exec(
		`INSERT INTO runs (id, started_at, coco_dir, output_dir, multi_label) VALUES (?, ?, ?, ?, ?)`,
		id, time.Now().Unix(), cocoDir, outputDir, boolToInt(multiLabel),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	return id, nil
}

// RecordFile records one copied output file against a run
func (m *Manifest) RecordFile(runID string, split domain.Split, category, fileName string, size int64) error {
	_, err := m.db.Exec(
		`INSERT OR REPLACE INTO files (run_id, split, category, file_name, size) VALUES (?, ?, ?, ?, ?)`,
		runID, split.String(), category, fileName, size,
	)
	if err != nil {
		return fmt.Errorf("failed to insert file: %w", err)
	}
	return nil
}

// LatestRun returns the newest recorded run
func (m *Manifest) LatestRun() (*domain.Run, error) {
	row := m.db.QueryRow(
		`SELECT id, started_at, coco_dir, output_dir, multi_label FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1`,
	)

	var run domain.Run
	var startedAt int64
	var multiLabel int
	err := row.Scan(&run.ID, &startedAt, &run.CocoDir, &run.OutputDir, &multiLabel)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read run: %w", err)
	}

	run.StartedAt = time.Unix(startedAt, 0)
	run.MultiLabel = multiLabel != 0
	return &run, nil
}

// RunFiles returns every file recorded against a run, ordered by
// split, category and file name
func (m *Manifest) RunFiles(runID string) ([]domain.CopiedFile, error) {
	rows, err := m.db.Query(
		`SELECT run_id, split, category, file_name, size FROM files WHERE run_id = ? ORDER BY split, category, file_name`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var files []domain.CopiedFile
	for rows.Next() {
		var f domain.CopiedFile
		var split string
		if err := rows.Scan(&f.RunID, &split, &f.Category, &f.FileName, &f.Size); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		f.Split = domain.Split(split)
		files = append(files, f)
	}

	return files, rows.Err()
}

// CategoryCounts returns the number of files recorded per
// "<split>/<category>" for a run
func (m *Manifest) CategoryCounts(runID string) (map[string]int, error) {
	rows, err := m.db.Query(
		`SELECT split || '/' || category, COUNT(*) FROM files WHERE run_id = ? GROUP BY split, category`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[key] = n
	}

	return counts, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
