package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ppiankov/plainspeak/internal/model"
)

// DBFile is the history database file name inside the data directory
const DBFile = "history.db"

// SQLiteStore persists history in a single SQLite file
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// OpenSQLite opens or creates the history database under dir
func OpenSQLite(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	dbPath := filepath.Join(dir, DBFile)

	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// One writer; SQLite serializes writes anyway
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, dbPath: dbPath}
	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		timestamp DATETIME NOT NULL,
		type TEXT NOT NULL,
		original_text TEXT NOT NULL,
		simplified_text TEXT NOT NULL,
		actions TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp);
	`
	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Path returns the database file path
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

func (s *SQLiteStore) Append(ctx context.Context, item model.HistoryItem) (model.HistoryItem, error) {
	item = stamp(item)

	actions, err := json.Marshal(item.Actions)
	if err != nil {
		return model.HistoryItem{}, fmt.Errorf("marshal actions: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO history (id, timestamp, type, original_text, simplified_text, actions)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID, item.Timestamp, item.Type, item.OriginalText, item.SimplifiedText, string(actions),
	)
	if err != nil {
		return model.HistoryItem{}, fmt.Errorf("insert history item: %w", err)
	}
	return item, nil
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]model.HistoryItem, error) {
	query := `SELECT id, timestamp, type, original_text, simplified_text, actions
		FROM history ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []model.HistoryItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (model.HistoryItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, timestamp, type, original_text, simplified_text, actions
		 FROM history WHERE id = ?`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.HistoryItem{}, ErrNotFound
	}
	return item, err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(sc scanner) (model.HistoryItem, error) {
	var item model.HistoryItem
	var actions string

	if err := sc.Scan(&item.ID, &item.Timestamp, &item.Type, &item.OriginalText, &item.SimplifiedText, &actions); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return item, err
		}
		return item, fmt.Errorf("scan history item: %w", err)
	}
	if err := json.Unmarshal([]byte(actions), &item.Actions); err != nil {
		return item, fmt.Errorf("unmarshal actions: %w", err)
	}
	return item, nil
}
