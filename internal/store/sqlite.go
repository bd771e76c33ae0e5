package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/cropcal/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	idMu    sync.Mutex
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS crop_calendar (
		id         TEXT PRIMARY KEY,
		seq        INTEGER NOT NULL UNIQUE,
		season     TEXT NOT NULL,
		crop       TEXT NOT NULL,
		variety    TEXT NOT NULL,
		month      TEXT NOT NULL,
		week_1     TEXT NOT NULL DEFAULT '',
		week_2     TEXT NOT NULL DEFAULT '',
		week_3     TEXT NOT NULL DEFAULT '',
		week_4     TEXT NOT NULL DEFAULT '',
		week_1_kn  TEXT NOT NULL DEFAULT '',
		week_2_kn  TEXT NOT NULL DEFAULT '',
		week_3_kn  TEXT NOT NULL DEFAULT '',
		week_4_kn  TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_calendar_search ON crop_calendar(season, crop, variety);
	`
	_, err := s.db.Exec(schema)
	return err
}

const recordColumns = `id, seq, season, crop, variety, month,
	week_1, week_2, week_3, week_4, week_1_kn, week_2_kn, week_3_kn, week_4_kn`

// Months returns the month records of a plan ordered by sequence position.
func (s *SQLiteStore) Months(ctx context.Context, q model.PlanQuery) ([]model.MonthRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM crop_calendar
		 WHERE LOWER(season) = LOWER(?)
		   AND LOWER(crop) = LOWER(?)
		   AND LOWER(variety) LIKE LOWER(?)
		 ORDER BY seq ASC`,
		q.Season, q.Crop, "%"+q.Variety+"%")
	if err != nil {
		return nil, fmt.Errorf("query months: %w", err)
	}
	defer rows.Close()

	records := []model.MonthRecord{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Insert appends records after the current last sequence position, in one
// transaction. Record IDs and sequence numbers are assigned here.
func (s *SQLiteStore) Insert(ctx context.Context, records []model.MonthRecord) (int, error) {
	return s.insert(ctx, records, false)
}

// insert writes records in one transaction, first deleting every row when
// replace is set, so a failed import leaves the previous rows in place.
func (s *SQLiteStore) insert(ctx context.Context, records []model.MonthRecord, replace bool) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if replace {
		if _, err := tx.ExecContext(ctx, `DELETE FROM crop_calendar`); err != nil {
			return 0, fmt.Errorf("clear calendar: %w", err)
		}
	}

	var maxSeq int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM crop_calendar`).Scan(&maxSeq); err != nil {
		return 0, fmt.Errorf("read sequence: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, r := range records {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO crop_calendar (`+recordColumns+`, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.newID(), maxSeq+i+1, r.Season, r.Crop, r.Variety, r.Month,
			r.Weeks[0], r.Weeks[1], r.Weeks[2], r.Weeks[3],
			r.WeeksLocalized[0], r.WeeksLocalized[1], r.WeeksLocalized[2], r.WeeksLocalized[3],
			now)
		if err != nil {
			return 0, fmt.Errorf("insert %s/%s/%s %s: %w", r.Season, r.Crop, r.Variety, r.Month, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (model.MonthRecord, error) {
	var r model.MonthRecord
	err := row.Scan(
		&r.ID, &r.Seq, &r.Season, &r.Crop, &r.Variety, &r.Month,
		&r.Weeks[0], &r.Weeks[1], &r.Weeks[2], &r.Weeks[3],
		&r.WeeksLocalized[0], &r.WeeksLocalized[1], &r.WeeksLocalized[2], &r.WeeksLocalized[3],
	)
	return r, err
}
