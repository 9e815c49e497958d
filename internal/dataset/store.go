package dataset

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/alexjj/sota-us-counties/internal/join"
)

// Store persists joined-row snapshots in SQLite, keyed by source fingerprint.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at the given path and configures WAL mode.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: open sqlite")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "dataset: exec %s", pragma)
		}
	}
	return &Store{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id          TEXT PRIMARY KEY,
	fingerprint TEXT NOT NULL UNIQUE,
	row_count   INTEGER NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS summit_rows (
	snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
	seq         INTEGER NOT NULL,
	code        TEXT NOT NULL,
	name        TEXT NOT NULL,
	region      TEXT NOT NULL,
	association TEXT NOT NULL,
	latitude    REAL NOT NULL,
	longitude   REAL NOT NULL,
	points      INTEGER NOT NULL,
	counties    TEXT NOT NULL,
	PRIMARY KEY (snapshot_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_fingerprint ON snapshots(fingerprint);
`

// Migrate creates the snapshot schema.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "dataset: migrate")
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot replaces any stored snapshots with one for the given
// fingerprint. Rows are stored in output order so LoadSnapshot round-trips
// byte-identically.
func (s *Store) SaveSnapshot(ctx context.Context, fingerprint string, rows []join.Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "dataset: begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	// Only the current sources are worth caching.
	if _, err := tx.ExecContext(ctx, `DELETE FROM summit_rows`); err != nil {
		return eris.Wrap(err, "dataset: clear rows")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
		return eris.Wrap(err, "dataset: clear snapshots")
	}

	id := uuid.New().String()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, fingerprint, row_count, created_at) VALUES (?, ?, ?, ?)`,
		id, fingerprint, len(rows), time.Now().UTC(),
	); err != nil {
		return eris.Wrap(err, "dataset: insert snapshot")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO summit_rows (snapshot_id, seq, code, name, region, association, latitude, longitude, points, counties)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "dataset: prepare insert")
	}
	defer func() { _ = stmt.Close() }()

	for seq, row := range rows {
		if _, err := stmt.ExecContext(ctx, id, seq,
			row.Code, row.Name, row.Region, row.Association,
			row.Latitude, row.Longitude, row.Points, row.Counties,
		); err != nil {
			return eris.Wrapf(err, "dataset: insert row %s", row.Code)
		}
	}

	return eris.Wrap(tx.Commit(), "dataset: commit snapshot")
}

// LoadSnapshot returns the stored rows for the fingerprint. The second return
// is false when no snapshot matches (including after a source change).
func (s *Store) LoadSnapshot(ctx context.Context, fingerprint string) ([]join.Row, bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM snapshots WHERE fingerprint = ?`, fingerprint,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, eris.Wrap(err, "dataset: query snapshot")
	}

	rowsIter, err := s.db.QueryContext(ctx,
		`SELECT code, name, region, association, latitude, longitude, points, counties
		 FROM summit_rows WHERE snapshot_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, false, eris.Wrap(err, "dataset: query rows")
	}
	defer func() { _ = rowsIter.Close() }()

	var rows []join.Row
	for rowsIter.Next() {
		var r join.Row
		if err := rowsIter.Scan(&r.Code, &r.Name, &r.Region, &r.Association,
			&r.Latitude, &r.Longitude, &r.Points, &r.Counties); err != nil {
			return nil, false, eris.Wrap(err, "dataset: scan row")
		}
		rows = append(rows, r)
	}
	if err := rowsIter.Err(); err != nil {
		return nil, false, eris.Wrap(err, "dataset: iterate rows")
	}

	return rows, true, nil
}
