package cookiekeeper

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver (pure Go).
)

// UpdateRecord is one row of the persist ledger.
type UpdateRecord struct {
	ID         int64
	RecordedAt time.Time
	FieldCount int
	Complete   bool
	Fresh      bool

	// Digest identifies the persisted content without storing the
	// credential itself; see Digest.
	Digest string
}

// Ledger is an append-only log of cookie persists, a SQLite file kept next
// to the store. Ledger failures are informational: callers log them and
// carry on, the same policy as backup pruning.
type Ledger struct {
	db *sql.DB
}

const createLedgerSQL = `
CREATE TABLE IF NOT EXISTS updates (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	recorded_at INTEGER NOT NULL,
	field_count INTEGER NOT NULL,
	complete    INTEGER NOT NULL,
	fresh       INTEGER NOT NULL,
	digest      TEXT    NOT NULL
)`

// OpenLedger opens (creating if needed) the ledger file at path.
func OpenLedger(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(path))
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(createLedgerSQL); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Ledger{db: db}, nil
}

// Record appends one row. A zero RecordedAt is stamped with the current
// time.
func (l *Ledger) Record(ctx context.Context, rec UpdateRecord) error {
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO updates (recorded_at, field_count, complete, fresh, digest) VALUES (?, ?, ?, ?, ?)`,
		rec.RecordedAt.Unix(), rec.FieldCount, rec.Complete, rec.Fresh, rec.Digest,
	)
	return err
}

// Recent returns up to limit rows, newest first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]UpdateRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, recorded_at, field_count, complete, fresh, digest FROM updates ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []UpdateRecord
	for rows.Next() {
		var rec UpdateRecord
		var recordedAt int64
		if err := rows.Scan(&rec.ID, &recordedAt, &rec.FieldCount, &rec.Complete, &rec.Fresh, &rec.Digest); err != nil {
			return nil, err
		}
		rec.RecordedAt = time.Unix(recordedAt, 0)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the underlying database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Digest returns the short content digest recorded in the ledger: the
// first 12 hex characters of SHA-256 over the serialized cookie string.
func Digest(serialized string) string {
	sum := sha256.Sum256([]byte(serialized))
	return hex.EncodeToString(sum[:])[:12]
}
