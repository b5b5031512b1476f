package folio

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database holding API credentials keyed by browser
// session id. The records themselves live behind the API.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db, now: time.Now}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS credentials (
    session_id TEXT PRIMARY KEY,
    token TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS credentials_updated_at ON credentials(updated_at);
`)
	return err
}

// LoadToken returns the credential stored for sessionID, or "" when there
// is none or it was stored before notBefore.
func (s *Store) LoadToken(ctx context.Context, sessionID string, notBefore time.Time) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT token FROM credentials WHERE session_id = ? AND updated_at >= ?`,
		sessionID, notBefore.Unix(),
	).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return token, err
}

// SaveToken stores token for sessionID, replacing any previous one.
func (s *Store) SaveToken(ctx context.Context, sessionID, token string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO credentials (session_id, token, updated_at) VALUES (?, ?, ?)
ON CONFLICT(session_id) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at`,
		sessionID, token, s.now().Unix())
	return err
}

// DeleteToken removes the credential for sessionID. Deleting a missing one
// is not an error.
func (s *Store) DeleteToken(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE session_id = ?`, sessionID)
	return err
}

// PurgeExpired deletes credentials stored before cutoff and returns how
// many were removed.
func (s *Store) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE updated_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartCleanupScheduler periodically purges credentials older than maxAge.
// Returns a stop function.
func (s *Store) StartCleanupScheduler(maxAge, interval time.Duration, log *zap.Logger) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				n, err := s.PurgeExpired(context.Background(), s.now().Add(-maxAge))
				if err != nil {
					log.Warn("credential cleanup failed", zap.Error(err))
					continue
				}
				if n > 0 {
					log.Debug("purged expired credentials", zap.Int64("count", n))
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
