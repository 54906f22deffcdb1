package resultstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/MalcolmSlaney/GoogleSIN/internal/config"
	"github.com/MalcolmSlaney/GoogleSIN/internal/transcript"
)

// Store caches completed recognition responses in SQLite so that re-running a
// batch does not re-submit audio that was already recognized. Entries are
// keyed by (file base name, model).
type Store struct {
	db    *sql.DB
	cfg   config.ResultsConfig
	log   *slog.Logger
	clock func() time.Time
}

// Open initializes the cache according to config. A disabled cache yields a
// store whose lookups always miss and whose writes are dropped.
func Open(ctx context.Context, cfg config.ResultsConfig, log *slog.Logger) (*Store, error) {
	if !cfg.Enabled {
		return &Store{cfg: cfg, log: log, clock: time.Now}, nil
	}

	dir := filepath.Dir(cfg.Path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", cfg.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &Store{db: db, cfg: cfg, log: log, clock: time.Now}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS responses (
    file TEXT NOT NULL,
    model TEXT NOT NULL,
    payload BLOB NOT NULL,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY(file, model)
);
`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// Close releases underlying resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the cached response for a file and model, or ok=false on a miss.
func (s *Store) Get(ctx context.Context, file, model string) (*transcript.Response, bool, error) {
	if s.db == nil {
		return nil, false, nil
	}
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM responses WHERE file = ? AND model = ?`, file, model).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query cached response: %w", err)
	}
	var resp transcript.Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		// A corrupt row is treated as a miss so the file gets re-recognized.
		s.log.Warn("dropping unreadable cached response",
			slog.String("file", file), slog.String("error", err.Error()))
		return nil, false, nil
	}
	return &resp, true, nil
}

// Put stores a response, replacing any previous entry for the same key.
func (s *Store) Put(ctx context.Context, file, model string, resp *transcript.Response) error {
	if s.db == nil {
		return nil
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO responses(file, model, payload, created_at) VALUES(?, ?, ?, ?)
		 ON CONFLICT(file, model) DO UPDATE SET payload=excluded.payload, created_at=excluded.created_at`,
		file, model, payload, s.clock().UTC())
	if err != nil {
		return fmt.Errorf("store response: %w", err)
	}
	return nil
}

// Files lists the file names with a cached response for the given model.
func (s *Store) Files(ctx context.Context, model string) ([]string, error) {
	if s.db == nil {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT file FROM responses WHERE model = ? ORDER BY file ASC`, model)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
