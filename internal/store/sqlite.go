package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/city-guide/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS theme_prefs (
	client_id  TEXT PRIMARY KEY,
	theme      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS city_cache (
	id         TEXT PRIMARY KEY,
	city_key   TEXT NOT NULL UNIQUE,
	data       TEXT NOT NULL,
	cached_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_city_cache_expires_at ON city_cache(expires_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetTheme(ctx context.Context, clientID string) (string, error) {
	var theme string
	err := s.db.QueryRowContext(ctx,
		`SELECT theme FROM theme_prefs WHERE client_id = ?`,
		clientID,
	).Scan(&theme)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", eris.Wrapf(err, "sqlite: get theme %s", clientID)
	}
	return theme, nil
}

func (s *SQLiteStore) SetTheme(ctx context.Context, clientID, theme string) error {
	if err := validTheme(theme); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO theme_prefs (client_id, theme, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(client_id) DO UPDATE SET theme = excluded.theme, updated_at = excluded.updated_at`,
		clientID, theme, s.now(),
	)
	return eris.Wrapf(err, "sqlite: set theme %s", clientID)
}

func (s *SQLiteStore) GetCachedCity(ctx context.Context, key string) (*model.CityData, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM city_cache WHERE city_key = ? AND expires_at > ?`,
		key, s.now(),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get cached city")
	}

	var city model.CityData
	if err := json.Unmarshal([]byte(data), &city); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal cached city")
	}
	return &city, nil
}

func (s *SQLiteStore) SetCachedCity(ctx context.Context, key string, city *model.CityData, ttl time.Duration) error {
	data, err := json.Marshal(city)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal city")
	}

	now := s.now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO city_cache (id, city_key, data, cached_at, expires_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(city_key) DO UPDATE SET data = excluded.data, cached_at = excluded.cached_at, expires_at = excluded.expires_at`,
		uuid.New().String(), key, string(data), now, now.Add(ttl),
	)
	return eris.Wrap(err, "sqlite: set cached city")
}

func (s *SQLiteStore) DeleteExpiredCities(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM city_cache WHERE expires_at <= ?`,
		s.now(),
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete expired cities")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "sqlite: rows affected")
}
