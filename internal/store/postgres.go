package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/city-guide/internal/db"
	"github.com/sells-group/city-guide/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS theme_prefs (
	client_id  TEXT PRIMARY KEY,
	theme      TEXT NOT NULL CHECK (theme IN ('dark', 'light')),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS city_cache (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	city_key   TEXT NOT NULL UNIQUE,
	data       JSONB NOT NULL,
	cached_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_city_cache_expires_at ON city_cache(expires_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) GetTheme(ctx context.Context, clientID string) (string, error) {
	var theme string
	err := s.pool.QueryRow(ctx,
		`SELECT theme FROM theme_prefs WHERE client_id = $1`,
		clientID,
	).Scan(&theme)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", eris.Wrapf(err, "postgres: get theme %s", clientID)
	}
	return theme, nil
}

func (s *PostgresStore) SetTheme(ctx context.Context, clientID, theme string) error {
	if err := validTheme(theme); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO theme_prefs (client_id, theme, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (client_id) DO UPDATE SET theme = $2, updated_at = $3`,
		clientID, theme, time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: set theme %s", clientID)
}

func (s *PostgresStore) GetCachedCity(ctx context.Context, key string) (*model.CityData, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM city_cache WHERE city_key = $1 AND expires_at > now()`,
		key,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "postgres: get cached city")
	}

	var city model.CityData
	if err := json.Unmarshal(data, &city); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal cached city")
	}
	return &city, nil
}

func (s *PostgresStore) SetCachedCity(ctx context.Context, key string, city *model.CityData, ttl time.Duration) error {
	data, err := json.Marshal(city)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal city")
	}

	now := time.Now().UTC()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO city_cache (id, city_key, data, cached_at, expires_at) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (city_key) DO UPDATE SET data = $3, cached_at = $4, expires_at = $5`,
		uuid.New().String(), key, data, now, now.Add(ttl),
	)
	return eris.Wrap(err, "postgres: set cached city")
}

func (s *PostgresStore) DeleteExpiredCities(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM city_cache WHERE expires_at <= now()`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete expired cities")
	}
	return int(tag.RowsAffected()), nil
}
