// Package store persists per-client theme preferences and cached upstream
// city guides. SQLite backs single-node deployments; Postgres backs shared
// ones.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/city-guide/internal/model"
)

// Theme values as persisted. They match the values browsers keep under the
// "theme" key.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Store defines the persistence interface for the guide server.
type Store interface {
	// Theme preferences. GetTheme returns "" when the client has none.
	GetTheme(ctx context.Context, clientID string) (string, error)
	SetTheme(ctx context.Context, clientID, theme string) error

	// City cache. GetCachedCity returns nil, nil on a miss or expired entry.
	GetCachedCity(ctx context.Context, key string) (*model.CityData, error)
	SetCachedCity(ctx context.Context, key string, city *model.CityData, ttl time.Duration) error
	DeleteExpiredCities(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open returns the store for driver.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite", "":
		if dsn == "" {
			dsn = "city-guide.db"
		}
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn, nil)
	default:
		return nil, eris.Errorf("store: unsupported driver: %s", driver)
	}
}

func validTheme(theme string) error {
	if theme != ThemeDark && theme != ThemeLight {
		return eris.Errorf("store: invalid theme %q", theme)
	}
	return nil
}
