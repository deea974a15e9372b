package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/city-guide/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testCity() *model.CityData {
	city := &model.CityData{ID: "paris", Name: "Paris", Country: "France", Overview: "City of light."}
	city.Categories.Set("education", model.CategoryData{Title: "Education", Description: "Schools"})
	city.Categories.Set("transportation", model.CategoryData{Title: "Transportation", Description: "Metro"})
	return city
}

// --- Theme ---

func TestSQLite_Theme_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	theme, err := st.GetTheme(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, theme)
}

func TestSQLite_Theme_SetAndOverwrite(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SetTheme(ctx, "client-1", ThemeDark))
	theme, err := st.GetTheme(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)

	require.NoError(t, st.SetTheme(ctx, "client-1", ThemeLight))
	theme, err = st.GetTheme(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)

	other, err := st.GetTheme(ctx, "client-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSQLite_Theme_RejectsUnknownValue(t *testing.T) {
	st := newTestSQLiteStore(t)

	err := st.SetTheme(context.Background(), "client-1", "sepia")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid theme")
}

// --- City cache ---

func TestSQLite_CityCache_SetAndGet(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SetCachedCity(ctx, "paris", testCity(), time.Hour))

	got, err := st.GetCachedCity(ctx, "paris")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Paris", got.Name)
	assert.Equal(t, []string{"education", "transportation"}, got.Categories.Keys())
}

func TestSQLite_CityCache_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	got, err := st.GetCachedCity(context.Background(), "atlantis")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_CityCache_Expired(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SetCachedCity(ctx, "paris", testCity(), -time.Hour))

	got, err := st.GetCachedCity(ctx, "paris")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_CityCache_Overwrite(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SetCachedCity(ctx, "paris", testCity(), -time.Hour))
	updated := testCity()
	updated.Overview = "Refreshed."
	require.NoError(t, st.SetCachedCity(ctx, "paris", updated, time.Hour))

	got, err := st.GetCachedCity(ctx, "paris")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Refreshed.", got.Overview)
}

func TestSQLite_DeleteExpiredCities(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SetCachedCity(ctx, "old", testCity(), -time.Hour))
	require.NoError(t, st.SetCachedCity(ctx, "fresh", testCity(), time.Hour))

	n, err := st.DeleteExpiredCities(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := st.GetCachedCity(ctx, "fresh")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestSQLite_MigrateIdempotent(t *testing.T) {
	st := newTestSQLiteStore(t)
	require.NoError(t, st.Migrate(context.Background()))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, "sqlite", filepath.Join(t.TempDir(), "open.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, st)
	require.NoError(t, st.Close())

	_, err = Open(ctx, "mongodb", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}
