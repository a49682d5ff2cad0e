package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"careconnect/internal/config"
	"careconnect/internal/models"
	"careconnect/internal/store"
	"careconnect/internal/viewmode"
)

var testNow = time.Date(2026, 4, 20, 9, 0, 0, 0, time.Local)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("STORE_BACKEND", config.BackendMemory)
	t.Setenv("DEMO_PASSWORD", "letmein")
	cfg, err := config.LoadFile("")
	require.NoError(t, err)
	return cfg
}

func TestNewApp_Memory(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t), zap.NewNop(), WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, models.DefaultSettings(), app.Settings.Snapshot())
	assert.NotEmpty(t, app.Patients.All())
	assert.NotEmpty(t, app.Tasks.Overdue())
	assert.NoError(t, app.Auth.Validate("caregiver@careconnect.app", "letmein"))

	view := app.Views.Select(viewmode.NeedingAttention)
	assert.Equal(t, app.Patients.NeedingAttentionSorted(), view.Patients)
}

func TestNewApp_LoadsPersistedSettings(t *testing.T) {
	cfg := testConfig(t)
	kv := store.NewMemoryKV()
	keys := store.NewKeys(cfg.App.Namespace)
	require.NoError(t, kv.Set(context.Background(), keys.Setting("text_size"), "large"))
	require.NoError(t, kv.Set(context.Background(), keys.Setting("handedness"), "right"))

	app, err := NewApp(context.Background(), cfg, zap.NewNop(), WithKV(kv))
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, models.TextSizeLarge, app.Settings.TextSize())
	assert.Equal(t, models.HandednessRight, app.Settings.Handedness())
}

func TestNewApp_SQLiteSurvivesRestart(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Backend = config.BackendSQLite
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "settings.db")

	app, err := NewApp(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	_, err = app.Settings.SetTextSize(models.TextSizeSmall)
	require.NoError(t, err)
	require.NoError(t, app.Close())

	again, err := NewApp(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer again.Close()
	assert.Equal(t, models.TextSizeSmall, again.Settings.TextSize())
}

func TestNewApp_BadBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Backend = "etcd"

	_, err := NewApp(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

type closeErrKV struct{ *store.MemoryKV }

func (closeErrKV) Close() error { return errors.New("already closed") }

func TestApp_CloseError(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t), zap.NewNop(), WithKV(closeErrKV{store.NewMemoryKV()}))
	require.NoError(t, err)
	assert.ErrorContains(t, app.Close(), "already closed")
}

func TestFromContext(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer app.Close()

	ctx := WithApp(context.Background(), app)
	assert.Same(t, app, FromContext(ctx))
}

func TestFromContext_MissingPanics(t *testing.T) {
	assert.PanicsWithValue(t,
		"service: no App in context; wrap the context with service.WithApp before use",
		func() { FromContext(context.Background()) },
	)
}
