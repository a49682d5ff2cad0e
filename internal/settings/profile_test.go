package settings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"careconnect/internal/models"
	"careconnect/internal/settings"
	"careconnect/internal/store"
)

func TestProfileStore_EmptyWhenAbsent(t *testing.T) {
	ps := settings.NewProfileStore(store.NewMemoryKV(), keys, zap.NewNop())

	p, err := ps.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.CaregiverProfile{}, p)
}

func TestProfileStore_SaveLoadClear(t *testing.T) {
	kv := store.NewMemoryKV()
	ps := settings.NewProfileStore(kv, keys, zap.NewNop())
	ctx := context.Background()

	photo := "content://media/42"
	want := &models.CaregiverProfile{
		PhotoURI:     &photo,
		Name:         "Jordan Lee",
		TitleRole:    "CNA",
		Position:     "Home Health Aide",
		Organization: "Evergreen Care",
		Email:        "jordan@evergreen.example",
		Phone:        "",
	}
	require.NoError(t, ps.Save(ctx, want))

	raw, err := kv.Get(ctx, "careconnect:caregiver_profile_v1")
	require.NoError(t, err)
	assert.Contains(t, raw, `"photoUri":"content://media/42"`)

	got, err := ps.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, ps.Clear(ctx))
	got, err = ps.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got.PhotoURI)
	assert.Empty(t, got.Name)
}

func TestProfileStore_CorruptDocument(t *testing.T) {
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), keys.Profile(), "{\"name\":"))

	ps := settings.NewProfileStore(kv, keys, nil)
	_, err := ps.Load(context.Background())
	assert.Error(t, err)
}

func TestProfileStore_StoreErrors(t *testing.T) {
	kv := newFaultyKV()
	ps := settings.NewProfileStore(kv, keys, zap.NewNop())
	ctx := context.Background()

	kv.failSets(errors.New("read-only file system"))
	err := ps.Save(ctx, &models.CaregiverProfile{Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only file system")

	kv.failGets(errors.New("locked"))
	_, err = ps.Load(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrMiss)
}
