package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"careconnect/internal/auth"
	"careconnect/internal/settings"
)

func testEnv(t *testing.T, backend string) {
	t.Helper()
	t.Setenv("CARECONNECT_CONFIG", "")
	t.Setenv("CARECONNECT_NAMESPACE", "careconnect-test")
	t.Setenv("STORE_BACKEND", backend)
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "settings.db"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DEMO_EMAIL", "nurse@careconnect.app")
	t.Setenv("DEMO_PASSWORD", "letmein")
	t.Setenv("DEMO_PASSWORD_HASH", "")
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestSettings_ShowDefaults(t *testing.T) {
	testEnv(t, "memory")

	out, _, err := execute(t, "settings", "show")
	require.NoError(t, err)
	for _, want := range []string{"handedness", "left", "text_size", "medium", "reminder_frequency", "daily"} {
		assert.Contains(t, out, want)
	}
}

func TestSettings_PersistAcrossRuns(t *testing.T) {
	testEnv(t, "sqlite")

	out, _, err := execute(t, "settings", "set", "textSize", "large")
	require.NoError(t, err)
	assert.Equal(t, "large\n", out)

	out, _, err = execute(t, "settings", "get", "text_size")
	require.NoError(t, err)
	assert.Equal(t, "large\n", out)

	// another namespace sees defaults
	out, _, err = execute(t, "--namespace", "other", "settings", "get", "text_size")
	require.NoError(t, err)
	assert.Equal(t, "medium\n", out)
}

func TestSettings_HandednessKeepsCurrentOnBadValue(t *testing.T) {
	testEnv(t, "memory")

	out, errOut, err := execute(t, "settings", "set", "handedness", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "left\n", out)
	assert.Contains(t, errOut, "not accepted")

	out, _, err = execute(t, "settings", "handedness-mode", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "toggle\n", out)

	out, _, err = execute(t, "settings", "toggle-handedness")
	require.NoError(t, err)
	assert.Equal(t, "right\n", out)
}

func TestSettings_InvalidValue(t *testing.T) {
	testEnv(t, "memory")

	_, _, err := execute(t, "settings", "set", "text_size", "huge")
	assert.ErrorIs(t, err, settings.ErrInvalidValue)

	_, _, err = execute(t, "settings", "get", "font")
	assert.ErrorIs(t, err, settings.ErrUnknownField)
}

func TestProfile_SetAndShow(t *testing.T) {
	testEnv(t, "sqlite")

	_, _, err := execute(t, "profile", "set", "--name", "Dana Whitfield", "--title-role", "RN", "--photo-uri", "file:///me.png")
	require.NoError(t, err)

	out, _, err := execute(t, "profile", "set", "--email", "dana@careconnect.app")
	require.NoError(t, err)
	assert.Contains(t, out, "Dana Whitfield")
	assert.Contains(t, out, "dana@careconnect.app")

	out, _, err = execute(t, "profile", "show", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"photoUri": "file:///me.png",
		"name": "Dana Whitfield",
		"titleRole": "RN",
		"position": "",
		"organization": "",
		"email": "dana@careconnect.app",
		"phone": ""
	}`, out)

	_, _, err = execute(t, "profile", "clear")
	require.NoError(t, err)
	out, _, err = execute(t, "profile", "show", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"photoUri":null,"name":"","titleRole":"","position":"","organization":"","email":"","phone":""}`, out)
}

func TestPatients_ListViews(t *testing.T) {
	testEnv(t, "memory")

	out, _, err := execute(t, "patients", "list", "--view", "needing_attention")
	require.NoError(t, err)
	assert.Contains(t, out, "needing_attention")
	assert.Contains(t, out, "Luis Ortega")
	assert.NotContains(t, out, "Evelyn Park")
	assert.Less(t, strings.Index(out, "Luis Ortega"), strings.Index(out, "Ruth Abernathy"))

	out, _, err = execute(t, "patients", "list", "--view", "upcoming_visits")
	require.NoError(t, err)
	assert.NotContains(t, out, "Kwame Mensah")

	out, errOut, err := execute(t, "patients", "list", "--view", "by_room")
	require.NoError(t, err)
	assert.Contains(t, errOut, "unknown view")
	assert.Contains(t, out, "Kwame Mensah")
	assert.Contains(t, out, "Evelyn Park")
}

func TestTasks_ListToggleExport(t *testing.T) {
	testEnv(t, "memory")

	out, _, err := execute(t, "tasks", "list", "--filter", "overdue", "--sort", "priority")
	require.NoError(t, err)
	assert.Contains(t, out, "Wound dressing change")
	assert.NotContains(t, out, "Update care plan notes")
	assert.Less(t, strings.Index(out, "Wound dressing change"), strings.Index(out, "Check blood glucose"))

	out, _, err = execute(t, "tasks", "toggle", "1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "1 completed"))

	_, _, err = execute(t, "tasks", "toggle", "999")
	assert.ErrorContains(t, err, "task 999 not found")

	_, _, err = execute(t, "tasks", "list", "--filter", "someday")
	assert.ErrorContains(t, err, "unknown filter")

	path := filepath.Join(t.TempDir(), "tasks.xlsx")
	out, _, err = execute(t, "tasks", "export", "--out", path, "--sort", "priority")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 8 tasks")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Tasks")
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.Equal(t, "high", rows[1][3])
	assert.Equal(t, "none", rows[8][3])
}

func TestMessages_List(t *testing.T) {
	testEnv(t, "memory")

	out, _, err := execute(t, "messages", "list", "--unread")
	require.NoError(t, err)
	assert.Contains(t, out, "3 unread")
	assert.Contains(t, out, "Handoff notes")
	assert.NotContains(t, out, "Refill ready")

	out, _, err = execute(t, "messages", "list")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Lab results"), strings.Index(out, "Visit on Sunday"))
}

func TestLogin(t *testing.T) {
	testEnv(t, "memory")

	out, _, err := execute(t, "login", "--email", "nurse@careconnect.app", "--password", "letmein")
	require.NoError(t, err)
	assert.Contains(t, out, "signed in as nurse@careconnect.app")

	_, _, err = execute(t, "login", "--email", "nurse@careconnect.app", "--password", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, _, err = execute(t, "login", "--email", "not-an-email", "--password", "x")
	assert.ErrorIs(t, err, auth.ErrEmailInvalid)
}

func TestGlobalFlags_BadStore(t *testing.T) {
	testEnv(t, "memory")

	_, _, err := execute(t, "--store", "etcd", "settings", "show")
	assert.ErrorContains(t, err, "unsupported store backend")
}
