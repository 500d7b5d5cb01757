package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(driver, url string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "debug",
			ShutdownTimeoutSeconds: 5,
		},
		Store: config.StoreConfig{
			Driver:      driver,
			DatabaseURL: url,
			AutoMigrate: true,
		},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *application {
	t.Helper()
	log, _ := logger.GetTestLogger(t)

	app, err := newApplication(context.Background(), cfg, log)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app
}

func send(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// runLifecycle drives one task through create, read, update and delete.
func runLifecycle(t *testing.T, h http.Handler) {
	t.Helper()

	rr := send(t, h, http.MethodPost, "/tasks", `{"title":"Write tests","description":"all of them"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(shared.TraceIDHeader))
	var created domain.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)

	rr = send(t, h, http.MethodGet, "/tasks/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var fetched domain.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fetched))
	assert.Equal(t, created.Title, fetched.Title)
	assert.True(t, created.CreatedAt.Equal(fetched.CreatedAt))

	rr = send(t, h, http.MethodPut, "/tasks/1", `{"completed":true}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated domain.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.True(t, updated.Completed)
	assert.Equal(t, "all of them", updated.Description)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	rr = send(t, h, http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var all []domain.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	require.Len(t, all, 1)
	assert.True(t, all[0].Completed)

	rr = send(t, h, http.MethodDelete, "/tasks/1", "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = send(t, h, http.MethodGet, "/tasks/1", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t,
		`{"errorCode":"TASK_NOT_FOUND","message":"Task with id 1 not found","details":{"taskId":1}}`,
		rr.Body.String())
}

func TestTaskLifecycle_Memory(t *testing.T) {
	app := newTestApp(t, testConfig(config.DriverMemory, ""))
	assert.Nil(t, app.db)

	runLifecycle(t, app.setupRouter())
}

func TestTaskLifecycle_SQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "tasks.db")
	app := newTestApp(t, testConfig(config.DriverSQLite, dsn))
	require.NotNil(t, app.db)

	runLifecycle(t, app.setupRouter())
}

func TestRouter_AuxiliaryRoutes(t *testing.T) {
	h := newTestApp(t, testConfig(config.DriverMemory, "")).setupRouter()

	rr := send(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())

	rr = send(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Task Management API"}`, rr.Body.String())

	rr = send(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"errorCode":"NOT_FOUND","message":"No route for /nope","details":null}`, rr.Body.String())

	rr = send(t, h, http.MethodPatch, "/tasks", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Contains(t, rr.Body.String(), `"errorCode":"METHOD_NOT_ALLOWED"`)
}

func TestNewApplication_UnsupportedDriver(t *testing.T) {
	log, _ := logger.GetTestLogger(t)

	_, err := newApplication(context.Background(), testConfig("mongo", "x"), log)

	assert.ErrorContains(t, err, "unsupported store driver")
}

func TestStartHTTPServer_StopsOnCancel(t *testing.T) {
	app := newTestApp(t, testConfig(config.DriverMemory, ""))
	app.config.Server.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, app.startHTTPServer(ctx, app.setupRouter()))
}

func TestMigrateCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tasks.db")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"server:\n  log_level: error\nstore:\n  driver: sqlite\n  database_url: "+dbPath+"\n",
	), 0o600))

	for _, command := range []string{"up", "status", "version", "down"} {
		t.Run(command, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs([]string{"migrate", command, "--config", cfgPath})

			assert.NoError(t, cmd.ExecuteContext(context.Background()))
		})
	}
}

func TestMigrateCommand_Rejections(t *testing.T) {
	dir := t.TempDir()
	memoryCfg := filepath.Join(dir, "memory.yaml")
	require.NoError(t, os.WriteFile(memoryCfg, []byte("store:\n  driver: memory\n"), 0o600))

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"memory driver", []string{"migrate", "up", "--config", memoryCfg}, "requires a SQL store driver"},
		{"unknown command", []string{"migrate", "reset", "--config", memoryCfg}, "invalid argument"},
		{"missing command", []string{"migrate", "--config", memoryCfg}, "accepts 1 arg"},
		{"missing config file", []string{"migrate", "up", "--config", filepath.Join(dir, "absent.yaml")}, "failed to load configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs(tt.args)

			err := cmd.ExecuteContext(context.Background())

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
