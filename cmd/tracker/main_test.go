package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/comitanigiacomo/habit-tracker/internal/config"
	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/habit-tracker/internal/core/services"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_SQLiteLifecycle(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tracker.db")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", dbPath)
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := config.Load("")
	require.NoError(t, err)

	ctx := context.Background()
	a, err := newApp(ctx, cfg, zaptest.NewLogger(t), false)
	require.NoError(t, err)

	tr, err := a.trackerService().Create(ctx, services.CreateTrackerInput{
		Name:     "Morning Run",
		Emoji:    "🏃",
		Color:    "#33CC66",
		Schedule: domain.NewSchedule(domain.Monday, domain.Thursday),
		Category: "Health",
	})
	require.NoError(t, err)
	a.Close()

	t.Run("Board on a scheduled day", func(t *testing.T) {
		out, err := runCLI(t, "board", "--date", "2024-01-08")
		require.NoError(t, err)
		assert.Contains(t, out, "2024-01-08 (Mon) filter=all")
		assert.Contains(t, out, "Health")
		assert.Contains(t, out, "[ ] 🏃 Morning Run  Mon Thu  0 done")
	})

	t.Run("Board on an unscheduled day", func(t *testing.T) {
		out, err := runCLI(t, "board", "--date", "2024-01-09")
		require.NoError(t, err)
		assert.Contains(t, out, "Nothing found")
	})

	t.Run("Toggle and stats", func(t *testing.T) {
		out, err := runCLI(t, "stats")
		require.NoError(t, err)
		assert.Contains(t, out, "No completions yet")

		out, err = runCLI(t, "toggle", tr.ID, "--date", "2024-01-08")
		require.NoError(t, err)
		assert.Contains(t, out, "added "+tr.ID+" on 2024-01-08 (1 done)")

		out, err = runCLI(t, "board", "--date", "2024-01-08", "--filter", "completed")
		require.NoError(t, err)
		assert.Contains(t, out, "[x] 🏃 Morning Run")

		out, err = runCLI(t, "stats")
		require.NoError(t, err)
		assert.Contains(t, out, "Best period:        1")
		assert.Contains(t, out, "Completed trackers: 1")
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := runCLI(t, "toggle", "missing", "--date", "2024-01-08")
		assert.ErrorIs(t, err, domain.ErrTrackerNotFound)

		future := time.Now().UTC().AddDate(0, 0, 2).Format(domain.DayLayout)
		_, err = runCLI(t, "toggle", tr.ID, "--date", future)
		assert.ErrorIs(t, err, domain.ErrFutureDate)

		_, err = runCLI(t, "board", "--filter", "weekly")
		assert.ErrorIs(t, err, domain.ErrInvalidFilter)
	})
}

func TestCLI_BadConfig(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := runCLI(t, "stats")
	assert.Error(t, err)
}

func TestApp_StartupFailureReleasesStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tracker.db")
	cfg := config.Config{
		Driver:       config.DriverSQLite,
		SQLitePath:   dbPath,
		RedisEnabled: true,
		RedisHost:    "127.0.0.1",
		RedisPort:    "1",
		Location:     time.UTC,
	}

	core, logs := observer.New(zap.WarnLevel)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a, err := newApp(ctx, cfg, zap.New(core), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
	assert.Nil(t, a)

	aborted := logs.FilterMessage("startup aborted, releasing opened connections").All()
	require.Len(t, aborted, 1)
	assert.Equal(t, int64(1), aborted[0].ContextMap()["connections"])

	a, err = newApp(ctx, cfg, zaptest.NewLogger(t), false)
	require.NoError(t, err)
	defer a.Close()
	assert.NoError(t, a.pinger.Ping(ctx))
}

func TestApp_RouterWithMemoryStore(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.Config{Driver: config.DriverMemory, Location: time.UTC}
	a, err := newApp(context.Background(), cfg, nil, true)
	require.NoError(t, err)
	defer a.Close()

	router := a.router(time.Now())

	body := `{"name":"Read","emoji":"📚","color":"#3366FF","schedule":["mon","tue","wed","thu","fri","sat","sun"],"category":"Study"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trackers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created domain.Tracker
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req = httptest.NewRequest(http.MethodPost, "/api/v1/trackers/"+created.ID+"/toggle", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"result":"added"`)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/board?filter=completed", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.ID)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "redis")
}
