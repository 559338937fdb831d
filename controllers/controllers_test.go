package controllers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/juju/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blogem/clocklog/database"
	"github.com/blogem/clocklog/models"
	"github.com/blogem/clocklog/repositories"
	"github.com/blogem/clocklog/repositories/mocks"
	"github.com/blogem/clocklog/services"
)

func setupControllers(t *testing.T) (*Controllers, *sql.DB) {
	db, err := database.InitializeDatabase(database.Options{
		Driver: database.DriverCgo,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	srvs := services.NewServices(repositories.NewRepositories(db), clock.WallClock)
	return NewControllers(srvs), db
}

func postLog(ctrl *Controllers, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/log", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ctrl.Log.Create(rec, req)
	return rec
}

func TestLogCreate_NumericAge(t *testing.T) {
	ctrl, db := setupControllers(t)

	rec := postLog(ctrl, `{"name": "Ada", "age": "37"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var name string
	var age sql.NullInt64
	require.NoError(t, db.QueryRow("SELECT name, age FROM log_entries").Scan(&name, &age))
	assert.Equal(t, "Ada", name)
	assert.True(t, age.Valid)
	assert.Equal(t, int64(37), age.Int64)
}

func TestLogCreate_NonNumericAge(t *testing.T) {
	ctrl, db := setupControllers(t)

	rec := postLog(ctrl, `{"name": "Grace", "age": "n/a"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM log_entries WHERE name = 'Grace' AND age IS NULL").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestLogCreate_MalformedBody(t *testing.T) {
	ctrl, db := setupControllers(t)

	rec := postLog(ctrl, `{"name": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM log_entries").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestLogCreate_StoreUnavailable(t *testing.T) {
	ctrl, db := setupControllers(t)
	db.Close()

	rec := postLog(ctrl, `{"name": "Ada", "age": "37"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.NotEmpty(t, body.Error)
}

func TestLogCreate_RepositoryError(t *testing.T) {
	repo := mocks.NewMockLogRepository(t)
	repo.EXPECT().Create(mock.Anything, mock.Anything).Return(errors.New("constraint violation"))

	srvs := services.NewServices(&repositories.Repositories{Log: repo}, clock.WallClock)
	ctrl := NewControllers(srvs)

	rec := postLog(ctrl, `{"name": "Ada", "age": "37"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Error, "constraint violation")
}

func TestLogCreate_UsesRequestContext(t *testing.T) {
	repo := mocks.NewMockLogRepository(t)
	repo.EXPECT().Create(mock.Anything, mock.Anything).RunAndReturn(func(ctx context.Context, _ *models.LogEntry) error {
		return ctx.Err()
	})

	srvs := services.NewServices(&repositories.Repositories{Log: repo}, clock.WallClock)
	ctrl := NewControllers(srvs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/log", strings.NewReader(`{"name": "Ada", "age": "37"}`)).WithContext(ctx)
	rec := httptest.NewRecorder()
	ctrl.Log.Create(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestTimeShow(t *testing.T) {
	ctrl, _ := setupControllers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/time", nil)
	rec := httptest.NewRecorder()
	ctrl.Time.Show(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Regexp(t, regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`), rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestHealthShow(t *testing.T) {
	ctrl := NewControllers(&services.Services{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	ctrl.Health.Show(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "healthy", "service": "clocklog"}`, rec.Body.String())
}
