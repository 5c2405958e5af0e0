package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogService "github.com/fitbook/booking-api/internal/service/catalog"
	"github.com/fitbook/booking-api/internal/testutil"
	"github.com/fitbook/booking-api/pkg/timezone"
)

func newTestRouter(store *testutil.FakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := catalogService.NewService(store.ClassRepository())
	h := NewHandler(svc, timezone.AuthoringZone)

	engine := gin.New()
	h.RegisterRoutes(engine.Group(""))
	return engine
}

func TestListClassesEndpoint(t *testing.T) {
	t.Run("lists sessions localized to default zone", func(t *testing.T) {
		store := testutil.NewFakeStore()
		yoga := store.AddClass("Yoga", "Yoga class")
		start := time.Date(2025, 7, 9, 1, 30, 0, 0, time.UTC)
		store.AddSession(yoga.ID, start, start.Add(time.Hour), 10)
		engine := newTestRouter(store)

		req := httptest.NewRequest(http.MethodGet, "/classes", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var listings []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listings))
		require.Len(t, listings, 1)

		entry := listings[0]
		assert.Equal(t, "Yoga", entry["class"])
		assert.Equal(t, "2025-07-09 07:00", entry["start_time"])
		assert.Equal(t, "2025-07-09 08:00", entry["end_time"])
		assert.Equal(t, float64(10), entry["capacity"])
		assert.Equal(t, float64(10), entry["spots_left"])
	})

	t.Run("explicit timezone", func(t *testing.T) {
		store := testutil.NewFakeStore()
		yoga := store.AddClass("Yoga", "Yoga class")
		start := time.Date(2025, 7, 9, 1, 30, 0, 0, time.UTC)
		store.AddSession(yoga.ID, start, start.Add(time.Hour), 10)
		engine := newTestRouter(store)

		req := httptest.NewRequest(http.MethodGet, "/classes?timezone=UTC", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var listings []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listings))
		require.Len(t, listings, 1)
		assert.Equal(t, "2025-07-09 01:30", listings[0]["start_time"])
	})

	t.Run("invalid timezone names the bad zone", func(t *testing.T) {
		store := testutil.NewFakeStore()
		engine := newTestRouter(store)

		req := httptest.NewRequest(http.MethodGet, "/classes?timezone=Mars/Nowhere", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error": "Invalid timezone: Mars/Nowhere"}`, rec.Body.String())
	})

	t.Run("empty catalog returns empty array", func(t *testing.T) {
		store := testutil.NewFakeStore()
		engine := newTestRouter(store)

		req := httptest.NewRequest(http.MethodGet, "/classes", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}
