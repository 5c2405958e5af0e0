package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbook/booking-api/internal/model"
	"github.com/fitbook/booking-api/internal/notifier"
	bookingService "github.com/fitbook/booking-api/internal/service/booking"
	"github.com/fitbook/booking-api/internal/testutil"
	"github.com/fitbook/booking-api/pkg/timezone"
)

func newTestRouter(store *testutil.FakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := bookingService.NewService(
		store.BookingRepository(),
		store.SessionRepository(),
		store.ClassRepository(),
		store.ClientRepository(),
		notifier.NewNoop(),
	)
	h := NewHandler(svc, timezone.AuthoringZone)

	engine := gin.New()
	h.RegisterRoutes(engine.Group(""))
	return engine
}

func seedSession(store *testutil.FakeStore, capacity int) *model.Session {
	class := store.AddClass("Yoga", "Yoga class")
	start := time.Date(2025, 7, 9, 1, 30, 0, 0, time.UTC)
	return store.AddSession(class.ID, start, start.Add(time.Hour), capacity)
}

func postBook(t *testing.T, engine *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/book", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestBookEndpoint(t *testing.T) {
	t.Run("successful booking", func(t *testing.T) {
		store := testutil.NewFakeStore()
		session := seedSession(store, 1)
		engine := newTestRouter(store)

		w := postBook(t, engine, map[string]interface{}{
			"client_name":  "Alice",
			"client_email": "alice@example.com",
			"session_id":   session.ID.String(),
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message": "Booking successful"}`, w.Body.String())
	})

	t.Run("double booking into capacity-1 session", func(t *testing.T) {
		store := testutil.NewFakeStore()
		session := seedSession(store, 1)
		engine := newTestRouter(store)

		body := map[string]interface{}{
			"client_name":  "Alice",
			"client_email": "alice@example.com",
			"session_id":   session.ID.String(),
		}

		first := postBook(t, engine, body)
		assert.Equal(t, http.StatusOK, first.Code)

		second := postBook(t, engine, body)
		assert.Equal(t, http.StatusBadRequest, second.Code)
		assert.JSONEq(t, `{"message": "Booking failed – session full or already booked"}`, second.Body.String())
	})

	t.Run("full session rejects a new client", func(t *testing.T) {
		store := testutil.NewFakeStore()
		session := seedSession(store, 1)
		engine := newTestRouter(store)

		first := postBook(t, engine, map[string]interface{}{
			"client_name":  "Alice",
			"client_email": "alice@example.com",
			"session_id":   session.ID.String(),
		})
		assert.Equal(t, http.StatusOK, first.Code)

		second := postBook(t, engine, map[string]interface{}{
			"client_name":  "Bob",
			"client_email": "bob@example.com",
			"session_id":   session.ID.String(),
		})
		assert.Equal(t, http.StatusBadRequest, second.Code)
		assert.JSONEq(t, `{"message": "Booking failed – session full or already booked"}`, second.Body.String())
	})

	t.Run("unknown session id", func(t *testing.T) {
		store := testutil.NewFakeStore()
		engine := newTestRouter(store)

		w := postBook(t, engine, map[string]interface{}{
			"client_name":  "Alice",
			"client_email": "alice@example.com",
			"session_id":   uuid.New().String(),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message": "Booking failed – session full or already booked"}`, w.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		store := testutil.NewFakeStore()
		engine := newTestRouter(store)

		w := postBook(t, engine, map[string]interface{}{
			"client_name": "Alice",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "client_name and client_email and session_id required", resp["error"])
	})
}

func TestListBookingsEndpoint(t *testing.T) {
	t.Run("returns client history", func(t *testing.T) {
		store := testutil.NewFakeStore()
		session := seedSession(store, 2)
		engine := newTestRouter(store)

		w := postBook(t, engine, map[string]interface{}{
			"client_name":  "Alice",
			"client_email": "alice@example.com",
			"session_id":   session.ID.String(),
		})
		require.Equal(t, http.StatusOK, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/bookings?email=alice@example.com&timezone=UTC", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var history model.BookingHistory
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
		assert.Equal(t, "Alice", history.Client)
		assert.Equal(t, "alice@example.com", history.Email)
		require.Len(t, history.Bookings, 1)
		assert.Equal(t, session.ID, history.Bookings[0].SessionID)
		assert.Equal(t, "Yoga", history.Bookings[0].Class)
		assert.Equal(t, "2025-07-09 01:30", history.Bookings[0].StartTime)
	})

	t.Run("missing email", func(t *testing.T) {
		store := testutil.NewFakeStore()
		engine := newTestRouter(store)

		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error": "email query parameter is required"}`, rec.Body.String())
	})

	t.Run("unknown client", func(t *testing.T) {
		store := testutil.NewFakeStore()
		engine := newTestRouter(store)

		req := httptest.NewRequest(http.MethodGet, "/bookings?email=unknown@x.com", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error": "Client not found"}`, rec.Body.String())
	})

	t.Run("invalid timezone", func(t *testing.T) {
		store := testutil.NewFakeStore()
		store.AddClient("Alice", "alice@example.com")
		engine := newTestRouter(store)

		req := httptest.NewRequest(http.MethodGet, "/bookings?email=alice@example.com&timezone=Mars/Nowhere", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"error": "Invalid timezone: %s"}`, "Mars/Nowhere"), rec.Body.String())
	})
}
