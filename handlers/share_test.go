package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"hippo/database"
)

func newShareRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		db.Close()
	})

	h := NewShareHandler("https://hippo.example", zaptest.NewLogger(t))
	r := gin.New()
	r.POST("/api/share", h.Create)
	r.GET("/api/shared/:id", h.Get)
	r.GET("/api/shared/:id/pdf", h.Download)
	return r, mock
}

func TestShareCreate_MissingFields(t *testing.T) {
	r, _ := newShareRouter(t)

	w := postJSON(r, "/api/share", `{"trip": {"origin": "JFK"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required fields")
}

func TestShareCreate_ReturnsShortIDAndURL(t *testing.T) {
	r, mock := newShareRouter(t)

	mock.ExpectExec("INSERT INTO shared_chats").
		WithArgs(sqlmock.AnyArg(), "live-prices", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := postJSON(r, "/api/share", `{
		"mode": "live-prices",
		"trip": {"origin": "JFK", "cityA": "LIS", "cityB": "BCN"},
		"messages": [{"id": "1", "role": "user", "content": "hi"}]
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.ID, 10)
	assert.Equal(t, "https://hippo.example/chat/"+resp.ID, resp.URL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShareCreate_StorageFailure(t *testing.T) {
	r, mock := newShareRouter(t)

	mock.ExpectExec("INSERT INTO shared_chats").
		WillReturnError(sql.ErrConnDone)

	w := postJSON(r, "/api/share", `{
		"mode": "web-assisted",
		"trip": {},
		"messages": [{"id": "1", "role": "user", "content": "hi"}]
	}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to create shareable link")
}

func TestShareGet_ReplaysStoredChat(t *testing.T) {
	r, mock := newShareRouter(t)

	createdAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, mode, trip, messages, created_at").
		WithArgs("abc1234567").
		WillReturnRows(sqlmock.NewRows([]string{"id", "mode", "trip", "messages", "created_at"}).
			AddRow("abc1234567", "live-prices",
				[]byte(`{"origin":"JFK","cityA":"LIS","cityB":"BCN"}`),
				[]byte(`[{"id":"1","role":"user","content":"hi","createdAt":1709280000000}]`),
				createdAt))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/shared/abc1234567", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Mode     string          `json:"mode"`
		Trip     json.RawMessage `json:"trip"`
		Messages json.RawMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "live-prices", resp.Mode)
	assert.JSONEq(t, `{"origin":"JFK","cityA":"LIS","cityB":"BCN"}`, string(resp.Trip))
}

func TestShareGet_NotFound(t *testing.T) {
	r, mock := newShareRouter(t)

	mock.ExpectQuery("SELECT id, mode, trip, messages, created_at").
		WithArgs("missing123").
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/shared/missing123", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Chat not found")
}

func TestShareDownload_ReturnsPDF(t *testing.T) {
	r, mock := newShareRouter(t)

	mock.ExpectQuery("SELECT id, mode, trip, messages, created_at").
		WithArgs("abc1234567").
		WillReturnRows(sqlmock.NewRows([]string{"id", "mode", "trip", "messages", "created_at"}).
			AddRow("abc1234567", "live-prices",
				[]byte(`{"origin":"JFK","cityA":"LIS","cityB":"BCN"}`),
				[]byte(`[{"id":"1","role":"user","content":"Lisbon or Barcelona?"}]`),
				time.Now()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/shared/abc1234567/pdf", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", w.Body.String()[:4])
}
