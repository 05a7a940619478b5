package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/tanviarora/moodlog-backend/internal/middleware"
	"github.com/tanviarora/moodlog-backend/internal/repo"
	"github.com/tanviarora/moodlog-backend/internal/services"
	"github.com/tanviarora/moodlog-backend/pkg/utils"
)

func testAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return &AuthHandler{
		Users:    repo.NewUserRepo(db),
		Sessions: services.NewSessionStore(client),
	}, mock
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestAuthHandler_Register(t *testing.T) {
	h, mock := testAuthHandler(t)

	mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
		WithArgs("alice").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "alice", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(uuid.New(), "alice", "hash", time.Now()))

	rr := postJSON(t, h.Register, "/api/register", map[string]string{
		"username": "Alice",
		"password": "password1",
	})

	if rr.Code != http.StatusCreated {
		t.Errorf("Register status: got %d, want 201 (%s)", rr.Code, rr.Body.String())
	}
	var out map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["username"] != "alice" {
		t.Errorf("unexpected response: %v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	h, mock := testAuthHandler(t)

	mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(uuid.New(), "alice", "hash", time.Now()))

	rr := postJSON(t, h.Register, "/api/register", map[string]string{
		"username": "alice",
		"password": "password1",
	})

	if rr.Code != http.StatusConflict {
		t.Errorf("Register status: got %d, want 409", rr.Code)
	}
}

func TestAuthHandler_Register_InsertRaceConflict(t *testing.T) {
	h, mock := testAuthHandler(t)

	// The pre-insert lookup sees nothing, but a concurrent registration
	// wins the insert; the unique constraint must still surface as 409.
	mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
		WithArgs("alice").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "alice", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505"})

	rr := postJSON(t, h.Register, "/api/register", map[string]string{
		"username": "alice",
		"password": "password1",
	})

	if rr.Code != http.StatusConflict {
		t.Errorf("Register status: got %d, want 409 (%s)", rr.Code, rr.Body.String())
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	h, _ := testAuthHandler(t)

	rr := postJSON(t, h.Register, "/api/register", map[string]string{"username": "ab", "password": "password1"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("short username: got %d, want 400", rr.Code)
	}

	rr = postJSON(t, h.Register, "/api/register", map[string]string{"username": "alice", "password": "short"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("short password: got %d, want 400", rr.Code)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	h, mock := testAuthHandler(t)

	hash, err := utils.HashPassword("pw1secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	userID := uuid.New()
	mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(userID, "alice", hash, time.Now()))

	rr := postJSON(t, h.Login, "/api/login", map[string]string{
		"username": "alice",
		"password": "pw1secret",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Login status: got %d, want 200 (%s)", rr.Code, rr.Body.String())
	}

	var sessionCookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatal("no session cookie set")
	}
	if !sessionCookie.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}

	// the issued token really is a live session for this user
	got, ok, err := h.Sessions.Validate(context.Background(), sessionCookie.Value)
	if err != nil || !ok || got != userID {
		t.Errorf("session not valid after login: (%v, %v, %v)", got, ok, err)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	h, mock := testAuthHandler(t)

	// unknown username
	mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	rr := postJSON(t, h.Login, "/api/login", map[string]string{"username": "nobody", "password": "whatever1"})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("unknown user: got %d, want 401", rr.Code)
	}

	// wrong password
	hash, _ := utils.HashPassword("the-real-password")
	mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(uuid.New(), "alice", hash, time.Now()))

	rr = postJSON(t, h.Login, "/api/login", map[string]string{"username": "alice", "password": "not-it"})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: got %d, want 401", rr.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	h, _ := testAuthHandler(t)

	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/logout", nil)
	token, err := h.Sessions.Create(req.Context(), userID)
	if err != nil {
		t.Fatalf("session create: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})

	rr := httptest.NewRecorder()
	h.Logout(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Errorf("Logout status: got %d, want 303", rr.Code)
	}
	if _, ok, _ := h.Sessions.Validate(req.Context(), token); ok {
		t.Error("session still valid after logout")
	}
}
