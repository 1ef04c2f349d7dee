package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bsk-backend/internal/guard"
	"bsk-backend/internal/middleware"
	"bsk-backend/internal/models"
	"bsk-backend/internal/notify"
	"bsk-backend/internal/repository"
	"bsk-backend/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type browser struct {
	t      *testing.T
	h      http.Handler
	cookie *http.Cookie
}

func newBrowser(t *testing.T, blobs repository.BlobStore) *browser {
	t.Helper()
	sh := NewSessionHandler(blobs, notify.NewLogNotifier(log.New(io.Discard, "", 0)),
		session.WithLogger(log.New(io.Discard, "", 0)))
	return &browser{
		t: t,
		h: middleware.ClientScope("test-secret")(sh.Routes()),
	}
}

func (b *browser) do(method, path, body string) *httptest.ResponseRecorder {
	b.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	rec := httptest.NewRecorder()
	b.h.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.ClientCookieName {
			b.cookie = c
		}
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestSession_FullLifecycle(t *testing.T) {
	b := newBrowser(t, repository.NewMemoryBlobRepo())

	rec := b.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, b.cookie)
	initial := decode[SessionResponse](t, rec)
	assert.False(t, initial.User.IsLoggedIn)
	assert.Equal(t, "U", initial.Initials)

	rec = b.do(http.MethodPost, "/register", `{"name":"anna","email":"anna@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	reg := decode[SessionResponse](t, rec)
	assert.True(t, reg.User.IsLoggedIn)
	require.NotNil(t, reg.Redirect)
	assert.Equal(t, guard.PageProfileSetup, *reg.Redirect)
	require.NotNil(t, reg.Notification)
	assert.Equal(t, notify.SeveritySuccess, reg.Notification.Severity)

	rec = b.do(http.MethodGet, "/guard?page=/dashboard.html", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	g := decode[GuardResponse](t, rec)
	require.NotNil(t, g.Redirect)
	assert.Equal(t, guard.PageProfileSetup, *g.Redirect)

	rec = b.do(http.MethodPost, "/profile", `{"grade":"10","exam":"ege","subjects":["math"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	setup := decode[SessionResponse](t, rec)
	require.NotNil(t, setup.Preferences)
	assert.Equal(t, models.LevelIntermediate, *setup.Preferences.Level)
	assert.Equal(t, guard.PageDashboard, *setup.Redirect)

	rec = b.do(http.MethodGet, "/guard?page=dashboard.html", "")
	assert.Nil(t, decode[GuardResponse](t, rec).Redirect)

	rec = b.do(http.MethodGet, "/", "")
	assert.Equal(t, "A", decode[SessionResponse](t, rec).Initials)

	rec = b.do(http.MethodPost, "/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[SessionResponse](t, rec)
	assert.False(t, out.User.IsLoggedIn)
	assert.Equal(t, guard.PageLanding, *out.Redirect)

	rec = b.do(http.MethodGet, "/preferences", "")
	require.Equal(t, http.StatusOK, rec.Code)
	prefs := decode[models.Preferences](t, rec)
	assert.Equal(t, models.Grade10, *prefs.Grade)
	assert.Equal(t, []string{"math"}, prefs.Subjects)

	rec = b.do(http.MethodGet, "/guard?page=tasks.html", "")
	g = decode[GuardResponse](t, rec)
	require.NotNil(t, g.Redirect)
	assert.Equal(t, guard.PageLanding, *g.Redirect)

	rec = b.do(http.MethodPost, "/login", `{"email":"anna@example.com","password":"x"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[SessionResponse](t, rec)
	assert.True(t, login.User.IsLoggedIn)
	assert.Equal(t, guard.PageDashboard, *login.Redirect)
	assert.Contains(t, login.Notification.Message, "anna")
}

func TestSession_BrowsersAreIsolated(t *testing.T) {
	blobs := repository.NewMemoryBlobRepo()
	a := newBrowser(t, blobs)
	b := newBrowser(t, blobs)

	a.do(http.MethodPost, "/register", `{"name":"Anna","email":"anna@example.com","password":"pw"}`)

	rec := b.do(http.MethodGet, "/", "")
	assert.False(t, decode[SessionResponse](t, rec).User.IsLoggedIn)
}

func TestSession_PreferencesWithoutUser(t *testing.T) {
	b := newBrowser(t, repository.NewMemoryBlobRepo())

	rec := b.do(http.MethodGet, "/preferences", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no user", decode[map[string]string](t, rec)["error"])
}

func TestSession_GuardWithoutRedirect(t *testing.T) {
	b := newBrowser(t, repository.NewMemoryBlobRepo())

	rec := b.do(http.MethodGet, "/guard?page=index.html", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"redirect":null}`, rec.Body.String())
}

func TestSession_InvalidBody(t *testing.T) {
	b := newBrowser(t, repository.NewMemoryBlobRepo())

	for _, path := range []string{"/register", "/login", "/profile"} {
		t.Run(path, func(t *testing.T) {
			rec := b.do(http.MethodPost, path, `{"name":`)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "invalid request body", decode[map[string]string](t, rec)["error"])
		})
	}
}

type brokenBlobs struct{}

func (brokenBlobs) Get(ctx context.Context, scope, key string) ([]byte, error) {
	return nil, errors.New("connection reset")
}

func (brokenBlobs) Put(ctx context.Context, scope, key string, value []byte) error {
	return errors.New("connection reset")
}

func TestSession_BackendFailure(t *testing.T) {
	b := newBrowser(t, brokenBlobs{})

	rec := b.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decode[map[string]string](t, rec)["error"])
}

func TestSession_CorruptRecordLooksLoggedOut(t *testing.T) {
	blobs := repository.NewMemoryBlobRepo()
	b := newBrowser(t, blobs)

	b.do(http.MethodGet, "/", "")
	clientID, err := middleware.ParseClientToken(b.cookie.Value, []byte("test-secret"))
	require.NoError(t, err)
	require.NoError(t, blobs.Put(context.Background(), clientID, session.DefaultKey, []byte("{oops")))

	rec := b.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[SessionResponse](t, rec).User.IsLoggedIn)
}

func TestSession_MissingClientScope(t *testing.T) {
	sh := NewSessionHandler(repository.NewMemoryBlobRepo(), notify.NewLogNotifier(log.New(io.Discard, "", 0)))

	rec := httptest.NewRecorder()
	sh.GetSession(rec, httptest.NewRequest(http.MethodGet, "/session", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
