package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/userfed/internal/common"
	"github.com/dmitrijs2005/userfed/internal/logging"
	"github.com/dmitrijs2005/userfed/internal/server/auth"
	"github.com/dmitrijs2005/userfed/internal/server/config"
	"github.com/dmitrijs2005/userfed/internal/server/credentials"
	"github.com/dmitrijs2005/userfed/internal/server/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type body = map[string]any

type fakeRepo struct {
	rows       []*users.User
	updateRows int64
}

func (f *fakeRepo) FindByUsername(ctx context.Context, username string) (*users.User, error) {
	for _, u := range f.rows {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeRepo) SearchByUsername(ctx context.Context, fragment string) ([]*users.User, error) {
	var result []*users.User
	for _, u := range f.rows {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(fragment)) {
			result = append(result, u)
		}
	}
	return result, nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]*users.User, error) {
	return f.rows, nil
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.rows)), nil
}

func (f *fakeRepo) UpdatePasswordHash(ctx context.Context, userID int64, newHash string) (int64, error) {
	if f.updateRows == 1 {
		for _, u := range f.rows {
			if u.UserID == userID {
				u.PasswordHash = newHash
			}
		}
	}
	return f.updateRows, nil
}

func newTestServer(t *testing.T, repo users.Repository) *Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.TokenValidityDuration = time.Minute

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	return New(cfg, logger, repo)
}

func seededRepo(t *testing.T) *fakeRepo {
	t.Helper()

	cred, err := credentials.New("correct-password")
	require.NoError(t, err)

	return &fakeRepo{
		updateRows: 1,
		rows: []*users.User{
			{UserID: 1, Username: "alice", PasswordHash: cred.String(), FirstName: "Alice", LastName: "A", Department: "Eng"},
			{UserID: 2, Username: "alicia", Department: "Ops"},
			{UserID: 3, Username: "bob"},
		},
	}
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	s := newTestServer(t, seededRepo(t))

	w := doJSON(t, s, http.MethodPost, "/api/login",
		body{"username": "alice", "password": "correct-password"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	id, err := auth.GetIdentityIDFromToken(resp.Token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, "fedsql:alice", id)
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t, seededRepo(t))

	w := doJSON(t, s, http.MethodPost, "/api/login",
		body{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	s := newTestServer(t, seededRepo(t))

	w := doJSON(t, s, http.MethodPost, "/api/login",
		body{"username": "ghost", "password": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	s := newTestServer(t, seededRepo(t))

	w := doJSON(t, s, http.MethodPost, "/api/login", body{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type usersResponse struct {
	Users []userResponse `json:"users"`
}

func listNames(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()

	var resp usersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	names := make([]string, 0, len(resp.Users))
	for _, u := range resp.Users {
		names = append(names, u.Username)
	}
	return names
}

func TestListUsers_NoFilterNoPaging(t *testing.T) {
	s := newTestServer(t, seededRepo(t))

	w := doJSON(t, s, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"alice", "alicia", "bob"}, listNames(t, w))
}

func TestListUsers_Search(t *testing.T) {
	s := newTestServer(t, seededRepo(t))

	w := doJSON(t, s, http.MethodGet, "/api/users?search=ali", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"alice", "alicia"}, listNames(t, w))

	w = doJSON(t, s, http.MethodGet, "/api/users?search=xyz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, listNames(t, w))
}

func TestListUsers_Paging(t *testing.T) {
	s := newTestServer(t, seededRepo(t))

	w := doJSON(t, s, http.MethodGet, "/api/users?first=1&max=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"alicia"}, listNames(t, w))

	// Absent max takes everything from first onwards.
	w = doJSON(t, s, http.MethodGet, "/api/users?first=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"alicia", "bob"}, listNames(t, w))

	w = doJSON(t, s, http.MethodGet, "/api/users?first=10&max=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, listNames(t, w))
}

func TestListUsers_BadPagingParam(t *testing.T) {
	s := newTestServer(t, seededRepo(t))

	w := doJSON(t, s, http.MethodGet, "/api/users?first=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCountUsers(t *testing.T) {
	s := newTestServer(t, seededRepo(t))

	w := doJSON(t, s, http.MethodGet, "/api/users/count", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Count)
}

func TestGetUser(t *testing.T) {
	s := newTestServer(t, seededRepo(t))

	w := doJSON(t, s, http.MethodGet, "/api/users/alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp userResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "fedsql:alice", resp.ID)
	assert.Equal(t, []string{"Eng"}, resp.Attributes["department"])
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestServer(t, seededRepo(t))

	w := doJSON(t, s, http.MethodGet, "/api/users/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetPassword(t *testing.T) {
	repo := seededRepo(t)
	s := newTestServer(t, repo)

	w := doJSON(t, s, http.MethodPut, "/api/users/alice/password",
		body{"password": "brand-new"})
	require.Equal(t, http.StatusNoContent, w.Code)

	// The row now carries a parseable three-segment credential for the new
	// password, so a fresh login works.
	cred, err := credentials.Parse(repo.rows[0].PasswordHash)
	require.NoError(t, err)
	ok, err := cred.Verify("brand-new")
	require.NoError(t, err)
	assert.True(t, ok)

	w = doJSON(t, s, http.MethodPost, "/api/login",
		body{"username": "alice", "password": "brand-new"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetPassword_MultiRowAnomaly(t *testing.T) {
	repo := seededRepo(t)
	repo.updateRows = 2
	s := newTestServer(t, repo)

	w := doJSON(t, s, http.MethodPut, "/api/users/alice/password",
		body{"password": "brand-new"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestSetPassword_UnknownUser(t *testing.T) {
	s := newTestServer(t, seededRepo(t))

	w := doJSON(t, s, http.MethodPut, "/api/users/ghost/password",
		body{"password": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
