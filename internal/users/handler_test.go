package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/atlas-commerce/atlas-commerce/internal/auth"
	"github.com/atlas-commerce/atlas-commerce/internal/shared"
	_ "github.com/atlas-commerce/atlas-commerce/testing"
)

type fakeRepo struct {
	users  map[int64]User
	nextID int64

	lastFields ProfileFields
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[int64]User)}
}

func (r *fakeRepo) Create(ctx context.Context, user User) (User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return User{}, shared.Conflict("email", "users_email_key", "email already registered")
		}
		if existing.Username == user.Username {
			return User{}, shared.Conflict("username", "users_username_key", "username already exists")
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, shared.NotFound("user")
}

func (r *fakeRepo) FindByUsername(ctx context.Context, username string) (User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, shared.NotFound("user")
}

func (r *fakeRepo) FindByID(ctx context.Context, id int64) (User, error) {
	u, ok := r.users[id]
	if !ok {
		return User{}, shared.NotFound("user")
	}
	u.PasswordHash = ""
	return u, nil
}

func (r *fakeRepo) UpdateProfile(ctx context.Context, id int64, fields ProfileFields) (User, error) {
	r.lastFields = fields
	u, ok := r.users[id]
	if !ok {
		return User{}, shared.NotFound("user")
	}
	if fields.FullName != nil {
		u.FullName = fields.FullName
	}
	if fields.Address != nil {
		u.Address = fields.Address
	}
	if fields.Email != nil {
		u.Email = *fields.Email
	}
	if fields.Username != nil {
		u.Username = *fields.Username
	}
	r.users[id] = u
	u.PasswordHash = ""
	return u, nil
}

func newTestServer(t *testing.T, repo *fakeRepo) (*httptest.Server, *auth.TokenIssuer) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	revoked := auth.NewRevocationStore(client)

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	service := NewService(repo, issuer, bcrypt.MinCost)
	handler := NewHandler(nil, service, auth.Middleware{Issuer: issuer, Revoked: revoked}, revoked)

	r := chi.NewRouter()
	r.Route("/api/users", handler.MountRoutes)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, issuer
}

func doJSON(t *testing.T, method, url, token, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return res
}

const registerBody = `{"username":"ada","email":"ada@example.com","password":"correct horse"}`

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeRepo()
	server, _ := newTestServer(t, repo)

	res := doJSON(t, http.MethodPost, server.URL+"/api/users/register", "", registerBody)
	defer res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var created User
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	require.Equal(t, "ada", created.Username)
	require.NotZero(t, created.ID)

	stored := repo.users[created.ID]
	require.NotEmpty(t, stored.PasswordHash)
	require.NotEqual(t, "correct horse", stored.PasswordHash)
	require.True(t, auth.CheckPassword("correct horse", stored.PasswordHash))
}

func TestRegisterNeverReturnsHash(t *testing.T) {
	server, _ := newTestServer(t, newFakeRepo())

	res := doJSON(t, http.MethodPost, server.URL+"/api/users/register", "", registerBody)
	defer res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var raw map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&raw))
	require.NotContains(t, raw, "password_hash")
	require.NotContains(t, raw, "password")
}

func TestRegisterValidation(t *testing.T) {
	repo := newFakeRepo()
	server, _ := newTestServer(t, repo)

	cases := []struct {
		name string
		body string
	}{
		{"missing username", `{"email":"a@example.com","password":"long enough"}`},
		{"missing email", `{"username":"ada","password":"long enough"}`},
		{"bad email", `{"username":"ada","email":"nope","password":"long enough"}`},
		{"short password", `{"username":"ada","email":"a@example.com","password":"short"}`},
	}
	for _, tc := range cases {
		res := doJSON(t, http.MethodPost, server.URL+"/api/users/register", "", tc.body)
		res.Body.Close()
		require.Equal(t, http.StatusBadRequest, res.StatusCode, tc.name)
	}
	require.Empty(t, repo.users)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	repo := newFakeRepo()
	server, _ := newTestServer(t, repo)

	res := doJSON(t, http.MethodPost, server.URL+"/api/users/register", "", registerBody)
	res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	dup := doJSON(t, http.MethodPost, server.URL+"/api/users/register", "",
		`{"username":"grace","email":"ada@example.com","password":"correct horse"}`)
	dup.Body.Close()
	require.Equal(t, http.StatusConflict, dup.StatusCode)

	// The first account is untouched by the refused insert.
	first, err := repo.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, "ada", first.Username)
	require.Len(t, repo.users, 1)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	server, issuer := newTestServer(t, newFakeRepo())

	res := doJSON(t, http.MethodPost, server.URL+"/api/users/register", "", registerBody)
	res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	login := doJSON(t, http.MethodPost, server.URL+"/api/users/login", "",
		`{"email":"ada@example.com","password":"correct horse"}`)
	defer login.Body.Close()
	require.Equal(t, http.StatusOK, login.StatusCode)

	var body loginResponse
	require.NoError(t, json.NewDecoder(login.Body).Decode(&body))
	require.Equal(t, "ada", body.User.Username)

	claims, ok := issuer.Verify(body.Token)
	require.True(t, ok)
	require.Equal(t, body.User.ID, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	server, _ := newTestServer(t, newFakeRepo())

	res := doJSON(t, http.MethodPost, server.URL+"/api/users/register", "", registerBody)
	res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	login := doJSON(t, http.MethodPost, server.URL+"/api/users/login", "",
		`{"email":"ada@example.com","password":"wrong horse123"}`)
	login.Body.Close()
	require.Equal(t, http.StatusUnauthorized, login.StatusCode)
}

func TestLoginUnknownEmailLooksLikeWrongPassword(t *testing.T) {
	server, _ := newTestServer(t, newFakeRepo())

	login := doJSON(t, http.MethodPost, server.URL+"/api/users/login", "",
		`{"email":"nobody@example.com","password":"correct horse"}`)
	login.Body.Close()
	require.Equal(t, http.StatusUnauthorized, login.StatusCode)
}

func loginToken(t *testing.T, server *httptest.Server) string {
	t.Helper()
	res := doJSON(t, http.MethodPost, server.URL+"/api/users/register", "", registerBody)
	res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	login := doJSON(t, http.MethodPost, server.URL+"/api/users/login", "",
		`{"email":"ada@example.com","password":"correct horse"}`)
	defer login.Body.Close()
	require.Equal(t, http.StatusOK, login.StatusCode)

	var body loginResponse
	require.NoError(t, json.NewDecoder(login.Body).Decode(&body))
	return body.Token
}

func TestMeReturnsOwnProfile(t *testing.T) {
	server, _ := newTestServer(t, newFakeRepo())
	token := loginToken(t, server)

	res := doJSON(t, http.MethodGet, server.URL+"/api/users/me", token, "")
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var me User
	require.NoError(t, json.NewDecoder(res.Body).Decode(&me))
	require.Equal(t, "ada", me.Username)
	require.Equal(t, "ada@example.com", me.Email)
}

func TestMeRequiresToken(t *testing.T) {
	server, _ := newTestServer(t, newFakeRepo())

	res := doJSON(t, http.MethodGet, server.URL+"/api/users/me", "", "")
	res.Body.Close()
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestSparseProfileUpdate(t *testing.T) {
	repo := newFakeRepo()
	server, _ := newTestServer(t, repo)
	token := loginToken(t, server)

	res := doJSON(t, http.MethodPut, server.URL+"/api/users/me", token, `{"full_name":"Ada Lovelace"}`)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	require.NotNil(t, repo.lastFields.FullName)
	require.Nil(t, repo.lastFields.Address)
	require.Nil(t, repo.lastFields.Email)
	require.Nil(t, repo.lastFields.Username)

	var updated User
	require.NoError(t, json.NewDecoder(res.Body).Decode(&updated))
	require.NotNil(t, updated.FullName)
	require.Equal(t, "Ada Lovelace", *updated.FullName)
	require.Equal(t, "ada", updated.Username)
}

func TestProfileUpdateRejectsBadEmail(t *testing.T) {
	server, _ := newTestServer(t, newFakeRepo())
	token := loginToken(t, server)

	res := doJSON(t, http.MethodPut, server.URL+"/api/users/me", token, `{"email":"not-an-address"}`)
	res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestLogoutRevokesToken(t *testing.T) {
	server, _ := newTestServer(t, newFakeRepo())
	token := loginToken(t, server)

	res := doJSON(t, http.MethodPost, server.URL+"/api/users/logout", token, "")
	res.Body.Close()
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	// The revoked token no longer opens protected routes.
	me := doJSON(t, http.MethodGet, server.URL+"/api/users/me", token, "")
	me.Body.Close()
	require.Equal(t, http.StatusUnauthorized, me.StatusCode)
}
