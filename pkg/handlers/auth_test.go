package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"estate-site/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// fakeGitHub issues a token for any code and reports the given login.
func fakeGitHub(t *testing.T, login string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "gho_test",
			"token_type":   "bearer",
		})
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer gho_test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"login": login})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newAdmin(srv *httptest.Server) *Admin {
	return &Admin{
		OAuth: &oauth2.Config{
			ClientID:     "client",
			ClientSecret: "secret",
			RedirectURL:  "https://estates.example/admin/auth/callback",
			Scopes:       []string{"read:user"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  srv.URL + "/login/oauth/authorize",
				TokenURL: srv.URL + "/login/oauth/access_token",
			},
		},
		IsAdmin:     func(login string) bool { return login == "octocat" },
		UserInfoURL: srv.URL + "/user",
	}
}

func withCookies(req *http.Request, w *httptest.ResponseRecorder) *http.Request {
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

// startLogin runs the redirect to GitHub and returns the issued state.
func startLogin(t *testing.T, env *testEnv) (string, *httptest.ResponseRecorder) {
	t.Helper()
	w := env.do(http.MethodGet, "/admin/login/github", nil, nil)
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)
	return state, w
}

func TestAdminRequiresSession(t *testing.T) {
	env := newTestEnv(t, newAdmin(fakeGitHub(t, "octocat")))

	w := env.do(http.MethodGet, "/admin", nil, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestAdminLoginPage(t *testing.T) {
	env := newTestEnv(t, newAdmin(fakeGitHub(t, "octocat")))

	w := env.do(http.MethodGet, "/admin/login", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/admin/login/github")
}

func TestAdminOAuthFlow(t *testing.T) {
	env := newTestEnv(t, newAdmin(fakeGitHub(t, "octocat")))
	env.leads.sell = []models.SellRequest{{
		Name: "Kwame", Email: "kwame@example.com", Location: "Tema", PropertyType: "house",
		AskingPrice: 850000, SubmittedAt: time.Now().Add(-time.Hour),
	}}

	state, w := startLogin(t, env)

	req := httptest.NewRequest(http.MethodGet, "/admin/auth/callback?code=abc&state="+url.QueryEscape(state), nil)
	callback := httptest.NewRecorder()
	env.router.ServeHTTP(callback, withCookies(req, w))
	require.Equal(t, http.StatusFound, callback.Code)
	assert.Equal(t, "/admin", callback.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	dash := httptest.NewRecorder()
	env.router.ServeHTTP(dash, withCookies(req, callback))
	require.Equal(t, http.StatusOK, dash.Code)
	assert.Contains(t, dash.Body.String(), "Signed in as octocat")
	assert.Contains(t, dash.Body.String(), "kwame@example.com")
	assert.Contains(t, dash.Body.String(), "GHS 850,000")

	req = httptest.NewRequest(http.MethodGet, "/admin/logout", nil)
	out := httptest.NewRecorder()
	env.router.ServeHTTP(out, withCookies(req, callback))
	assert.Equal(t, http.StatusFound, out.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	after := httptest.NewRecorder()
	env.router.ServeHTTP(after, withCookies(req, out))
	assert.Equal(t, http.StatusFound, after.Code)
}

func TestAdminCallbackRejectsBadState(t *testing.T) {
	env := newTestEnv(t, newAdmin(fakeGitHub(t, "octocat")))
	_, w := startLogin(t, env)

	req := httptest.NewRequest(http.MethodGet, "/admin/auth/callback?code=abc&state=forged", nil)
	callback := httptest.NewRecorder()
	env.router.ServeHTTP(callback, withCookies(req, w))

	assert.Equal(t, http.StatusBadRequest, callback.Code)
}

func TestAdminCallbackRefusesUnknownUser(t *testing.T) {
	env := newTestEnv(t, newAdmin(fakeGitHub(t, "stranger")))
	state, w := startLogin(t, env)

	req := httptest.NewRequest(http.MethodGet, "/admin/auth/callback?code=abc&state="+url.QueryEscape(state), nil)
	callback := httptest.NewRecorder()
	env.router.ServeHTTP(callback, withCookies(req, w))

	assert.Equal(t, http.StatusForbidden, callback.Code)
}
