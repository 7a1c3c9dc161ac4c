package web

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quillblog/quill/config"
	"github.com/quillblog/quill/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClient struct {
	t      *testing.T
	srv    *Server
	server *httptest.Server
	client *http.Client
}

func newTestServer(t *testing.T) *testClient {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "quill.db"),
		WAL:  true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseDB(db) })

	s := NewServer(db, Options{Secret: "test-secret"})
	engine, err := s.initRouter()
	require.NoError(t, err)

	ts := httptest.NewServer(engine)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testClient{t: t, srv: s, server: ts, client: client}
}

func (tc *testClient) do(req *http.Request) (int, string, http.Header) {
	tc.t.Helper()
	req.Header.Set("Accept-Language", "en")
	resp, err := tc.client.Do(req)
	require.NoError(tc.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(tc.t, err)
	return resp.StatusCode, string(body), resp.Header
}

func (tc *testClient) get(path string) (int, string, http.Header) {
	tc.t.Helper()
	req, err := http.NewRequest(http.MethodGet, tc.server.URL+path, nil)
	require.NoError(tc.t, err)
	return tc.do(req)
}

func (tc *testClient) post(path string, form url.Values) (int, string, http.Header) {
	tc.t.Helper()
	req, err := http.NewRequest(http.MethodPost, tc.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(tc.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return tc.do(req)
}

func (tc *testClient) signUpAndLogin(name, email, password string) {
	tc.t.Helper()
	status, _, header := tc.post("/sign_up", url.Values{"name": {name}, "email": {email}, "password": {password}})
	require.Equal(tc.t, http.StatusFound, status)
	require.Equal(tc.t, "/", header.Get("Location"))

	status, _, header = tc.post("/login", url.Values{"email": {email}, "password": {password}})
	require.Equal(tc.t, http.StatusFound, status)
	require.Equal(tc.t, "/home/"+name, header.Get("Location"))
}

func TestPublicPages(t *testing.T) {
	tc := newTestServer(t)

	for _, path := range []string{"/", "/login", "/sign_up", "/blog", "/about", "/contact_us"} {
		status, body, _ := tc.get(path)
		assert.Equal(t, http.StatusOK, status, path)
		assert.Contains(t, body, `href="/login"`, path)
	}
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	tc := newTestServer(t)

	for _, path := range []string{"/home/alice", "/blog1/alice", "/write/alice", "/logout", "/alice/some-slug", "/about/alice", "/contact_us/alice"} {
		status, _, header := tc.get(path)
		assert.Equal(t, http.StatusFound, status, path)
		assert.Equal(t, "/login", header.Get("Location"), path)
	}

	status, _, header := tc.post("/write/alice", url.Values{"title": {"x"}})
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/login", header.Get("Location"))
}

func TestLoginShowsUserName(t *testing.T) {
	tc := newTestServer(t)
	tc.signUpAndLogin("alice", "alice@example.com", "pw")

	status, body, _ := tc.get("/home/alice")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Posts by alice")
	assert.Contains(t, body, "Log out (alice)")
}

func TestLoginFailure(t *testing.T) {
	tc := newTestServer(t)
	tc.signUpAndLogin("alice", "alice@example.com", "pw")
	tc.get("/logout")

	for _, form := range []url.Values{
		{"email": {"alice@example.com"}, "password": {"nope"}},
		{"email": {"nobody@example.com"}, "password": {"pw"}},
	} {
		status, body, _ := tc.post("/login", form)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Contains(t, body, "Wrong email or password.")
	}

	status, _, header := tc.get("/home/alice")
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/login", header.Get("Location"))
}

func TestSignUpErrors(t *testing.T) {
	tc := newTestServer(t)
	tc.signUpAndLogin("alice", "alice@example.com", "pw")

	status, body, _ := tc.post("/sign_up", url.Values{"name": {"eve"}, "email": {"alice@example.com"}, "password": {"x"}})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body, "That email is already registered.")

	status, _, _ = tc.post("/sign_up", url.Values{"name": {""}, "email": {"bob@example.com"}, "password": {"x"}})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body, _ = tc.post("/sign_up", url.Values{"name": {"bob"}, "email": {"bob@example.com"}, "password": {strings.Repeat("p", 80)}})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "The password is too long")
	assert.Contains(t, body, `value="bob@example.com"`)
}

func TestWriteAndView(t *testing.T) {
	tc := newTestServer(t)
	tc.signUpAndLogin("alice", "alice@example.com", "pw")

	status, body, _ := tc.get("/write/alice")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `value="alice"`)

	form := url.Values{"title": {"Hello, World!"}, "subtitle": {"sub"}, "author": {"alice"}, "body": {"first post"}}
	status, _, header := tc.post("/write/alice", form)
	require.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/alice/Hello--World-", header.Get("Location"))

	status, body, _ = tc.get("/alice/Hello--World-")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "first post")
	assert.Contains(t, body, "by alice")

	status, body, _ = tc.get("/Hello--World-")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "first post")

	status, body, _ = tc.post("/write/alice", form)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body, "A post with the same title already exists.")

	status, body, _ = tc.get("/home/alice")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "/alice/Hello--World-")

	status, _, header = tc.post("/write/alice", url.Values{"title": {"   "}, "author": {"alice"}, "body": {"blank title"}})
	require.Equal(t, http.StatusFound, status)
	assert.Regexp(t, `^/alice/[0-9]+$`, header.Get("Location"))

	status, body, _ = tc.post("/write/alice", url.Values{"title": {"about"}, "author": {"alice"}, "body": {"x"}})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body, "This title is the name of a site page.")

	status, _, _ = tc.get("/missing-slug")
	assert.Equal(t, http.StatusNotFound, status)
	status, _, _ = tc.get("/alice/missing-slug")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBlogSearchAndPaging(t *testing.T) {
	tc := newTestServer(t)
	tc.signUpAndLogin("alice", "alice@example.com", "pw")

	for i := 1; i <= 7; i++ {
		status, _, _ := tc.post("/write/alice", url.Values{
			"title":  {fmt.Sprintf("Entry %d", i)},
			"author": {"alice"},
			"body":   {fmt.Sprintf("body %d", i)},
		})
		require.Equal(t, http.StatusFound, status)
	}
	tc.get("/logout")

	status, body, _ := tc.get("/blog")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Entry 7")
	assert.Contains(t, body, "Entry 5")
	assert.NotContains(t, body, "Entry 4")
	assert.Contains(t, body, "/blog?page=2")

	status, body, _ = tc.get("/blog?page=3")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Entry 1")
	assert.NotContains(t, body, "Entry 2")
	assert.Contains(t, body, "/blog?page=2")

	status, _, _ = tc.get("/blog?page=4")
	assert.Equal(t, http.StatusNotFound, status)
	status, _, _ = tc.get("/blog?page=0")
	assert.Equal(t, http.StatusNotFound, status)

	status, body, _ = tc.get("/blog?page=abc")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Entry 7")

	status, body, _ = tc.get("/blog?q=body+3")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Entry 3")
	assert.NotContains(t, body, "Entry 4")

	status, body, _ = tc.get("/blog?q=nothing-matches")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "No posts found.")
}

func TestLogout(t *testing.T) {
	tc := newTestServer(t)
	tc.signUpAndLogin("alice", "alice@example.com", "pw")

	status, _, header := tc.get("/logout")
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/", header.Get("Location"))

	status, _, header = tc.get("/home/alice")
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/login", header.Get("Location"))
}

func TestHealthAndMetrics(t *testing.T) {
	tc := newTestServer(t)

	status, body, _ := tc.get("/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"status":"ok"`)

	tc.get("/")
	status, body, _ = tc.get("/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "quill_http_requests_total")

	tc.srv.draining.Store(true)
	status, body, _ = tc.get("/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, body, `"status":"draining"`)
}

func TestStartStop(t *testing.T) {
	db, err := database.InitDB(&config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "quill.db"),
		WAL:  true,
	})
	require.NoError(t, err)
	defer database.CloseDB(db)

	s := NewServer(db, Options{Listen: "127.0.0.1", Port: 0, Secret: "k"})
	require.NoError(t, s.Start())
	require.NotNil(t, s.Addr())

	resp, err := http.Get("http://" + s.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.NoError(t, s.Stop())
}
