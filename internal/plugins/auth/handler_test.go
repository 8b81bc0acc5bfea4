package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookieDomain = "fit.example"

// testServer wires the real auth service to in-memory stores behind an
// Echo router, with one owner-gated route for authorization checks.
type testServer struct {
	e        *echo.Echo
	svc      *authService
	sessions *fakeSessionRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	sessions := newFakeSessionRepo()
	svc, _ := newTestAuthService(t, newMockAccountRepo(), sessions, nil)
	svc.now = func() time.Time { return time.Now().UTC() }

	cookies := CookieConfig{Domain: testCookieDomain, TTL: 24 * time.Hour}
	e := echo.New()
	e.Use(LoadIdentity(svc, cookies))
	RegisterRoutes(e, NewHandler(svc, cookies))
	e.GET("/client/:user_id", func(c echo.Context) error {
		return c.String(http.StatusOK, "dashboard")
	}, RequireOwner("user_id"))

	return &testServer{e: e, svc: svc, sessions: sessions}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func withToken(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	return req
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// signupAndLogin registers alice through the HTTP surface and returns her
// account id and session token.
func (s *testServer) signupAndLogin(t *testing.T) (int64, string) {
	t.Helper()
	rec := s.do(postForm("/signup", url.Values{"username": {"alice"}, "password": {"pw123!"}, "confirm": {"pw123!"}}))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = s.do(postForm("/login", url.Values{"username": {"alice"}, "password": {"pw123!"}}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	cookie := findCookie(rec, cookieName)
	require.NotNil(t, cookie, "login must set the token cookie")

	identity, err := s.svc.Authenticate(t.Context(), SessionContext{Token: cookie.Value})
	require.NoError(t, err)
	id, ok := identity.UserID()
	require.True(t, ok)
	return id, cookie.Value
}

func TestSignupHandler_SuccessRedirectsToLogin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(postForm("/signup", url.Values{"username": {"alice"}, "password": {"pw123!"}, "confirm": {"pw123!"}}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestSignupHandler_RerendersOnUserError(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		wantMsg string
	}{
		{"mismatch", url.Values{"username": {"bob"}, "password": {"a"}, "confirm": {"b"}}, "passwords do not match"},
		{"missing username", url.Values{"password": {"a"}, "confirm": {"a"}}, "username is required"},
		{"duplicate", url.Values{"username": {"alice"}, "password": {"x"}, "confirm": {"x"}}, "that username is already taken"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			if tt.name == "duplicate" {
				s.signupAndLogin(t)
			}

			rec := s.do(postForm("/signup", tt.form))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
			assert.Contains(t, rec.Body.String(), `action="/signup"`)
		})
	}
}

func TestSignupForm_Renders(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/signup", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, echo.MIMETextHTMLCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Body.String(), `name="confirm"`)
}

func TestLoginHandler_SetsSessionCookie(t *testing.T) {
	s := newTestServer(t)
	s.do(postForm("/signup", url.Values{"username": {"alice"}, "password": {"pw123!"}, "confirm": {"pw123!"}}))

	rec := s.do(postForm("/login", url.Values{"username": {"alice"}, "password": {"pw123!"}}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	cookie := findCookie(rec, cookieName)
	require.NotNil(t, cookie)
	assert.Len(t, cookie.Value, 88)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 86400, cookie.MaxAge)
	assert.Equal(t, testCookieDomain, cookie.Domain)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.False(t, cookie.Secure)
}

func TestLoginHandler_SecureBehindTLSProxy(t *testing.T) {
	s := newTestServer(t)
	s.do(postForm("/signup", url.Values{"username": {"alice"}, "password": {"pw123!"}, "confirm": {"pw123!"}}))

	req := postForm("/login", url.Values{"username": {"alice"}, "password": {"pw123!"}})
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := s.do(req)

	cookie := findCookie(rec, cookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	s := newTestServer(t)
	s.do(postForm("/signup", url.Values{"username": {"alice"}, "password": {"pw123!"}, "confirm": {"pw123!"}}))

	for _, form := range []url.Values{
		{"username": {"alice"}, "password": {"wrongpw"}},
		{"username": {"bob"}, "password": {"pw123!"}},
	} {
		rec := s.do(postForm("/login", form))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid username or password")
		assert.Contains(t, rec.Body.String(), `value="`+form.Get("username")+`"`)
		assert.Nil(t, findCookie(rec, cookieName))
	}
	assert.Equal(t, 0, s.sessions.count())
}

func TestLoginForm_RedirectsWhenSignedIn(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signupAndLogin(t)

	rec := s.do(withToken(httptest.NewRequest(http.MethodGet, "/login", nil), token))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestLogoutHandler_EndsSession(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signupAndLogin(t)

	rec := s.do(withToken(httptest.NewRequest(http.MethodGet, "/logout", nil), token))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	cookie := findCookie(rec, cookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
	assert.Equal(t, testCookieDomain, cookie.Domain)
	assert.Equal(t, 0, s.sessions.count())

	identity, err := s.svc.Authenticate(t.Context(), SessionContext{Token: token})
	require.NoError(t, err)
	assert.True(t, identity.IsAnonymous())
}

func TestLogoutHandler_WithoutSession(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/logout", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.Nil(t, findCookie(rec, cookieName))
}

func TestLoadIdentity_ClearsStaleCookie(t *testing.T) {
	s := newTestServer(t)
	stale, err := generateSessionToken()
	require.NoError(t, err)

	rec := s.do(withToken(httptest.NewRequest(http.MethodGet, "/login", nil), stale))

	assert.Equal(t, http.StatusOK, rec.Code)
	cookie := findCookie(rec, cookieName)
	require.NotNil(t, cookie)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestLoadIdentity_StoreFailureIsServerError(t *testing.T) {
	s := newTestServer(t)
	s.sessions.findErr = errors.New("connection refused")
	token, err := generateSessionToken()
	require.NoError(t, err)

	rec := s.do(withToken(httptest.NewRequest(http.MethodGet, "/login", nil), token))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireOwner(t *testing.T) {
	s := newTestServer(t)
	aliceID, token := s.signupAndLogin(t)

	tests := []struct {
		name     string
		path     string
		token    string
		wantCode int
	}{
		{"owner", "/client/" + itoa(aliceID), token, http.StatusOK},
		{"anonymous", "/client/" + itoa(aliceID), "", http.StatusSeeOther},
		{"other user", "/client/" + itoa(aliceID+1), token, http.StatusSeeOther},
		{"non-numeric id", "/client/alice", token, http.StatusSeeOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				withToken(req, tt.token)
			}

			rec := s.do(req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusSeeOther {
				assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
			}
		})
	}
}

func TestGetIdentity_WithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.True(t, GetIdentity(c).IsAnonymous())
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
